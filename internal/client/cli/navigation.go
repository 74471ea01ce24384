package cli

import "sync"

// Navigation queues a navigation request raised outside the REPL loop,
// typically by the gateway on a 401. Only the latest request is kept.
type Navigation struct {
	mu   sync.Mutex
	path string
}

func NewNavigation() *Navigation {
	return &Navigation{}
}

// Navigate records path; it never blocks.
func (n *Navigation) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.path = path
}

// take returns and clears the pending path.
func (n *Navigation) take() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	p := n.path
	n.path = ""
	return p, p != ""
}
