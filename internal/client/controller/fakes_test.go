package controller

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/storefront/internal/client/client"
)

type call struct {
	Op      string
	Page    int
	Limit   int
	Term    string
	ID      int64
	Payload any
}

// fakeAPI answers from preset pages keyed by page number or search term.
type fakeAPI[T any] struct {
	mu sync.Mutex

	pages   map[int]client.Page[T]
	found   map[string]client.Page[T]
	listErr error
	findErr error
	saveErr error
	delErr  error
	gate    map[int]chan struct{}
	calls   []call
}

func (f *fakeAPI[T]) record(c call) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

func (f *fakeAPI[T]) Calls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

func (f *fakeAPI[T]) ops() []string {
	var out []string
	for _, c := range f.Calls() {
		out = append(out, c.Op)
	}
	return out
}

func (f *fakeAPI[T]) List(ctx context.Context, page, limit int) (client.Page[T], error) {
	f.record(call{Op: "list", Page: page, Limit: limit})
	if ch, ok := f.gate[page]; ok {
		<-ch
	}
	if f.listErr != nil {
		return client.Page[T]{}, f.listErr
	}
	return f.pages[page], nil
}

func (f *fakeAPI[T]) FindByName(ctx context.Context, name string) (client.Page[T], error) {
	f.record(call{Op: "find", Term: name})
	if f.findErr != nil {
		return client.Page[T]{}, f.findErr
	}
	return f.found[name], nil
}

func (f *fakeAPI[T]) Create(ctx context.Context, payload any) error {
	f.record(call{Op: "create", Payload: payload})
	return f.saveErr
}

func (f *fakeAPI[T]) Update(ctx context.Context, id int64, payload any) error {
	f.record(call{Op: "update", ID: id, Payload: payload})
	return f.saveErr
}

func (f *fakeAPI[T]) Delete(ctx context.Context, id int64) error {
	f.record(call{Op: "delete", ID: id})
	return f.delErr
}

type dialogEvent struct {
	Kind     string
	Title    string
	Text     string
	Messages []string
}

type fakeDialogs struct {
	confirm bool
	events  []dialogEvent
}

func (d *fakeDialogs) Confirm(_ context.Context, title, text string) bool {
	d.events = append(d.events, dialogEvent{Kind: "confirm", Title: title, Text: text})
	return d.confirm
}

func (d *fakeDialogs) Success(_ context.Context, title, text string) {
	d.events = append(d.events, dialogEvent{Kind: "success", Title: title, Text: text})
}

func (d *fakeDialogs) Error(_ context.Context, title, text string) {
	d.events = append(d.events, dialogEvent{Kind: "error", Title: title, Text: text})
}

func (d *fakeDialogs) ValidationErrors(_ context.Context, title string, messages []string) {
	d.events = append(d.events, dialogEvent{Kind: "validation", Title: title, Messages: messages})
}

func (d *fakeDialogs) kinds() []string {
	var out []string
	for _, e := range d.events {
		out = append(out, e.Kind)
	}
	return out
}
