// Package controller implements the list/search/paginate/CRUD pattern
// shared by the admin views.
//
// A Controller owns the state of one view instance: the current page of
// records, paging, the search term and the edit draft. Every fetch takes a
// sequence ticket and only the response of the latest ticket is applied,
// so a slow earlier response never overwrites a newer one.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/metrics"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

// PageSize is the fixed list limit of the admin views.
const PageSize = 10

var (
	ErrNotSearchable = errors.New("resource is not searchable")
	ErrModalClosed   = errors.New("no record is being edited")
	ErrNotInList     = errors.New("record is not on the current page")
	ErrStale         = errors.New("response superseded by a newer request")
)

// API is the gateway surface of one resource.
type API[T any] interface {
	List(ctx context.Context, page, limit int) (client.Page[T], error)
	FindByName(ctx context.Context, name string) (client.Page[T], error)
	Create(ctx context.Context, payload any) error
	Update(ctx context.Context, id int64, payload any) error
	Delete(ctx context.Context, id int64) error
}

// Dialogs are the user prompts and notices a controller raises.
type Dialogs interface {
	Confirm(ctx context.Context, title, text string) bool
	Success(ctx context.Context, title, text string)
	Error(ctx context.Context, title, text string)
	ValidationErrors(ctx context.Context, title string, messages []string)
}

// Resource configures a Controller for one record type T edited through
// draft type D.
type Resource[T, D any] struct {
	// Name labels logs and metrics, e.g. "products".
	Name string
	// Noun is the singular used in dialogs, e.g. "product".
	Noun string
	API  API[T]

	Template func() D
	ToDraft  func(T) D
	ItemID   func(T) int64
	DraftID  func(D) int64
	// Payload validates a draft and returns the request body.
	Payload func(D) (any, error)

	Searchable bool
	// SearchTotal overrides the page count of search results.
	SearchTotal func(client.Page[T]) int
	// SurfaceSaveErrors shows save failures in dialogs instead of only
	// logging them.
	SurfaceSaveErrors bool
}

// State is a snapshot of the view state.
type State[T, D any] struct {
	Items       []T
	CurrentPage int
	TotalPages  int
	SearchTerm  string
	Draft       D
	ModalOpen   bool
}

type Controller[T, D any] struct {
	res     Resource[T, D]
	dialogs Dialogs
	log     logging.Logger
	metrics *metrics.Metrics

	mu    sync.Mutex
	state State[T, D]
	seq   uint64
}

func New[T, D any](res Resource[T, D], dialogs Dialogs, log logging.Logger, m *metrics.Metrics) *Controller[T, D] {
	return &Controller[T, D]{
		res:     res,
		dialogs: dialogs,
		log:     log.With("resource", res.Name),
		metrics: m,
		state: State[T, D]{
			Items:       []T{},
			CurrentPage: 1,
			TotalPages:  1,
			Draft:       res.Template(),
		},
	}
}

func (c *Controller[T, D]) Name() string { return c.res.Name }

func (c *Controller[T, D]) Searchable() bool { return c.res.Searchable }

func (c *Controller[T, D]) State() State[T, D] {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.state
	s.Items = append([]T(nil), c.state.Items...)
	return s
}

func (c *Controller[T, D]) ticket() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

// apply runs fn on the state if t is still the latest ticket.
func (c *Controller[T, D]) apply(ctx context.Context, t uint64, fn func(*State[T, D])) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t != c.seq {
		c.metrics.RecordStaleResponse(c.res.Name)
		c.log.Debug(ctx, "dropping stale response", "ticket", t, "latest", c.seq)
		return ErrStale
	}
	fn(&c.state)
	return nil
}

// FetchPage replaces the items and page count with page. On failure the
// previous state stays in place and the error is only logged.
func (c *Controller[T, D]) FetchPage(ctx context.Context, page int) error {
	t := c.ticket()

	p, err := c.res.API.List(ctx, page, PageSize)
	if err != nil {
		c.log.Error(ctx, "failed to fetch page", "page", page, "err", err)
		return err
	}

	return c.apply(ctx, t, func(s *State[T, D]) {
		s.Items = p.Items
		s.TotalPages = p.Total
		s.CurrentPage = page
	})
}

// Refresh fetches the current page again.
func (c *Controller[T, D]) Refresh(ctx context.Context) error {
	return c.FetchPage(ctx, c.currentPage())
}

// Search looks records up by name and resets paging to 1. An empty term
// returns to the plain list at the current page. A resource that is not
// searchable keeps its state.
func (c *Controller[T, D]) Search(ctx context.Context, term string) error {
	if term != "" && !c.res.Searchable {
		return ErrNotSearchable
	}

	c.mu.Lock()
	c.state.SearchTerm = term
	page := c.state.CurrentPage
	c.mu.Unlock()

	if term == "" {
		return c.FetchPage(ctx, page)
	}

	t := c.ticket()

	p, err := c.res.API.FindByName(ctx, term)
	if err != nil {
		c.log.Error(ctx, "failed to search", "term", term, "err", err)
		return err
	}

	total := p.Total
	if c.res.SearchTotal != nil {
		total = c.res.SearchTotal(p)
	}

	return c.apply(ctx, t, func(s *State[T, D]) {
		s.Items = p.Items
		s.TotalPages = total
		s.CurrentPage = 1
	})
}

// Next moves one page forward, up to TotalPages. Nothing is fetched when
// the page does not change.
func (c *Controller[T, D]) Next(ctx context.Context) error {
	c.mu.Lock()
	cur, total := c.state.CurrentPage, c.state.TotalPages
	c.mu.Unlock()

	next := min(cur+1, total)
	if next == cur {
		return nil
	}
	return c.FetchPage(ctx, next)
}

// Prev moves one page back, down to 1.
func (c *Controller[T, D]) Prev(ctx context.Context) error {
	cur := c.currentPage()

	prev := max(cur-1, 1)
	if prev == cur {
		return nil
	}
	return c.FetchPage(ctx, prev)
}

func (c *Controller[T, D]) currentPage() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.CurrentPage
}

// OpenAdd opens the form with the empty template.
func (c *Controller[T, D]) OpenAdd() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Draft = c.res.Template()
	c.state.ModalOpen = true
}

// OpenEdit opens the form with the listed record id.
func (c *Controller[T, D]) OpenEdit(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, item := range c.state.Items {
		if c.res.ItemID(item) == id {
			c.state.Draft = c.res.ToDraft(item)
			c.state.ModalOpen = true
			return nil
		}
	}
	return fmt.Errorf("%s %d: %w", c.res.Noun, id, ErrNotInList)
}

// EditDraft applies fn to the open draft. The draft is kept unchanged when
// fn fails.
func (c *Controller[T, D]) EditDraft(fn func(*D) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.state.ModalOpen {
		return ErrModalClosed
	}
	d := c.state.Draft
	if err := fn(&d); err != nil {
		return err
	}
	c.state.Draft = d
	return nil
}

// Close discards the draft.
func (c *Controller[T, D]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ModalOpen = false
	c.state.Draft = c.res.Template()
}

// Save validates the draft, then updates it when it carries an id and
// creates it otherwise. Success closes the form and refetches the current
// page.
func (c *Controller[T, D]) Save(ctx context.Context) error {
	c.mu.Lock()
	open, draft := c.state.ModalOpen, c.state.Draft
	c.mu.Unlock()

	if !open {
		return ErrModalClosed
	}

	payload, err := c.res.Payload(draft)
	if err != nil {
		c.log.Warn(ctx, "draft rejected", "err", err)
		if c.res.SurfaceSaveErrors {
			c.showValidation(ctx, err)
		}
		return err
	}

	if id := c.res.DraftID(draft); id != 0 {
		err = c.res.API.Update(ctx, id, payload)
	} else {
		err = c.res.API.Create(ctx, payload)
	}
	if err != nil {
		c.metrics.RecordSaveFailure(c.res.Name)
		c.log.Error(ctx, "failed to save", "err", err)
		if c.res.SurfaceSaveErrors {
			if _, ok := common.AsValidationError(err); ok {
				c.showValidation(ctx, err)
			} else {
				c.dialogs.Error(ctx, "Error", "An unexpected error occurred.")
			}
		}
		return err
	}

	c.Close()
	_ = c.Refresh(ctx)
	return nil
}

func (c *Controller[T, D]) showValidation(ctx context.Context, err error) {
	msgs := []string{err.Error()}
	if ve, ok := common.AsValidationError(err); ok && len(ve.Messages) > 0 {
		msgs = ve.Messages
	}
	c.dialogs.ValidationErrors(ctx, "Validation error", msgs)
}

// Delete asks for confirmation and deletes id. Declining issues no call.
// It reports whether the record was deleted.
func (c *Controller[T, D]) Delete(ctx context.Context, id int64) (bool, error) {
	if !c.dialogs.Confirm(ctx, "Are you sure?", "This cannot be undone.") {
		return false, nil
	}

	if err := c.res.API.Delete(ctx, id); err != nil {
		c.log.Error(ctx, "failed to delete", "id", id, "err", err)
		c.dialogs.Error(ctx, "Error", fmt.Sprintf("The %s could not be deleted.", c.res.Noun))
		return false, err
	}

	_ = c.Refresh(ctx)
	c.dialogs.Success(ctx, "Deleted", fmt.Sprintf("The %s has been deleted.", c.res.Noun))
	return true, nil
}
