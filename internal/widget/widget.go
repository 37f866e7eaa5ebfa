// Package widget implements the city autocomplete that sits on the weather
// form. It is bound to three UI handles (the city input, the suggestion list
// and the form) passed in explicitly, so any front end that can provide them
// can host it.
//
// Typing triggers a lookup once the trimmed text reaches the minimum length.
// Only the latest lookup may update the list: starting a new one cancels the
// previous one, and a response that arrives for a superseded query is dropped.
package widget

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"weatherlookup/internal/logger"
	"weatherlookup/internal/model"
	"weatherlookup/internal/service"
)

// DefaultTimeout bounds a single lookup.
const DefaultTimeout = 5 * time.Second

// ErrMissingHandle is returned by New when a UI handle is nil.
var ErrMissingHandle = errors.New("widget: missing ui handle")

// Input is the city text field.
type Input interface {
	// Value is the current text of the field.
	Value() string
	SetValue(value string)
	// InitialValue is the value the field was rendered with, e.g. the last
	// searched city.
	InitialValue() string
}

// List is the suggestion container. Replace swaps the whole content; an empty
// slice clears it.
type List interface {
	Replace(items []model.Suggestion)
}

// Form is the weather form the input belongs to.
type Form interface {
	Submit(ctx context.Context, city string) error
}

// Node is an element inside the list that received a click.
type Node interface {
	// Parent returns the enclosing node, or nil at the list root.
	Parent() Node
	// Payload returns the full value when the node is a suggestion item.
	Payload() (string, bool)
}

// Suggester produces suggestions for a normalized query.
type Suggester interface {
	Eligible(query string) bool
	Suggest(ctx context.Context, query string) ([]model.Suggestion, error)
}

// Option configures a Widget.
type Option func(*Widget)

// WithTimeout sets the per-lookup timeout.
func WithTimeout(d time.Duration) Option {
	return func(w *Widget) {
		if d > 0 {
			w.timeout = d
		}
	}
}

// WithErrorHandler receives lookup failures. Superseded lookups are not
// reported. The default logs at warn level.
func WithErrorHandler(fn func(query string, err error)) Option {
	return func(w *Widget) {
		if fn != nil {
			w.onError = fn
		}
	}
}

// WithLogger sets the logger used by the default error handler. Without it
// failures are logged as JSON to stderr.
func WithLogger(log *logger.Logger) Option {
	return func(w *Widget) {
		if log != nil {
			w.log = log
		}
	}
}

// Widget is the city autocomplete bound to one input, list and form.
type Widget struct {
	input     Input
	list      List
	form      Form
	suggester Suggester
	timeout   time.Duration
	onError   func(query string, err error)
	log       *logger.Logger

	// mu serializes every write to input and list along with the lookup state.
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	closed bool
	wg     sync.WaitGroup
}

// New binds a widget to its UI handles.
func New(input Input, list List, form Form, suggester Suggester, opts ...Option) (*Widget, error) {
	switch {
	case input == nil:
		return nil, errors.Join(ErrMissingHandle, errors.New("input"))
	case list == nil:
		return nil, errors.Join(ErrMissingHandle, errors.New("suggestion list"))
	case form == nil:
		return nil, errors.Join(ErrMissingHandle, errors.New("form"))
	case suggester == nil:
		return nil, errors.New("widget: missing suggester")
	}

	w := &Widget{
		input:     input,
		list:      list,
		form:      form,
		suggester: suggester,
		timeout:   DefaultTimeout,
		log:       logger.NewWithWriter("production", os.Stderr),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.onError == nil {
		w.onError = func(query string, err error) {
			w.log.Warn("suggestion lookup failed", "query", query, "error", err)
		}
	}
	return w, nil
}

// OnInput handles an input change. Short queries clear the list right away;
// others start an asynchronous lookup that replaces the list when it finishes.
func (w *Widget) OnInput(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}

	query := service.NormalizeQuery(w.input.Value())
	seq := w.supersede()

	if !w.suggester.Eligible(query) {
		w.list.Replace([]model.Suggestion{})
		return
	}

	lookupCtx, cancel := context.WithTimeout(ctx, w.timeout)
	w.cancel = cancel
	w.wg.Add(1)
	go w.lookup(lookupCtx, cancel, seq, query)
}

func (w *Widget) lookup(ctx context.Context, cancel context.CancelFunc, seq uint64, query string) {
	defer w.wg.Done()
	defer cancel()

	items, err := w.suggester.Suggest(ctx, query)

	w.mu.Lock()
	if seq != w.seq {
		w.mu.Unlock()
		return
	}
	w.cancel = nil
	if err != nil {
		w.list.Replace([]model.Suggestion{})
		w.mu.Unlock()
		if !errors.Is(err, context.Canceled) {
			w.onError(query, err)
		}
		return
	}
	w.list.Replace(items)
	w.mu.Unlock()
}

// Select handles a click inside the list. It walks up from node to the
// nearest suggestion item, writes the item's value into the input and clears
// the list. A click that hits no item changes nothing and returns false.
func (w *Widget) Select(node Node) bool {
	value, ok := nearestPayload(node)
	if !ok {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return false
	}
	w.supersede()
	w.input.SetValue(value)
	w.list.Replace([]model.Suggestion{})
	return true
}

// PreselectLastCity writes the input's initial value, or failing that its
// current value, back into the field and returns it. Nothing calls it
// implicitly; the hosting page decides when to.
func (w *Widget) PreselectLastCity() string {
	w.mu.Lock()
	defer w.mu.Unlock()

	last := w.input.InitialValue()
	if last == "" {
		last = w.input.Value()
	}
	if last == "" {
		return ""
	}
	w.input.SetValue(last)
	return last
}

// Submit clears the suggestions and submits the form with the input value.
func (w *Widget) Submit(ctx context.Context) error {
	w.mu.Lock()
	value := w.input.Value()
	w.supersede()
	w.list.Replace([]model.Suggestion{})
	w.mu.Unlock()

	return w.form.Submit(ctx, value)
}

// Wait blocks until every started lookup has finished.
func (w *Widget) Wait() {
	w.wg.Wait()
}

// Close cancels the pending lookup and stops reacting to events.
func (w *Widget) Close() {
	w.mu.Lock()
	w.closed = true
	w.supersede()
	w.mu.Unlock()
	w.wg.Wait()
}

// supersede invalidates the in-flight lookup and returns the new sequence
// number. Callers hold mu.
func (w *Widget) supersede() uint64 {
	w.seq++
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	return w.seq
}

func nearestPayload(node Node) (string, bool) {
	for n := node; n != nil; n = n.Parent() {
		if v, ok := n.Payload(); ok {
			return v, true
		}
	}
	return "", false
}
