// Package throttle debounces query changes into registry lookups and applies
// only the response to the most recently issued lookup.
package throttle

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/favnpm/internal/log"
	"github.com/zjrosen/favnpm/internal/registry"
)

// DefaultWindow is the quiet period after the last query change before a
// lookup is issued.
const DefaultWindow = 300 * time.Millisecond

// Searcher performs a registry lookup.
type Searcher interface {
	Search(ctx context.Context, query string) ([]registry.Package, error)
}

// debounceMsg fires when a quiet period ends.
type debounceMsg struct {
	version int // Only dispatch if this matches the current version
}

// ResultMsg carries the response to a lookup.
type ResultMsg struct {
	Token    uint64
	Query    string
	Packages []registry.Package
	Err      error
}

// Controller owns the query value, the debounce timer, and the current result
// set. It is a value type; the zero value is not usable, use New.
type Controller struct {
	searcher Searcher
	window   time.Duration

	query   string
	version int    // incremented on every query change
	token   uint64 // incremented on every dispatched lookup
	cancel  context.CancelFunc

	results  []registry.Package
	loading  bool
	err      error
	applied  bool
	snapshot int
}

// New returns a Controller dispatching to searcher after window of quiet.
func New(searcher Searcher, window time.Duration) Controller {
	if window <= 0 {
		window = DefaultWindow
	}
	return Controller{searcher: searcher, window: window}
}

// SetQuery records a query change. A non-empty query schedules a lookup after
// the quiet window; an empty one clears the results without any lookup.
func (c Controller) SetQuery(q string) (Controller, tea.Cmd) {
	if q == c.query {
		return c, nil
	}
	c.query = q
	c.version++

	if strings.TrimSpace(q) == "" {
		c = c.invalidate()
		if len(c.results) > 0 || c.err != nil {
			c.results = nil
			c.err = nil
			c.snapshot++
		}
		return c, nil
	}

	version := c.version
	return c, tea.Tick(c.window, func(time.Time) tea.Msg {
		return debounceMsg{version: version}
	})
}

// Update handles debounce ticks and lookup responses.
func (c Controller) Update(msg tea.Msg) (Controller, tea.Cmd) {
	switch msg := msg.(type) {
	case debounceMsg:
		if msg.version != c.version {
			return c, nil
		}
		return c.dispatch()

	case ResultMsg:
		return c.apply(msg), nil
	}
	return c, nil
}

func (c Controller) dispatch() (Controller, tea.Cmd) {
	c = c.invalidate()

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.loading = true

	token, query, searcher := c.token, strings.TrimSpace(c.query), c.searcher
	log.Debug(log.CatSearch, "dispatching lookup", "query", query, "token", token)

	return c, func() tea.Msg {
		pkgs, err := searcher.Search(ctx, query)
		return ResultMsg{Token: token, Query: query, Packages: pkgs, Err: err}
	}
}

func (c Controller) apply(msg ResultMsg) Controller {
	if msg.Token != c.token {
		log.Debug(log.CatSearch, "discarding stale result", "query", msg.Query, "token", msg.Token, "latest", c.token)
		return c
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.loading = false

	if errors.Is(msg.Err, context.Canceled) {
		c.applied = false
		return c
	}
	if msg.Err != nil {
		log.ErrorErr(log.CatSearch, "lookup failed", msg.Err, "query", msg.Query)
		c.err = msg.Err
		c.applied = false
		return c
	}

	c.results = msg.Packages
	c.err = nil
	c.applied = true
	c.snapshot++
	return c
}

// invalidate cancels any in-flight lookup and advances the token so its
// response, if it still arrives, is discarded.
func (c Controller) invalidate() Controller {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.token++
	c.loading = false
	return c
}

// Reset returns the controller to its initial state, keeping its searcher and
// window. Any in-flight lookup is abandoned.
func (c Controller) Reset() Controller {
	c = c.invalidate()
	c.version++
	c.query = ""
	c.err = nil
	c.applied = false
	if len(c.results) > 0 {
		c.results = nil
		c.snapshot++
	}
	return c
}

// Query returns the latest query value.
func (c Controller) Query() string { return c.query }

// Results returns the most recently applied result set.
func (c Controller) Results() []registry.Package { return c.results }

// Loading reports whether a lookup for the current token is outstanding.
func (c Controller) Loading() bool { return c.loading }

// Err returns the failure of the latest lookup, if it failed.
func (c Controller) Err() error { return c.err }

// Applied reports whether the last handled response replaced the results.
func (c Controller) Applied() bool { return c.applied }

// Snapshot counts result-set replacements; it changes whenever Results does.
func (c Controller) Snapshot() int { return c.snapshot }

// Contains reports whether name is in the current results.
func (c Controller) Contains(name string) bool {
	for _, p := range c.results {
		if p.Name == name {
			return true
		}
	}
	return false
}
