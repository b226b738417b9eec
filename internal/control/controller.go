package control

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/five82/speakerctl/internal/logging"
	"github.com/five82/speakerctl/internal/speaker"
	"github.com/five82/speakerctl/internal/state"
)

// Operation names reported in [Result.Op] and log entries.
const (
	OpAction  = "action"
	OpReset   = "reset"
	OpVolume  = "volume"
	OpStream  = "stream"
	OpPlay    = "play"
	OpDevices = "devices"
	OpCatalog = "catalog"
)

// Result describes the outcome of one remote call.
type Result struct {
	ID     string
	Op     string
	Method string
	Path   string
	Err    error
	Stale  bool // list response arrived after a newer request was issued
}

// Observer is notified after every remote call. It may be invoked from any
// goroutine and must not block.
type Observer func(Result)

// Options configure a Controller.
type Options struct {
	Client   speaker.API
	Store    *state.Store
	Logger   *log.Logger
	Observer Observer
	// EagerClear empties the catalog when a load is issued instead of when a
	// new catalog arrives. A failed load then leaves the catalog empty.
	EagerClear bool
}

// Controller is the dispatch layer between user actions and the control server.
type Controller struct {
	api        speaker.API
	store      *state.Store
	logger     *log.Logger
	observer   Observer
	eagerClear bool
	inflight   sync.WaitGroup
}

// New builds a Controller. A nil Store or Logger is replaced with a fresh
// store and a discarding logger.
func New(opts Options) *Controller {
	if opts.Store == nil {
		opts.Store = &state.Store{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	return &Controller{
		api:        opts.Client,
		store:      opts.Store,
		logger:     opts.Logger,
		observer:   opts.Observer,
		eagerClear: opts.EagerClear,
	}
}

// Store returns the session store the controller writes to.
func (c *Controller) Store() *state.Store {
	return c.store
}

// Wait blocks until every fire-and-forget call issued so far has finished.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

// fire runs send on its own goroutine. The outcome is logged, recorded and
// reported, never returned.
func (c *Controller) fire(ctx context.Context, op string, send func(context.Context) (speaker.Call, error)) {
	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		call, err := send(ctx)
		c.store.Record(err)
		c.report(op, call, err, false)
	}()
}

func (c *Controller) report(op string, call speaker.Call, err error, stale bool) {
	if err != nil {
		c.logger.Error("request failed", "op", op, "method", call.Method, "path", call.Path, "id", call.ID, "err", err)
	} else if stale {
		c.logger.Debug("discarding stale response", "op", op, "path", call.Path, "id", call.ID)
	} else {
		c.logger.Debug("request ok", "op", op, "method", call.Method, "path", call.Path, "id", call.ID)
	}
	if c.observer != nil {
		c.observer(Result{ID: call.ID, Op: op, Method: call.Method, Path: call.Path, Err: err, Stale: stale})
	}
}
