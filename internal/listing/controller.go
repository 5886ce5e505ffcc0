// Package listing holds the fellowship listing state: the current filter, the
// loaded cards, the single undo slot and the notification banner. It never
// blocks; every backend call and timer is returned as a tea.Cmd and its outcome
// comes back through Update.
package listing

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/fellows/internal/model"
)

// Backend is the subset of the REST client the controller needs.
type Backend interface {
	ListFellowships(ctx context.Context, filter model.FilterState) (*model.Page, error)
	SetFavorite(ctx context.Context, id string, favorited bool) error
	Remove(ctx context.Context, id string) error
	Undo(ctx context.Context, id string) error
	Refresh(ctx context.Context) error
	Process(ctx context.Context) error
	Scrape(ctx context.Context, req model.ScrapeRequest) error
	SaveFilters(ctx context.Context, filters model.ScrapeFilters) error
	SaveAPIKey(ctx context.Context, provider model.APIKeyProvider, key string) error
	Status(ctx context.Context) (*model.Status, error)
}

// Timer delivers msg after d. The default is tea.Tick.
type Timer func(d time.Duration, msg tea.Msg) tea.Cmd

func tick(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

// Card is a fellowship in the display list.
type Card struct {
	model.Fellowship
	Leaving bool // exit animation running, removed from the list when it ends
}

// PendingRemoval is the single undo slot.
type PendingRemoval struct {
	ID  string
	seq uint64
}

// Notice is the transient banner shown for top-level actions.
type Notice struct {
	Message string
	IsError bool
	seq     uint64
}

// Options tunes a Controller. Zero durations take the defaults.
type Options struct {
	Filter         model.FilterState
	UndoWindow     time.Duration
	NoticeTimeout  time.Duration
	ExitAnimation  time.Duration
	ReloadDelay    time.Duration
	RequestTimeout time.Duration
	Logger         *slog.Logger
	Timer          Timer
}

const (
	DefaultUndoWindow     = 5 * time.Second
	DefaultNoticeTimeout  = 5 * time.Second
	DefaultExitAnimation  = 300 * time.Millisecond
	DefaultReloadDelay    = 2 * time.Second
	DefaultRequestTimeout = 15 * time.Second
)

// Controller is not safe for concurrent use. It is owned by the bubbletea
// Update loop.
type Controller struct {
	backend Backend
	logger  *slog.Logger
	timer   Timer

	undoWindow     time.Duration
	noticeTimeout  time.Duration
	exitAnimation  time.Duration
	reloadDelay    time.Duration
	requestTimeout time.Duration

	filter  model.FilterState
	cards   []Card
	total   int
	hasMore bool
	loading bool
	loaded  bool
	status  *model.Status

	// gen identifies the latest page request; older responses are dropped.
	gen uint64
	// session changes whenever the list restarts from page 1. A total
	// fetched in a newer session already reflects earlier removals.
	session uint64

	pending    *PendingRemoval
	removalSeq uint64

	notice    *Notice
	noticeSeq uint64
}

// New creates a controller. Call Init (or Reload) to fetch the first page.
func New(backend Backend, opts Options) *Controller {
	c := &Controller{
		backend:        backend,
		logger:         opts.Logger,
		timer:          opts.Timer,
		undoWindow:     orDefault(opts.UndoWindow, DefaultUndoWindow),
		noticeTimeout:  orDefault(opts.NoticeTimeout, DefaultNoticeTimeout),
		exitAnimation:  orDefault(opts.ExitAnimation, DefaultExitAnimation),
		reloadDelay:    orDefault(opts.ReloadDelay, DefaultReloadDelay),
		requestTimeout: orDefault(opts.RequestTimeout, DefaultRequestTimeout),
		filter:         opts.Filter,
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	if c.timer == nil {
		c.timer = tick
	}
	if c.filter.PageSize <= 0 {
		c.filter.PageSize = model.DefaultPageSize
	}
	c.filter.MinStars = model.ClampStars(c.filter.MinStars)
	c.filter.Page = 1
	return c
}

func orDefault(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}

// Init loads the first page and the backend status.
func (c *Controller) Init() tea.Cmd {
	return tea.Batch(c.loadPage(c.filter), c.checkStatus())
}

func (c *Controller) Filter() model.FilterState { return c.filter }

// Cards returns the display list. The slice must not be modified.
func (c *Controller) Cards() []Card { return c.cards }

func (c *Controller) Total() int { return c.total }

// HasMore reports whether the load-more affordance should be shown.
func (c *Controller) HasMore() bool { return c.hasMore }

// AtEnd reports whether the end-of-results marker should be shown.
func (c *Controller) AtEnd() bool { return c.loaded && !c.hasMore && !c.loading }

func (c *Controller) Loading() bool { return c.loading }

// Loaded reports whether at least one page arrived in this filter session.
func (c *Controller) Loaded() bool { return c.loaded }

// Pending returns the undo slot, or nil when nothing can be undone.
func (c *Controller) Pending() *PendingRemoval { return c.pending }

// Notice returns the banner, or nil.
func (c *Controller) Notice() *Notice { return c.notice }

// Status returns the last known backend status, or nil.
func (c *Controller) Status() *model.Status { return c.status }

// Card returns the card with id.
func (c *Controller) Card(id string) (Card, bool) {
	if i := c.indexOf(id); i >= 0 {
		return c.cards[i], true
	}
	return Card{}, false
}

func (c *Controller) indexOf(id string) int {
	for i := range c.cards {
		if c.cards[i].ID == id {
			return i
		}
	}
	return -1
}

// call wraps a backend call in a command bounded by the request timeout.
func (c *Controller) call(fn func(ctx context.Context) tea.Msg) tea.Cmd {
	timeout := c.requestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return fn(ctx)
	}
}

// Update applies a message produced by one of the controller's commands.
// It reports false for messages it does not own.
func (c *Controller) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case PageLoadedMsg:
		c.applyPage(msg)
		return nil, true
	case StatusMsg:
		c.applyStatus(msg)
		return nil, true
	case FavoriteSavedMsg:
		c.applyFavorite(msg)
		return nil, true
	case ExitFinishedMsg:
		c.finishExit(msg)
		return nil, true
	case RemovedMsg:
		c.applyRemoved(msg)
		return nil, true
	case UndoExpiredMsg:
		c.expireUndo(msg)
		return nil, true
	case UndoneMsg:
		return c.applyUndone(msg), true
	case ActionDoneMsg:
		return c.applyAction(msg), true
	case ReloadMsg:
		return c.Reload(), true
	case NoticeExpiredMsg:
		c.expireNotice(msg)
		return nil, true
	}
	return nil, false
}
