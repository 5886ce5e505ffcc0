package listing

import "github.com/nikbrunner/fellows/internal/model"

// PageLoadedMsg carries the outcome of a page request.
type PageLoadedMsg struct {
	Gen    uint64
	Filter model.FilterState
	Page   *model.Page
	Err    error
}

type StatusMsg struct {
	Status *model.Status
	Err    error
}

type FavoriteSavedMsg struct {
	ID        string
	Favorited bool
	Err       error
}

// ExitFinishedMsg ends the exit animation of a removed card.
type ExitFinishedMsg struct {
	ID string
}

type RemovedMsg struct {
	ID      string
	Err     error
	session uint64
}

// UndoExpiredMsg closes the undo window it was scheduled for.
type UndoExpiredMsg struct {
	seq uint64
}

type UndoneMsg struct {
	ID  string
	Err error
}

// Action names a top-level backend action.
type Action int

const (
	ActionRefresh Action = iota
	ActionProcess
	ActionScrape
	ActionSaveAPIKey
	ActionSaveFilters
)

func (a Action) String() string {
	switch a {
	case ActionRefresh:
		return "refresh"
	case ActionProcess:
		return "process"
	case ActionScrape:
		return "scrape"
	case ActionSaveAPIKey:
		return "save api key"
	case ActionSaveFilters:
		return "save filters"
	default:
		return "unknown"
	}
}

// ActionDoneMsg carries the outcome of a top-level action.
type ActionDoneMsg struct {
	Action Action
	Err    error
}

// ReloadMsg clears the list and fetches page 1 again.
type ReloadMsg struct{}

// NoticeExpiredMsg dismisses the banner it was scheduled for.
type NoticeExpiredMsg struct {
	seq uint64
}
