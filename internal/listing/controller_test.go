package listing_test

import (
	"context"
	"fmt"
	"strconv"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/fellows/internal/listing"
	"github.com/nikbrunner/fellows/internal/model"
)

// fakeBackend serves total fellowships with ids "0".."total-1" and records
// every call. Removed ids are hidden until undone.
type fakeBackend struct {
	total   int
	removed map[string]bool
	errs    map[string]error

	lists      []model.FilterState
	favorites  []string
	removes    []string
	undos      []string
	actions    []string
	scrapes    []model.ScrapeRequest
	apiKeys    []string
	filterSets []model.ScrapeFilters
}

func newFakeBackend(total int) *fakeBackend {
	return &fakeBackend{total: total, removed: map[string]bool{}, errs: map[string]error{}}
}

func (b *fakeBackend) ListFellowships(_ context.Context, filter model.FilterState) (*model.Page, error) {
	b.lists = append(b.lists, filter)
	if err := b.errs["list"]; err != nil {
		return nil, err
	}
	var visible []model.Fellowship
	for i := 0; i < b.total; i++ {
		id := strconv.Itoa(i)
		if b.removed[id] {
			continue
		}
		visible = append(visible, model.Fellowship{ID: id, Title: "Fellowship " + id, InterestRating: i % 5})
	}
	start := min((filter.Page-1)*filter.PageSize, len(visible))
	end := min(start+filter.PageSize, len(visible))
	return &model.Page{
		TotalCount:  len(visible),
		Fellowships: visible[start:end],
		HasMore:     end < len(visible),
	}, nil
}

func (b *fakeBackend) SetFavorite(_ context.Context, id string, favorited bool) error {
	b.favorites = append(b.favorites, fmt.Sprintf("%s=%t", id, favorited))
	return b.errs["favorite"]
}

func (b *fakeBackend) Remove(_ context.Context, id string) error {
	b.removes = append(b.removes, id)
	if err := b.errs["remove"]; err != nil {
		return err
	}
	b.removed[id] = true
	return nil
}

func (b *fakeBackend) Undo(_ context.Context, id string) error {
	b.undos = append(b.undos, id)
	if err := b.errs["undo"]; err != nil {
		return err
	}
	delete(b.removed, id)
	return nil
}

func (b *fakeBackend) Refresh(context.Context) error {
	b.actions = append(b.actions, "refresh")
	return b.errs["refresh"]
}

func (b *fakeBackend) Process(context.Context) error {
	b.actions = append(b.actions, "process")
	return b.errs["process"]
}

func (b *fakeBackend) Scrape(_ context.Context, req model.ScrapeRequest) error {
	b.scrapes = append(b.scrapes, req)
	return b.errs["scrape"]
}

func (b *fakeBackend) SaveFilters(_ context.Context, filters model.ScrapeFilters) error {
	b.filterSets = append(b.filterSets, filters)
	return b.errs["filters"]
}

func (b *fakeBackend) SaveAPIKey(_ context.Context, provider model.APIKeyProvider, key string) error {
	b.apiKeys = append(b.apiKeys, string(provider)+":"+key)
	return b.errs["api_key"]
}

func (b *fakeBackend) Status(context.Context) (*model.Status, error) {
	return &model.Status{DataAvailable: b.total > 0}, nil
}

type scheduled struct {
	d   time.Duration
	msg tea.Msg
}

// harness runs controller commands synchronously. Timers are captured
// instead of started; tests fire them explicitly.
type harness struct {
	t       *testing.T
	backend *fakeBackend
	c       *listing.Controller
	timers  []scheduled
}

func newHarness(t *testing.T, total int) *harness {
	t.Helper()
	h := &harness{t: t, backend: newFakeBackend(total)}
	h.c = listing.New(h.backend, listing.Options{
		Filter: model.DefaultFilterState(),
		Timer: func(d time.Duration, msg tea.Msg) tea.Cmd {
			h.timers = append(h.timers, scheduled{d: d, msg: msg})
			return nil
		},
	})
	return h
}

// loaded returns a harness with the first page already applied.
func loaded(t *testing.T, total int) *harness {
	t.Helper()
	h := newHarness(t, total)
	h.run(h.c.Init())
	return h
}

func (h *harness) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, sub := range batch {
			h.run(sub)
		}
		return
	}
	next, handled := h.c.Update(msg)
	assert.Assert(h.t, handled, "unhandled %T", msg)
	h.run(next)
}

// collect executes cmd without handing the results to the controller.
func (h *harness) collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var msgs []tea.Msg
	for _, sub := range batch {
		msgs = append(msgs, h.collect(sub)...)
	}
	return msgs
}

func (h *harness) deliver(msg tea.Msg) {
	h.run(func() tea.Msg { return msg })
}

// fire delivers the oldest captured timer whose message has the same type
// as like and reports its duration.
func (h *harness) fire(like tea.Msg) time.Duration {
	h.t.Helper()
	want := fmt.Sprintf("%T", like)
	for i, s := range h.timers {
		if fmt.Sprintf("%T", s.msg) == want {
			h.timers = append(h.timers[:i], h.timers[i+1:]...)
			h.deliver(s.msg)
			return s.d
		}
	}
	h.t.Fatalf("no %s timer scheduled", want)
	return 0
}

func cardIDs(cards []listing.Card) []string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return ids
}

func TestController_FirstPage_MoreAvailable(t *testing.T) {
	h := loaded(t, 42)

	assert.Equal(t, h.c.Total(), 42)
	assert.Equal(t, len(h.c.Cards()), 10)
	assert.Assert(t, h.c.HasMore())
	assert.Assert(t, !h.c.AtEnd())
	assert.Assert(t, h.c.Status().DataAvailable)

	assert.Equal(t, len(h.backend.lists), 1)
	req := h.backend.lists[0]
	assert.Equal(t, req.Page, 1)
	assert.Equal(t, req.PageSize, model.DefaultPageSize)
	assert.Equal(t, req.MinStars, model.DefaultMinStars)
}

func TestController_LastPage_ShowsEndMarker(t *testing.T) {
	h := loaded(t, 8)

	assert.Equal(t, h.c.Total(), 8)
	assert.Equal(t, len(h.c.Cards()), 8)
	assert.Assert(t, !h.c.HasMore())
	assert.Assert(t, h.c.AtEnd())
	assert.Assert(t, is.Nil(h.c.NextPage()))
}

func TestController_NextPage_AppendsFollowingPage(t *testing.T) {
	h := loaded(t, 42)

	h.run(h.c.NextPage())

	assert.Equal(t, len(h.backend.lists), 2)
	assert.Equal(t, h.backend.lists[1].Page, 2)
	assert.Equal(t, h.c.Filter().Page, 2)
	assert.Equal(t, len(h.c.Cards()), 20)
	assert.Equal(t, h.c.Cards()[10].ID, "10")

	for h.c.HasMore() {
		h.run(h.c.NextPage())
	}
	assert.Equal(t, h.c.Filter().Page, 5)
	assert.Equal(t, len(h.c.Cards()), 42)
	assert.Assert(t, h.c.AtEnd())
}

func TestController_NextPage_IgnoredWhileLoading(t *testing.T) {
	h := loaded(t, 42)

	inflight := h.c.NextPage()
	assert.Assert(t, inflight != nil)
	assert.Assert(t, h.c.Loading())
	assert.Assert(t, is.Nil(h.c.NextPage()))

	h.run(inflight)
	assert.Equal(t, len(h.backend.lists), 2)
	assert.Equal(t, len(h.c.Cards()), 20)
}

func TestController_SetFilter_ResetsPageAndList(t *testing.T) {
	h := loaded(t, 42)
	h.run(h.c.NextPage())
	assert.Equal(t, h.c.Filter().Page, 2)

	stars := 3
	cmd := h.c.SetFilter(model.FilterPatch{MinStars: &stars})

	assert.Equal(t, h.c.Filter().Page, 1)
	assert.Equal(t, len(h.c.Cards()), 0)
	assert.Assert(t, !h.c.AtEnd())

	h.run(cmd)
	last := h.backend.lists[len(h.backend.lists)-1]
	assert.Equal(t, last.Page, 1)
	assert.Equal(t, last.MinStars, 3)
	assert.Equal(t, len(h.c.Cards()), 10)
	assert.Equal(t, h.c.Cards()[0].ID, "0")
}

func TestController_SetFilter_ClampsStars(t *testing.T) {
	h := loaded(t, 5)

	high, low := 9, -2
	h.run(h.c.SetFilter(model.FilterPatch{MinStars: &high}))
	assert.Equal(t, h.c.Filter().MinStars, model.MaxStars)

	h.run(h.c.SetFilter(model.FilterPatch{MinStars: &low}))
	assert.Equal(t, h.c.Filter().MinStars, model.MinStars)
}

func TestController_StalePageDiscarded(t *testing.T) {
	h := loaded(t, 42)

	on := true
	first := h.c.SetFilter(model.FilterPatch{FavoritesFirst: &on})
	size := 20
	second := h.c.SetFilter(model.FilterPatch{PageSize: &size})

	h.run(second)
	h.run(first)

	assert.Equal(t, len(h.c.Cards()), 20)
	assert.Assert(t, !h.c.Loading())
}

func TestController_LoadFailureKeepsState(t *testing.T) {
	h := loaded(t, 42)
	h.backend.errs["list"] = fmt.Errorf("%w: connection refused", model.ErrNetwork)

	h.run(h.c.NextPage())

	assert.Equal(t, len(h.c.Cards()), 10)
	assert.Equal(t, h.c.Filter().Page, 1)
	assert.Equal(t, h.c.Total(), 42)
	assert.Assert(t, h.c.HasMore())
	assert.Assert(t, !h.c.Loading())

	delete(h.backend.errs, "list")
	h.run(h.c.NextPage())
	assert.Equal(t, h.backend.lists[len(h.backend.lists)-1].Page, 2)
	assert.Equal(t, len(h.c.Cards()), 20)
}

func TestController_ToggleFavorite(t *testing.T) {
	h := loaded(t, 10)

	cmd := h.c.ToggleFavorite("3")
	card, ok := h.c.Card("3")
	assert.Assert(t, ok)
	assert.Assert(t, card.Favorited)

	h.run(cmd)
	assert.DeepEqual(t, h.backend.favorites, []string{"3=true"})

	h.run(h.c.ToggleFavorite("3"))
	card, _ = h.c.Card("3")
	assert.Assert(t, !card.Favorited)
	assert.DeepEqual(t, h.backend.favorites, []string{"3=true", "3=false"})
}

func TestController_ToggleFavorite_RollsBackOnFailure(t *testing.T) {
	h := loaded(t, 10)
	h.backend.errs["favorite"] = &model.ServerError{Status: 404, Message: "Not Found"}

	h.run(h.c.ToggleFavorite("2"))

	card, _ := h.c.Card("2")
	assert.Assert(t, !card.Favorited)
	assert.Equal(t, len(h.backend.favorites), 1)
}

func TestController_ToggleFavorite_UnknownCard(t *testing.T) {
	h := loaded(t, 3)
	assert.Assert(t, is.Nil(h.c.ToggleFavorite("99")))
	assert.Assert(t, is.Nil(h.c.Remove("99")))
}

func TestController_RemoveThenUndo_RefetchesFirstPage(t *testing.T) {
	h := loaded(t, 42)
	h.run(h.c.NextPage())
	listsBefore := len(h.backend.lists)

	h.run(h.c.Remove("7"))

	card, ok := h.c.Card("7")
	assert.Assert(t, ok)
	assert.Assert(t, card.Leaving)
	assert.DeepEqual(t, h.backend.removes, []string{"7"})
	assert.Equal(t, h.c.Total(), 41)
	assert.Equal(t, h.c.Pending().ID, "7")

	assert.Equal(t, h.fire(listing.ExitFinishedMsg{}), listing.DefaultExitAnimation)
	_, ok = h.c.Card("7")
	assert.Assert(t, !ok)
	assert.Equal(t, len(h.c.Cards()), 19)

	h.run(h.c.Undo())

	assert.DeepEqual(t, h.backend.undos, []string{"7"})
	assert.Equal(t, len(h.backend.lists), listsBefore+1)
	assert.Equal(t, h.backend.lists[listsBefore].Page, 1)
	assert.Equal(t, h.c.Filter().Page, 1)
	assert.Equal(t, len(h.c.Cards()), 10)
	assert.Equal(t, h.c.Total(), 42)
	assert.Assert(t, is.Nil(h.c.Pending()))
}

func TestController_UndoAfterWindow_IsNoop(t *testing.T) {
	h := loaded(t, 42)
	h.run(h.c.Remove("7"))

	assert.Equal(t, h.fire(listing.UndoExpiredMsg{}), listing.DefaultUndoWindow)
	assert.Assert(t, is.Nil(h.c.Pending()))

	assert.Assert(t, is.Nil(h.c.Undo()))
	assert.Equal(t, len(h.backend.undos), 0)
	assert.Equal(t, len(h.backend.lists), 1)
}

func TestController_SecondRemove_SupersedesUndoSlot(t *testing.T) {
	h := loaded(t, 42)

	h.run(h.c.Remove("3"))
	h.run(h.c.Remove("4"))
	assert.Equal(t, h.c.Pending().ID, "4")
	assert.Equal(t, h.c.Total(), 40)

	// The window opened for "3" closing must not clear the slot for "4".
	h.fire(listing.UndoExpiredMsg{})
	assert.Equal(t, h.c.Pending().ID, "4")

	h.run(h.c.Undo())
	assert.DeepEqual(t, h.backend.undos, []string{"4"})
	assert.Assert(t, is.Nil(h.c.Undo()))
}

func TestController_RemoveAckAfterRefetch_KeepsServerTotal(t *testing.T) {
	h := loaded(t, 42)

	late := h.collect(h.c.Remove("7"))
	assert.DeepEqual(t, h.backend.removes, []string{"7"})

	on := true
	h.run(h.c.SetFilter(model.FilterPatch{FavoritesFirst: &on}))
	assert.Equal(t, h.c.Total(), 41)

	for _, msg := range late {
		h.deliver(msg)
	}
	assert.Equal(t, h.c.Total(), 41)
}

func TestController_RemoveFailure_KeepsTotal(t *testing.T) {
	h := loaded(t, 42)
	h.backend.errs["remove"] = &model.ServerError{Status: 500, Message: "boom"}

	h.run(h.c.Remove("1"))

	assert.Equal(t, h.c.Total(), 42)
	assert.Equal(t, h.c.Pending().ID, "1")
}

func TestController_UndoFailure_DoesNotReload(t *testing.T) {
	h := loaded(t, 42)
	h.run(h.c.Remove("1"))
	h.backend.errs["undo"] = fmt.Errorf("%w: timeout", model.ErrNetwork)

	h.run(h.c.Undo())

	assert.Equal(t, len(h.backend.lists), 1)
	assert.Assert(t, is.Nil(h.c.Pending()))
}

func TestController_Refresh_NotifiesAndReloads(t *testing.T) {
	h := loaded(t, 42)
	h.run(h.c.NextPage())

	cmd := h.c.Refresh()
	assert.Equal(t, h.c.Notice().Message, "Refreshing data...")
	h.run(cmd)

	notice := h.c.Notice()
	assert.Equal(t, notice.Message, "Data refreshed successfully!")
	assert.Assert(t, !notice.IsError)
	assert.DeepEqual(t, h.backend.actions, []string{"refresh"})
	assert.Equal(t, h.backend.lists[len(h.backend.lists)-1].Page, 1)
	assert.Equal(t, len(h.c.Cards()), 10)
}

func TestController_Notice_OnlyLatestTimerDismisses(t *testing.T) {
	h := loaded(t, 1)
	h.run(h.c.Refresh())

	assert.Equal(t, h.fire(listing.NoticeExpiredMsg{}), listing.DefaultNoticeTimeout)
	assert.Assert(t, h.c.Notice() != nil)

	h.fire(listing.NoticeExpiredMsg{})
	assert.Assert(t, is.Nil(h.c.Notice()))
}

func TestController_ActionFailures(t *testing.T) {
	tests := []struct {
		name string
		op   string
		err  error
		act  func(c *listing.Controller) tea.Cmd
		want string
	}{
		{
			name: "refresh server message",
			op:   "refresh",
			err:  &model.ServerError{Status: 500, Message: "spreadsheet missing"},
			act:  (*listing.Controller).Refresh,
			want: "spreadsheet missing",
		},
		{
			name: "refresh rejected without message",
			op:   "refresh",
			err:  &model.ServerError{Status: 200},
			act:  (*listing.Controller).Refresh,
			want: "Failed to refresh data.",
		},
		{
			name: "refresh network",
			op:   "refresh",
			err:  fmt.Errorf("%w: refused", model.ErrNetwork),
			act:  (*listing.Controller).Refresh,
			want: "Error refreshing data.",
		},
		{
			name: "process rejected",
			op:   "process",
			err:  &model.ServerError{Status: 500},
			act:  (*listing.Controller).Process,
			want: "An unknown error occurred.",
		},
		{
			name: "scrape network",
			op:   "scrape",
			err:  fmt.Errorf("%w: refused", model.ErrNetwork),
			act: func(c *listing.Controller) tea.Cmd {
				return c.Scrape(model.ScrapeRequest{Cleanup: true})
			},
			want: "Error starting scrape.",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := loaded(t, 3)
			h.backend.errs[tc.op] = tc.err
			lists := len(h.backend.lists)

			h.run(tc.act(h.c))

			notice := h.c.Notice()
			assert.Assert(t, notice != nil)
			assert.Equal(t, notice.Message, tc.want)
			assert.Assert(t, notice.IsError)
			assert.Equal(t, len(h.backend.lists), lists)
		})
	}
}

func TestController_Process_ReloadsAfterDelay(t *testing.T) {
	h := loaded(t, 5)

	h.run(h.c.Process())
	assert.Equal(t, h.c.Notice().Message, "Data processed successfully! Reloading...")
	assert.Equal(t, len(h.backend.lists), 1)

	assert.Equal(t, h.fire(listing.ReloadMsg{}), listing.DefaultReloadDelay)
	assert.Equal(t, len(h.backend.lists), 2)
	assert.Equal(t, len(h.c.Cards()), 5)
}

func TestController_Scrape(t *testing.T) {
	h := loaded(t, 1)

	cmd := h.c.Scrape(model.ScrapeRequest{Cleanup: false, Browser: model.BrowserChrome})
	assert.Equal(t, h.c.Notice().Message, "Starting scrape with chrome...")
	h.run(cmd)

	assert.DeepEqual(t, h.backend.scrapes, []model.ScrapeRequest{{Cleanup: false, Browser: model.BrowserChrome}})
	assert.Equal(t, h.c.Notice().Message, "Scraping process started successfully.")
}

func TestController_SaveAPIKey_EmptyNotSent(t *testing.T) {
	h := loaded(t, 1)

	h.run(h.c.SaveAPIKey(model.ProviderGemini, "   "))

	assert.Equal(t, len(h.backend.apiKeys), 0)
	assert.Assert(t, h.c.Notice().IsError)

	h.run(h.c.SaveAPIKey(model.ProviderPerplexity, " pplx-1 "))
	assert.DeepEqual(t, h.backend.apiKeys, []string{"perplexity:pplx-1"})
	assert.Equal(t, h.c.Notice().Message, "API key saved.")
}

func TestController_SaveFilters(t *testing.T) {
	filters := model.ScrapeFilters{Browsing: model.BrowserFirefox}

	t.Run("key then filters", func(t *testing.T) {
		h := loaded(t, 1)
		h.run(h.c.SaveFilters(filters, "gem-1"))

		assert.DeepEqual(t, h.backend.apiKeys, []string{"gemini:gem-1"})
		assert.Equal(t, len(h.backend.filterSets), 1)
		assert.Equal(t, h.c.Notice().Message, "Filters saved.")
	})

	t.Run("key failure stops", func(t *testing.T) {
		h := loaded(t, 1)
		h.backend.errs["api_key"] = &model.ServerError{Status: 400, Message: "invalid key"}
		h.run(h.c.SaveFilters(filters, "bad"))

		assert.Equal(t, len(h.backend.filterSets), 0)
		assert.Equal(t, h.c.Notice().Message, "invalid key")
	})

	t.Run("no key", func(t *testing.T) {
		h := loaded(t, 1)
		h.run(h.c.SaveFilters(filters, ""))

		assert.Equal(t, len(h.backend.apiKeys), 0)
		assert.Equal(t, len(h.backend.filterSets), 1)
	})
}
