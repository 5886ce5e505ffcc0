package collect_test

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"
	"testing"
	"time"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/fellows/internal/api"
	"github.com/nikbrunner/fellows/internal/api/apitest"
	"github.com/nikbrunner/fellows/internal/collect"
	"github.com/nikbrunner/fellows/internal/model"
	"github.com/nikbrunner/fellows/internal/platform/config"
	"github.com/nikbrunner/fellows/internal/platform/httpclient"
)

func newClient(t *testing.T, baseURL string) *api.Client {
	t.Helper()
	cfg := &config.ClientConfig{
		BaseURL: baseURL,
		Timeout: 2 * time.Second,
		Retry:   config.RetryConfig{MaxAttempts: 1, InitialInterval: time.Millisecond, MaxInterval: time.Millisecond, Multiplier: 1},
		CircuitBreaker: config.CircuitBreakerConfig{
			MaxFailures: 100, Timeout: time.Second, HalfOpenLimit: 1,
		},
	}
	logger := slog.New(slog.DiscardHandler)
	return api.New(httpclient.New(cfg, "backend", logger), logger)
}

func TestFetchAll_CollectsEveryPageInOrder(t *testing.T) {
	_, srv := apitest.Start(t, apitest.Fixtures(42))
	client := newClient(t, srv.URL)

	var mu sync.Mutex
	var progress [][2]int
	filter := model.FilterState{MinStars: 0, PageSize: 10, Page: 3}

	result, err := collect.FetchAll(context.Background(), client, filter, 3, func(done, total int) {
		mu.Lock()
		progress = append(progress, [2]int{done, total})
		mu.Unlock()
	})

	assert.NilError(t, err)
	assert.Equal(t, result.TotalCount, 42)
	assert.Equal(t, result.Pages, 5)
	assert.Equal(t, len(result.Fellowships), 42)
	for i, f := range result.Fellowships {
		assert.Equal(t, f.ID, strconv.Itoa(i))
	}
	assert.Equal(t, len(progress), 5)
	assert.DeepEqual(t, progress[len(progress)-1], [2]int{5, 5})
}

func TestFetchAll_SinglePage(t *testing.T) {
	backend, srv := apitest.Start(t, apitest.Fixtures(4))
	client := newClient(t, srv.URL)

	result, err := collect.FetchAll(context.Background(), client, model.FilterState{PageSize: 10}, 4, nil)

	assert.NilError(t, err)
	assert.Equal(t, result.Pages, 1)
	assert.Equal(t, len(result.Fellowships), 4)
	assert.Equal(t, len(backend.CallsTo("/api/fellowships")), 1)
}

type flakyLister struct {
	total int
	fail  int
}

func (l flakyLister) ListFellowships(_ context.Context, f model.FilterState) (*model.Page, error) {
	if f.Page == l.fail {
		return nil, model.ErrNetwork
	}
	start := (f.Page - 1) * f.PageSize
	end := min(start+f.PageSize, l.total)
	var items []model.Fellowship
	for i := start; i < end; i++ {
		items = append(items, model.Fellowship{ID: strconv.Itoa(i)})
	}
	return &model.Page{TotalCount: l.total, Fellowships: items, HasMore: end < l.total}, nil
}

func TestFetchAll_ReportsFailedPages(t *testing.T) {
	result, err := collect.FetchAll(context.Background(), flakyLister{total: 25, fail: 2}, model.FilterState{PageSize: 10}, 2, nil)

	assert.Assert(t, errors.Is(err, model.ErrNetwork))
	var pageErr *collect.PageError
	assert.Assert(t, errors.As(err, &pageErr))
	assert.Equal(t, pageErr.Page, 2)
	assert.Equal(t, len(result.Fellowships), 15)
}

func TestFetchAll_FirstPageFailure(t *testing.T) {
	result, err := collect.FetchAll(context.Background(), flakyLister{total: 5, fail: 1}, model.FilterState{PageSize: 10}, 2, nil)

	assert.Assert(t, is.Nil(result))
	assert.ErrorContains(t, err, "page 1")
}
