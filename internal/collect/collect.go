// Package collect fetches every page of a listing concurrently.
package collect

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nikbrunner/fellows/internal/model"
)

// Lister fetches one page of fellowships.
type Lister interface {
	ListFellowships(ctx context.Context, filter model.FilterState) (*model.Page, error)
}

// ProgressFunc is called after each page is fetched.
// completed is the number of pages fetched so far, total is the page count.
type ProgressFunc func(completed, total int)

// Result is the concatenation of all pages, in page order.
type Result struct {
	Fellowships []model.Fellowship
	TotalCount  int
	Pages       int
}

// PageError records a page that could not be fetched.
type PageError struct {
	Page int
	Err  error
}

func (e *PageError) Error() string { return fmt.Sprintf("page %d: %v", e.Page, e.Err) }
func (e *PageError) Unwrap() error { return e.Err }

// FetchAll loads page 1 to learn the total, then fetches the remaining pages
// with a pool of concurrency workers. Pages that fail are left out of the
// result and reported together in the returned error; the result is still
// usable.
func FetchAll(ctx context.Context, lister Lister, filter model.FilterState, concurrency int, onProgress ProgressFunc) (*Result, error) {
	if filter.PageSize <= 0 {
		filter.PageSize = model.DefaultPageSize
	}
	if concurrency < 1 {
		concurrency = 1
	}

	first, err := lister.ListFellowships(ctx, filter.Apply(model.FilterPatch{}))
	if err != nil {
		return nil, &PageError{Page: 1, Err: err}
	}

	pageCount := 1
	if first.HasMore {
		pageCount = (first.TotalCount + filter.PageSize - 1) / filter.PageSize
		pageCount = max(pageCount, 2)
	}
	if onProgress != nil {
		onProgress(1, pageCount)
	}

	pages := make([][]model.Fellowship, pageCount)
	pages[0] = first.Fellowships

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		completed = 1
		failures  []error
	)

	jobs := make(chan int, pageCount)
	for w := 0; w < min(concurrency, pageCount-1); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				pageFilter := filter
				pageFilter.Page = idx + 1

				page, err := lister.ListFellowships(ctx, pageFilter)

				mu.Lock()
				if err != nil {
					failures = append(failures, &PageError{Page: idx + 1, Err: err})
				} else {
					pages[idx] = page.Fellowships
				}
				completed++
				if onProgress != nil {
					onProgress(completed, pageCount)
				}
				mu.Unlock()
			}
		}()
	}

	for idx := 1; idx < pageCount; idx++ {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	result := &Result{TotalCount: first.TotalCount, Pages: pageCount}
	for _, p := range pages {
		result.Fellowships = append(result.Fellowships, p...)
	}
	return result, errors.Join(failures...)
}
