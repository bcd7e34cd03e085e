package slack

import "context"

// page is one raw response unit: a slice of items plus the cursor for
// the next page, empty when the result set is exhausted.
type page[T any] struct {
	items  []T
	cursor string
}

// fetchPage issues the API call for a single page. An empty cursor
// requests the first page.
type fetchPage[T any] func(ctx context.Context, cursor string) (page[T], error)

// collectPages walks a cursor-paginated endpoint until the cursor is
// exhausted or limit items have accumulated, preserving arrival order.
// A non-positive limit is rejected before any network call. Page fetches
// are strictly sequential (each cursor depends on the previous page) and
// any page failure discards the partial accumulation.
func collectPages[T any](ctx context.Context, limit int, fetch fetchPage[T]) ([]T, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	return walkPages(ctx, limit, fetch)
}

// collectAllPages walks a cursor-paginated endpoint to exhaustion, used
// for directory listings where the full set is needed.
func collectAllPages[T any](ctx context.Context, fetch fetchPage[T]) ([]T, error) {
	return walkPages(ctx, 0, fetch)
}

func walkPages[T any](ctx context.Context, limit int, fetch fetchPage[T]) ([]T, error) {
	var items []T
	cursor := ""

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pg, err := fetch(ctx, cursor)
		if err != nil {
			return nil, err
		}

		items = append(items, pg.items...)

		if limit > 0 && len(items) >= limit {
			return items[:limit], nil
		}
		if pg.cursor == "" {
			return items, nil
		}
		cursor = pg.cursor
	}
}
