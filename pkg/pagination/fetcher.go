package pagination

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/retailops/yango-b2b-mcp/pkg/models"
)

// DefaultMaxPages bounds a full-listing walk when the caller does not
// supply its own limit.
const DefaultMaxPages = 1000

// PageFunc fetches a single page of a listing. A nil cursor requests the
// first page.
type PageFunc[T any] func(ctx context.Context, cursor *string) (models.Page[T], error)

// FetchAll walks a cursor-paginated listing to completion, appending items
// in page order. The walk stops when the server returns a nil cursor, an
// empty page, or after maxPages pages. Any page error fails the whole walk
// with the underlying error; pages already fetched are discarded so a
// truncated listing is never returned as success.
func FetchAll[T any](ctx context.Context, fetch PageFunc[T], maxPages int) ([]T, error) {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	start := time.Now()

	var (
		items  []T
		cursor *string
	)

	for page := 1; page <= maxPages; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		p, err := fetch(ctx, cursor)
		if err != nil {
			return nil, fmt.Errorf("fetch page %d: %w", page, err)
		}

		if len(p.Items) == 0 {
			log.Debug().
				Int("pages", page-1).
				Msg("Listing exhausted: empty page")
			break
		}

		items = append(items, p.Items...)

		if p.NextCursor == nil || *p.NextCursor == "" {
			log.Debug().
				Int("pages", page).
				Msg("Listing exhausted: no continuation cursor")
			break
		}
		cursor = p.NextCursor

		if page == maxPages {
			log.Warn().
				Int("max_pages", maxPages).
				Int("items", len(items)).
				Msg("Listing walk stopped at page bound")
		}
	}

	log.Debug().
		Int("items", len(items)).
		Dur("duration", time.Since(start)).
		Msg("Listing walk complete")

	return items, nil
}
