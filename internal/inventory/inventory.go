package inventory

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/Chapsvision-dev/cloudinary-migrate/internal/provider"
)

// Options controls the source enumeration.
type Options struct {
	// ResourceType to list (default: image).
	ResourceType string
	// PageSize is the max_results of each listing call (default: 500).
	PageSize int
	// OnPage runs after each page with its 1-based number, its size and the running total.
	OnPage func(page, count, total int)
}

// Result is the ordered collection of every resource found.
type Result struct {
	Resources []provider.Resource
	Pages     int
}

// Collect pages through all uploaded resources of src until the cursor is
// exhausted. A failed listing call aborts the enumeration.
func Collect(ctx context.Context, src provider.Lister, opt Options) (Result, error) {
	var res Result

	rt := opt.ResourceType
	if rt == "" {
		rt = "image"
	}
	size := opt.PageSize
	if size <= 0 {
		size = 500
	}

	start := time.Now()
	cursor := ""
	for {
		page, err := src.ListResources(ctx, provider.ListOptions{
			ResourceType: rt,
			MaxResults:   size,
			Cursor:       cursor,
		})
		if err != nil {
			log.Error().
				Err(err).
				Str("action", "list_resources").
				Int("page", res.Pages+1).
				Int("collected", len(res.Resources)).
				Msg("listing failed")
			return Result{}, errors.Wrapf(err, "list page %d", res.Pages+1)
		}

		res.Resources = append(res.Resources, page.Resources...)
		res.Pages++
		if opt.OnPage != nil {
			opt.OnPage(res.Pages, len(page.Resources), len(res.Resources))
		}

		cursor = page.NextCursor
		if cursor == "" {
			break
		}
	}

	log.Info().
		Str("action", "list_resources").
		Int("pages", res.Pages).
		Int("resources", len(res.Resources)).
		Dur("elapsed_ms", time.Since(start)).
		Msg("enumeration OK")
	return res, nil
}
