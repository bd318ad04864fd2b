package inventory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chapsvision-dev/cloudinary-migrate/internal/provider"
)

// pagedLister serves pre-built pages, chaining them with synthetic cursors.
type pagedLister struct {
	sizes  []int
	calls  []provider.ListOptions
	failAt int // 1-based call number that fails; 0 never
}

func (l *pagedLister) ListResources(_ context.Context, opts provider.ListOptions) (provider.Page, error) {
	l.calls = append(l.calls, opts)
	n := len(l.calls)
	if n == l.failAt {
		return provider.Page{}, errors.New("503 service unavailable")
	}

	idx := n - 1
	page := provider.Page{}
	for i := 0; i < l.sizes[idx]; i++ {
		page.Resources = append(page.Resources, provider.Resource{PublicID: fmt.Sprintf("p%d-%d", idx, i)})
	}
	if idx < len(l.sizes)-1 {
		page.NextCursor = fmt.Sprintf("cursor-%d", idx+1)
	}
	return page, nil
}

func TestCollect_ThreePages(t *testing.T) {
	l := &pagedLister{sizes: []int{500, 500, 137}}

	var pages [][3]int
	res, err := Collect(context.Background(), l, Options{
		OnPage: func(page, count, total int) { pages = append(pages, [3]int{page, count, total}) },
	})
	require.NoError(t, err)

	assert.Len(t, res.Resources, 1137)
	assert.Equal(t, 3, res.Pages)
	require.Len(t, l.calls, 3)

	assert.Equal(t, "", l.calls[0].Cursor)
	assert.Equal(t, "cursor-1", l.calls[1].Cursor)
	assert.Equal(t, "cursor-2", l.calls[2].Cursor)
	for _, c := range l.calls {
		assert.Equal(t, 500, c.MaxResults)
		assert.Equal(t, "image", c.ResourceType)
	}

	assert.Equal(t, [][3]int{{1, 500, 500}, {2, 500, 1000}, {3, 137, 1137}}, pages)

	// Order is preserved across pages.
	assert.Equal(t, "p0-0", res.Resources[0].PublicID)
	assert.Equal(t, "p1-0", res.Resources[500].PublicID)
	assert.Equal(t, "p2-136", res.Resources[1136].PublicID)
}

func TestCollect_EmptyAccount(t *testing.T) {
	l := &pagedLister{sizes: []int{0}}

	res, err := Collect(context.Background(), l, Options{PageSize: 100, ResourceType: "video"})
	require.NoError(t, err)
	assert.Empty(t, res.Resources)
	assert.Equal(t, 1, res.Pages)
	assert.Equal(t, 100, l.calls[0].MaxResults)
	assert.Equal(t, "video", l.calls[0].ResourceType)
}

func TestCollect_ListingErrorIsFatal(t *testing.T) {
	l := &pagedLister{sizes: []int{500, 500, 137}, failAt: 2}

	res, err := Collect(context.Background(), l, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list page 2")
	assert.Contains(t, err.Error(), "503 service unavailable")
	assert.Empty(t, res.Resources)
	// No retry on the failed call.
	assert.Len(t, l.calls, 2)
}
