package cloudinary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Chapsvision-dev/cloudinary-migrate/internal/provider"
)

type resourceJSON struct {
	AssetID      string    `json:"asset_id"`
	PublicID     string    `json:"public_id"`
	Format       string    `json:"format"`
	Version      int64     `json:"version"`
	ResourceType string    `json:"resource_type"`
	Type         string    `json:"type"`
	CreatedAt    time.Time `json:"created_at"`
	Bytes        int64     `json:"bytes"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	Folder       string    `json:"folder"`
	SecureURL    string    `json:"secure_url"`
}

type listResponse struct {
	Resources  []resourceJSON `json:"resources"`
	NextCursor string         `json:"next_cursor"`
}

// ListResources fetches one page of resources with delivery type "upload".
func (c *Client) ListResources(ctx context.Context, opts provider.ListOptions) (provider.Page, error) {
	rt := opts.ResourceType
	if rt == "" {
		rt = "image"
	}
	q := url.Values{}
	if opts.MaxResults > 0 {
		q.Set("max_results", strconv.Itoa(opts.MaxResults))
	}
	if opts.Cursor != "" {
		q.Set("next_cursor", opts.Cursor)
	}
	u := c.endpoint("resources", rt, "upload")
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := newRequest(ctx, http.MethodGet, u, nil)
	if err != nil {
		return provider.Page{}, err
	}
	req.SetBasicAuth(c.apiKey, c.apiSecret)

	start := time.Now()
	body, err := c.do(req)
	if err != nil {
		log.Debug().Err(err).Str("action", "cloudinary_list").Str("cloud", c.cloud).Msg("list failed")
		return provider.Page{}, fmt.Errorf("list resources: %w", err)
	}

	var out listResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return provider.Page{}, fmt.Errorf("decode list response: %w", err)
	}

	page := provider.Page{
		Resources:  make([]provider.Resource, 0, len(out.Resources)),
		NextCursor: out.NextCursor,
	}
	for _, r := range out.Resources {
		page.Resources = append(page.Resources, provider.Resource{
			AssetID:      r.AssetID,
			PublicID:     r.PublicID,
			SecureURL:    r.SecureURL,
			Folder:       r.Folder,
			ResourceType: r.ResourceType,
			Type:         r.Type,
			Format:       r.Format,
			Version:      r.Version,
			Bytes:        r.Bytes,
			Width:        r.Width,
			Height:       r.Height,
			CreatedAt:    r.CreatedAt,
		})
	}

	log.Debug().
		Str("action", "cloudinary_list").
		Str("cloud", c.cloud).
		Int("count", len(page.Resources)).
		Bool("more", page.NextCursor != "").
		Dur("elapsed_ms", time.Since(start)).
		Msg("page fetched")
	return page, nil
}
