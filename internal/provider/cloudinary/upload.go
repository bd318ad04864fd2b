package cloudinary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Chapsvision-dev/cloudinary-migrate/internal/provider"
	"github.com/Chapsvision-dev/cloudinary-migrate/internal/util"
)

type uploadResponse struct {
	PublicID  string `json:"public_id"`
	Version   int64  `json:"version"`
	SecureURL string `json:"secure_url"`
	Existing  bool   `json:"existing"`
}

// UploadFromURL asks the API to fetch req.URL and store it under req.PublicID.
// With Overwrite false an already existing public ID yields ErrDuplicate.
func (c *Client) UploadFromURL(ctx context.Context, req provider.UploadRequest) (provider.UploadResult, error) {
	if strings.TrimSpace(req.URL) == "" {
		return provider.UploadResult{}, fmt.Errorf("upload: source url is empty")
	}
	rt := req.ResourceType
	if rt == "" {
		rt = "image"
	}

	params := url.Values{}
	params.Set("public_id", req.PublicID)
	if req.Folder != "" {
		params.Set("folder", req.Folder)
	}
	params.Set("overwrite", strconv.FormatBool(req.Overwrite))
	params.Set("timestamp", strconv.FormatInt(c.now().Unix(), 10))

	sig, err := signParams(params, c.apiSecret, c.sigAlg)
	if err != nil {
		return provider.UploadResult{}, err
	}
	params.Set("signature", sig)
	params.Set("api_key", c.apiKey)
	params.Set("file", req.URL)

	httpReq, err := newRequest(ctx, http.MethodPost, c.endpoint(rt, "upload"), strings.NewReader(params.Encode()))
	if err != nil {
		return provider.UploadResult{}, err
	}

	start := time.Now()
	body, err := c.do(httpReq)
	if err != nil {
		log.Debug().Err(err).Str("action", "cloudinary_upload").Str("cloud", c.cloud).
			Str("public_id", req.PublicID).Msg("upload failed")
		return provider.UploadResult{}, err
	}

	var out uploadResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return provider.UploadResult{}, fmt.Errorf("decode upload response: %w", err)
	}
	if out.Existing && !req.Overwrite {
		return provider.UploadResult{}, ErrDuplicate
	}

	log.Debug().
		Str("action", "cloudinary_upload").
		Str("cloud", c.cloud).
		Str("public_id", out.PublicID).
		Dur("elapsed_ms", time.Since(start)).
		Msg("upload OK")
	return provider.UploadResult{
		PublicID:  out.PublicID,
		SecureURL: out.SecureURL,
		Version:   out.Version,
	}, nil
}

// signParams joins the non-empty params as sorted "k=v" pairs with "&",
// appends the secret and returns its hex digest.
func signParams(params url.Values, secret, algorithm string) (string, error) {
	keys := make([]string, 0, len(params))
	for k := range params {
		switch k {
		case "file", "api_key", "resource_type", "cloud_name", "signature":
			continue
		}
		if params.Get(k) == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params.Get(k))
	}
	return util.HexDigest(algorithm, strings.Join(pairs, "&")+secret)
}
