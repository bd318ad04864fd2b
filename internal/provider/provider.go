package provider

import (
	"context"
	"time"
)

// Resource is one stored media asset as reported by a listing call.
type Resource struct {
	AssetID      string
	PublicID     string
	SecureURL    string
	Folder       string
	ResourceType string
	Type         string
	Format       string
	Version      int64
	Bytes        int64
	Width        int
	Height       int
	CreatedAt    time.Time
}

// ListOptions selects one page of uploaded resources.
type ListOptions struct {
	ResourceType string
	MaxResults   int
	// Cursor is the continuation token from the previous page; empty for the first page.
	Cursor string
}

// Page is one listing response. NextCursor is empty on the last page.
type Page struct {
	Resources  []Resource
	NextCursor string
}

// UploadRequest describes an upload-by-URL into an account.
type UploadRequest struct {
	URL          string
	PublicID     string
	Folder       string
	ResourceType string
	Overwrite    bool
}

// UploadResult is what the destination reports for a stored asset.
type UploadResult struct {
	PublicID  string
	SecureURL string
	Version   int64
}

// Lister enumerates uploaded resources of one account.
type Lister interface {
	ListResources(ctx context.Context, opts ListOptions) (Page, error)
}

// Uploader stores a remote URL under a given identifier.
type Uploader interface {
	UploadFromURL(ctx context.Context, req UploadRequest) (UploadResult, error)
}

// Provider is a client handle bound to a single account's credentials.
type Provider interface {
	Lister
	Uploader

	// Name returns the provider identifier (e.g. "cloudinary").
	Name() string
	// Account returns the account the handle is bound to.
	Account() string
}
