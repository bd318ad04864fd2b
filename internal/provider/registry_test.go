package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chapsvision-dev/cloudinary-migrate/internal/config"
)

type stubProvider struct{ account string }

func (s stubProvider) Name() string    { return "stub" }
func (s stubProvider) Account() string { return s.account }
func (s stubProvider) ListResources(context.Context, ListOptions) (Page, error) {
	return Page{}, nil
}
func (s stubProvider) UploadFromURL(context.Context, UploadRequest) (UploadResult, error) {
	return UploadResult{}, nil
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New("nope", config.Config{}, config.Credentials{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provider not found: nope")
}

func TestNew_BindsCredentials(t *testing.T) {
	Register("stub", func(_ config.Config, creds config.Credentials) (Provider, error) {
		return stubProvider{account: creds.CloudName}, nil
	})
	defer delete(registry, "stub")

	src, err := New("stub", config.Config{}, config.Credentials{CloudName: "a"})
	require.NoError(t, err)
	dst, err := New("stub", config.Config{}, config.Credentials{CloudName: "b"})
	require.NoError(t, err)

	assert.Equal(t, "a", src.Account())
	assert.Equal(t, "b", dst.Account())
}
