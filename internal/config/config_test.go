package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setCredentials(t *testing.T) {
	t.Helper()
	t.Setenv("SOURCE_CLOUD_NAME", "src-cloud")
	t.Setenv("SOURCE_API_KEY", "src-key")
	t.Setenv("SOURCE_API_SECRET", "src-secret")
	t.Setenv("DEST_CLOUD_NAME", "dst-cloud")
	t.Setenv("DEST_API_KEY", "dst-key")
	t.Setenv("DEST_API_SECRET", "dst-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setCredentials(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "cloudinary", cfg.Provider)
	assert.Equal(t, "https://api.cloudinary.com", cfg.APIURL)
	assert.Equal(t, Credentials{CloudName: "src-cloud", APIKey: "src-key", APISecret: "src-secret"}, cfg.Source)
	assert.Equal(t, Credentials{CloudName: "dst-cloud", APIKey: "dst-key", APISecret: "dst-secret"}, cfg.Dest)
	assert.Equal(t, "image", cfg.ResourceType)
	assert.Equal(t, 500, cfg.PageSize)
	assert.Equal(t, 5*time.Second, cfg.StartDelay)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, 3*time.Second, cfg.BatchPause)
	assert.Equal(t, 10, cfg.ProgressEvery)
	assert.Equal(t, 20, cfg.ErrorReportLimit)
	assert.Equal(t, time.Duration(0), cfg.HTTPTimeout)
	assert.Equal(t, 0, cfg.HTTPRetryMax)
	assert.Equal(t, "sha1", cfg.SignatureAlgorithm)
}

func TestLoad_MissingCloudName(t *testing.T) {
	for _, key := range []string{"SOURCE_CLOUD_NAME", "DEST_CLOUD_NAME"} {
		t.Run(key, func(t *testing.T) {
			setCredentials(t)
			t.Setenv(key, "")

			_, err := Load()
			require.ErrorIs(t, err, ErrMissingCloudName)
		})
	}
}

func TestLoad_KeysAreOptional(t *testing.T) {
	setCredentials(t)
	t.Setenv("SOURCE_API_KEY", "")
	t.Setenv("DEST_API_SECRET", "")

	_, err := Load()
	require.NoError(t, err)
}

func TestLoad_Overrides(t *testing.T) {
	setCredentials(t)
	t.Setenv("PAGE_SIZE", "120")
	t.Setenv("START_DELAY", "0s")
	t.Setenv("BATCH_SIZE", "7")
	t.Setenv("BATCH_PAUSE", "250ms")
	t.Setenv("HTTP_RETRY_MAX", "2")
	t.Setenv("SIGNATURE_ALGORITHM", "SHA256")
	t.Setenv("RESOURCE_TYPE", "Video")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 120, cfg.PageSize)
	assert.Equal(t, time.Duration(0), cfg.StartDelay)
	assert.Equal(t, 7, cfg.BatchSize)
	assert.Equal(t, 250*time.Millisecond, cfg.BatchPause)
	assert.Equal(t, 2, cfg.HTTPRetryMax)
	assert.Equal(t, "sha256", cfg.SignatureAlgorithm)
	assert.Equal(t, "video", cfg.ResourceType)
}

func TestLoad_PageSizeCapped(t *testing.T) {
	setCredentials(t)
	t.Setenv("PAGE_SIZE", "5000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, MaxPageSize, cfg.PageSize)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	setCredentials(t)
	t.Setenv("BATCH_SIZE", "-3")
	t.Setenv("BATCH_PAUSE", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, 3*time.Second, cfg.BatchPause)
}

func TestLoad_UnsupportedSignature(t *testing.T) {
	setCredentials(t)
	t.Setenv("SIGNATURE_ALGORITHM", "md5")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "md5")
}
