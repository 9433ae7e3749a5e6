package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnvHelpers_Defaults(t *testing.T) {
	t.Setenv("SOULSYNC_TEST_STR", "")
	t.Setenv("SOULSYNC_TEST_INT", "")
	t.Setenv("SOULSYNC_TEST_DUR", "")

	assert.Equal(t, "fallback", envString("SOULSYNC_TEST_STR", "fallback"))
	assert.Equal(t, 7, envInt("SOULSYNC_TEST_INT", 7))
	assert.Equal(t, time.Minute, envDuration("SOULSYNC_TEST_DUR", time.Minute))
}

func TestEnvHelpers_Parsed(t *testing.T) {
	t.Setenv("SOULSYNC_TEST_STR", "value")
	t.Setenv("SOULSYNC_TEST_INT", "42")
	t.Setenv("SOULSYNC_TEST_DUR", "90s")

	assert.Equal(t, "value", envString("SOULSYNC_TEST_STR", "fallback"))
	assert.Equal(t, 42, envInt("SOULSYNC_TEST_INT", 7))
	assert.Equal(t, 90*time.Second, envDuration("SOULSYNC_TEST_DUR", time.Minute))
}

func TestEnvHelpers_InvalidFallsBack(t *testing.T) {
	t.Setenv("SOULSYNC_TEST_INT", "-3")
	t.Setenv("SOULSYNC_TEST_DUR", "soon")

	assert.Equal(t, 7, envInt("SOULSYNC_TEST_INT", 7))
	assert.Equal(t, time.Minute, envDuration("SOULSYNC_TEST_DUR", time.Minute))
}

func TestSanitized_DropsSecrets(t *testing.T) {
	cfg := &Config{
		AppName:      "SoulSync",
		AppEnv:       "production",
		JWTSecret:    "secret",
		ResendAPIKey: "re_123",
		S3SecretKey:  "s3",
		S3Endpoint:   "http://minio:9000",
	}

	safe := cfg.Sanitized()
	assert.Equal(t, "SoulSync", safe.AppName)
	assert.Equal(t, "http://minio:9000", safe.S3Endpoint)
	assert.Empty(t, safe.JWTSecret)
	assert.Empty(t, safe.ResendAPIKey)
	assert.Empty(t, safe.S3SecretKey)
	assert.True(t, safe.IsProduction())
	assert.False(t, safe.IsDevelopment())
}

func TestHasObjectStorage(t *testing.T) {
	assert.False(t, (&Config{}).HasObjectStorage())
	assert.True(t, (&Config{S3Bucket: "avatars"}).HasObjectStorage())
}
