package awsx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "test")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test")
	t.Setenv("AWS_CONFIG_FILE", "/dev/null")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/dev/null")

	plain, err := LoadConfig(context.Background(), "eu-west-1", false)
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", plain.Region)

	traced, err := LoadConfig(context.Background(), "eu-west-1", true)
	require.NoError(t, err)
	assert.Greater(t, len(traced.APIOptions), len(plain.APIOptions))
}
