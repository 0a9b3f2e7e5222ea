package keyring_test

import (
	"testing"

	"github.com/alkime/podcurate/internal/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gokeyring "github.com/zalando/go-keyring"
)

func TestKeychainRoundTrip(t *testing.T) {
	gokeyring.MockInit()

	assert.False(t, keyring.IsSet(keyring.Firebase))
	assert.Empty(t, keyring.Resolve("", keyring.Firebase))

	require.NoError(t, keyring.Set(keyring.Firebase, "fb-secret"))
	assert.True(t, keyring.IsSet(keyring.Firebase))
	assert.Equal(t, "fb-secret", keyring.Resolve("", keyring.Firebase))
	assert.Equal(t, "explicit", keyring.Resolve("explicit", keyring.Firebase))
}

func TestAPIKeyFromServiceName(t *testing.T) {
	k, err := keyring.APIKeyFromServiceName("anthropic")
	require.NoError(t, err)
	assert.Equal(t, keyring.Anthropic, k)

	_, err = keyring.APIKeyFromServiceName("github")
	require.Error(t, err)
}
