package api

import (
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validToken = strings.Repeat("a", TokenLength)

func TestValidateToken(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "valid", token: validToken},
		{name: "empty", token: "", wantErr: ErrTokenEmpty},
		{name: "too short", token: "12345", wantErr: ErrTokenInvalid},
		{name: "too long", token: validToken + "b", wantErr: ErrTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateToken(tt.token)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTokenFromEnv(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		t.Setenv(EnvToken, "")
		require.NoError(t, os.Unsetenv(EnvToken))

		_, err := TokenFromEnv()
		require.ErrorIs(t, err, ErrTokenMissing)
	})

	t.Run("empty", func(t *testing.T) {
		t.Setenv(EnvToken, "")
		_, err := TokenFromEnv()
		require.ErrorIs(t, err, ErrTokenEmpty)
	})

	t.Run("bad length does not leak token", func(t *testing.T) {
		t.Setenv(EnvToken, "secret-ish")
		_, err := TokenFromEnv()
		require.ErrorIs(t, err, ErrTokenInvalid)
		assert.NotContains(t, err.Error(), "secret-ish")
	})

	t.Run("valid", func(t *testing.T) {
		t.Setenv(EnvToken, validToken)
		token, err := TokenFromEnv()
		require.NoError(t, err)
		assert.Equal(t, validToken, token)
	})
}

func TestSetToken(t *testing.T) {
	t.Setenv(EnvToken, "unset")

	for _, bad := range []string{"", "bad length ..."} {
		require.Error(t, SetToken(bad))
		assert.Equal(t, "unset", os.Getenv(EnvToken))
	}

	require.NoError(t, SetToken(validToken))
	assert.Equal(t, validToken, os.Getenv(EnvToken))
}

func TestNewClientFromEnv(t *testing.T) {
	t.Run("uses env base URL", func(t *testing.T) {
		t.Setenv(EnvToken, validToken)
		t.Setenv(EnvBaseURL, "http://localhost:8000/api/v1")

		client, err := NewClientFromEnv(zerolog.Nop())
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8000/api/v1/", client.BaseURL())
	})

	t.Run("explicit option wins", func(t *testing.T) {
		t.Setenv(EnvToken, validToken)
		t.Setenv(EnvBaseURL, "http://localhost:8000/api/v1/")

		client, err := NewClientFromEnv(zerolog.Nop(), WithBaseURL("http://other:9000/"))
		require.NoError(t, err)
		assert.Equal(t, "http://other:9000/", client.BaseURL())
	})

	t.Run("default base URL", func(t *testing.T) {
		t.Setenv(EnvToken, validToken)
		t.Setenv(EnvBaseURL, "")

		client, err := NewClientFromEnv(zerolog.Nop())
		require.NoError(t, err)
		assert.Equal(t, DefaultBaseURL, client.BaseURL())
	})

	t.Run("bad token fails fast", func(t *testing.T) {
		t.Setenv(EnvToken, "12345")
		_, err := NewClientFromEnv(zerolog.Nop())
		require.ErrorIs(t, err, ErrTokenInvalid)
	})
}
