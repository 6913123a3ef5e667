package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/auth"
)

func TestToken_IssuesVerifiableToken(t *testing.T) {
	sqliteWorkspace(t, testSecret)

	out, err := run(t, "token", "--user", "u-7", "--name", "Chefe", "--manage", "--ttl", "1h", "--format", "json")
	require.NoError(t, err)

	var res tokenResult
	decodeJSON(t, out, &res)
	require.NotEmpty(t, res.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), res.ExpiresAt, time.Minute)

	a, err := auth.NewAuthenticator(testSecret)
	require.NoError(t, err)
	id, err := a.Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, auth.Identity{UserID: "u-7", Name: "Chefe", CanManageLimits: true}, id)
}

func TestToken_TextOutputIsBareToken(t *testing.T) {
	sqliteWorkspace(t, testSecret)

	out, err := run(t, "token", "--user", "ana")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "."), 3)
}

func TestToken_Errors(t *testing.T) {
	t.Run("no secret", func(t *testing.T) {
		sqliteWorkspace(t, "")
		_, err := run(t, "token", "--user", "ana")
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
	})

	t.Run("no user", func(t *testing.T) {
		sqliteWorkspace(t, testSecret)
		_, err := run(t, "token")
		require.Error(t, err)
	})

	t.Run("non-positive ttl", func(t *testing.T) {
		sqliteWorkspace(t, testSecret)
		_, err := run(t, "token", "--user", "ana", "--ttl", "0s")
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
	})
}
