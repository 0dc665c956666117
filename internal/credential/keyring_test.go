package credential

import (
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/prompttotube/internal/model"
)

func TestVault_SetGetDelete(t *testing.T) {
	v := NewVault(keyring.NewArrayKeyring(nil))

	got, err := v.Get(APITokenKey)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, v.Set(APITokenKey, "secret"))
	got, err = v.Get(APITokenKey)
	require.NoError(t, err)
	assert.Equal(t, "secret", got)

	require.NoError(t, v.Delete(APITokenKey))
	require.NoError(t, v.Delete(APITokenKey))
	got, err = v.Get(APITokenKey)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAPIToken_EnvWins(t *testing.T) {
	v := NewVault(keyring.NewArrayKeyring([]keyring.Item{{Key: APITokenKey, Data: []byte("from-ring")}}))
	env := map[string]string{}
	getenv := func(k string) string { return env[k] }

	tok, err := APIToken(v, getenv)
	require.NoError(t, err)
	assert.Equal(t, "from-ring", tok)

	env[model.EnvAPIToken] = "from-env"
	tok, err = APIToken(v, getenv)
	require.NoError(t, err)
	assert.Equal(t, "from-env", tok)

	tok, err = APIToken(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, tok)
}
