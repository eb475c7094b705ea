package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getTheme(t *testing.T, env *testEnv, token, query string) string {
	t.Helper()
	rec := env.do(t, http.MethodGet, "/api/v1/profile/theme"+query, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	decodeData(t, rec, &body)
	return body["theme"]
}

func TestThemeDefaultsToLight(t *testing.T) {
	env := newTestEnv(t)
	token := env.accessToken(t, "user-1")

	assert.Equal(t, "light", getTheme(t, env, token, ""))
}

func TestThemeDeviceHint(t *testing.T) {
	env := newTestEnv(t)
	token := env.accessToken(t, "user-1")

	assert.Equal(t, "dark", getTheme(t, env, token, "?device=dark"))
	assert.Equal(t, "light", getTheme(t, env, token, "?device=sepia"))
}

func TestThemeToggleEndpoint(t *testing.T) {
	env := newTestEnv(t)
	token := env.accessToken(t, "user-1")

	rec := env.do(t, http.MethodPost, "/api/v1/profile/theme/toggle", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	decodeData(t, rec, &body)
	assert.Equal(t, "dark", body["theme"])

	// The explicit choice now beats the device hint.
	assert.Equal(t, "dark", getTheme(t, env, token, "?device=light"))
}
