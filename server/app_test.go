package server

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noisersup/files-manager-api/models"
)

func Test_GetStatus(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/status", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := StatusResponse{}
	decodeBody(t, w, &resp)
	assert.True(t, resp.Redis)
	assert.True(t, resp.Db)
}

func Test_GetStats(t *testing.T) {
	env := newTestEnv(t)

	env.addFile(t, env.user.Id, "a", models.TypeFolder, uuid.Nil)
	env.addFile(t, env.user.Id, "b", models.TypeFile, uuid.Nil)
	env.addFile(t, env.other.Id, "c", models.TypeFile, uuid.Nil)

	w := env.do(t, http.MethodGet, "/stats", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := StatsResponse{}
	decodeBody(t, w, &resp)
	assert.Equal(t, int64(2), resp.Users)
	assert.Equal(t, int64(3), resp.Files)
}
