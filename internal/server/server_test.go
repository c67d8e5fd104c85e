package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bagtoad/pathpick/internal/node"
	"github.com/bagtoad/pathpick/internal/selector"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter() *gin.Engine {
	return NewHandler(node.NewRegistry(selector.New()), nil).Router()
}

func nodeURL(name, action string) string {
	return "/api/nodes/" + url.PathEscape(name) + "/" + action
}

func post(t *testing.T, r http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestListNodes(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/nodes", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var nodes []struct {
		Name        string       `json:"name"`
		DisplayName string       `json:"display_name"`
		Inputs      []node.Input `json:"inputs"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &nodes))
	require.Len(t, nodes, 3)
	assert.Equal(t, node.LastModifiedPath, nodes[0].Name)
	assert.Equal(t, node.IndexedPath, nodes[2].DisplayName)
	assert.Len(t, nodes[2].Inputs, 3)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"b.png", "a.png", "c.jpg"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), nil, 0644))
	}
	r := newRouter()

	t.Run("indexed", func(t *testing.T) {
		w := post(t, r, nodeURL(node.IndexedPath, "run"), node.Args{Directory: dir, Extensions: "png", Index: 1})
		require.Equal(t, http.StatusOK, w.Code)

		var resp RunResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, filepath.Join(dir, "b.png"), resp.FilePath)
	})

	t.Run("selection errors are 200 with error text", func(t *testing.T) {
		w := post(t, r, nodeURL(node.LastModifiedPath, "run"), node.Args{Directory: filepath.Join(dir, "missing")})
		require.Equal(t, http.StatusOK, w.Code)

		var resp RunResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, strings.HasPrefix(resp.FilePath, "Error: directory not found"), resp.FilePath)
	})

	t.Run("unknown node", func(t *testing.T) {
		w := post(t, r, nodeURL("Index Path", "run"), node.Args{Directory: dir})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "unknown node")
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, nodeURL(node.RandomPath, "run"), strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestIsChanged(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "only.png"), nil, 0644))
	r := newRouter()

	w := post(t, r, nodeURL(node.IndexedPath, "is_changed"), node.Args{Directory: dir})
	require.Equal(t, http.StatusOK, w.Code)

	var resp ChangeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, filepath.Join(dir, "only.png"), resp.Token)
}
