package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/prompttotube/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, "", 5*time.Second, nil)
}

func TestClient_CreateProject_Success(t *testing.T) {
	var received map[string]any
	var contentType string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, ProjectsPath, r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		contentType = r.Header.Get("Content-Type")

		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &received))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"abc123","prompt":"Make a 1-minute video about cats","mode":"short","duration_sec":60,"language":"en","status":"created"}`))
	})

	draft := model.Draft{
		Prompt:      "Make a 1-minute video about cats",
		Mode:        model.ModeShort,
		DurationSec: 60,
		Language:    "en",
	}
	project, err := client.CreateProject(context.Background(), draft)
	require.NoError(t, err)

	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, "Make a 1-minute video about cats", received["prompt"])
	assert.Equal(t, "short", received["mode"])
	assert.Equal(t, float64(60), received["duration_sec"])
	assert.Equal(t, "en", received["language"])

	assert.Equal(t, "abc123", project.ID)
	assert.Equal(t, model.ModeShort, project.Mode)
	assert.Equal(t, 60, project.DurationSec)
	assert.Equal(t, "created", project.Status)
}

func TestClient_CreateProject_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"id":"ignored"}`))
	})

	project, err := client.CreateProject(context.Background(), model.DefaultDraft())
	require.Error(t, err)
	assert.Nil(t, project)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Equal(t, http.MethodPost, statusErr.Method)
}

func TestClient_CreateProject_UnparseableBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	_, err := client.CreateProject(context.Background(), model.DefaultDraft())
	assert.Error(t, err)
}

func TestClient_CreateProject_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(url, "", time.Second, nil)
	_, err := client.CreateProject(context.Background(), model.DefaultDraft())
	assert.Error(t, err)
}

func TestClient_ListProjects_PreservesServiceOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, ProjectsPath, r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":"b","prompt":"second prompt"},{"id":"a","prompt":"first prompt","suggestions":["x","y","z","w"]}]`))
	})

	projects, err := client.ListProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "b", projects[0].ID)
	assert.Equal(t, "a", projects[1].ID)
	assert.Len(t, projects[1].Suggestions, 4)
}

func TestClient_ListProjects_EmptyBodies(t *testing.T) {
	for name, body := range map[string]string{
		"empty":   ``,
		"null":    `null`,
		"array":   `[]`,
		"garbage": `<html>oops</html>`,
	} {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			})

			projects, err := client.ListProjects(context.Background())
			require.NoError(t, err)
			assert.NotNil(t, projects)
			assert.Empty(t, projects)
		})
	}
}

func TestClient_ListProjects_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.ListProjects(context.Background())
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
}

func TestClient_SendsBearerToken(t *testing.T) {
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", "secret-token", time.Second, nil)
	_, err := client.ListProjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-token", auth)
	assert.Equal(t, server.URL, client.BaseURL())
}

func TestClient_OmitsAuthorizationWithoutToken(t *testing.T) {
	var header []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Values("Authorization")
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := client.ListProjects(context.Background())
	require.NoError(t, err)
	assert.Empty(t, header)
}
