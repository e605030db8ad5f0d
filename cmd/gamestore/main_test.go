package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	created []map[string]any
	updated map[string]any
	deleted []string
}

func newFakeBackend(t *testing.T) (*fakeBackend, *httptest.Server) {
	t.Helper()
	fb := &fakeBackend{}
	mux := http.NewServeMux()

	mux.HandleFunc("GET /genres", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, `[{"id":1,"name":"Fighting"},{"id":2,"name":"RPG"}]`)
	})
	mux.HandleFunc("GET /games", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, `[{"id":1,"name":"Street Fighter V","genre":"Fighting","price":19.99,"releaseDate":"1992-07-15"},
			{"id":2,"name":"Orphan","genre":null,"price":5,"releaseDate":"2001-01-02"}]`)
	})
	mux.HandleFunc("GET /games/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "1" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		reply(w, http.StatusOK, `{"id":1,"name":"Street Fighter V","genreId":1,"genreName":"Fighting","price":19.99,"releaseDate":"1992-07-15"}`)
	})
	mux.HandleFunc("POST /games", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if body["name"] == "Taken" {
			w.Header().Set("Content-Type", "application/problem+json")
			w.WriteHeader(http.StatusBadRequest)
			io.WriteString(w, `{"title":"One or more validation errors occurred.","errors":{"Name":["The name is taken."]}}`)
			return
		}
		fb.created = append(fb.created, body)
		reply(w, http.StatusCreated, `{"id":3,"name":"Hades","genreId":2,"genreName":"RPG","price":24.99,"releaseDate":"2020-09-17"}`)
	})
	mux.HandleFunc("PUT /games/{id}", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&fb.updated)
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("DELETE /games/{id}", func(w http.ResponseWriter, r *http.Request) {
		fb.deleted = append(fb.deleted, r.PathValue("id"))
		w.WriteHeader(http.StatusNoContent)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return fb, srv
}

func reply(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	io.WriteString(w, body)
}

func run(t *testing.T, srv *httptest.Server, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(append([]string{"--api-url", srv.URL}, args...))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestGamesList(t *testing.T) {
	_, srv := newFakeBackend(t)

	out, _, err := run(t, srv, "", "games", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Street Fighter V")
	assert.Contains(t, out, "$19.99")
	assert.Contains(t, out, "1992-07-15")
	assert.Contains(t, out, "Orphan")
}

func TestGenresList(t *testing.T) {
	_, srv := newFakeBackend(t)

	out, _, err := run(t, srv, "", "genres", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Fighting")
	assert.Contains(t, out, "RPG")
}

func TestGamesShowMissing(t *testing.T) {
	_, srv := newFakeBackend(t)

	_, _, err := run(t, srv, "", "games", "show", "9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestGamesCreateByGenreName(t *testing.T) {
	fb, srv := newFakeBackend(t)

	out, _, err := run(t, srv, "", "games", "create",
		"--name", " Hades ", "--genre", "rpg", "--price", "24.99", "--release-date", "2020-09-17")
	require.NoError(t, err)
	assert.Contains(t, out, "Created game successfully!")
	assert.Contains(t, out, "RPG (2)")

	require.Len(t, fb.created, 1)
	assert.Equal(t, map[string]any{"name": "Hades", "genreId": 2.0, "price": 24.99, "releaseDate": "2020-09-17"}, fb.created[0])
}

func TestGamesCreateValidatesLocally(t *testing.T) {
	fb, srv := newFakeBackend(t)

	_, stderr, err := run(t, srv, "", "games", "create", "--name", "", "--genre", "Puzzle", "--price", "abc")
	assert.ErrorIs(t, err, errInvalidInput)
	assert.Contains(t, stderr, `genreId: Unknown genre "Puzzle"`)
	assert.Contains(t, stderr, "name: Game name cannot be empty")
	assert.Contains(t, stderr, "price: Price must be a number")
	assert.Contains(t, stderr, "releaseDate: Please select a release date")
	assert.Empty(t, fb.created)
}

func TestGamesCreateShowsServerValidation(t *testing.T) {
	_, srv := newFakeBackend(t)

	_, stderr, err := run(t, srv, "", "games", "create",
		"--name", "Taken", "--genre", "1", "--price", "10", "--release-date", "2020-01-01")
	assert.ErrorIs(t, err, errInvalidInput)
	assert.Contains(t, stderr, "name: The name is taken.")
}

func TestGamesEditKeepsUnsetFields(t *testing.T) {
	fb, srv := newFakeBackend(t)

	out, _, err := run(t, srv, "", "games", "edit", "1", "--price", "9.99")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated game successfully!")
	assert.Equal(t, map[string]any{"name": "Street Fighter V", "genreId": 1.0, "price": 9.99, "releaseDate": "1992-07-15"}, fb.updated)
}

func TestGamesDeleteConfirmation(t *testing.T) {
	fb, srv := newFakeBackend(t)

	out, _, err := run(t, srv, "n\n", "games", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, `Delete "Street Fighter V"?`)
	assert.Contains(t, out, "Cancelled.")
	assert.Empty(t, fb.deleted)

	out, _, err = run(t, srv, "y\n", "games", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Game deleted successfully!")

	_, _, err = run(t, srv, "", "games", "delete", "--yes", "7")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "7"}, fb.deleted)
}

func TestTimeoutFlag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		reply(w, http.StatusOK, `[]`)
	}))
	t.Cleanup(srv.Close)

	_, _, err := run(t, srv, "", "--timeout", "20ms", "genres", "list")
	require.Error(t, err)

	out, _, err := run(t, srv, "", "--timeout", "2s", "genres", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "ID")
}
