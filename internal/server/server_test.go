package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/toyboard/internal/board"
	"github.com/idilsaglam/toyboard/internal/client"
	"github.com/idilsaglam/toyboard/internal/logging"
	"github.com/idilsaglam/toyboard/internal/model"
	"github.com/idilsaglam/toyboard/internal/store/jsonstore"
)

func newTestServer(t *testing.T) (*httptest.Server, *jsonstore.Store) {
	t.Helper()
	st, err := jsonstore.Open(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)
	srv := httptest.NewServer(New(st, logging.Discard()).Handler())
	t.Cleanup(srv.Close)
	return srv, st
}

func do(t *testing.T, method, url, body string) (int, string) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, r)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(b)
}

func TestToys_CreateListPatch(t *testing.T) {
	srv, _ := newTestServer(t)

	code, body := do(t, http.MethodGet, srv.URL+"/toys", "")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[]`, body)

	code, body = do(t, http.MethodPost, srv.URL+"/toys", `{"name":"Bear","image":"b.png","likes":0}`)
	assert.Equal(t, http.StatusCreated, code)
	assert.JSONEq(t, `{"id":1,"name":"Bear","image":"b.png","likes":0}`, body)

	code, body = do(t, http.MethodPatch, srv.URL+"/toys/1", `{"likes":4}`)
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"id":1,"name":"Bear","image":"b.png","likes":4}`, body)

	code, body = do(t, http.MethodGet, srv.URL+"/toys/1", "")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"id":1,"name":"Bear","image":"b.png","likes":4}`, body)
}

func TestToys_RejectsMissingFields(t *testing.T) {
	srv, _ := newTestServer(t)

	code, body := do(t, http.MethodPost, srv.URL+"/toys", `{"name":"  ","image":"b.png"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body, "field name is required")
}

func TestToys_CreateIgnoresClientLikes(t *testing.T) {
	srv, _ := newTestServer(t)

	code, body := do(t, http.MethodPost, srv.URL+"/toys", `{"name":"Bear","image":"b.png","likes":99}`)
	assert.Equal(t, http.StatusCreated, code)
	assert.JSONEq(t, `{"id":1,"name":"Bear","image":"b.png","likes":0}`, body)
}

func TestToys_StringIDsWithLeadingZeros(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	doc := `{"toys":[{"id":"0a1b","name":"Bear","image":"b.png","likes":3},{"id":"0123","name":"Cat","image":"c.png","likes":1}]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	st, err := jsonstore.Open(path)
	require.NoError(t, err)
	srv := httptest.NewServer(New(st, logging.Discard()).Handler())
	t.Cleanup(srv.Close)

	code, body := do(t, http.MethodGet, srv.URL+"/toys", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[
		{"id":"0a1b","name":"Bear","image":"b.png","likes":3},
		{"id":"0123","name":"Cat","image":"c.png","likes":1}
	]`, body)

	code, body = do(t, http.MethodPatch, srv.URL+"/toys/0123", `{"likes":2}`)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"id":"0123","name":"Cat","image":"c.png","likes":2}`, body)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"id": "0123"`)
}

func TestToys_RejectsNegativeLikes(t *testing.T) {
	srv, _ := newTestServer(t)
	code, _ := do(t, http.MethodPost, srv.URL+"/toys", `{"name":"Bear","image":"b.png"}`)
	require.Equal(t, http.StatusCreated, code)

	code, _ = do(t, http.MethodPatch, srv.URL+"/toys/1", `{"likes":-3}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestToys_NotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	code, _ := do(t, http.MethodGet, srv.URL+"/toys/9", "")
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = do(t, http.MethodPatch, srv.URL+"/toys/9", `{"likes":1}`)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestToys_MalformedBody(t *testing.T) {
	srv, _ := newTestServer(t)
	code, _ := do(t, http.MethodPost, srv.URL+"/toys", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, code)
}

// The board against the real server: load, create, like.
func TestBoard_EndToEnd(t *testing.T) {
	srv, st := newTestServer(t)
	ctx := context.Background()
	_, err := st.Create(ctx, model.NewToy{Name: "Bear", Image: "b.png", Likes: 3})
	require.NoError(t, err)

	cl, err := client.New(srv.URL)
	require.NoError(t, err)
	var alerts []string
	c := board.NewController(cl, board.New(), board.AlertFunc(func(m string) { alerts = append(alerts, m) }), logging.Discard())

	require.NoError(t, c.LoadAll(ctx))
	cards := c.Board().Cards()
	require.Len(t, cards, 1)
	assert.Equal(t, "Bear", cards[0].Name)
	assert.Equal(t, "3 Likes", cards[0].LikesLabel())

	require.NoError(t, c.Like(ctx, cards[0].ID))
	card, _ := c.Board().Card(cards[0].ID)
	assert.Equal(t, "4 Likes", card.LikesLabel())

	c.ToggleForm()
	require.NoError(t, c.Create(ctx, "Cat", "c.png"))
	assert.False(t, c.Board().FormOpen())
	assert.Equal(t, 2, c.Board().Len())

	assert.Error(t, c.Like(ctx, "404"))
	assert.Equal(t, []string{board.MsgFailure}, alerts)

	stored, err := st.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, stored[0].Likes)
	assert.Equal(t, "Cat", stored[1].Name)
}
