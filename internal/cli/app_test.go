package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/toyboard/internal/board"
	"github.com/idilsaglam/toyboard/internal/config"
	"github.com/idilsaglam/toyboard/internal/logging"
	"github.com/idilsaglam/toyboard/internal/model"
	"github.com/idilsaglam/toyboard/internal/server"
	"github.com/idilsaglam/toyboard/internal/store/jsonstore"
	"github.com/idilsaglam/toyboard/internal/ui"
)

type harness struct {
	url      string
	requests *atomic.Int32
	store    *jsonstore.Store
	out, err *bytes.Buffer
}

func newHarness(t *testing.T, toys ...model.NewToy) *harness {
	t.Helper()
	tmp := t.TempDir()
	wd, _ := os.Getwd()
	require.NoError(t, os.Chdir(tmp))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("TOYBOARD_LOG_FILE", filepath.Join(tmp, "toyboard.log"))

	st, err := jsonstore.Open(filepath.Join(tmp, "db.json"))
	require.NoError(t, err)
	for _, nt := range toys {
		_, err := st.Create(context.Background(), nt)
		require.NoError(t, err)
	}

	var n atomic.Int32
	h := server.New(st, logging.Discard()).Handler()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n.Add(1)
		h.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	var out, errOut bytes.Buffer
	ui.SetOutput(&out, &errOut)
	t.Cleanup(func() {
		ui.SetOutput(os.Stdout, os.Stderr)
		ui.SetColorForcing(false, false)
		ui.SetTheme("classic")
	})

	return &harness{url: srv.URL, requests: &n, store: st, out: &out, err: &errOut}
}

func (h *harness) run(args ...string) int {
	return Run(append([]string{"toyboard", "--url", h.url, "--theme", "mono"}, args...))
}

func TestList_PrintsCards(t *testing.T) {
	h := newHarness(t,
		model.NewToy{Name: "Bear", Image: "b.png", Likes: 3},
		model.NewToy{Name: "Cat", Image: "c.png"},
	)

	require.Equal(t, 0, h.run("ls"))
	assert.Contains(t, h.out.String(), "Bear")
	assert.Contains(t, h.out.String(), "3 Likes")
	assert.Contains(t, h.out.String(), "Cat")
	assert.Less(t, bytes.Index(h.out.Bytes(), []byte("Bear")), bytes.Index(h.out.Bytes(), []byte("Cat")))
}

func TestAdd_CreatesToy(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, 0, h.run("add", "  Bear ", "b.png"))
	assert.Contains(t, h.out.String(), "added Bear (id 1)")

	toys, err := h.store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.Toy{{ID: "1", Name: "Bear", Image: "b.png", Likes: 0}}, toys)
}

func TestAdd_BlankFieldSendsNothing(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, exitUsage, h.run("add", "Bear", "   "))
	assert.Equal(t, int32(0), h.requests.Load())
	assert.Contains(t, h.err.String(), board.MsgMissingFields)
}

func TestAdd_WrongArgCount(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, exitUsage, h.run("add", "Bear"))
	assert.Contains(t, h.err.String(), "usage: toyboard add")
}

func TestLike_IncrementsAndReportsServerValue(t *testing.T) {
	h := newHarness(t, model.NewToy{Name: "Bear", Image: "b.png", Likes: 3})

	require.Equal(t, 0, h.run("like", "1"))
	assert.Contains(t, h.out.String(), "Bear now has 4 Likes")

	toy, err := h.store.Get(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, 4, toy.Likes)
}

func TestLike_UnknownID(t *testing.T) {
	h := newHarness(t, model.NewToy{Name: "Bear", Image: "b.png"})

	assert.Equal(t, exitUsage, h.run("like", "9"))
	assert.Contains(t, h.err.String(), "no toy with id 9")
	assert.Equal(t, int32(1), h.requests.Load())
}

func TestColorFlags(t *testing.T) {
	h := newHarness(t, model.NewToy{Name: "Bear", Image: "b.png", Likes: 3})

	require.Equal(t, 0, Run([]string{"toyboard", "--url", h.url, "--color", "ls"}))
	assert.Contains(t, h.out.String(), "\033[")

	h.out.Reset()
	require.Equal(t, 0, Run([]string{"toyboard", "--url", h.url, "--no-color", "ls"}))
	assert.NotContains(t, h.out.String(), "\033[")
	assert.Contains(t, h.out.String(), "3 Likes")
}

func TestServerDown_AlertsAndFails(t *testing.T) {
	h := newHarness(t)
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	code := Run([]string{"toyboard", "--url", srv.URL, "--theme", "mono", "ls"})
	assert.Equal(t, exitError, code)
	assert.Contains(t, h.err.String(), board.MsgFailure)
}

func TestUnknownSubcommand(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, exitUsage, h.run("frobnicate"))
	assert.Contains(t, h.err.String(), "unknown subcommand: frobnicate")
}

func TestBadURL(t *testing.T) {
	h := newHarness(t)
	code := Run([]string{"toyboard", "--url", "ftp://nowhere", "ls"})
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, h.err.String(), "scheme must be http or https")
}

func TestOpenStore(t *testing.T) {
	tmp := t.TempDir()

	st, err := openStore(config.Storage{Driver: "json", Path: filepath.Join(tmp, "db.json")})
	require.NoError(t, err)
	require.NoError(t, st.Close())

	st, err = openStore(config.Storage{Driver: "sqlite", Path: filepath.Join(tmp, "toys.db")})
	require.NoError(t, err)
	require.NoError(t, st.Close())

	_, err = openStore(config.Storage{Driver: "mongo"})
	assert.Error(t, err)
}
