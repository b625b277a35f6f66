package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Efrem-Yohanis/playwright-playground/internal/codes"
	"github.com/Efrem-Yohanis/playwright-playground/internal/config"
	"github.com/Efrem-Yohanis/playwright-playground/internal/identity"
	"github.com/Efrem-Yohanis/playwright-playground/internal/kvstore"
	"github.com/Efrem-Yohanis/playwright-playground/internal/logging"
)

// newTestApp wires an App over an in-memory store, with input fed from the
// given script and output captured in the returned buffer.
func newTestApp(t *testing.T, input string) (*App, *bytes.Buffer) {
	t.Helper()
	ctx := context.Background()

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	kv := kvstore.NewMemoryStore()

	ids, err := identity.NewStore(ctx, kv, log, "playwright")
	require.NoError(t, err)
	cs, err := codes.NewStore(ctx, kv, ids, log, "playwright")
	require.NoError(t, err)

	var out bytes.Buffer
	cfg := &config.Config{}
	cfg.LoadDefaults()

	return &App{
		config: cfg,
		log:    log,
		kv:     kv,
		ids:    ids,
		codes:  cs,
		reader: bufio.NewReader(strings.NewReader(input)),
		out:    &out,
	}, &out
}

func TestRegister_ThenDuplicate(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t, "alice\nalice\n")

	require.NoError(t, a.Register(ctx))
	assert.Contains(t, out.String(), "Welcome, alice!")

	require.NoError(t, a.Register(ctx))
	assert.Contains(t, out.String(), "User ID already exists")
}

func TestRegister_EmptyID(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t, "\n")

	require.NoError(t, a.Register(ctx))
	assert.Contains(t, out.String(), "User ID must not be empty")
	assert.False(t, a.isLoggedIn())
}

func TestLogin_UnknownUser(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t, "ghost\n")

	require.NoError(t, a.Login(ctx))
	assert.Contains(t, out.String(), "User not found")
}

func TestWhoami(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t, "alice\n")

	require.NoError(t, a.Whoami(ctx))
	assert.Contains(t, out.String(), "Not signed in")

	require.NoError(t, a.Register(ctx))
	require.NoError(t, a.Whoami(ctx))
	assert.Contains(t, out.String(), "alice (registered")
}

func TestSnippetCommands_RequireLogin(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t, "")

	require.NoError(t, a.List(ctx))
	require.NoError(t, a.Add(ctx))
	require.NoError(t, a.Show(ctx))
	require.NoError(t, a.Edit(ctx))
	require.NoError(t, a.Delete(ctx))

	assert.Equal(t, 5, strings.Count(out.String(), "Please login first"))
}

func TestAddListShowDelete_Flow(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t, "alice\nMy test\nawait page.goto('/')\nexpect(ok)\n\n")

	require.NoError(t, a.Register(ctx))
	require.NoError(t, a.Add(ctx))
	assert.Contains(t, out.String(), "Saved ")

	entries := a.codes.Entries()
	require.Len(t, entries, 1)
	id := entries[0].ID
	assert.Equal(t, "My test", entries[0].Title)
	assert.Equal(t, "await page.goto('/')\nexpect(ok)", entries[0].Code)

	out.Reset()
	require.NoError(t, a.List(ctx))
	assert.Contains(t, out.String(), "My test")
	assert.Contains(t, out.String(), id)

	// show and delete read the id from input
	a.reader = bufio.NewReader(strings.NewReader(id + "\n" + id + "\n" + id + "\n"))
	out.Reset()
	require.NoError(t, a.Show(ctx))
	assert.Contains(t, out.String(), "await page.goto('/')")

	out.Reset()
	require.NoError(t, a.Delete(ctx))
	assert.Contains(t, out.String(), "Deleted")

	out.Reset()
	require.NoError(t, a.Delete(ctx))
	assert.Contains(t, out.String(), "Snippet not found")
}

func TestAdd_EmptyTitleRejected(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t, "alice\n\n")

	require.NoError(t, a.Register(ctx))
	require.NoError(t, a.Add(ctx))
	assert.Contains(t, out.String(), "Title must not be empty")
	assert.Empty(t, a.codes.Entries())
}

func TestEdit_KeepsValuesOnEmptyInput(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestApp(t, "alice\nT1\nbody\n\n")

	require.NoError(t, a.Register(ctx))
	require.NoError(t, a.Add(ctx))
	id := a.codes.Entries()[0].ID

	// id, empty title (keep), empty body (keep)
	a.reader = bufio.NewReader(strings.NewReader(id + "\n\n\n"))
	require.NoError(t, a.Edit(ctx))

	got, err := a.codes.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, "T1", got.Title)
	assert.Equal(t, "body", got.Code)
}

func TestEdit_UnknownID(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t, "alice\n")

	require.NoError(t, a.Register(ctx))

	a.reader = bufio.NewReader(strings.NewReader("nope\n"))
	require.NoError(t, a.Edit(ctx))
	assert.Contains(t, out.String(), "Snippet not found")
}

func TestOpenStore_KnownAndUnknownBackends(t *testing.T) {
	ctx := context.Background()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.Backend = config.BackendMemory

	s, err := openStore(ctx, cfg)
	require.NoError(t, err)
	assert.NotNil(t, s)

	cfg.Backend = config.Backend("bogus")
	_, err = openStore(ctx, cfg)
	assert.Error(t, err)
}
