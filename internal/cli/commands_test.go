package cli

import (
	"bytes"
	"listo/helper"
	"listo/internal/view"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	out     string
	errOut  string
	err     error
	alerted bool
}

func newServerURL(t *testing.T) string {
	t.Helper()

	server, err := helper.NewMemoryServer()
	require.NoError(t, err)

	t.Cleanup(func() { _ = server.DB.Close() })

	ts := httptest.NewServer(server)
	t.Cleanup(ts.Close)

	return ts.URL
}

func run(t *testing.T, serverURL string, args ...string) result {
	t.Helper()

	app := &App{}
	cmd := NewRootCmd(app)

	var out, errOut bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", "", "--server", serverURL}, args...))

	err := cmd.Execute()

	return result{out: out.String(), errOut: errOut.String(), err: err, alerted: app.alerted}
}

func mustRun(t *testing.T, serverURL string, args ...string) string {
	t.Helper()

	res := run(t, serverURL, args...)
	require.NoError(t, res.err, res.errOut)

	return strings.TrimSpace(res.out)
}

func TestCommands(t *testing.T) {
	url := newServerURL(t)

	assert.Equal(t, "groceries", mustRun(t, url, "add-list", "Groceries"))
	assert.Equal(t, "1", mustRun(t, url, "add", "groceries", "Milk"))
	assert.Equal(t, "2", mustRun(t, url, "add", "groceries", "Rye", "bread"))

	items := mustRun(t, url, "items", "groceries")
	assert.Contains(t, items, "- [ ] Milk")
	assert.Contains(t, items, "- [ ] Rye bread")

	mustRun(t, url, "done", "groceries", "1")
	assert.NotContains(t, mustRun(t, url, "items", "groceries"), "Milk")
	assert.Contains(t, mustRun(t, url, "items", "groceries", "--all"), "- [x] Milk")
	assert.Contains(t, mustRun(t, url, "--show-completed", "items", "groceries"), "- [x] Milk")

	mustRun(t, url, "undone", "groceries", "1")
	assert.Contains(t, mustRun(t, url, "items", "groceries"), "- [ ] Milk")

	assert.Equal(t, "chores", mustRun(t, url, "add-list", "Chores"))
	mustRun(t, url, "mv", "groceries", "1", "chores")
	mustRun(t, url, "edit", "chores", "1", "Oat", "milk")
	assert.Contains(t, mustRun(t, url, "items", "chores"), "- [ ] Oat milk")

	mustRun(t, url, "rename-list", "chores", "Housework")

	lists := mustRun(t, url, "lists")
	assert.Contains(t, lists, "chores")
	assert.Contains(t, lists, "Housework")
	assert.Contains(t, lists, "groceries")

	mustRun(t, url, "rm", "chores", "1")
	assert.Empty(t, mustRun(t, url, "items", "chores"))

	mustRun(t, url, "rm-list", "groceries")
	assert.NotContains(t, mustRun(t, url, "lists"), "groceries")
}

func TestCommandErrors(t *testing.T) {
	url := newServerURL(t)

	mustRun(t, url, "add-list", "Groceries")

	tests := []struct {
		name    string
		args    []string
		message string
		alerted bool
	}{
		{
			name:    "unknown list",
			args:    []string{"add", "garden", "Rake"},
			message: `list "garden" not found`,
		},
		{
			name:    "unknown item",
			args:    []string{"done", "groceries", "42"},
			message: `item 42 not found in "groceries"`,
		},
		{
			name:    "bad id",
			args:    []string{"rm", "groceries", "one"},
			message: `invalid item id "one"`,
		},
		{
			name:    "items of unknown list",
			args:    []string{"items", "garden"},
			message: `list "garden" not found`,
		},
		{
			name:    "blank list name is rejected by the server",
			args:    []string{"add-list", " "},
			message: "400",
			alerted: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, url, tt.args...)

			require.Error(t, res.err)
			assert.Equal(t, tt.alerted, res.alerted)

			if tt.alerted {
				assert.Contains(t, res.errOut, tt.message)
			} else {
				assert.Contains(t, res.err.Error(), tt.message)
			}
		})
	}
}

func TestServerFailureAlerts(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
	}))
	t.Cleanup(ts.Close)

	res := run(t, ts.URL, "lists")

	require.Error(t, res.err)
	assert.True(t, res.alerted)
	assert.Contains(t, res.errOut, "Failed to load lists: 500 - internal server error")
}

func TestNewestFirstFlag(t *testing.T) {
	tests := []struct {
		name   string
		config string
		args   []string
		want   view.Order
	}{
		{name: "config decides without the flag", config: `order = "newest"`, want: view.NewestFirst},
		{name: "flag turns newest on", config: `order = "oldest"`, args: []string{"--newest-first"}, want: view.NewestFirst},
		{name: "flag turns newest off", config: `order = "newest"`, args: []string{"--newest-first=false"}, want: view.OldestFirst},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := &App{}
			cmd := NewRootCmd(app)

			require.NoError(t, cmd.ParseFlags(append([]string{"--config", writeConfig(t, tt.config)}, tt.args...)))
			require.NoError(t, app.setup(cmd))

			assert.Equal(t, tt.want, app.cfg.ViewOrder())
		})
	}
}
