package main //nolint:testpackage

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/functils/functils/script"
	"github.com/functils/functils/store"
)

func TestBuildServerAddr(t *testing.T) {
	t.Parallel()

	addr, err := buildServerAddr("2242")
	require.NoError(t, err)
	assert.Equal(t, "localhost:2242", addr)

	_, err = buildServerAddr("80")
	require.ErrorIs(t, err, errUnsupportedPortRange)

	_, err = buildServerAddr("70000")
	require.ErrorIs(t, err, errUnsupportedPortRange)

	_, err = buildServerAddr("http")
	assert.Error(t, err)
}

func TestRunDemo(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	runDemo(&buf)

	assert.Equal(t, `list1: [ 4 3 2 1 ]
list2: [ 1 2 3 4 ]
list3: []
list1: [ 4 3 2 1 1 2 3 4 ]
Is list3 null: true
list1.head(): Some(4)
list1: [ 3 2 1 1 2 3 4 ]
list1.tail(): [ 2 1 1 2 3 4 ]
`, buf.String())
}

func parseEvalFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()

	fs := pflag.NewFlagSet("eval", pflag.ContinueOnError)
	addEvalFlags(fs)
	require.NoError(t, fs.Parse(args))

	return fs
}

func TestEvalRequestFromFlags(t *testing.T) {
	t.Parallel()

	t.Run("order", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "s.yaml")
		require.NoError(t, os.WriteFile(path, []byte("items: [a]\nscript: cons f\n"), 0o600))

		fs := parseEvalFlags(t, "--file", path, "--items", "x,y", "--script", "cons s", "show")
		req, err := evalRequestFromFlags(fs, fs.Args())
		require.NoError(t, err)

		assert.Equal(t, []string{"x", "y"}, req.Items)
		assert.Equal(t, []script.Op{
			{Kind: script.OpCons, Args: []string{"f"}},
			{Kind: script.OpCons, Args: []string{"s"}},
			{Kind: script.OpShow},
		}, req.Ops)
		assert.Empty(t, req.Script)
	})

	t.Run("bad argument", func(t *testing.T) {
		t.Parallel()

		fs := parseEvalFlags(t, "pop")
		_, err := evalRequestFromFlags(fs, fs.Args())
		assert.ErrorIs(t, err, script.ErrUnknownOp)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		fs := parseEvalFlags(t, "-f", filepath.Join(t.TempDir(), "none.yaml"))
		_, err := evalRequestFromFlags(fs, fs.Args())
		assert.Error(t, err)
	})
}

func TestRunEval(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	req := &script.Request{Items: []string{"3", "2", "1"}, Script: "cons 4; head; show"}
	require.NoError(t, runEval(context.Background(), &buf, req))
	assert.Equal(t, "Some(4)\n[ 3 2 1 ]\n=> [ 3 2 1 ]\n", buf.String())

	assert.Error(t, runEval(context.Background(), &buf, &script.Request{}))
}

// TestRootCmd is not parallel: the root command replaces the global logger.
func TestRootCmd(t *testing.T) {
	var buf bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--log-level", "error", "eval", "--items", "b,c", "cons a", "show"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "[ a b c ]\n=> [ a b c ]\n", buf.String())
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))

	return v
}

func TestServerEval(t *testing.T) {
	t.Parallel()

	h := newServer(store.NewMemory(), nil).Handler()

	t.Run("anonymous", func(t *testing.T) {
		t.Parallel()

		rec := doRequest(t, h, http.MethodPost, "/eval",
			`{"items":["1","2"],"script":"cons 0; uncons"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		res := decode[evalResponse](t, rec)
		assert.True(t, res.Ok)
		assert.Equal(t, []string{"Some((0, [ 1 2 ]))"}, res.Output)
		assert.Equal(t, "[ 1 2 ]", res.List)
		assert.Equal(t, []string{"1", "2"}, res.Items)
	})

	t.Run("script error", func(t *testing.T) {
		t.Parallel()

		rec := doRequest(t, h, http.MethodPost, "/eval", `{"script":"pop"}`)
		res := decode[evalResponse](t, rec)
		assert.False(t, res.Ok)
		assert.Contains(t, res.Err, "unknown operation")
	})

	t.Run("bad json", func(t *testing.T) {
		t.Parallel()

		rec := doRequest(t, h, http.MethodPost, "/eval", `{`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("wrong method", func(t *testing.T) {
		t.Parallel()

		rec := doRequest(t, h, http.MethodGet, "/eval", "")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestServerNamedLists(t *testing.T) {
	t.Parallel()

	h := newServer(store.NewMemory(), nil).Handler()

	rec := doRequest(t, h, http.MethodPost, "/eval", `{"name":"q","items":["a"],"ops":[{"op":"cons","args":["b"]}]}`)
	require.True(t, decode[evalResponse](t, rec).Ok)

	// items only seed a new list
	rec = doRequest(t, h, http.MethodPost, "/eval", `{"name":"q","items":["z"],"script":"append c; show"}`)
	res := decode[evalResponse](t, rec)
	require.True(t, res.Ok)
	assert.Equal(t, []string{"[ b a c ]"}, res.Output)

	rec = doRequest(t, h, http.MethodGet, "/lists", "")
	assert.Equal(t, []string{"q"}, decode[listsResponse](t, rec).Names)

	rec = doRequest(t, h, http.MethodGet, "/status", "")
	status := decode[statusResponse](t, rec)
	assert.True(t, status.Ok)
	assert.Equal(t, "memory", status.Store)
	assert.Equal(t, 1, status.Lists)
	assert.NotEmpty(t, status.Uptime)

	rec = doRequest(t, h, http.MethodDelete, "/lists/q", "")
	assert.True(t, decode[deleteResponse](t, rec).Ok)

	rec = doRequest(t, h, http.MethodDelete, "/lists/q", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, decode[deleteResponse](t, rec).Ok)

	rec = doRequest(t, h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "functils_ops_executed_total")
}

func TestClient(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(newServer(store.NewMemory(), nil).Handler())
	t.Cleanup(ts.Close)

	var buf bytes.Buffer

	c := FunctilsClient{baseURL: ts.URL, out: &buf}
	ctx := context.Background()

	require.NoError(t, c.Eval(ctx, &script.Request{Name: "l", Script: "cons x; len"}))
	res := evalResponse{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &res))
	assert.Equal(t, []string{"1"}, res.Output)

	buf.Reset()
	require.NoError(t, c.Lists(ctx))
	assert.Contains(t, buf.String(), `"l"`)

	buf.Reset()
	require.NoError(t, c.Delete(ctx, "l"))
	assert.Contains(t, buf.String(), `"ok": true`)

	buf.Reset()
	require.NoError(t, c.Status(ctx))
	assert.Contains(t, buf.String(), `"store": "memory"`)
}
