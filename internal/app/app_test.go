package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/five82/jester/internal/config"
	"github.com/five82/jester/internal/jokes"
	"github.com/five82/jester/internal/state"
)

func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/jokes/random":
			if c := r.URL.Query().Get("category"); c != "" {
				_, _ = w.Write([]byte(`{"value":"A joke about ` + c + `"}`))
				return
			}
			_, _ = w.Write([]byte(`{"value":"Random joke"}`))
		case "/jokes/search":
			if r.URL.Query().Get("query") == "nothing" {
				_, _ = w.Write([]byte(`{"total":0,"result":[]}`))
				return
			}
			_, _ = w.Write([]byte(`{"total":1,"result":[{"value":"Found joke"}]}`))
		case "/jokes/categories":
			_, _ = w.Write([]byte(`["animal","career"]`))
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

// testOptions isolates a run from the user's home, environment and .env.
func testOptions(t *testing.T, apiURL string) (Options, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv(config.EnvAPIURL, "")

	var out bytes.Buffer
	return Options{
		ConfigPath: filepath.Join(dir, "config.toml"),
		EnvFile:    filepath.Join(dir, ".env"),
		APIURL:     apiURL,
		LogFile:    filepath.Join(dir, "logs", "jester.log"),
		Out:        &out,
	}, &out
}

func TestOneShot_PrintsResults(t *testing.T) {
	server := newAPIServer(t)
	base := server.URL + "/jokes"

	tests := []struct {
		name string
		run  func(context.Context, Options) error
		want string
	}{
		{"random", Random, "Random joke\n"},
		{"category", func(ctx context.Context, o Options) error { return Category(ctx, o, "animal") }, "A joke about animal\n"},
		{"search", func(ctx context.Context, o Options) error { return Search(ctx, o, "kick") }, "Found joke\n"},
		{"categories", Categories, "animal\ncareer\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, out := testOptions(t, base)
			require.NoError(t, tt.run(context.Background(), opts))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestOneShot_ReturnsStoreErrorMessage(t *testing.T) {
	server := newAPIServer(t)

	opts, out := testOptions(t, server.URL+"/jokes")
	err := Search(context.Background(), opts, "nothing")
	require.Error(t, err)
	assert.Equal(t, jokes.NoJokeFoundMessage, err.Error())
	assert.Empty(t, out.String())

	opts, _ = testOptions(t, server.URL+"/missing")
	err = Random(context.Background(), opts)
	require.Error(t, err)
	assert.Equal(t, state.FailedJokeMessage, err.Error())

	opts, _ = testOptions(t, server.URL+"/missing")
	err = Categories(context.Background(), opts)
	require.Error(t, err)
	assert.Equal(t, state.FailedCategoriesMessage, err.Error())
}

func TestOneShot_InjectedAPI(t *testing.T) {
	opts, out := testOptions(t, "")
	opts.API = stubAPI{joke: "stubbed"}

	require.NoError(t, Random(context.Background(), opts))
	assert.Equal(t, "stubbed\n", out.String())
}

func TestSetup_InvalidConfigIsFatal(t *testing.T) {
	opts, _ := testOptions(t, "")
	require.NoError(t, os.WriteFile(opts.ConfigPath, []byte("api_url = ["), 0o644))

	err := Random(context.Background(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

func TestSetup_BadAPIURLIsFatal(t *testing.T) {
	opts, _ := testOptions(t, "http://")

	err := Random(context.Background(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "init jokes client")
}

func TestLogs_ShowsTransitionsFromPreviousRun(t *testing.T) {
	server := newAPIServer(t)
	opts, _ := testOptions(t, server.URL+"/jokes")
	opts.Verbose = true

	require.NoError(t, Random(context.Background(), opts))

	var out bytes.Buffer
	opts.Out = &out
	require.NoError(t, Logs(opts, 0))
	assert.Contains(t, out.String(), "request transition")
	assert.Contains(t, out.String(), "kind=fetch_random")
}

func TestLogs_MissingFile(t *testing.T) {
	opts, out := testOptions(t, "")

	require.NoError(t, Logs(opts, 10))
	assert.True(t, strings.HasPrefix(out.String(), "no log entries"))
}

func TestLogTransitions(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	store := state.NewStore()
	store.Subscribe(logTransitions(zap.New(core)))

	store.Dispatch(context.Background(), stubAPI{joke: "ok"}, state.RandomRequest())
	store.Dispatch(context.Background(), stubAPI{err: assert.AnError}, state.CategoriesRequest())

	var messages []string
	for _, e := range logs.All() {
		messages = append(messages, e.Message+" "+e.ContextMap()["kind"].(string)+" "+e.ContextMap()["phase"].(string))
	}
	assert.Equal(t, []string{
		"request transition fetch_random pending",
		"request transition fetch_random fulfilled",
		"request transition list_categories pending",
		"request rejected list_categories rejected",
	}, messages)
	assert.Equal(t, state.FailedCategoriesMessage, logs.FilterMessage("request rejected").All()[0].ContextMap()["error"])
}

func TestHostLabel(t *testing.T) {
	assert.Equal(t, "api.chucknorris.io", hostLabel("https://api.chucknorris.io/jokes"))
	assert.Equal(t, "not a url", hostLabel("not a url"))
}

type stubAPI struct {
	joke string
	err  error
}

func (s stubAPI) FetchRandom(context.Context) (string, error) { return s.joke, s.err }

func (s stubAPI) FetchByCategory(_ context.Context, c string) (jokes.CategoryJoke, error) {
	return jokes.CategoryJoke{Joke: s.joke, Category: c}, s.err
}

func (s stubAPI) Search(context.Context, string) (string, error) { return s.joke, s.err }

func (s stubAPI) ListCategories(context.Context) ([]string, error) { return nil, s.err }
