package app

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/five82/jester/internal/config"
	"github.com/five82/jester/internal/jokes"
	"github.com/five82/jester/internal/state"
	"github.com/five82/jester/internal/ui"
)

// Options configure a jester run. Flag values win over the config file.
type Options struct {
	ConfigPath string
	EnvFile    string // empty uses .env in the working directory
	APIURL     string
	LogFile    string
	Verbose    bool

	Out io.Writer // one-shot output; nil uses stdout
	API state.API // nil builds a jokes.Client from the config
}

// session holds the wired dependencies for one invocation.
type session struct {
	cfg      config.Config
	logger   *zap.Logger
	api      state.API
	store    *state.Store
	apiLabel string
	out      io.Writer
	unsub    func()
}

// Run boots the TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	s, err := setup(opts)
	if err != nil {
		return err
	}
	defer s.close()

	s.logger.Info("starting tui",
		zap.String("api_url", s.cfg.APIURL),
		zap.String("theme", s.cfg.Theme),
		zap.Duration("shuffle", s.cfg.Shuffle),
	)

	return ui.Run(ui.Options{
		Context:       ctx,
		API:           s.api,
		Store:         s.store,
		Logger:        s.logger,
		ThemeName:     s.cfg.Theme,
		MarkdownStyle: s.cfg.MarkdownStyle,
		APILabel:      s.apiLabel,
		Shuffle:       s.cfg.Shuffle,
	})
}

func setup(opts Options) (*session, error) {
	if err := config.LoadEnvFile(opts.EnvFile); err != nil {
		return nil, err
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if v := strings.TrimSpace(opts.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(opts.LogFile); v != "" {
		path, err := config.ExpandPath(v)
		if err != nil {
			return nil, fmt.Errorf("log file: %w", err)
		}
		cfg.LogFile = path
	}

	logger, err := newLogger(cfg.LogFile, opts.Verbose)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	api := opts.API
	label := cfg.APIURL
	if api == nil {
		client, err := jokes.NewClient(cfg.APIURL,
			jokes.WithTimeout(cfg.RequestTimeout),
			jokes.WithLogger(logger.Named("jokes")),
		)
		if err != nil {
			_ = logger.Sync()
			return nil, fmt.Errorf("init jokes client: %w", err)
		}
		api = client
		label = client.BaseURL()
	}

	store := state.NewStore()
	unsub := store.Subscribe(logTransitions(logger.Named("state")))

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	return &session{
		cfg:      cfg,
		logger:   logger,
		api:      api,
		store:    store,
		apiLabel: hostLabel(label),
		out:      out,
		unsub:    unsub,
	}, nil
}

func (s *session) close() {
	if s.unsub != nil {
		s.unsub()
	}
	_ = s.logger.Sync()
}

// hostLabel shortens an API URL to its host for the header.
func hostLabel(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Host
}
