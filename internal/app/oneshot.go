package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/five82/jester/internal/config"
	"github.com/five82/jester/internal/logtail"
	"github.com/five82/jester/internal/state"
)

// Random prints one random joke.
func Random(ctx context.Context, opts Options) error {
	return once(ctx, opts, state.RandomRequest())
}

// Category prints one random joke from category.
func Category(ctx context.Context, opts Options, category string) error {
	return once(ctx, opts, state.CategoryRequest(category))
}

// Search prints one joke matching query.
func Search(ctx context.Context, opts Options, query string) error {
	return once(ctx, opts, state.SearchRequest(query))
}

// Categories prints the category list, one per line.
func Categories(ctx context.Context, opts Options) error {
	return once(ctx, opts, state.CategoriesRequest())
}

// once dispatches req on a fresh store and prints the outcome. A rejected
// request returns the store's error message.
func once(ctx context.Context, opts Options, req state.Request) error {
	s, err := setup(opts)
	if err != nil {
		return err
	}
	defer s.close()

	s.logger.Debug("one-shot request", zap.Stringer("kind", req.Kind))
	snap := s.store.Dispatch(ctx, s.api, req)
	if snap.Err != "" {
		return errors.New(snap.Err)
	}

	if req.Kind == state.KindCategories {
		for _, c := range snap.Categories {
			if _, err := fmt.Fprintln(s.out, c); err != nil {
				return err
			}
		}
		return nil
	}
	_, err = fmt.Fprintln(s.out, snap.Joke)
	return err
}

// Logs prints the last lines of jester's own log file. maxLines <= 0 prints
// everything.
func Logs(opts Options, maxLines int) error {
	if err := config.LoadEnvFile(opts.EnvFile); err != nil {
		return err
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	path := cfg.LogFile
	if opts.LogFile != "" {
		if path, err = config.ExpandPath(opts.LogFile); err != nil {
			return fmt.Errorf("log file: %w", err)
		}
	}

	entries, err := logtail.ReadEntries(path, maxLines)
	if err != nil {
		return fmt.Errorf("read log: %w", err)
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	if len(entries) == 0 {
		_, err := fmt.Fprintf(out, "no log entries in %s\n", path)
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintln(out, logtail.Format(e)); err != nil {
			return err
		}
	}
	return nil
}
