package app

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/five82/jester/internal/state"
)

// newLogger writes JSON logs to path. The TUI owns the terminal, so nothing
// goes to stderr.
func newLogger(path string, verbose bool) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// logTransitions returns a store subscriber that logs each phase change.
func logTransitions(logger *zap.Logger) func(state.Snapshot) {
	last := state.Snapshot{}.Phases
	return func(snap state.Snapshot) {
		for i, phase := range snap.Phases {
			if phase == last[i] {
				continue
			}
			last[i] = phase
			kind := state.Kind(i)
			fields := []zap.Field{
				zap.Stringer("kind", kind),
				zap.Stringer("phase", phase),
				zap.Uint64("seq", snap.Dispatched[i]),
			}
			if phase == state.PhaseRejected {
				logger.Warn("request rejected", append(fields, zap.String("error", snap.Err))...)
				continue
			}
			logger.Debug("request transition", fields...)
		}
	}
}
