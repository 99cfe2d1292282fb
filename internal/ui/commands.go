package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/jester/internal/state"
)

const noticeTimeout = 3 * time.Second

// resultMsg carries a settled request back to the event loop.
type resultMsg struct {
	result state.Result
}

// shuffleMsg triggers the periodic random joke.
type shuffleMsg time.Time

// noticeClearMsg expires the footer notice with the matching id.
type noticeClearMsg struct {
	id int
}

// dispatch marks req pending on the store and returns a command that performs
// the network call off the event loop. The result is applied in Update.
func (m *Model) dispatch(req state.Request) tea.Cmd {
	req = m.store.Begin(req)
	m.snapshot = m.store.Snapshot()
	m.logger.Debug("request dispatched",
		zap.Stringer("kind", req.Kind),
		zap.Uint64("seq", req.Seq),
	)

	ctx, api := m.ctx, m.api
	perform := func() tea.Msg {
		return resultMsg{result: state.Perform(ctx, api, req)}
	}
	return tea.Batch(perform, m.spinner.Tick)
}

func shuffleCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return shuffleMsg(t)
	})
}

func noticeClearCmd(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return noticeClearMsg{id: id}
	})
}
