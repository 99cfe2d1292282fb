package ui

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/jester/internal/state"
)

// focusArea is the widget receiving keys.
type focusArea int

const (
	focusNone focusArea = iota
	focusSearch
	focusCategories
)

// defaultCategoryLabel is the selector's first entry; choosing it does nothing.
const defaultCategoryLabel = "Random (any category)"

// Options configures the UI.
type Options struct {
	Context       context.Context
	API           state.API
	Store         *state.Store
	Logger        *zap.Logger
	ThemeName     string
	MarkdownStyle string
	APILabel      string        // shown in the header, usually the API host
	Shuffle       time.Duration // zero disables
	Copy          func(string) error
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx           context.Context
	api           state.API
	store         *state.Store
	logger        *zap.Logger
	keys          keyMap
	markdownStyle string
	apiLabel      string
	shuffle       time.Duration
	copy          func(string) error

	// UI state
	theme    Theme
	width    int
	height   int
	ready    bool
	focus    focusArea
	showHelp bool

	// Data state
	snapshot state.Snapshot

	// Widgets
	search         textinput.Model
	spinner        spinner.Model
	categoryCursor int // 0 is the default option

	// Transient footer notice
	notice   string
	noticeID int

	cards *cardCache
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	store := opts.Store
	if store == nil {
		store = state.NewStore()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	markdownStyle := opts.MarkdownStyle
	if markdownStyle == "" {
		markdownStyle = "dark"
	}
	copyFn := opts.Copy
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	theme := GetTheme(opts.ThemeName)

	ti := textinput.New()
	ti.Placeholder = "Search jokes..."
	ti.Prompt = "/ "
	ti.CharLimit = 120

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))),
	)

	return Model{
		ctx:           ctx,
		api:           opts.API,
		store:         store,
		logger:        logger,
		keys:          DefaultKeyMap(),
		markdownStyle: markdownStyle,
		apiLabel:      opts.APILabel,
		shuffle:       opts.Shuffle,
		copy:          copyFn,
		theme:         theme,
		snapshot:      store.Snapshot(),
		search:        ti,
		spinner:       sp,
		cards:         newCardCache(),
	}
}

// Init implements tea.Model. It performs the mount-time fetches: one random
// joke and the category list.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.dispatch(state.RandomRequest()),
		m.dispatch(state.CategoriesRequest()),
		m.spinner.Tick,
	}
	if m.shuffle > 0 {
		cmds = append(cmds, shuffleCmd(m.shuffle))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		var next tea.Model
		next, cmd = m.handleKey(msg)
		m = next.(Model)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.search.Width = max(m.width-16, 10)

	case resultMsg:
		applied := m.store.Resolve(msg.result)
		m.logResolution(msg.result, applied)

	case shuffleMsg:
		cmd = m.handleShuffle()

	case noticeClearMsg:
		if msg.id == m.noticeID {
			m.notice = ""
		}

	case spinner.TickMsg:
		// Let the tick chain lapse while idle; dispatch restarts it.
		if m.store.Snapshot().Loading {
			m.spinner, cmd = m.spinner.Update(msg)
		}
	}

	m.snapshot = m.store.Snapshot()
	m.clampCategoryCursor()
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch m.focus {
	case focusSearch:
		return m.handleSearchKey(msg)
	case focusCategories:
		return m.handleCategoryKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.setTheme(NextTheme(m.theme.Name))
		return m, nil

	case key.Matches(msg, m.keys.Random):
		cmd := m.dispatch(state.RandomRequest())
		return m, cmd

	case key.Matches(msg, m.keys.Search), key.Matches(msg, m.keys.Tab):
		cmd := m.focusSearch()
		return m, cmd

	case key.Matches(msg, m.keys.Categories):
		m.focus = focusCategories
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		cmd := m.copyJoke()
		return m, cmd
	}
	return m, nil
}

// handleSearchKey routes keys to the search input.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		cmd := m.submitSearch()
		return m, cmd

	case key.Matches(msg, m.keys.Escape):
		m.search.Blur()
		m.focus = focusNone
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		m.search.Blur()
		m.focus = focusCategories
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

// handleCategoryKey moves through and selects from the category list.
func (m Model) handleCategoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	options := len(m.snapshot.Categories) + 1
	switch {
	case key.Matches(msg, m.keys.Confirm):
		cmd := m.selectCategory(m.categoryCursor)
		return m, cmd

	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Quit):
		m.focus = focusNone
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		m.focus = focusNone
		return m, nil

	case key.Matches(msg, m.keys.Down), key.Matches(msg, m.keys.Right):
		if m.categoryCursor < options-1 {
			m.categoryCursor++
		}

	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Left):
		if m.categoryCursor > 0 {
			m.categoryCursor--
		}

	case key.Matches(msg, m.keys.Top):
		m.categoryCursor = 0

	case key.Matches(msg, m.keys.Random):
		cmd := m.dispatch(state.RandomRequest())
		return m, cmd
	}
	return m, nil
}

func (m *Model) focusSearch() tea.Cmd {
	m.focus = focusSearch
	return m.search.Focus()
}

// submitSearch dispatches a search unless the trimmed query is empty.
func (m *Model) submitSearch() tea.Cmd {
	query := m.search.Value()
	if strings.TrimSpace(query) == "" {
		return nil
	}
	m.search.Blur()
	m.focus = focusNone
	return m.dispatch(state.SearchRequest(query))
}

// selectCategory dispatches a category fetch for option idx. Index 0 is the
// default option and never dispatches.
func (m *Model) selectCategory(idx int) tea.Cmd {
	if idx <= 0 || idx > len(m.snapshot.Categories) {
		return nil
	}
	category := m.snapshot.Categories[idx-1]
	if strings.TrimSpace(category) == "" {
		return nil
	}
	m.focus = focusNone
	return m.dispatch(state.CategoryRequest(category))
}

func (m *Model) clampCategoryCursor() {
	if m.categoryCursor > len(m.snapshot.Categories) {
		m.categoryCursor = len(m.snapshot.Categories)
	}
	if m.categoryCursor < 0 {
		m.categoryCursor = 0
	}
}

func (m *Model) setTheme(name string) {
	m.theme = GetTheme(name)
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
}

func (m *Model) handleShuffle() tea.Cmd {
	cmds := []tea.Cmd{shuffleCmd(m.shuffle)}
	if !m.store.Snapshot().Loading {
		cmds = append(cmds, m.dispatch(state.RandomRequest()))
	}
	return tea.Batch(cmds...)
}

func (m *Model) copyJoke() tea.Cmd {
	if !m.snapshot.HasJoke {
		return nil
	}
	if err := m.copy(m.snapshot.Joke); err != nil {
		m.logger.Warn("clipboard write failed", zap.Error(err))
		return m.setNotice("Clipboard unavailable")
	}
	return m.setNotice("Copied joke to clipboard")
}

func (m *Model) setNotice(text string) tea.Cmd {
	m.noticeID++
	m.notice = text
	return noticeClearCmd(m.noticeID, noticeTimeout)
}

func (m Model) logResolution(res state.Result, applied bool) {
	fields := []zap.Field{
		zap.Stringer("kind", res.Request.Kind),
		zap.Uint64("seq", res.Request.Seq),
		zap.Bool("applied", applied),
	}
	if res.Err != nil {
		m.logger.Warn("request rejected", append(fields, zap.Error(res.Err))...)
		return
	}
	m.logger.Debug("request fulfilled", fields...)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, programOpts...)
	_, err := p.Run()
	return err
}
