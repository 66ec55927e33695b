package tui

import (
	"cat-breed-search/internal/domain/breeds"
	"cat-breed-search/internal/domain/sessions"
	"cat-breed-search/internal/platform/logger"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// líneas fijas arriba y abajo del viewport: título, input, estado, orden, help
const chromeHeight = 7

// snapshotMsg trae un estado nuevo de la sesión.
type snapshotMsg sessions.Snapshot

// streamClosedMsg: la sesión se cerró.
type streamClosedMsg struct{}

// Model es el widget de búsqueda en terminal. Solo renderiza snapshots de la
// sesión; debounce, fetch y orden viven en la sesión.
type Model struct {
	session     *sessions.Session
	updates     <-chan sessions.Snapshot
	unsubscribe func()
	log         logger.Logger

	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	help     help.Model
	keys     keyMap

	snap     sessions.Snapshot
	minLen   int
	width    int
	quitting bool
}

type Options struct {
	// MinQueryLength solo afecta el texto de ayuda; el umbral real es de la sesión.
	MinQueryLength int
	Logger         logger.Logger
}

func New(sess *sessions.Session, opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	minLen := opts.MinQueryLength
	if minLen <= 0 {
		minLen = sessions.DefaultMinQueryLength
	}

	in := textinput.New()
	in.Placeholder = "Search cat breeds..."
	in.Prompt = "🔍 "
	in.CharLimit = 64
	in.Width = 40
	in.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle))

	updates, unsubscribe := sess.Subscribe()

	return Model{
		session:     sess,
		updates:     updates,
		unsubscribe: unsubscribe,
		log:         log,
		input:       in,
		spinner:     sp,
		viewport:    viewport.New(80, 20),
		help:        help.New(),
		keys:        defaultKeyMap(),
		snap:        sess.Snapshot(),
		minLen:      minLen,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, waitForSnapshot(m.updates))
}

// waitForSnapshot bloquea hasta el próximo snapshot (o el cierre del canal).
func waitForSnapshot(ch <-chan sessions.Snapshot) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return streamClosedMsg{}
		}
		return snapshotMsg(s)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-6, 10)
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chromeHeight, 3)
		m.viewport.SetContent(renderResults(m.snap.Results, m.width))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case snapshotMsg:
		m.apply(sessions.Snapshot(msg))
		return m, waitForSnapshot(m.updates)

	case streamClosedMsg:
		m.quitting = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.unsubscribe()
		return m, tea.Quit
	case key.Matches(msg, m.keys.SortName):
		return m.sortBy(breeds.SortByName), nil
	case key.Matches(msg, m.keys.SortWeight):
		return m.sortBy(breeds.SortByWeight), nil
	case key.Matches(msg, m.keys.SortLifeSpan):
		return m.sortBy(breeds.SortByLifeSpan), nil
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.ViewUp()
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.ViewDown()
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != before {
		snap, err := m.session.SetQuery(v)
		if err != nil {
			m.log.Warn("set query failed", map[string]any{"err": err})
			return m, cmd
		}
		m.apply(snap)
	}
	return m, cmd
}

func (m Model) sortBy(k breeds.SortKey) Model {
	snap, err := m.session.Sort(k)
	if err != nil {
		m.log.Warn("sort failed", map[string]any{"key": k, "err": err})
		return m
	}
	m.apply(snap)
	m.viewport.GotoTop()
	return m
}

// apply descarta snapshots más viejos que el que ya se muestra: la respuesta
// directa de SetQuery/Sort y el canal pueden llegar en cualquier orden.
func (m *Model) apply(s sessions.Snapshot) {
	if s.Revision < m.snap.Revision {
		return
	}
	m.snap = s
	m.viewport.SetContent(renderResults(s.Results, m.width))
}

// Snapshot devuelve el último estado renderizado.
func (m Model) Snapshot() sessions.Snapshot {
	return m.snap
}
