package tui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"cat-breed-search/internal/domain/breeds"
	"cat-breed-search/internal/domain/sessions"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualTimers guarda los callbacks del debounce para dispararlos a mano.
type manualTimers struct {
	mu  sync.Mutex
	fns []func()
}

type manualTimer struct{}

func (manualTimer) Stop() bool { return true }

func (c *manualTimers) AfterFunc(_ time.Duration, f func()) sessions.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fns = append(c.fns, f)
	return manualTimer{}
}

// fireLast corre solo el último armado (los anteriores quedaron cancelados).
func (c *manualTimers) fireLast() {
	c.mu.Lock()
	if len(c.fns) == 0 {
		c.mu.Unlock()
		return
	}
	f := c.fns[len(c.fns)-1]
	c.fns = nil
	c.mu.Unlock()
	f()
}

type stubFetcher struct {
	items []breeds.EnrichedBreed
	err   error
}

func (f stubFetcher) Fetch(context.Context, string) ([]breeds.EnrichedBreed, error) {
	return f.items, f.err
}

func twoBreeds() []breeds.EnrichedBreed {
	return []breeds.EnrichedBreed{
		{Breed: breeds.Breed{ID: "siam", Name: "Siamese", LifeSpan: "12 - 15", Weight: &breeds.Weight{Metric: "3 - 7"}}},
		{
			Breed: breeds.Breed{ID: "beng", Name: "Bengal", LifeSpan: "12 - 16", Weight: &breeds.Weight{Metric: "4 - 8"}},
			Image: &breeds.Image{URL: "http://x/1.jpg"},
		},
	}
}

func newTestModel(t *testing.T, f sessions.Fetcher) (Model, *sessions.Session, *manualTimers) {
	t.Helper()
	timers := &manualTimers{}
	sess := sessions.NewSession("tui", f, sessions.Options{AfterFunc: timers.AfterFunc})
	t.Cleanup(sess.Close)
	return New(sess, Options{}), sess, timers
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func press(m Model, k tea.KeyType) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: k})
	return next.(Model), cmd
}

func TestModel_InitialView(t *testing.T) {
	m, _, _ := newTestModel(t, stubFetcher{})

	view := m.View()
	assert.Contains(t, view, "Cat breeds")
	assert.Contains(t, view, "Type at least 3 characters")
	assert.Contains(t, view, "Sort:")
	assert.NotNil(t, m.Init())
}

func TestModel_TypingDrivesSession(t *testing.T) {
	m, sess, timers := newTestModel(t, stubFetcher{items: twoBreeds()})

	m = typeText(m, "ben")
	snap := sess.Snapshot()
	assert.Equal(t, "ben", snap.Query)
	assert.True(t, snap.Pending)
	assert.Contains(t, m.View(), "Waiting for you to stop typing")

	timers.fireLast()

	next, cmd := m.Update(snapshotMsg(sess.Snapshot()))
	m = next.(Model)
	require.NotNil(t, cmd, "model must keep listening for snapshots")

	view := m.View()
	assert.Contains(t, view, "2 breeds")
	assert.Contains(t, view, "Bengal")
	assert.Contains(t, view, "http://x/1.jpg")
	assert.Contains(t, view, "(no image)")
}

func TestModel_SortKeys(t *testing.T) {
	m, sess, timers := newTestModel(t, stubFetcher{items: twoBreeds()})
	m = typeText(m, "cat")
	timers.fireLast()
	next, _ := m.Update(snapshotMsg(sess.Snapshot()))
	m = next.(Model)

	m, _ = press(m, tea.KeyCtrlN)
	assert.Equal(t, breeds.SortState{Key: breeds.SortByName, Direction: breeds.Asc}, m.Snapshot().Sort)
	view := m.View()
	assert.Less(t, strings.Index(view, "Bengal"), strings.Index(view, "Siamese"))

	m, _ = press(m, tea.KeyCtrlN)
	assert.Equal(t, breeds.Desc, m.Snapshot().Sort.Direction)
	view = m.View()
	assert.Less(t, strings.Index(view, "Siamese"), strings.Index(view, "Bengal"))

	m, _ = press(m, tea.KeyCtrlW)
	assert.Equal(t, breeds.SortState{Key: breeds.SortByWeight, Direction: breeds.Asc}, m.Snapshot().Sort)
	assert.Equal(t, "siam", m.Snapshot().Results[0].ID)

	m, _ = press(m, tea.KeyCtrlL)
	assert.Equal(t, breeds.SortByLifeSpan, m.Snapshot().Sort.Key)

	// los atajos no escriben en el input
	assert.Equal(t, "cat", sess.Snapshot().Query)
}

func TestModel_ShowsErrorAndKeepsResults(t *testing.T) {
	m, _, _ := newTestModel(t, stubFetcher{})
	m.apply(sessions.Snapshot{
		Revision: 10,
		Query:    "ben",
		Error:    "request failed: http error: status=500",
		Results:  twoBreeds(),
		Sort:     breeds.InitialSortState(),
	})

	view := m.View()
	assert.Contains(t, view, "Error: request failed")
	assert.Contains(t, view, "Bengal")
}

func TestModel_IgnoresOlderSnapshots(t *testing.T) {
	m, _, _ := newTestModel(t, stubFetcher{})
	m.apply(sessions.Snapshot{Revision: 5, Query: "new"})
	m.apply(sessions.Snapshot{Revision: 3, Query: "old"})
	assert.Equal(t, "new", m.Snapshot().Query)
}

func TestModel_QuitKeys(t *testing.T) {
	m, _, _ := newTestModel(t, stubFetcher{})

	m, cmd := press(m, tea.KeyEsc)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestModel_StreamClosedQuits(t *testing.T) {
	m, sess, _ := newTestModel(t, stubFetcher{})
	sess.Close()

	// el primer mensaje es el snapshot inicial; después el canal cerrado
	msg := waitForSnapshot(m.updates)()
	_, ok := msg.(snapshotMsg)
	require.True(t, ok)

	msg = waitForSnapshot(m.updates)()
	next, cmd := m.Update(msg)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.(Model).View())
}

func TestModel_WindowResize(t *testing.T) {
	m, _, _ := newTestModel(t, stubFetcher{})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(Model)
	assert.Equal(t, 100, m.viewport.Width)
	assert.Equal(t, 40-chromeHeight, m.viewport.Height)
}
