package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchbook/internal/config"
	"matchbook/internal/estate"
	"matchbook/internal/mode"
	"matchbook/internal/model"
	"matchbook/internal/storage"
	"matchbook/internal/tracing"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func createTestModel(t *testing.T) (Model, string) {
	t.Helper()
	dataPath := filepath.Join(t.TempDir(), "book.json")
	cfg := config.Defaults()
	cfg.AutoReload = false
	cfg.DataFile = dataPath

	provider, err := tracing.NewProvider(tracing.Config{Enabled: false})
	require.NoError(t, err)

	m := New(model.New(), storage.New(dataPath), cfg, provider, "")
	newModel, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return newModel.(Model), dataPath
}

func TestApp_WindowSizeMsg(t *testing.T) {
	m, _ := createTestModel(t)

	newModel, _ := m.Update(tea.WindowSizeMsg{Width: 150, Height: 50})
	m = newModel.(Model)

	assert.Equal(t, 150, m.width, "expected width to be updated")
	assert.Equal(t, 50, m.height, "expected height to be updated")
}

func TestApp_ViewDelegates(t *testing.T) {
	m, _ := createTestModel(t)
	assert.Contains(t, m.View(), "Matchbook")
}

func TestApp_MutatedMsgPersistsStore(t *testing.T) {
	m, dataPath := createTestModel(t)
	m.services.Model.AddPerson(estate.NewPerson("Alice Tan", "91234567", ""))

	newModel, _ := m.Update(mode.MutatedMsg{Command: "addPerson"})
	m = newModel.(Model)

	data, err := os.ReadFile(dataPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "91234567")
}

func TestApp_OwnSaveDoesNotTriggerReload(t *testing.T) {
	m, _ := createTestModel(t)
	m.services.Model.AddPerson(estate.NewPerson("Alice Tan", "91234567", ""))

	newModel, _ := m.Update(mode.MutatedMsg{Command: "addPerson"})
	m = newModel.(Model)

	// View state a reload would wipe.
	m.services.Model.SetSearch(estate.NewTagSet(), estate.UnboundedRange(), model.SearchPersons)

	// The watcher echoes our own save back as a change event.
	newModel, _ = m.Update(fileChangedMsg{})
	m = newModel.(Model)

	_, ok := m.services.Model.Search()
	require.True(t, ok, "the app's own save must not reset view state")
}

func TestApp_FileChangedReloadsModel(t *testing.T) {
	m, dataPath := createTestModel(t)

	// Another process writes a populated book.
	other := model.New()
	other.AddPerson(estate.NewPerson("Bob Lee", "98765432", ""))
	require.NoError(t, storage.New(dataPath).Save(other))

	newModel, _ := m.Update(fileChangedMsg{})
	m = newModel.(Model)

	require.True(t, m.services.Model.HasPerson("98765432"))
}

func TestApp_Smoke(t *testing.T) {
	m, _ := createTestModel(t)

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(120, 40))

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("Matchbook"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))
}
