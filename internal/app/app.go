// Package app contains the root application model.
package app

import (
	"context"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"matchbook/internal/config"
	"matchbook/internal/log"
	"matchbook/internal/matcher"
	"matchbook/internal/mode"
	"matchbook/internal/mode/browser"
	"matchbook/internal/model"
	"matchbook/internal/storage"
	"matchbook/internal/tracing"
	"matchbook/internal/watcher"
)

// fileChangedMsg is produced when the watcher reports a data file change.
type fileChangedMsg struct{}

// Model is the root application state.
type Model struct {
	controller mode.Controller
	services   mode.Services

	watcherHandle *watcher.Watcher
	changes       <-chan struct{}

	// lastSave is the data file's mtime right after our own save, so the
	// watcher echo of that save is not mistaken for an external change.
	lastSave time.Time

	width  int
	height int
}

// New creates the application model. The watcher is optional: when the
// config disables auto reload, or the watcher cannot start, the app
// works without it.
func New(m *model.Model, store *storage.Store, cfg config.Config, provider *tracing.Provider, configPath string) Model {
	var (
		handle  *watcher.Watcher
		changes <-chan struct{}
	)

	if cfg.AutoReload && store.Path() != "" {
		w, err := watcher.New(watcher.DefaultConfig(store.Path()))
		if err == nil {
			ch, err := w.Start()
			if err == nil {
				handle = w
				changes = ch
			} else {
				_ = w.Stop()
			}
		}
		// The app works fine without auto-reload, so watcher init
		// errors are not fatal.
	}

	services := mode.Services{
		Model:      m,
		Matches:    matcher.NewCached(),
		Store:      store,
		Config:     &cfg,
		Tracer:     provider.Tracer(),
		ConfigPath: configPath,
		DataPath:   store.Path(),
	}

	return Model{
		controller:    browser.New(services),
		services:      services,
		watcherHandle: handle,
		changes:       changes,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.controller.Init()}
	if m.changes != nil {
		cmds = append(cmds, waitForChange(m.changes))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.controller = m.controller.SetSize(msg.Width, msg.Height)
		return m, nil

	case mode.MutatedMsg:
		m.lastSave = m.persist(msg.Command)
		return m, nil

	case fileChangedMsg:
		var cmds []tea.Cmd
		if m.isExternalChange() {
			m.reload()
			var cmd tea.Cmd
			m.controller, cmd = m.controller.Update(mode.ReloadedMsg{})
			cmds = append(cmds, cmd)
		}
		if m.changes != nil {
			cmds = append(cmds, waitForChange(m.changes))
		}
		return m, tea.Batch(cmds...)
	}

	var cmd tea.Cmd
	m.controller, cmd = m.controller.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	return m.controller.View()
}

// Shutdown releases the watcher. Call after the program exits.
func (m Model) Shutdown() {
	if m.watcherHandle != nil {
		_ = m.watcherHandle.Stop()
	}
}

// persist saves the store after a successful mutating command and drops
// memoized match results. Returns the saved file's mtime so the
// watcher's echo of this save can be recognized.
func (m Model) persist(commandName string) time.Time {
	if err := m.services.Store.Save(m.services.Model); err != nil {
		log.ErrorErr(log.CatStore, "save failed", err, "command", commandName)
		return m.lastSave
	}
	m.services.Matches.Flush(context.Background())
	log.Debug(log.CatStore, "saved", "command", commandName, "path", m.services.Store.Path())

	info, err := os.Stat(m.services.Store.Path())
	if err != nil {
		return m.lastSave
	}
	return info.ModTime()
}

// isExternalChange reports whether the data file on disk differs from
// the last state this process wrote.
func (m Model) isExternalChange() bool {
	if m.lastSave.IsZero() {
		return true
	}
	info, err := os.Stat(m.services.Store.Path())
	if err != nil {
		return true
	}
	return !info.ModTime().Equal(m.lastSave)
}

// reload replaces the model contents from disk, keeping identities alive.
func (m Model) reload() {
	loaded, err := m.services.Store.Load()
	if err != nil {
		log.ErrorErr(log.CatStore, "reload failed", err, "path", m.services.Store.Path())
		return
	}
	m.services.Model.ReplaceFrom(loaded)
	m.services.Matches.Flush(context.Background())
	log.Info(log.CatStore, "reloaded data file", "path", m.services.Store.Path())
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}
