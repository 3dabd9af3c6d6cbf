// Package mode defines the mode controller interface and shared services.
package mode

import (
	"matchbook/internal/command"
	"matchbook/internal/config"
	"matchbook/internal/matcher"
	"matchbook/internal/model"
	"matchbook/internal/storage"

	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel/trace"
)

// AppMode identifies the current application mode.
type AppMode int

const (
	ModeBrowser AppMode = iota
)

// Controller defines the interface all modes must implement.
type Controller interface {
	// Init returns initial commands for the mode.
	Init() tea.Cmd

	// Update handles messages and returns updated model and commands.
	Update(msg tea.Msg) (Controller, tea.Cmd)

	// View renders the mode's UI.
	View() string

	// SetSize handles terminal resize events.
	SetSize(width, height int) Controller
}

// Services contains shared dependencies injected into mode controllers.
type Services struct {
	Model      *model.Model
	Matches    *matcher.Cached
	Store      *storage.Store
	Config     *config.Config
	Tracer     trace.Tracer
	ConfigPath string
	DataPath   string
}

// Env returns the command execution environment backed by the services.
func (s Services) Env() command.Env {
	return command.Env{Model: s.Model, Matches: s.Matches}
}

// MutatedMsg is emitted after a successful mutating command so the
// application can persist the store and flush the match cache.
type MutatedMsg struct {
	Command string
}

// ReloadedMsg is emitted after the model has been reloaded from disk so
// modes can refresh their panes.
type ReloadedMsg struct{}
