// Package browser implements the record browser mode controller: three
// panes over the model's displayed views plus a command line.
package browser

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"matchbook/internal/command"
	"matchbook/internal/keys"
	"matchbook/internal/log"
	"matchbook/internal/mode"
	"matchbook/internal/tracing"
)

// Pane identifies one of the three record panes.
type Pane int

const (
	PanePersons Pane = iota
	PaneListings
	PaneTags

	paneCount = 3
)

// Model is the browser mode state.
type Model struct {
	services mode.Services
	keys     keys.KeyMap

	input    textinput.Model
	focused  Pane
	cursors  [paneCount]int
	showHelp bool
	helpText string

	feedback string
	err      error

	width  int
	height int
}

// New creates a new browser mode controller.
func New(services mode.Services) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "type a command, ? for help"
	ti.CharLimit = 512

	km := keys.DefaultKeyMap()
	if services.Config.UI.VimMode {
		km = keys.VimKeyMap()
	}

	return Model{
		services: services,
		keys:     km,
		input:    ti,
	}
}

// Init returns initial commands for the mode.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize handles terminal resize.
func (m Model) SetSize(width, height int) mode.Controller {
	m.width = width
	m.height = height
	m.input.Width = width - 4
	m.helpText = ""
	return m
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (mode.Controller, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case mode.ReloadedMsg:
		m.clampCursors()
		m.feedback = "Data file reloaded"
		m.err = nil
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (mode.Controller, tea.Cmd) {
	if m.showHelp {
		if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Escape) || key.Matches(msg, m.keys.Quit) {
			m.showHelp = false
		}
		return m, nil
	}

	if m.input.Focused() {
		switch msg.Type {
		case tea.KeyEnter:
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			// Give the panes the keyboard back; the next ":" refocuses.
			m.input.Blur()
			if line == "" {
				return m, nil
			}
			return m.execute(line)
		case tea.KeyEscape:
			m.input.Blur()
			return m, nil
		case tea.KeyCtrlC:
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.FocusCmd):
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.NextPane):
		m.focused = (m.focused + 1) % paneCount
		return m, nil

	case key.Matches(msg, m.keys.PrevPane):
		m.focused = (m.focused + paneCount - 1) % paneCount
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursors[m.focused] > 0 {
			m.cursors[m.focused]--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursors[m.focused] < m.paneLen(m.focused)-1 {
			m.cursors[m.focused]++
		}
		return m, nil

	case key.Matches(msg, m.keys.ClearView):
		m.services.Model.ResetAllLists()
		m.clampCursors()
		m.feedback = "Lists reset"
		m.err = nil
		return m, nil
	}

	return m, nil
}

// execute parses and runs a command line against the model.
func (m Model) execute(line string) (mode.Controller, tea.Cmd) {
	m.err = nil
	m.feedback = ""

	cmd, err := command.Parse(line)
	if err != nil {
		m.err = err
		return m, nil
	}

	name, _, _ := strings.Cut(line, " ")
	ctx := context.Background()
	var span trace.Span
	if m.services.Tracer != nil {
		ctx, span = m.services.Tracer.Start(ctx, tracing.SpanPrefixCommand+name)
		span.SetAttributes(attribute.String(tracing.AttrCommandName, name))
		defer span.End()
	}

	res, err := cmd.Execute(ctx, m.services.Env())
	if err != nil {
		if span != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		log.ErrorErr(log.CatUI, "command failed", err, "command", name)
		m.err = err
		return m, nil
	}

	m.feedback = res.Feedback
	if span != nil && res.Feedback != "" {
		span.SetAttributes(attribute.String(tracing.AttrCommandFeedback, res.Feedback))
	}
	m.clampCursors()

	if mut, ok := cmd.(command.Mutator); ok && mut.Mutates() {
		if span != nil {
			span.SetAttributes(attribute.Bool(tracing.AttrCommandMutating, true))
		}
		return m, func() tea.Msg { return mode.MutatedMsg{Command: name} }
	}
	return m, nil
}

func (m Model) paneLen(p Pane) int {
	switch p {
	case PanePersons:
		return len(m.services.Model.SortedFilteredPersons())
	case PaneListings:
		return len(m.services.Model.SortedFilteredListings())
	default:
		return len(m.services.Model.FilteredTags())
	}
}

func (m *Model) clampCursors() {
	for p := Pane(0); p < paneCount; p++ {
		if n := m.paneLen(p); m.cursors[p] >= n {
			m.cursors[p] = max(n-1, 0)
		}
	}
}

// View renders the mode's UI.
func (m Model) View() string {
	if m.showHelp {
		if m.helpText == "" {
			m.helpText = renderHelp(min(m.width-4, 80), m.services.Config.UI.MarkdownStyle)
		}
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			paneStyle.Render(m.helpText))
	}

	header := m.renderHeader()
	panes := m.renderPanes()
	input := m.input.View()
	status := m.renderStatusBar()

	return lipgloss.JoinVertical(lipgloss.Left, header, panes, input, status)
}

func (m Model) renderHeader() string {
	title := paneTitleStyle.Render("Matchbook")
	if search, ok := m.services.Model.Search(); ok {
		desc := fmt.Sprintf("match %s: tags=%s range=%s",
			search.Target, strings.Join(search.Tags.Names(), ","), search.Range)
		return title + "  " + searchBarStyle.Render(desc)
	}
	return title
}

func (m Model) renderPanes() string {
	paneWidth := max(m.width/3-4, 20)
	paneHeight := max(m.height-6, 3)

	persons := m.stylePane(PanePersons, paneWidth, paneHeight,
		fmt.Sprintf("Persons (%d)", m.paneLen(PanePersons)), m.renderPersons(paneWidth))
	listings := m.stylePane(PaneListings, paneWidth, paneHeight,
		fmt.Sprintf("Listings (%d)", m.paneLen(PaneListings)), m.renderListings(paneWidth))
	tags := m.stylePane(PaneTags, paneWidth, paneHeight,
		fmt.Sprintf("Tags (%d)", m.paneLen(PaneTags)), m.renderTags(paneWidth))

	return lipgloss.JoinHorizontal(lipgloss.Top, persons, listings, tags)
}

func (m Model) stylePane(p Pane, width, height int, title string, body []string) string {
	style := paneStyle
	if p == m.focused {
		style = focusedPaneStyle
	}
	content := paneTitleStyle.Render(title) + "\n" + strings.Join(body, "\n")
	return style.Width(width).Height(height).Render(content)
}

func (m Model) renderPersons(width int) []string {
	var lines []string
	for i, p := range m.services.Model.SortedFilteredPersons() {
		line := fmt.Sprintf("%d. %s (%s)", i+1, p.Name, p.Phone)
		if m.focused == PanePersons && m.cursors[PanePersons] == i {
			lines = append(lines, cursorRowStyle.Render(clipRow("> "+line, width)))
		} else {
			lines = append(lines, rowStyle.Render(clipRow("  "+line, width)))
		}
		for j, pref := range p.Preferences {
			detail := fmt.Sprintf("     %d) %s", j+1, pref.Range)
			if names := pref.Tags.Names(); len(names) > 0 {
				detail += " " + tagStyle.Render("["+strings.Join(names, " ")+"]")
			}
			lines = append(lines, detailStyle.Render(clipRow(detail, width)))
		}
	}
	return lines
}

func (m Model) renderListings(width int) []string {
	var lines []string
	for i, l := range m.services.Model.SortedFilteredListings() {
		line := fmt.Sprintf("%d. %s", i+1, l.DisplayName())
		switch {
		case m.focused == PaneListings && m.cursors[PaneListings] == i:
			lines = append(lines, cursorRowStyle.Render(clipRow("> "+line, width)))
		case !l.Available:
			lines = append(lines, unavailableStyle.Render(clipRow("  "+line, width)))
		default:
			lines = append(lines, rowStyle.Render(clipRow("  "+line, width)))
		}
		detail := "     " + l.Range.String()
		if names := l.Tags.Names(); len(names) > 0 {
			detail += " " + tagStyle.Render("["+strings.Join(names, " ")+"]")
		}
		if n := len(l.OwnerPhones); n > 0 {
			detail += fmt.Sprintf(" %d owner(s)", n)
		}
		lines = append(lines, detailStyle.Render(clipRow(detail, width)))
	}
	return lines
}

func (m Model) renderTags(width int) []string {
	var lines []string
	for i, t := range m.services.Model.FilteredTags() {
		line := fmt.Sprintf("%d. %s (%d)", i+1, t.Name(), t.UsageCount())
		if m.focused == PaneTags && m.cursors[PaneTags] == i {
			lines = append(lines, cursorRowStyle.Render(clipRow("> "+line, width)))
		} else {
			lines = append(lines, rowStyle.Render(clipRow("  "+line, width)))
		}
	}
	return lines
}

// clipRow shortens a row to the pane's inner width. Styled segments are
// preserved; truncation is ANSI-aware.
func clipRow(s string, width int) string {
	if width <= 1 || runewidth.StringWidth(s) <= width {
		return s
	}
	return truncate.StringWithTail(s, uint(width), "…")
}

// renderStatusBar shows errors and feedback regardless of the ShowStatusBar
// setting; only the idle key hints honor it.
func (m Model) renderStatusBar() string {
	switch {
	case m.err != nil:
		return errorStyle.Render(wordwrap.String("Error: "+m.err.Error(), max(m.width-2, 20)))
	case m.feedback != "":
		return feedbackStyle.Render(wordwrap.String(m.feedback, max(m.width-2, 20)))
	case !m.services.Config.UI.ShowStatusBar:
		return ""
	default:
		return statusBarStyle.Render("tab: switch pane  :: command  ?: help  q: quit")
	}
}
