package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"pdarena.dev/service/types"
)

// MaxFeedRows bounds how many recent resolutions MatchFeedModel keeps
// in memory, matching the Result Broadcaster's own bounded backlog.
const MaxFeedRows = 1000

// keyMap binds the feed's single key command.
type keyMap struct {
	Quit key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// MatchResolutionMsg carries one live match resolution into the
// running program, pushed by the caller's WebSocket reader goroutine
// via tea.Program.Send.
type MatchResolutionMsg types.MatchResolutionLite

// MatchFeedModel is a Bubble Tea model rendering a live-tailing table
// of match resolutions, the operator-facing view onto the stream the
// Stream Handlers serve over /public/ws/match_resolution_lite/stream.
type MatchFeedModel struct {
	rows     []types.MatchResolutionLite
	width    int
	height   int
	quitting bool
}

// NewMatchFeedModel creates an empty feed model.
func NewMatchFeedModel() MatchFeedModel {
	return MatchFeedModel{}
}

// Init implements tea.Model.
func (m MatchFeedModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m MatchFeedModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case MatchResolutionMsg:
		m.rows = append(m.rows, types.MatchResolutionLite(msg))
		if len(m.rows) > MaxFeedRows {
			m.rows = m.rows[len(m.rows)-MaxFeedRows:]
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m MatchFeedModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Live Match Resolutions"))
	b.WriteString("\n\n")

	header := fmt.Sprintf("%-8s %-10s %-10s %-6s %-7s %-10s", "id", "submission", "opponent", "round", "matchup", "outcome")
	b.WriteString(LabelStyle.Render(header))
	b.WriteString("\n")

	start := 0
	visible := m.height - 6
	if visible < 1 {
		visible = 20
	}
	if len(m.rows) > visible {
		start = len(m.rows) - visible
	}
	for _, row := range m.rows[start:] {
		b.WriteString(fmt.Sprintf("%-8d %-10d %-10d %-6d %-7d %s\n",
			row.MatchResolutionID, row.SubmissionID, row.OpponentSubmissionID,
			row.Round, row.Matchup, outcomeLabel(row.Defected)))
	}

	b.WriteString(HelpStyle.Render("Press q or Ctrl+C to quit"))
	return b.String()
}

func outcomeLabel(defected *bool) string {
	switch {
	case defected == nil:
		return WarningStyle.Render("pending")
	case *defected:
		return ErrorStyle.Render("defected")
	default:
		return SuccessStyle.Render("cooperated")
	}
}

// RunMatchFeedTUI starts a Bubble Tea program rendering the feed and
// returns the running program so the caller's WebSocket reader
// goroutine can push MatchResolutionMsg values via p.Send.
func RunMatchFeedTUI() *tea.Program {
	return tea.NewProgram(NewMatchFeedModel(), tea.WithAltScreen())
}
