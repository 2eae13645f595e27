// Package ariui implements an interactive terminal browser over a loaded
// ADM catalog, built with Bubble Tea and Lip Gloss.
package ariui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"go.amprs.dev/ari/adm"
	"go.amprs.dev/ari/log"
)

var (
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	countStyle    = lipgloss.NewStyle().Faint(true)
	logStyle      = lipgloss.NewStyle().Faint(true)
)

// maxLogLines bounds the scrollback kept for the live log pane.
const maxLogLines = 5

// logMsg carries one line read from a [log.Subscription] into Update.
type logMsg string

// Model is a Bubble Tea model listing the ADMs in a catalog and, once one
// is selected, the managed objects it defines. When constructed with
// [NewWithLogs] it also renders a live tail of the process' own log output,
// fed by a [log.Publisher] subscription.
type Model struct {
	catalog *adm.Catalog
	files   []*adm.File
	cursor  int
	focused *adm.File
	width   int
	height  int
	quitted bool

	logSub   *log.Subscription
	logLines []string
}

// New returns a Model browsing cat.
func New(cat *adm.Catalog) *Model {
	return &Model{catalog: cat, files: cat.Files()}
}

// NewWithLogs returns a Model browsing cat that also tails log entries
// delivered by sub.
func NewWithLogs(cat *adm.Catalog, sub *log.Subscription) *Model {
	m := New(cat)
	m.logSub = sub

	return m
}

// Init implements [tea.Model].
func (m *Model) Init() tea.Cmd {
	if m.logSub == nil {
		return nil
	}

	return waitForLog(m.logSub)
}

// waitForLog returns a command that blocks on the subscription's channel
// and reissues itself after each delivered line, the standard Bubble Tea
// pattern for bridging an external channel into the Update loop.
func waitForLog(sub *log.Subscription) tea.Cmd {
	return func() tea.Msg {
		b, ok := <-sub.C()
		if !ok {
			return nil
		}

		return logMsg(strings.TrimRight(string(b), "\n"))
	}
}

// Update implements [tea.Model].
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if m.focused != nil {
				m.focused = nil

				return m, nil
			}
			m.quitted = true

			return m, tea.Quit
		case "up", "k":
			if m.focused == nil && m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.focused == nil && m.cursor < len(m.files)-1 {
				m.cursor++
			}
		case "enter":
			if m.focused == nil && len(m.files) > 0 {
				m.focused = m.files[m.cursor]
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case logMsg:
		m.logLines = append(m.logLines, string(msg))
		if len(m.logLines) > maxLogLines {
			m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
		}

		return m, waitForLog(m.logSub)
	}

	return m, nil
}

// View implements [tea.Model].
func (m *Model) View() tea.View {
	var sb strings.Builder

	if m.focused == nil {
		sb.WriteString(headerStyle.Render("ADM catalog") + "\n\n")
		for i, f := range m.files {
			line := fmt.Sprintf("%s  %s", f.Name, countStyle.Render(fmt.Sprintf("(enum %d)", f.Enum)))
			if i == m.cursor {
				line = selectedStyle.Render("> " + line)
			} else {
				line = "  " + line
			}
			sb.WriteString(line + "\n")
		}
		sb.WriteString("\n" + countStyle.Render("↑/↓ to move, enter to open, q to quit"))
	} else {
		sb.WriteString(headerStyle.Render(m.focused.Name) + "\n\n")
		writeSection(&sb, "const", len(m.focused.Consts))
		writeSection(&sb, "ctrl", len(m.focused.Ctrls))
		writeSection(&sb, "edd", len(m.focused.Edds))
		writeSection(&sb, "mac", len(m.focused.Macs))
		writeSection(&sb, "oper", len(m.focused.Opers))
		writeSection(&sb, "rptt", len(m.focused.Rptts))
		writeSection(&sb, "tblt", len(m.focused.Tblts))
		writeSection(&sb, "var", len(m.focused.Vars))
		sb.WriteString("\n" + countStyle.Render("esc to go back, q to quit"))
	}

	if len(m.logLines) > 0 {
		sb.WriteString("\n\n" + headerStyle.Render("log") + "\n")
		for _, line := range m.logLines {
			sb.WriteString(logStyle.Render(line) + "\n")
		}
	}

	v := tea.NewView(sb.String())
	v.AltScreen = true

	return v
}

func writeSection(sb *strings.Builder, name string, count int) {
	if count == 0 {
		return
	}
	fmt.Fprintf(sb, "  %s: %d\n", name, count)
}

// Run starts the program and blocks until the user quits.
func Run(cat *adm.Catalog) error {
	_, err := tea.NewProgram(New(cat)).Run()

	return err
}

// RunWithLogs starts the program with a live log pane fed by sub, and
// blocks until the user quits.
func RunWithLogs(cat *adm.Catalog, sub *log.Subscription) error {
	_, err := tea.NewProgram(NewWithLogs(cat, sub)).Run()

	return err
}
