package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mkutlay/checkdeck/internal/emoji"
)

// View renders the workbench
func (m *Model) View() string {
	if !m.ready {
		return lipgloss.NewStyle().
			Foreground(m.primaryColor).
			Bold(true).
			Render("Starting CheckDeck...")
	}

	if m.quitting {
		return ""
	}

	switch m.currentView {
	case viewPicker:
		return m.renderPicker()
	case viewHelp:
		return m.renderHelp()
	default:
		return m.renderMain()
	}
}

func (m *Model) renderMain() string {
	title := lipgloss.NewStyle().
		Foreground(m.primaryColor).
		Bold(true).
		Render("CheckDeck")

	status := m.renderStatusLine()
	menu := m.renderMenu()
	logPane := m.renderLog()

	var busy string
	if m.busy {
		busy = lipgloss.NewStyle().
			Foreground(m.warningColor).
			Render(fmt.Sprintf("%s %s...", spinnerChars[m.spinnerFrame], m.busyLabel))
	}

	instructions := lipgloss.NewStyle().
		Foreground(m.secondaryColor).
		Render("↑↓ Navigate • Enter Activate • 1-4 Toggle severity • o Select dir • r Run • ? Help • q Quit")

	sections := []string{title, status, "", menu}
	if busy != "" {
		sections = append(sections, "", busy)
	}
	sections = append(sections, "", logPane, "", instructions)

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.primaryColor).
		Padding(1, 2).
		Width(min(m.width-4, 110))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, border.Render(content))
}

func (m *Model) renderStatusLine() string {
	project := m.project
	if project == "" {
		project = "no project selected"
	}

	var tools []string
	for _, tool := range m.cfg.RequiredTools() {
		glyph := emoji.GetEmoji("success")
		if !m.deps.Avail[tool] {
			glyph = emoji.GetEmoji("missing")
		}
		tools = append(tools, fmt.Sprintf("%s %s", glyph, tool))
	}

	line := fmt.Sprintf("%s %s  •  %s", emoji.GetEmoji("folder"), project, strings.Join(tools, "  "))
	return lipgloss.NewStyle().Foreground(m.secondaryColor).Render(line)
}

func (m *Model) renderMenu() string {
	items := m.menu()
	rows := make([]string, 0, len(items))
	for i, item := range items {
		label := item.label
		if item.checked != nil {
			mark := "[ ]"
			if *item.checked {
				mark = "[x]"
			}
			label = mark + " " + label
		}

		prefix := "  "
		style := lipgloss.NewStyle().Foreground(m.secondaryColor)
		switch {
		case i == m.selectedIndex:
			prefix = "▶ "
			style = style.Background(m.selectedColor).Foreground(m.primaryColor).Bold(true)
		case !item.enabled:
			style = style.Faint(true)
		}

		rows = append(rows, style.Render(prefix+label))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderLog shows the tail of the activity log, sized to the window.
func (m *Model) renderLog() string {
	header := lipgloss.NewStyle().
		Foreground(m.primaryColor).
		Render("Activity log")

	lines := logLines(m.log)
	visible := max(5, m.height-len(m.menu())-14)
	if len(lines) > visible {
		lines = lines[len(lines)-visible:]
	}

	body := "(empty)"
	if len(lines) > 0 {
		body = strings.Join(lines, "\n")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.NewStyle().Foreground(m.secondaryColor).Render(body),
	)
}

// logLines splits the append-only chunk sequence into display lines.
func logLines(chunks []string) []string {
	var lines []string
	for _, chunk := range chunks {
		for _, line := range strings.Split(strings.TrimRight(chunk, "\n"), "\n") {
			lines = append(lines, line)
		}
	}
	return lines
}

func (m *Model) renderPicker() string {
	title := lipgloss.NewStyle().
		Foreground(m.primaryColor).
		Bold(true).
		Render(emoji.GetEmoji("folder") + " Select project directory")

	cwd := lipgloss.NewStyle().Foreground(m.warningColor).Render(m.picker.cwd)

	var rows []string
	if m.picker.err != nil {
		rows = append(rows, lipgloss.NewStyle().
			Foreground(m.errorColor).
			Render("Cannot read directory: "+m.picker.err.Error()))
	}
	for i, entry := range m.picker.entries {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(m.secondaryColor)
		if i == m.picker.index {
			prefix = "▶ "
			style = style.Background(m.selectedColor).Foreground(m.primaryColor).Bold(true)
		}
		rows = append(rows, style.Render(prefix+entry+"/"))
	}

	instructions := lipgloss.NewStyle().
		Foreground(m.secondaryColor).
		Render("↑↓ Navigate • Enter Descend • s Select this directory • Esc Cancel")

	content := lipgloss.JoinVertical(lipgloss.Left,
		title, "", cwd, "",
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		"", instructions,
	)

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.primaryColor).
		Padding(1, 2).
		Width(min(m.width-4, 90)).
		Height(min(m.height-4, 30))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, border.Render(content))
}

func (m *Model) renderHelp() string {
	title := lipgloss.NewStyle().
		Foreground(m.primaryColor).
		Bold(true).
		Render(emoji.GetEmoji("help") + " CheckDeck Help")

	sections := []string{
		emoji.GetEmoji("target") + " Workflow:",
		"  o    Select the project directory",
		"  1-4  Toggle severity filters (error is always on in cppcheck)",
		"  r    Run cppcheck over the project",
		"  g    Generate the HTML report and open it",
		"  d    Print the HTML report to PDF and open it",
		"",
		emoji.GetEmoji("install") + " Dependencies:",
		"  i    Install missing tools via the package manager",
		"",
		emoji.GetEmoji("door") + " Exit:",
		"  q    Quit",
		"  Esc  Back",
	}

	var rows []string
	for _, line := range sections {
		style := lipgloss.NewStyle().Foreground(m.secondaryColor)
		if strings.HasSuffix(line, ":") {
			style = lipgloss.NewStyle().Foreground(m.primaryColor).Bold(true)
		}
		rows = append(rows, style.Render(line))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		title, "",
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		"",
		lipgloss.NewStyle().Foreground(m.warningColor).Bold(true).Render("Press Esc to go back"),
	)

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.primaryColor).
		Padding(1, 2).
		Width(min(m.width-4, 80))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, border.Render(content))
}
