package ui

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mkutlay/checkdeck/internal/config"
	"github.com/mkutlay/checkdeck/internal/cppcheck"
	"github.com/mkutlay/checkdeck/internal/toolchain"
)

// viewState represents different views in the workbench
type viewState int

const (
	viewMain viewState = iota
	viewPicker
	viewHelp
)

// actionID identifies an activatable menu entry
type actionID int

const (
	actionSelect actionID = iota
	actionToggleError
	actionToggleWarning
	actionToggleStyle
	actionTogglePerformance
	actionRun
	actionHTML
	actionPDF
	actionInstall
	actionHelp
	actionQuit
)

// menuItem is one row of the main menu
type menuItem struct {
	id      actionID
	label   string
	enabled bool
	checked *bool // non-nil for severity toggles
}

// Deps bundles the effect dependencies the workbench drives. Every
// subprocess goes through Runner so tests can substitute fakes.
type Deps struct {
	Analyzer  *cppcheck.Analyzer
	Runner    toolchain.Runner
	Opener    *toolchain.Opener
	Installer *toolchain.Installer
	Browser   string
	Avail     toolchain.Availability
	Missing   []string
}

// Model holds the complete workbench state. All mutation happens in
// Update; effects run as commands and report back via messages, so no
// two actions are ever in flight at once.
type Model struct {
	cfg  *config.Config
	deps Deps

	// Application state
	project      string
	filters      cppcheck.Filters
	analysisDone bool
	busy         bool
	busyLabel    string
	log          []string

	// Navigation state
	currentView   viewState
	selectedIndex int
	picker        *dirPicker

	// Animation state
	spinnerFrame int
	tick         int

	width    int
	height   int
	ready    bool
	quitting bool

	// Colors and styles
	primaryColor   lipgloss.AdaptiveColor
	secondaryColor lipgloss.AdaptiveColor
	successColor   lipgloss.AdaptiveColor
	warningColor   lipgloss.AdaptiveColor
	errorColor     lipgloss.AdaptiveColor
	selectedColor  lipgloss.AdaptiveColor
}

// NewModel creates the workbench model.
func NewModel(cfg *config.Config, deps Deps) *Model {
	filters, _ := cppcheck.ParseFilters(cfg.Analysis.Severities)
	return &Model{
		cfg:            cfg,
		deps:           deps,
		filters:        filters,
		currentView:    viewMain,
		primaryColor:   lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#60A5FA"},
		secondaryColor: lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"},
		successColor:   lipgloss.AdaptiveColor{Light: "#10B981", Dark: "#34D399"},
		warningColor:   lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#FBBF24"},
		errorColor:     lipgloss.AdaptiveColor{Light: "#EF4444", Dark: "#F87171"},
		selectedColor:  lipgloss.AdaptiveColor{Light: "#DBEAFE", Dark: "#1E3A8A"},
	}
}

// Init initializes the workbench
func (m *Model) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, tick())
}

// Update handles messages and navigation
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tickMsg:
		return m.handleTick()
	case analysisDoneMsg:
		return m.handleAnalysisDone(msg)
	case pipelineDoneMsg:
		return m.handlePipelineDone(msg)
	case installDoneMsg:
		return m.handleInstallDone(msg)
	}
	return m, nil
}

// menu builds the current menu, gating each action on tool
// availability and pipeline progress.
func (m *Model) menu() []menuItem {
	cppcheckOK := m.deps.Avail[m.cfg.Tools.Cppcheck]
	htmlOK := m.deps.Avail[m.cfg.Tools.HTMLReport]

	items := []menuItem{
		{id: actionSelect, label: "Select project directory", enabled: !m.busy},
		{id: actionToggleError, label: "Error", enabled: !m.busy, checked: &m.filters.Error},
		{id: actionToggleWarning, label: "Warning", enabled: !m.busy, checked: &m.filters.Warning},
		{id: actionToggleStyle, label: "Style", enabled: !m.busy, checked: &m.filters.Style},
		{id: actionTogglePerformance, label: "Performance", enabled: !m.busy, checked: &m.filters.Performance},
		{id: actionRun, label: "Run cppcheck", enabled: !m.busy && m.project != "" && cppcheckOK},
		{id: actionHTML, label: "Generate HTML report", enabled: !m.busy && m.analysisDone && htmlOK},
		{id: actionPDF, label: "Generate PDF report", enabled: !m.busy && m.analysisDone},
	}
	if len(m.deps.Missing) > 0 {
		items = append(items, menuItem{
			id:      actionInstall,
			label:   "Install dependencies",
			enabled: !m.busy && m.deps.Installer != nil && m.deps.Installer.Armed(),
		})
	}
	items = append(items,
		menuItem{id: actionHelp, label: "Help", enabled: true},
		menuItem{id: actionQuit, label: "Quit", enabled: true},
	)
	return items
}

// handleKeyPress handles keyboard input
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.currentView == viewPicker {
		return m.handlePickerKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m.handleQuit()
	case "esc":
		if m.currentView == viewHelp {
			m.currentView = viewMain
		}
		return m, nil
	case "?":
		m.currentView = viewHelp
		return m, nil
	case "up", "k":
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
		return m, nil
	case "down", "j":
		if m.selectedIndex < len(m.menu())-1 {
			m.selectedIndex++
		}
		return m, nil
	case "enter", " ":
		items := m.menu()
		if m.selectedIndex >= len(items) {
			m.selectedIndex = len(items) - 1
		}
		return m.activate(items[m.selectedIndex].id)
	case "o":
		return m.activate(actionSelect)
	case "r":
		return m.activate(actionRun)
	case "g":
		return m.activate(actionHTML)
	case "d":
		return m.activate(actionPDF)
	case "i":
		return m.activate(actionInstall)
	case "1":
		return m.activate(actionToggleError)
	case "2":
		return m.activate(actionToggleWarning)
	case "3":
		return m.activate(actionToggleStyle)
	case "4":
		return m.activate(actionTogglePerformance)
	}
	return m, nil
}

// activate performs a menu action when it is currently enabled.
func (m *Model) activate(id actionID) (tea.Model, tea.Cmd) {
	enabled := false
	for _, item := range m.menu() {
		if item.id == id {
			enabled = item.enabled
			break
		}
	}
	if !enabled {
		return m, nil
	}

	switch id {
	case actionSelect:
		return m.openPicker()
	case actionToggleError:
		m.filters.Error = !m.filters.Error
	case actionToggleWarning:
		m.filters.Warning = !m.filters.Warning
	case actionToggleStyle:
		m.filters.Style = !m.filters.Style
	case actionTogglePerformance:
		m.filters.Performance = !m.filters.Performance
	case actionRun:
		return m.startAnalysis()
	case actionHTML:
		return m.startHTML()
	case actionPDF:
		return m.startPDF()
	case actionInstall:
		return m.startInstall()
	case actionHelp:
		m.currentView = viewHelp
	case actionQuit:
		return m.handleQuit()
	}
	return m, nil
}

func (m *Model) openPicker() (tea.Model, tea.Cmd) {
	start := m.project
	if start == "" {
		start = "."
	}
	m.picker = newDirPicker(start)
	m.currentView = viewPicker
	return m, nil
}

func (m *Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m.handleQuit()
	case "esc":
		// Cancel keeps the prior selection untouched.
		m.picker = nil
		m.currentView = viewMain
	case "up", "k":
		m.picker.moveUp()
	case "down", "j":
		m.picker.moveDown()
	case "enter":
		m.picker.descend()
	case "s":
		if abs, err := filepath.Abs(m.picker.cwd); err == nil {
			m.project = abs
		} else {
			m.project = m.picker.cwd
		}
		m.picker = nil
		m.currentView = viewMain
	}
	return m, nil
}

func (m *Model) handleQuit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func (m *Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true
	return m, nil
}

func (m *Model) handleTick() (tea.Model, tea.Cmd) {
	m.tick++
	m.spinnerFrame = (m.spinnerFrame + 1) % len(spinnerChars)
	return m, tick()
}

func (m *Model) appendLog(chunks ...string) {
	for _, chunk := range chunks {
		if chunk != "" {
			m.log = append(m.log, chunk)
		}
	}
}

// startAnalysis dispatches the analysis effect.
func (m *Model) startAnalysis() (tea.Model, tea.Cmd) {
	if m.project == "" {
		// Unreachable through the menu gating; kept as a visible
		// guard against a silent no-op.
		m.appendLog("No project directory selected\n")
		return m, nil
	}
	m.appendLog("Running cppcheck on " + m.project + "\n")
	m.busy = true
	m.busyLabel = "Running cppcheck"
	return m, runAnalysisCmd(m.deps.Analyzer, m.project, m.filters, m.cfg.Analysis.Timeout)
}

func (m *Model) handleAnalysisDone(msg analysisDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	m.busyLabel = ""
	if msg.err != nil {
		m.appendLog("Error running cppcheck: " + msg.err.Error() + "\n")
		return m, nil
	}
	// stdout chunk first, then stderr, never interleaved.
	m.appendLog(string(msg.res.Stdout), string(msg.res.Stderr))
	m.analysisDone = true
	return m, nil
}

func (m *Model) startHTML() (tea.Model, tea.Cmd) {
	m.busy = true
	m.busyLabel = "Generating HTML report"
	return m, generateHTMLCmd(m.deps, m.cfg, m.project)
}

func (m *Model) startPDF() (tea.Model, tea.Cmd) {
	m.busy = true
	m.busyLabel = "Generating PDF report"
	return m, generatePDFCmd(m.deps, m.cfg, m.project)
}

func (m *Model) handlePipelineDone(msg pipelineDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	m.busyLabel = ""
	m.appendLog(msg.chunks...)
	return m, nil
}

func (m *Model) startInstall() (tea.Model, tea.Cmd) {
	m.busy = true
	m.busyLabel = "Installing dependencies"
	m.appendLog("Installing missing utilities...\n")
	return m, installCmd(m.deps.Installer, m.deps.Missing)
}

func (m *Model) handleInstallDone(msg installDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	m.busyLabel = ""
	m.appendLog(msg.chunks...)
	return m, nil
}

// Run starts the workbench against the real toolchain.
func Run(cfg *config.Config) error {
	runner := toolchain.ExecRunner{}
	avail := toolchain.Probe(cfg.RequiredTools(), nil)
	browser, _ := toolchain.FindBrowser(cfg.Tools.Browsers, nil)

	deps := Deps{
		Analyzer:  cppcheck.NewAnalyzer(cfg.Tools.Cppcheck, runner),
		Runner:    runner,
		Opener:    toolchain.NewOpener(runner),
		Installer: toolchain.NewInstaller(cfg.Tools.InstallCommand, runner),
		Browser:   browser,
		Avail:     avail,
		Missing:   toolchain.Missing(cfg.RequiredTools(), avail),
	}

	model := NewModel(cfg, deps)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
