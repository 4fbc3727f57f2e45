package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/TheIndifferent/disk-usage/internal/sizetree"
	"github.com/TheIndifferent/disk-usage/internal/view"
)

const (
	barWidth        = 24
	sizeWidth       = 28
	minNameWidth    = 12
	defaultWidth    = 100
	defaultViewport = 20
	chromeLines     = 5 // title, path, blank, status, help
	tickInterval    = 120 * time.Millisecond
)

//nolint:gochecknoglobals // Spinner animation
var spinnerFrames = []string{"|", "/", "-", "\\"}

// Navigator is the part of the navigation state the view drives.
type Navigator interface {
	ScanRootFrom(path string) ([]view.SizeItem, error)
	StepInto(index int) ([]view.SizeItem, bool, error)
	StepOut() (int, []view.SizeItem, bool)
	CurrentPath() string
}

type scanResultMsg struct {
	items []view.SizeItem
	err   error
}

type tickMsg time.Time

// Model is the bubbletea model of the interactive view.
type Model struct {
	nav      Navigator
	progress sizetree.ProgressSource
	root     string

	items    []view.SizeItem
	cursor   int
	offset   int
	width    int
	height   int
	dir      string
	scanning bool
	spinner  int
	status   string
	err      error
}

// New creates the model for browsing root. progress may be nil.
func New(nav Navigator, progress sizetree.ProgressSource, root string) Model {
	return Model{
		nav:      nav,
		progress: progress,
		root:     root,
		dir:      root,
		scanning: true,
		status:   "Preparing scan...",
	}
}

// Run starts the program, rendering to out, and returns the final model.
func Run(m Model, out io.Writer) (Model, error) {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(out))

	final, err := p.Run()
	if err != nil {
		return m, fmt.Errorf("running interactive view: %w", err)
	}

	result, ok := final.(Model)
	if !ok {
		return m, fmt.Errorf("unexpected model type %T", final)
	}

	return result, result.err
}

// Dir returns the directory currently open.
func (m Model) Dir() string { return m.dir }

// Err returns the error that stopped the view, if any.
func (m Model) Err() error { return m.err }

// Items returns the rows currently shown.
func (m Model) Items() []view.SizeItem { return m.items }

// Cursor returns the index of the selected row.
func (m Model) Cursor() int { return m.cursor }

// Init starts the first scan.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.scanCmd(), tickCmd())
}

func (m Model) scanCmd() tea.Cmd {
	nav, root := m.nav, m.root

	return func() tea.Msg {
		items, err := nav.ScanRootFrom(root)

		return scanResultMsg{items: items, err: err}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clamp()

		return m, nil
	case scanResultMsg:
		m.scanning = false
		if msg.err != nil {
			m.err = msg.err

			return m, tea.Quit
		}

		m.setItems(msg.items, 0)
		m.dir = m.nav.CurrentPath()
		m.status = m.scannedStatus()

		return m, nil
	case tickMsg:
		if m.scanning {
			m.spinner = (m.spinner + 1) % len(spinnerFrames)

			return m, tickCmd()
		}

		return m, nil
	default:
		return m, nil
	}
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "pgup":
		m.move(-m.viewport())
	case "pgdown":
		m.move(m.viewport())
	case "home", "g":
		m.move(-len(m.items))
	case "end", "G":
		m.move(len(m.items))
	case "enter", "right", "l":
		return m.stepInto()
	case "left", "h", "backspace":
		m.stepOut()
	case "r":
		if m.scanning {
			return m, nil
		}

		m.scanning = true
		m.status = "Rescanning..."

		return m, tea.Batch(m.scanCmd(), tickCmd())
	}

	return m, nil
}

func (m Model) stepInto() (tea.Model, tea.Cmd) {
	if len(m.items) == 0 {
		return m, nil
	}

	items, changed, err := m.nav.StepInto(m.cursor)
	if err != nil {
		m.err = err

		return m, tea.Quit
	}

	if !changed {
		return m, nil
	}

	m.setItems(items, 0)
	m.dir = m.nav.CurrentPath()

	return m, nil
}

func (m *Model) stepOut() {
	index, items, ok := m.nav.StepOut()
	if !ok {
		return
	}

	m.setItems(items, index)
	m.dir = m.nav.CurrentPath()
	m.center()
}

func (m *Model) setItems(items []view.SizeItem, cursor int) {
	m.items = items
	m.cursor = cursor
	m.offset = 0
	m.clamp()
}

func (m *Model) move(delta int) {
	m.cursor += delta
	m.clamp()
}

// clamp keeps the cursor on a row and inside the visible window.
func (m *Model) clamp() {
	m.cursor = max(0, min(m.cursor, len(m.items)-1))

	visible := m.viewport()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}

	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}

	m.offset = max(0, min(m.offset, len(m.items)-visible))
}

// center scrolls so the cursor sits in the middle of the window.
func (m *Model) center() {
	m.offset = m.cursor - m.viewport()/2
	m.clamp()
}

func (m Model) viewport() int {
	if m.height <= chromeLines {
		return defaultViewport
	}

	return m.height - chromeLines
}

func (m Model) scannedStatus() string {
	if m.progress == nil {
		return "Ready"
	}

	p := m.progress.Progress()

	return fmt.Sprintf("Scanned %s files in %s directories, %s",
		humanize.Comma(p.Files), humanize.Comma(p.Dirs), view.ReadableSize(p.Bytes))
}

// View renders the model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("disk-usage") + "  " + pathStyle.Render(m.dir) + "\n\n")

	if m.scanning && len(m.items) == 0 {
		b.WriteString(m.scanningLine() + "\n")

		return b.String()
	}

	if len(m.items) == 0 {
		b.WriteString(statusStyle.Render("  (empty)") + "\n")
	}

	end := min(len(m.items), m.offset+m.viewport())
	for i := m.offset; i < end; i++ {
		b.WriteString(m.row(i) + "\n")
	}

	b.WriteString("\n")

	if m.scanning {
		b.WriteString(m.scanningLine() + "\n")
	} else {
		b.WriteString(statusStyle.Render(m.status) + "\n")
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()) + "\n")
	}

	b.WriteString(helpStyle.Render("↑/↓ move • enter open • ← back • r rescan • q quit"))

	return b.String()
}

func (m Model) scanningLine() string {
	line := spinnerFrames[m.spinner] + " " + m.status
	if m.progress != nil {
		p := m.progress.Progress()
		line += fmt.Sprintf(" %s files, %s", humanize.Comma(p.Files), view.ReadableSize(p.Bytes))
	}

	return statusStyle.Render(line)
}

func (m Model) row(i int) string {
	item := m.items[i]

	width := m.width
	if width <= 0 {
		width = defaultWidth
	}

	nameWidth := max(minNameWidth, width-barWidth-sizeWidth-4)

	name := item.Name
	style := fileStyle

	if !item.IsFile {
		name += "/"
		style = dirStyle
	}

	name = style.Width(nameWidth).MaxWidth(nameWidth).Render(name)
	size := sizeStyle.Width(sizeWidth).Align(lipgloss.Right).Render(item.SizeString)
	line := name + " " + size + " " + sizeBar(item.RelativeRealSize, item.RelativeDiskSize)

	if i == m.cursor {
		return cursorStyle.Render(line)
	}

	return line
}

// sizeBar draws the logical size solid and the extra on-disk size shaded.
func sizeBar(logical, onDisk float32) string {
	realCells := cells(logical)
	diskCells := max(cells(onDisk), realCells)

	return realBarStyle.Render(strings.Repeat("█", realCells)) +
		diskBarStyle.Render(strings.Repeat("▒", diskCells-realCells)) +
		emptyBarStyle.Render(strings.Repeat("░", barWidth-diskCells))
}

func cells(relative float32) int {
	return max(0, min(int(relative*barWidth+0.5), barWidth))
}
