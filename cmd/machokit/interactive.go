package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/wippyai/machokit/macho"
	"github.com/wippyai/machokit/typeinfo"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	cmdStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// isTerminal reports whether stdout is a terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

type browserModel struct {
	err      error
	filename string
	header   string
	items    []browserItem
	viewport viewport.Model
	selected int
	width    int
	height   int
	loaded   bool
}

type browserItem struct {
	title  string
	detail string
}

type loadedMsg struct {
	err    error
	header string
	items  []browserItem
}

func newBrowserModel(filename string) *browserModel {
	return &browserModel{
		filename: filename,
		viewport: viewport.New(80, 10),
	}
}

func (m *browserModel) Init() tea.Cmd {
	return m.load
}

func (m *browserModel) load() tea.Msg {
	f, err := openImage(m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}
	defer f.Close()

	items, err := browserItems(f.Image)
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{header: typeinfo.String(f.Header), items: items}
}

// browserItems builds one entry per load command. A segment's detail lists
// its sections.
func browserItems(img *macho.Image) ([]browserItem, error) {
	items := make([]browserItem, 0, len(img.Commands))
	for _, cmd := range img.Commands {
		lc := cmd.Command()
		var b strings.Builder
		b.WriteString(typeinfo.String(cmd))
		b.WriteString("\n\n")
		fmt.Fprintf(&b, "type     %s\n", typeChain(cmd.Descriptor()))
		fmt.Fprintf(&b, "range    %s\n", lc.Range())
		fmt.Fprintf(&b, "summary  %s\n", commandSummary(cmd))

		if seg, ok := cmd.(*macho.Segment); ok {
			secs, err := seg.Sections()
			if err != nil {
				return nil, fmt.Errorf("sections of %s: %w", seg.Name, err)
			}
			if len(secs) > 0 {
				b.WriteString("\nsections\n")
			}
			for _, s := range secs {
				fmt.Fprintf(&b, "  %s\n", typeinfo.String(s))
			}
		}

		items = append(items, browserItem{
			title:  fmt.Sprintf("%3d  %s", lc.Index, lc.Cmd),
			detail: b.String(),
		})
	}
	return items, nil
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.selected > 0 {
				m.selected--
				m.refresh()
			}
			return m, nil

		case "down", "j":
			if m.selected < len(m.items)-1 {
				m.selected++
				m.refresh()
			}
			return m, nil

		case "home", "g":
			m.selected = 0
			m.refresh()
			return m, nil

		case "end", "G":
			if len(m.items) > 0 {
				m.selected = len(m.items) - 1
				m.refresh()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case loadedMsg:
		m.loaded = true
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.header = msg.header
		m.items = msg.items
		m.selected = 0
		m.resize()
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// resize gives the detail pane whatever the title and list leave free.
func (m *browserModel) resize() {
	if m.width == 0 {
		return
	}
	h := m.height - len(m.items) - 6
	if h < 3 {
		h = 3
	}
	m.viewport.Width = m.width
	m.viewport.Height = h
}

func (m *browserModel) refresh() {
	if m.selected >= len(m.items) {
		return
	}
	m.viewport.SetContent(detailStyle.Render(m.items[m.selected].detail))
	m.viewport.GotoTop()
}

func (m *browserModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if !m.loaded {
		return "Loading image..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Mach-O Browser"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n")
	b.WriteString(m.header)
	b.WriteString("\n\n")

	for i, item := range m.items {
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + item.title))
		} else {
			b.WriteString("  " + cmdStyle.Render(item.title))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ select • pgup/pgdn scroll • q quit"))

	return b.String()
}

func runInteractive(filename string) error {
	if !isTerminal() {
		return fmt.Errorf("interactive mode needs a terminal on stdout")
	}
	p := tea.NewProgram(newBrowserModel(filename), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
