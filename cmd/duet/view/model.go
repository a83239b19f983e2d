package viewcmder

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mitchellh/go-wordwrap"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	activeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	inactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	bodyStyle    = lipgloss.NewStyle().Padding(1, 2)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type keyMap struct {
	Up, Down, Quit key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "previous section"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "next section"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c", "esc"),
		key.WithHelp("q", "quit"),
	),
}

// model is the root bubbletea model for `duet view`. It paginates through
// buildSections' pages, one per metric module that reported a result.
type model struct {
	sections []section
	cursor   int
	width    int
	height   int
}

func newModel(sections []section) model {
	return model{sections: sections}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.sections)-1 {
				m.cursor++
			}
			return m, nil
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		}
	}
	return m, nil
}

func (m model) View() string {
	if len(m.sections) == 0 {
		return "no sections to display\n"
	}

	var tabs strings.Builder
	for i, s := range m.sections {
		if i == m.cursor {
			tabs.WriteString(activeStyle.Render(fmt.Sprintf("[%s]", s.Title)))
		} else {
			tabs.WriteString(inactiveStyle.Render(fmt.Sprintf(" %s ", s.Title)))
		}
		tabs.WriteString(" ")
	}

	wrapWidth := uint(76)
	if m.width > 16 && m.width-6 < 200 {
		wrapWidth = uint(m.width - 6)
	}

	current := m.sections[m.cursor]
	body := bodyStyle.Render(wordwrap.WrapString(current.Body, wrapWidth))

	help := helpStyle.Render("↑/k up  ↓/j down  q quit")

	return titleStyle.Render("duet") + "\n" + tabs.String() + "\n\n" + body + "\n" + help + "\n"
}
