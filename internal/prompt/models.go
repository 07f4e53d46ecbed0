package prompt

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gitid-dev/gitid/internal/style"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	cursorStyle = style.Profile
	answerStyle = style.Info
	helpStyle   = style.Dim
)

func question(title string) string {
	return style.Success.Render("?") + " " + titleStyle.Render(title)
}

func isCancel(k tea.KeyMsg) bool {
	return k.Type == tea.KeyCtrlC || k.Type == tea.KeyEsc
}

// selectModel picks one option with the arrow keys.
type selectModel struct {
	title     string
	options   []string
	cursor    int
	done      bool
	cancelled bool
}

func newSelectModel(title string, options []string) selectModel {
	return selectModel{title: title, options: options}
}

func (m selectModel) Init() tea.Cmd { return nil }

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case isCancel(k):
		m.cancelled = true
		return m, tea.Quit
	case k.Type == tea.KeyEnter:
		m.done = true
		return m, tea.Quit
	case k.Type == tea.KeyUp || k.String() == "k":
		if m.cursor > 0 {
			m.cursor--
		} else {
			m.cursor = len(m.options) - 1
		}
	case k.Type == tea.KeyDown || k.String() == "j":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		} else {
			m.cursor = 0
		}
	}
	return m, nil
}

func (m selectModel) View() string {
	if m.done {
		return question(m.title) + " " + answerStyle.Render(m.options[m.cursor]) + "\n"
	}
	if m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(question(m.title) + "\n")
	for i, opt := range m.options {
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> " + opt))
		} else {
			b.WriteString("  " + opt)
		}
		b.WriteByte('\n')
	}
	b.WriteString(helpStyle.Render("↑/↓ to move, enter to select, esc to cancel") + "\n")
	return b.String()
}

// textModel reads one line with an optional default.
type textModel struct {
	title     string
	def       string
	validate  func(string) error
	input     textinput.Model
	errMsg    string
	answer    string
	done      bool
	cancelled bool
}

func newTextModel(title, def string, validate func(string) error) textModel {
	in := textinput.New()
	in.Placeholder = def
	in.Prompt = "> "
	in.Focus()
	return textModel{title: title, def: def, validate: validate, input: in}
}

func (m textModel) Init() tea.Cmd { return textinput.Blink }

func (m textModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case isCancel(k):
			m.cancelled = true
			return m, tea.Quit
		case k.Type == tea.KeyEnter:
			val := strings.TrimSpace(m.input.Value())
			if val == "" {
				val = m.def
			}
			if m.validate != nil {
				if err := m.validate(val); err != nil {
					m.errMsg = err.Error()
					return m, nil
				}
			}
			m.answer = val
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.errMsg = ""
	return m, cmd
}

func (m textModel) View() string {
	if m.done {
		return question(m.title) + " " + answerStyle.Render(m.answer) + "\n"
	}
	if m.cancelled {
		return ""
	}

	s := question(m.title) + "\n" + m.input.View() + "\n"
	if m.errMsg != "" {
		s += style.ErrorPrefix + " " + m.errMsg + "\n"
	}
	return s
}

// confirmModel answers a yes/no question.
type confirmModel struct {
	title     string
	def       bool
	answer    bool
	done      bool
	cancelled bool
}

func newConfirmModel(title string, def bool) confirmModel {
	return confirmModel{title: title, def: def}
}

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case isCancel(k):
		m.cancelled = true
		return m, tea.Quit
	case k.Type == tea.KeyEnter:
		m.answer = m.def
	case strings.EqualFold(k.String(), "y"):
		m.answer = true
	case strings.EqualFold(k.String(), "n"):
		m.answer = false
	default:
		return m, nil
	}
	m.done = true
	return m, tea.Quit
}

func (m confirmModel) View() string {
	if m.done {
		ans := "No"
		if m.answer {
			ans = "Yes"
		}
		return question(m.title) + " " + answerStyle.Render(ans) + "\n"
	}
	if m.cancelled {
		return ""
	}
	hint := "(y/N)"
	if m.def {
		hint = "(Y/n)"
	}
	return fmt.Sprintf("%s %s ", question(m.title), helpStyle.Render(hint))
}
