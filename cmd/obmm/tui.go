package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mgomes/obmmscript/obmm"
)

var (
	accentColor    = lipgloss.Color("#3B82F6")
	successColor   = lipgloss.Color("#10B981")
	mutedColor     = lipgloss.Color("#6B7280")
	highlightColor = lipgloss.Color("#F59E0B")

	promptStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(highlightColor).
			Bold(true)

	checkedStyle = lipgloss.NewStyle().
			Foreground(successColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	headerStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			Padding(0, 1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(highlightColor)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Enter  key.Binding
	Yes    key.Binding
	No     key.Binding
	Cancel key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓", "down"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "toggle"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	Yes: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "yes"),
	),
	No: key.NewBinding(
		key.WithKeys("n", "N"),
		key.WithHelp("n", "no"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	),
}

func renderHelp(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, helpKeyStyle.Render(h.Key)+" "+helpDescStyle.Render(h.Desc))
	}
	return strings.Join(parts, mutedStyle.Render(" • "))
}

// selectModel is a Select or SelectMany list.
type selectModel struct {
	req       obmm.SelectRequest
	cursor    int
	chosen    map[int]bool
	done      bool
	cancelled bool
}

func newSelectModel(req obmm.SelectRequest) selectModel {
	return selectModel{req: req, chosen: make(map[int]bool)}
}

func (m selectModel) Init() tea.Cmd { return nil }

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, keys.Cancel):
		m.cancelled = true
		return m, tea.Quit
	case key.Matches(keyMsg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if m.cursor < len(m.req.Items)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, keys.Toggle):
		if m.req.Multi {
			m.chosen[m.cursor] = !m.chosen[m.cursor]
		}
	case key.Matches(keyMsg, keys.Enter):
		if !m.req.Multi && len(m.req.Items) > 0 {
			m.chosen = map[int]bool{m.cursor: true}
		}
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

// selection lists the chosen indexes in ascending order; empty cancels.
func (m selectModel) selection() []int {
	if m.cancelled {
		return nil
	}
	var picked []int
	for i, on := range m.chosen {
		if on {
			picked = append(picked, i)
		}
	}
	sort.Ints(picked)
	return picked
}

func (m selectModel) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(m.req.Title))
	b.WriteString("\n")
	for i, item := range m.req.Items {
		pointer := "  "
		if i == m.cursor {
			pointer = cursorStyle.Render("> ")
		}
		mark := ""
		if m.req.Multi {
			mark = "[ ] "
			if m.chosen[i] {
				mark = checkedStyle.Render("[x] ")
			}
		}
		b.WriteString(pointer + mark + item + "\n")
	}
	if i := m.cursor; i < len(m.req.Descriptions) && m.req.Descriptions[i] != "" {
		b.WriteString(borderStyle.Render(m.req.Descriptions[i]))
		b.WriteString("\n")
	}
	if i := m.cursor; i < len(m.req.Previews) && m.req.Previews[i] != "" {
		b.WriteString(mutedStyle.Render("preview: " + m.req.Previews[i]))
		b.WriteString("\n")
	}
	help := []key.Binding{keys.Up, keys.Down}
	if m.req.Multi {
		help = append(help, keys.Toggle)
	}
	b.WriteString(renderHelp(append(help, keys.Enter, keys.Cancel)...))
	b.WriteString("\n")
	return b.String()
}

type yesNoModel struct {
	title   string
	message string
	result  obmm.DialogResult
}

func newYesNoModel(message, title string) yesNoModel {
	return yesNoModel{title: title, message: message, result: obmm.DialogCancel}
}

func (m yesNoModel) Init() tea.Cmd { return nil }

func (m yesNoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, keys.Yes):
		m.result = obmm.DialogYes
	case key.Matches(keyMsg, keys.No):
		m.result = obmm.DialogNo
	case key.Matches(keyMsg, keys.Cancel):
		m.result = obmm.DialogCancel
	default:
		return m, nil
	}
	return m, tea.Quit
}

func (m yesNoModel) View() string {
	return headerStyle.Render(m.title) + "\n" +
		borderStyle.Render(m.message) + "\n" +
		renderHelp(keys.Yes, keys.No, keys.Cancel) + "\n"
}

type inputModel struct {
	title     string
	initial   string
	textInput textinput.Model
	done      bool
}

func newInputModel(title, initial string) inputModel {
	ti := textinput.New()
	ti.SetValue(initial)
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60
	ti.PromptStyle = promptStyle
	ti.Prompt = "> "
	return inputModel{title: title, initial: initial, textInput: ti}
}

func (m inputModel) Init() tea.Cmd { return textinput.Blink }

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.Enter):
			m.done = true
			return m, tea.Quit
		case key.Matches(keyMsg, keys.Cancel):
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// value is the entered text, or the initial text when the prompt was
// dismissed.
func (m inputModel) value() string {
	if !m.done {
		return m.initial
	}
	return m.textInput.Value()
}

func (m inputModel) View() string {
	return headerStyle.Render(m.title) + "\n" +
		m.textInput.View() + "\n" +
		renderHelp(keys.Enter, keys.Cancel) + "\n"
}

// textModel shows a message, a text file or an image path until dismissed.
type textModel struct {
	title string
	body  string
}

func (m textModel) Init() tea.Cmd { return nil }

func (m textModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(keyMsg, keys.Enter) || key.Matches(keyMsg, keys.Cancel) {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m textModel) View() string {
	return headerStyle.Render(m.title) + "\n" +
		borderStyle.Render(m.body) + "\n" +
		renderHelp(keys.Enter) + "\n"
}

// terminalHost answers dialogs in the terminal and everything else from the
// wrapped profile host.
type terminalHost struct {
	*profileHost
	run func(tea.Model) (tea.Model, error)
}

func newTerminalHost(base *profileHost) *terminalHost {
	return &terminalHost{profileHost: base, run: runProgram}
}

// runProgram draws on stderr so the plan on stdout stays clean.
func runProgram(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m, tea.WithOutput(os.Stderr)).Run()
}

func (h *terminalHost) Message(message, title string) error {
	_, err := h.run(textModel{title: title, body: message})
	return err
}

func (h *terminalHost) DisplayText(text, title string) error {
	_, err := h.run(textModel{title: title, body: text})
	return err
}

func (h *terminalHost) DisplayImage(path, title string) error {
	_, err := h.run(textModel{title: title, body: "image: " + path})
	return err
}

func (h *terminalHost) Select(req obmm.SelectRequest) ([]int, error) {
	final, err := h.run(newSelectModel(req))
	if err != nil {
		return nil, err
	}
	m, ok := final.(selectModel)
	if !ok {
		return nil, fmt.Errorf("select: unexpected model %T", final)
	}
	return m.selection(), nil
}

func (h *terminalHost) DialogYesNo(message, title string) (obmm.DialogResult, error) {
	final, err := h.run(newYesNoModel(message, title))
	if err != nil {
		return obmm.DialogCancel, err
	}
	m, ok := final.(yesNoModel)
	if !ok {
		return obmm.DialogCancel, fmt.Errorf("yes/no: unexpected model %T", final)
	}
	return m.result, nil
}

func (h *terminalHost) InputString(title, initial string) (string, error) {
	final, err := h.run(newInputModel(title, initial))
	if err != nil {
		return "", err
	}
	m, ok := final.(inputModel)
	if !ok {
		return "", fmt.Errorf("input: unexpected model %T", final)
	}
	return m.value(), nil
}
