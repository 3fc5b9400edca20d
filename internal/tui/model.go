package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tartampluch/go-datefield/internal/config"
	"github.com/tartampluch/go-datefield/internal/engine"
)

// Model is the bubbletea model of the terminal date editor.
type Model struct {
	input   textinput.Model
	session *engine.Session

	active    engine.Field
	hasActive bool

	status   string
	failed   bool
	quitting bool

	// OnCommitted is called after every commit or step with the new value.
	OnCommitted func(d engine.Date)
}

// NewModel returns an editor reading input with parser.
func NewModel(parser *engine.Parser) Model {
	in := textinput.New()
	in.Prompt = config.TUIPrompt
	in.Placeholder = config.FallbackIdle
	in.Width = config.TUIInputWidth
	in.Focus()

	return Model{
		input:   in,
		session: engine.NewSession(parser),
	}
}

// Date returns the committed value and whether the text still matches it.
func (m Model) Date() (engine.Date, bool) {
	return m.session.Date()
}

// Value returns the text currently in the input line.
func (m Model) Value() string {
	return m.input.Value()
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEnter:
		m.commit()
		return m, nil
	case tea.KeyUp:
		m.step(engine.Up, false)
		return m, nil
	case tea.KeyDown:
		m.step(engine.Down, false)
		return m, nil
	case tea.KeyCtrlUp:
		m.step(engine.Up, true)
		return m, nil
	case tea.KeyCtrlDown:
		m.step(engine.Down, true)
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.session.Edit()
		m.hasActive = false
	}
	return m, cmd
}

// commit parses the input line unless it still shows the committed value.
func (m *Model) commit() {
	if d, parsed := m.session.Date(); parsed && m.input.Value() == d.String() {
		return
	}

	text := m.input.Value()
	d, err := m.session.Commit(text)
	if err != nil {
		slog.Info(config.MsgDateRejected,
			config.LogKeyComponent, config.CompTUI,
			config.LogKeyInput, text,
			config.LogKeyError, err)
		m.status, m.failed = config.FallbackRejected, true
		return
	}

	m.input.SetValue(d.String())
	m.hasActive = false
	m.status, m.failed = fmt.Sprintf(config.TUIStatusCommitted, d.String()), false
	if m.OnCommitted != nil {
		m.OnCommitted(d)
	}
}

func (m *Model) step(dir engine.Direction, cascade bool) {
	f, ok := m.session.Step(m.input.Position(), dir, cascade)
	if !ok {
		return
	}

	d, _ := m.session.Date()
	m.input.SetValue(d.String())
	start, _ := engine.FieldSpan(d, f)
	m.input.SetCursor(start)
	m.active, m.hasActive = f, true
	m.status, m.failed = fmt.Sprintf(config.TUIStatusStepped, f), false

	slog.Debug(config.MsgDateStepped,
		config.LogKeyComponent, config.CompTUI,
		config.LogKeyField, f.String(),
		config.LogKeyDir, dir.String(),
		config.LogKeyCascade, cascade)
	if m.OnCommitted != nil {
		m.OnCommitted(d)
	}
}

// ruler marks the span of the last stepped field under the input line.
func (m Model) ruler() string {
	d, parsed := m.session.Date()
	if !parsed || !m.hasActive {
		return ""
	}
	start, end := engine.FieldSpan(d, m.active)
	pad := strings.Repeat(" ", len([]rune(config.TUIPrompt))+start)
	return pad + rulerStyle.Render(strings.Repeat(config.TUIRulerMark, end-start))
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(config.TUITitle))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.ruler())
	b.WriteString("\n")
	if m.failed {
		b.WriteString(errorStyle.Render(m.status))
	} else {
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(config.TUIHelp))
	b.WriteString("\n")
	return b.String()
}
