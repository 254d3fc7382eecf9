package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nanojs/bind"
	"github.com/nanojs/bind/engine"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type interactiveModel struct {
	err      error
	ctx      *engine.Context
	registry *bind.Registry
	result   string
	funcs    []funcInfo
	inputs   []textinput.Model
	selected int
	focusIdx int
	state    modelState
}

type modelState int

const (
	stateSelectFunc modelState = iota
	stateInputArgs
	stateShowResult
)

type loadedMsg struct {
	err      error
	ctx      *engine.Context
	registry *bind.Registry
	funcs    []funcInfo
}

type callResultMsg struct {
	err    error
	result string
}

func newInteractiveModel() *interactiveModel {
	return &interactiveModel{state: stateSelectFunc}
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.load
}

func (m *interactiveModel) load() tea.Msg {
	registry, funcs, err := buildRegistry()
	if err != nil {
		return loadedMsg{err: err}
	}
	ctx := engine.NewContext()
	if err := registry.Attach(ctx); err != nil {
		ctx.Close()
		return loadedMsg{err: err}
	}
	return loadedMsg{ctx: ctx, registry: registry, funcs: funcs}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.ctx != nil {
				m.ctx.Close()
			}
			return m, tea.Quit

		case "up", "k":
			if m.state == stateSelectFunc && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectFunc && m.selected < len(m.funcs)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectFunc:
				m.prepareInputs()
				if len(m.inputs) == 0 {
					return m, m.callFunction
				}
				m.state = stateInputArgs

			case stateInputArgs:
				return m, m.callFunction

			case stateShowResult:
				m.state = stateSelectFunc
				m.result = ""
				m.err = nil
			}

		case "tab":
			if m.state == stateInputArgs && len(m.inputs) > 1 {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}

		case "esc":
			switch m.state {
			case stateInputArgs:
				m.state = stateSelectFunc
				m.inputs = nil
			case stateShowResult:
				m.state = stateSelectFunc
				m.result = ""
				m.err = nil
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.ctx = msg.ctx
		m.registry = msg.registry
		m.funcs = msg.funcs

	case callResultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputArgs {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *interactiveModel) prepareInputs() {
	f := m.funcs[m.selected]
	m.inputs = make([]textinput.Model, len(f.params))
	for i, p := range f.params {
		ti := textinput.New()
		ti.Placeholder = p.typeStr
		ti.Prompt = p.name + ": "
		ti.Width = 40
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = 0
}

func (m *interactiveModel) callFunction() tea.Msg {
	f := m.funcs[m.selected]

	native, ok := m.registry.Lookup(f.namespace, f.name)
	if !ok {
		return callResultMsg{err: fmt.Errorf("function %s.%s not registered", f.namespace, f.name)}
	}

	raw := make([]string, len(m.inputs))
	for i, input := range m.inputs {
		raw[i] = input.Value()
	}
	args, err := convertArgs(m.ctx, raw, f.params)
	if err != nil {
		return callResultMsg{err: err}
	}

	fn := m.ctx.NewFunction(f.name, native)
	defer fn.Free()

	out, err := m.ctx.Invoke(fn, m.ctx.Undefined(), args...)
	if err != nil {
		return callResultMsg{err: err}
	}
	defer out.Free()

	return callResultMsg{result: renderValue(out)}
}

// convertArgs maps raw user input onto a signature: one input per position,
// with a variadic or optional tail allowed to expand or stay empty.
func convertArgs(ctx *engine.Context, raw []string, infos []paramInfo) ([]engine.Value, error) {
	var args []engine.Value
	for i, p := range infos {
		var value string
		if i < len(raw) {
			value = strings.TrimSpace(raw[i])
		}

		if strings.HasSuffix(p.typeStr, "...") {
			base := strings.TrimSuffix(p.typeStr, "...")
			if value == "" {
				continue
			}
			for _, part := range strings.Split(value, ",") {
				args = append(args, convertArg(ctx, strings.TrimSpace(part), base))
			}
			continue
		}

		if strings.HasSuffix(p.typeStr, "?") && value == "" {
			continue
		}
		if value == "" {
			return nil, fmt.Errorf("missing value for %s", p.name)
		}
		args = append(args, convertArg(ctx, value, strings.TrimSuffix(p.typeStr, "?")))
	}
	return args, nil
}

func convertArg(ctx *engine.Context, value, typeStr string) engine.Value {
	switch typeStr {
	case "int":
		v, _ := strconv.ParseInt(value, 10, 64)
		return ctx.Int64(v)
	case "float":
		v, _ := strconv.ParseFloat(value, 64)
		return ctx.Float64(v)
	case "bool":
		return ctx.Bool(value == "true" || value == "1")
	default:
		return ctx.String(value)
	}
}

func renderValue(v engine.Value) string {
	switch {
	case v.IsUndefined():
		return "undefined"
	case v.IsNull():
		return "null"
	case v.IsBool():
		return strconv.FormatBool(v.Bool())
	case v.IsNumber():
		f, _ := v.Float64()
		return strconv.FormatFloat(f, 'g', -1, 64)
	case v.IsString():
		s, _ := v.Str()
		return s
	case v.IsFunction():
		return "[function]"
	default:
		if obj, ok := v.Object(); ok && obj.IsArray() {
			var parts []string
			for i := 0; i < v.ArrayLen(); i++ {
				elem, _ := v.ArrayGet(i)
				parts = append(parts, renderValue(elem))
				elem.Free()
			}
			return "[" + strings.Join(parts, ", ") + "]"
		}
		return "[object]"
	}
}

func (m *interactiveModel) View() string {
	if m.err != nil && m.state != stateShowResult {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if len(m.funcs) == 0 {
		return "Loading registry..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("bindspect"))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectFunc:
		b.WriteString("Select a function to call:\n\n")
		for i, f := range m.funcs {
			cursor := "  "
			if i == m.selected {
				cursor = "> "
				b.WriteString(selectedStyle.Render(cursor + m.formatFunc(f)))
			} else {
				b.WriteString(cursor + m.formatFunc(f))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter call • q quit"))

	case stateInputArgs:
		f := m.funcs[m.selected]
		b.WriteString(fmt.Sprintf("Calling %s\n\n", funcStyle.Render(f.namespace+"."+f.name)))
		for i, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString(" ")
			b.WriteString(typeStyle.Render(f.params[i].typeStr))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter call • esc back"))

	case stateShowResult:
		f := m.funcs[m.selected]
		b.WriteString(fmt.Sprintf("Result of %s:\n\n", funcStyle.Render(f.namespace+"."+f.name)))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func (m *interactiveModel) formatFunc(f funcInfo) string {
	var parts []string
	for _, p := range f.params {
		parts = append(parts, p.name+": "+typeStyle.Render(p.typeStr))
	}
	result := ""
	if f.resultType != "" {
		result = " -> " + typeStyle.Render(f.resultType)
	}
	return funcStyle.Render(f.namespace+"."+f.name) + "(" + strings.Join(parts, ", ") + ")" + result
}

func runInteractive() error {
	p := tea.NewProgram(newInteractiveModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
