package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/wasm-embedded/process"
	"github.com/wippyai/wasm-embedded/wasm"
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

type stepperState int

const (
	stateSelectFunc stepperState = iota
	stateStepping
	stateFinished
)

type interactiveModel struct {
	module      *wasm.Module
	filename    string
	exports     []string
	selected    int
	state       stepperState
	proc        *process.Process
	host        *demoHost
	lastInstr   string
	stepCount   int
	trace       []string
	err         error
	finalResult []process.Dynamic
}

func newInteractiveModel(filename string, module *wasm.Module) *interactiveModel {
	m := &interactiveModel{filename: filename, module: module, host: newDemoHost()}
	for _, e := range module.Exports {
		if e.Kind == wasm.KindFunc {
			m.exports = append(m.exports, e.Name)
		}
	}
	return m
}

func (m *interactiveModel) Init() tea.Cmd { return nil }

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.state == stateSelectFunc && m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.state == stateSelectFunc && m.selected < len(m.exports)-1 {
			m.selected++
		}
	case "enter":
		if m.state == stateSelectFunc && len(m.exports) > 0 {
			m.spawn(m.exports[m.selected])
		}
	case " ":
		if m.state == stateStepping {
			m.step()
		}
	case "esc":
		if m.state != stateSelectFunc {
			m.state = stateSelectFunc
			m.proc = nil
			m.trace = nil
			m.stepCount = 0
			m.err = nil
		}
	}
	return m, nil
}

func (m *interactiveModel) spawn(name string) {
	proc, execErr := process.New(m.module, name)
	if execErr != nil {
		m.err = execErr
		return
	}
	m.proc = proc
	m.state = stateStepping
	m.trace = nil
	m.stepCount = 0
	m.err = nil
}

func (m *interactiveModel) step() {
	instr, ierr := m.proc.CurrentInstruction()
	if ierr == nil {
		m.lastInstr = fmt.Sprintf("opcode 0x%02X", instr.Opcode)
	}

	action, execErr := m.proc.Step()
	m.stepCount++
	if execErr != nil {
		m.err = execErr
		m.state = stateFinished
		return
	}

	switch action.Kind {
	case process.ActionFinished:
		m.finalResult = action.Returns
		m.state = stateFinished
	case process.ActionCallExtern:
		results, err := m.host.Handle(m.proc, action.Name, action.Args)
		if err != nil {
			m.err = err
			m.state = stateFinished
			return
		}
		for _, v := range results {
			m.proc.Push(v)
		}
		m.trace = append(m.trace, fmt.Sprintf("call %s(%v)", action.Name, action.Args))
	default:
		m.trace = append(m.trace, m.lastInstr)
	}
	if len(m.trace) > 12 {
		m.trace = m.trace[len(m.trace)-12:]
	}
}

func (m *interactiveModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Wasm Stepper"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("esc back • q quit"))
		return b.String()
	}

	switch m.state {
	case stateSelectFunc:
		b.WriteString("Select an exported function to step through:\n\n")
		for i, name := range m.exports {
			cursor := "  "
			line := funcStyle.Render(name)
			if i == m.selected {
				cursor = "> "
				line = selectedStyle.Render(cursor + name)
			} else {
				line = cursor + line
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter spawn • q quit"))

	case stateStepping:
		b.WriteString(fmt.Sprintf("Steps taken: %d\n\n", m.stepCount))
		for _, line := range m.trace {
			b.WriteString(typeStyle.Render(line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("space step • esc back • q quit"))

	case stateFinished:
		b.WriteString(resultStyle.Render(fmt.Sprintf("Finished after %d steps.\n", m.stepCount)))
		b.WriteString(fmt.Sprintf("Returned: %v\n", m.finalResult))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("esc back • q quit"))
	}

	return b.String()
}

func runInteractive(filename string, module *wasm.Module) error {
	p := tea.NewProgram(newInteractiveModel(filename, module), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
