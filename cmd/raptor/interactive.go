package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/wippyai/wasiraptor/bridge"
	"github.com/wippyai/wasiraptor/config"
	"github.com/wippyai/wasiraptor/engine"
	"github.com/wippyai/wasiraptor/host"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	refStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	bytesStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const maxHistory = 8

type interactiveModel struct {
	err      error
	eng      *engine.Engine
	guest    *engine.Guest
	bridge   *bridge.Bridge
	recorder *host.Recorder
	history  []sentRecord
	inputs   []textinput.Model
	focusIdx int
	cfg      config.Config
}

type sentRecord struct {
	entry host.Entry
	bytes []byte
}

type readyMsg struct {
	err    error
	eng    *engine.Engine
	guest  *engine.Guest
	bridge *bridge.Bridge
}

type sentMsg struct {
	err    error
	record sentRecord
}

func newInteractiveModel(cfg config.Config) *interactiveModel {
	level := textinput.New()
	level.Prompt = "level:   "
	level.Placeholder = "info"
	level.Width = 16
	level.Focus()

	message := textinput.New()
	message.Prompt = "message: "
	message.Placeholder = "text"
	message.Width = 48

	return &interactiveModel{
		cfg:      cfg,
		recorder: host.NewRecorder(cfg.Record.Limit),
		inputs:   []textinput.Model{level, message},
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.start)
}

func (m *interactiveModel) start() tea.Msg {
	ctx := context.Background()

	eng, err := engine.New(ctx, &engine.Config{
		Recorder:         m.recorder,
		MemoryLimitPages: m.cfg.Guest.MemoryLimitPages,
		GuestPages:       m.cfg.Guest.Pages,
	})
	if err != nil {
		return readyMsg{err: err}
	}

	guest, err := eng.NewGuest(ctx, "console")
	if err != nil {
		eng.Close(ctx)
		return readyMsg{err: err}
	}

	b, err := guest.Bridge(bridge.WithBaseOffset(m.cfg.Guest.BaseOffset))
	if err != nil {
		eng.Close(ctx)
		return readyMsg{err: err}
	}
	return readyMsg{eng: eng, guest: guest, bridge: b}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.close()
			return m, tea.Quit

		case "tab", "shift+tab":
			m.inputs[m.focusIdx].Blur()
			m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
			m.inputs[m.focusIdx].Focus()
			return m, nil

		case "enter":
			if m.bridge == nil {
				return m, nil
			}
			return m, m.send(m.inputs[0].Value(), m.inputs[1].Value())
		}

	case readyMsg:
		m.err = msg.err
		m.eng = msg.eng
		m.guest = msg.guest
		m.bridge = msg.bridge
		return m, nil

	case sentMsg:
		m.err = msg.err
		if msg.err == nil {
			m.history = append(m.history, msg.record)
			if len(m.history) > maxHistory {
				m.history = m.history[len(m.history)-maxHistory:]
			}
			m.inputs[1].SetValue("")
		}
		return m, nil
	}

	var cmds []tea.Cmd
	for i := range m.inputs {
		var cmd tea.Cmd
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *interactiveModel) send(level, message string) tea.Cmd {
	return func() tea.Msg {
		if err := m.bridge.Log(context.Background(), level, message); err != nil {
			return sentMsg{err: err}
		}

		entries := m.recorder.Entries()
		if len(entries) == 0 {
			return sentMsg{err: fmt.Errorf("record not delivered")}
		}
		entry := entries[len(entries)-1]

		start := entry.LevelRef.Offset
		length := uint32(entry.MessageRef.End() - uint64(start))
		data, err := m.guest.Memory().Read(start, length)
		if err != nil {
			return sentMsg{err: err}
		}
		return sentMsg{record: sentRecord{entry: entry, bytes: data}}
	}
}

func (m *interactiveModel) close() {
	if m.eng != nil {
		_ = m.eng.Close(context.Background())
	}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("wasiraptor console"))
	if m.guest != nil {
		fmt.Fprintf(&b, " guest %s, %d bytes, base %d", m.guest.Name(), m.guest.Memory().Size(), m.bridge.BaseOffset())
	}
	b.WriteString("\n\n")

	for _, input := range m.inputs {
		b.WriteString(input.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}

	for i := len(m.history) - 1; i >= 0; i-- {
		rec := m.history[i]
		fmt.Fprintf(&b, "%s %s  %s %s\n",
			refStyle.Render(rec.entry.LevelRef.String()),
			refStyle.Render(fmt.Sprintf("%#016x", rec.entry.LevelRef.Pack())),
			refStyle.Render(rec.entry.MessageRef.String()),
			refStyle.Render(fmt.Sprintf("%#016x", rec.entry.MessageRef.Pack())))
		fmt.Fprintf(&b, "  %s  %q %q\n",
			bytesStyle.Render(fmt.Sprintf("% x", rec.bytes)),
			rec.entry.Level, rec.entry.Message)
	}
	if len(m.history) > 0 {
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("tab switch field • enter send • esc quit"))
	return b.String()
}

func runInteractive(cfg config.Config, log *zap.Logger) error {
	m := newInteractiveModel(cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return writeRecord(cfg.Record.Path, m.recorder, log)
}
