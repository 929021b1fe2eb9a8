package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"polydock/internal/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	config := loadConfig()
	cleanup, err := initLogger(config)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer cleanup()

	ctx := context.Background()
	st, err := openStore(ctx, config)
	if err != nil {
		slog.Error("Failed to open storage", "storage", config.Storage, "error", err)
		return fmt.Errorf("open storage: %w", err)
	}
	defer st.Close()
	slog.Info("Starting", "storage", config.Storage,
		"canvas", fmt.Sprintf("%gx%g", config.CanvasWidth, config.CanvasHeight))

	seed := uint64(time.Now().UnixNano())
	m := initialModel(ctx, config, st, rand.New(rand.NewPCG(seed, seed>>1)))
	m.loadState()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	if _, err := p.Run(); err != nil {
		return err
	}
	slog.Info("Exiting")
	return nil
}

func initialModel(ctx context.Context, config *Config, st store.Store, rng *rand.Rand) model {
	return model{
		ctx:       ctx,
		mode:      ModeNormal,
		ws:        newWorkspace(config),
		undoStack: []Action{},
		redoStack: []Action{},
		store:     st,
		config:    config,
		rng:       rng,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		cmd := m.handleKey(msg.String())
		return m, cmd
	}
	return m, nil
}

func (m *model) handleKey(key string) tea.Cmd {
	if m.help {
		switch key {
		case "esc", "q", "?":
			m.help = false
			m.helpScroll = 0
		case "j", "down":
			if m.helpScroll < len(helpLines)-1 {
				m.helpScroll++
			}
		case "k", "up":
			if m.helpScroll > 0 {
				m.helpScroll--
			}
		}
		return nil
	}

	if m.mode == ModeConfirm {
		return m.handleConfirm(key)
	}

	m.errorMessage, m.successMessage = "", ""
	switch key {
	case "ctrl+c":
		return tea.Quit
	case "q":
		if m.changed && m.config.Confirmations {
			m.askConfirm(ConfirmQuit)
			return nil
		}
		return tea.Quit
	case "esc":
		m.cancelDrag()
	case "?":
		m.help = true
	case "h", "j", "k", "l", "left", "right", "up", "down",
		"H", "J", "K", "L", "shift+left", "shift+right", "shift+up", "shift+down":
		m.handlePan(key, m.getMoveSpeed(key))
	case "+", "=", "-", "_", "0":
		m.handleZoom(key)
	case "g":
		if m.config.Confirmations && !m.ws.empty() {
			m.askConfirm(ConfirmGenerate)
		} else {
			m.generateState()
		}
	case "s":
		m.saveState()
	case "c":
		if !m.canClear() {
			m.errorMessage = "Nothing saved to clear"
			return nil
		}
		if m.config.Confirmations {
			m.askConfirm(ConfirmClear)
		} else {
			m.clearState()
		}
	case "e":
		filename := m.config.GetSavePath(timestampedName("polydock", "png"))
		if err := m.exportPNG(filename); err != nil {
			slog.Error("PNG export failed", "file", filename, "error", err)
			m.errorMessage = err.Error()
		} else {
			m.successMessage = "Exported " + filename
		}
	case "E":
		filename := m.config.GetSavePath(timestampedName("polydock", "txt"))
		if err := m.exportVisualTXT(filename); err != nil {
			slog.Error("Text export failed", "file", filename, "error", err)
			m.errorMessage = err.Error()
		} else {
			m.successMessage = "Exported " + filename
		}
	case "y":
		m.copyState()
	case "p":
		snap, err := m.readImport()
		if err != nil {
			m.errorMessage = err.Error()
			return nil
		}
		if m.config.Confirmations && !m.ws.empty() {
			m.pendingSnap = &snap
			m.askConfirm(ConfirmImport)
		} else {
			m.importState(snap)
		}
	case "u":
		m.undo()
	case "U":
		m.redo()
	}
	return nil
}

func (m *model) askConfirm(action ConfirmAction) {
	m.cancelDrag()
	m.ws.work.Gestures().MouseUp()
	m.confirmAction = action
	m.mode = ModeConfirm
}

func (m *model) handleConfirm(key string) tea.Cmd {
	switch key {
	case "y", "Y":
		m.mode = ModeNormal
		switch m.confirmAction {
		case ConfirmQuit:
			return tea.Quit
		case ConfirmGenerate:
			m.generateState()
		case ConfirmClear:
			m.clearState()
		case ConfirmImport:
			if m.pendingSnap != nil {
				m.importState(*m.pendingSnap)
			}
		}
		m.pendingSnap = nil
	case "n", "N", "esc":
		m.mode = ModeNormal
		m.pendingSnap = nil
	}
	return nil
}

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.help {
		return m.helpView()
	}

	cols := m.cols()
	var result strings.Builder

	header := titleStyle.Render("polydock") + dimStyle.Render(fmt.Sprintf("  buffer %d · work %d",
		len(m.ws.buffer.Nodes()), len(m.ws.work.Nodes())))
	result.WriteString(header)
	result.WriteString("\n")

	buffer := m.renderBuffer(cols)
	m.bufferGhost(buffer)
	for _, line := range buffer.styled() {
		result.WriteString(line)
		result.WriteString("\n")
	}
	result.WriteString(dimStyle.Render(separatorLine(cols)))
	result.WriteString("\n")
	for _, line := range m.renderWork(cols, m.workRows()).styled() {
		result.WriteString(line)
		result.WriteString("\n")
	}

	result.WriteString(m.statusLine())
	return result.String()
}

func separatorLine(cols int) string {
	label := "── work canvas "
	n := len([]rune(label))
	if cols <= n {
		return strings.Repeat("─", cols)
	}
	return label + strings.Repeat("─", cols-n)
}

func (m model) statusLine() string {
	var statusLine string
	switch m.mode {
	case ModeConfirm:
		var message string
		switch m.confirmAction {
		case ConfirmQuit:
			message = "Quit with unsaved changes? (y/n)"
		case ConfirmGenerate:
			message = "Replace everything with a new set of shapes? (y/n)"
		case ConfirmClear:
			message = "Clear both zones and the saved data? (y/n)"
		case ConfirmImport:
			message = "Replace everything with the clipboard snapshot? (y/n)"
		}
		statusLine = fmt.Sprintf("Mode: CONFIRM | %s", message)
	default:
		vp := m.ws.work.Viewport()
		off := vp.Offset()
		status := fmt.Sprintf("Mode: %s | Zoom: %.0f%% | Offset: (%.0f,%.0f)",
			m.modeString(), 100/vp.Scale(), off.X, off.Y)
		if m.mode == ModeDrag {
			status += fmt.Sprintf(" | Dragging %d", m.ws.drag.ShapeID())
		} else if m.hovering {
			status += fmt.Sprintf(" | Shape %d", m.hoverID)
		}
		if m.changed {
			status += " | unsaved"
		}
		if m.successMessage != "" {
			status += fmt.Sprintf(" | %s", m.successMessage)
		}
		if m.errorMessage != "" {
			return statusStyle.Render(status) + errorStyle.Render(" | ERROR: "+m.errorMessage)
		} else if m.successMessage == "" {
			status += " | ? for help | q to quit"
		}
		statusLine = status
	}
	return statusStyle.Render(padRight(statusLine, m.cols()))
}

func (m model) modeString() string {
	switch m.mode {
	case ModeNormal:
		return "NORMAL"
	case ModePan:
		return "PAN"
	case ModeDrag:
		return "DRAG"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

var helpLines = []string{
	"polydock help",
	"=============",
	"",
	"Mouse:",
	"------",
	"  Drag a shape      Move it within its zone or across to the other one",
	"                    - in the buffer, dropping on a shape takes its place",
	"                    - on the canvas, the shape lands where you let go",
	"  Drag background   Pan the work canvas",
	"  Wheel on canvas   Zoom around the pointer",
	"  Wheel on buffer   Scroll the buffer strip",
	"",
	"Navigation:",
	"-----------",
	"  h/←/j/↓/k/↑/l/→  Pan the work canvas",
	"  Shift+h/j/k/l    Pan 2x faster",
	"  +/-              Zoom in/out",
	"  0                Reset zoom and pan",
	"",
	"Data:",
	"-----",
	"  g                Generate a new set of shapes",
	"  s                Save",
	"  c                Clear both zones and the saved data",
	"  y                Copy the current state to the clipboard as JSON",
	"  p                Load a state from the clipboard",
	"",
	"Export:",
	"-------",
	"  e                Export the work canvas as PNG",
	"  E                Export the visible screen as text",
	"",
	"General:",
	"  u                Undo last action",
	"  U                Redo last undone action",
	"  Esc              Cancel the current drag",
	"  ?                Toggle this help screen",
	"  q/Ctrl+C         Quit",
}

func (m model) helpView() string {
	// Calculate visible area
	visibleHeight := m.height - 1 // Leave room for status line
	if visibleHeight < 1 {
		visibleHeight = 1
	}

	startLine := m.helpScroll
	if maxStart := len(helpLines) - visibleHeight; startLine > maxStart {
		startLine = max(maxStart, 0)
	}
	endLine := min(startLine+visibleHeight, len(helpLines))

	result := strings.Join(helpLines[startLine:endLine], "\n")
	statusLine := fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, Esc to close",
		startLine+1, endLine, len(helpLines))
	return result + "\n" + statusLine
}
