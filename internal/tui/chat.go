// Package tui implements the interactive chat interface: a conversation
// transcript, an input field, and an execution view for deliverables.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hypertask-ai/hypertask/internal/orchestrator"
	"github.com/hypertask-ai/hypertask/pkg/models"
)

var (
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	systemStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	readyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true)
)

// replyMsg carries the orchestrator's answer to a submitted message.
type replyMsg struct {
	reply *orchestrator.Reply
	err   error
}

// execMsg carries the result of executing the plan.
type execMsg struct {
	result *orchestrator.ExecutionResult
	err    error
}

type transcriptLine struct {
	speaker string
	text    string
	style   lipgloss.Style
}

// ChatApp is the bubbletea model for the chat session.
type ChatApp struct {
	orch           *orchestrator.Orchestrator
	conversationID string

	input      textinput.Model
	transcript []transcriptLine
	ready      bool
	busy       bool
	width      int
	quitting   bool
}

// NewChatApp creates the chat model.
func NewChatApp(orch *orchestrator.Orchestrator) *ChatApp {
	ti := textinput.New()
	ti.Placeholder = "Describe what you need and press Enter..."
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	return &ChatApp{
		orch:  orch,
		input: ti,
		width: 80,
		transcript: []transcriptLine{
			{speaker: "system", text: "Tell me about your brand. /execute runs the plan, /reset starts over, /quit exits.", style: systemStyle},
		},
	}
}

// Init implements tea.Model.
func (a *ChatApp) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (a *ChatApp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			a.quitting = true
			return a, tea.Quit
		case "enter":
			if a.busy {
				return a, nil
			}
			text := strings.TrimSpace(a.input.Value())
			if text == "" {
				return a, nil
			}
			a.input.Reset()
			return a.handleInput(text)
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.input.Width = msg.Width - 6

	case replyMsg:
		a.busy = false
		if msg.err != nil {
			a.appendLine("error", msg.err.Error(), errorStyle)
			return a, nil
		}
		a.conversationID = msg.reply.ConversationID
		a.ready = msg.reply.ReadyToExecute
		a.appendLine("hypertask", msg.reply.ResponseText, assistantStyle)
		return a, nil

	case execMsg:
		a.busy = false
		if msg.err != nil {
			a.appendLine("error", msg.err.Error(), errorStyle)
			return a, nil
		}
		a.appendLine("system", a.renderResult(msg.result), systemStyle)
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// handleInput dispatches a line of input: slash commands or a chat message.
func (a *ChatApp) handleInput(text string) (tea.Model, tea.Cmd) {
	switch text {
	case "/quit", "/exit":
		a.quitting = true
		return a, tea.Quit

	case "/reset":
		if a.conversationID != "" {
			if err := a.orch.ResetConversation(a.conversationID); err != nil {
				a.appendLine("error", err.Error(), errorStyle)
				return a, nil
			}
		}
		a.conversationID = ""
		a.ready = false
		a.appendLine("system", "Conversation reset. What would you like to create?", systemStyle)
		return a, nil

	case "/execute":
		a.busy = true
		a.appendLine("system", "Dispatching the generation agents...", systemStyle)
		id := a.conversationID
		return a, func() tea.Msg {
			result, err := a.orch.ExecutePlan(context.Background(), id)
			return execMsg{result: result, err: err}
		}

	default:
		a.appendLine("you", text, userStyle)
		a.busy = true
		id := a.conversationID
		return a, func() tea.Msg {
			reply, err := a.orch.SubmitMessage(context.Background(), id, text)
			return replyMsg{reply: reply, err: err}
		}
	}
}

func (a *ChatApp) appendLine(speaker, text string, style lipgloss.Style) {
	a.transcript = append(a.transcript, transcriptLine{speaker: speaker, text: text, style: style})
}

// renderResult summarizes an execution result for the transcript.
func (a *ChatApp) renderResult(res *orchestrator.ExecutionResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Execution %s — %d deliverable(s):\n", res.Status, len(res.Deliverables))
	for _, d := range res.Deliverables {
		fmt.Fprintf(&b, "\n[%s] %s (tier: %s, model: %s)\n", d.Capability, d.Name, d.Tier, d.Model)
		if d.Type == models.ContentTypeImage {
			fmt.Fprintf(&b, "  image payload, %d bytes\n", len(d.Content))
			continue
		}
		b.WriteString(indent(truncate(d.Content, 600), "  "))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nTotal: %d credits + %.2f service fee", res.TotalCost, res.Fee)
	return b.String()
}

// View implements tea.Model.
func (a *ChatApp) View() string {
	if a.quitting {
		return "Bye!\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("HyperTask"))
	b.WriteString("\n\n")

	for _, line := range a.transcript {
		b.WriteString(line.style.Render(line.speaker+":") + " " + line.text + "\n\n")
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Width(a.width - 2)
	b.WriteString(boxStyle.Render(a.input.View()))
	b.WriteString("\n")

	footer := "enter: send • /execute • /reset • ctrl+c: quit"
	if a.busy {
		footer = "working..."
	}
	if a.ready {
		b.WriteString(readyStyle.Render("plan ready — /execute to run it"))
		b.WriteString("  ")
	}
	b.WriteString(footerStyle.Render(footer))
	b.WriteString("\n")
	return b.String()
}

// Run starts the chat program and blocks until exit.
func Run(orch *orchestrator.Orchestrator) error {
	p := tea.NewProgram(NewChatApp(orch))
	_, err := p.Run()
	return err
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
