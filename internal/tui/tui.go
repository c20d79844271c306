package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const (
	headerHeight = 2
	footerHeight = 4
	helpText     = "[Enter: Send] [Ctrl+L: New conversation] [Ctrl+C: Exit]"
)

// creates the chat screen backed by the given client
func NewApp(client *Client) *Model {
	ti := textinput.New()
	ti.Placeholder = "ask about a product..."
	ti.Focus()
	ti.CharLimit = 2000
	ti.Width = 80
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(colorLightGray)
	ti.TextStyle = lipgloss.NewStyle().Foreground(colorWhite)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = infoStyle

	return &Model{
		input:   ti,
		spinner: sp,
		client:  client,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "ctrl+l":
			m.history = nil
			m.transcript = nil
			m.isFetching = false
			m.refresh()
			return m, nil

		case "enter":
			query := strings.TrimSpace(m.input.Value())
			if query == "" || m.isFetching {
				return m, nil
			}

			m.input.SetValue("")
			m.isFetching = true
			m.transcript = append(m.transcript, entry{role: "user", content: query})
			m.refresh()

			return m, m.client.ChatCmd(query, m.history)
		}

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case ChatResponseMsg:
		m.isFetching = false
		m.history = append(m.history,
			Turn{Role: "user", Content: msg.query},
			Turn{Role: "assistant", Content: msg.reply.Message},
		)
		m.transcript = append(m.transcript, entry{
			role:     "assistant",
			content:  msg.reply.Message,
			products: msg.reply.Products,
		})
		m.refresh()

		return m, nil

	case ChatErrorMsg:
		m.isFetching = false
		m.transcript = append(m.transcript, entry{role: "assistant", content: msg.err.Error(), isError: true})
		m.refresh()

		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	if m.ready {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) View() string {
	if !m.ready {
		return "\n  loading...\n"
	}

	var b strings.Builder

	header := titleStyle.Render("PRODUCT ASSISTANT")
	gap := strings.Repeat(" ", max(1, m.width-lipgloss.Width(header)-lipgloss.Width(helpText)))

	b.WriteString(header + gap + helpStyle.Render(helpText))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(inputBoxStyle.Width(max(10, m.width-4)).Render(m.input.View()))
	b.WriteString("\n")

	if m.isFetching {
		b.WriteString(m.spinner.View() + infoStyle.Render(" asking the assistant..."))
	}

	return b.String()
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(10, width-10)

	vpHeight := max(3, height-headerHeight-footerHeight)

	if !m.ready {
		m.viewport = viewport.New(width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(20, width-4)),
	)
	if err == nil {
		m.renderer = renderer
	}

	m.refresh()
}

// re-renders the transcript into the viewport and scrolls to the newest entry
func (m *Model) refresh() {
	if !m.ready {
		return
	}

	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m *Model) renderTranscript() string {
	if len(m.transcript) == 0 {
		return infoStyle.Render("ready! ask about products below and press enter.")
	}

	var b strings.Builder

	for _, e := range m.transcript {
		switch {
		case e.role == "user":
			b.WriteString(userStyle.Render("You") + "\n")
			b.WriteString(e.content + "\n\n")

		case e.isError:
			b.WriteString(errorStyle.Render("Error: "+e.content) + "\n\n")

		default:
			b.WriteString(assistantStyle.Render("Assistant") + "\n")
			b.WriteString(m.renderMarkdown(e.content))
			b.WriteString(renderProducts(e.products))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (m *Model) renderMarkdown(s string) string {
	if m.renderer == nil {
		return s + "\n"
	}

	out, err := m.renderer.Render(s)
	if err != nil {
		return s + "\n"
	}

	return out
}

func renderProducts(products []Product) string {
	if len(products) == 0 {
		return ""
	}

	var b strings.Builder

	for i, p := range products {
		line := fmt.Sprintf("%d. %s", i+1, p.Title)
		if p.Price != "" {
			line += " (" + p.Price + ")"
		}

		b.WriteString(productStyle.Render(line) + " " + linkStyle.Render(p.URL) + "\n")
	}

	return b.String()
}
