package player

import (
	"fmt"
	"strconv"
	"strings"

	"app/internal/model"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5227FF")).MarginBottom(1)
	slideTitle  = lipgloss.NewStyle().Bold(true).Italic(true).Foreground(lipgloss.Color("#FFFFFF"))
	bodyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#A1A1AA"))
	bulletStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#D4D4D8"))
	badgeStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#60A5FA"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
	errStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF0000"))
)

func itoa(n int) string { return strconv.Itoa(n) }

func keyMatches(msg tea.KeyMsg, binding key.Binding) bool {
	return key.Matches(msg, binding)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case PromptView:
		return m.renderPrompt()
	case DashboardView:
		return m.renderDashboard()
	case PlayerView:
		return m.renderPlayer()
	case ConfirmDeleteView:
		return m.renderConfirmDelete()
	default:
		return ""
	}
}

func (m *Model) renderPrompt() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("LEARN ANYTHING."))
	b.WriteString("\n")
	b.WriteString(faintStyle.Render("Convert complex topics into cinematic visual stories in seconds."))
	b.WriteString("\n\n")
	b.WriteString(m.promptInput.View())
	b.WriteString("\n\n")

	mode := "Quick Insight (5 slides)"
	if m.courseType == model.CourseTypeLong {
		mode = "Comprehensive Module (10 slides)"
	}
	b.WriteString(badgeStyle.Render("Mode: " + mode))
	b.WriteString("\n")

	if m.promptErr != "" {
		b.WriteString("\n" + errStyle.Render(m.promptErr) + "\n")
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.toggle, m.keys.back, m.keys.quit}
	b.WriteString("\n" + m.help.ShortHelpView(helpKeys))
	return b.String()
}

func (m *Model) renderDashboard() string {
	if !m.listReady {
		if m.statusMsg != "" {
			return errStyle.Render(m.statusMsg) + "\n\n" + faintStyle.Render("Press q to quit")
		}
		return faintStyle.Render("Loading courses...")
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.newDeck, m.keys.delete, m.keys.quit}
	view := m.courseList.View() + "\n\n" + m.help.ShortHelpView(helpKeys)
	if m.statusMsg != "" {
		view = errStyle.Render(m.statusMsg) + "\n\n" + view
	}
	return view
}

func (m *Model) renderConfirmDelete() string {
	if m.pendingDelete == nil {
		return ""
	}
	title := titleStyle.Render("Delete course?")
	info := fmt.Sprintf("\n%q will be deleted permanently.\n", m.pendingDelete.Prompt)
	helpKeys := []key.Binding{m.keys.yes, m.keys.no}
	return title + info + "\n" + m.help.ShortHelpView(helpKeys)
}

func (m *Model) renderPlayer() string {
	switch m.genState {
	case GenNotStarted, GenInFlight:
		return badgeStyle.Render("GENERATING CONTENT...") + "\n\n" +
			faintStyle.Render(m.prompt)
	case GenFailed:
		msg := "generation failed"
		if m.genErr != nil {
			msg = m.genErr.Error()
		}
		return errStyle.Render("Error: "+msg) + "\n\n" +
			faintStyle.Render("Press r to retry, esc for dashboard, q to quit")
	}

	if len(m.slides) == 0 {
		return faintStyle.Render("No content generated. Try again!") + "\n\n" +
			faintStyle.Render("Press esc for dashboard, q to quit")
	}

	slide := m.slides[m.current]

	var b strings.Builder
	b.WriteString(m.renderProgressStrip())
	b.WriteString("\n\n")

	mode := "QUICK INSIGHT"
	if m.courseType == model.CourseTypeLong {
		mode = "COMPREHENSIVE MODULE"
	}
	b.WriteString(badgeStyle.Render(mode))
	b.WriteString("\n\n")
	b.WriteString(slideTitle.Render(slide.Title))
	b.WriteString("\n\n")
	b.WriteString(renderContent(slide.Content))
	b.WriteString("\n\n")
	b.WriteString(faintStyle.Render(fmt.Sprintf("Slide %d / %d", m.current+1, len(m.slides))))

	helpKeys := []key.Binding{m.keys.prev, m.keys.next, m.keys.back, m.keys.quit}
	b.WriteString("\n" + m.help.ShortHelpView(helpKeys))
	return b.String()
}

// renderProgressStrip draws one segment per slide: filled for played
// slides, the live ramp for the current one, empty for the rest.
func (m *Model) renderProgressStrip() string {
	n := len(m.slides)
	bar := m.bar
	if m.width > 0 {
		segWidth := (m.width - 2 - (n - 1)) / n
		if segWidth < 4 {
			segWidth = 4
		}
		bar.Width = segWidth
	}
	segments := make([]string, n)
	for i := range m.slides {
		switch {
		case i < m.current:
			segments[i] = bar.ViewAs(1)
		case i == m.current:
			segments[i] = bar.ViewAs(m.progress / 100)
		default:
			segments[i] = bar.ViewAs(0)
		}
	}
	return strings.Join(segments, " ")
}

// renderContent renders a slide body; an empty body renders as nothing.
func renderContent(content model.SlideContent) string {
	if content.IsEmpty() {
		return ""
	}
	var b strings.Builder
	if content.Text != "" {
		b.WriteString(bodyStyle.Render(content.Text))
	}
	for _, point := range content.BulletPoints {
		b.WriteString("\n")
		b.WriteString(bulletStyle.Render("  • " + point))
	}
	return b.String()
}
