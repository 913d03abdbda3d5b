// Package review is the terminal screen for a spaced-repetition review
// session.
package review

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cmdflash/internal/answer"
	"github.com/abhisek/cmdflash/internal/content"
	"github.com/abhisek/cmdflash/internal/spacedrep"
	"github.com/abhisek/cmdflash/internal/ui/components"
	"github.com/abhisek/cmdflash/internal/ui/layout"
	"github.com/abhisek/cmdflash/internal/ui/theme"
)

const defaultWidth = 80

// Model is the Bubble Tea model driving one frozen review session.
type Model struct {
	ctx     context.Context
	set     *content.CardSet
	session *spacedrep.Session

	input        components.TextInput
	lastCorrect  bool
	lastProgress spacedrep.CardProgress
	err          error
	quitting     bool
	width        int
	height       int
}

// New creates a review screen over session, whose cards come from set.
func New(ctx context.Context, set *content.CardSet, session *spacedrep.Session) Model {
	return Model{
		ctx:     ctx,
		set:     set,
		session: session,
		input:   components.NewTextInput("type the command", 200),
		width:   defaultWidth,
	}
}

// Session returns the session the screen is driving.
func (m Model) Session() *spacedrep.Session {
	return m.session
}

func (m Model) Init() tea.Cmd {
	return m.input.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			return m.handleEnter()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleEnter submits the typed answer, or moves on once the current card
// has been answered.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	if m.session.Done() {
		m.quitting = true
		return m, tea.Quit
	}

	if !m.session.Answered() {
		card, ok := m.currentCard()
		if !ok {
			// The card vanished from the set since the session started.
			m.session.Advance()
			return m, nil
		}
		typed := strings.TrimSpace(m.input.Value())
		if typed == "" {
			return m, nil
		}
		correct := answer.IsCorrect(typed, card.Answer)
		cp, err := m.session.Answer(m.ctx, correct)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.lastCorrect = correct
		m.lastProgress = cp
		m.input.Submit(correct)
		return m, nil
	}

	m.session.Advance()
	m.input.Reset()
	return m, nil
}

func (m Model) currentCard() (content.Card, bool) {
	id, ok := m.session.Current()
	if !ok {
		return content.Card{}, false
	}
	return m.set.Card(id)
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.quitting {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render builds the screen contents. Once the terminal size is known the
// body is framed with a header and a key-hint footer.
func (m Model) render() string {
	body := m.renderBody()
	if m.height > 0 {
		sum := m.session.Summary()
		header := layout.RenderHeader(m.set.Title, sum.Correct, sum.Answered, m.width)
		footer := layout.RenderFooter(m.hints(), m.width)
		return layout.RenderFrame(header, body, footer, m.width, m.height)
	}
	return theme.Title.Render(m.set.Title) + theme.Subtitle.Render("  review") + "\n\n" +
		body + "\n" + layout.FormatHints(m.hints())
}

func (m Model) hints() []layout.KeyHint {
	switch {
	case m.session.Done():
		return []layout.KeyHint{{Key: "enter", Description: "quit"}}
	case m.session.Answered():
		return []layout.KeyHint{{Key: "enter", Description: "next card"}, {Key: "esc", Description: "quit"}}
	default:
		return []layout.KeyHint{{Key: "enter", Description: "check"}, {Key: "esc", Description: "quit"}}
	}
}

func (m Model) renderBody() string {
	var b strings.Builder

	if m.session.Done() {
		b.WriteString(m.renderSummary())
		return b.String()
	}

	width := min(m.width, defaultWidth) - 4
	pos := m.session.Position()
	total := m.session.Len()
	bar := components.NewProgressBar(
		fmt.Sprintf("Card %d/%d", pos+1, total),
		components.Fraction(pos, total),
		false,
		width,
	)
	b.WriteString(bar.View())
	b.WriteString("\n\n")

	card, ok := m.currentCard()
	if !ok {
		b.WriteString(theme.Hint.Render("This card is no longer in the set. Press enter to skip."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(theme.Card.Width(width).Render(theme.Body.Bold(true).Render(card.Task)))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(theme.Incorrect.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}

	if m.session.Answered() {
		b.WriteString(m.renderFeedback(card))
	} else if card.WhenToUse != "" {
		b.WriteString(theme.Hint.Render("Hint: " + card.WhenToUse))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderFeedback(card content.Card) string {
	var b strings.Builder
	if m.lastCorrect {
		b.WriteString(theme.Correct.Render("✓ Correct!"))
	} else {
		b.WriteString(theme.Incorrect.Render("✗ Not quite.") + " Answer: " + theme.Command.Render(card.Answer))
	}
	b.WriteString("\n")
	if card.Description != "" {
		b.WriteString(theme.Body.Render(card.Description))
		b.WriteString("\n")
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("Mastery: %s · next review in %d day(s)",
			m.lastProgress.MasteryLevel, m.lastProgress.Interval),
	))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderSummary() string {
	sum := m.session.Summary()
	if sum.Total == 0 {
		return theme.Body.Render("Nothing is due right now. Come back later!") + "\n"
	}
	return fmt.Sprintf("%s\n\n%s\n",
		theme.Correct.Render("Review complete!"),
		theme.Body.Render(fmt.Sprintf("%d/%d correct", sum.Correct, sum.Answered)),
	)
}

// Run starts the review program and blocks until the learner quits.
func Run(ctx context.Context, set *content.CardSet, session *spacedrep.Session) (spacedrep.SessionSummary, error) {
	p := tea.NewProgram(New(ctx, set, session))
	if _, err := p.Run(); err != nil {
		return spacedrep.SessionSummary{}, fmt.Errorf("run review: %w", err)
	}
	return session.Summary(), nil
}
