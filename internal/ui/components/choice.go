package components

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/shindan/internal/ui/theme"
)

// ChoiceList is a single-select list of answers. Options can be picked with
// the arrow keys and Enter, or directly with the number keys 1-9.
type ChoiceList struct {
	Prompt   string
	Options  []string
	Selected int

	// Chosen is the index of the picked option, or -1.
	Chosen int
}

// NewChoiceList creates a list with the cursor on preselected when it is a
// valid index. Pass -1 for no previous answer.
func NewChoiceList(prompt string, options []string, preselected int) ChoiceList {
	c := ChoiceList{Prompt: prompt, Options: options, Chosen: -1}
	if preselected >= 0 && preselected < len(options) {
		c.Selected = preselected
		c.Chosen = preselected
	}
	return c
}

// Update handles keyboard navigation and selection. It reports whether an
// option was picked by this message.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, false
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	case "enter", "space", " ":
		if len(c.Options) > 0 {
			c.Chosen = c.Selected
			return c, true
		}
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(c.Options) && n <= 9 {
			c.Selected = n - 1
			c.Chosen = n - 1
			return c, true
		}
	}
	return c, false
}

// View renders the prompt and options.
func (c ChoiceList) View(width int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(width).
		Render(c.Prompt))
	b.WriteString("\n\n")

	for i, opt := range c.Options {
		cursor := "  "
		if i == c.Selected {
			cursor = "▸ "
		}
		mark := "○"
		if i == c.Chosen {
			mark = "●"
		}
		line := fmt.Sprintf("%s%s %d. %s", cursor, mark, i+1, opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case i == c.Selected:
			style = style.Foreground(theme.Primary).Bold(true)
		case i == c.Chosen:
			style = style.Foreground(theme.Secondary)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
