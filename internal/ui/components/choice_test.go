package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestChoiceList_Navigation(t *testing.T) {
	c := NewChoiceList("Pick one", []string{"a", "b", "c"}, -1)

	c, picked := c.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if picked || c.Selected != 0 {
		t.Errorf("up at top: selected=%d picked=%v", c.Selected, picked)
	}
	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if c.Selected != 2 {
		t.Errorf("down clamps at bottom: selected=%d", c.Selected)
	}
	if c.Chosen != -1 {
		t.Errorf("navigation must not choose, got %d", c.Chosen)
	}

	c, picked = c.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !picked || c.Chosen != 2 {
		t.Errorf("enter: chosen=%d picked=%v", c.Chosen, picked)
	}
}

func TestChoiceList_NumberKeys(t *testing.T) {
	c := NewChoiceList("Pick one", []string{"a", "b", "c"}, -1)

	c, picked := c.Update(tea.KeyPressMsg{Code: '2', Text: "2"})
	if !picked || c.Chosen != 1 || c.Selected != 1 {
		t.Errorf("'2': chosen=%d selected=%d picked=%v", c.Chosen, c.Selected, picked)
	}

	c, picked = c.Update(tea.KeyPressMsg{Code: '7', Text: "7"})
	if picked || c.Chosen != 1 {
		t.Errorf("out of range number should be ignored, chosen=%d", c.Chosen)
	}
}

func TestChoiceList_Preselected(t *testing.T) {
	c := NewChoiceList("Pick one", []string{"a", "b"}, 1)
	if c.Selected != 1 || c.Chosen != 1 {
		t.Errorf("preselected: selected=%d chosen=%d", c.Selected, c.Chosen)
	}
	if !strings.Contains(c.View(40), "● 2. b") {
		t.Errorf("view should mark the chosen option:\n%s", c.View(40))
	}

	c = NewChoiceList("Pick one", []string{"a"}, 5)
	if c.Chosen != -1 {
		t.Errorf("invalid preselect should be ignored, chosen=%d", c.Chosen)
	}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	ran := ""
	item := func(label string, disabled bool) MenuItem {
		return MenuItem{Label: label, Disabled: disabled, Action: func() tea.Cmd {
			ran = label
			return nil
		}}
	}
	m := NewMenu([]MenuItem{item("one", true), item("two", false), item("three", true), item("four", false)})

	if m.Selected != 1 {
		t.Fatalf("first enabled item should be selected, got %d", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Errorf("down should skip disabled, got %d", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if ran != "four" {
		t.Errorf("enter ran %q, want four", ran)
	}

	m = m.SetItems([]MenuItem{item("one", false), item("two", false), item("three", false), item("four", true)})
	if m.Selected != 0 {
		t.Errorf("selection on a now-disabled item should reset, got %d", m.Selected)
	}
}

func TestProgressBar_Clamps(t *testing.T) {
	for _, pct := range []float64{-1, 0, 0.5, 1, 3} {
		bar := NewProgressBar("Creative", pct, "3 pts", 40).View()
		if !strings.Contains(bar, "Creative") || !strings.Contains(bar, "3 pts") {
			t.Errorf("percent %v: missing label or suffix in %q", pct, bar)
		}
	}
}
