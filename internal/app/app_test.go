package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/shindan/internal/gacha"
	"github.com/abhisek/shindan/internal/profile"
	"github.com/abhisek/shindan/internal/router"
	"github.com/abhisek/shindan/internal/screen"
	"github.com/abhisek/shindan/internal/screens/compare"
	"github.com/abhisek/shindan/internal/store"
)

func testModel() AppModel {
	mgr := profile.NewManager(store.NewMemory(store.Options{}), profile.Options{})
	return newAppModel(Options{Profiles: mgr, Gacha: gacha.NewService(mgr)})
}

func TestAppModel_StatsUpdateHeader(t *testing.T) {
	m := testModel()
	updated, _ := m.Update(screen.StatsMsg{Points: 42, Rewards: 3})
	am := updated.(AppModel)
	if am.points != 42 || am.rewards != 3 {
		t.Errorf("header = %d pts, %d rewards", am.points, am.rewards)
	}
}

func TestAppModel_RefreshStatsLoads(t *testing.T) {
	m := testModel()
	_, cmd := m.Update(screen.RefreshStatsMsg{})
	if cmd == nil {
		t.Fatal("expected load command")
	}
	stats, ok := cmd().(screen.StatsMsg)
	if !ok {
		t.Fatalf("expected StatsMsg, got %T", cmd())
	}
	if stats.Points != 0 || stats.Rewards != 0 {
		t.Errorf("fresh record stats = %+v", stats)
	}
}

func TestAppModel_EscPops(t *testing.T) {
	m := testModel()
	if _, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape}); cmd != nil {
		t.Error("esc on the root screen should do nothing")
	}

	m.router.Push(compare.New(nil))
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestAppModel_PopReloadsStats(t *testing.T) {
	m := testModel()
	m.router.Push(compare.New(nil))
	_, cmd := m.Update(router.PopScreenMsg{})
	if m.router.Depth() != 1 {
		t.Errorf("Depth() = %d after pop", m.router.Depth())
	}
	if cmd == nil {
		t.Error("expected stats reload after pop")
	}
}

func TestAppModel_WindowSize(t *testing.T) {
	m := testModel()
	updated, cmd := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	am := updated.(AppModel)
	if am.width != 120 || am.height != 40 {
		t.Errorf("size = %dx%d", am.width, am.height)
	}
	if cmd != nil {
		t.Error("resize should not produce a command")
	}
}
