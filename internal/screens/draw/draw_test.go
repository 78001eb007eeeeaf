package draw

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/shindan/internal/aptitude"
	"github.com/abhisek/shindan/internal/gacha"
	"github.com/abhisek/shindan/internal/profile"
	"github.com/abhisek/shindan/internal/router"
	"github.com/abhisek/shindan/internal/screen"
	"github.com/abhisek/shindan/internal/store"
)

func testServices(t *testing.T, points int, withDiagnosis bool) screen.Services {
	t.Helper()
	ctx := context.Background()
	mgr := profile.NewManager(store.NewMemory(store.Options{}), profile.Options{})
	if withDiagnosis {
		answers := []aptitude.Answer{{QuestionID: "q1", Value: aptitude.StringValue("creativity")}}
		err := mgr.AddDiagnosis(ctx, profile.Diagnosis{
			ID: "d1", Type: profile.TypeJobAptitude, Answers: answers,
			Result: aptitude.ComputeResult(answers), CompletedAt: time.Now(),
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	if err := mgr.UpdatePoints(ctx, points); err != nil {
		t.Fatal(err)
	}
	svc := gacha.NewService(mgr, gacha.WithSource(gacha.NewSeededSource(7)))
	return screen.Services{Profiles: mgr, Gacha: svc}
}

func loaded(s *DrawScreen) *DrawScreen {
	s.Update(s.Init()())
	return s
}

func TestDrawScreen_SpinRevealsAfterReel(t *testing.T) {
	svc := testServices(t, 20, true)
	s := loaded(New(svc))

	cmd := s.start()
	if cmd == nil || !s.spinning {
		t.Fatal("expected spin to start")
	}

	s.Update(s.spin())
	if s.result != nil {
		t.Fatal("result should stay hidden while the reel runs")
	}

	var last tea.Cmd
	for i := 0; i < minFrames; i++ {
		_, last = s.Update(spinTickMsg{})
	}
	if s.spinning {
		t.Fatal("reel should stop after minFrames ticks")
	}
	if s.result == nil {
		t.Fatal("expected a revealed result")
	}
	if _, ok := last().(screen.RefreshStatsMsg); !ok {
		t.Error("reveal should refresh header stats")
	}

	want := 20 - profile.SpinCost + s.result.Definition.Points
	if s.data.Points != want {
		t.Errorf("Points = %d, want %d", s.data.Points, want)
	}
	if !strings.Contains(s.View(100, 40), s.result.Reward.Title) {
		t.Error("view should show the drawn reward")
	}

	ud, _ := svc.Profiles.Read(context.Background())
	if len(ud.UnlockedRewards) != 1 {
		t.Errorf("stored %d rewards, want 1", len(ud.UnlockedRewards))
	}
}

func TestDrawScreen_RequiresDiagnosis(t *testing.T) {
	s := loaded(New(testServices(t, 100, false)))
	if cmd := s.start(); cmd != nil {
		t.Error("expected no spin without a diagnosis")
	}
	if !strings.Contains(s.errMsg, "Finish a diagnosis") {
		t.Errorf("errMsg = %q", s.errMsg)
	}
}

func TestDrawScreen_RequiresPoints(t *testing.T) {
	s := loaded(New(testServices(t, profile.SpinCost-1, true)))
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if s.spinning {
		t.Error("should not spin with too few points")
	}
	if !strings.Contains(s.errMsg, "Not enough points") {
		t.Errorf("errMsg = %q", s.errMsg)
	}
}

func TestDrawScreen_KeysIgnoredWhileSpinning(t *testing.T) {
	s := loaded(New(testServices(t, 20, true)))
	s.spinning = true
	if _, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"}); cmd != nil {
		t.Error("expected keys to be ignored mid-spin")
	}
}

func TestDrawScreen_OpenRewards(t *testing.T) {
	s := loaded(New(testServices(t, 0, false)))
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok || push.Screen.Title() != "My Rewards" {
		t.Errorf("expected push of the rewards screen, got %T", cmd())
	}
}
