package domain

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestDiff(t *testing.T) {
	base := func() *GameState {
		s := NewGameState("gate", Stats{Health: 10, MaxHealth: 10})
		s.RunID = "run-1"
		s.MarkVisited("gate")
		s.Flags["lantern_lit"] = true
		return &s
	}

	tests := []struct {
		name  string
		old   *GameState
		new   func() *GameState
		check func(t *testing.T, d *StateDiff)
	}{
		{
			name: "Initial Load (Old is Nil)",
			old:  nil,
			new:  base,
			check: func(t *testing.T, d *StateDiff) {
				if d == nil {
					t.Fatal("Diff() = nil, want full diff")
				}
				if d.CurrentSceneID == nil || *d.CurrentSceneID != "gate" {
					t.Errorf("CurrentSceneID = %v, want gate", d.CurrentSceneID)
				}
				if !reflect.DeepEqual(d.VisitedAppended, []string{"gate"}) {
					t.Errorf("VisitedAppended = %v", d.VisitedAppended)
				}
				if d.Flags["lantern_lit"] != true {
					t.Errorf("Flags = %v", d.Flags)
				}
			},
		},
		{
			name: "No Changes",
			old:  base(),
			new:  base,
			check: func(t *testing.T, d *StateDiff) {
				if d != nil {
					t.Errorf("Diff() = %+v, want nil", d)
				}
			},
		},
		{
			name: "Scene Change Appends Visit",
			old:  base(),
			new: func() *GameState {
				s := base()
				s.CurrentSceneID = "chapel"
				s.MarkVisited("chapel")
				return s
			},
			check: func(t *testing.T, d *StateDiff) {
				if d == nil || d.CurrentSceneID == nil || *d.CurrentSceneID != "chapel" {
					t.Fatalf("CurrentSceneID not reported: %+v", d)
				}
				if !reflect.DeepEqual(d.VisitedAppended, []string{"chapel"}) {
					t.Errorf("VisitedAppended = %v", d.VisitedAppended)
				}
				if d.Player != nil {
					t.Errorf("Player should be unchanged, got %+v", d.Player)
				}
			},
		},
		{
			name: "Flag Deletion and Stat Change",
			old:  base(),
			new: func() *GameState {
				s := base()
				delete(s.Flags, "lantern_lit")
				s.Player.Health = 4
				return s
			},
			check: func(t *testing.T, d *StateDiff) {
				if d == nil {
					t.Fatal("Diff() = nil")
				}
				if v, ok := d.Flags["lantern_lit"]; !ok || v != nil {
					t.Errorf("expected lantern_lit deletion, got %v", d.Flags)
				}
				if d.Player == nil || d.Player.Health != 4 {
					t.Errorf("Player = %+v", d.Player)
				}
			},
		},
		{
			name: "Game Over",
			old:  base(),
			new: func() *GameState {
				s := base()
				s.GameOver = true
				s.GameOverReason = ReasonDeath
				return s
			},
			check: func(t *testing.T, d *StateDiff) {
				if d == nil || d.GameOver == nil || !*d.GameOver {
					t.Fatalf("GameOver not reported: %+v", d)
				}
				if d.Mode == nil || *d.Mode != ModeGameOver {
					t.Errorf("Mode = %v, want game_over", d.Mode)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, Diff(tt.old, tt.new()))
		})
	}
}

func TestDiffJSONSerialization(t *testing.T) {
	t.Run("Deletions as Null", func(t *testing.T) {
		s1 := NewGameState("gate", Stats{})
		s1.Flags["a"] = true
		s1.Flags["b"] = "x"
		s2 := s1.Clone()
		delete(s2.Flags, "b")

		diff := Diff(&s1, &s2)
		if diff == nil {
			t.Fatal("Expected diff, got nil")
		}

		bytes, _ := json.Marshal(diff)
		if !strings.Contains(string(bytes), `"b":null`) {
			t.Errorf("JSON should contain 'b':null for deletion, got: %s", string(bytes))
		}
		if strings.Contains(string(bytes), `"player"`) {
			t.Errorf("JSON should not contain unchanged player, got: %s", string(bytes))
		}
	})
}
