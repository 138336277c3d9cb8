package services

import (
	"testing"

	"github.com/terraincognita07/titanlift/internal/models"
)

func float64Ptr(value float64) *float64 { return &value }

func int64Ptr(value int64) *int64 { return &value }

func TestBuildLeaderboardViewPodiumOrder(t *testing.T) {
	entries := []models.LeaderboardEntry{
		{Username: "alpha", TotalVolumeKG: float64Ptr(30000), Rank: int64Ptr(1)},
		{Username: "bravo", TotalVolumeKG: float64Ptr(20000), Rank: int64Ptr(2)},
		{Username: "charlie", TotalVolumeKG: float64Ptr(10000), Rank: int64Ptr(3)},
		{Username: "delta", TotalVolumeKG: float64Ptr(5000), Rank: int64Ptr(4)},
		{Username: "echo", TotalVolumeKG: float64Ptr(1000), Rank: int64Ptr(5)},
	}

	view := BuildLeaderboardView(entries)
	if view.Empty {
		t.Fatalf("expected non-empty leaderboard")
	}
	if len(view.Podium) != 3 {
		t.Fatalf("expected 3 podium entries, got %d", len(view.Podium))
	}
	order := []string{view.Podium[0].Username, view.Podium[1].Username, view.Podium[2].Username}
	if order[0] != "bravo" || order[1] != "alpha" || order[2] != "charlie" {
		t.Fatalf("expected podium order bravo, alpha, charlie, got %v", order)
	}
	if len(view.Rest) != 2 || view.Rest[0].Username != "delta" || view.Rest[1].Rank != 5 {
		t.Fatalf("unexpected rest list: %+v", view.Rest)
	}
	if view.Podium[1].Volume != "30.0t" {
		t.Fatalf("expected 30.0t, got %q", view.Podium[1].Volume)
	}
}

func TestBuildLeaderboardViewSmallLists(t *testing.T) {
	view := BuildLeaderboardView([]models.LeaderboardEntry{{Username: "solo"}})
	if len(view.Podium) != 1 || view.Podium[0].Username != "solo" {
		t.Fatalf("expected single podium entry, got %+v", view.Podium)
	}
	if len(view.Rest) != 0 {
		t.Fatalf("expected empty rest, got %+v", view.Rest)
	}

	view = BuildLeaderboardView([]models.LeaderboardEntry{{Username: "one"}, {Username: "two"}})
	if len(view.Podium) != 2 || view.Podium[0].Username != "two" || view.Podium[1].Username != "one" {
		t.Fatalf("expected podium two, one, got %+v", view.Podium)
	}

	view = BuildLeaderboardView(nil)
	if !view.Empty || len(view.Podium) != 0 || len(view.Rest) != 0 {
		t.Fatalf("expected empty view, got %+v", view)
	}
}

func TestBuildLeaderboardViewFallbacks(t *testing.T) {
	view := BuildLeaderboardView([]models.LeaderboardEntry{{Username: "a"}, {Username: "b"}, {Username: "c"}, {Username: "nullish"}})

	entry := view.Rest[0]
	if entry.Volume != "0.0t" {
		t.Fatalf("expected missing volume to render 0.0t, got %q", entry.Volume)
	}
	if entry.Rank != 4 {
		t.Fatalf("expected missing rank to fall back to position 4, got %d", entry.Rank)
	}
}

func TestInitials(t *testing.T) {
	tests := map[string]string{
		"titan":  "TI",
		"x":      "X",
		"":       "",
		"élodie": "ÉL",
	}
	for input, want := range tests {
		if got := Initials(input); got != want {
			t.Fatalf("Initials(%q) = %q, want %q", input, got, want)
		}
	}
}
