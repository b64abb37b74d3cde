package prompt

import "testing"

func TestScaledLimits_Scenarios(t *testing.T) {
	tests := []struct {
		pages            int
		wantKeyPoints    int
		wantParticipants int
	}{
		{pages: 1, wantKeyPoints: 5, wantParticipants: 5},
		{pages: 2, wantKeyPoints: 5, wantParticipants: 5},
		{pages: 3, wantKeyPoints: 5, wantParticipants: 5},
		{pages: 4, wantKeyPoints: 7, wantParticipants: 8},
		{pages: 10, wantKeyPoints: 9, wantParticipants: 12},
		{pages: 19, wantKeyPoints: 9, wantParticipants: 14},
		{pages: 20, wantKeyPoints: 12, wantParticipants: 15},
		{pages: 30, wantKeyPoints: 15, wantParticipants: 16},
		{pages: 100, wantKeyPoints: 15, wantParticipants: 16},
	}

	for _, tt := range tests {
		got := ScaledLimits(tt.pages)
		if got.MaxKeyPoints != tt.wantKeyPoints {
			t.Errorf("ScaledLimits(%d).MaxKeyPoints = %d, want %d", tt.pages, got.MaxKeyPoints, tt.wantKeyPoints)
		}
		if got.MaxParticipants != tt.wantParticipants {
			t.Errorf("ScaledLimits(%d).MaxParticipants = %d, want %d", tt.pages, got.MaxParticipants, tt.wantParticipants)
		}
	}
}

func TestScaledLimits_MonotonicAndBounded(t *testing.T) {
	prev := ScaledLimits(1)
	for pages := 2; pages <= 120; pages++ {
		cur := ScaledLimits(pages)

		if cur.MaxKeyPoints < prev.MaxKeyPoints {
			t.Fatalf("MaxKeyPoints decreased at %d pages: %d -> %d", pages, prev.MaxKeyPoints, cur.MaxKeyPoints)
		}
		if cur.MaxParticipants < prev.MaxParticipants {
			t.Fatalf("MaxParticipants decreased at %d pages: %d -> %d", pages, prev.MaxParticipants, cur.MaxParticipants)
		}
		if cur.MaxKeyPoints > KeyPointsCeiling {
			t.Fatalf("MaxKeyPoints exceeds ceiling at %d pages: %d", pages, cur.MaxKeyPoints)
		}
		if cur.MaxParticipants > ParticipantsCeiling {
			t.Fatalf("MaxParticipants exceeds ceiling at %d pages: %d", pages, cur.MaxParticipants)
		}

		prev = cur
	}
}
