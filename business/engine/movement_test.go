package engine

import (
	"testing"

	"commCoach/domain"
)

func handAt(x, y float64) []domain.Point {
	hand := make([]domain.Point, domain.HandLandmarkCount)
	for i := range hand {
		hand[i] = domain.Point{X: x, Y: y}
	}
	return hand
}

func TestMovementTrackerHandDisplacement(t *testing.T) {
	tr := NewMovementTracker(10)

	// first sighting has no previous position
	move, _ := tr.Process(domain.LandmarkFrame{Hands: [][]domain.Point{handAt(0.5, 0.5)}})
	if move != 0 {
		t.Fatalf("first frame movement = %v, want 0", move)
	}

	// centroid shifted 0.1 in x
	move, _ = tr.Process(domain.LandmarkFrame{Hands: [][]domain.Point{handAt(0.6, 0.5)}})
	if !almostEqual(move, 0.1) {
		t.Fatalf("movement = %v, want 0.1", move)
	}

	if avg := tr.TrailingHandAverage(); !almostEqual(avg, 0.05) {
		t.Fatalf("trailing average = %v, want 0.05", avg)
	}
}

func TestMovementTrackerResetsOnLostHands(t *testing.T) {
	tr := NewMovementTracker(10)

	tr.Process(domain.LandmarkFrame{Hands: [][]domain.Point{handAt(0.5, 0.5)}})
	tr.Process(domain.LandmarkFrame{}) // hands lost

	// reacquisition must not produce a spurious jump
	move, _ := tr.Process(domain.LandmarkFrame{Hands: [][]domain.Point{handAt(0.9, 0.9)}})
	if move != 0 {
		t.Fatalf("movement after reacquisition = %v, want 0", move)
	}
}

func TestMovementTrackerHeadPrefersFace(t *testing.T) {
	tr := NewMovementTracker(10)

	faceFrame := func(x float64) domain.LandmarkFrame {
		return domain.LandmarkFrame{
			Face: map[int]domain.Point{domain.FaceNoseTip: {X: x, Y: 0.5}},
		}
	}

	tr.Process(faceFrame(0.5))
	_, head := tr.Process(faceFrame(0.52))
	if !almostEqual(head, 0.02) {
		t.Fatalf("head movement = %v, want 0.02", head)
	}
}

func TestMovementTrackerHeadFallsBackToPose(t *testing.T) {
	tr := NewMovementTracker(10)

	poseFrame := func(x float64) domain.LandmarkFrame {
		pose := levelPose()
		pose[domain.PoseNose] = domain.Point{X: x, Y: 0.5}
		return domain.LandmarkFrame{Pose: pose}
	}

	tr.Process(poseFrame(0.5))
	_, head := tr.Process(poseFrame(0.53))
	if !almostEqual(head, 0.03) {
		t.Fatalf("head movement = %v, want 0.03", head)
	}
}

func TestNoiseDisabledAtZeroFactor(t *testing.T) {
	n := NewNoise(1)
	for i := 0; i < 100; i++ {
		if got := n.Apply(50, 0); got != 50 {
			t.Fatalf("Apply with zero factor = %v, want passthrough", got)
		}
	}
}

func TestNoiseSeededReproducibility(t *testing.T) {
	a := NewNoise(99)
	b := NewNoise(99)
	for i := 0; i < 100; i++ {
		if a.Apply(50, 2) != b.Apply(50, 2) {
			t.Fatal("same seed produced different jitter")
		}
	}
}
