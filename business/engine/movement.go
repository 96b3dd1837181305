package engine

import (
	"math"

	"commCoach/domain"
)

// MovementTracker derives frame-to-frame displacement amplitudes for the
// hands (centroid of all detected hand landmarks) and the head (nose tip),
// keeping a trailing window of each signal.
type MovementTracker struct {
	windowSize int

	prevHand *[2]float64
	prevHead *[2]float64

	handHistory []float64
	headHistory []float64
}

func NewMovementTracker(windowSize int) *MovementTracker {
	if windowSize < 1 {
		windowSize = 1
	}
	return &MovementTracker{windowSize: windowSize}
}

func (t *MovementTracker) Process(frame domain.LandmarkFrame) (handMove, headMove float64) {
	handMove = t.trackHands(frame)
	headMove = t.trackHead(frame)

	t.handHistory = appendCapped(t.handHistory, handMove, t.windowSize)
	t.headHistory = appendCapped(t.headHistory, headMove, t.windowSize)
	return handMove, headMove
}

func (t *MovementTracker) trackHands(frame domain.LandmarkFrame) float64 {
	var sumX, sumY float64
	n := 0
	for _, hand := range frame.Hands {
		for _, p := range hand {
			if !validPoint(p) {
				continue
			}
			sumX += p.X
			sumY += p.Y
			n++
		}
	}

	if n == 0 {
		t.prevHand = nil
		return 0
	}

	center := [2]float64{sumX / float64(n), sumY / float64(n)}
	movement := 0.0
	if t.prevHand != nil {
		movement = math.Hypot(center[0]-t.prevHand[0], center[1]-t.prevHand[1])
	}
	t.prevHand = &center
	return movement
}

func (t *MovementTracker) trackHead(frame domain.LandmarkFrame) float64 {
	var pos [2]float64
	if p, ok := frame.Face[domain.FaceNoseTip]; ok && validPoint(p) {
		pos = [2]float64{p.X, p.Y}
	} else if len(frame.Pose) > domain.PoseNose && validPoint(frame.Pose[domain.PoseNose]) {
		pos = [2]float64{frame.Pose[domain.PoseNose].X, frame.Pose[domain.PoseNose].Y}
	} else {
		t.prevHead = nil
		return 0
	}

	movement := 0.0
	if t.prevHead != nil {
		movement = math.Hypot(pos[0]-t.prevHead[0], pos[1]-t.prevHead[1])
	}
	t.prevHead = &pos
	return movement
}

func (t *MovementTracker) TrailingHandAverage() float64 { return mean(t.handHistory) }
func (t *MovementTracker) TrailingHeadAverage() float64 { return mean(t.headHistory) }

func appendCapped(hist []float64, v float64, cap int) []float64 {
	hist = append(hist, v)
	if len(hist) > cap {
		hist = hist[len(hist)-cap:]
	}
	return hist
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
