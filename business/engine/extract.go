package engine

import (
	"math"

	"commCoach/domain"
	"commCoach/pkg/logger"
)

// The extractors are pure aside from reading their config: one landmark frame
// in, one unbounded raw score out. Missing or malformed landmark sets degrade
// to the configured neutral baseline, never to an error.

func validPoint(p domain.Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) &&
		!math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// subScore maps a geometric deviation against its tolerance threshold into a
// 0-100 sub-score: max(0, 100 - (measured/threshold) * penalty).
func subScore(measured, threshold, penalty float64) float64 {
	if threshold <= 0 {
		return 0
	}
	return math.Max(0, 100-(measured/threshold)*penalty)
}

func extractPosture(cfg PostureConfig, frame domain.LandmarkFrame) float64 {
	if len(frame.Pose) < domain.PoseLandmarkCount {
		if len(frame.Pose) > 0 {
			logger.Debug("posture: malformed pose set", "points", len(frame.Pose))
		}
		return cfg.NeutralBaseline
	}

	ls := frame.Pose[domain.PoseLeftShoulder]
	rs := frame.Pose[domain.PoseRightShoulder]
	lh := frame.Pose[domain.PoseLeftHip]
	rh := frame.Pose[domain.PoseRightHip]

	if !validPoint(ls) || !validPoint(rs) || !validPoint(lh) || !validPoint(rh) {
		logger.Debug("posture: non-numeric landmark values")
		return cfg.NeutralBaseline
	}

	shoulderTilt := math.Abs(ls.Y - rs.Y)
	hipTilt := math.Abs(lh.Y - rh.Y)
	spineAlignment := math.Abs((ls.Y+rs.Y)/2 - (lh.Y+rh.Y)/2)

	shoulderScore := subScore(shoulderTilt, cfg.ShoulderThreshold, cfg.PenaltyFactor)
	hipScore := subScore(hipTilt, cfg.HipThreshold, cfg.PenaltyFactor)
	spineScore := subScore(spineAlignment, cfg.SpineThreshold, cfg.PenaltyFactor)

	raw := (shoulderScore + hipScore + spineScore) / 3

	if raw > cfg.GoodPostureFloor {
		raw += cfg.GoodPostureBonus
	}
	raw += cfg.DetectionBonus

	return raw
}

// handMovement is the mean absolute vertical offset between the wrist and
// three fingertips, a proxy for how actively the hand is being used.
func handMovement(hand []domain.Point) (float64, bool) {
	wrist := hand[domain.HandWrist]
	tips := []domain.Point{
		hand[domain.HandThumbTip],
		hand[domain.HandIndexTip],
		hand[domain.HandMiddleTip],
	}

	if !validPoint(wrist) {
		return 0, false
	}

	total := 0.0
	for _, tip := range tips {
		if !validPoint(tip) {
			return 0, false
		}
		total += math.Abs(wrist.Y - tip.Y)
	}
	return total / float64(len(tips)), true
}

func extractGesture(cfg GestureConfig, frame domain.LandmarkFrame) float64 {
	var movements []float64
	for _, hand := range frame.Hands {
		if len(hand) < domain.HandLandmarkCount {
			logger.Debug("gesture: malformed hand set", "points", len(hand))
			continue
		}
		if m, ok := handMovement(hand); ok {
			movements = append(movements, m)
		}
	}

	if len(movements) == 0 {
		return cfg.NeutralBaseline
	}

	movement := 0.0
	for _, m := range movements {
		movement += m
	}
	movement /= float64(len(movements))

	var raw float64
	switch {
	case movement > cfg.MovementThresholdHigh:
		raw = cfg.BandScoreHigh
	case movement > cfg.MovementThresholdLow:
		raw = cfg.BandScoreMedium
	default:
		raw = cfg.BandScoreLow
	}

	if len(movements) >= 2 {
		raw += cfg.MultiHandBonus
	}
	if movement < cfg.StationaryThreshold {
		raw -= cfg.StationaryPenalty
	}

	return raw
}

const (
	defaultFrameWidth  = 640
	defaultFrameHeight = 480
)

func extractEyeContact(cfg EyeContactConfig, frame domain.LandmarkFrame) float64 {
	left, lok := frame.Face[domain.FaceRightEyeOuter]
	right, rok := frame.Face[domain.FaceRightEyeInner]
	if !lok || !rok || !validPoint(left) || !validPoint(right) {
		return cfg.NeutralBaseline
	}

	w := float64(frame.Width)
	h := float64(frame.Height)
	if w <= 0 || h <= 0 {
		w, h = defaultFrameWidth, defaultFrameHeight
	}

	centerX := w / 2
	centerY := h / 2
	eyeX := (left.X + right.X) / 2 * w
	eyeY := (left.Y + right.Y) / 2 * h

	distance := math.Hypot(eyeX-centerX, eyeY-centerY)
	maxDistance := math.Hypot(centerX, centerY)
	if maxDistance == 0 {
		return cfg.NeutralBaseline
	}
	normalized := distance / maxDistance

	var raw float64
	switch {
	case normalized < cfg.CenterTolerance:
		raw = cfg.BandScoreCenter
	case normalized < cfg.MidTolerance:
		raw = cfg.BandScoreMid
	default:
		raw = cfg.BandScoreOuter
	}

	raw += cfg.DetectionBonus

	return raw
}
