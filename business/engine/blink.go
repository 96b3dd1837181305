package engine

import (
	"math"
	"time"

	"commCoach/domain"
)

// BlinkDetector is a two-state machine over the eye aspect ratio signal.
// A closed→open transition counts as one blink only when the eyes stayed
// closed for at least the debounce minimum; shorter dips are measurement
// noise and discarded.
type BlinkDetector struct {
	cfg BlinkConfig

	closed        bool
	closedSamples int
	blinkTimes    []time.Time
	totalBlinks   int
}

func NewBlinkDetector(cfg BlinkConfig) *BlinkDetector {
	return &BlinkDetector{cfg: cfg}
}

// eyeAspectRatio computes (‖p2−p6‖ + ‖p3−p5‖) / (2·‖p1−p4‖) over one eye's
// six contour points in pixel space. Degenerate geometry falls back to the
// configured open-eye constant.
func (d *BlinkDetector) eyeAspectRatio(face map[int]domain.Point, indices [6]int, w, h float64) (float64, bool) {
	var pts [6]struct{ x, y float64 }
	for i, idx := range indices {
		p, ok := face[idx]
		if !ok || !validPoint(p) {
			return d.cfg.OpenEyeEAR, false
		}
		pts[i].x = p.X * w
		pts[i].y = p.Y * h
	}

	v1 := math.Hypot(pts[1].x-pts[5].x, pts[1].y-pts[5].y)
	v2 := math.Hypot(pts[2].x-pts[4].x, pts[2].y-pts[4].y)
	horiz := math.Hypot(pts[0].x-pts[3].x, pts[0].y-pts[3].y)

	if horiz == 0 {
		return d.cfg.OpenEyeEAR, false
	}
	return (v1 + v2) / (2 * horiz), true
}

// Process feeds one frame's face landmarks into the state machine and
// reports the averaged EAR plus whether a blink completed on this sample.
func (d *BlinkDetector) Process(frame domain.LandmarkFrame, now time.Time) (float64, bool) {
	w := float64(frame.Width)
	h := float64(frame.Height)
	if w <= 0 || h <= 0 {
		w, h = defaultFrameWidth, defaultFrameHeight
	}

	leftEAR, lok := d.eyeAspectRatio(frame.Face, domain.LeftEyeEARIndices, w, h)
	rightEAR, rok := d.eyeAspectRatio(frame.Face, domain.RightEyeEARIndices, w, h)

	// No usable eye contours: hold state, no transition.
	if !lok && !rok {
		d.prune(now)
		return d.cfg.OpenEyeEAR, false
	}

	ear := (leftEAR + rightEAR) / 2

	blinked := false
	if ear < d.cfg.EARThreshold {
		if !d.closed {
			d.closed = true
			d.closedSamples = 0
		}
		d.closedSamples++
	} else if d.closed {
		if d.closedSamples >= d.cfg.DebounceSamples {
			d.blinkTimes = append(d.blinkTimes, now)
			d.totalBlinks++
			blinked = true
		}
		d.closed = false
		d.closedSamples = 0
	}

	d.prune(now)
	return ear, blinked
}

func (d *BlinkDetector) prune(now time.Time) {
	cutoff := now.Add(-time.Duration(d.cfg.WindowSeconds * float64(time.Second)))
	kept := d.blinkTimes[:0]
	for _, t := range d.blinkTimes {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	d.blinkTimes = kept
}

// Rate returns the trailing blink rate in blinks per minute.
func (d *BlinkDetector) Rate() float64 {
	if d.cfg.WindowSeconds <= 0 {
		return 0
	}
	return float64(len(d.blinkTimes)) / d.cfg.WindowSeconds * 60
}

// TotalBlinks is the lifetime blink count for the session.
func (d *BlinkDetector) TotalBlinks() int {
	return d.totalBlinks
}
