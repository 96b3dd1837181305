package engine

import (
	"fmt"
	"strings"

	"commCoach/domain"
)

// FeedbackConfig partitions a smoothed score into three tiers. A value equal
// to a boundary belongs to the upper tier.
type FeedbackConfig struct {
	Poor float64 `yaml:"poor" json:"poor"`
	Good float64 `yaml:"good" json:"good"`

	PoorMessage      string `yaml:"poor_message" json:"poor_message"`
	GoodMessage      string `yaml:"good_message" json:"good_message"`
	ExcellentMessage string `yaml:"excellent_message" json:"excellent_message"`
}

type PostureConfig struct {
	MinScore        float64 `yaml:"min_score" json:"min_score"`
	MaxScore        float64 `yaml:"max_score" json:"max_score"`
	VariationFactor float64 `yaml:"variation_factor" json:"variation_factor"`
	NeutralBaseline float64 `yaml:"neutral_baseline" json:"neutral_baseline"`

	ShoulderThreshold float64 `yaml:"shoulder_threshold" json:"shoulder_threshold"`
	HipThreshold      float64 `yaml:"hip_threshold" json:"hip_threshold"`
	SpineThreshold    float64 `yaml:"spine_threshold" json:"spine_threshold"`
	PenaltyFactor     float64 `yaml:"penalty_factor" json:"penalty_factor"`

	// Bonus applied when the averaged sub-score clears GoodPostureFloor, and a
	// flat bonus for detecting a pose at all. Zero in the strict profile.
	GoodPostureFloor float64 `yaml:"good_posture_floor" json:"good_posture_floor"`
	GoodPostureBonus float64 `yaml:"good_posture_bonus" json:"good_posture_bonus"`
	DetectionBonus   float64 `yaml:"detection_bonus" json:"detection_bonus"`

	Feedback FeedbackConfig `yaml:"feedback_thresholds" json:"feedback_thresholds"`
}

type GestureConfig struct {
	MinScore        float64 `yaml:"min_score" json:"min_score"`
	MaxScore        float64 `yaml:"max_score" json:"max_score"`
	VariationFactor float64 `yaml:"variation_factor" json:"variation_factor"`
	NeutralBaseline float64 `yaml:"neutral_baseline" json:"neutral_baseline"`

	MovementThresholdLow  float64 `yaml:"movement_threshold_low" json:"movement_threshold_low"`
	MovementThresholdHigh float64 `yaml:"movement_threshold_high" json:"movement_threshold_high"`

	BandScoreLow    float64 `yaml:"band_score_low" json:"band_score_low"`
	BandScoreMedium float64 `yaml:"band_score_medium" json:"band_score_medium"`
	BandScoreHigh   float64 `yaml:"band_score_high" json:"band_score_high"`

	MultiHandBonus      float64 `yaml:"multi_hand_bonus" json:"multi_hand_bonus"`
	StationaryThreshold float64 `yaml:"stationary_threshold" json:"stationary_threshold"`
	StationaryPenalty   float64 `yaml:"stationary_penalty" json:"stationary_penalty"`

	Feedback FeedbackConfig `yaml:"feedback_thresholds" json:"feedback_thresholds"`
}

type EyeContactConfig struct {
	MinScore        float64 `yaml:"min_score" json:"min_score"`
	MaxScore        float64 `yaml:"max_score" json:"max_score"`
	VariationFactor float64 `yaml:"variation_factor" json:"variation_factor"`
	NeutralBaseline float64 `yaml:"neutral_baseline" json:"neutral_baseline"`

	// Normalized-distance bands from the frame center outwards.
	CenterTolerance float64 `yaml:"center_tolerance" json:"center_tolerance"`
	MidTolerance    float64 `yaml:"mid_tolerance" json:"mid_tolerance"`

	BandScoreCenter float64 `yaml:"band_score_center" json:"band_score_center"`
	BandScoreMid    float64 `yaml:"band_score_mid" json:"band_score_mid"`
	BandScoreOuter  float64 `yaml:"band_score_outer" json:"band_score_outer"`

	DetectionBonus float64 `yaml:"detection_bonus" json:"detection_bonus"`

	Feedback FeedbackConfig `yaml:"feedback_thresholds" json:"feedback_thresholds"`
}

// Weights for the overall combination. The combiner does not enforce that
// they sum to 1; the defaults keep that invariant by convention.
type Weights struct {
	Posture    float64 `yaml:"posture" json:"posture"`
	Gesture    float64 `yaml:"gesture" json:"gesture"`
	EyeContact float64 `yaml:"eye_contact" json:"eye_contact"`
}

type SmoothingConfig struct {
	Factor      float64 `yaml:"factor" json:"factor"`
	HistorySize int     `yaml:"history_size" json:"history_size"`
}

type BlinkConfig struct {
	EARThreshold    float64 `yaml:"ear_threshold" json:"ear_threshold"`
	DebounceSamples int     `yaml:"debounce_samples" json:"debounce_samples"`
	WindowSeconds   float64 `yaml:"window_seconds" json:"window_seconds"`
	// EAR assumed when the face or the eye contour points are missing.
	OpenEyeEAR float64 `yaml:"open_eye_ear" json:"open_eye_ear"`
}

// TierBand maps an overall mean at or above Min to a performance label.
// Bands are evaluated highest Min first, so they are closed-open by
// construction.
type TierBand struct {
	Min   float64 `yaml:"min" json:"min"`
	Label string  `yaml:"label" json:"label"`
}

type ReportMessages struct {
	Strengths       map[domain.MetricType]string `yaml:"strengths" json:"strengths"`
	Weaknesses      map[domain.MetricType]string `yaml:"weaknesses" json:"weaknesses"`
	Recommendations map[domain.MetricType]string `yaml:"recommendations" json:"recommendations"`
	Progress        map[domain.MetricType]string `yaml:"progress" json:"progress"`
	NextSteps       map[domain.MetricType]string `yaml:"next_steps" json:"next_steps"`

	OverallRecommendation string   `yaml:"overall_recommendation" json:"overall_recommendation"`
	NextStepsLowOverall   []string `yaml:"next_steps_low_overall" json:"next_steps_low_overall"`
	NextStepFinal         string   `yaml:"next_step_final" json:"next_step_final"`
}

type ReportConfig struct {
	// Mean at or above Strong → strength; mean below Weak → weakness.
	StrongThresholds map[domain.MetricType]float64 `yaml:"strong_thresholds" json:"strong_thresholds"`
	WeakThresholds   map[domain.MetricType]float64 `yaml:"weak_thresholds" json:"weak_thresholds"`
	// Mean below this → metric recommendation.
	RecommendThresholds map[domain.MetricType]float64 `yaml:"recommend_thresholds" json:"recommend_thresholds"`

	OverallFloor     float64 `yaml:"overall_floor" json:"overall_floor"`
	LowOverallGate   float64 `yaml:"low_overall_gate" json:"low_overall_gate"`
	ImprovementDelta float64 `yaml:"improvement_delta" json:"improvement_delta"`

	Tiers    []TierBand     `yaml:"tiers" json:"tiers"`
	Messages ReportMessages `yaml:"messages" json:"messages"`
}

// Config is the full calibration for one scoring profile.
type Config struct {
	Profile string `yaml:"profile" json:"profile"`

	Posture    PostureConfig    `yaml:"posture" json:"posture"`
	Gesture    GestureConfig    `yaml:"gesture" json:"gesture"`
	EyeContact EyeContactConfig `yaml:"eye_contact" json:"eye_contact"`

	Weights   Weights         `yaml:"weights" json:"weights"`
	Smoothing SmoothingConfig `yaml:"smoothing" json:"smoothing"`
	Blink     BlinkConfig     `yaml:"blink" json:"blink"`
	Report    ReportConfig    `yaml:"report" json:"report"`
}

// ConfigValidationError lists the patch keys rejected by a merge. The
// previous valid config is always retained for those keys.
type ConfigValidationError struct {
	Rejected []string
}

func (e *ConfigValidationError) Error() string {
	return fmt.Sprintf("rejected config keys: %s", strings.Join(e.Rejected, ", "))
}

// Validate checks the cross-field invariants the extractors and smoother
// depend on.
func (c Config) Validate() error {
	type bounds struct {
		name     string
		min, max float64
	}
	for _, b := range []bounds{
		{"posture", c.Posture.MinScore, c.Posture.MaxScore},
		{"gesture", c.Gesture.MinScore, c.Gesture.MaxScore},
		{"eye_contact", c.EyeContact.MinScore, c.EyeContact.MaxScore},
	} {
		if b.min < 0 || b.max > 100 || b.min > b.max {
			return fmt.Errorf("%s: invalid score bounds [%v, %v]", b.name, b.min, b.max)
		}
	}

	if c.Posture.ShoulderThreshold <= 0 || c.Posture.HipThreshold <= 0 || c.Posture.SpineThreshold <= 0 {
		return fmt.Errorf("posture: geometric thresholds must be positive")
	}
	if c.Gesture.MovementThresholdLow <= 0 || c.Gesture.MovementThresholdHigh <= c.Gesture.MovementThresholdLow {
		return fmt.Errorf("gesture: movement thresholds must be positive and ordered")
	}
	if c.EyeContact.CenterTolerance <= 0 || c.EyeContact.MidTolerance <= c.EyeContact.CenterTolerance {
		return fmt.Errorf("eye_contact: tolerance bands must be positive and ordered")
	}

	for _, v := range []float64{c.Posture.VariationFactor, c.Gesture.VariationFactor, c.EyeContact.VariationFactor} {
		if v < 0 {
			return fmt.Errorf("variation_factor must not be negative")
		}
	}

	for _, f := range []FeedbackConfig{c.Posture.Feedback, c.Gesture.Feedback, c.EyeContact.Feedback} {
		if f.Good < f.Poor {
			return fmt.Errorf("feedback thresholds must be ordered ascending")
		}
	}

	if c.Weights.Posture < 0 || c.Weights.Gesture < 0 || c.Weights.EyeContact < 0 {
		return fmt.Errorf("weights must not be negative")
	}

	if c.Smoothing.Factor <= 0 || c.Smoothing.Factor >= 1 {
		return fmt.Errorf("smoothing factor must be in (0, 1)")
	}
	if c.Smoothing.HistorySize < 1 {
		return fmt.Errorf("smoothing history size must be at least 1")
	}

	if c.Blink.EARThreshold <= 0 || c.Blink.DebounceSamples < 1 || c.Blink.WindowSeconds <= 0 {
		return fmt.Errorf("invalid blink detector parameters")
	}

	if len(c.Report.Tiers) == 0 {
		return fmt.Errorf("report tiers must not be empty")
	}
	for i := 1; i < len(c.Report.Tiers); i++ {
		if c.Report.Tiers[i].Min >= c.Report.Tiers[i-1].Min {
			return fmt.Errorf("report tiers must be ordered by descending min")
		}
	}

	return nil
}
