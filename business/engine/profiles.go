package engine

import (
	"fmt"
	"os"

	"commCoach/domain"

	"gopkg.in/yaml.v3"
)

const (
	ProfileGenerous = "generous"
	ProfileStrict   = "strict"
)

func defaultFeedbackMessages(metric domain.MetricType) (poor, good, excellent string) {
	switch metric {
	case domain.MetricPosture:
		return "Keep your back straight and align your shoulders",
			"Slightly improve your shoulder alignment",
			"Excellent posture!"
	case domain.MetricGesture:
		return "Use more hand gestures for expressiveness",
			"Vary your gestures for more impact",
			"Very expressive gestures!"
	default:
		return "Look at the camera more - keep eye contact",
			"Keep your eye contact consistent",
			"Perfect eye contact!"
	}
}

func defaultReportConfig() ReportConfig {
	return ReportConfig{
		StrongThresholds: map[domain.MetricType]float64{
			domain.MetricPosture:    75,
			domain.MetricGesture:    60,
			domain.MetricEyeContact: 75,
		},
		WeakThresholds: map[domain.MetricType]float64{
			domain.MetricPosture:    50,
			domain.MetricGesture:    40,
			domain.MetricEyeContact: 50,
		},
		RecommendThresholds: map[domain.MetricType]float64{
			domain.MetricPosture:    70,
			domain.MetricGesture:    50,
			domain.MetricEyeContact: 60,
		},
		OverallFloor:     60,
		LowOverallGate:   70,
		ImprovementDelta: 5,
		Tiers: []TierBand{
			{Min: 85, Label: "Excellent"},
			{Min: 70, Label: "Good"},
			{Min: 55, Label: "Fair"},
			{Min: 0, Label: "Needs improvement"},
		},
		Messages: ReportMessages{
			Strengths: map[domain.MetricType]string{
				domain.MetricPosture:    "Upright and well-aligned posture",
				domain.MetricGesture:    "Expressive use of gestures",
				domain.MetricEyeContact: "Excellent eye contact",
			},
			Weaknesses: map[domain.MetricType]string{
				domain.MetricPosture:    "Posture needs improvement",
				domain.MetricGesture:    "Limited gestures",
				domain.MetricEyeContact: "Inconsistent eye contact",
			},
			Recommendations: map[domain.MetricType]string{
				domain.MetricPosture:    "Practice keeping your shoulders aligned and your spine upright",
				domain.MetricGesture:    "Use more hand gestures to emphasize important points",
				domain.MetricEyeContact: "Keep direct eye contact with the camera or audience",
			},
			Progress: map[domain.MetricType]string{
				domain.MetricPosture:    "Improved significantly in posture",
				domain.MetricGesture:    "Improved significantly in gestures",
				domain.MetricEyeContact: "Improved significantly in eye contact",
			},
			NextSteps: map[domain.MetricType]string{
				domain.MetricPosture:    "Practice posture exercises",
				domain.MetricGesture:    "Train specific gestures for different presentation styles",
				domain.MetricEyeContact: "Practice looking at different points of the audience",
			},
			OverallRecommendation: "Consider practicing public speaking techniques",
			NextStepsLowOverall: []string{
				"Practice for 10-15 minutes daily",
				"Consider a public speaking course",
			},
			NextStepFinal: "Schedule a new analysis session in one week",
		},
	}
}

// GenerousConfig is the lenient demo-polish profile: tolerant thresholds,
// detection bonuses, and narrow clamp bands that keep scores flattering.
func GenerousConfig() Config {
	cfg := Config{
		Profile: ProfileGenerous,
		Posture: PostureConfig{
			MinScore:          50,
			MaxScore:          98,
			VariationFactor:   0.5,
			NeutralBaseline:   75,
			ShoulderThreshold: 0.18,
			HipThreshold:      0.15,
			SpineThreshold:    0.10,
			PenaltyFactor:     30,
			GoodPostureFloor:  50,
			GoodPostureBonus:  15,
			DetectionBonus:    10,
			Feedback:          FeedbackConfig{Poor: 40, Good: 65},
		},
		Gesture: GestureConfig{
			MinScore:              60,
			MaxScore:              95,
			VariationFactor:       0.5,
			NeutralBaseline:       80,
			MovementThresholdLow:  0.005,
			MovementThresholdHigh: 0.01,
			BandScoreLow:          75,
			BandScoreMedium:       85,
			BandScoreHigh:         95,
			MultiHandBonus:        20,
			StationaryThreshold:   0.002,
			StationaryPenalty:     10,
			Feedback:              FeedbackConfig{Poor: 45, Good: 70},
		},
		EyeContact: EyeContactConfig{
			MinScore:        70,
			MaxScore:        95,
			VariationFactor: 0.5,
			NeutralBaseline: 80,
			CenterTolerance: 0.5,
			MidTolerance:    0.7,
			BandScoreCenter: 98,
			BandScoreMid:    90,
			BandScoreOuter:  80,
			DetectionBonus:  15,
			Feedback:        FeedbackConfig{Poor: 50, Good: 75},
		},
		Weights:   Weights{Posture: 0.35, Gesture: 0.30, EyeContact: 0.35},
		Smoothing: SmoothingConfig{Factor: 0.7, HistorySize: 20},
		Blink:     BlinkConfig{EARThreshold: 0.25, DebounceSamples: 2, WindowSeconds: 30, OpenEyeEAR: 0.3},
		Report:    defaultReportConfig(),
	}
	fillFeedbackMessages(&cfg)
	return cfg
}

// StrictConfig is the trained-thresholds profile: full 0-100 clamp, steeper
// penalties, and no detection bonuses.
func StrictConfig() Config {
	cfg := Config{
		Profile: ProfileStrict,
		Posture: PostureConfig{
			MinScore:          0,
			MaxScore:          100,
			VariationFactor:   3,
			NeutralBaseline:   50,
			ShoulderThreshold: 0.15,
			HipThreshold:      0.15,
			SpineThreshold:    0.30,
			PenaltyFactor:     30,
			GoodPostureFloor:  0,
			GoodPostureBonus:  0,
			DetectionBonus:    0,
			Feedback:          FeedbackConfig{Poor: 50, Good: 75},
		},
		Gesture: GestureConfig{
			MinScore:              0,
			MaxScore:              100,
			VariationFactor:       2,
			NeutralBaseline:       30,
			MovementThresholdLow:  0.05,
			MovementThresholdHigh: 0.10,
			BandScoreLow:          10,
			BandScoreMedium:       30,
			BandScoreHigh:         50,
			MultiHandBonus:        0,
			StationaryThreshold:   0.01,
			StationaryPenalty:     5,
			Feedback:              FeedbackConfig{Poor: 50, Good: 75},
		},
		EyeContact: EyeContactConfig{
			MinScore:        0,
			MaxScore:        100,
			VariationFactor: 3,
			NeutralBaseline: 40,
			CenterTolerance: 0.3,
			MidTolerance:    0.6,
			BandScoreCenter: 90,
			BandScoreMid:    60,
			BandScoreOuter:  30,
			DetectionBonus:  0,
			Feedback:        FeedbackConfig{Poor: 50, Good: 75},
		},
		Weights:   Weights{Posture: 0.35, Gesture: 0.30, EyeContact: 0.35},
		Smoothing: SmoothingConfig{Factor: 0.7, HistorySize: 20},
		Blink:     BlinkConfig{EARThreshold: 0.25, DebounceSamples: 2, WindowSeconds: 30, OpenEyeEAR: 0.3},
		Report:    defaultReportConfig(),
	}
	fillFeedbackMessages(&cfg)
	return cfg
}

func fillFeedbackMessages(cfg *Config) {
	p, g, e := defaultFeedbackMessages(domain.MetricPosture)
	cfg.Posture.Feedback.PoorMessage, cfg.Posture.Feedback.GoodMessage, cfg.Posture.Feedback.ExcellentMessage = p, g, e
	p, g, e = defaultFeedbackMessages(domain.MetricGesture)
	cfg.Gesture.Feedback.PoorMessage, cfg.Gesture.Feedback.GoodMessage, cfg.Gesture.Feedback.ExcellentMessage = p, g, e
	p, g, e = defaultFeedbackMessages(domain.MetricEyeContact)
	cfg.EyeContact.Feedback.PoorMessage, cfg.EyeContact.Feedback.GoodMessage, cfg.EyeContact.Feedback.ExcellentMessage = p, g, e
}

// LoadProfile resolves a named profile, starting from the compiled-in
// defaults and replacing them with a profile of the same name from the YAML
// file at path, if given.
func LoadProfile(name, path string) (Config, error) {
	var cfg Config
	switch name {
	case ProfileGenerous:
		cfg = GenerousConfig()
	case ProfileStrict:
		cfg = StrictConfig()
	default:
		if path == "" {
			return Config{}, fmt.Errorf("unknown scoring profile %q", name)
		}
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read profiles file: %w", err)
		}

		var file struct {
			Profiles map[string]Config `yaml:"profiles"`
		}
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return Config{}, fmt.Errorf("parse profiles file: %w", err)
		}

		if override, ok := file.Profiles[name]; ok {
			override.Profile = name
			cfg = override
		} else if cfg.Profile == "" {
			return Config{}, fmt.Errorf("profile %q not found in %s", name, path)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("profile %q: %w", name, err)
	}

	return cfg, nil
}
