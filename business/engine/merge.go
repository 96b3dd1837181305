package engine

import (
	"fmt"
	"sort"
)

// ConfigPatch is a partial calibration update: section → key → value.
// Unspecified keys retain their previous values.
//
//	{"posture": {"min_score": 40}, "smoothing": {"factor": 0.6}}
type ConfigPatch map[string]map[string]float64

// Merge applies patch onto base one key at a time, in deterministic order.
// A key whose value would violate the config invariants is rejected and the
// previous value kept; all rejections are reported together. The returned
// config is always valid.
func Merge(base Config, patch ConfigPatch) (Config, *ConfigValidationError) {
	merged := base
	var rejected []string

	sections := make([]string, 0, len(patch))
	for s := range patch {
		sections = append(sections, s)
	}
	sort.Strings(sections)

	for _, section := range sections {
		keys := make([]string, 0, len(patch[section]))
		for k := range patch[section] {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, key := range keys {
			candidate := merged
			if err := candidate.applyKey(section, key, patch[section][key]); err != nil {
				rejected = append(rejected, section+"."+key)
				continue
			}
			if err := candidate.Validate(); err != nil {
				rejected = append(rejected, section+"."+key)
				continue
			}
			merged = candidate
		}
	}

	if len(rejected) > 0 {
		return merged, &ConfigValidationError{Rejected: rejected}
	}
	return merged, nil
}

func (c *Config) applyKey(section, key string, v float64) error {
	switch section {
	case "posture":
		return applyMetricKey(key, v, metricFields{
			min: &c.Posture.MinScore, max: &c.Posture.MaxScore,
			variation: &c.Posture.VariationFactor, baseline: &c.Posture.NeutralBaseline,
			poor: &c.Posture.Feedback.Poor, good: &c.Posture.Feedback.Good,
			extra: map[string]*float64{
				"shoulder_threshold": &c.Posture.ShoulderThreshold,
				"hip_threshold":      &c.Posture.HipThreshold,
				"spine_threshold":    &c.Posture.SpineThreshold,
				"penalty_factor":     &c.Posture.PenaltyFactor,
				"good_posture_bonus": &c.Posture.GoodPostureBonus,
				"detection_bonus":    &c.Posture.DetectionBonus,
			},
		})
	case "gesture":
		return applyMetricKey(key, v, metricFields{
			min: &c.Gesture.MinScore, max: &c.Gesture.MaxScore,
			variation: &c.Gesture.VariationFactor, baseline: &c.Gesture.NeutralBaseline,
			poor: &c.Gesture.Feedback.Poor, good: &c.Gesture.Feedback.Good,
			extra: map[string]*float64{
				"movement_threshold_low":  &c.Gesture.MovementThresholdLow,
				"movement_threshold_high": &c.Gesture.MovementThresholdHigh,
				"multi_hand_bonus":        &c.Gesture.MultiHandBonus,
				"stationary_threshold":    &c.Gesture.StationaryThreshold,
				"stationary_penalty":      &c.Gesture.StationaryPenalty,
			},
		})
	case "eye_contact":
		return applyMetricKey(key, v, metricFields{
			min: &c.EyeContact.MinScore, max: &c.EyeContact.MaxScore,
			variation: &c.EyeContact.VariationFactor, baseline: &c.EyeContact.NeutralBaseline,
			poor: &c.EyeContact.Feedback.Poor, good: &c.EyeContact.Feedback.Good,
			extra: map[string]*float64{
				"center_tolerance": &c.EyeContact.CenterTolerance,
				"mid_tolerance":    &c.EyeContact.MidTolerance,
				"detection_bonus":  &c.EyeContact.DetectionBonus,
			},
		})
	case "weights":
		switch key {
		case "posture":
			c.Weights.Posture = v
		case "gesture":
			c.Weights.Gesture = v
		case "eye_contact":
			c.Weights.EyeContact = v
		default:
			return fmt.Errorf("unknown weights key %q", key)
		}
		return nil
	case "smoothing":
		switch key {
		case "factor":
			c.Smoothing.Factor = v
		case "history_size":
			c.Smoothing.HistorySize = int(v)
		default:
			return fmt.Errorf("unknown smoothing key %q", key)
		}
		return nil
	case "blink":
		switch key {
		case "ear_threshold":
			c.Blink.EARThreshold = v
		case "debounce_samples":
			c.Blink.DebounceSamples = int(v)
		case "window_seconds":
			c.Blink.WindowSeconds = v
		case "open_eye_ear":
			c.Blink.OpenEyeEAR = v
		default:
			return fmt.Errorf("unknown blink key %q", key)
		}
		return nil
	default:
		return fmt.Errorf("unknown config section %q", section)
	}
}

type metricFields struct {
	min, max, variation, baseline *float64
	poor, good                    *float64
	extra                         map[string]*float64
}

func applyMetricKey(key string, v float64, f metricFields) error {
	switch key {
	case "min_score":
		*f.min = v
	case "max_score":
		*f.max = v
	case "variation_factor":
		*f.variation = v
	case "neutral_baseline":
		*f.baseline = v
	case "feedback_poor":
		*f.poor = v
	case "feedback_good":
		*f.good = v
	default:
		ptr, ok := f.extra[key]
		if !ok {
			return fmt.Errorf("unknown metric key %q", key)
		}
		*ptr = v
	}
	return nil
}
