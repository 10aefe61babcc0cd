package core

import (
	"errors"
	"fmt"
	"maps"
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/huangsam/aiready/schema"
)

// ErrInvalidConfig is returned when an AssessmentConfig is rejected before any computation.
var ErrInvalidConfig = errors.New("invalid assessment config")

// validate is safe for concurrent use and caches struct metadata.
var validate = validator.New()

// ResolvedConfig is an AssessmentConfig with every default applied and every value validated.
type ResolvedConfig struct {
	Thresholds         schema.AssessmentThresholds
	Weights            schema.DimensionWeights
	TargetScore        int
	NeutralScore       int
	AcceptableScores   map[schema.Dimension]int
	EffortModel        map[schema.Dimension]schema.EffortWeight
	PreviousAssessment *schema.AIReadinessAssessment
}

// ResolveConfig applies defaults to cfg and validates the result. A nil cfg resolves to the defaults.
func ResolveConfig(cfg *schema.AssessmentConfig) (*ResolvedConfig, error) {
	if cfg == nil {
		cfg = &schema.AssessmentConfig{}
	}

	resolved := &ResolvedConfig{
		Thresholds:         schema.DefaultThresholds(),
		TargetScore:        schema.DefaultTargetScore,
		NeutralScore:       schema.DefaultNeutralScore,
		AcceptableScores:   schema.GetDefaultAcceptableScores(),
		EffortModel:        schema.GetDefaultEffortModel(),
		PreviousAssessment: cfg.PreviousAssessment,
	}

	if cfg.Thresholds != nil {
		if err := validate.Struct(cfg.Thresholds); err != nil {
			return nil, fmt.Errorf("%w: thresholds: %w", ErrInvalidConfig, err)
		}
		resolved.Thresholds = *cfg.Thresholds
	}

	if cfg.TargetScore != nil {
		if err := checkScoreRange("target score", *cfg.TargetScore); err != nil {
			return nil, err
		}
		resolved.TargetScore = *cfg.TargetScore
	}

	if cfg.NeutralScore != nil {
		if err := checkScoreRange("neutral score", *cfg.NeutralScore); err != nil {
			return nil, err
		}
		resolved.NeutralScore = *cfg.NeutralScore
	}

	weights, err := ResolveWeights(cfg.Weights)
	if err != nil {
		return nil, err
	}
	resolved.Weights = weights

	for d, score := range cfg.AcceptableScores {
		if _, ok := schema.ValidDimensions[d]; !ok {
			return nil, fmt.Errorf("%w: unknown dimension %q in acceptable scores", ErrInvalidConfig, d)
		}
		if err := checkScoreRange(fmt.Sprintf("acceptable score for %s", d), score); err != nil {
			return nil, err
		}
		resolved.AcceptableScores[d] = score
	}

	for d, ew := range cfg.EffortModel {
		if _, ok := schema.ValidDimensions[d]; !ok {
			return nil, fmt.Errorf("%w: unknown dimension %q in effort model", ErrInvalidConfig, d)
		}
		if ew.BaseHours < 0 || ew.PerItemHours < 0 || math.IsNaN(ew.BaseHours) || math.IsNaN(ew.PerItemHours) {
			return nil, fmt.Errorf("%w: effort hours for %s must be non-negative", ErrInvalidConfig, d)
		}
		resolved.EffortModel[d] = ew
	}

	return resolved, nil
}

// ResolveWeights validates a weight table and fills in missing dimensions.
//
// An empty table selects the defaults. A complete table must sum to 1.0 within
// schema.WeightSumTolerance. A partial table is merged over the defaults and the
// result is divided by its total so it sums to 1.0.
func ResolveWeights(weights schema.DimensionWeights) (schema.DimensionWeights, error) {
	defaults := schema.GetDefaultWeights()
	if len(weights) == 0 {
		return defaults, nil
	}

	supplied := 0.0
	for d, w := range weights {
		if _, ok := schema.ValidDimensions[d]; !ok {
			return nil, fmt.Errorf("%w: unknown dimension %q in weights", ErrInvalidConfig, d)
		}
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("%w: weight for %s must be a non-negative number, got %v", ErrInvalidConfig, d, w)
		}
		supplied += w
	}

	if len(weights) == len(schema.AllDimensions) {
		if math.Abs(supplied-1) > schema.WeightSumTolerance {
			return nil, fmt.Errorf("%w: weights must sum to 1.0, got %.6f", ErrInvalidConfig, supplied)
		}
		return weights.Clone(), nil
	}

	merged := defaults.Clone()
	maps.Copy(merged, weights)
	total := merged.Sum()
	if total <= 0 {
		return nil, fmt.Errorf("%w: weights must not all be zero", ErrInvalidConfig)
	}
	for d, w := range merged {
		merged[d] = w / total
	}
	return merged, nil
}

// checkScoreRange rejects scores outside [0,100].
func checkScoreRange(name string, score int) error {
	if score < 0 || score > 100 {
		return fmt.Errorf("%w: %s must be between 0 and 100, got %d", ErrInvalidConfig, name, score)
	}
	return nil
}
