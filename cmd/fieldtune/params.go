// Package main provides CMA-ES tuning for activation field parameters
// that sustain an integrated, non-saturated field.
package main

import (
	"github.com/encom-labs/gridsim/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable field parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "decay", Path: "field.decay", Min: 0.80, Max: 0.995, Default: 0.95},
			{Name: "threshold", Path: "field.threshold", Min: 0.2, Max: 0.8, Default: 0.5},
			{Name: "self_weight", Path: "field.self_weight", Min: 0.5, Max: 0.95, Default: 0.7},
			{Name: "broadcast_gain", Path: "field.broadcast_gain", Min: 0.05, Max: 0.5, Default: 0.2},
			{Name: "local_prob", Path: "field.local_prob", Min: 0.3, Max: 0.9, Default: 0.7},
			{Name: "long_prob", Path: "field.long_prob", Min: 0.01, Max: 0.2, Default: 0.05},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	cfg.Field.Decay = clamped[0]
	cfg.Field.Threshold = clamped[1]
	cfg.Field.SelfWeight = clamped[2]
	cfg.Field.BroadcastGain = clamped[3]
	cfg.Field.LocalProb = clamped[4]
	cfg.Field.LongProb = clamped[5]
}

// ExtractFromConfig extracts current parameter values from a Config.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Field.Decay,
		cfg.Field.Threshold,
		cfg.Field.SelfWeight,
		cfg.Field.BroadcastGain,
		cfg.Field.LocalProb,
		cfg.Field.LongProb,
	}
}
