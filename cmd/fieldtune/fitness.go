package main

import (
	"math/rand"

	"github.com/encom-labs/gridsim/config"
	"github.com/encom-labs/gridsim/field"
)

// Fitness weights. The evaluator rewards sustained integration and
// coherence while punishing a saturated or dead field.
const (
	sampleEvery       = 10   // ticks between aggregate samples
	spikeEvery        = 50   // ticks between random stimulus spikes
	baseStimulus      = 0.4  // steady drive applied to the driven nodes
	spikeStimulus     = 0.9  // occasional random spike
	saturationCeiling = 0.9  // mean activation above this is saturated
	deadFloor         = 0.01 // mean activation below this is dead
	saturationPenalty = 0.5
)

// FitnessEvaluator runs headless field simulations and scores
// parameter vectors. Lower fitness is better.
type FitnessEvaluator struct {
	params   *ParamVector
	maxTicks int
	seeds    []int64
	base     *config.Config

	lastScore float64
}

// NewFitnessEvaluator creates an evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int, seeds []int64, base *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:   params,
		maxTicks: maxTicks,
		seeds:    seeds,
		base:     base,
	}
}

// Evaluate scores a raw parameter vector, averaged over all seeds.
// Returns negated mean score so the optimizer minimizes.
func (e *FitnessEvaluator) Evaluate(raw []float64) float64 {
	clamped := e.params.Clamp(raw)

	total := 0.0
	for _, seed := range e.seeds {
		total += e.runOnce(clamped, seed)
	}
	score := total / float64(len(e.seeds))
	e.lastScore = score
	return -score
}

// LastScore returns the score of the most recent evaluation.
func (e *FitnessEvaluator) LastScore() float64 {
	return e.lastScore
}

// runOnce simulates one field with the given parameters and returns
// its score. The drive pattern mimics the simulation's coupling: a few
// steadily resonant nodes plus occasional spikes elsewhere.
func (e *FitnessEvaluator) runOnce(values []float64, seed int64) float64 {
	fc := field.Config{
		LocalRadius:   e.base.Field.LocalRadius,
		LocalProb:     values[4],
		LongProb:      values[5],
		Threshold:     values[1],
		SelfWeight:    values[2],
		BroadcastTop:  e.base.Field.BroadcastTop,
		BroadcastGain: values[3],
		Decay:         values[0],
		TickDelta:     e.base.Field.TickDelta,
	}

	rng := rand.New(rand.NewSource(seed))
	f, err := field.New(e.base.Field.Nodes, fc, rng)
	if err != nil {
		return 0
	}
	n := f.Len()

	driven := []int{0, n / 3, 2 * n / 3}
	stimulus := make(map[int]float64)

	score := 0.0
	samples := 0
	for tick := 1; tick <= e.maxTicks; tick++ {
		for k := range stimulus {
			delete(stimulus, k)
		}
		for _, id := range driven {
			stimulus[id] = baseStimulus
		}
		if tick%spikeEvery == 0 {
			stimulus[rng.Intn(n)] += spikeStimulus
		}
		f.Step(stimulus)

		if tick%sampleEvery != 0 {
			continue
		}
		agg := f.Aggregate()
		s := agg.Integration * agg.Coherence
		if agg.MeanActivation > saturationCeiling || agg.MeanActivation < deadFloor {
			s -= saturationPenalty
		}
		score += s
		samples++
	}

	if samples == 0 {
		return 0
	}
	return score / float64(samples)
}
