package renderer

import "github.com/kmw-dev/go-cloud-raymarcher/pkg/cloud"

// RenderStats contains statistics about one render
type RenderStats struct {
	TotalPixels  int     // Total number of pixels rendered
	Misses       int     // Rays that never entered the volume
	EarlyExits   int     // Marches stopped by the transmittance floor
	Completed    int     // Marches that ran their full step budget
	TotalSteps   int     // March steps across all rays
	MaxStepsUsed int     // Longest march by any ray
	AverageSteps float64 // Average march steps per volume-hitting ray
}

// addTrace records one trace outcome
func (s *RenderStats) addTrace(result cloud.Result) {
	s.TotalPixels++
	s.TotalSteps += result.Steps
	s.MaxStepsUsed = max(s.MaxStepsUsed, result.Steps)

	switch result.Outcome {
	case cloud.OutcomeMiss:
		s.Misses++
	case cloud.OutcomeEarlyExit:
		s.EarlyExits++
	case cloud.OutcomeCompleted:
		s.Completed++
	}
}

// merge folds another stats block into this one
func (s *RenderStats) merge(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.Misses += other.Misses
	s.EarlyExits += other.EarlyExits
	s.Completed += other.Completed
	s.TotalSteps += other.TotalSteps
	s.MaxStepsUsed = max(s.MaxStepsUsed, other.MaxStepsUsed)
}

// finalize computes derived statistics after all pixels are rendered
func (s *RenderStats) finalize() {
	hits := s.TotalPixels - s.Misses
	if hits > 0 {
		s.AverageSteps = float64(s.TotalSteps) / float64(hits)
	}
}
