package progress

import "math"

// CurrentStepIndex returns the index of the step a viewer should focus on:
// the first running step; failing that, the last terminal step scanning from
// the end; 0 when nothing has begun. Returns -1 for an empty step list.
func CurrentStepIndex(steps []CrawlStep) int {
	if len(steps) == 0 {
		return -1
	}
	for i := range steps {
		if steps[i].Status == StatusRunning {
			return i
		}
	}
	for i := len(steps) - 1; i >= 0; i-- {
		if steps[i].Status.Terminal() {
			return i
		}
	}
	return 0
}

// OverallProgressPercent is the rounded percentage of steps that finished
// without failing (completed or skipped). Failed steps count toward the total
// but not the numerator. Returns 0 for an empty step list.
func OverallProgressPercent(steps []CrawlStep) int {
	if len(steps) == 0 {
		return 0
	}
	done := 0
	for i := range steps {
		if steps[i].Status == StatusCompleted || steps[i].Status == StatusSkipped {
			done++
		}
	}
	return int(math.Round(100 * float64(done) / float64(len(steps))))
}
