package presence

import (
	"fmt"
	"time"
)

// DefaultThreshold is the staleness window below which a miner counts as online
const DefaultThreshold = 120 * time.Second

// Status is the derived liveness of a miner at a point in time
type Status struct {
	Online       bool
	ElapsedLabel string
}

// Evaluator derives online/offline state from a last-seen timestamp.
// Status is never stored; it is recomputed against the clock at read time.
type Evaluator struct {
	Threshold time.Duration
}

// NewEvaluator creates an Evaluator, falling back to DefaultThreshold for
// non-positive thresholds.
func NewEvaluator(threshold time.Duration) Evaluator {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return Evaluator{Threshold: threshold}
}

// Evaluate returns the status for a record last seen at lastSeen, as of now.
// A nil lastSeen means the miner has never reported and is labelled "unknown".
func (e Evaluator) Evaluate(lastSeen *time.Time, now time.Time) Status {
	if lastSeen == nil {
		return Status{Online: false, ElapsedLabel: "unknown"}
	}

	elapsed := now.Sub(*lastSeen)
	// Whole elapsed seconds, floored
	d := int64(elapsed / time.Second)
	if d < 0 {
		d = 0
	}

	var label string
	switch {
	case d < 60:
		label = fmt.Sprintf("%ds ago", d)
	case d < 3600:
		label = fmt.Sprintf("%dm ago", d/60)
	default:
		label = fmt.Sprintf("%dh ago", d/3600)
	}

	return Status{
		Online:       elapsed < e.Threshold,
		ElapsedLabel: label,
	}
}
