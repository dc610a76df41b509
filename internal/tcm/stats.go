package tcm

import (
	"math"

	"tcm-go/internal/model"
)

// Stats are aggregate execution counts over a list of batch cases.
// Locked cases are excluded from both sides of the pass rate: they are
// deliberately withheld from consideration, not failures.
type Stats struct {
	Total    int
	Locked   int
	Passed   int
	Failed   int
	Pending  int
	PassRate int // round(passed / (total - locked) * 100), 0 when no available cases
}

// ComputeStats reduces a list of batch cases to aggregate counts.
// A case with an empty status counts as pending.
func ComputeStats(cases []model.BatchCase) Stats {
	s := Stats{Total: len(cases)}
	for _, c := range cases {
		switch c.Status {
		case model.StatusLocked:
			s.Locked++
		case model.StatusPassed:
			s.Passed++
		case model.StatusFailed:
			s.Failed++
		default:
			s.Pending++
		}
	}
	if available := s.Total - s.Locked; available > 0 {
		s.PassRate = int(math.Round(float64(s.Passed) / float64(available) * 100))
	}
	return s
}

// CompletionState classifies how far through execution a batch is.
// It is always derived on demand; the batch's stored status field is not
// consulted or updated.
type CompletionState string

const (
	NotStarted CompletionState = "NOT_STARTED"
	Running    CompletionState = "RUNNING"
	Completed  CompletionState = "COMPLETED"
)

// Completion classifies a batch's cases: NotStarted when no case has a
// terminal status, Completed when all do, Running otherwise. An empty batch
// classifies as NotStarted (batches cannot be created empty, but stored
// data is not trusted to uphold that).
func Completion(cases []model.BatchCase) CompletionState {
	terminal := 0
	for _, c := range cases {
		if c.Status.Terminal() {
			terminal++
		}
	}
	switch {
	case terminal == 0:
		return NotStarted
	case terminal == len(cases):
		return Completed
	default:
		return Running
	}
}
