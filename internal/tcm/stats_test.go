package tcm_test

import (
	"testing"

	"tcm-go/internal/model"
	"tcm-go/internal/tcm"
)

func batchCases(statuses ...model.Status) []model.BatchCase {
	cases := make([]model.BatchCase, len(statuses))
	for i, s := range statuses {
		cases[i] = model.BatchCase{ID: "c", Name: "case", Status: s}
	}
	return cases
}

func TestComputeStats(t *testing.T) {
	t.Run("empty input is all zeros", func(t *testing.T) {
		got := tcm.ComputeStats(nil)
		want := tcm.Stats{}
		if got != want {
			t.Errorf("ComputeStats(nil) = %+v, want %+v", got, want)
		}
	})

	t.Run("locked cases are excluded from the pass rate", func(t *testing.T) {
		got := tcm.ComputeStats(batchCases(
			model.StatusPassed, model.StatusPassed, model.StatusFailed,
			model.StatusLocked, model.StatusPending,
		))
		want := tcm.Stats{Total: 5, Locked: 1, Passed: 2, Failed: 1, Pending: 1, PassRate: 50}
		if got != want {
			t.Errorf("ComputeStats() = %+v, want %+v", got, want)
		}
	})

	t.Run("empty status counts as pending", func(t *testing.T) {
		got := tcm.ComputeStats(batchCases(""))
		if got.Pending != 1 {
			t.Errorf("Pending = %d, want 1", got.Pending)
		}
	})

	t.Run("all locked means pass rate zero", func(t *testing.T) {
		got := tcm.ComputeStats(batchCases(model.StatusLocked, model.StatusLocked))
		if got.PassRate != 0 {
			t.Errorf("PassRate = %d, want 0", got.PassRate)
		}
	})

	t.Run("pass rate rounds to nearest integer", func(t *testing.T) {
		got := tcm.ComputeStats(batchCases(
			model.StatusPassed, model.StatusPassed, model.StatusFailed,
		))
		if got.PassRate != 67 {
			t.Errorf("PassRate = %d, want 67", got.PassRate)
		}
	})
}

func TestCompletion(t *testing.T) {
	tests := []struct {
		name     string
		statuses []model.Status
		want     tcm.CompletionState
	}{
		{"all pending", []model.Status{model.StatusPending, model.StatusPending}, tcm.NotStarted},
		{"empty batch", nil, tcm.NotStarted},
		{"partially executed", []model.Status{model.StatusPassed, model.StatusPending}, tcm.Running},
		{"all terminal", []model.Status{model.StatusPassed, model.StatusFailed}, tcm.Completed},
		{"locked counts as terminal", []model.Status{model.StatusPassed, model.StatusLocked}, tcm.Completed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tcm.Completion(batchCases(tt.statuses...)); got != tt.want {
				t.Errorf("Completion() = %q, want %q", got, tt.want)
			}
		})
	}
}
