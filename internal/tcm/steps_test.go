package tcm_test

import (
	"reflect"
	"testing"

	"tcm-go/internal/model"
	"tcm-go/internal/tcm"
)

func TestStripOrdinal(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1. Open app", "Open app"},
		{"12.   Tap login", "Tap login"},
		{"3.no space", "no space"},
		{"Open app", "Open app"},
		{"v1. not a leading ordinal", "v1. not a leading ordinal"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := tcm.StripOrdinal(tt.in); got != tt.want {
			t.Errorf("StripOrdinal(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSplitLines(t *testing.T) {
	t.Run("splits on the literal marker", func(t *testing.T) {
		got := tcm.SplitLines(`1. Open app\n2. Tap login`)
		want := []string{"Open app", "Tap login"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("SplitLines() = %v, want %v", got, want)
		}
	})

	t.Run("does not split on a real newline byte", func(t *testing.T) {
		got := tcm.SplitLines("Open app\nTap login")
		if len(got) != 1 {
			t.Errorf("got %d lines, want 1", len(got))
		}
	})

	t.Run("empty input yields nil", func(t *testing.T) {
		if got := tcm.SplitLines(""); got != nil {
			t.Errorf("SplitLines(\"\") = %v, want nil", got)
		}
	})
}

func TestJoinLines(t *testing.T) {
	t.Run("strips ordinals and drops blank lines", func(t *testing.T) {
		got := tcm.JoinLines([]string{"1. Open app", "  ", "2. Tap login", ""})
		want := `Open app\nTap login`
		if got != want {
			t.Errorf("JoinLines() = %q, want %q", got, want)
		}
	})

	t.Run("empty input yields empty string", func(t *testing.T) {
		if got := tcm.JoinLines(nil); got != "" {
			t.Errorf("JoinLines(nil) = %q, want \"\"", got)
		}
	})
}

func TestMaterializeSteps(t *testing.T) {
	t.Run("one step per line with ordinal stripped", func(t *testing.T) {
		got := tcm.MaterializeSteps(`1. Open app\n2. Tap login`)
		want := []model.Step{
			{Action: "Open app", Description: "Open app"},
			{Action: "Tap login", Description: "Tap login"},
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("MaterializeSteps() = %v, want %v", got, want)
		}
	})

	t.Run("empty input yields empty non-nil slice", func(t *testing.T) {
		got := tcm.MaterializeSteps("")
		if got == nil {
			t.Fatal("expected non-nil slice")
		}
		if len(got) != 0 {
			t.Errorf("got %d steps, want 0", len(got))
		}
	})
}
