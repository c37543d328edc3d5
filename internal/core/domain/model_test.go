package domain

import (
	"errors"
	"math"
	"testing"
)

func ptr(f float64) *float64 { return &f }

func TestRankingRow_HasKDR(t *testing.T) {
	tests := []struct {
		name string
		kdr  *float64
		want bool
	}{
		{"absent", nil, false},
		{"finite", ptr(1.5), true},
		{"zero", ptr(0), true},
		{"nan", ptr(math.NaN()), false},
		{"inf", ptr(math.Inf(1)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (RankingRow{KDR: tt.kdr}).HasKDR(); got != tt.want {
				t.Errorf("HasKDR() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRankingSnapshot_Top(t *testing.T) {
	snap := RankingSnapshot{Rows: []RankingRow{{Name: "a"}, {Name: "b"}, {Name: "c"}}}

	tests := []struct {
		n    int
		want int
	}{
		{0, 3},
		{-1, 3},
		{2, 2},
		{3, 3},
		{10, 3},
	}

	for _, tt := range tests {
		if got := len(snap.Top(tt.n)); got != tt.want {
			t.Errorf("Top(%d) returned %d rows, want %d", tt.n, got, tt.want)
		}
	}

	if snap.Top(1)[0].Name != "a" {
		t.Error("Top must keep rank order")
	}
}

func TestErrors_Unwrap(t *testing.T) {
	cause := errors.New("disk full")

	perr := &PersistenceError{Target: "local", Err: cause}
	if !errors.Is(perr, cause) {
		t.Error("PersistenceError must unwrap to its cause")
	}

	rerr := &RenderError{Op: "encode", Err: cause}
	if !errors.Is(rerr, cause) {
		t.Error("RenderError must unwrap to its cause")
	}
}
