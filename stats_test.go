package optjournal

import (
	"testing"
)

func TestComputeStats(t *testing.T) {
	trades := []Trade{
		{Closed: true, CalculatedPL: USD(500)},
		{Closed: true, CalculatedPL: USD(-200)},
		{Closed: true, CalculatedPL: USD(0)},
		{Closed: true, CalculatedPL: USD(100)},
		{Closed: false, CalculatedPL: USD(50)},
	}
	s := ComputeStats(trades)

	assertMoney(t, "TotalPL", s.TotalPL, 400)
	assertMoney(t, "OpenPL", s.OpenPL, 50)
	if s.ClosedTrades != 4 || s.OpenTrades != 1 {
		t.Errorf("got %d closed and %d open trades, want 4 and 1", s.ClosedTrades, s.OpenTrades)
	}
	if s.WinningTrades != 2 || s.LosingTrades != 1 {
		t.Errorf("got %d winning and %d losing trades, want 2 and 1", s.WinningTrades, s.LosingTrades)
	}
	if !s.WinRate.Equal(50) {
		t.Errorf("WinRate = %v, want 50%%", s.WinRate)
	}
}

func TestComputeStats_Empty(t *testing.T) {
	s := ComputeStats(nil)
	if s.ClosedTrades != 0 || !s.WinRate.Equal(0) || !s.TotalPL.IsZero() {
		t.Errorf("ComputeStats(nil) = %+v, want zero", s)
	}
}

func TestStats_Marks(t *testing.T) {
	execs := []Execution{
		fill("2024-01-02", LongCall, 10, 2.00, 5),
		fill("2024-01-10", LongCall, -4, 3.00, 4),
	}
	r := Match(execs)
	key := execs[0].Key()

	testCases := []struct {
		name   string
		marks  Marks
		wantOP float64
	}{
		// remaining lot: 6 contracts, commission 3.
		{"trade value", nil, 1197},
		{"marked", Marks{key: USD(2.5)}, 297},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := Stats(r, tc.marks)
			assertMoney(t, "TotalPL", s.TotalPL, 394) // 1*4*100 - (2 + 4)
			assertMoney(t, "OpenPL", s.OpenPL, tc.wantOP)
			if s.OpenTrades != 1 || s.ClosedTrades != 1 {
				t.Errorf("got %d open and %d closed trades, want 1 and 1", s.OpenTrades, s.ClosedTrades)
			}
		})
	}
}

func TestCalculator_ExecutionTrades(t *testing.T) {
	execs := []Execution{
		fill("2024-01-02", LongCall, 10, 2.00, 5).WithClose(on("2024-01-20"), USD(3)),
		fill("2024-01-03", ShortPut, -1, 1.00, 1),
	}
	trades := Calculator{}.ExecutionTrades(execs)
	if len(trades) != 2 {
		t.Fatalf("got %d trades, want 2", len(trades))
	}
	if !trades[0].Closed || trades[1].Closed {
		t.Errorf("Closed = %v, %v, want true, false", trades[0].Closed, trades[1].Closed)
	}
	s := ComputeStats(trades)
	assertMoney(t, "TotalPL", s.TotalPL, 995)
	assertMoney(t, "OpenPL", s.OpenPL, -101)
}

func TestRatio(t *testing.T) {
	testCases := []struct {
		part, total int
		want        Percent
		str         string
	}{
		{1, 2, 50, "50.00%"},
		{2, 3, 66.6667, "66.67%"},
		{0, 0, 0, "0.00%"},
	}
	for _, tc := range testCases {
		got := Ratio(tc.part, tc.total)
		if !got.Equal(tc.want) {
			t.Errorf("Ratio(%d, %d) = %v, want %v", tc.part, tc.total, got, tc.want)
		}
		if got.String() != tc.str {
			t.Errorf("Ratio(%d, %d).String() = %q, want %q", tc.part, tc.total, got.String(), tc.str)
		}
	}
}
