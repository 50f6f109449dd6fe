package date

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2025-01-17", want: New(2025, time.January, 17)},
		{in: "2025-1-7", want: New(2025, time.January, 7)},
		{in: "17/01/2025", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseTime(t *testing.T) {
	testCases := []struct {
		in   string
		want time.Time
	}{
		{in: "2025-03-04T14:30:00Z", want: time.Date(2025, 3, 4, 14, 30, 0, 0, time.UTC)},
		{in: "2025-03-04 14:30:00", want: time.Date(2025, 3, 4, 14, 30, 0, 0, time.UTC)},
		{in: "2025-03-04 14:30", want: time.Date(2025, 3, 4, 14, 30, 0, 0, time.UTC)},
		{in: "2025-3-4", want: time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseTime(tc.in)
			if err != nil {
				t.Fatalf("ParseTime(%q) unexpected error: %v", tc.in, err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("ParseTime(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}

	if _, err := ParseTime("yesterday"); err == nil {
		t.Error("ParseTime(\"yesterday\") expected an error")
	}
}

func TestDaysUntil(t *testing.T) {
	from := New(2025, time.February, 27)
	if got := from.DaysUntil(New(2025, time.March, 3)); got != 4 {
		t.Errorf("DaysUntil() = %d, want 4", got)
	}
	if got := from.DaysUntil(New(2025, time.February, 20)); got != -7 {
		t.Errorf("DaysUntil() = %d, want -7", got)
	}
}

func TestDate_JSON(t *testing.T) {
	in := New(2025, time.December, 19)
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(b) != `"2025-12-19"` {
		t.Errorf("Marshal() = %s, want %q", b, `"2025-12-19"`)
	}
	var out Date
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if out != in {
		t.Errorf("round trip = %v, want %v", out, in)
	}
}
