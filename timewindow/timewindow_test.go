package timewindow

import (
	"testing"
	"time"
)

func TestDay(t *testing.T) {
	tests := []struct {
		name      string
		now       time.Time
		offset    int
		wantStart time.Time
	}{
		{
			name:      "IST afternoon",
			now:       time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC),
			offset:    ISTOffsetMinutes,
			wantStart: time.Date(2024, 3, 10, 18, 30, 0, 0, time.UTC),
		},
		{
			name: "UTC evening that is already tomorrow in IST",
			// 21:00 UTC = 02:30 IST next day
			now:       time.Date(2024, 3, 10, 21, 0, 0, 0, time.UTC),
			offset:    ISTOffsetMinutes,
			wantStart: time.Date(2024, 3, 10, 18, 30, 0, 0, time.UTC),
		},
		{
			name:      "zero offset",
			now:       time.Date(2024, 5, 15, 13, 45, 0, 0, time.UTC),
			offset:    0,
			wantStart: time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "negative offset crossing the date line backwards",
			// 02:00 UTC Jan 1 = 21:00 Dec 31 at UTC-5
			now:       time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC),
			offset:    -300,
			wantStart: time.Date(2023, 12, 31, 5, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Day(tt.now, tt.offset)
			if !got.Start.Equal(tt.wantStart) {
				t.Errorf("Day().Start = %v, want %v", got.Start, tt.wantStart)
			}
			wantEnd := tt.wantStart.Add(24*time.Hour - time.Millisecond)
			if !got.End.Equal(wantEnd) {
				t.Errorf("Day().End = %v, want %v", got.End, wantEnd)
			}
			if !got.Contains(tt.now) {
				t.Errorf("Day() does not contain now = %v", tt.now)
			}
		})
	}
}

func TestWeek(t *testing.T) {
	tests := []struct {
		name      string
		now       time.Time
		offset    int
		wantStart time.Time
	}{
		{
			name:      "Monday starts its own week",
			now:       time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC), // Monday in IST
			offset:    ISTOffsetMinutes,
			wantStart: time.Date(2024, 3, 10, 18, 30, 0, 0, time.UTC),
		},
		{
			name:      "Sunday maps six days back",
			now:       time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC), // Sunday 05:30 IST
			offset:    ISTOffsetMinutes,
			wantStart: time.Date(2024, 3, 10, 18, 30, 0, 0, time.UTC),
		},
		{
			name:      "midweek at UTC",
			now:       time.Date(2024, 5, 15, 13, 45, 0, 0, time.UTC), // Wednesday
			offset:    0,
			wantStart: time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Week(tt.now, tt.offset)
			if !got.Start.Equal(tt.wantStart) {
				t.Errorf("Week().Start = %v, want %v", got.Start, tt.wantStart)
			}
			wantEnd := tt.wantStart.Add(7*24*time.Hour - time.Millisecond)
			if !got.End.Equal(wantEnd) {
				t.Errorf("Week().End = %v, want %v", got.End, wantEnd)
			}
		})
	}
}

func TestMonth(t *testing.T) {
	tests := []struct {
		name      string
		now       time.Time
		offset    int
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "March in IST starts during February UTC",
			now:       time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC),
			offset:    ISTOffsetMinutes,
			wantStart: time.Date(2024, 2, 29, 18, 30, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 3, 31, 18, 30, 0, 0, time.UTC).Add(-time.Millisecond),
		},
		{
			name:      "December rolls into the next year",
			now:       time.Date(2023, 12, 31, 23, 0, 0, 0, time.UTC),
			offset:    0,
			wantStart: time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(-time.Millisecond),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Month(tt.now, tt.offset)
			if !got.Start.Equal(tt.wantStart) {
				t.Errorf("Month().Start = %v, want %v", got.Start, tt.wantStart)
			}
			if !got.End.Equal(tt.wantEnd) {
				t.Errorf("Month().End = %v, want %v", got.End, tt.wantEnd)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-03-11", ISTOffsetMinutes)
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	want := time.Date(2024, 3, 10, 18, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseDate() = %v, want %v", got, want)
	}

	end, err := ParseDateEnd("2024-03-11", ISTOffsetMinutes)
	if err != nil {
		t.Fatalf("ParseDateEnd() error = %v", err)
	}
	wantEnd := want.Add(24*time.Hour - time.Millisecond)
	if !end.Equal(wantEnd) {
		t.Errorf("ParseDateEnd() = %v, want %v", end, wantEnd)
	}

	if _, err := ParseDate("11-03-2024", 0); err == nil {
		t.Error("ParseDate() accepted a malformed date")
	}
}
