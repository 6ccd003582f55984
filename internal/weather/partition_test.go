package weather

import (
	"testing"

	"github.com/alexivanou/weathertrack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRange(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		wantErr bool
	}{
		{name: "valid range", start: "2024-01-01", end: "2024-01-05"},
		{name: "single day", start: "2024-01-01", end: "2024-01-01"},
		{name: "exactly 31 days", start: "2024-01-01", end: "2024-01-31"},
		{name: "32 days", start: "2024-01-01", end: "2024-02-01", wantErr: true},
		{name: "inverted range", start: "2024-01-10", end: "2024-01-05", wantErr: true},
		{name: "bad start format", start: "01/01/2024", end: "2024-01-05", wantErr: true},
		{name: "bad end format", start: "2024-01-01", end: "Jan 5", wantErr: true},
		{name: "not a calendar date", start: "2024-02-30", end: "2024-03-01", wantErr: true},
		{name: "leap day accepted", start: "2024-02-29", end: "2024-03-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRange(tt.start, tt.end)
			if tt.wantErr {
				assert.ErrorIs(t, err, model.ErrInvalidRange)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSplitRange(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		today    string
		wantPast *DateSpan
		wantPF   *DateSpan
	}{
		{
			name:  "straddles today",
			start: "2024-01-01", end: "2024-01-05", today: "2024-01-03",
			wantPast: &DateSpan{Start: "2024-01-01", End: "2024-01-02"},
			wantPF:   &DateSpan{Start: "2024-01-03", End: "2024-01-05"},
		},
		{
			name:  "entirely past",
			start: "2024-01-01", end: "2024-01-05", today: "2024-02-01",
			wantPast: &DateSpan{Start: "2024-01-01", End: "2024-01-05"},
		},
		{
			name:  "entirely future",
			start: "2024-03-01", end: "2024-03-05", today: "2024-02-01",
			wantPF: &DateSpan{Start: "2024-03-01", End: "2024-03-05"},
		},
		{
			name:  "starts today",
			start: "2024-02-01", end: "2024-02-05", today: "2024-02-01",
			wantPF: &DateSpan{Start: "2024-02-01", End: "2024-02-05"},
		},
		{
			name:  "ends today",
			start: "2024-01-28", end: "2024-02-01", today: "2024-02-01",
			wantPast: &DateSpan{Start: "2024-01-28", End: "2024-01-31"},
			wantPF:   &DateSpan{Start: "2024-02-01", End: "2024-02-01"},
		},
		{
			name:  "ends yesterday",
			start: "2024-01-28", end: "2024-01-31", today: "2024-02-01",
			wantPast: &DateSpan{Start: "2024-01-28", End: "2024-01-31"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := SplitRange(tt.start, tt.end, tt.today)
			assert.Equal(t, tt.wantPast, p.Past)
			assert.Equal(t, tt.wantPF, p.PresentFuture)
		})
	}
}

// The sub-spans must be contiguous, non-overlapping, and their union must
// cover the requested span exactly.
func TestSplitRange_CoversSpanExactly(t *testing.T) {
	spans := []struct{ start, end, today string }{
		{"2024-01-01", "2024-01-31", "2024-01-15"},
		{"2024-02-27", "2024-03-02", "2024-02-29"},
		{"2023-12-25", "2024-01-05", "2024-01-01"},
		{"2024-01-01", "2024-01-01", "2024-01-01"},
		{"2024-01-01", "2024-01-01", "2024-01-02"},
	}

	for _, s := range spans {
		p := SplitRange(s.start, s.end, s.today)
		require.False(t, p.Past == nil && p.PresentFuture == nil)

		total := 0
		if p.Past != nil {
			assert.LessOrEqual(t, p.Past.Start, p.Past.End)
			assert.Equal(t, s.start, p.Past.Start)
			assert.Less(t, p.Past.End, s.today)
			total += DaysInclusive(p.Past.Start, p.Past.End)
		}
		if p.PresentFuture != nil {
			assert.LessOrEqual(t, p.PresentFuture.Start, p.PresentFuture.End)
			assert.Equal(t, s.end, p.PresentFuture.End)
			total += DaysInclusive(p.PresentFuture.Start, p.PresentFuture.End)
		}
		if p.Past != nil && p.PresentFuture != nil {
			// Contiguous: forecast picks up the day after the archive ends
			assert.Equal(t, 1, DaysInclusive(p.Past.End, p.PresentFuture.Start)-1)
		}
		assert.Equal(t, DaysInclusive(s.start, s.end), total)
	}
}

func TestDaysInclusive(t *testing.T) {
	assert.Equal(t, 1, DaysInclusive("2024-01-01", "2024-01-01"))
	assert.Equal(t, 5, DaysInclusive("2024-01-01", "2024-01-05"))
	assert.Equal(t, 31, DaysInclusive("2024-01-01", "2024-01-31"))
	// Across the leap day
	assert.Equal(t, 3, DaysInclusive("2024-02-28", "2024-03-01"))
}
