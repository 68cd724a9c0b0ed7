package dates

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/moodjournal/internal/common"
	"github.com/stretchr/testify/require"
)

func TestParse_ISORoundTrip(t *testing.T) {
	for _, s := range []string{"2024-01-02", "2023-12-31", "2024-02-29", "1999-06-15"} {
		d, err := Parse(s)
		require.NoError(t, err)
		require.Equal(t, s, d.Format(ISO))
		require.Equal(t, time.UTC, d.Location())
		require.Equal(t, 0, d.Hour())
	}
}

func TestParse_OrderedFallback(t *testing.T) {
	// MM-DD-YYYY is only reached when the ISO layout fails.
	d, err := Parse("01-02-2024")
	require.NoError(t, err)
	require.Equal(t, "2024-01-02", d.Format(ISO))

	// ISO-shaped input never falls through to the legacy layout.
	d, err = Parse("2024-01-02")
	require.NoError(t, err)
	require.Equal(t, "2024-01-02", d.Format(ISO))
}

func TestParse_Unparsable(t *testing.T) {
	for _, s := range []string{"", "not-a-date", "2024/01/02", "31-31-2024", "2024-13-01"} {
		_, err := Parse(s)
		require.Error(t, err, "input %q", s)
		require.ErrorIs(t, err, common.ErrUnparsableDate)
	}
}

func TestParseISO_RejectsLegacyFormat(t *testing.T) {
	_, err := ParseISO("01-02-2024")
	require.Error(t, err)

	d, err := ParseISO("2024-01-02")
	require.NoError(t, err)
	require.Equal(t, "2024-01-02", d.Format(ISO))
}

func TestWindow_Contains(t *testing.T) {
	start, _ := Parse("2024-01-01")
	end, _ := Parse("2024-01-07")
	w := Window{Start: start, End: end}

	tests := []struct {
		date string
		want bool
	}{
		{"2024-01-01", true},
		{"2024-01-07", true},
		{"2024-01-04", true},
		{"2023-12-31", false},
		{"2024-01-08", false},
	}
	for _, tt := range tests {
		d, err := Parse(tt.date)
		require.NoError(t, err)
		require.Equal(t, tt.want, w.Contains(d), "date %s", tt.date)
	}
}

func TestWindow_ZeroStartIsOpen(t *testing.T) {
	end, _ := Parse("2024-01-07")
	w := Window{End: end}

	ancient, _ := Parse("1900-01-01")
	require.True(t, w.Contains(ancient))
}

func TestLastNDays(t *testing.T) {
	today, _ := Parse("2024-03-10")
	w := LastNDays(7, today)
	require.Equal(t, "2024-03-04", w.Start.Format(ISO))
	require.Equal(t, "2024-03-10", w.End.Format(ISO))
	require.True(t, w.Contains(today))
	require.True(t, w.Contains(w.Start))

	before := w.Start.AddDate(0, 0, -1)
	require.False(t, w.Contains(before))
}
