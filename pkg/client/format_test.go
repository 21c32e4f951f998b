package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatCurrency(t *testing.T) {
	require.Equal(t, "$0.00", FormatCurrency(0))
	require.Equal(t, "$49.99", FormatCurrency(49.99))
	require.Equal(t, "$1234.50", FormatCurrency(1234.5))
}

func TestFormatDateTime(t *testing.T) {
	ts := time.Date(2026, time.March, 9, 15, 4, 0, 0, time.UTC)
	require.Equal(t, "Mar 9, 2026 3:04 PM", FormatDateTime(ts))
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Now()
	cases := []struct {
		at   time.Time
		want string
	}{
		{now.Add(-10 * time.Second), "just now"},
		{now.Add(-time.Minute - time.Second), "1 minute ago"},
		{now.Add(-5 * time.Minute), "5 minutes ago"},
		{now.Add(-3 * time.Hour), "3 hours ago"},
		{now.Add(-48 * time.Hour), "2 days ago"},
		{now.Add(-70 * 24 * time.Hour), "2 months ago"},
		{now.Add(-800 * 24 * time.Hour), "2 years ago"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, FormatRelativeTime(tc.at))
	}
}
