package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekStart(t *testing.T) {
	monday := time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "monday midnight is its own week start",
			in:   monday,
			want: monday,
		},
		{
			name: "later the same monday",
			in:   time.Date(2025, 4, 14, 23, 59, 59, 0, time.UTC),
			want: monday,
		},
		{
			name: "midweek",
			in:   time.Date(2025, 4, 16, 12, 30, 0, 0, time.UTC),
			want: monday,
		},
		{
			name: "sunday belongs to the previous monday",
			in:   time.Date(2025, 4, 20, 23, 0, 0, 0, time.UTC),
			want: monday,
		},
		{
			name: "next monday starts a new week",
			in:   time.Date(2025, 4, 21, 0, 0, 0, 0, time.UTC),
			want: time.Date(2025, 4, 21, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "non-UTC instants are normalized",
			in:   time.Date(2025, 4, 14, 1, 0, 0, 0, time.FixedZone("UTC+2", 2*3600)),
			want: time.Date(2025, 4, 7, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeekStart(tt.in))
		})
	}
}
