package reminders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func TestNextRunAfter(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	w := NewWorker(nil, nil, noopLogger{}, loc, 8)

	cases := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			"before the hour runs same day",
			time.Date(2026, 3, 10, 6, 30, 0, 0, loc),
			time.Date(2026, 3, 10, 8, 0, 0, 0, loc),
		},
		{
			"after the hour runs next day",
			time.Date(2026, 3, 10, 9, 0, 0, 0, loc),
			time.Date(2026, 3, 11, 8, 0, 0, 0, loc),
		},
		{
			"exactly at the hour schedules next day",
			time.Date(2026, 3, 10, 8, 0, 0, 0, loc),
			time.Date(2026, 3, 11, 8, 0, 0, 0, loc),
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			got := w.nextRunAfter(tt.now)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

func TestNextRunAfter_ConvertsFromOtherZones(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	w := NewWorker(nil, nil, noopLogger{}, loc, 8)

	// 10:00 UTC = 07:00 в Сан-Паулу, запуск еще впереди в тот же день
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	got := w.nextRunAfter(now)
	assert.True(t, got.Equal(time.Date(2026, 3, 10, 8, 0, 0, 0, loc)))
}
