package mailer

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visitas-angelim/booking-service/pkg/ptr"
)

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Info(format string, v ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}
func (l *recordingLogger) Warn(string, ...interface{})  {}
func (l *recordingLogger) Error(string, ...interface{}) {}

func TestLogGateway_LogsInsteadOfSending(t *testing.T) {
	log := &recordingLogger{}
	gw := NewLogGateway(log)

	email := VisitEmail{
		ParentEmail:   "maria@example.com",
		UnitName:      "Escola Angelim - Centro",
		ChildName:     ptr.Ptr("João"),
		VisitDateTime: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
	}

	require.NoError(t, gw.SendConfirmation(context.Background(), email))
	require.NoError(t, gw.SendReminder(context.Background(), email))

	require.Len(t, log.lines, 2)
	assert.Contains(t, log.lines[0], "confirmation to maria@example.com")
	assert.Contains(t, log.lines[0], `child="João"`)
	assert.Contains(t, log.lines[1], "reminder to maria@example.com")
}

func TestLogGateway_MissingChildName(t *testing.T) {
	log := &recordingLogger{}
	gw := NewLogGateway(log)

	err := gw.SendConfirmation(context.Background(), VisitEmail{
		ParentEmail:   "maria@example.com",
		UnitName:      "Escola Angelim - Centro",
		VisitDateTime: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	require.Len(t, log.lines, 1)
	assert.Contains(t, log.lines[0], `child=""`)
}
