package mailer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/visitas-angelim/booking-service/pkg/ptr"
)

func TestFormatDatePT(t *testing.T) {
	// понедельник 2 марта 2026
	d := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "segunda-feira, 2 de março de 2026", formatDatePT(d))

	// суббота 25 декабря 2027
	d = time.Date(2027, 12, 25, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "sábado, 25 de dezembro de 2027", formatDatePT(d))
}

func TestRenderConfirmationBody(t *testing.T) {
	email := VisitEmail{
		ParentName:    "Maria Silva",
		ParentEmail:   "maria@example.com",
		ChildName:     ptr.Ptr("João"),
		UnitName:      "Escola Angelim - Centro",
		VisitDateTime: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		SlotStart:     time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		SlotEnd:       time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	}

	body := renderConfirmationBody(email)

	assert.Contains(t, body, "Maria Silva")
	assert.Contains(t, body, "João")
	assert.Contains(t, body, "Escola Angelim - Centro")
	assert.Contains(t, body, "segunda-feira, 2 de março de 2026")
	assert.Contains(t, body, "09:00")
}

func TestRenderConfirmationBody_NoChild(t *testing.T) {
	email := VisitEmail{
		ParentName:    "Maria Silva",
		UnitName:      "Escola Angelim - Centro",
		VisitDateTime: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		SlotStart:     time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
	}

	body := renderConfirmationBody(email)
	assert.NotContains(t, body, "Criança")
}

func TestRenderReminderBody(t *testing.T) {
	email := VisitEmail{
		ParentName:    "Maria Silva",
		UnitName:      "Escola Angelim - Centro",
		VisitDateTime: time.Date(2026, 3, 3, 14, 30, 0, 0, time.UTC),
		SlotStart:     time.Date(2026, 3, 3, 14, 30, 0, 0, time.UTC),
	}

	body := renderReminderBody(email)

	assert.Contains(t, body, "amanhã")
	assert.Contains(t, body, "terça-feira, 3 de março de 2026")
	assert.Contains(t, body, "14:30")
}
