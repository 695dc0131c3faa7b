package book_visit

import "time"

// Request модель запроса публичного бронирования визита
type Request struct {
	ParentName           string
	ParentEmail          string
	ParentPhone          *string
	ChildName            *string
	ChildAge             *int
	ChildGradeOfInterest *string
	UnitID               string
	SlotID               string
}

// Response модель ответа с созданным визитом
type Response struct {
	VisitID       string
	UnitID        string
	SlotID        string
	VisitDateTime time.Time
	Status        string
	CreatedAt     time.Time
}
