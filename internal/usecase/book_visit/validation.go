package book_visit

import (
	"fmt"
	"strings"
)

const maxChildAge = 21

// validateRequest валидирует входные данные запроса
// Обязательны имя и email родителя, юнит и слот
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.ParentName) == "" {
		return fmt.Errorf("%w: parentName is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ParentEmail) == "" {
		return fmt.Errorf("%w: parentEmail is required", ErrInvalidInput)
	}

	if !strings.Contains(req.ParentEmail, "@") {
		return fmt.Errorf("%w: parentEmail is malformed", ErrInvalidInput)
	}

	if strings.TrimSpace(req.UnitID) == "" {
		return fmt.Errorf("%w: unitId is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.SlotID) == "" {
		return fmt.Errorf("%w: slotId is required", ErrInvalidInput)
	}

	if req.ChildAge != nil && (*req.ChildAge < 0 || *req.ChildAge > maxChildAge) {
		return fmt.Errorf("%w: childAge must be in [0, %d]", ErrInvalidInput, maxChildAge)
	}

	return nil
}
