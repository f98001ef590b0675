package domain

import (
	"fmt"
	"strings"
	"time"
)

// BatchItem is one line of a production batch. Machine and Part are set only
// for the machine-nested area; Category only for the category-tree areas.
type BatchItem struct {
	Quantity int
	Model    string
	Machine  string
	Part     string
	Category string
}

// ProductionEntry is a submitted production batch for one area and date.
type ProductionEntry struct {
	ID          string
	Date        time.Time
	Area        Area
	Supervisor  string
	SubmittedAt time.Time
	UpdatedAt   time.Time
	Items       []BatchItem
}

// Validate checks that the item carries exactly the fields its area's shape
// requires.
func (b BatchItem) Validate(area Area) error {
	if b.Quantity <= 0 {
		return &ValidationError{Code: ErrCodeInvalidQuantity, Field: "quantity", Message: fmt.Sprintf("must be positive, got %d", b.Quantity)}
	}
	if strings.TrimSpace(b.Model) == "" {
		return &ValidationError{Code: ErrCodeMissingField, Field: "model", Message: "is required"}
	}
	switch ShapeForArea(area) {
	case ShapeMachine:
		if strings.TrimSpace(b.Machine) == "" {
			return &ValidationError{Code: ErrCodeMissingField, Field: "machine", Message: fmt.Sprintf("is required for %s", area)}
		}
		if strings.TrimSpace(b.Part) == "" {
			return &ValidationError{Code: ErrCodeMissingField, Field: "part", Message: fmt.Sprintf("is required for %s", area)}
		}
	case ShapeCategory:
		if strings.TrimSpace(b.Category) == "" {
			return &ValidationError{Code: ErrCodeMissingField, Field: "category", Message: fmt.Sprintf("is required for %s", area)}
		}
	}
	return nil
}

// Normalize clears the fields the area's shape does not use.
func (b BatchItem) Normalize(area Area) BatchItem {
	switch ShapeForArea(area) {
	case ShapeMachine:
		b.Category = ""
	case ShapeCategory:
		b.Machine, b.Part = "", ""
	case ShapeFlat:
		b.Machine, b.Part, b.Category = "", "", ""
	}
	return b
}

// Validate checks the entry header and every item.
func (e *ProductionEntry) Validate() error {
	if _, err := ParseArea(string(e.Area)); err != nil {
		return &ValidationError{Code: ErrCodeUnknownArea, Field: "area", Message: err.Error()}
	}
	if e.Date.IsZero() {
		return &ValidationError{Code: ErrCodeInvalidDate, Field: "date", Message: "is required"}
	}
	if strings.TrimSpace(e.Supervisor) == "" {
		return &ValidationError{Code: ErrCodeMissingField, Field: "supervisor", Message: "is required"}
	}
	if len(e.Items) == 0 {
		return &ValidationError{Code: ErrCodeEmptyBatch, Field: "items", Message: "batch has no items"}
	}
	for i, it := range e.Items {
		if err := it.Validate(e.Area); err != nil {
			return fmt.Errorf("item %d: %w", i+1, err)
		}
	}
	return nil
}

// TotalQuantity sums the quantities of every item in the entry.
func (e *ProductionEntry) TotalQuantity() int {
	total := 0
	for _, it := range e.Items {
		total += it.Quantity
	}
	return total
}
