package region

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyTable is returned when no regions are supplied
	ErrEmptyTable = errors.New("region table is empty")

	// ErrInvalidRegion is returned for structurally invalid region data
	ErrInvalidRegion = errors.New("invalid region")
)

// ErrUnknownRegion indicates a region type or district that is not in the table
type ErrUnknownRegion struct {
	RegionType string
	District   string
}

func (e *ErrUnknownRegion) Error() string {
	if e.District == "" {
		return fmt.Sprintf("unknown region type: %s", e.RegionType)
	}
	return fmt.Sprintf("unknown district %s in region type %s", e.District, e.RegionType)
}

// ErrInvalidCoefficient indicates a district coefficient that is not strictly positive
type ErrInvalidCoefficient struct {
	RegionType  string
	District    string
	Coefficient float64
}

func (e *ErrInvalidCoefficient) Error() string {
	return fmt.Sprintf("district %s/%s has non-positive coefficient %.2f", e.RegionType, e.District, e.Coefficient)
}
