package domain

import (
	"fmt"
	"strings"
)

// Area is one stage of the physical production process.
type Area string

const (
	AreaCRF            Area = "CRF"
	AreaPreAssembly    Area = "Pre-assembly"
	AreaDoorFoaming    Area = "Door foaming"
	AreaCabinetFoaming Area = "Cabinet foaming"
	AreaCFFinal        Area = "CF final"
	AreaWDFinal        Area = "WD final"
)

// AllAreas is the canonical area enumeration in display order.
var AllAreas = []Area{
	AreaCRF,
	AreaPreAssembly,
	AreaDoorFoaming,
	AreaCabinetFoaming,
	AreaCFFinal,
	AreaWDFinal,
}

// MainLine is the ordered list of assembly stages with sequential physical handoff.
var MainLine = []Area{AreaPreAssembly, AreaCabinetFoaming, AreaCFFinal}

// ParseArea resolves a user-supplied area name, ignoring case and
// surrounding whitespace.
func ParseArea(s string) (Area, error) {
	s = strings.TrimSpace(s)
	for _, a := range AllAreas {
		if strings.EqualFold(string(a), s) {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown area %q", s)
}

// BranchKey names a top-level taxonomy branch.
type BranchKey string

const (
	BranchCRF    BranchKey = "crf"
	BranchCFLine BranchKey = "cf_line"
	BranchWDLine BranchKey = "wd_line"
)

// AllBranches lists branch keys in display order.
var AllBranches = []BranchKey{BranchCFLine, BranchWDLine, BranchCRF}

// ParseBranchKey resolves a branch key such as "cf_line" or "CF_LINE".
func ParseBranchKey(s string) (BranchKey, error) {
	k := BranchKey(strings.ToLower(strings.TrimSpace(s)))
	for _, b := range AllBranches {
		if b == k {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown taxonomy branch %q", s)
}

// Shape identifies which tagged-union variant a branch uses.
type Shape string

const (
	ShapeFlat     Shape = "flat"
	ShapeCategory Shape = "category"
	ShapeMachine  Shape = "machine"
)
