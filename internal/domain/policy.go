package domain

// DoorFoamingPlanFactor multiplies the planned quantity for Door foaming
// before it is compared against actual output.
const DoorFoamingPlanFactor = 2

var planMultipliers = map[Area]int{
	AreaDoorFoaming: DoorFoamingPlanFactor,
}

var excludedFromTargets = map[Area]bool{
	AreaCRF: true,
}

var branchForArea = map[Area]BranchKey{
	AreaCRF:            BranchCRF,
	AreaPreAssembly:    BranchCFLine,
	AreaDoorFoaming:    BranchCFLine,
	AreaCabinetFoaming: BranchCFLine,
	AreaCFFinal:        BranchCFLine,
	AreaWDFinal:        BranchWDLine,
}

var shapeForBranch = map[BranchKey]Shape{
	BranchCRF:    ShapeMachine,
	BranchCFLine: ShapeCategory,
	BranchWDLine: ShapeFlat,
}

// PlanMultiplier returns the factor applied to an area's planned quantity.
// Areas without an entry use 1.
func PlanMultiplier(a Area) int {
	if m, ok := planMultipliers[a]; ok {
		return m
	}
	return 1
}

// ExcludedFromTargets reports whether an area is never reconciled against
// targets and never feeds the main-line flow.
func ExcludedFromTargets(a Area) bool {
	return excludedFromTargets[a]
}

// BranchForArea returns the taxonomy branch that catalogs an area's items.
func BranchForArea(a Area) BranchKey {
	if k, ok := branchForArea[a]; ok {
		return k
	}
	return BranchCFLine
}

// ShapeForArea returns the taxonomy shape bound to an area.
func ShapeForArea(a Area) Shape {
	return ShapeForBranch(BranchForArea(a))
}

// ShapeForBranch returns the shape bound to a branch key.
func ShapeForBranch(k BranchKey) Shape {
	return shapeForBranch[k]
}
