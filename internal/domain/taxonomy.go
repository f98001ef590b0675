package domain

// Branch is one top-level taxonomy branch. The concrete variants are
// FlatBranch, CategoryBranch and MachineBranch.
type Branch interface {
	Shape() Shape
	// Names returns every item name in the branch, de-duplicated, in
	// first-seen order.
	Names() []string
	isBranch()
}

// FlatBranch is a plain list of model names.
type FlatBranch struct {
	Items []string
}

// Category groups model names under a label.
type Category struct {
	Name  string
	Items []string
}

// CategoryBranch maps ordered categories to model names.
type CategoryBranch struct {
	Categories []Category
}

// Machine lists the parts a machine produces.
type Machine struct {
	Name  string
	Parts []string
}

// MachineBranch maps machines to the parts they form.
type MachineBranch struct {
	Machines []Machine
}

func (FlatBranch) Shape() Shape     { return ShapeFlat }
func (CategoryBranch) Shape() Shape { return ShapeCategory }
func (MachineBranch) Shape() Shape  { return ShapeMachine }

func (FlatBranch) isBranch()     {}
func (CategoryBranch) isBranch() {}
func (MachineBranch) isBranch()  {}

func (b FlatBranch) Names() []string {
	return dedupe(b.Items)
}

func (b CategoryBranch) Names() []string {
	var all []string
	for _, c := range b.Categories {
		all = append(all, c.Items...)
	}
	return dedupe(all)
}

// Names returns machine names followed by part names.
func (b MachineBranch) Names() []string {
	var all []string
	for _, m := range b.Machines {
		all = append(all, m.Name)
	}
	for _, m := range b.Machines {
		all = append(all, m.Parts...)
	}
	return dedupe(all)
}

// Category returns the named category and whether it exists.
func (b CategoryBranch) Category(name string) (Category, bool) {
	for _, c := range b.Categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// Machine returns the named machine and whether it exists.
func (b MachineBranch) Machine(name string) (Machine, bool) {
	for _, m := range b.Machines {
		if m.Name == name {
			return m, true
		}
	}
	return Machine{}, false
}

// Taxonomy is the configurable catalog of machines, categories and models.
type Taxonomy map[BranchKey]Branch

// BranchFor returns the branch bound to an area, if present.
func (t Taxonomy) BranchFor(a Area) (Branch, bool) {
	b, ok := t[BranchForArea(a)]
	return b, ok && b != nil
}

// ModelsFor returns the candidate model names reconciled for an area.
// The machine-nested area has no candidates.
func (t Taxonomy) ModelsFor(a Area) []string {
	if ShapeForArea(a) == ShapeMachine {
		return nil
	}
	b, ok := t.BranchFor(a)
	if !ok {
		return nil
	}
	return b.Names()
}

// AssemblyModels returns every model of the assembly-line category tree.
func (t Taxonomy) AssemblyModels() []string {
	b, ok := t[BranchCFLine]
	if !ok || b == nil {
		return nil
	}
	return b.Names()
}

// TargetableModels returns the union of all assembly-line and flat-list
// branches. The machine-nested branch is excluded.
func (t Taxonomy) TargetableModels() []string {
	var all []string
	for _, k := range AllBranches {
		b, ok := t[k]
		if !ok || b == nil || b.Shape() == ShapeMachine {
			continue
		}
		all = append(all, b.Names()...)
	}
	return dedupe(all)
}

// ActiveFlags maps an item name to its active state. Flags are global by
// name, independent of the branch the item came from.
type ActiveFlags map[string]bool

// IsActive reports whether name is active. Absent names are active.
func (f ActiveFlags) IsActive(name string) bool {
	active, ok := f[name]
	return !ok || active
}

// DefaultTaxonomy returns the catalog a fresh database is seeded with.
func DefaultTaxonomy() Taxonomy {
	parts := []string{"Side Panel", "Back Panel", "Bottom Plate", "Inner Liner", "Door Liner", "Profile"}
	machineNames := []string{"Komatsu Press", "Thermoforming", "Extrusion", "Paint Shop"}
	machines := make([]Machine, 0, len(machineNames))
	for _, name := range machineNames {
		machines = append(machines, Machine{Name: name, Parts: append([]string(nil), parts...)})
	}
	return Taxonomy{
		BranchCRF: MachineBranch{Machines: machines},
		BranchCFLine: CategoryBranch{Categories: []Category{
			{Name: "Hard Top", Items: []string{"100L", "200L", "300L", "400L", "500L"}},
			{Name: "Glass Top", Items: []string{"200L", "300L", "400L", "500L"}},
		}},
		BranchWDLine: FlatBranch{Items: []string{"Floor Standing", "Table Top", "Bottom Loading"}},
	}
}

func dedupe(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
