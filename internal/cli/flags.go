package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/prodline/internal/domain"
	"github.com/spf13/pflag"
)

// resolveDate accepts YYYY-MM-DD, "today" or "yesterday". Empty means today.
func resolveDate(app *App, s string) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return app.today(), nil
	case "yesterday":
		return app.today().AddDate(0, 0, -1), nil
	}
	return domain.ParseDate(strings.TrimSpace(s))
}

// resolveMonth accepts YYYY-MM. Empty means the current month.
func resolveMonth(app *App, s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		t := app.today()
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	return domain.ParseMonth(strings.TrimSpace(s))
}

// areaValue is an --area flag. Names are matched ignoring case and rejected
// at parse time when unknown.
type areaValue struct {
	area domain.Area
}

var _ pflag.Value = (*areaValue)(nil)

func (v *areaValue) String() string { return string(v.area) }
func (v *areaValue) Type() string   { return "area" }

func (v *areaValue) Set(s string) error {
	a, err := domain.ParseArea(s)
	if err != nil {
		return err
	}
	v.area = a
	return nil
}

// resolveArea falls back to the configured default area.
func resolveArea(app *App, v areaValue) (domain.Area, error) {
	if v.area != "" {
		return v.area, nil
	}
	return domain.ParseArea(app.Config.Reports.DefaultArea)
}

// parseItemSpec reads one --item value: QTY:PATH, where PATH is
//
//	MODEL                      for flat areas
//	CATEGORY/MODEL             for category-tree areas
//	MACHINE/PART/MODEL         for the machine-nested area
func parseItemSpec(area domain.Area, spec string) (domain.BatchItem, error) {
	qtyStr, path, ok := strings.Cut(spec, ":")
	if !ok {
		return domain.BatchItem{}, fmt.Errorf("item %q: expected QTY:%s", spec, itemPathHint(area))
	}
	qty, err := strconv.Atoi(strings.TrimSpace(qtyStr))
	if err != nil {
		return domain.BatchItem{}, fmt.Errorf("item %q: quantity must be a whole number", spec)
	}

	parts := strings.Split(path, "/")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	item := domain.BatchItem{Quantity: qty}
	switch shape := domain.ShapeForArea(area); {
	case shape == domain.ShapeMachine && len(parts) == 3:
		item.Machine, item.Part, item.Model = parts[0], parts[1], parts[2]
	case shape == domain.ShapeCategory && len(parts) == 2:
		item.Category, item.Model = parts[0], parts[1]
	case shape == domain.ShapeFlat && len(parts) == 1:
		item.Model = parts[0]
	default:
		return domain.BatchItem{}, fmt.Errorf("item %q: %s expects QTY:%s", spec, area, itemPathHint(area))
	}
	return item, nil
}

func itemPathHint(area domain.Area) string {
	switch domain.ShapeForArea(area) {
	case domain.ShapeMachine:
		return "MACHINE/PART/MODEL"
	case domain.ShapeCategory:
		return "CATEGORY/MODEL"
	default:
		return "MODEL"
	}
}

func parseItemSpecs(area domain.Area, specs []string) ([]domain.BatchItem, error) {
	items := make([]domain.BatchItem, 0, len(specs))
	for _, s := range specs {
		it, err := parseItemSpec(area, s)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

// parseTargetSpecs reads repeated MODEL=QTY values into a target map. A
// model given twice keeps the last value.
func parseTargetSpecs(specs []string) (domain.TargetMap, error) {
	m := make(domain.TargetMap, len(specs))
	for _, s := range specs {
		name, qtyStr, ok := strings.Cut(s, "=")
		if !ok {
			return nil, fmt.Errorf("target %q: expected MODEL=QTY", s)
		}
		qty, err := strconv.Atoi(strings.TrimSpace(qtyStr))
		if err != nil {
			return nil, fmt.Errorf("target %q: quantity must be a whole number", s)
		}
		m[strings.TrimSpace(name)] = qty
	}
	return m, nil
}
