package cli

import (
	"fmt"

	"github.com/alexanderramin/prodline/internal/domain"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// entryEnv is what a --where expression sees for one entry, e.g.
//
//	area == "CF final" && quantity >= 100 && "300L" in models
type entryEnv struct {
	ID         string   `expr:"id"`
	Date       string   `expr:"date"`
	Area       string   `expr:"area"`
	Supervisor string   `expr:"supervisor"`
	Quantity   int      `expr:"quantity"`
	Items      int      `expr:"items"`
	Models     []string `expr:"models"`
}

func newEntryEnv(e *domain.ProductionEntry) entryEnv {
	models := make([]string, 0, len(e.Items))
	for _, it := range e.Items {
		models = append(models, it.Model)
	}
	return entryEnv{
		ID:         e.ID,
		Date:       domain.DateKey(e.Date),
		Area:       string(e.Area),
		Supervisor: e.Supervisor,
		Quantity:   e.TotalQuantity(),
		Items:      len(e.Items),
		Models:     models,
	}
}

// entryFilter is a compiled --where expression.
type entryFilter struct {
	program *vm.Program
}

func compileEntryFilter(src string) (*entryFilter, error) {
	program, err := expr.Compile(src, expr.Env(entryEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid --where expression: %w", err)
	}
	return &entryFilter{program: program}, nil
}

func (f *entryFilter) apply(entries []*domain.ProductionEntry) ([]*domain.ProductionEntry, error) {
	out := make([]*domain.ProductionEntry, 0, len(entries))
	for _, e := range entries {
		res, err := expr.Run(f.program, newEntryEnv(e))
		if err != nil {
			return nil, fmt.Errorf("evaluating --where for entry %s: %w", e.ID, err)
		}
		if keep, _ := res.(bool); keep {
			out = append(out, e)
		}
	}
	return out, nil
}
