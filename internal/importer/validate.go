package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/prodline/internal/domain"
)

// ValidateSeed checks the seed for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateSeed(seed *Seed) []error {
	var errs []error

	errs = append(errs, validateTaxonomy(seed.Taxonomy)...)
	for i, name := range seed.Inactive {
		if name == "" {
			errs = append(errs, fmt.Errorf("inactive[%d] is empty", i))
		}
	}
	errs = append(errs, validateTargets("daily_targets", seed.DailyTargets, domain.DateLayout)...)
	errs = append(errs, validateTargets("monthly_targets", seed.MonthlyTargets, domain.MonthLayout)...)
	errs = append(errs, validateEntries(seed.Entries)...)

	return errs
}

func validateTaxonomy(t *TaxonomyImport) []error {
	if t == nil {
		return nil
	}
	var errs []error
	errs = append(errs, validateGroups("taxonomy.cf_line", t.CFLine)...)
	errs = append(errs, validateGroups("taxonomy.crf", t.CRF)...)
	errs = append(errs, validateNames("taxonomy.wd_line", t.WDLine)...)
	return errs
}

func validateGroups(prefix string, groups []GroupImport) []error {
	var errs []error
	seen := make(map[string]bool)
	for i, g := range groups {
		p := fmt.Sprintf("%s[%d]", prefix, i)
		if g.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", p))
		} else if seen[g.Name] {
			errs = append(errs, fmt.Errorf("%s.name: duplicate group %q", p, g.Name))
		}
		seen[g.Name] = true
		errs = append(errs, validateNames(p+".items", g.Items)...)
	}
	return errs
}

func validateNames(prefix string, names []string) []error {
	var errs []error
	seen := make(map[string]bool)
	for i, n := range names {
		if n == "" {
			errs = append(errs, fmt.Errorf("%s[%d] is empty", prefix, i))
			continue
		}
		if seen[n] {
			errs = append(errs, fmt.Errorf("%s[%d]: duplicate item %q", prefix, i, n))
		}
		seen[n] = true
	}
	return errs
}

func validateTargets(prefix string, targets map[string]map[string]int, layout string) []error {
	var errs []error
	for _, key := range SortedTargetKeys(targets) {
		if _, err := time.Parse(layout, key); err != nil {
			errs = append(errs, fmt.Errorf("%s: invalid key %q (expected %s)", prefix, key, layout))
		}
		if err := domain.ValidateTargets(targets[key]); err != nil {
			errs = append(errs, fmt.Errorf("%s[%s]: %w", prefix, key, err))
		}
	}
	return errs
}

func validateEntries(entries []EntryImport) []error {
	var errs []error
	for i, e := range entries {
		p := fmt.Sprintf("entries[%d]", i)

		area, err := domain.ParseArea(e.Area)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s.area: %w", p, err))
			continue
		}
		if _, err := domain.ParseDate(e.Date); err != nil {
			errs = append(errs, fmt.Errorf("%s.date: %w", p, err))
		}
		if e.SubmittedAt != "" {
			if _, err := time.Parse(time.RFC3339, e.SubmittedAt); err != nil {
				errs = append(errs, fmt.Errorf("%s.submitted_at: invalid timestamp %q (expected RFC3339)", p, e.SubmittedAt))
			}
		}
		if e.Supervisor == "" {
			errs = append(errs, fmt.Errorf("%s.supervisor is required", p))
		}
		if len(e.Items) == 0 {
			errs = append(errs, fmt.Errorf("%s.items: batch has no items", p))
		}
		for j, it := range e.Items {
			if err := it.toBatchItem().Validate(area); err != nil {
				errs = append(errs, fmt.Errorf("%s.items[%d]: %w", p, j, err))
			}
		}
	}
	return errs
}
