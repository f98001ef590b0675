package engine

import (
	"time"

	"github.com/alexanderramin/prodline/internal/domain"
)

func day(s string) time.Time {
	t, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func entry(id, date string, area domain.Area, items ...domain.BatchItem) domain.ProductionEntry {
	return domain.ProductionEntry{
		ID:         id,
		Date:       day(date),
		Area:       area,
		Supervisor: "Shift A",
		Items:      items,
	}
}

func cf(model string, qty int) domain.BatchItem {
	return domain.BatchItem{Quantity: qty, Model: model, Category: "Hard Top"}
}

func crf(machine, part, model string, qty int) domain.BatchItem {
	return domain.BatchItem{Quantity: qty, Machine: machine, Part: part, Model: model}
}

func baseSnapshot(entries ...domain.ProductionEntry) Snapshot {
	return Snapshot{
		Entries:  entries,
		Taxonomy: domain.DefaultTaxonomy(),
		Flags:    domain.ActiveFlags{},
		Daily:    domain.DailyTargets{},
		Monthly:  domain.MonthlyTargets{},
	}
}

func rowFor(rows []ReconciliationRow, model string) (ReconciliationRow, bool) {
	for _, r := range rows {
		if r.Model == model {
			return r, true
		}
	}
	return ReconciliationRow{}, false
}
