package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/prodline/internal/domain"
)

// FormatEntries renders a compact list of submitted batches.
func FormatEntries(entries []*domain.ProductionEntry) string {
	if len(entries) == 0 {
		return Dim("No entries found.")
	}
	rows := make([][]string, 0, len(entries))
	total := 0
	for _, e := range entries {
		total += e.TotalQuantity()
		rows = append(rows, []string{
			TruncID(e.ID),
			domain.DateKey(e.Date),
			string(e.Area),
			e.Supervisor,
			itoa(len(e.Items)),
			itoa(e.TotalQuantity()),
			Timestamp(e.SubmittedAt),
		})
	}
	return RenderTable(
		[]string{"ID", "DATE", "AREA", "SUPERVISOR", "ITEMS", "QTY", "SUBMITTED"},
		rows,
		AlignRight(4, 5),
		WithFooter(fmt.Sprintf("%d entries", len(entries)), "", "", "", "", itoa(total), ""),
	)
}

// FormatEntry renders one entry with its item lines.
func FormatEntry(e *domain.ProductionEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Dim("ID"), e.ID)
	fmt.Fprintf(&b, "%s  %s · %s\n", Dim("On"), string(e.Area), HumanDate(e.Date))
	fmt.Fprintf(&b, "%s  %s\n\n", Dim("By"), e.Supervisor)

	var headers []string
	shape := domain.ShapeForArea(e.Area)
	switch shape {
	case domain.ShapeMachine:
		headers = []string{"QTY", "MACHINE", "PART", "MODEL"}
	case domain.ShapeCategory:
		headers = []string{"QTY", "CATEGORY", "MODEL"}
	default:
		headers = []string{"QTY", "MODEL"}
	}
	rows := make([][]string, 0, len(e.Items))
	for _, it := range e.Items {
		switch shape {
		case domain.ShapeMachine:
			rows = append(rows, []string{itoa(it.Quantity), it.Machine, it.Part, it.Model})
		case domain.ShapeCategory:
			rows = append(rows, []string{itoa(it.Quantity), it.Category, it.Model})
		default:
			rows = append(rows, []string{itoa(it.Quantity), it.Model})
		}
	}
	b.WriteString(RenderTable(headers, rows, AlignRight(0)))
	return RenderBox("Entry", b.String())
}
