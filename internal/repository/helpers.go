package repository

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/prodline/internal/domain"
)

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// dateValue stores a calendar date as YYYY-MM-DD so lexical order matches
// calendar order.
func dateValue(t time.Time) string {
	return domain.DateKey(t)
}

// checkAffected turns a zero-row UPDATE or DELETE into a wrapped ErrNotFound.
func checkAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected for %s: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}

func sortedKeys(m domain.TargetMap) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
