package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/prodline/internal/config"
	"github.com/alexanderramin/prodline/internal/domain"
	"github.com/alexanderramin/prodline/internal/repository"
	"github.com/alexanderramin/prodline/internal/service"
	"github.com/alexanderramin/prodline/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)

	cfg := config.DefaultConfig()
	cfg.DBPath = ":memory:"

	return &App{
		Entries:  service.NewEntryService(repository.NewSQLiteEntryRepo(database), uow),
		Taxonomy: service.NewTaxonomyService(repository.NewSQLiteTaxonomyRepo(database), repository.NewSQLiteActiveFlagRepo(database), uow),
		Targets:  service.NewTargetService(repository.NewSQLiteTargetRepo(database), uow),
		Reports:  service.NewReportService(service.NewSnapshotLoader(uow)),
		Import:   service.NewImportService(uow),
		Config:   cfg,
		Now:      func() time.Time { return fixedNow },
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return ansiPattern.ReplaceAllString(buf.String(), ""), err
}

var (
	ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)
	idPattern   = regexp.MustCompile(`\(([0-9a-f-]{36})\)`)
)

func addEntry(t *testing.T, app *App, args ...string) string {
	t.Helper()
	out, err := executeCmd(t, app, append([]string{"entry", "add"}, args...)...)
	require.NoError(t, err, out)
	m := idPattern.FindStringSubmatch(out)
	require.Len(t, m, 2, "no id in %q", out)
	return m[1]
}

func TestEntryAdd_DefaultsToToday(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "entry", "add",
		"--area", "cf final", "--supervisor", "Ravi",
		"--item", "40:Hard Top/300L", "--item", "10:Glass Top/400L")
	require.NoError(t, err)
	assert.Contains(t, out, "Recorded 50 units for CF final on 2024-03-01")

	entries, err := app.Entries.List(context.Background(), repository.EntryFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.AreaCFFinal, entries[0].Area)
	assert.Equal(t, "Hard Top", entries[0].Items[0].Category)
}

func TestEntryAdd_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown area", []string{"--area", "Mars", "--supervisor", "R", "--item", "1:X"}, "unknown area"},
		{"wrong path depth", []string{"--area", "CRF", "--supervisor", "R", "--item", "1:300L"}, "MACHINE/PART/MODEL"},
		{"bad quantity", []string{"--area", "WD final", "--supervisor", "R", "--item", "x:Table Top"}, "whole number"},
		{"no items", []string{"--area", "WD final", "--supervisor", "R"}, "EMPTY_BATCH"},
		{"non-positive quantity", []string{"--area", "WD final", "--supervisor", "R", "--item", "0:Table Top"}, "INVALID_QUANTITY"},
		{"interactive without terminal", []string{"-i"}, "needs a terminal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := testApp(t)
			_, err := executeCmd(t, app, append([]string{"entry", "add"}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEntryLifecycle_EditShowRemove(t *testing.T) {
	app := testApp(t)
	id := addEntry(t, app, "--area", "CRF", "--supervisor", "Ravi",
		"--item", "12:Komatsu Press/Side Panel/300L")

	out, err := executeCmd(t, app, "entry", "edit", id, "--supervisor", "Meera", "--date", "yesterday",
		"--item", "20:Komatsu Press/Back Panel/300L")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated entry "+id)

	out, err = executeCmd(t, app, "entry", "show", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Meera")
	assert.Contains(t, out, "Back Panel")
	assert.Contains(t, out, "Thu 29 Feb 2024")

	out, err = executeCmd(t, app, "entry", "remove", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed entry")

	_, err = executeCmd(t, app, "entry", "remove", id)
	assert.ErrorContains(t, err, "no entry with id")
}

func TestEntryList_DateAreaAndWhere(t *testing.T) {
	app := testApp(t)
	addEntry(t, app, "--area", "CF final", "--supervisor", "Ravi", "--item", "40:Hard Top/300L")
	addEntry(t, app, "--area", "CF final", "--supervisor", "Meera", "--item", "120:Hard Top/500L")
	addEntry(t, app, "--area", "WD final", "--supervisor", "Ravi", "--item", "5:Table Top")
	addEntry(t, app, "--area", "WD final", "--supervisor", "Ravi", "--date", "2024-02-10", "--item", "7:Table Top")

	out, err := executeCmd(t, app, "entry", "list", "--date", "today", "--area", "CF final")
	require.NoError(t, err)
	assert.Contains(t, out, "2 entries")
	assert.Contains(t, out, "160")

	out, err = executeCmd(t, app, "entry", "list", "--where", `quantity > 100 || "Table Top" in models`)
	require.NoError(t, err)
	assert.Contains(t, out, "Meera")
	assert.Contains(t, out, "3 entries")

	out, err = executeCmd(t, app, "entry", "list", "--from", "2024-02-01", "--to", "2024-02-28")
	require.NoError(t, err)
	assert.Contains(t, out, "1 entries")

	_, err = executeCmd(t, app, "entry", "list", "--where", "quantity +")
	assert.ErrorContains(t, err, "invalid --where")
}

func TestTaxonomyCommands(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "taxonomy", "add-category", "cf_line", "Side by Side")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "taxonomy", "add-item", "cf_line", "700L", "--group", "Side by Side")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "tax", "add-item", "wd_line", "Hot and Cold")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "taxonomy", "toggle", "100L")
	require.NoError(t, err)
	assert.Contains(t, out, "100L is now inactive")
	out, err = executeCmd(t, app, "taxonomy", "toggle", "100L", "--on")
	require.NoError(t, err)
	assert.Contains(t, out, "100L is now active")
	_, err = executeCmd(t, app, "taxonomy", "toggle", "200L", "--off")
	require.NoError(t, err)

	out, err = executeCmd(t, app, "taxonomy", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Side by Side")
	assert.Contains(t, out, "700L")
	assert.Contains(t, out, "Hot and Cold")
	assert.Contains(t, out, "200L (inactive)")
	assert.NotContains(t, out, "100L (inactive)")

	_, err = executeCmd(t, app, "taxonomy", "add-category", "wd_line", "Nope")
	assert.ErrorContains(t, err, "flat list")
	_, err = executeCmd(t, app, "taxonomy", "add-item", "everything", "x")
	assert.ErrorContains(t, err, "unknown taxonomy branch")

	_, err = executeCmd(t, app, "taxonomy", "remove-item", "cf_line", "700L", "--group", "Side by Side")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "taxonomy", "remove-category", "cf_line", "Side by Side")
	require.NoError(t, err)
	out, err = executeCmd(t, app, "taxonomy", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "Side by Side")
}

func TestTargetSetAndShow(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "target", "set", "--date", "2024-03-01", "--item", "300L=50", "--item", "400L=0")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved 2 targets for 2024-03-01 (total 50)")

	out, err = executeCmd(t, app, "target", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "300L")
	assert.Contains(t, out, "400L")

	_, err = executeCmd(t, app, "target", "set", "--month", "2024-03", "--item", "300L=1200")
	require.NoError(t, err)
	got, err := app.Targets.GetMonthly(context.Background(), fixedNow)
	require.NoError(t, err)
	assert.Equal(t, domain.TargetMap{"300L": 1200}, got)

	_, err = executeCmd(t, app, "target", "set", "--item", "300L")
	assert.ErrorContains(t, err, "MODEL=QTY")
	_, err = executeCmd(t, app, "target", "set", "--item", "300L=-1")
	assert.Error(t, err)
	_, err = executeCmd(t, app, "target", "show", "--date", "2024-03-01", "--month", "2024-03")
	assert.Error(t, err)
}

func TestReportProduction_WritesCSV(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "target", "set", "--item", "300L=50")
	require.NoError(t, err)
	addEntry(t, app, "--area", "Cabinet foaming", "--supervisor", "Ravi", "--item", "40:Hard Top/300L")

	csvPath := filepath.Join(t.TempDir(), "prod.csv")
	out, err := executeCmd(t, app, "report", "production", "--csv", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "CABINET FOAMING")
	assert.Contains(t, out, "80%")
	assert.Contains(t, out, "CSV written to")

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, "Model,Plan,Actual,Percent,Unlisted", lines[0])
	assert.Contains(t, lines, "300L,50,40,80,false")
}

func TestReportProduction_MonthAndUnknownArea(t *testing.T) {
	app := testApp(t)
	addEntry(t, app, "--area", "CRF", "--supervisor", "Ravi", "--item", "12:Komatsu Press/Side Panel/300L")
	addEntry(t, app, "--area", "CRF", "--supervisor", "Ravi", "--date", "2024-03-05", "--item", "8:Komatsu Press/Side Panel/300L")

	out, err := executeCmd(t, app, "report", "prod", "--area", "CRF", "--month", "2024-03")
	require.NoError(t, err)
	assert.Contains(t, out, "MARCH 2024")
	assert.Contains(t, out, "20")

	_, err = executeCmd(t, app, "report", "production", "--area", "Moon")
	assert.ErrorContains(t, err, "unknown area")
}

func TestReportFlowAndPlan(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "target", "set", "--item", "300L=60")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "target", "set", "--date", "2024-03-02", "--item", "300L=40")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "target", "set", "--month", "2024-03", "--item", "300L=1200", "--item", "Table Top=300")
	require.NoError(t, err)
	addEntry(t, app, "--area", "Pre-assembly", "--supervisor", "R", "--item", "30:Hard Top/300L")
	addEntry(t, app, "--area", "Cabinet foaming", "--supervisor", "R", "--item", "40:Hard Top/300L")

	csvPath := filepath.Join(t.TempDir(), "flow.csv")
	out, err := executeCmd(t, app, "report", "flow", "--csv", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "-10 !")
	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Cabinet foaming,60,40,20,-10")

	out, err = executeCmd(t, app, "report", "plan")
	require.NoError(t, err)
	assert.Contains(t, out, "1200")
	assert.Contains(t, out, "Table Top")

	out, err = executeCmd(t, app, "report", "plan", "--from", "2024-03-01", "--to", "2024-03-02")
	require.NoError(t, err)
	assert.Contains(t, out, "100")
	assert.Contains(t, out, "2024-03-02")

	_, err = executeCmd(t, app, "report", "plan", "--month", "2024-03", "--from", "2024-03-01")
	assert.ErrorContains(t, err, "cannot be combined")
}

func TestReportPlan_RangeLimit(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "report", "plan", "--from", "0001-01-01", "--to", "2024-03-01")
	assert.ErrorContains(t, err, "at most 366 days allowed")

	_, err = executeCmd(t, app, "report", "plan", "--from", "2024-01-01", "--to", "2024-12-31")
	assert.NoError(t, err, "a full leap year fits")

	_, err = executeCmd(t, app, "report", "plan", "--from", "2024-03-05", "--to", "2024-03-01")
	assert.NoError(t, err, "reversed range stays an empty report")
}

func TestReportWatch_NeedsDatabaseFile(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "report", "watch")
	assert.ErrorContains(t, err, "needs a database file")

	_, err = executeCmd(t, app, "report", "watch", "--view", "gantt")
	assert.ErrorContains(t, err, "unknown --view")
}

func TestDashboard_PlainWithoutTerminal(t *testing.T) {
	app := testApp(t)
	addEntry(t, app, "--area", "Cabinet foaming", "--supervisor", "R", "--item", "40:Hard Top/300L")

	out, err := executeCmd(t, app, "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "CABINET FOAMING · TODAY")
	assert.Contains(t, out, "PROCESS FLOW")
	assert.Contains(t, out, "1 entries")
}

func TestImportCommand(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "taxonomy": {"wd_line": ["Hot and Cold"]},
  "daily_targets": {"2024-03-01": {"300L": 50}},
  "entries": [{"date": "2024-03-01", "area": "WD final", "supervisor": "Ravi",
               "items": [{"quantity": 5, "model": "Hot and Cold"}]}]
}`), 0o644))

	out, err := executeCmd(t, app, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "0 categories, 1 items, 0 flags, 1 daily and 0 monthly target sets, 1 entries")

	_, err = executeCmd(t, app, "import", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
