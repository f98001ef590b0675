package cli

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/prodline/internal/domain"
	"github.com/alexanderramin/prodline/internal/engine"
	"github.com/alexanderramin/prodline/internal/service"
	"github.com/alexanderramin/prodline/internal/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDashboard(t *testing.T, app *App) *teatest.Driver {
	t.Helper()
	req := service.DashboardRequest{Date: app.today(), Area: domain.AreaCabinetFoaming}
	return teatest.New(t, newDashboardModel(context.Background(), app, req), teatest.WithSize(120, 60))
}

func dashboardState(t *testing.T, d *teatest.Driver) dashboardModel {
	t.Helper()
	m, ok := d.Model.(dashboardModel)
	require.True(t, ok)
	return m
}

func TestDashboard_LoadsOnStartup(t *testing.T) {
	app := testApp(t)
	addEntry(t, app, "--area", "Cabinet foaming", "--supervisor", "R", "--item", "40:Hard Top/300L")

	d := newTestDashboard(t, app)

	m := dashboardState(t, d)
	assert.False(t, m.loading)
	require.NotNil(t, m.data)
	assert.Equal(t, 40, m.data.Daily.TotalActual)

	view := d.PlainView()
	assert.Contains(t, view, "PRODLINE · Cabinet foaming · Fri 1 Mar 2024")
	assert.Contains(t, view, "300L")
	assert.Contains(t, view, "quit")
}

func TestDashboard_DayAndAreaNavigation(t *testing.T) {
	app := testApp(t)
	addEntry(t, app, "--area", "CF final", "--supervisor", "R", "--date", "2024-02-29", "--item", "7:Hard Top/300L")

	d := newTestDashboard(t, app)

	d.Press("left")
	m := dashboardState(t, d)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), m.req.Date)

	d.Press("tab")
	m = dashboardState(t, d)
	assert.Equal(t, domain.AreaCFFinal, m.req.Area)
	assert.Equal(t, 7, m.data.Daily.TotalActual)
	assert.Contains(t, d.PlainView(), "Thu 29 Feb 2024")

	d.Press("t")
	d.Press("shift+tab")
	m = dashboardState(t, d)
	assert.Equal(t, app.today(), m.req.Date)
	assert.Equal(t, domain.AreaCabinetFoaming, m.req.Area)
}

func TestDashboard_IgnoresStaleLoads(t *testing.T) {
	app := testApp(t)
	d := newTestDashboard(t, app)

	stale := service.DashboardRequest{Date: app.today().AddDate(0, 0, -5), Area: domain.AreaCRF}
	d.Send(dashboardLoadedMsg{req: stale, data: &service.Dashboard{EntryCount: 99}})

	m := dashboardState(t, d)
	assert.NotEqual(t, 99, m.data.EntryCount)
}

func TestDashboard_ShowsLoadError(t *testing.T) {
	app := testApp(t)
	app.Reports = failingReports{err: errors.New("database is locked")}

	d := newTestDashboard(t, app)
	assert.Contains(t, d.PlainView(), "Error: database is locked")
}

func TestDashboard_Quit(t *testing.T) {
	app := testApp(t)
	d := newTestDashboard(t, app)

	d.Press("q")
	assert.True(t, d.Quitting)
}

func TestCycleArea_Wraps(t *testing.T) {
	first, last := domain.AllAreas[0], domain.AllAreas[len(domain.AllAreas)-1]
	assert.Equal(t, first, cycleArea(last, 1))
	assert.Equal(t, last, cycleArea(first, -1))
	assert.Equal(t, first, cycleArea("nowhere", 1))
}

type failingReports struct {
	service.ReportService
	err error
}

func (f failingReports) Dashboard(context.Context, service.DashboardRequest) (*service.Dashboard, error) {
	return nil, f.err
}

func (f failingReports) Production(context.Context, engine.ProductionQuery) (*engine.ProductionReport, error) {
	return nil, f.err
}
