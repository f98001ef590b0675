package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/prodline/internal/domain"
	"github.com/alexanderramin/prodline/internal/engine"
	"golang.org/x/sync/errgroup"
)

type reportService struct {
	source   SnapshotSource
	observer UseCaseObserver
}

func NewReportService(source SnapshotSource, observers ...UseCaseObserver) ReportService {
	return &reportService{source: source, observer: useCaseObserverOrNoop(observers)}
}

func (s *reportService) Production(ctx context.Context, q engine.ProductionQuery) (_ *engine.ProductionReport, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"area": string(q.Area), "window": q.Window.Key()}
	defer func() { observe(ctx, s.observer, "report-production", startedAt, fields, &err) }()

	if q.Area, err = parseArea(q.Area); err != nil {
		return nil, err
	}
	snap, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	report := engine.ReconcileProduction(snap, q)
	fields["rows"] = len(report.Rows) + len(report.MachineRows)
	fields["total_actual"] = report.TotalActual
	return &report, nil
}

func (s *reportService) Flow(ctx context.Context, q engine.FlowQuery) (_ *engine.FlowReport, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"date": domain.DateKey(q.Date), "model": q.Model}
	defer func() { observe(ctx, s.observer, "report-flow", startedAt, fields, &err) }()

	snap, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	report := engine.ProcessFlow(snap, q)
	fields["total_plan"] = report.TotalPlan
	fields["wip_anomaly"] = report.HasAnomaly()
	return &report, nil
}

func (s *reportService) MonthlyPlan(ctx context.Context, month time.Time) (_ *engine.MonthlyRollupReport, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "report-monthly-plan", startedAt, map[string]any{"month": domain.MonthKey(month)}, &err)
	}()

	snap, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	report := engine.MonthlyRollup(snap, month)
	return &report, nil
}

func (s *reportService) RangePlan(ctx context.Context, start, end time.Time) (_ *engine.RangeRollupReport, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"start": domain.DateKey(start), "end": domain.DateKey(end)}
	defer func() { observe(ctx, s.observer, "report-range-plan", startedAt, fields, &err) }()

	snap, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	report := engine.RangeRollup(snap, start, end)
	fields["days"] = len(report.Daily)
	return &report, nil
}

// Dashboard builds every view over a single snapshot. The builders share
// the snapshot read-only and run in parallel.
func (s *reportService) Dashboard(ctx context.Context, req DashboardRequest) (_ *Dashboard, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"date": domain.DateKey(req.Date), "area": string(req.Area)}
	defer func() { observe(ctx, s.observer, "dashboard", startedAt, fields, &err) }()

	area, err := parseArea(req.Area)
	if err != nil {
		return nil, err
	}
	snap, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}

	out := &Dashboard{TakenAt: snap.TakenAt, EntryCount: len(snap.Entries)}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out.Daily = engine.ReconcileProduction(snap, engine.ProductionQuery{Area: area, Window: engine.DayWindow(req.Date)})
		return gctx.Err()
	})
	g.Go(func() error {
		out.Monthly = engine.ReconcileProduction(snap, engine.ProductionQuery{Area: area, Window: engine.MonthWindow(req.Date)})
		return gctx.Err()
	})
	g.Go(func() error {
		out.Flow = engine.ProcessFlow(snap, engine.FlowQuery{Date: req.Date, Model: req.Model})
		return gctx.Err()
	})
	g.Go(func() error {
		out.MonthPlan = engine.MonthlyRollup(snap, req.Date)
		return gctx.Err()
	})
	if err = g.Wait(); err != nil {
		return nil, fmt.Errorf("building dashboard: %w", err)
	}
	fields["wip_anomaly"] = out.Flow.HasAnomaly()
	return out, nil
}

func parseArea(a domain.Area) (domain.Area, error) {
	parsed, err := domain.ParseArea(string(a))
	if err != nil {
		return "", &domain.ValidationError{Code: domain.ErrCodeUnknownArea, Field: "area", Message: err.Error()}
	}
	return parsed, nil
}
