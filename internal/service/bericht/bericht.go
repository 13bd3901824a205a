// Package bericht assembles the period report the dashboard and the
// Berichte screen render: resolved date range, aggregated totals,
// derived KPIs and the contributing crews.
package bericht

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"kolonnen-backend/internal/aggregation"
	"kolonnen-backend/internal/storage"
)

type BerichtStorage interface {
	GetDailyRecords(ctx context.Context, filter storage.DailyFilter) ([]aggregation.DailyRecord, error)
	GetKolonnen(ctx context.Context) ([]storage.Kolonne, error)
}

type Service struct {
	storage BerichtStorage
}

func New(storage BerichtStorage) *Service {
	return &Service{storage: storage}
}

// Request selects the reporting period. Explicit From/To bounds win
// over the preset; otherwise the preset is resolved against the clock.
type Request struct {
	Preset    aggregation.PeriodPreset
	From      string
	To        string
	KolonneID string
}

// Report is the complete response for one period query.
type Report struct {
	From                   string                   `json:"from"`
	To                     string                   `json:"to"`
	Totals                 aggregation.PeriodTotals `json:"totals"`
	ContributingCrewsCount int                      `json:"contributingCrewsCount"`
	ContributingCrewIDs    []string                 `json:"contributingCrewIds"`
	ContributingCrews      []storage.Kolonne        `json:"contributingCrews"`
	KPIs                   aggregation.KPIs         `json:"kpis"`
}

const dateLayout = "2006-01-02"

func (s *Service) PeriodReport(ctx context.Context, req Request) (*Report, error) {
	const op = "service.bericht.PeriodReport"

	dateRange := resolveRange(req, time.Now())

	var (
		records  []aggregation.DailyRecord
		kolonnen []storage.Kolonne
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = s.storage.GetDailyRecords(gCtx, storage.DailyFilter{
			From:      dateRange.From,
			To:        dateRange.To,
			KolonneID: req.KolonneID,
		})
		if err != nil {
			return fmt.Errorf("daily records: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		kolonnen, err = s.storage.GetKolonnen(gCtx)
		if err != nil {
			return fmt.Errorf("kolonnen: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := aggregation.AggregatePeriod(records, dateRange)

	return &Report{
		From:                   dateRange.From.Format(dateLayout),
		To:                     dateRange.To.Format(dateLayout),
		Totals:                 result.Totals,
		ContributingCrewsCount: result.ContributingCrewsCount,
		ContributingCrewIDs:    result.ContributingCrewIDs,
		ContributingCrews:      contributingCrews(kolonnen, result.ContributingCrewIDs),
		KPIs:                   aggregation.CalculateKPIs(result.Totals),
	}, nil
}

// resolveRange turns the request into concrete bounds. Unparsable
// explicit bounds yield an inverted range, which aggregates to
// nothing; range anomalies are silent by contract, never errors.
func resolveRange(req Request, now time.Time) aggregation.DateRange {
	if req.From != "" || req.To != "" {
		from, errFrom := time.ParseInLocation(dateLayout, req.From, now.Location())
		to, errTo := time.ParseInLocation(dateLayout, req.To, now.Location())
		if errFrom != nil || errTo != nil {
			today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
			return aggregation.DateRange{From: today, To: today.AddDate(0, 0, -1)}
		}
		return aggregation.DateRange{From: from, To: to}
	}
	return aggregation.RangeForPreset(req.Preset, now)
}

func contributingCrews(kolonnen []storage.Kolonne, crewIDs []string) []storage.Kolonne {
	ids := make(map[string]struct{}, len(crewIDs))
	for _, id := range crewIDs {
		ids[id] = struct{}{}
	}

	crews := make([]storage.Kolonne, 0, len(crewIDs))
	for _, kolonne := range kolonnen {
		if _, ok := ids[kolonne.ID]; ok {
			crews = append(crews, kolonne)
		}
	}
	return crews
}
