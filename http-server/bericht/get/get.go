package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"kolonnen-backend/internal/aggregation"
	"kolonnen-backend/internal/service/bericht"
)

type PeriodReporter interface {
	PeriodReport(ctx context.Context, req bericht.Request) (*bericht.Report, error)
}

// GetPeriodReport serves the aggregated period report. Query
// parameters: preset, from, to (ISO dates, override the preset),
// kolonne (optional crew filter).
func GetPeriodReport(log *slog.Logger, reporter PeriodReporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.bericht.GetPeriodReport"

		query := r.URL.Query()
		req := bericht.Request{
			Preset:    aggregation.PeriodPreset(query.Get("preset")),
			From:      query.Get("from"),
			To:        query.Get("to"),
			KolonneID: query.Get("kolonne"),
		}
		if req.Preset == "" && req.From == "" && req.To == "" {
			req.Preset = aggregation.PresetThisMonth
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		report, err := reporter.PeriodReport(ctx, req)
		if err != nil {
			log.With(
				slog.String("op", op),
				slog.String("preset", string(req.Preset)),
				slog.String("error", err.Error()),
			).Error("Failed to build period report")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, report)
	}
}
