package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"kolonnen-backend/internal/aggregation"
	"kolonnen-backend/internal/storage"
)

type DailyReader interface {
	GetDailyRecords(ctx context.Context, filter storage.DailyFilter) ([]aggregation.DailyRecord, error)
	GetDailyReportByID(ctx context.Context, id string) (*aggregation.DailyRecord, error)
}

const dateLayout = "2006-01-02"

// GetDailyRecords lists reports in a date range, optionally filtered by
// crew. Missing bounds fall back to the current month.
func GetDailyRecords(log *slog.Logger, reader DailyReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.daily.GetDailyRecords"

		query := r.URL.Query()
		filter := storage.DailyFilter{KolonneID: query.Get("kolonne")}

		if query.Get("from") == "" && query.Get("to") == "" {
			monthRange := aggregation.GetDateRangeForPreset(aggregation.PresetThisMonth)
			filter.From, filter.To = monthRange.From, monthRange.To
		} else {
			var err error
			filter.From, err = time.Parse(dateLayout, query.Get("from"))
			if err == nil {
				filter.To, err = time.Parse(dateLayout, query.Get("to"))
			}
			if err != nil {
				log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Invalid date bounds")
				http.Error(w, "Invalid from/to date, expected YYYY-MM-DD", http.StatusBadRequest)
				return
			}
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		records, err := reader.GetDailyRecords(ctx, filter)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Failed to fetch daily records")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if records == nil {
			records = []aggregation.DailyRecord{}
		}

		render.JSON(w, r, records)
	}
}

func GetDailyReport(log *slog.Logger, reader DailyReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.daily.GetDailyReport"

		id := chi.URLParam(r, "id")
		if id == "" {
			http.Error(w, "Missing report id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		record, err := reader.GetDailyReportByID(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Report not found", http.StatusNotFound)
				return
			}
			log.With(slog.String("op", op), slog.String("id", id), slog.String("error", err.Error())).Error("Failed to fetch daily report")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, record)
	}
}
