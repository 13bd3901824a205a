package update

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

type DailyUpdater interface {
	GetDailyReportByID(ctx context.Context, id string) (*aggregation.DailyRecord, error)
	UpdateDailyReport(ctx context.Context, record aggregation.DailyRecord) error
}

type Response struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// UpdateDailyReport replaces an existing report. The edit window is
// checked against the stored report date, so moving a record cannot be
// used to reopen a closed day.
func UpdateDailyReport(log *slog.Logger, updater DailyUpdater, admin bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.daily.UpdateDailyReport"

		id := chi.URLParam(r, "id")
		if id == "" {
			http.Error(w, "Missing report id", http.StatusBadRequest)
			return
		}

		var record aggregation.DailyRecord
		if err := render.DecodeJSON(r.Body, &record); err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Failed to decode request body")
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		record.ID = id

		if record.Date == "" || record.KolonneID == "" {
			http.Error(w, "date and kolonne_id are required", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		existing, err := updater.GetDailyReportByID(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Report not found", http.StatusNotFound)
				return
			}
			log.With(slog.String("op", op), slog.String("id", id), slog.String("error", err.Error())).Error("Failed to load daily report")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		if !aggregation.IsWithinEditWindow(existing.Date, admin) || !aggregation.IsWithinEditWindow(record.Date, admin) {
			http.Error(w, "Edit window for this date has closed", http.StatusForbidden)
			return
		}

		if err := updater.UpdateDailyReport(ctx, record); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Report not found", http.StatusNotFound)
				return
			}
			log.With(slog.String("op", op), slog.String("id", id), slog.String("error", err.Error())).Error("Failed to update daily report")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, Response{ID: id, Status: "updated"})
	}
}
