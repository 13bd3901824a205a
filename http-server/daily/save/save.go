package save

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/google/uuid"

	"kolonnen-backend/internal/aggregation"
)

type DailySaver interface {
	SaveDailyReport(ctx context.Context, record aggregation.DailyRecord) error
}

type Response struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// SaveDailyReport creates a report for one crew and day. Non-admin
// callers may only write within the edit window of the report date.
func SaveDailyReport(log *slog.Logger, saver DailySaver, admin bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.daily.SaveDailyReport"

		var record aggregation.DailyRecord
		if err := render.DecodeJSON(r.Body, &record); err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Failed to decode request body")
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if record.Date == "" || record.KolonneID == "" {
			http.Error(w, "date and kolonne_id are required", http.StatusBadRequest)
			return
		}
		if !aggregation.IsWithinEditWindow(record.Date, admin) {
			http.Error(w, "Edit window for this date has closed", http.StatusForbidden)
			return
		}
		if record.ID == "" {
			record.ID = uuid.NewString()
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := saver.SaveDailyReport(ctx, record); err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Failed to save daily report")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, Response{ID: record.ID, Status: "created"})
	}
}
