package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"kolonnen-backend/internal/lvimport"
)

type LVList interface {
	GetLVRows(ctx context.Context) ([]lvimport.LVRow, error)
}

func GetLVRows(log *slog.Logger, list LVList) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.lv.GetLVRows"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		rows, err := list.GetLVRows(ctx)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Failed to fetch LV rows")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if rows == nil {
			rows = []lvimport.LVRow{}
		}

		render.JSON(w, r, rows)
	}
}
