package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"kolonnen-backend/internal/storage"
)

type KolonnenList interface {
	GetKolonnen(ctx context.Context) ([]storage.Kolonne, error)
}

func GetKolonnen(log *slog.Logger, list KolonnenList) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.kolonnen.GetKolonnen"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		kolonnen, err := list.GetKolonnen(ctx)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Failed to fetch kolonnen")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if kolonnen == nil {
			kolonnen = []storage.Kolonne{}
		}

		render.JSON(w, r, kolonnen)
	}
}
