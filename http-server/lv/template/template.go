package template

import (
	"log/slog"
	"net/http"

	"kolonnen-backend/internal/lvimport"
)

// GetLVTemplate serves the import template. Query parameter format
// selects csv (default) or xlsx. The CSV variant is written with a BOM
// so Excel opens the umlauts correctly.
func GetLVTemplate(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.lv.GetLVTemplate"

		switch r.URL.Query().Get("format") {
		case "", "csv":
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
			w.Header().Set("Content-Disposition", `attachment; filename="`+lvimport.TemplateFileName+`.csv"`)
			w.Write([]byte("\uFEFF" + lvimport.GenerateTemplateCSV()))

		case "xlsx":
			data, err := lvimport.GenerateTemplateExcel()
			if err != nil {
				log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Failed to generate template workbook")
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
			w.Header().Set("Content-Disposition", `attachment; filename="`+lvimport.TemplateFileName+`.xlsx"`)
			w.Write(data)

		default:
			http.Error(w, "Unknown format, expected csv or xlsx", http.StatusBadRequest)
		}
	}
}
