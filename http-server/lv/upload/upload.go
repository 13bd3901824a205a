package upload

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"kolonnen-backend/internal/lvimport"
)

type LVSaver interface {
	SaveLVRows(ctx context.Context, rows []lvimport.LVRow) error
}

// uploads beyond this size are rejected before parsing
const maxUploadBytes = 20 << 20

type Response struct {
	FileName    string                  `json:"fileName"`
	FileType    string                  `json:"fileType"`
	Sheets      []string                `json:"sheets"`
	Sheet       string                  `json:"sheet"`
	Headers     []string                `json:"headers"`
	Mapping     lvimport.ColumnMapping  `json:"mapping"`
	IsCanonical bool                    `json:"isCanonical"`
	Result      lvimport.ImportResult   `json:"result"`
	DryRun      bool                    `json:"dryRun"`
	Saved       int                     `json:"saved"`
}

// UploadLV accepts a multipart LV upload (field "file"), validates it
// and persists the accepted rows. Form fields: sheet (Excel sheet to
// read instead of the first), generate_auto_ids, dry_run.
func UploadLV(log *slog.Logger, saver LVSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.lv.UploadLV"

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Failed to parse multipart form")
			http.Error(w, "Invalid multipart request", http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "Missing file field", http.StatusBadRequest)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Failed to read upload")
			http.Error(w, "Failed to read upload", http.StatusBadRequest)
			return
		}

		var parsed *lvimport.ParsedFile
		if sheet := r.FormValue("sheet"); sheet != "" {
			parsed, err = lvimport.ParseSheet(header.Filename, data, sheet)
		} else {
			parsed, err = lvimport.ParseFile(header.Filename, data)
		}
		if err != nil {
			status := http.StatusUnprocessableEntity
			if errors.Is(err, lvimport.ErrUnsupportedFormat) || errors.Is(err, lvimport.ErrSheetNotFound) {
				status = http.StatusBadRequest
			}
			log.With(
				slog.String("op", op),
				slog.String("file", header.Filename),
				slog.String("error", err.Error()),
			).Error("Failed to parse LV upload")
			http.Error(w, err.Error(), status)
			return
		}

		opts := lvimport.Options{GenerateAutoIDs: r.FormValue("generate_auto_ids") == "true"}
		result := lvimport.ValidateAndTransform(parsed.RawData, parsed.Mapping, opts)
		dryRun := r.FormValue("dry_run") == "true"

		saved := 0
		if !dryRun && len(result.Rows) > 0 {
			ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
			defer cancel()

			if err := saver.SaveLVRows(ctx, result.Rows); err != nil {
				log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Failed to save LV rows")
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
			saved = len(result.Rows)
		}

		render.JSON(w, r, Response{
			FileName:    parsed.FileName,
			FileType:    parsed.FileType,
			Sheets:      parsed.Sheets,
			Sheet:       parsed.SelectedSheet,
			Headers:     parsed.Headers,
			Mapping:     parsed.Mapping,
			IsCanonical: parsed.IsCanonical,
			Result:      result,
			DryRun:      dryRun,
			Saved:       saved,
		})
	}
}
