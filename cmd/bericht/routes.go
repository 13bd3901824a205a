package main

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	getbericht "kolonnen-backend/http-server/bericht/get"
	getdaily "kolonnen-backend/http-server/daily/get"
	savedaily "kolonnen-backend/http-server/daily/save"
	updaily "kolonnen-backend/http-server/daily/update"
	getkolonnen "kolonnen-backend/http-server/kolonnen/get"
	getlv "kolonnen-backend/http-server/lv/get"
	lvtemplate "kolonnen-backend/http-server/lv/template"
	uploadlv "kolonnen-backend/http-server/lv/upload"
	"kolonnen-backend/internal/config"
	"kolonnen-backend/internal/middleware/auth"
	"kolonnen-backend/internal/service/bericht"
	"kolonnen-backend/internal/storage/mysql"
)

func routes(cfg config.Config, log *slog.Logger, storage *mysql.Storage, berichtService *bericht.Service) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8081", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// period report for the dashboard
	router.Get("/api/bericht", getbericht.GetPeriodReport(log, berichtService))

	// daily reports; regular users stay inside the edit window
	router.Get("/api/daily", getdaily.GetDailyRecords(log, storage))
	router.Get("/api/daily/{id}", getdaily.GetDailyReport(log, storage))
	router.Post("/api/daily", savedaily.SaveDailyReport(log, storage, false))
	router.Put("/api/daily/{id}", updaily.UpdateDailyReport(log, storage, false))

	router.Get("/api/kolonnen", getkolonnen.GetKolonnen(log, storage))

	// LV import
	router.Get("/api/lv", getlv.GetLVRows(log, storage))
	router.Post("/api/lv/import", uploadlv.UploadLV(log, storage))
	router.Get("/api/lv/template", lvtemplate.GetLVTemplate(log))

	// admin panel, edit window does not apply here
	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))

	adminRouter.Post("/daily", savedaily.SaveDailyReport(log, storage, true))
	adminRouter.Put("/daily/{id}", updaily.UpdateDailyReport(log, storage, true))

	router.Mount("/api/admin", adminRouter)

	return router
}
