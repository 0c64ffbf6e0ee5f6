package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	getagenda "renza-entrega/http-server/agenda/get"
	"renza-entrega/http-server/auth/forgot"
	"renza-entrega/http-server/auth/login"
	"renza-entrega/http-server/auth/me"
	"renza-entrega/http-server/auth/register"
	"renza-entrega/http-server/contracts/finalize"
	getcontracts "renza-entrega/http-server/contracts/get"
	"renza-entrega/http-server/contracts/update"
	generate_excel "renza-entrega/http-server/generate-report/generate-excel"
	generate_pdf "renza-entrega/http-server/generate-report/generate-pdf"
	savemedia "renza-entrega/http-server/media/save"
	saveoccurrence "renza-entrega/http-server/occurrence/save"
	"renza-entrega/internal/app"
	"renza-entrega/internal/config"
	"renza-entrega/internal/middleware/auth"
	"renza-entrega/internal/middleware/deadline"
)

func routes(cfg config.Config, log *slog.Logger, deps *app.App) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(deps.Metrics.Middleware)

	router.Post("/api/auth/register", register.Register(log, deps.Auth))
	router.Post("/api/auth/login", login.Login(log, deps.Auth))
	router.Post("/api/auth/forgot-password", forgot.ForgotPassword(log, deps.Auth))

	router.Group(func(r chi.Router) {
		r.Use(auth.Bearer(log, deps.Auth))

		r.Get("/api/auth/me", me.Me())

		r.Get("/api/contracts", getcontracts.GetContracts(log, deps.Checklist))
		r.Get("/api/contracts/{id}", getcontracts.GetContract(log, deps.Checklist))

		// checklist
		r.Put("/api/contracts/{id}/items/{code}", update.UpdateItemOutcome(log, deps.Checklist))
		r.Post("/api/contracts/{id}/verification", update.FinalizeVerification(log, deps.Checklist))

		r.Group(func(r chi.Router) {
			r.Use(deadline.Extend(cfg.UploadTimeout))

			r.Post("/api/contracts/{id}/items/{code}/media", savemedia.SaveItemMedia(log, deps.Checklist))
			r.Post("/api/contracts/{id}/items/{code}/occurrence", saveoccurrence.SaveOccurrence(log, deps.Checklist))
			r.Post("/api/contracts/{id}/signature", finalize.FinalizeContract(log, deps.Checklist))
			r.Post("/api/media", savemedia.SaveMedia(log, deps.Checklist))
		})

		r.Get("/api/contracts/{id}/report.pdf", generate_pdf.GenerateContractPDF(log, deps.Reports))
		r.Get("/api/report/excel", generate_excel.GenerateReportExcel(log, deps.Excel, time.Now))
		r.Get("/api/agenda", getagenda.GetAgenda(log, deps.Agenda, time.Now))
	})

	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))
	adminRouter.Handle("/", deps.Metrics.Handler())
	router.Mount("/metrics", adminRouter)

	if cfg.FrontendDir != "" {
		serveFrontend(router, log, cfg.FrontendDir)
	}

	return router
}

// serveFrontend serves the built web client with an SPA fallback to index.html.
func serveFrontend(router *chi.Mux, log *slog.Logger, dir string) {
	if _, err := os.Stat(dir); err != nil {
		log.Warn("frontend dir not found, static files disabled", slog.String("path", dir))
		return
	}

	index := filepath.Join(dir, "index.html")

	router.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(dir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			http.ServeFile(w, r, path)
			return
		}
		http.ServeFile(w, r, index)
	})
}
