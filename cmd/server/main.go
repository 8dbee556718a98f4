package main

import (
	"log"
	"net/http"
	"path/filepath"

	"github.com/joho/godotenv"

	"datasuite/adapters/excel"
	"datasuite/adapters/mail"
	"datasuite/adapters/pdf"
	"datasuite/app"
	"datasuite/internal/api"
	"datasuite/internal/config"
	"datasuite/internal/session"
	"datasuite/ports"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.EnsureOutputDir(); err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	if !cfg.EmailConfigured() {
		log.Printf("[Server] SMTP credentials not set; notification endpoint will refuse delivery")
	}

	openReader := func(path string) ports.TableReader { return excel.NewDataReader(path) }
	notifier := mail.NewNotifier(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.Report.CompanyName)
	svc := app.NewReportService(
		openReader,
		excel.NewReportWriter(cfg.Report.CompanyName),
		pdf.NewReportWriter(cfg.Report.CompanyName),
		notifier,
		cfg.Report.OutputDir,
		cfg.Report.MaxFileSizeMB,
	)

	uploadDir := filepath.Join(cfg.Report.OutputDir, "uploads")
	handler := api.NewHandler(svc, session.NewManager(), uploadDir)

	addr := ":" + cfg.Server.Port
	log.Printf("[Server] listening on %s", addr)
	if err := http.ListenAndServe(addr, api.NewRouter(handler)); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
