package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"portaldocs/api/internal/app"
	"portaldocs/api/internal/config"
	"portaldocs/api/internal/search"
	"portaldocs/api/internal/sheets"
	"portaldocs/api/internal/store"
	"portaldocs/api/internal/syncer"
)

func main() {
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sheetsClient, err := sheets.New(ctx, sheets.Config{
		APIKey:            cfg.SheetsAPIKey,
		SpreadsheetID:     cfg.SpreadsheetID,
		ReadRange:         cfg.SheetRange,
		RequestsPerSecond: cfg.SheetsRPS,
		BurstSize:         cfg.SheetsBurst,
	})
	if err != nil {
		log.Fatalf("sheets client failed: %v", err)
	}

	var meiliClient *search.Meili
	if strings.TrimSpace(cfg.MeiliURL) != "" {
		meiliClient = search.NewMeili(cfg.MeiliURL, cfg.MeiliMasterKey)
	}
	searchService := search.NewService(meiliClient)
	defer searchService.Close()

	cache := store.NewCache()
	sync := syncer.New(sheetsClient, cache, searchService, cfg.SyncInterval)
	go sync.Run(ctx)

	service := app.New(cfg, cache, sync, searchService)
	httpServer := app.NewHTTPServer(service, cfg.CORSOrigin)
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpServer.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("document portal API listening on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
