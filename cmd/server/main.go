package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"duit/config"
	"duit/internal/database"
	"duit/internal/router"
	"duit/pkg/cloudinary"
	"duit/pkg/llm"
	"duit/pkg/payment"
)

func main() {
	cfg := config.Load()
	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	model := llm.NewOpenAIClient(&cfg.OpenAI)

	var provider payment.Provider = &payment.StubProvider{}
	if cfg.Xendit.SecretKey != "" {
		provider = payment.NewXenditProvider(cfg.Xendit.BaseURL, cfg.Xendit.SecretKey, cfg.Xendit.SuccessURL)
	} else {
		log.Printf("[payment] XENDIT_SECRET_KEY not set, using stub provider")
	}

	var cloud cloudinary.Client
	if cfg.Cloudinary.CloudName != "" {
		cloud, err = cloudinary.NewClientFromParams(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
		if err != nil {
			log.Fatalf("cloudinary: %v", err)
		}
	} else {
		log.Printf("[upload] Cloudinary not configured, receipt uploads disabled")
	}

	engine := router.Setup(cfg, db, model, provider, cloud)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		log.Printf("server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server shutdown:", err)
	}
	log.Println("server stopped")
}
