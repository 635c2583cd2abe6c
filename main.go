package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"readerspace-backend/config"
	"readerspace-backend/routes"
	"readerspace-backend/services"
	"readerspace-backend/store"

	"github.com/gin-gonic/gin"
)

const notificationHistorySize = 100

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	st, err := store.Open(cfg.Store)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.Store.Driver, err)
	}
	if js, ok := st.(*store.JSONStore); ok {
		log.Printf("Using json store at %s", js.Path())
	} else {
		log.Printf("Using %s store", cfg.Store.Driver)
	}

	history := services.NewNotificationHistory(notificationHistorySize)
	registry := services.NewRegistry(cfg.Billing.MonthlyFee, nil)
	svc := services.NewMembershipService(st, registry, services.NewNotifier(cfg.Twilio, history))

	var scheduler *services.ReminderScheduler
	if cfg.Reminder.Schedule != "" {
		scheduler = services.NewReminderScheduler(svc, cfg.Reminder.Schedule)
		if err := scheduler.Start(); err != nil {
			log.Fatalf("Failed to start reminder scheduler: %v", err)
		}
	}

	r := routes.SetupRouter(svc, history, cfg.Server.CORSOrigins)
	printRoutes(r)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	if scheduler != nil {
		scheduler.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
