package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"jobtrackr/config/database"
	"jobtrackr/internal/events"
	"jobtrackr/pkg/logger"
	"jobtrackr/router"
)

func main() {
	logger.Init()

	if err := godotenv.Load(); err != nil {
		logger.Sugar.Info("No .env file found, using environment variables from OS")
	}

	db := database.Connect()
	defer db.Close()

	hub := events.NewHub()
	go hub.Run()

	handler := router.Setup(db, hub)

	addr := ":" + os.Getenv("PORT")
	if addr == ":" {
		addr = ":8080"
	}
	logger.Sugar.Infof("Backend listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Sugar.Fatalf("Server failed: %v", err)
	}
}
