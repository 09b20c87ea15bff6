package main

import (
	"log"

	_ "timetrack/docs"
	"timetrack/internal/config"
	"timetrack/internal/server"
)

// @title           Timetrack API
// @version         1.0
// @description     API for task management and time tracking.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
}
