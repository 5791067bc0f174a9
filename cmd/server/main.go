package main

import (
	_ "taskboard/docs"
	"taskboard/internal/config"
	"taskboard/internal/server"

	log "github.com/sirupsen/logrus"
)

// @title           Task Board API
// @version         1.0
// @description     Collaborative task boards synchronized over WebSocket.

// @host      localhost:3001
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
		log.Fatalf("server initialization failed: %v", err)
	}

	s.Run()
}
