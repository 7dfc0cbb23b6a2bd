package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/ukydev/carkit/internal/config"
	"github.com/ukydev/carkit/internal/db"
	"github.com/ukydev/carkit/internal/server"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	ctx := context.Background()
	client, err := db.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	log.Info("connected to MongoDB")

	srv, err := server.New(ctx, cfg, client, log)
	if err != nil {
		log.WithError(err).Fatal("failed to build server")
	}

	if err := srv.Start(); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
