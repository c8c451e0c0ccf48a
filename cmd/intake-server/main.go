package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/goliatone/go-intake/internal/config"
	"github.com/goliatone/go-intake/internal/pkg/logger"
	"github.com/goliatone/go-intake/internal/server"
	"github.com/goliatone/go-intake/pkg/loader"
	"github.com/goliatone/go-intake/pkg/mail"
	"github.com/goliatone/go-intake/pkg/model"
)

func main() {
	cfg := config.Load()

	zlog := logger.New(cfg.App.LogFilePath, cfg.IsProduction())
	defer func() { _ = zlog.Sync() }()

	schema, err := loadSchema(cfg.Form.SchemaPath, cfg.Form.SchemaName)
	if err != nil {
		log.Fatalf("Failed to load questionnaire: %v", err)
	}

	gateway, err := mail.NewGateway(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Email,
		Password: cfg.SMTP.Password,
		Sender:   cfg.SMTP.SenderName + " <" + cfg.SMTP.Email + ">",
		To:       cfg.SMTP.To,
	}, schema, mail.WithLogger(zlog))
	if err != nil {
		log.Fatalf("Failed to configure mail gateway: %v", err)
	}

	srv := server.New(cfg, schema, gateway, zlog)
	log.Fatal(srv.Run())
}

func loadSchema(path, schemaName string) (*model.Questionnaire, error) {
	switch filepath.Ext(path) {
	case ".json":
		// JSON schema paths are treated as OpenAPI documents.
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return loader.FromOpenAPI(context.Background(), data, schemaName)
	default:
		return loader.FromFile(path)
	}
}
