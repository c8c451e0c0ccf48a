package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-intake/internal/config"
	"github.com/goliatone/go-intake/internal/pkg/logger"
	"github.com/goliatone/go-intake/pkg/loader"
	"github.com/goliatone/go-intake/pkg/mail"
	"github.com/goliatone/go-intake/pkg/model"
	"github.com/goliatone/go-intake/pkg/persist"
	"github.com/goliatone/go-intake/pkg/tui"
	"github.com/goliatone/go-intake/pkg/wizard"
)

func main() {
	schemaPath := flag.String("schema", "", "questionnaire YAML path (overrides INTAKE_SCHEMA_PATH)")
	stateDir := flag.String("state", "", "directory for saved progress (overrides INTAKE_STATE_DIR)")
	endpoint := flag.String("endpoint", "", "intake server URL to submit to; SMTP is used when empty")
	reset := flag.Bool("reset", false, "discard any saved progress before starting")
	flag.Parse()

	cfg := config.Load()
	if *schemaPath == "" {
		*schemaPath = cfg.Form.SchemaPath
	}
	if *stateDir == "" {
		*stateDir = cfg.Form.StateDir
	}

	zlog := logger.NewFileOnly(cfg.App.LogFilePath)
	defer func() { _ = zlog.Sync() }()

	schema, err := loader.FromFile(*schemaPath)
	if err != nil {
		log.Fatalf("Failed to load questionnaire: %v", err)
	}

	store, err := persist.NewDir(*stateDir)
	if err != nil {
		log.Fatalf("Failed to open state directory: %v", err)
	}
	saver := persist.New(store, persist.WithLogger(zlog))
	if *reset {
		saver.Clear()
	}

	session, err := wizard.NewSession(schema,
		wizard.WithSaver(saver),
		wizard.WithLogger(zlog),
	)
	if err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}

	gateway, err := buildGateway(cfg, schema, *endpoint, zlog)
	if err != nil {
		log.Fatalf("Failed to configure submission: %v", err)
	}

	runner, err := tui.NewRunner(session,
		tui.WithSubmitter(wizard.NewSubmitter(session, gateway, zlog)),
	)
	if err != nil {
		log.Fatalf("Failed to start runner: %v", err)
	}

	if err := runner.Run(context.Background()); err != nil {
		if errors.Is(err, tui.ErrAborted) {
			fmt.Println("\nProgress saved. Run again to pick up where you left off.")
			os.Exit(0)
		}
		log.Fatalf("Session ended with error: %v", err)
	}
}

// buildGateway picks the submission transport: HTTP to a running intake
// server when -endpoint is set, direct SMTP otherwise.
func buildGateway(cfg *config.Config, schema *model.Questionnaire, endpoint string, zlog *zap.Logger) (wizard.Gateway, error) {
	if endpoint != "" {
		return newHTTPGateway(endpoint), nil
	}
	return mail.NewGateway(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Email,
		Password: cfg.SMTP.Password,
		Sender:   cfg.SMTP.SenderName + " <" + cfg.SMTP.Email + ">",
		To:       cfg.SMTP.To,
	}, schema, mail.WithLogger(zlog))
}

type httpGateway struct {
	url    string
	client *http.Client
}

func newHTTPGateway(url string) *httpGateway {
	return &httpGateway{
		url:    url,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (g *httpGateway) Submit(ctx context.Context, answers map[string]model.Value) error {
	payload, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("post brief: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("server rejected brief: %s", resp.Status)
	}
	return nil
}
