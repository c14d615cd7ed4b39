package backend

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"kidpoints/internal/amqp"
	"kidpoints/internal/config"
	"kidpoints/internal/secrets"
	gsheet "kidpoints/internal/sheets/google"
	"kidpoints/internal/sheets/memory"
	"kidpoints/internal/storage"
)

// DefaultFactory builds the store selected by DATA_BACKEND.
type DefaultFactory struct {
	cfg    *config.Config
	logger *slog.Logger
}

func NewFactory(cfg *config.Config, logger *slog.Logger) *DefaultFactory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{cfg: cfg, logger: logger}
}

func (f *DefaultFactory) CreateBackend(ctx context.Context) (*Result, error) {
	t := Type(f.cfg.DataBackend)
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", f.cfg.DataBackend)
	}

	switch t {
	case SheetsBackend:
		return f.createSheetsBackend(ctx)
	case SQLiteBackend:
		return f.createSQLiteBackend()
	default:
		f.logger.Info("Initialized memory backend")
		return &Result{Store: memory.New()}, nil
	}
}

func (f *DefaultFactory) createSheetsBackend(ctx context.Context) (*Result, error) {
	cli, err := f.NewSheetsClient(ctx)
	if err != nil {
		return nil, err
	}

	f.logger.Info("Initialized Google Sheets backend",
		"families_tab", f.cfg.FamiliesTab, "secret_auth", f.cfg.SecretID != "")
	return &Result{Store: cli}, nil
}

// NewSheetsClient builds an authenticated Sheets client, resolving the
// service-account secret when one is configured and falling back to the
// development OAuth pair otherwise. The sync worker uses this directly.
func (f *DefaultFactory) NewSheetsClient(ctx context.Context) (*gsheet.Client, error) {
	opts := gsheet.Options{
		SpreadsheetID: f.cfg.GoogleSpreadsheetID,
		FamiliesTab:   f.cfg.FamiliesTab,
	}

	if f.cfg.SecretID != "" {
		resolver := secrets.NewResolver(f.cfg.SecretID, f.cfg.SecretRegion)
		creds, err := resolver.CredentialsJSON(ctx)
		if err != nil {
			return nil, fmt.Errorf("resolve sheets credentials: %w", err)
		}
		opts.CredentialsJSON = creds
	} else {
		client, token, err := f.oauthMaterial()
		if err != nil {
			return nil, err
		}
		opts.OAuthClientJSON = client
		opts.OAuthTokenJSON = token
	}

	cli, err := gsheet.New(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("initialize Google Sheets client: %w", err)
	}
	return cli, nil
}

func (f *DefaultFactory) createSQLiteBackend() (*Result, error) {
	repo, err := storage.NewRepository(f.cfg.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("initialize sqlite repository: %w", err)
	}

	// AMQP is optional; without it events stay local only.
	var amqpClient *amqp.Client
	if f.cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(f.cfg.AMQPURL, f.cfg.AMQPExchange, f.cfg.AMQPQueue)
		if err != nil {
			f.logger.Warn("Failed to initialize AMQP client, continuing without sheet sync", "error", err)
			amqpClient = nil
		} else {
			f.logger.Info("Initialized AMQP client",
				"exchange", f.cfg.AMQPExchange, "queue", f.cfg.AMQPQueue)
		}
	}

	f.logger.Info("Initialized sqlite backend",
		"db_path", f.cfg.SQLiteDBPath, "amqp_enabled", amqpClient != nil)

	cleanup := func() error {
		if amqpClient != nil {
			amqpClient.Close()
		}
		return repo.Close()
	}
	return &Result{
		Store:   storage.NewSyncingRepository(repo, publisherOrNil(amqpClient)),
		Cleanup: cleanup,
	}, nil
}

// publisherOrNil avoids handing a typed-nil *amqp.Client to the interface.
func publisherOrNil(c *amqp.Client) storage.EventPublisher {
	if c == nil {
		return nil
	}
	return c
}

// oauthMaterial loads the development OAuth client and token from env,
// preferring inline JSON over file paths.
func (f *DefaultFactory) oauthMaterial() (client, token []byte, err error) {
	switch {
	case f.cfg.GoogleOAuthClientJSON != "":
		client = []byte(f.cfg.GoogleOAuthClientJSON)
	case f.cfg.GoogleOAuthClientFile != "":
		client, err = os.ReadFile(f.cfg.GoogleOAuthClientFile)
		if err != nil {
			return nil, nil, fmt.Errorf("read oauth client file: %w", err)
		}
	}
	switch {
	case f.cfg.GoogleOAuthTokenJSON != "":
		token = []byte(f.cfg.GoogleOAuthTokenJSON)
	case f.cfg.GoogleOAuthTokenFile != "":
		token, err = os.ReadFile(f.cfg.GoogleOAuthTokenFile)
		if err != nil {
			return nil, nil, fmt.Errorf("read oauth token file: %w", err)
		}
	}
	if len(client) == 0 || len(token) == 0 {
		return nil, nil, fmt.Errorf("sheets backend needs SECRET_ID or an OAuth client+token pair")
	}
	return client, token, nil
}
