// Package secrets fetches the spreadsheet-service credentials from AWS
// Secrets Manager.
package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// credentialFields is the order in which known secret-blob field names are
// probed for the embedded service-account JSON. This list is part of the
// external secret-format contract.
var credentialFields = []string{
	"service_account_json",
	"google_credentials",
	"credentials_json",
}

var errNoCredentials = errors.New("secret blob carries no service-account credentials")

// Resolver fetches and caches the credential blob for the process lifetime.
// A failed fetch leaves the resolver re-derivable on the next call.
type Resolver struct {
	secretID string
	region   string

	mu     sync.Mutex
	client *secretsmanager.Client
	cached []byte
}

func NewResolver(secretID, region string) *Resolver {
	return &Resolver{secretID: secretID, region: region}
}

// CredentialsJSON returns the service-account JSON extracted from the
// secret blob, fetching it on first use.
func (r *Resolver) CredentialsJSON(ctx context.Context) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cached != nil {
		return r.cached, nil
	}

	if r.client == nil {
		cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(r.region))
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		r.client = secretsmanager.NewFromConfig(cfg)
	}

	out, err := r.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(r.secretID),
	})
	if err != nil {
		// Force a fresh client on the next attempt.
		r.client = nil
		return nil, fmt.Errorf("get secret %s: %w", r.secretID, err)
	}
	if out.SecretString == nil {
		return nil, fmt.Errorf("secret %s has no string payload", r.secretID)
	}

	creds, err := extractCredentials([]byte(*out.SecretString))
	if err != nil {
		return nil, fmt.Errorf("secret %s: %w", r.secretID, err)
	}

	slog.InfoContext(ctx, "Resolved sheets credentials from secret store",
		"secret_id", r.secretID, "region", r.region, "size", len(creds))
	r.cached = creds
	return creds, nil
}

// extractCredentials pulls the service-account JSON out of the secret blob.
// The blob is either a JSON object with one of the known credential fields,
// or the service-account document itself.
func extractCredentials(blob []byte) ([]byte, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(blob, &fields); err != nil {
		return nil, fmt.Errorf("parse secret blob: %w", err)
	}

	for _, name := range credentialFields {
		raw, ok := fields[name]
		if !ok {
			continue
		}
		// The field holds either a JSON-encoded string or a nested object.
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return []byte(s), nil
		}
		return raw, nil
	}

	// A bare service-account document is accepted as-is.
	if _, ok := fields["client_email"]; ok {
		return blob, nil
	}
	return nil, errNoCredentials
}
