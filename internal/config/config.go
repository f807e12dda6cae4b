package config

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// Config holds all configuration for the sandwatch server.
type Config struct {
	Port     int
	APIKey   string
	LogLevel string

	// Sandbox backend (the remote runtime that actually runs processes)
	BackendURL   string
	BackendToken string

	// Storage mount inside the sandbox
	MountPath   string // where the FUSE mount is expected (e.g. "/data/x")
	MountFSType string // filesystem tag as mount(8) reports it (e.g. "tigrisfs")

	// Tigris credentials. Presence gates the mount check; the mount
	// check itself never reads their values.
	TigrisAccessKeyID     string
	TigrisSecretAccessKey string
	TigrisAccountID       string

	// Bucket probe (control-plane side reachability check)
	Bucket         string
	S3Endpoint     string
	S3Region       string
	ForcePathStyle bool

	// Gateway worker process
	GatewaySignature  string // launch command signature to locate the process
	GatewayVersionCmd string
	GatewayConfigCmd  string

	// Poll profiles
	MountPollIntervalMS int
	MountPollAttempts   int
	ExecPollIntervalMS  int
	ExecPollAttempts    int

	// Local data directory for the SQLite check history
	DataDir string

	// AWS Secrets Manager. If set, secrets are fetched at startup and
	// applied as env vars (explicit env vars take precedence).
	SecretsARN string
}

// Load reads configuration from environment variables with sensible
// defaults. If SANDWATCH_SECRETS_ARN is set, secrets are fetched from AWS
// Secrets Manager first, then environment variables are applied on top.
func Load() (*Config, error) {
	if arn := os.Getenv("SANDWATCH_SECRETS_ARN"); arn != "" {
		if err := loadSecretsManager(arn); err != nil {
			return nil, fmt.Errorf("failed to load secrets from %s: %w", arn, err)
		}
	}

	cfg := &Config{
		Port:     8080,
		APIKey:   os.Getenv("SANDWATCH_API_KEY"),
		LogLevel: envOrDefault("SANDWATCH_LOG_LEVEL", "info"),

		BackendURL:   envOrDefault("SANDWATCH_BACKEND_URL", "http://localhost:9090"),
		BackendToken: os.Getenv("SANDWATCH_BACKEND_TOKEN"),

		MountPath:   envOrDefault("SANDWATCH_MOUNT_PATH", "/data/x"),
		MountFSType: envOrDefault("SANDWATCH_MOUNT_FSTYPE", "tigrisfs"),

		TigrisAccessKeyID:     os.Getenv("TIGRIS_ACCESS_KEY_ID"),
		TigrisSecretAccessKey: os.Getenv("TIGRIS_SECRET_ACCESS_KEY"),
		TigrisAccountID:       os.Getenv("TIGRIS_ACCOUNT_ID"),

		Bucket:         os.Getenv("SANDWATCH_BUCKET"),
		S3Endpoint:     envOrDefault("SANDWATCH_S3_ENDPOINT", "https://t3.storage.dev"),
		S3Region:       envOrDefault("SANDWATCH_S3_REGION", "auto"),
		ForcePathStyle: os.Getenv("SANDWATCH_S3_FORCE_PATH_STYLE") == "true",

		GatewaySignature:  envOrDefault("SANDWATCH_GATEWAY_SIGNATURE", "gateway serve"),
		GatewayVersionCmd: envOrDefault("SANDWATCH_GATEWAY_VERSION_CMD", "gateway --version"),
		GatewayConfigCmd:  envOrDefault("SANDWATCH_GATEWAY_CONFIG_CMD", "cat /etc/gateway/config.json"),

		MountPollIntervalMS: envOrDefaultInt("SANDWATCH_MOUNT_POLL_INTERVAL_MS", 200),
		MountPollAttempts:   envOrDefaultInt("SANDWATCH_MOUNT_POLL_ATTEMPTS", 10),
		ExecPollIntervalMS:  envOrDefaultInt("SANDWATCH_EXEC_POLL_INTERVAL_MS", 500),
		ExecPollAttempts:    envOrDefaultInt("SANDWATCH_EXEC_POLL_ATTEMPTS", 30),

		DataDir: envOrDefault("SANDWATCH_DATA_DIR", "/var/lib/sandwatch"),

		SecretsARN: os.Getenv("SANDWATCH_SECRETS_ARN"),
	}

	if portStr := os.Getenv("SANDWATCH_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid SANDWATCH_PORT %q: %w", portStr, err)
		}
		cfg.Port = port
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrDefaultInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// loadSecretsManager fetches a JSON secret from AWS Secrets Manager and
// sets any values as environment variables (only if not already set, so
// explicit env vars always win). Uses the default AWS credential chain.
func loadSecretsManager(arn string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Extract region from ARN: arn:aws:secretsmanager:REGION:ACCOUNT:secret:NAME
	var opts []func(*awsconfig.LoadOptions) error
	if parts := strings.Split(arn, ":"); len(parts) >= 4 && parts[3] != "" {
		opts = append(opts, awsconfig.WithRegion(parts[3]))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return fmt.Errorf("load AWS config: %w", err)
	}

	client := secretsmanager.NewFromConfig(awsCfg)
	result, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: &arn,
	})
	if err != nil {
		return fmt.Errorf("GetSecretValue: %w", err)
	}

	if result.SecretString == nil {
		return fmt.Errorf("secret %s has no string value", arn)
	}

	var secrets map[string]string
	if err := json.Unmarshal([]byte(*result.SecretString), &secrets); err != nil {
		return fmt.Errorf("parse secret JSON: %w", err)
	}

	applied := 0
	for key, value := range secrets {
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
			applied++
		}
	}

	log.Printf("config: loaded %d secrets from Secrets Manager (%d keys in secret, env overrides take precedence)", applied, len(secrets))
	return nil
}
