package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mystenlabs/zklogin-verifier/chain"
	"github.com/mystenlabs/zklogin-verifier/server/api"
	"github.com/mystenlabs/zklogin-verifier/verifier"
	"github.com/mystenlabs/zklogin-verifier/zklogin"
)

type ServeConfig struct {
	// Server settings
	Host string
	Port int

	// Verifying key settings
	KeysDir      string
	Environments []string // Specific environments to load (empty = all)

	// Epoch resolution settings
	FullnodeURLs  map[string]string // Network -> JSON-RPC endpoint override
	EpochTimeout  time.Duration
	EpochAttempts int

	// Performance settings
	MaxRequestSize  int64
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Security settings
	EnableCORS  bool
	CorsOrigins []string

	// Observability
	EnablePprof bool
	LogLevel    string
	LogFormat   string // "json" or "text"

	// TLS settings
	EnableTLS bool
	CertFile  string
	KeyFile   string
}

func Run(cfg *ServeConfig) error {
	// Validate configuration
	if err := validateServeConfig(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Setup structured logging
	logger := SetupLogger(cfg.LogLevel, cfg.LogFormat)

	// Initialize verifying key registry
	registry := zklogin.NewKeyRegistry()

	// Load verifying keys
	if err := loadKeys(registry, cfg, logger); err != nil {
		return fmt.Errorf("failed to load verifying keys: %w", err)
	}

	allowlist := verifier.DefaultAllowlist()

	// The JWK store refreshes provider key sets in the background for the
	// lifetime of the process.
	jwkCtx, stopJWKs := context.WithCancel(context.Background())
	defer stopJWKs()

	jwks, err := zklogin.NewJWKStore(jwkCtx, allowlist.JWKSEndpoints())
	if err != nil {
		return fmt.Errorf("failed to initialize JWK store: %w", err)
	}

	endpoints, err := parseEndpoints(cfg.FullnodeURLs)
	if err != nil {
		return fmt.Errorf("invalid fullnode override: %w", err)
	}

	// Create verification pipeline
	v := verifier.New(verifier.Config{
		Allowlist:     allowlist,
		Chain:         chain.New(),
		Endpoints:     endpoints,
		Proofs:        zklogin.NewGroth16Verifier(registry),
		JWKs:          jwks,
		Logger:        logger,
		EpochTimeout:  cfg.EpochTimeout,
		EpochAttempts: cfg.EpochAttempts,
	})

	// Create server
	server := api.NewServer(v)

	// Setup router with middleware
	r := setupRouter(server, cfg, logger)

	// Configure HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	httpServer := &http.Server{
		Addr:           addr,
		Handler:        r,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "addr", addr, "tls", cfg.EnableTLS)

		var err error
		if cfg.EnableTLS {
			err = httpServer.ListenAndServeTLS(cfg.CertFile, cfg.KeyFile)
		} else {
			err = httpServer.ListenAndServe()
		}

		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal or server error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		logger.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	}

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	logger.Info("Shutting down server gracefully...")
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}

func loadKeys(registry *zklogin.KeyRegistry, cfg *ServeConfig, logger Logger) error {
	envsToLoad := cfg.Environments
	explicit := len(envsToLoad) > 0
	if !explicit {
		// Load all environments
		envsToLoad = []string{string(zklogin.EnvProd), string(zklogin.EnvTest)}
	}

	loaded := 0
	for _, name := range envsToLoad {
		env := zklogin.Env(name)

		if err := registry.LoadKey(env, cfg.KeysDir); err != nil {
			// An operator who named an environment gets a hard failure; the
			// load-all default tolerates a partial setup directory.
			if explicit {
				return fmt.Errorf("verifying key for configured environment %q: %w", name, err)
			}
			logger.Warn("Failed to load verifying key", "env", name, "error", err)
			continue
		}
		loaded++
		logger.Info("Loaded verifying key", "env", name)
	}

	if loaded == 0 {
		return fmt.Errorf("no verifying keys loaded from %s", cfg.KeysDir)
	}

	logger.Info("Verifying key loading complete", "loaded", loaded, "total", len(envsToLoad))
	return nil
}

func parseEndpoints(overrides map[string]string) (map[verifier.Network]string, error) {
	if len(overrides) == 0 {
		return nil, nil
	}
	out := make(map[verifier.Network]string, len(overrides))
	for name, url := range overrides {
		network, err := verifier.ParseNetwork(name)
		if err != nil {
			return nil, err
		}
		out[network] = url
	}
	return out, nil
}

func validateServeConfig(cfg *ServeConfig) error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port: %d", cfg.Port)
	}

	if cfg.EnableTLS {
		if cfg.CertFile == "" || cfg.KeyFile == "" {
			return fmt.Errorf("TLS enabled but cert-file or key-file not provided")
		}
		if _, err := os.Stat(cfg.CertFile); err != nil {
			return fmt.Errorf("cert file not found: %s", cfg.CertFile)
		}
		if _, err := os.Stat(cfg.KeyFile); err != nil {
			return fmt.Errorf("key file not found: %s", cfg.KeyFile)
		}
	}

	if _, err := os.Stat(cfg.KeysDir); err != nil {
		return fmt.Errorf("verifying key directory not found: %s", cfg.KeysDir)
	}

	return nil
}
