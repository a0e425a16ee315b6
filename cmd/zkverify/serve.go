package zkverify

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/mystenlabs/zklogin-verifier/server"
)

func NewServeCmd() *cobra.Command {
	cfg := &server.ServeConfig{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the zkLogin verification API server",
		Long:  `Start the HTTP API server for verifying zkLogin signatures against a network's provider allowlist and current epoch.`,
		Example: `  # Start server on default port
  zklogin-verifier serve

  # Start with custom settings
  zklogin-verifier serve --host 0.0.0.0 --port 9090 --keys-dir ./setup

  # Production deployment with TLS
  zklogin-verifier serve --host 0.0.0.0 --port 443 --enable-tls \
    --cert-file /etc/ssl/cert.pem --key-file /etc/ssl/key.pem

  # Load the production setup only, with a local fullnode override
  zklogin-verifier serve --environments prod \
    --fullnode-url Localnet=http://127.0.0.1:9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.Run(cfg)
		},
	}

	// Server flags
	cmd.Flags().StringVar(&cfg.Host, "host", "localhost", "Host to bind to")
	cmd.Flags().IntVarP(&cfg.Port, "port", "p", 8080, "Port to listen on")

	// Verifying key flags
	cmd.Flags().StringVarP(&cfg.KeysDir, "keys-dir", "d", "./setup", "Directory containing Groth16 verifying keys")
	cmd.Flags().StringSliceVarP(&cfg.Environments, "environments", "e", []string{}, "Proving environments to load (comma-separated, empty = all)")

	// Epoch resolution flags
	cmd.Flags().StringToStringVar(&cfg.FullnodeURLs, "fullnode-url", nil, "Per-network fullnode endpoint overrides (Network=URL)")
	cmd.Flags().DurationVar(&cfg.EpochTimeout, "epoch-timeout", 10*time.Second, "Total timeout for epoch resolution")
	cmd.Flags().IntVar(&cfg.EpochAttempts, "epoch-attempts", 3, "Epoch query attempts before giving up")

	// Performance flags
	cmd.Flags().Int64Var(&cfg.MaxRequestSize, "max-request-size", 1*1024*1024, "Maximum request body size in bytes")
	cmd.Flags().DurationVar(&cfg.ReadTimeout, "read-timeout", 15*time.Second, "HTTP read timeout")
	cmd.Flags().DurationVar(&cfg.WriteTimeout, "write-timeout", 60*time.Second, "HTTP write timeout (epoch resolution and pairing checks can be slow)")
	cmd.Flags().DurationVar(&cfg.IdleTimeout, "idle-timeout", 120*time.Second, "HTTP idle timeout")
	cmd.Flags().DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", 30*time.Second, "Graceful shutdown timeout")

	// Security flags
	cmd.Flags().BoolVar(&cfg.EnableCORS, "enable-cors", true, "Enable CORS middleware")
	cmd.Flags().StringSliceVar(&cfg.CorsOrigins, "cors-origins", []string{"*"}, "Allowed CORS origins")

	// Observability flags
	cmd.Flags().BoolVar(&cfg.EnablePprof, "enable-pprof", false, "Enable pprof endpoints (debug only)")
	cmd.Flags().StringVar(&cfg.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&cfg.LogFormat, "log-format", "text", "Log format (text, json)")

	// TLS flags
	cmd.Flags().BoolVar(&cfg.EnableTLS, "enable-tls", false, "Enable TLS/HTTPS")
	cmd.Flags().StringVar(&cfg.CertFile, "cert-file", "", "TLS certificate file")
	cmd.Flags().StringVar(&cfg.KeyFile, "key-file", "", "TLS private key file")

	return cmd
}
