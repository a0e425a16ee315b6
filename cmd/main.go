package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// zklogin-verifier - CLI tool and API service for verifying zkLogin
// signatures
func main() {
	// Optional .env for local development; flags still win.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
