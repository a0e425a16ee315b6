package main

import (
	"github.com/spf13/cobra"

	"github.com/mystenlabs/zklogin-verifier/cmd/zkverify"
)

// Init the cmd
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "zklogin-verifier",
		Short: "zkLogin Signature Verification API Server",
		Long:  `A service that verifies zkLogin signatures: zero-knowledge proofs binding an OpenID identity to a signed payload and epoch`,
	}

	rootCmd.AddCommand(
		zkverify.NewServeCmd(),
		NewVersionCmd(),
	)

	return rootCmd
}
