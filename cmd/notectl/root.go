package main

import (
	"fmt"
	"os"
	"time"

	"github.com/inkling-notes/inkling-server/pkg/client"
	"github.com/spf13/cobra"
)

var (
	serverURL string
	authToken string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "notectl",
	Short: "Command-line client for the inkling notes API",
	Long: `notectl talks to a running inkling-server instance: list, create and
inspect notes, and run AI transformations against their content.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("INKLING_SERVER", "http://localhost:5001"), "Base URL of the notes API")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", os.Getenv("INKLING_TOKEN"), "Bearer token for the API")
}

func newClient() *client.Client {
	c := client.New(serverURL, 30*time.Second)
	if authToken != "" {
		c.SetToken(authToken)
	}
	return c
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
