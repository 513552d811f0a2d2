package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <note-id>",
	Short: "Show a note, including summary, tags and AI history",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		n, err := newClient().GetNote(context.Background(), args[0])
		if err != nil {
			fail(err)
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(n); err != nil {
			fail(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
