package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	createTitle   string
	createContent string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a note",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		n, err := newClient().CreateNote(context.Background(), createTitle, createContent)
		if err != nil {
			fail(err)
		}
		fmt.Printf("%s  %s\n", n.ID, n.Title)
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().StringVar(&createTitle, "title", "", "Note title (defaults to Untitled)")
	createCmd.Flags().StringVar(&createContent, "content", "", "Note content")
}
