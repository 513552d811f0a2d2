package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <note-id>",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := newClient().DeleteNote(context.Background(), args[0]); err != nil {
			fail(err)
		}
		fmt.Println("Note deleted")
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
