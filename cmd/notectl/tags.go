package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/inkling-notes/inkling-server/pkg/client"
	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags <note-id>",
	Short: "Generate tags for a note and store them",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		ctrl := client.NewSyncController(newClient(), client.SyncOptions{})
		ctrl.OnNotify = func(msg string) { fmt.Fprintln(cmd.ErrOrStderr(), msg) }
		if _, err := ctrl.Load(ctx, args[0]); err != nil {
			fail(err)
		}

		tags, err := ctrl.GenerateTags(ctx)
		if err != nil {
			fail(err)
		}
		if len(tags) == 0 {
			fmt.Println("No tags suggested")
			return
		}
		fmt.Println(strings.Join(tags, ", "))
	},
}

func init() {
	rootCmd.AddCommand(tagsCmd)
}
