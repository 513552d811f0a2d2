package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	listSearch string
	listJSON   bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes, newest first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		notes, err := newClient().ListNotes(context.Background(), listSearch)
		if err != nil {
			fail(err)
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(notes); err != nil {
				fail(err)
			}
			return
		}

		for _, n := range notes {
			tags := ""
			if len(n.Tags) > 0 {
				tags = "  [" + strings.Join(n.Tags, ", ") + "]"
			}
			pin := " "
			if n.IsPinned {
				pin = "*"
			}
			fmt.Printf("%s %s  %s%s\n", pin, n.ID, n.Title, tags)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listSearch, "search", "", "Filter by title or tag substring")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
}
