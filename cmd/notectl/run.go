package main

import (
	"context"
	"fmt"

	"github.com/inkling-notes/inkling-server/pkg/client"
	"github.com/spf13/cobra"
)

var (
	runLanguage string
	runFormat   string
	runQuestion string
)

var runCmd = &cobra.Command{
	Use:   "run <feature> <note-id>",
	Short: "Run an AI transformation against a note",
	Long: `Runs one AI feature (summarize, rewrite, explain, organize, translate,
improve, change_format, main_theme, detect_tone, key_points, answer_question)
against the note's content. The result is recorded in the note's AI history;
summarize also updates the stored summary, any other feature clears it.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		feature, noteID := args[0], args[1]
		ctx := context.Background()

		ctrl := client.NewSyncController(newClient(), client.SyncOptions{})
		ctrl.OnNotify = func(msg string) { fmt.Fprintln(cmd.ErrOrStderr(), msg) }
		if _, err := ctrl.Load(ctx, noteID); err != nil {
			fail(err)
		}

		out, err := ctrl.RunFeature(ctx, feature, client.ProcessRequest{
			Language: runLanguage,
			Format:   runFormat,
			Question: runQuestion,
		})
		if err != nil {
			fail(err)
		}
		fmt.Println(out)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&runLanguage, "language", "", "Target language (translate)")
	runCmd.Flags().StringVar(&runFormat, "format", "", "Target format (change_format)")
	runCmd.Flags().StringVar(&runQuestion, "question", "", "Question to answer (answer_question)")
}
