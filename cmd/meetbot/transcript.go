package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sandevgo/meetbot/internal/config"
	"github.com/sandevgo/meetbot/internal/core"
	"github.com/sandevgo/meetbot/internal/service/ui"
	"github.com/sandevgo/meetbot/internal/storage/sqlite"
)

var transcriptLimit int

var transcriptCmd = &cobra.Command{
	Use:   "transcript",
	Short: "Print recently archived meeting utterances",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			return err
		}
		appCfg := config.NewAppConfig(ctx)

		db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
		if err != nil {
			return err
		}
		defer db.Close()

		items, err := sqlite.NewTranscript(db).RecentUtterances(ctx, transcriptLimit)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Println(ui.DescStyle.Render("no archived utterances"))
			return nil
		}

		for _, u := range items {
			style := ui.SpeakerStyle
			if u.Origin == core.OriginEngine {
				style = ui.BotStyle
			}
			stamp := ""
			if !u.Timestamp.IsZero() {
				stamp = ui.DescStyle.Render(u.Timestamp.Format("15:04:05")) + " "
			}
			fmt.Printf("%s%s %s\n", stamp, style.Render(u.Speaker+":"), u.Text)
		}
		return nil
	},
}

func init() {
	transcriptCmd.Flags().IntVarP(&transcriptLimit, "limit", "n", 50, "number of utterances to print")
	rootCmd.AddCommand(transcriptCmd)
}
