package cmd

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export <event-uid>",
	Short: "Download the attendance spreadsheet for an event",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		commonSetUp()

		data, err := client.EventAttendanceXlsx(cmdContext(), args[0])
		if err != nil {
			log.Fatal().Err(err).Msg("failed to download attendance export")
		}

		if err := os.WriteFile(exportOut, data, 0o644); err != nil {
			log.Fatal().Err(err).Str("path", exportOut).Msg("failed to write export file")
		}
		log.Info().Str("path", exportOut).Int("bytes", len(data)).Msg("attendance export written")
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportOut, "out", "attendance.xlsx", "output file path")
}
