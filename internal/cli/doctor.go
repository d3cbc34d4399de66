package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/voxly/internal/output"
	"github.com/johnquangdev/voxly/pkg/config"
)

func NewDoctorCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check prerequisites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := output.NewFormatter(cmd.OutOrStdout())
			cfg := deps.Config
			ok := true

			if cfg.AI.APIKey != "" {
				f.SetupCheck("API key", true, fmt.Sprintf("%s from %s", cfg.KeyStatus(), cfg.AI.APIKeySource))
			} else {
				f.SetupCheck("API key", false, "not set. Export one of "+strings.Join(config.APIKeyNames, ", "))
				ok = false
			}

			if path, err := deps.lookPath(cfg.Recorder.FFmpegPath); err != nil {
				f.SetupCheck("ffmpeg", false, "not found; --record is unavailable. Install ffmpeg or set FFMPEG_PATH")
				ok = false
			} else {
				f.SetupCheck("ffmpeg", true, path)
			}

			f.SetupCheck("Microphone input", true, fmt.Sprintf("%s:%s", cfg.Recorder.InputFormat, cfg.Recorder.InputDevice))
			f.SetupCheck("Transcription provider", true, deps.App.Transcriber.Name())
			f.SetupCheck("Analysis provider", true, deps.App.Analyzer.Name())

			if path := config.FilePath(); path != "" {
				f.SetupCheck("Config file", true, path)
			} else {
				f.SetupCheck("Config file", true, "none, using environment")
			}

			if ok {
				f.Success("\nAll prerequisites met.")
			} else {
				f.Warning("\nSome prerequisites are missing.")
			}
			return nil
		},
	}
}
