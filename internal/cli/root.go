package cli

import (
	"fmt"
	"os/exec"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/johnquangdev/voxly/internal/app"
	"github.com/johnquangdev/voxly/internal/capture"
	"github.com/johnquangdev/voxly/internal/version"
	"github.com/johnquangdev/voxly/pkg/config"
)

type Dependencies struct {
	App    *app.App
	Config *config.Config

	// Optional overrides, mainly for tests
	NewRecorder func(opts ...capture.RecorderOption) *capture.Recorder
	Clipboard   func(text string) error
	LookPath    func(file string) (string, error)
}

func (d *Dependencies) recorder(opts ...capture.RecorderOption) *capture.Recorder {
	if d.NewRecorder != nil {
		return d.NewRecorder(opts...)
	}
	return d.App.NewRecorder(opts...)
}

func (d *Dependencies) copyText(text string) error {
	if d.Clipboard != nil {
		return d.Clipboard(text)
	}
	return clipboard.WriteAll(text)
}

func (d *Dependencies) lookPath(file string) (string, error) {
	if d.LookPath != nil {
		return d.LookPath(file)
	}
	return exec.LookPath(file)
}

func NewRootCmd(deps *Dependencies) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "voxly",
		Short:         "Turn recordings and notes into structured briefings",
		Long:          "A CLI that records the microphone, reads an audio file or takes text, transcribes it and produces a briefing with summary, themes, key points, action items and sentiment.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(version.Full() + "\n")

	rootCmd.AddCommand(NewRunCmd(deps))
	rootCmd.AddCommand(NewDoctorCmd(deps))
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Full())
		},
	}
}
