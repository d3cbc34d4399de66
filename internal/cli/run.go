package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/voxly/internal/capture"
	"github.com/johnquangdev/voxly/internal/domain/entities"
	"github.com/johnquangdev/voxly/internal/output"
	"github.com/johnquangdev/voxly/internal/report"
	"github.com/johnquangdev/voxly/internal/usecase/briefing"
	"github.com/johnquangdev/voxly/pkg/runcontext"
)

type runOptions struct {
	text     string
	file     string
	mimeType string
	record   bool
	copy     bool
	export   string
	format   string
}

func NewRunCmd(deps *Dependencies) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Create a briefing from text, an audio file or the microphone",
		Long: "Create a briefing from exactly one input.\n" +
			"--text takes the transcript as is (use - to read stdin), --file uploads an audio file " +
			"and --record captures the microphone until Enter. Ctrl+C discards the recording.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBriefing(cmd, deps, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.text, "text", "t", "", "Transcript or notes to analyze (- reads stdin)")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Audio file to transcribe")
	cmd.Flags().StringVar(&opts.mimeType, "mime", "", "MIME type of --file (detected when empty)")
	cmd.Flags().BoolVarP(&opts.record, "record", "r", false, "Record the microphone")
	cmd.Flags().BoolVarP(&opts.copy, "copy", "c", false, "Copy the plain-text report to the clipboard")
	cmd.Flags().StringVarP(&opts.export, "export", "e", "", "Save the report as a Word document")
	cmd.Flags().StringVar(&opts.format, "format", "text", "Output format: text or json")

	cmd.MarkFlagsMutuallyExclusive("text", "file", "record")
	cmd.MarkFlagsOneRequired("text", "file", "record")

	return cmd
}

func runBriefing(cmd *cobra.Command, deps *Dependencies, opts *runOptions) error {
	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("unsupported format %q (use text or json)", opts.format)
	}

	ctx := cmd.Context()
	status := output.NewFormatter(cmd.ErrOrStderr())

	input, err := captureInput(ctx, cmd, deps, opts, status)
	if err != nil {
		return err
	}

	runCtx, cancel := runcontext.Begin(ctx, "", string(input.Kind()), deps.Config.Pipeline.Timeout)
	defer cancel()

	pipeline := deps.App.NewPipeline(briefing.WithObserver(status.Status))
	result, err := pipeline.Run(runCtx, input)
	deps.App.Logger.Debug("briefing.run.finished", runcontext.Fields(runCtx)...)
	if err != nil {
		// the localized message is what the user should see
		if st := pipeline.Status(); st.Step == entities.StepError && st.Message != "" {
			return errors.New(st.Message)
		}
		return err
	}

	locale := deps.Config.Pipeline.Locale
	if err := writeResult(cmd.OutOrStdout(), result, locale, opts.format); err != nil {
		return err
	}

	if opts.copy {
		if err := deps.copyText(report.PlainText(result, locale)); err != nil {
			status.Warning(fmt.Sprintf("Clipboard unavailable: %v", err))
		} else {
			status.Copied()
		}
	}

	if opts.export != "" {
		doc, err := report.Document(result, locale)
		if err != nil {
			return fmt.Errorf("rendering document: %w", err)
		}
		if err := os.WriteFile(opts.export, doc, 0o644); err != nil {
			return fmt.Errorf("saving document: %w", err)
		}
		status.Exported(opts.export)
	}
	return nil
}

// errRecordingDiscarded reports a recording abandoned before Enter
var errRecordingDiscarded = errors.New("recording discarded")

func inputMode(opts *runOptions) capture.Mode {
	switch {
	case opts.record:
		return capture.ModeVoice
	case opts.file != "":
		return capture.ModeFile
	default:
		return capture.ModeText
	}
}

func captureInput(ctx context.Context, cmd *cobra.Command, deps *Dependencies, opts *runOptions, status *output.Formatter) (entities.InputPayload, error) {
	var recorder *capture.Recorder
	if opts.record {
		recorder = deps.recorder(capture.WithTick(time.Second, status.RecordingElapsed))
	}
	modes := capture.NewSwitcher(recorder, deps.App.Logger)
	if err := modes.Switch(inputMode(opts)); err != nil {
		return entities.InputPayload{}, err
	}

	switch modes.Mode() {
	case capture.ModeVoice:
		return recordInput(ctx, cmd.InOrStdin(), recorder, modes, status)
	case capture.ModeFile:
		src := capture.FileSource{
			Path:     opts.file,
			MimeType: opts.mimeType,
			MaxBytes: int64(deps.Config.Server.MaxUploadMB) << 20,
		}
		return src.Capture(ctx)
	default:
		text := opts.text
		if text == "-" {
			b, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return entities.InputPayload{}, fmt.Errorf("reading stdin: %w", err)
			}
			text = string(b)
		}
		return capture.TextSource{Text: text}.Capture(ctx)
	}
}

// recordInput records until a line is read from stdin. An interrupt leaves
// voice mode instead, which discards the recording.
func recordInput(ctx context.Context, stdin io.Reader, recorder *capture.Recorder, modes *capture.Switcher, status *output.Formatter) (entities.InputPayload, error) {
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	enter := make(chan struct{})
	go func() {
		// EOF on stdin leaves Ctrl+C as the only way out
		if _, err := bufio.NewReader(stdin).ReadString('\n'); err == nil {
			close(enter)
		}
	}()

	started := time.Now()
	if err := recorder.Start(sigCtx); err != nil {
		return entities.InputPayload{}, err
	}
	status.RecordingStarted()

	select {
	case <-enter:
		input, err := recorder.Stop()
		if err != nil {
			return entities.InputPayload{}, err
		}
		status.RecordingStopped(time.Since(started))
		return input, nil
	case <-sigCtx.Done():
		if err := modes.Switch(capture.ModeText); err != nil {
			return entities.InputPayload{}, err
		}
		status.RecordingDiscarded()
		return entities.InputPayload{}, errRecordingDiscarded
	}
}

func writeResult(w io.Writer, result *entities.BriefingResult, locale, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(result)
	}
	text := report.PlainText(result, locale)
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, err := io.WriteString(w, text)
	return err
}
