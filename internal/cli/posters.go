package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"themegen/internal/config"
	"themegen/internal/logx"
	"themegen/internal/paths"
	"themegen/internal/poster"
	"themegen/internal/tui"
)

var (
	postersPosition   int
	postersQuality    int
	postersWidth      int
	postersHeight     int
	postersNoProgress bool
)

func newPostersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posters [videos-or-folder...]",
		Short: "Extract poster JPEGs without touching the catalog",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runPosters,
	}

	cmd.Flags().IntVar(&postersPosition, "position", 0, "Poster frame position as percent of duration (overrides config)")
	cmd.Flags().IntVar(&postersQuality, "quality", 0, "Poster JPEG quality 1-100 (overrides config)")
	cmd.Flags().IntVar(&postersWidth, "width", 0, "Poster width in pixels, 0 keeps source size (overrides config)")
	cmd.Flags().IntVar(&postersHeight, "height", 0, "Poster height in pixels, 0 keeps source size (overrides config)")
	cmd.Flags().BoolVar(&postersNoProgress, "no-progress", false, "Disable interactive progress output")

	return cmd
}

type posterResult struct {
	File   string `json:"file"`
	Poster string `json:"poster,omitempty"`
	Error  string `json:"error,omitempty"`
}

func runPosters(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	glog, gcloser, _ := logx.NewGlobal("posters")
	if gcloser != nil {
		defer gcloser.Close()
	}
	glogf := func(format string, v ...any) {
		if glog != nil {
			glog.Printf(format, v...)
		}
	}

	status := tui.NewStatusWriter(cmd.ErrOrStderr())
	defer status.Stop()

	status.Update("Scanning videos...")
	files, err := paths.ExpandVideoArgs(args)
	if err != nil {
		return err
	}
	folder := filepath.Dir(files[0])
	glogf("posters started: %d files in %s", len(files), folder)

	status.Update("Loading config...")
	cfg, err := config.Load(paths.ConfigPath(folder))
	if err != nil {
		return err
	}
	opts := posterOptions(cmd, cfg)
	status.Stop()

	extractor := &poster.Extractor{}
	outWriter := cmd.OutOrStdout()
	useInteractive := detectInteractiveProgress(outWriter, postersNoProgress || outputJSON)

	var results []posterResult
	extractAll := func(report func(res posterResult)) {
		for _, file := range files {
			out, err := extractor.Extract(ctx, file, opts)
			res := posterResult{File: file, Poster: out, Error: errorString(err)}
			glogf("extract %s: poster=%s err=%v", filepath.Base(file), filepath.Base(out), err)
			results = append(results, res)
			if report != nil {
				report(res)
			}
		}
	}

	if useInteractive {
		model := tui.NewBatchModel("Extracting posters", []tui.Column{
			{Header: "FILE", Width: 32},
			{Header: "STATUS", Width: 10},
			{Header: "POSTER", Width: 36},
		})
		for _, file := range files {
			model.AddRow(file, []string{filepath.Base(file), "pending", ""})
		}
		if err := tui.RunWithWork(outWriter, model, func(send func(tea.Msg)) {
			extractAll(func(res posterResult) {
				fields := map[string]string{"STATUS": "done", "POSTER": filepath.Base(res.Poster)}
				if res.Error != "" {
					fields = map[string]string{"STATUS": "error", "POSTER": res.Error}
				}
				send(tui.FileUpdateMsg{Key: res.File, Fields: fields})
			})
		}); err != nil {
			return err
		}
	} else if outputJSON {
		extractAll(nil)
	} else {
		extractAll(func(res posterResult) {
			if res.Error != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s failed: %s\n", filepath.Base(res.File), res.Error)
				return
			}
			fmt.Fprintf(outWriter, "%s -> %s\n", filepath.Base(res.File), filepath.Base(res.Poster))
		})
	}

	if outputJSON {
		return writePostersJSON(cmd, results)
	}
	writePostersSummary(outWriter, cmd.ErrOrStderr(), results)
	return nil
}

// posterOptions layers explicit flags over the folder config. Unlike
// catalog generation, an explicit 0 width/height keeps the source size.
func posterOptions(cmd *cobra.Command, cfg config.Config) poster.Options {
	opts := poster.Options{
		PositionPercent: cfg.Poster.PositionPercent,
		Quality:         cfg.Poster.Quality,
		Width:           cfg.Poster.Width,
		Height:          cfg.Poster.Height,
	}
	flags := cmd.Flags()
	if flags.Changed("position") {
		opts.PositionPercent = postersPosition
	}
	if flags.Changed("quality") {
		opts.Quality = postersQuality
	}
	if flags.Changed("width") {
		opts.Width = postersWidth
	}
	if flags.Changed("height") {
		opts.Height = postersHeight
	}
	return opts
}

func writePostersSummary(out, errWriter io.Writer, results []posterResult) {
	extracted := 0
	var failures []string
	for _, res := range results {
		if res.Error == "" {
			extracted++
			continue
		}
		failures = append(failures, fmt.Sprintf("%s: %s", filepath.Base(res.File), res.Error))
	}

	fmt.Fprintf(out, "Posters: %d extracted, %d failed\n", extracted, len(failures))
	if len(failures) > 0 {
		fmt.Fprintf(errWriter, "Errors (%d):\n", len(failures))
		for _, line := range truncateList(failures, maxReportedErrors) {
			fmt.Fprintf(errWriter, "  %s\n", line)
		}
	}
}

func writePostersJSON(cmd *cobra.Command, results []posterResult) error {
	extracted := 0
	failed := 0
	for _, res := range results {
		if res.Error == "" {
			extracted++
		} else {
			failed++
		}
	}

	payload := struct {
		Results []posterResult `json:"results"`
		Summary struct {
			Extracted int `json:"extracted"`
			Failed    int `json:"failed"`
		} `json:"summary"`
	}{Results: results}
	payload.Summary.Extracted = extracted
	payload.Summary.Failed = failed

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode posters json: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
