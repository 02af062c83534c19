package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"themegen/internal/assembly"
	"themegen/internal/catalog"
	"themegen/internal/config"
	"themegen/internal/logx"
	"themegen/internal/paths"
	"themegen/internal/poster"
	"themegen/internal/tui"
	"themegen/internal/xmp"
)

const maxReportedErrors = 5

var (
	generateAppend     bool
	generateBaseURL    string
	generatePosition   int
	generateQuality    int
	generateWidth      int
	generateHeight     int
	generateKeepXMP    bool
	generateNoProgress bool
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [videos-or-folder...]",
		Short: "Assemble a theme catalog from videos and their XMP sidecars",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runGenerate,
	}

	cmd.Flags().BoolVar(&generateAppend, "append", false, "Extend an existing catalog in the folder instead of writing a new one")
	cmd.Flags().StringVar(&generateBaseURL, "base-url", "", "Base URL prefix for asset references (overrides config)")
	cmd.Flags().IntVar(&generatePosition, "position", 0, "Poster frame position as percent of duration (overrides config)")
	cmd.Flags().IntVar(&generateQuality, "quality", 0, "Poster JPEG quality 1-100 (overrides config)")
	cmd.Flags().IntVar(&generateWidth, "width", 0, "Poster width in pixels (overrides config)")
	cmd.Flags().IntVar(&generateHeight, "height", 0, "Poster height in pixels (overrides config)")
	cmd.Flags().BoolVar(&generateKeepXMP, "keep-xmp", false, "Leave sidecars in place instead of moving them to xmp_trash")
	cmd.Flags().BoolVar(&generateNoProgress, "no-progress", false, "Disable interactive progress output")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	glog, gcloser, _ := logx.NewGlobal("generate")
	if gcloser != nil {
		defer gcloser.Close()
	}
	glogf := func(format string, v ...any) {
		if glog != nil {
			glog.Printf(format, v...)
		}
	}
	glogf("generate started: args=%v append=%v", args, generateAppend)

	status := tui.NewStatusWriter(cmd.ErrOrStderr())
	defer status.Stop()

	status.Update("Scanning videos...")
	files, err := paths.ExpandVideoArgs(args)
	if err != nil {
		return err
	}
	folder := filepath.Dir(files[0])
	glogf("expanded %d video files in %s", len(files), folder)

	status.Update("Loading config...")
	cfg, err := config.Load(paths.ConfigPath(folder))
	if err != nil {
		return err
	}
	applyGenerateOverrides(cmd, &cfg)

	var existing *catalog.Catalog
	var existingPath string
	var warnings []string
	if generateAppend {
		status.Update("Locating existing catalog...")
		existing, existingPath, warnings = loadExistingCatalog(folder, glogf)
	}
	status.Stop()

	engine := &assembly.Engine{
		Sidecars: xmp.Reader{},
		Posters:  &poster.Extractor{},
	}
	opts := assembly.Options{
		Files:    files,
		Append:   existing != nil,
		Existing: existing,
		BaseURL:  cfg.BaseURL,
		Poster: poster.Options{
			PositionPercent: cfg.Poster.PositionPercent,
			Quality:         cfg.Poster.Quality,
			Width:           cfg.Poster.Width,
			Height:          cfg.Poster.Height,
		},
	}

	outWriter := cmd.OutOrStdout()
	useInteractive := detectInteractiveProgress(outWriter, generateNoProgress || outputJSON)

	var result assembly.Result
	var runErr error
	if useInteractive {
		result, runErr = runGenerateInteractive(ctx, outWriter, engine, opts, files)
	} else {
		result, runErr = runGeneratePlain(ctx, cmd, engine, opts)
	}
	glogf("batch finished: %d outcomes, %d new clips, err=%v", len(result.Outcomes), result.NewClips, runErr)

	if runErr != nil {
		// Nothing is written when the batch is fatal; still surface the
		// per-file errors so the operator knows what went wrong.
		reportFileIssues(cmd.ErrOrStderr(), result)
		return runErr
	}

	catalogPath := existingPath
	if catalogPath == "" {
		catalogPath = paths.CatalogPath(folder, result.Catalog.Theme.ID)
	}
	if err := catalog.Save(catalogPath, result.Catalog); err != nil {
		return err
	}
	glogf("catalog written: %s", catalogPath)

	moved := 0
	if !generateKeepXMP {
		// Every input file's sidecar goes to trash, including errored
		// ones; the operator reviews the folder afterwards either way.
		moved, err = assembly.MoveSidecarsToTrash(files)
		if err != nil {
			// Relocation failures are not fatal; the catalog is already saved.
			warnings = append(warnings, fmt.Sprintf("could not move sidecars: %v", err))
		}
		glogf("moved %d sidecars to %s", moved, assembly.TrashDirName)
	}

	if outputJSON {
		return writeGenerateJSON(cmd, catalogPath, result, moved, warnings)
	}
	writeGenerateSummary(outWriter, cmd.ErrOrStderr(), catalogPath, result, moved, warnings)
	return nil
}

// applyGenerateOverrides layers explicit flags over the folder config.
func applyGenerateOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = generateBaseURL
	}
	if flags.Changed("position") {
		cfg.Poster.PositionPercent = generatePosition
	}
	if flags.Changed("quality") {
		cfg.Poster.Quality = generateQuality
	}
	if flags.Changed("width") {
		cfg.Poster.Width = generateWidth
	}
	if flags.Changed("height") {
		cfg.Poster.Height = generateHeight
	}
}

// loadExistingCatalog locates and loads the catalog to append to. Any
// failure degrades to fresh-catalog mode with a warning rather than
// aborting the run.
func loadExistingCatalog(folder string, glogf func(string, ...any)) (*catalog.Catalog, string, []string) {
	path, err := catalog.FindExisting(folder)
	if err != nil {
		glogf("append: scan failed: %v", err)
		return nil, "", []string{fmt.Sprintf("append: %v; building a fresh catalog", err)}
	}
	if path == "" {
		glogf("append: no existing catalog found")
		return nil, "", []string{"append: no existing catalog found; building a fresh catalog"}
	}

	existing, err := catalog.Load(path)
	if err != nil {
		glogf("append: load failed: %v", err)
		return nil, "", []string{fmt.Sprintf("append: %v; building a fresh catalog", err)}
	}
	glogf("append: loaded %s (%d clips)", path, len(existing.Clips))
	return existing, path, nil
}

func runGenerateInteractive(ctx context.Context, out io.Writer, engine *assembly.Engine, opts assembly.Options, files []string) (assembly.Result, error) {
	model := tui.NewBatchModel("Generating theme catalog", []tui.Column{
		{Header: "FILE", Width: 32},
		{Header: "STATUS", Width: 8},
		{Header: "DETAIL", Width: 44},
	})
	for _, file := range files {
		model.AddRow(file, []string{filepath.Base(file), "pending", ""})
	}

	var result assembly.Result
	var runErr error
	err := tui.RunWithWork(out, model, func(send func(tea.Msg)) {
		if len(files) > 0 {
			send(tui.FileUpdateMsg{Key: files[0], Fields: map[string]string{"STATUS": "reading"}})
		}
		opts.Progress = func(index, total int, outcome assembly.FileOutcome) {
			send(tui.FileUpdateMsg{Key: outcome.File, Fields: map[string]string{
				"STATUS": string(outcome.Status),
				"DETAIL": outcome.Detail,
			}})
			if index < total {
				send(tui.FileUpdateMsg{Key: files[index], Fields: map[string]string{"STATUS": "reading"}})
			}
		}
		result, runErr = engine.Run(ctx, opts)
	})
	if err != nil {
		return result, err
	}
	return result, runErr
}

func runGeneratePlain(ctx context.Context, cmd *cobra.Command, engine *assembly.Engine, opts assembly.Options) (assembly.Result, error) {
	if !outputJSON {
		opts.Progress = func(index, total int, outcome assembly.FileOutcome) {
			fmt.Fprintf(cmd.OutOrStdout(), "[%d/%d] %s %s", index, total, outcome.Status, filepath.Base(outcome.File))
			if outcome.Detail != "" {
				fmt.Fprintf(cmd.OutOrStdout(), ": %s", outcome.Detail)
			}
			fmt.Fprintln(cmd.OutOrStdout())
		}
	}
	return engine.Run(ctx, opts)
}

func writeGenerateSummary(out, errWriter io.Writer, catalogPath string, result assembly.Result, moved int, warnings []string) {
	fmt.Fprintf(out, "Catalog: %s\n", catalogPath)
	fmt.Fprintf(out, "Theme: %s (%s)\n", result.Catalog.Theme.Name, result.Catalog.Theme.ID)
	fmt.Fprintf(out, "Clips: %d total, %d new\n", len(result.Catalog.Clips), result.NewClips)
	if moved > 0 {
		fmt.Fprintf(out, "Moved %d sidecar(s) to %s\n", moved, assembly.TrashDirName)
	}

	for _, warning := range warnings {
		fmt.Fprintf(errWriter, "warning: %s\n", warning)
	}
	reportFileIssues(errWriter, result)
}

func reportFileIssues(errWriter io.Writer, result assembly.Result) {
	if notes := result.Notes(); len(notes) > 0 {
		fmt.Fprintln(errWriter, "Skipped:")
		for _, note := range notes {
			fmt.Fprintf(errWriter, "  %s\n", note)
		}
	}
	if errs := result.Errors(); len(errs) > 0 {
		fmt.Fprintf(errWriter, "Errors (%d):\n", len(errs))
		for _, line := range truncateList(errs, maxReportedErrors) {
			fmt.Fprintf(errWriter, "  %s\n", line)
		}
	}
}

func writeGenerateJSON(cmd *cobra.Command, catalogPath string, result assembly.Result, moved int, warnings []string) error {
	outcomes := make([]generateJSONOutcome, 0, len(result.Outcomes))
	summary := generateJSONSummary{NewClips: result.NewClips, MovedSidecars: moved}
	for _, o := range result.Outcomes {
		outcomes = append(outcomes, generateJSONOutcome{
			File:   filepath.Base(o.File),
			Status: string(o.Status),
			Detail: o.Detail,
		})
		switch o.Status {
		case assembly.StatusAdded:
			summary.Added++
		case assembly.StatusTheme:
			summary.Theme++
		case assembly.StatusSkipped:
			summary.Skipped++
		case assembly.StatusError:
			summary.Failed++
		}
	}

	payload := struct {
		Catalog  string                `json:"catalog"`
		ThemeID  string                `json:"theme_id"`
		Outcomes []generateJSONOutcome `json:"outcomes"`
		Summary  generateJSONSummary   `json:"summary"`
		Warnings []string              `json:"warnings,omitempty"`
	}{
		Catalog:  catalogPath,
		ThemeID:  result.Catalog.Theme.ID,
		Outcomes: outcomes,
		Summary:  summary,
		Warnings: warnings,
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode generate json: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

type generateJSONOutcome struct {
	File   string `json:"file"`
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type generateJSONSummary struct {
	Added         int `json:"added"`
	Theme         int `json:"theme"`
	Skipped       int `json:"skipped"`
	Failed        int `json:"failed"`
	NewClips      int `json:"new_clips"`
	MovedSidecars int `json:"moved_sidecars"`
}
