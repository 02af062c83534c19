package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"themegen/internal/catalog"
	"themegen/internal/paths"
	"themegen/internal/xmp"
	"themegen/pkg/marker"
)

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [videos-or-folder...]",
		Short: "Report marker and filename parsing without writing anything",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runInspect,
	}

	return cmd
}

type inspectRow struct {
	File   string `json:"file"`
	Kind   string `json:"kind"`
	ID     string `json:"id,omitempty"`
	Title  string `json:"title,omitempty"`
	Input  bool   `json:"requires_input"`
	Tier   string `json:"tier,omitempty"`
	Error  string `json:"error,omitempty"`
	Fields int    `json:"fields"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	files, err := paths.ExpandVideoArgs(args)
	if err != nil {
		return err
	}

	reader := xmp.Reader{}
	rows := make([]inspectRow, 0, len(files))
	for _, file := range files {
		rows = append(rows, inspectFile(reader, file))
	}

	if outputJSON {
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("encode inspect json: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tKIND\tID\tTITLE\tINPUT\tTIER\tERROR")
	for _, row := range rows {
		input := "no"
		if row.Input {
			input = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			filepath.Base(row.File),
			row.Kind,
			nonEmptyOrDash(row.ID),
			nonEmptyOrDash(row.Title),
			input,
			nonEmptyOrDash(row.Tier),
			nonEmptyOrDash(row.Error),
		)
	}
	return w.Flush()
}

func inspectFile(reader xmp.Reader, file string) inspectRow {
	row := inspectRow{File: file}
	stem := paths.Stem(file)
	isThemeFile := strings.Contains(strings.ToLower(stem), "theme")

	sc, err := reader.Read(paths.SidecarPath(file), isThemeFile)
	if err != nil {
		row.Kind = "error"
		if errors.Is(err, fs.ErrNotExist) {
			row.Error = "no XMP sidecar found"
		} else {
			row.Error = "no marker data found"
		}
		return row
	}
	if !sc.HasMarker || strings.TrimSpace(sc.Comment) == "" {
		row.Kind = "error"
		row.Error = "no marker data found"
		return row
	}

	cfg, err := marker.Parse(sc.Comment)
	if err != nil {
		row.Kind = "error"
		row.Error = err.Error()
		return row
	}
	if cfg == nil {
		row.Kind = "error"
		row.Error = "could not parse marker"
		return row
	}

	if cfg.IsTheme() {
		row.Kind = "theme"
		row.ID = catalog.ThemeID(cfg.ThemeName)
		row.Title = cfg.ThemeName
		return row
	}

	row.Kind = "clip"
	row.Input = cfg.RequiresInput()
	row.Tier = cfg.TierRequirement()
	row.Fields = len(cfg.Fields)
	name, err := catalog.ParseClipName(stem)
	if err != nil {
		row.Error = "invalid filename format"
		return row
	}
	row.ID = stem
	row.Title = name.Title
	return row
}
