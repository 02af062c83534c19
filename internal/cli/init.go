package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"themegen/internal/config"
	"themegen/internal/paths"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [folder]",
		Short: "Write a default themegen.yaml into a folder",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runInit,
	}

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	folder := "."
	if len(args) > 0 {
		folder = args[0]
	}

	exists, err := paths.DirExists(folder)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("folder does not exist: %s", folder)
	}

	configPath := paths.ConfigPath(folder)
	present, err := paths.FileExists(configPath)
	if err != nil {
		return fmt.Errorf("check config: %w", err)
	}
	if present {
		cmd.Printf("Config already exists at %s\n", configPath)
		return nil
	}

	cfg := config.Default()
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	cmd.Printf("Created %s\n", configPath)
	return nil
}
