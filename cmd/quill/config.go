package main

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration serve would run with, after the config file and
QUILL_* environment variables are applied.`,
		Args: cobra.NoArgs,
		RunE: runConfig,
	}
	cmd.Flags().StringP("format", "f", "toml", "output format: toml or yaml")
	return cmd
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	var out []byte
	switch format {
	case "toml":
		out, err = toml.Marshal(cfg)
	case "yaml", "yml":
		out, err = yaml.Marshal(cfg)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(out)
	return err
}
