package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pvaldi/mshoot/config"
	"github.com/pvaldi/mshoot/horizon"
	"github.com/pvaldi/mshoot/schema"
)

var preset string

func main() {
	rootCmd := &cobra.Command{
		Use:   "mshoot",
		Short: "multiple-shooting transcription settings tool",
	}

	initCmd := &cobra.Command{
		Use:   "init [file]",
		Short: "write a starter transcription config",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}
	initCmd.Flags().StringVar(&preset, "preset", "", "start from a named preset")

	validateCmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "check a transcription config",
		Args:  cobra.ExactArgs(1),
		RunE:  validateConfig,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in presets",
		RunE:  listPresets,
	}

	rootCmd.AddCommand(initCmd, validateCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}

func validateConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(args[0])
	if err != nil {
		return err
	}

	// an empty schema runs the horizon settings through the expander's
	// own validation
	empty, err := schema.New()
	if err != nil {
		return err
	}
	if _, err := horizon.Expand(empty, cfg.HorizonOptions()...); err != nil {
		return err
	}

	if _, err := cfg.DynamicsOptions(); err != nil {
		return err
	}
	if cfg.StepPath == "" && cfg.Step <= 0 {
		return fmt.Errorf("step must be positive, got %g", cfg.Step)
	}

	fmt.Printf("%s ok: horizon=%d step=%s mode=%s\n", args[0], cfg.Horizon, cfg.StepSize(), cfg.Mode)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tHORIZON\tSTEP\tMODE")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", name, cfg.Horizon, cfg.StepSize(), cfg.Mode)
	}
	return w.Flush()
}
