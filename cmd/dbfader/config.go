package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func init() {
	rootCmd.AddCommand(newConfigCommand().cmd)
}

type configCommand struct {
	cmd  *cobra.Command
	opts consoleOptions
}

func newConfigCommand() *configCommand {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective console configuration",
		Args:  cobra.NoArgs,
	}
	out := &configCommand{cmd: cmd}
	cmd.Flags().StringVarP(&out.opts.configPath, "config", "c", "", "console config (default ~/.config/dbfader/console.yaml)")
	cmd.RunE = out.run
	return out
}

func (cmd *configCommand) run(_ *cobra.Command, _ []string) error {
	cfg, err := cmd.opts.loadConfig()
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return errors.Wrap(err, "error encoding config")
	}
	return enc.Close()
}
