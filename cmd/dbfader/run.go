package main

import (
	"github.com/michaelquigley/dbfader/internal/imguihost"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newRunCommand().cmd)
}

type runCommand struct {
	cmd  *cobra.Command
	opts consoleOptions
}

func newRunCommand() *runCommand {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the console in a window",
		Args:  cobra.NoArgs,
	}
	out := &runCommand{cmd: cmd}
	cmd.Flags().StringVarP(&out.opts.configPath, "config", "c", "", "console config (default ~/.config/dbfader/console.yaml)")
	cmd.Flags().BoolVar(&out.opts.synthetic, "synthetic", false, "run without hardware, on synthetic signals")
	cmd.RunE = out.run
	return out
}

func (cmd *runCommand) run(_ *cobra.Command, _ []string) error {
	c, err := cmd.opts.open()
	if err != nil {
		return err
	}
	defer c.close()

	return imguihost.Run(imguihost.NewConsole(c.mixer), "dbfader", 530, 370)
}
