package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/michaelquigley/dbfader/internal/termhost"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newTuiCommand().cmd)
}

type tuiCommand struct {
	cmd  *cobra.Command
	opts consoleOptions
	fps  float64
}

func newTuiCommand() *tuiCommand {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the console in the terminal",
		Long: "Run the console in the terminal.\n\n" +
			"up/down drag the selected fader, k/j drag finely, tab and the arrows select,\n" +
			"enter or 0 resets to the neutral level, h hides a strip, q quits.",
		Args: cobra.NoArgs,
	}
	out := &tuiCommand{cmd: cmd}
	cmd.Flags().StringVarP(&out.opts.configPath, "config", "c", "", "console config (default ~/.config/dbfader/console.yaml)")
	cmd.Flags().BoolVar(&out.opts.synthetic, "synthetic", false, "run without hardware, on synthetic signals")
	cmd.Flags().Float64Var(&out.fps, "fps", 30, "ticks per second")
	cmd.RunE = out.run
	return out
}

func (cmd *tuiCommand) run(_ *cobra.Command, _ []string) error {
	if cmd.fps <= 0 {
		return errors.Errorf("fps must be positive (got %.2f)", cmd.fps)
	}

	c, err := cmd.opts.open()
	if err != nil {
		return err
	}
	defer c.close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := termhost.New(c.mixer, os.Stdout).Run(ctx, cmd.fps); err != nil {
		return errors.Wrap(err, "error running terminal console")
	}
	return nil
}
