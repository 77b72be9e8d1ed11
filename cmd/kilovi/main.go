package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kobzarvs/kilovi/internal/app"
	"github.com/kobzarvs/kilovi/internal/editor"
)

type runFunc func(args []string, opts app.Options) error

func runApp(args []string, opts app.Options) error {
	return app.New(args, opts).Run()
}

func newRootCmd(run runFunc) *cobra.Command {
	var opts app.Options
	cmd := &cobra.Command{
		Use:           "kilovi [file]",
		Short:         "A small modal text editor",
		Version:       editor.Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "",
		"config file (default: ~/.config/kilovi/config.toml)")
	cmd.Flags().BoolVar(&opts.Debug, "debug", false, "log at debug level")
	return cmd
}

func main() {
	if err := newRootCmd(runApp).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "kilovi:", err)
		os.Exit(1)
	}
}
