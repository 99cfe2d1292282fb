package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/jester/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cmd := newRootCmd()
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "jester: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:   "jester",
		Short: "Browse Chuck Norris jokes in the terminal",
		Long: `jester fetches jokes from api.chucknorris.io.

Run without arguments to start the interactive browser, or use a subcommand
to print a single joke and exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/jester/config.toml)")
	flags.StringVar(&opts.EnvFile, "env-file", "", "dotenv file to load (default .env)")
	flags.StringVar(&opts.APIURL, "api-url", "", "joke API base URL (overrides config and JESTER_API_URL)")
	flags.StringVar(&opts.LogFile, "log-file", "", "log file path (overrides config)")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		&cobra.Command{
			Use:   "random",
			Short: "Print a random joke",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return app.Random(cmd.Context(), withOut(cmd, opts))
			},
		},
		&cobra.Command{
			Use:   "category <name>",
			Short: "Print a random joke from a category",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.Category(cmd.Context(), withOut(cmd, opts), args[0])
			},
		},
		&cobra.Command{
			Use:   "search <query...>",
			Short: "Print a joke matching a free-text query",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				query := strings.Join(args, " ")
				if strings.TrimSpace(query) == "" {
					return fmt.Errorf("search query is empty")
				}
				return app.Search(cmd.Context(), withOut(cmd, opts), query)
			},
		},
		&cobra.Command{
			Use:   "categories",
			Short: "List joke categories",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return app.Categories(cmd.Context(), withOut(cmd, opts))
			},
		},
		newLogCmd(&opts),
	)

	return root
}

func newLogCmd(opts *app.Options) *cobra.Command {
	var lines int
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the end of jester's log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Logs(withOut(cmd, *opts), lines)
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of lines to show (0 for all)")
	return cmd
}

// withOut routes one-shot output through the command so tests can capture it.
func withOut(cmd *cobra.Command, opts app.Options) app.Options {
	opts.Out = cmd.OutOrStdout()
	return opts
}
