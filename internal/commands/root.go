// Package commands provides CLI commands for the sarcv2 widget.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sreehariX/sarcv2/internal/config"
	"github.com/sreehariX/sarcv2/internal/diag"
)

var (
	// Global flags
	outputFlag    string
	fileFlag      string
	searchURLFlag string

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "sarcv2 [question]",
	Short: "FAQ assistant for Saras AI documentation",
	Long: `sarcv2 answers questions against the Saras AI FAQ corpus. It ships a
terminal widget with a browsable FAQ pane and chat panel, a one-shot
query mode, and the search service the widget talks to.

Examples:
  sarcv2 widget                      Open the interactive widget
  sarcv2 serve                       Run the search service
  sarcv2 "What is the refund policy?"
  sarcv2 -f question.txt             Read the question from a file
  echo "refund policy" | sarcv2      Read the question from stdin
  sarcv2 "refunds" -o answer.md      Save the answer to a file`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("sarcv2 %s (built %s)\n", Version, BuildTime)
			return nil
		}

		// Check for stdin input
		stat, _ := os.Stdin.Stat()
		hasStdin := (stat.Mode() & os.ModeCharDevice) == 0

		if fileFlag != "" {
			data, err := os.ReadFile(fileFlag)
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
			return runQuery(string(data), !isStdoutTTY())
		}

		if hasStdin {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			return runQuery(string(data), !isStdoutTTY())
		}

		if len(args) > 0 {
			return runQuery(args[0], !isStdoutTTY())
		}

		// No input - show help
		return cmd.Help()
	},
}

// Execute runs the root command
func Execute() {
	defer diag.Sync()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&searchURLFlag, "search-url", "", "Search service URL (overrides config)")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Save answer to file")
	rootCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Read question from file")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, _ := config.LoadConfig()
		if cfg.Verbose {
			if dir, err := config.EnsureConfigDir(); err == nil {
				if err := diag.Init(dir); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: diagnostics log unavailable: %v\n", err)
				}
			}
		}
		return nil
	}

	// Add subcommands
	rootCmd.AddCommand(widgetCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}

// getSearchURL returns the search endpoint from flag or config
func getSearchURL(cfg config.Config) string {
	if searchURLFlag != "" {
		return searchURLFlag
	}
	return cfg.SearchURL
}
