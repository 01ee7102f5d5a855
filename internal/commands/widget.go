package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sreehariX/sarcv2/internal/config"
	"github.com/sreehariX/sarcv2/internal/tui"
)

var faqPathFlag string

// widgetCmd opens the interactive widget
var widgetCmd = &cobra.Command{
	Use:   "widget",
	Short: "Open the interactive FAQ widget",
	Long: `Open the terminal widget: the FAQ corpus in a browsable pane with the
chat panel overlaid on demand. Answers cite their FAQ entries; pressing
a citation number closes the panel and scrolls the pane to the entry.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		cfg.SearchURL = getSearchURL(cfg)
		if faqPathFlag != "" {
			cfg.FAQPath = faqPathFlag
		}

		return tui.Run(&cfg)
	},
}

func init() {
	widgetCmd.Flags().StringVar(&faqPathFlag, "faq", "", "Path to faqs.json (overrides config)")
}
