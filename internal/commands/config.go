package commands

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/sreehariX/sarcv2/internal/config"
)

// configCmd shows the effective configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		path, _ := config.GetConfigPath()

		keyStyle := lipgloss.NewStyle().Foreground(colorPrimary)
		dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

		fmt.Println(dimStyle.Render("Config file: " + path))
		fmt.Println()
		fmt.Printf("%s  %s\n", keyStyle.Render("search_url       "), cfg.SearchURL)
		fmt.Printf("%s  %s\n", keyStyle.Render("faq_path         "), cfg.FAQPath)
		fmt.Printf("%s  %d\n", keyStyle.Render("request_timeout  "), cfg.RequestTimeout)
		fmt.Printf("%s  %t\n", keyStyle.Render("copy_to_clipboard"), cfg.CopyToClipboard)
		fmt.Printf("%s  %t\n", keyStyle.Render("verbose          "), cfg.Verbose)
		fmt.Printf("%s  %s\n", keyStyle.Render("markdown_style   "), cfg.Markdown.Style)
		if len(cfg.AllowedOrigins) > 0 {
			fmt.Printf("%s  %v\n", keyStyle.Render("allowed_origins  "), cfg.AllowedOrigins)
		}

		return nil
	},
}

// configInitCmd writes the default configuration to disk
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SaveConfig(config.DefaultConfig()); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}

		path, _ := config.GetConfigPath()
		fmt.Printf("Wrote defaults to %s\n", path)
		return nil
	},
}

// configSetCmd updates a single configuration key
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Update a configuration value",
	Long: `Update one configuration key. Supported keys:

  search_url         Search service endpoint
  faq_path           Path to faqs.json
  request_timeout    Search timeout in seconds
  copy_to_clipboard  true/false
  verbose            true/false
  markdown_style     Glamour style (auto, dark, light, ...)`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		key, value := args[0], args[1]
		switch key {
		case "search_url":
			cfg.SearchURL = value
		case "faq_path":
			cfg.FAQPath = value
		case "request_timeout":
			seconds, err := strconv.Atoi(value)
			if err != nil || seconds <= 0 {
				return fmt.Errorf("request_timeout must be a positive integer, got %q", value)
			}
			cfg.RequestTimeout = seconds
		case "copy_to_clipboard":
			enabled, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("copy_to_clipboard must be true or false, got %q", value)
			}
			cfg.CopyToClipboard = enabled
		case "verbose":
			enabled, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("verbose must be true or false, got %q", value)
			}
			cfg.Verbose = enabled
		case "markdown_style":
			cfg.Markdown.Style = value
		default:
			return fmt.Errorf("unknown config key %q", key)
		}

		if err := config.SaveConfig(cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Printf("%s = %s\n", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
}
