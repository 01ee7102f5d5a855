package commands

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/sreehariX/sarcv2/internal/history"
)

// historyCmd shows the stored widget conversation
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the widget conversation",
	Long: `Show the conversation restored by the widget on launch. The transcript
survives widget restarts until cleared.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.DefaultStore()
		if err != nil {
			return fmt.Errorf("failed to open conversation store: %w", err)
		}

		conv := store.Load()

		userStyle := lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
		assistantStyle := lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
		dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

		for _, turn := range conv.Turns {
			switch turn.Role {
			case history.RoleUser:
				fmt.Println(userStyle.Render("You"))
				fmt.Println("  " + turn.Content)
			case history.RoleAssistant:
				fmt.Println(assistantStyle.Render("Assistant"))
				if turn.Content != "" {
					fmt.Println("  " + turn.Content)
				}
				for _, match := range turn.Matches {
					fmt.Printf("  %s\n", match.Question)
					fmt.Println(dimStyle.Render("    " + match.Answer))
				}
			}
			if !turn.Timestamp.IsZero() {
				fmt.Println(dimStyle.Render("  " + turn.Timestamp.Format("2006-01-02 15:04")))
			}
			fmt.Println()
		}

		if conv.FreshSession {
			fmt.Println(dimStyle.Render("(fresh session, nothing asked yet)"))
		}

		return nil
	},
}

// historyClearCmd resets the conversation to its seeded state
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the widget conversation",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.DefaultStore()
		if err != nil {
			return fmt.Errorf("failed to open conversation store: %w", err)
		}

		if err := store.Clear(); err != nil {
			return fmt.Errorf("failed to clear conversation: %w", err)
		}

		fmt.Println("Conversation cleared.")
		return nil
	},
}

func init() {
	historyCmd.AddCommand(historyClearCmd)
}
