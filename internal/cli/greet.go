package cli

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
)

var greetCmd = &cobra.Command{
	Use:   "greet",
	Short: "Print a fresh welcome message from the tutor",
	RunE:  runGreet,
}

func runGreet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := initCore(ctx, true); err != nil {
		return err
	}

	msg, err := runWithSpinner(waitLabel, func() tea.Msg {
		return turnMsg{reply: sessions.Greet(ctx)}
	})
	if err != nil {
		return err
	}
	if greeting, ok := msg.(turnMsg); ok {
		fmt.Print(renderReply(defaultTheme, greeting.reply, nil))
	}
	return nil
}
