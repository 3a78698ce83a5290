package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmusapp/cosmus-go/internal/models"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the saved conversation history",
	RunE:  runHistory,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the saved conversation history",
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.AddCommand(historyClearCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if err := initCore(cmd.Context(), false); err != nil {
		return err
	}
	theme := defaultTheme

	entries, err := store.Load()
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	if len(entries) == 0 {
		fmt.Println(theme.hintStyle().Render("Nenhuma conversa salva."))
		return nil
	}

	for _, entry := range entries {
		stamp := theme.hintStyle().Render(entry.CreatedAt.Format("2006-01-02 15:04"))
		switch entry.Role {
		case models.RoleUser:
			fmt.Printf("%s %s\n", stamp, theme.promptStyle().Render("Você: ")+entry.Text)
		case models.RoleAssistant:
			fmt.Printf("%s %s\n", stamp, theme.tutorStyle().Render("Cosmus: "+entry.Text))
		}
	}
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	if err := initCore(cmd.Context(), false); err != nil {
		return err
	}
	if err := store.Clear(); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	fmt.Println("Histórico apagado.")
	return nil
}
