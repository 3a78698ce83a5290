package cli

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/cosmusapp/cosmus-go/internal/models"
	"github.com/cosmusapp/cosmus-go/internal/session"
)

var askNoMedia bool

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a single question and print the answer",
	Long: `Ask the tutor one question without entering the interactive session.
The local history is replayed first so the answer stays in context, and
the new exchange is appended to it.

Examples:
  cosmus ask "Por que Plutão não é um planeta?"
  cosmus ask --name Alice "Fala dos anéis de Saturno"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askNoMedia, "no-media", false, "skip archive media resolution")
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := initCore(ctx, true); err != nil {
		return err
	}
	theme := defaultTheme
	question := strings.Join(args, " ")

	turns, err := store.Turns()
	if err != nil {
		logger.Warn("could not load history, starting fresh", "error", err)
	}
	sess := sessions.Get(cfg.UserName, turns...)

	if _, err := store.Append(models.RoleUser, question); err != nil {
		logger.Warn("could not persist turn", "error", err)
	}

	msg, err := runWithSpinner(waitLabel, func() tea.Msg {
		if askNoMedia {
			reply, err := sessions.Send(ctx, sess, question)
			return turnMsg{reply: reply, err: err}
		}
		return sendTurn(ctx, sess, question)
	})
	if err != nil {
		return err
	}
	turn, ok := msg.(turnMsg)
	if !ok {
		return nil // aborted
	}

	if turn.err != nil {
		fallback := session.FallbackReply(turn.err)
		fmt.Print(renderReply(theme, fallback, nil))
		return nil
	}

	fmt.Print(renderReply(theme, turn.reply, turn.media))
	if _, err := store.Append(models.RoleAssistant, turn.reply.DisplayText); err != nil {
		logger.Warn("could not persist turn", "error", err)
	}
	return nil
}
