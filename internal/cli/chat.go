package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/cosmusapp/cosmus-go/internal/models"
	"github.com/cosmusapp/cosmus-go/internal/session"
)

const waitLabel = "contactando a estação espacial..."

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive tutoring session",
	Long: `Start an interactive session with the tutor. Previous turns are loaded
from the local history file so the conversation picks up where it left off.

Type "sair" or press Ctrl+D to leave.

Examples:
  cosmus chat
  cosmus chat --name Alice`,
	RunE: runChat,
}

// turnMsg carries one completed conversational turn.
type turnMsg struct {
	reply models.StructuredReply
	media *models.ResolvedMedia
	err   error
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := initCore(ctx, true); err != nil {
		return err
	}
	theme := defaultTheme

	turns, err := store.Turns()
	if err != nil {
		logger.Warn("could not load history, starting fresh", "error", err)
	}
	sess := sessions.Get(cfg.UserName, turns...)

	// Greet only on a fresh conversation; a resumed one jumps straight in.
	if len(turns) == 0 {
		msg, err := runWithSpinner(waitLabel, func() tea.Msg {
			return turnMsg{reply: sessions.Greet(ctx)}
		})
		if err != nil {
			return err
		}
		if greeting, ok := msg.(turnMsg); ok {
			fmt.Print(renderReply(theme, greeting.reply, nil))
			if _, err := store.Append(models.RoleAssistant, greeting.reply.DisplayText); err != nil {
				logger.Warn("could not persist greeting", "error", err)
			}
		}
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(theme.promptStyle().Render("Você> "))
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text == "sair" || text == "tchau" {
			fmt.Println(theme.tutorStyle().Render("Cosmus: Até a próxima missão, explorador!"))
			break
		}

		if _, err := store.Append(models.RoleUser, text); err != nil {
			logger.Warn("could not persist turn", "error", err)
		}

		msg, err := runWithSpinner(waitLabel, func() tea.Msg {
			return sendTurn(ctx, sess, text)
		})
		if err != nil {
			return err
		}
		turn, ok := msg.(turnMsg)
		if !ok {
			continue // aborted
		}

		if turn.err != nil {
			fallback := session.FallbackReply(turn.err)
			fmt.Print(renderReply(theme, fallback, nil))
			continue
		}

		fmt.Print(renderReply(theme, turn.reply, turn.media))
		if _, err := store.Append(models.RoleAssistant, turn.reply.DisplayText); err != nil {
			logger.Warn("could not persist turn", "error", err)
		}
	}

	return scanner.Err()
}

// sendTurn runs one full turn: send the text, then resolve the requested
// illustration if the reply asked for one.
func sendTurn(ctx context.Context, sess *session.Session, text string) turnMsg {
	reply, err := sessions.Send(ctx, sess, text)
	if err != nil {
		return turnMsg{err: err}
	}

	var media *models.ResolvedMedia
	if reply.ImageQuery != "" {
		media = engine.FetchByQuery(ctx, reply.ImageQuery)
	}
	return turnMsg{reply: reply, media: media}
}
