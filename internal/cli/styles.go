package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cosmusapp/cosmus-go/internal/models"
)

// Theme holds the color scheme for the chat display.
type Theme struct {
	Tutor      lipgloss.Color
	Prompt     lipgloss.Color
	Suggestion lipgloss.Color
	Media      lipgloss.Color
	Mission    lipgloss.Color
	Error      lipgloss.Color
	Hint       lipgloss.Color
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Tutor:      lipgloss.Color("#5FAFD7"), // light blue
	Prompt:     lipgloss.Color("#00D787"), // green
	Suggestion: lipgloss.Color("#AF87FF"), // violet
	Media:      lipgloss.Color("#FFAF00"), // amber
	Mission:    lipgloss.Color("#00D787"), // green
	Error:      lipgloss.Color("#FF005F"), // red
	Hint:       lipgloss.Color("#6C6C6C"), // dim gray
}

func (t Theme) tutorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Tutor)
}

func (t Theme) promptStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Prompt).Bold(true)
}

func (t Theme) suggestionStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Suggestion)
}

func (t Theme) mediaStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Media)
}

func (t Theme) missionStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Mission).Bold(true)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

// renderReply formats one decoded reply for terminal display.
func renderReply(theme Theme, reply models.StructuredReply, media *models.ResolvedMedia) string {
	var b strings.Builder

	b.WriteString(theme.tutorStyle().Render("Cosmus: " + reply.DisplayText))
	b.WriteString("\n")

	if media != nil {
		kind := "Imagem"
		if media.Type == models.MediaVideo {
			kind = "Vídeo"
		}
		b.WriteString(theme.mediaStyle().Render(fmt.Sprintf("  🛰  %s: %s", kind, media.Title)))
		b.WriteString("\n")
		b.WriteString(theme.hintStyle().Render("      " + media.Display))
		b.WriteString("\n")
	}

	if reply.Source != "" {
		b.WriteString(theme.hintStyle().Render("  Fonte: " + reply.Source))
		b.WriteString("\n")
	}

	if reply.MissionCompleted != "" {
		b.WriteString(theme.missionStyle().Render("  ★ Missão concluída: " + reply.MissionCompleted))
		b.WriteString("\n")
	}

	if reply.Challenge != nil {
		b.WriteString(theme.missionStyle().Render("  ✦ Desafio do dia: " + reply.Challenge.Name))
		b.WriteString("\n")
		b.WriteString(theme.hintStyle().Render("      " + reply.Challenge.Description))
		b.WriteString("\n")
	}

	if len(reply.Suggestions) > 0 {
		b.WriteString(theme.suggestionStyle().Render("  Sugestões:"))
		b.WriteString("\n")
		for _, s := range reply.Suggestions {
			b.WriteString(theme.suggestionStyle().Render("    • " + s))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// renderMedia formats a standalone media lookup result.
func renderMedia(theme Theme, media *models.ResolvedMedia) string {
	if media == nil {
		return theme.hintStyle().Render("Nenhuma mídia encontrada.") + "\n"
	}

	var b strings.Builder
	b.WriteString(theme.mediaStyle().Render(fmt.Sprintf("%s (%s)", media.Title, media.Type)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  preview: %s\n", media.Preview))
	b.WriteString(fmt.Sprintf("  display: %s\n", media.Display))
	b.WriteString(fmt.Sprintf("  full:    %s\n", media.Full))
	return b.String()
}
