// Package notifier delivers the submission side effects: the check-in
// email to the guest and the heads-up to the hosts' channel.
package notifier

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/nuestraboda/wedding-rsvp-api/internal/models"
)

// HostNotifier tells the hosts a family answered their invitation.
type HostNotifier interface {
	NotifySubmission(ctx context.Context, family models.Family, confirmed []models.Guest) error
}

type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscordNotifier(session *discordgo.Session, channelID string) *DiscordNotifier {
	return &DiscordNotifier{
		session:   session,
		channelID: channelID,
	}
}

func (n *DiscordNotifier) NotifySubmission(ctx context.Context, family models.Family, confirmed []models.Guest) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if n.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}

	var lines []string
	for _, g := range confirmed {
		status := "declinó 😢"
		if g.IsAttending() {
			status = "asiste 🎉"
		}
		lines = append(lines, fmt.Sprintf("• %s — %s", g.Name, status))
	}

	message := fmt.Sprintf("💌 **Nueva confirmación**\n**Familia:** %s\n%s\n**Total asistiendo:** %d de %d invitados",
		family.FamilyName,
		strings.Join(lines, "\n"),
		family.ConfirmedAttending,
		family.InvitedCount,
	)

	_, err := n.session.ChannelMessageSend(n.channelID, message)
	if err != nil {
		log.Printf("Failed to send discord message: %v", err)
		return err
	}

	return nil
}
