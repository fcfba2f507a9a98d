package discord

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/jose-valero/vry/internal/domain"
)

// Lo implementa *discordgo.Session
type webhookExecutor interface {
	WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Notifier publica un embed por cada partida INGAME nueva.
type Notifier struct {
	exec  webhookExecutor
	id    string
	token string

	mu   sync.Mutex
	last string
}

// ParseWebhookURL saca id y token de https://discord.com/api/webhooks/<id>/<token>.
func ParseWebhookURL(raw string) (id, token string, err error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", "", fmt.Errorf("webhook url: %w", err)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i+2 < len(parts); i++ {
		if parts[i] == "webhooks" && parts[i+1] != "" && parts[i+2] != "" {
			return parts[i+1], parts[i+2], nil
		}
	}
	return "", "", fmt.Errorf("webhook url: missing id/token in %q", u.Path)
}

func NewNotifier(exec webhookExecutor, webhookURL string) (*Notifier, error) {
	id, token, err := ParseWebhookURL(webhookURL)
	if err != nil {
		return nil, err
	}
	return &Notifier{exec: exec, id: id, token: token}, nil
}

// Notify ignora todo lo que no sea una partida INGAME distinta a la última enviada.
func (n *Notifier) Notify(ctx context.Context, snap domain.Snapshot) {
	if snap.State != domain.StateIngame || snap.MatchID == "" {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if snap.MatchID == n.last {
		return
	}
	_, err := n.exec.WebhookExecute(n.id, n.token, false, &discordgo.WebhookParams{
		Username: "vry",
		Embeds:   []*discordgo.MessageEmbed{MatchEmbed(snap)},
	}, discordgo.WithContext(ctx))
	if err != nil {
		// se reintenta en la próxima pasada
		log.Warn().Err(err).Str("match", snap.MatchID).Msg("discord webhook")
		return
	}
	n.last = snap.MatchID
	log.Info().Str("match", snap.MatchID).Msg("discord webhook sent")
}
