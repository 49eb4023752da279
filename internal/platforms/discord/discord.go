package discord

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/planestic/ud-assistant/internal/logger"
	"github.com/planestic/ud-assistant/internal/router"
)

// Discord rejects messages longer than this.
const maxMessageRunes = 2000

// Platform implements router.Platform for Discord
type Platform struct {
	session        *discordgo.Session
	botUserID      string
	messageHandler func(msg router.Message)
	ctx            context.Context
	cancel         context.CancelFunc
}

// Config holds Discord configuration
type Config struct {
	Token string // Bot token from Discord Developer Portal
}

func New(cfg Config) (*Platform, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("discord bot token is required")
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	return &Platform{session: session}, nil
}

func (p *Platform) Name() string {
	return "discord"
}

func (p *Platform) SetMessageHandler(handler func(msg router.Message)) {
	p.messageHandler = handler
}

// Start opens the gateway connection and registers the message handler.
func (p *Platform) Start(ctx context.Context) error {
	p.ctx, p.cancel = context.WithCancel(ctx)

	p.session.AddHandler(p.handleMessage)

	if err := p.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	user, err := p.session.User("@me")
	if err != nil {
		return fmt.Errorf("failed to get bot user: %w", err)
	}
	p.botUserID = user.ID

	logger.Info("[Discord] Connected as bot: %s#%s", user.Username, user.Discriminator)
	return nil
}

func (p *Platform) Stop() error {
	if p.cancel != nil {
		p.cancel()
	}
	return p.session.Close()
}

// Send replies in channelID, splitting answers that exceed Discord's limit.
// Only the first chunk references the original message.
func (p *Platform) Send(ctx context.Context, channelID string, resp router.Response) error {
	var reference *discordgo.MessageReference
	if resp.ThreadID != "" {
		reference = &discordgo.MessageReference{
			MessageID: resp.ThreadID,
			ChannelID: channelID,
		}
	}

	for i, chunk := range splitMessage(resp.Text, maxMessageRunes) {
		send := &discordgo.MessageSend{Content: chunk}
		if i == 0 {
			send.Reference = reference
		}
		if _, err := p.session.ChannelMessageSendComplex(channelID, send, discordgo.WithContext(ctx)); err != nil {
			return err
		}
	}
	return nil
}

func (p *Platform) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	channelType := "unknown"
	isDM := m.GuildID == ""
	if channel, err := s.State.Channel(m.ChannelID); err == nil {
		channelType = channelTypeName(channel.Type)
		isDM = channel.Type == discordgo.ChannelTypeDM
	} else if isDM {
		channelType = "dm"
	}

	mentioned := isMentioned(m, p.botUserID)
	if !isDM && !mentioned {
		return
	}

	text := cleanMention(m.Content, p.botUserID)
	if text == "" || p.messageHandler == nil {
		return
	}

	threadID := ""
	if m.ReferencedMessage != nil {
		threadID = m.ReferencedMessage.ID
	}

	p.messageHandler(router.Message{
		ID:        m.ID,
		Platform:  "discord",
		ChannelID: m.ChannelID,
		UserID:    m.Author.ID,
		Username:  m.Author.Username,
		Text:      text,
		ThreadID:  threadID,
		Metadata: map[string]string{
			"channel_type": channelType,
			"guild_id":     m.GuildID,
			"mentioned":    strconv.FormatBool(mentioned),
		},
	})
}

func channelTypeName(t discordgo.ChannelType) string {
	switch t {
	case discordgo.ChannelTypeDM:
		return "dm"
	case discordgo.ChannelTypeGuildText:
		return "guild"
	case discordgo.ChannelTypeGroupDM:
		return "group_dm"
	default:
		return "unknown"
	}
}

// isMentioned reports whether the bot was @-mentioned or replied to.
func isMentioned(m *discordgo.MessageCreate, botUserID string) bool {
	for _, mention := range m.Mentions {
		if mention != nil && mention.ID == botUserID {
			return true
		}
	}
	return m.ReferencedMessage != nil && m.ReferencedMessage.Author != nil &&
		m.ReferencedMessage.Author.ID == botUserID
}

// cleanMention removes <@ID> and <@!ID> mentions of the bot.
func cleanMention(text, botUserID string) string {
	text = strings.ReplaceAll(text, "<@"+botUserID+">", "")
	text = strings.ReplaceAll(text, "<@!"+botUserID+">", "")
	return strings.TrimSpace(text)
}

// splitMessage cuts text into chunks of at most limit runes, preferring
// line breaks as cut points.
func splitMessage(text string, limit int) []string {
	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}
	var chunks []string
	for len(runes) > limit {
		cut := limit
		for i := limit - 1; i > limit/2; i-- {
			if runes[i] == '\n' {
				cut = i + 1
				break
			}
		}
		chunks = append(chunks, string(runes[:cut]))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}
	return chunks
}
