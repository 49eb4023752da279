package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/planestic/ud-assistant/internal/logger"
	"github.com/planestic/ud-assistant/internal/router"
)

// maxMessageRunes is the Telegram Bot API limit on message text.
const maxMessageRunes = 4096

// Platform implements router.Platform for Telegram
type Platform struct {
	bot            *tgbotapi.BotAPI
	messageHandler func(msg router.Message)
	ctx            context.Context
	cancel         context.CancelFunc
}

// Config holds Telegram configuration
type Config struct {
	Token string // Bot token from @BotFather
	Debug bool
}

// New creates a new Telegram platform
func New(cfg Config) (*Platform, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("telegram bot token is required")
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	bot.Debug = cfg.Debug

	return &Platform{bot: bot}, nil
}

func (p *Platform) Name() string {
	return "telegram"
}

func (p *Platform) SetMessageHandler(handler func(msg router.Message)) {
	p.messageHandler = handler
}

// Start begins long polling for updates.
func (p *Platform) Start(ctx context.Context) error {
	p.ctx, p.cancel = context.WithCancel(ctx)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := p.bot.GetUpdatesChan(u)

	go p.handleUpdates(updates)

	logger.Info("[Telegram] Connected as bot: @%s", p.bot.Self.UserName)
	return nil
}

func (p *Platform) Stop() error {
	if p.cancel != nil {
		p.cancel()
	}
	p.bot.StopReceivingUpdates()
	return nil
}

// Send posts an answer to a chat, replying to ThreadID when it parses as a
// message ID. Answers carry [Title](URL) citations, so Markdown is enabled.
func (p *Platform) Send(ctx context.Context, channelID string, resp router.Response) error {
	chatID, err := strconv.ParseInt(channelID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid chat id %q: %w", channelID, err)
	}

	replyTo := 0
	if resp.ThreadID != "" {
		if msgID, err := strconv.Atoi(resp.ThreadID); err == nil {
			replyTo = msgID
		}
	}

	for i, chunk := range splitMessage(resp.Text, maxMessageRunes) {
		msg := tgbotapi.NewMessage(chatID, chunk)
		msg.ParseMode = tgbotapi.ModeMarkdown
		msg.DisableWebPagePreview = true
		if i == 0 {
			msg.ReplyToMessageID = replyTo
		}

		if _, err := p.bot.Send(msg); err != nil {
			// Model output is not guaranteed to be valid Markdown.
			logger.Debug("[Telegram] Markdown send failed, retrying as plain text: %v", err)
			msg.ParseMode = ""
			if _, err := p.bot.Send(msg); err != nil {
				return err
			}
		}
	}
	return nil
}

// splitMessage cuts text into chunks of at most limit runes, preferring to
// break after a newline in the second half of each chunk.
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

func (p *Platform) handleUpdates(updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-p.ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			msg, ok := p.toMessage(update)
			if !ok || p.messageHandler == nil {
				continue
			}
			p.messageHandler(msg)
		}
	}
}

func (p *Platform) toMessage(update tgbotapi.Update) (router.Message, bool) {
	m := update.Message
	if m == nil || m.From == nil || m.From.IsBot {
		return router.Message{}, false
	}
	if !p.shouldRespond(m) {
		return router.Message{}, false
	}

	text := commandText(m)
	text = p.cleanMention(text)
	if text == "" {
		return router.Message{}, false
	}

	threadID := ""
	if m.ReplyToMessage != nil {
		threadID = strconv.Itoa(m.ReplyToMessage.MessageID)
	}

	return router.Message{
		ID:        strconv.Itoa(m.MessageID),
		Platform:  "telegram",
		ChannelID: strconv.FormatInt(m.Chat.ID, 10),
		UserID:    strconv.FormatInt(m.From.ID, 10),
		Username:  getUsername(m.From),
		Text:      text,
		ThreadID:  threadID,
		Metadata: map[string]string{
			"chat_type": m.Chat.Type,
			"mentioned": strconv.FormatBool(p.isMentioned(m)),
		},
	}, true
}

// commandText turns "/ask ¿Quién es el rector?" into the question. /start
// and /help are answered as greetings.
func commandText(m *tgbotapi.Message) string {
	if !m.IsCommand() {
		return m.Text
	}
	switch m.Command() {
	case "start", "help":
		return "hola"
	default:
		return m.CommandArguments()
	}
}

// shouldRespond answers every private message. In groups the bot must be
// mentioned, replied to or addressed with a command.
func (p *Platform) shouldRespond(msg *tgbotapi.Message) bool {
	if msg.Chat == nil || msg.Chat.IsPrivate() {
		return true
	}
	if msg.Chat.IsGroup() || msg.Chat.IsSuperGroup() {
		return p.isMentioned(msg)
	}
	return true
}

func (p *Platform) isMentioned(msg *tgbotapi.Message) bool {
	if msg.Chat != nil && msg.Chat.IsPrivate() {
		return false
	}
	if strings.Contains(msg.Text, "@"+p.bot.Self.UserName) {
		return true
	}
	if msg.ReplyToMessage != nil && msg.ReplyToMessage.From != nil && msg.ReplyToMessage.From.ID == p.bot.Self.ID {
		return true
	}
	return msg.IsCommand()
}

func (p *Platform) cleanMention(text string) string {
	mention := "@" + p.bot.Self.UserName
	text = strings.ReplaceAll(text, mention, "")
	return strings.TrimSpace(text)
}

func getUsername(user *tgbotapi.User) string {
	if user.UserName != "" {
		return user.UserName
	}
	if user.FirstName != "" {
		name := user.FirstName
		if user.LastName != "" {
			name += " " + user.LastName
		}
		return name
	}
	return strconv.FormatInt(user.ID, 10)
}
