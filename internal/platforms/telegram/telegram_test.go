package telegram

import (
	"strings"
	"testing"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func testPlatform() *Platform {
	return &Platform{bot: &tgbotapi.BotAPI{Self: tgbotapi.User{ID: 42, UserName: "udbot", IsBot: true}}}
}

func TestToMessagePrivateChat(t *testing.T) {
	p := testPlatform()
	msg, ok := p.toMessage(tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 7,
		From:      &tgbotapi.User{ID: 100, FirstName: "Ana", LastName: "Pérez"},
		Chat:      &tgbotapi.Chat{ID: 100, Type: "private"},
		Text:      "  horario de la biblioteca ",
	}})
	if !ok {
		t.Fatalf("expected private message to be accepted")
	}
	if msg.Text != "horario de la biblioteca" || msg.ChannelID != "100" || msg.ID != "7" {
		t.Fatalf("unexpected message: %#v", msg)
	}
	if msg.Username != "Ana Pérez" {
		t.Fatalf("expected full name fallback, got %q", msg.Username)
	}
	if msg.Metadata["mentioned"] != "false" {
		t.Fatalf("private chats are not mentions: %#v", msg.Metadata)
	}
}

func TestToMessageGroupRequiresMention(t *testing.T) {
	p := testPlatform()
	group := &tgbotapi.Chat{ID: -5, Type: "group"}
	user := &tgbotapi.User{ID: 100, UserName: "ana"}

	if _, ok := p.toMessage(tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 1, From: user, Chat: group, Text: "hola a todos",
	}}); ok {
		t.Fatalf("group message without mention should be ignored")
	}

	msg, ok := p.toMessage(tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 2, From: user, Chat: group, Text: "@udbot ¿quién es el rector?",
	}})
	if !ok || msg.Text != "¿quién es el rector?" {
		t.Fatalf("expected mention to be stripped, got %#v ok=%v", msg, ok)
	}
	if msg.Metadata["mentioned"] != "true" {
		t.Fatalf("expected mentioned metadata, got %#v", msg.Metadata)
	}
}

func TestToMessageSkipsBots(t *testing.T) {
	p := testPlatform()
	if _, ok := p.toMessage(tgbotapi.Update{Message: &tgbotapi.Message{
		From: &tgbotapi.User{ID: 9, IsBot: true},
		Chat: &tgbotapi.Chat{ID: 9, Type: "private"},
		Text: "ping",
	}}); ok {
		t.Fatalf("bot messages should be ignored")
	}
	if _, ok := p.toMessage(tgbotapi.Update{}); ok {
		t.Fatalf("updates without a message should be ignored")
	}
}

func TestCommandText(t *testing.T) {
	cmd := func(text string, length int) *tgbotapi.Message {
		return &tgbotapi.Message{
			Text:     text,
			Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: length}},
		}
	}
	if got := commandText(cmd("/ask ¿Quién es el rector?", 4)); got != "¿Quién es el rector?" {
		t.Fatalf("unexpected /ask text %q", got)
	}
	if got := commandText(cmd("/start", 6)); got != "hola" {
		t.Fatalf("expected /start to greet, got %q", got)
	}
	if got := commandText(&tgbotapi.Message{Text: "plain"}); got != "plain" {
		t.Fatalf("expected plain text passthrough, got %q", got)
	}
}

func TestSplitMessage(t *testing.T) {
	if got := splitMessage("hola", maxMessageRunes); len(got) != 1 || got[0] != "hola" {
		t.Fatalf("short message should not be split: %q", got)
	}

	long := strings.Repeat("ñ", maxMessageRunes*2+10)
	chunks := splitMessage(long, maxMessageRunes)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if n := utf8.RuneCountInString(c); n > maxMessageRunes {
			t.Fatalf("chunk %d has %d runes", i, n)
		}
	}
	if strings.Join(chunks, "") != long {
		t.Fatal("chunks do not rebuild the message")
	}

	para := strings.Repeat("a", 3000) + "\n" + strings.Repeat("b", 3000)
	chunks = splitMessage(para, maxMessageRunes)
	if len(chunks) != 2 || chunks[0] != strings.Repeat("a", 3000)+"\n" {
		t.Fatalf("expected a break after the newline, got %d chunks", len(chunks))
	}
}
