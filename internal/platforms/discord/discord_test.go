package discord

import (
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/planestic/ud-assistant/internal/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPlatform(received *[]router.Message) (*Platform, *discordgo.Session) {
	p := &Platform{botUserID: "bot-1"}
	p.SetMessageHandler(func(msg router.Message) {
		*received = append(*received, msg)
	})
	return p, &discordgo.Session{State: discordgo.NewState()}
}

func create(content, guildID string, mentions ...*discordgo.User) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{Message: &discordgo.Message{
		ID:        "m-1",
		ChannelID: "c-1",
		GuildID:   guildID,
		Content:   content,
		Author:    &discordgo.User{ID: "u-1", Username: "ana"},
		Mentions:  mentions,
	}}
}

func TestHandleMessageDirect(t *testing.T) {
	var got []router.Message
	p, s := newTestPlatform(&got)

	p.handleMessage(s, create("¿Dónde queda la sede Macarena?", ""))

	require.Len(t, got, 1)
	assert.Equal(t, "¿Dónde queda la sede Macarena?", got[0].Text)
	assert.Equal(t, "dm", got[0].Metadata["channel_type"])
	assert.Equal(t, "discord", got[0].Platform)
}

func TestHandleMessageGuildNeedsMention(t *testing.T) {
	var got []router.Message
	p, s := newTestPlatform(&got)

	p.handleMessage(s, create("hola a todos", "g-1"))
	assert.Empty(t, got)

	p.handleMessage(s, create("<@!bot-1> calendario académico", "g-1", &discordgo.User{ID: "bot-1"}))
	require.Len(t, got, 1)
	assert.Equal(t, "calendario académico", got[0].Text)
	assert.Equal(t, "true", got[0].Metadata["mentioned"])
}

func TestHandleMessageIgnoresBots(t *testing.T) {
	var got []router.Message
	p, s := newTestPlatform(&got)

	m := create("hola", "")
	m.Author.Bot = true
	p.handleMessage(s, m)
	assert.Empty(t, got)
}

func TestIsMentionedByReply(t *testing.T) {
	m := create("y la sede?", "g-1")
	m.ReferencedMessage = &discordgo.Message{ID: "prev", Author: &discordgo.User{ID: "bot-1"}}
	assert.True(t, isMentioned(m, "bot-1"))
	assert.False(t, isMentioned(create("x", "g-1"), "bot-1"))
}

func TestSplitMessage(t *testing.T) {
	assert.Equal(t, []string{"corto"}, splitMessage("corto", 10))

	text := strings.Repeat("a", 8) + "\n" + strings.Repeat("b", 8)
	chunks := splitMessage(text, 10)
	require.Len(t, chunks, 2)
	assert.Equal(t, strings.Repeat("a", 8)+"\n", chunks[0])
	assert.Equal(t, strings.Repeat("b", 8), chunks[1])

	long := strings.Repeat("ñ", 25)
	chunks = splitMessage(long, 10)
	require.Len(t, chunks, 3)
	for _, c := range chunks {
		assert.LessOrEqual(t, len([]rune(c)), 10)
	}
	assert.Equal(t, long, strings.Join(chunks, ""))
}
