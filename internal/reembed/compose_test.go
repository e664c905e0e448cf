package reembed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memohai/tokembed/internal/channel"
	"github.com/memohai/tokembed/internal/tiktok"
)

func TestComposeReply(t *testing.T) {
	t.Parallel()

	video := tiktok.Video{
		ID:          "7106594312292453675",
		Description: "dance",
		Author:      tiktok.Author{Name: "Dancer", Username: "dancer.1", AvatarURI: "tos-abc"},
		Statistics:  tiktok.Statistics{Likes: 1234567, Comments: 0, Views: 18446744073709551615},
	}
	out := ComposeReply(inbound(desktopURL), video, []byte("mp4"))

	assert.Equal(t, "chan-1", out.Target)
	assert.Empty(t, out.Message.Text)
	assert.True(t, out.Message.SuppressMentions)
	assert.Equal(t, &channel.ReplyRef{Target: "chan-1", MessageID: "msg-1", GuildID: "guild-1"}, out.Message.Reply)

	require.Len(t, out.Message.Attachments, 1)
	att := out.Message.Attachments[0]
	assert.Equal(t, "7106594312292453675.mp4", att.Name)
	assert.Equal(t, "video/mp4", att.Mime)
	assert.Equal(t, int64(3), att.Size)

	require.Len(t, out.Message.Embeds, 1)
	embed := out.Message.Embeds[0]
	assert.Equal(t, 0xF82054, embed.Color)
	assert.Equal(t, "dance", embed.Description)
	assert.Equal(t, &channel.EmbedAuthor{
		Name:    "Dancer (@dancer.1)",
		URL:     "https://tiktok.com/@dancer.1",
		IconURL: "https://p16-amd-va.tiktokcdn.com/origin/tos-abc.jpeg",
	}, embed.Author)
	assert.Equal(t, []channel.EmbedField{
		{Name: "Likes", Value: "1234567", Inline: true},
		{Name: "Comments", Value: "0", Inline: true},
		{Name: "Views", Value: "18446744073709551615", Inline: true},
	}, embed.Fields)
}
