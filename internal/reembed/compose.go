package reembed

import (
	"fmt"
	"strconv"

	"github.com/memohai/tokembed/internal/channel"
	"github.com/memohai/tokembed/internal/tiktok"
)

const (
	// FailureReaction is added to the triggering message when a re-embed fails.
	FailureReaction = "❌"
	// EmbedColor is the accent color of the reply embed.
	EmbedColor = 0xF82054

	videoMime = "video/mp4"
)

// ComposeReply builds the reply to msg: the video file, an embed describing
// it, and a reply reference that pings nobody.
func ComposeReply(msg channel.InboundMessage, video tiktok.Video, data []byte) channel.OutboundMessage {
	author := video.Author
	return channel.OutboundMessage{
		Target: msg.ReplyTarget,
		Message: channel.Message{
			Attachments: []channel.Attachment{{
				Type: channel.AttachmentVideo,
				Name: video.ID.String() + ".mp4",
				Mime: videoMime,
				Size: int64(len(data)),
				Data: data,
			}},
			Embeds: []channel.Embed{{
				Author: &channel.EmbedAuthor{
					Name:    fmt.Sprintf("%s (@%s)", author.Name, author.Username),
					URL:     author.ProfileURL(),
					IconURL: author.AvatarURL(),
				},
				Description: video.Description,
				Fields: []channel.EmbedField{
					{Name: "Likes", Value: strconv.FormatUint(video.Statistics.Likes, 10), Inline: true},
					{Name: "Comments", Value: strconv.FormatUint(video.Statistics.Comments, 10), Inline: true},
					{Name: "Views", Value: strconv.FormatUint(video.Statistics.Views, 10), Inline: true},
				},
				Color: EmbedColor,
			}},
			Reply: &channel.ReplyRef{
				Target:    msg.ReplyTarget,
				MessageID: msg.Message.ID,
				GuildID:   msg.Conversation.GuildID,
			},
			SuppressMentions: true,
		},
	}
}
