package discord

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/memohai/tokembed/internal/channel"
)

// Send posts msg to the target channel with its files, embeds and reply reference.
func (a *DiscordAdapter) Send(ctx context.Context, msg channel.OutboundMessage) error {
	channelID := strings.TrimSpace(msg.Target)
	if channelID == "" {
		return fmt.Errorf("discord target is required")
	}
	if msg.Message.IsEmpty() {
		return fmt.Errorf("discord message is empty")
	}
	_, err := a.api.ChannelMessageSendComplex(channelID, buildMessageSend(channelID, msg.Message), discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("discord send message: %w", err)
	}
	return nil
}

// SuppressEmbeds hides the link previews Discord attached to a message.
// The bot needs the Manage Messages permission for messages of other users.
func (a *DiscordAdapter) SuppressEmbeds(ctx context.Context, target string, messageID string) error {
	edit := discordgo.NewMessageEdit(target, messageID)
	edit.Flags = discordgo.MessageFlagsSuppressEmbeds
	if _, err := a.api.ChannelMessageEditComplex(edit, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("discord suppress embeds: %w", err)
	}
	return nil
}

func (a *DiscordAdapter) React(ctx context.Context, target string, messageID string, emoji string) error {
	return a.api.MessageReactionAdd(target, messageID, emoji, discordgo.WithContext(ctx))
}

func buildMessageSend(channelID string, message channel.Message) *discordgo.MessageSend {
	data := &discordgo.MessageSend{
		Content: message.Text,
	}
	for _, att := range message.Attachments {
		data.Files = append(data.Files, &discordgo.File{
			Name:        att.Name,
			ContentType: att.Mime,
			Reader:      bytes.NewReader(att.Data),
		})
	}
	for _, embed := range message.Embeds {
		data.Embeds = append(data.Embeds, buildEmbed(embed))
	}
	if message.Reply != nil && message.Reply.MessageID != "" {
		replyChannel := message.Reply.Target
		if replyChannel == "" {
			replyChannel = channelID
		}
		data.Reference = &discordgo.MessageReference{
			MessageID: message.Reply.MessageID,
			ChannelID: replyChannel,
			GuildID:   message.Reply.GuildID,
		}
	}
	if message.SuppressMentions {
		// An empty parse list with RepliedUser unset pings nobody.
		data.AllowedMentions = &discordgo.MessageAllowedMentions{
			Parse: []discordgo.AllowedMentionType{},
		}
	}
	return data
}

func buildEmbed(embed channel.Embed) *discordgo.MessageEmbed {
	out := &discordgo.MessageEmbed{
		Description: embed.Description,
		Color:       embed.Color,
	}
	if embed.Author != nil {
		out.Author = &discordgo.MessageEmbedAuthor{
			Name:    embed.Author.Name,
			URL:     embed.Author.URL,
			IconURL: embed.Author.IconURL,
		}
	}
	for _, field := range embed.Fields {
		out.Fields = append(out.Fields, &discordgo.MessageEmbedField{
			Name:   field.Name,
			Value:  field.Value,
			Inline: field.Inline,
		})
	}
	return out
}
