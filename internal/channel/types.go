// Package channel provides the platform-neutral message model shared by the
// re-embed pipeline and chat platform adapters.
package channel

import (
	"strings"
	"time"
)

// ChannelType identifies a messaging platform (e.g., "discord").
type ChannelType string

// String returns the channel type as a plain string.
func (c ChannelType) String() string {
	return string(c)
}

// Identity represents a sender's identity on a channel.
type Identity struct {
	SubjectID  string
	Attributes map[string]string
}

// Attribute returns the trimmed value for the given key, or empty string if absent.
func (i Identity) Attribute(key string) string {
	if i.Attributes == nil {
		return ""
	}
	return strings.TrimSpace(i.Attributes[key])
}

// Conversation holds metadata about the chat or guild context.
type Conversation struct {
	ID      string
	GuildID string
}

// InboundMessage is a message received from an external channel.
type InboundMessage struct {
	Channel      ChannelType
	Message      Message
	ReplyTarget  string
	Sender       Identity
	Conversation Conversation
}

// OutboundMessage pairs a delivery target with the message content.
type OutboundMessage struct {
	Target  string  `json:"target"`
	Message Message `json:"message"`
}

// AttachmentType classifies the kind of binary attachment.
type AttachmentType string

const (
	AttachmentVideo AttachmentType = "video"
)

// Attachment is a binary file uploaded together with a message.
type Attachment struct {
	Type AttachmentType `json:"type"`
	Name string         `json:"name,omitempty"`
	Mime string         `json:"mime,omitempty"`
	Size int64          `json:"size,omitempty"`
	Data []byte         `json:"-"`
}

// ReplyRef points to a message being replied to.
type ReplyRef struct {
	Target    string `json:"target,omitempty"`
	MessageID string `json:"message_id,omitempty"`
	GuildID   string `json:"guild_id,omitempty"`
}

// EmbedAuthor is the author block of a rich embed.
type EmbedAuthor struct {
	Name    string `json:"name,omitempty"`
	URL     string `json:"url,omitempty"`
	IconURL string `json:"icon_url,omitempty"`
}

// EmbedField is one named value of a rich embed.
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// Embed is a rich card rendered by the platform next to the message text.
type Embed struct {
	Author      *EmbedAuthor `json:"author,omitempty"`
	Description string       `json:"description,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
	Color       int          `json:"color,omitempty"`
}

// Message is the unified message structure used across channels.
type Message struct {
	ID          string       `json:"id,omitempty"`
	Text        string       `json:"text,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
	Embeds      []Embed      `json:"embeds,omitempty"`
	Reply       *ReplyRef    `json:"reply,omitempty"`
	// SuppressMentions disables every mention notification, including the
	// ping to the author of the replied-to message.
	SuppressMentions bool `json:"suppress_mentions,omitempty"`
}

// IsEmpty reports whether the message carries no content.
func (m Message) IsEmpty() bool {
	return strings.TrimSpace(m.Text) == "" &&
		len(m.Attachments) == 0 &&
		len(m.Embeds) == 0
}

// ConnectionStatus is the runtime state of an adapter's platform connection.
type ConnectionStatus struct {
	ChannelType ChannelType
	Running     bool
	LastError   string
	UpdatedAt   time.Time
}
