package bot

import "time"

// Custom IDs for the conversation lifecycle buttons.
const (
	ButtonStartConversation = "start_conversation"
	ButtonCloseConversation = "close_conversation"
	ButtonConfirmClose      = "confirm_close_conversation"
	ButtonCancelClose       = "cancel_close_conversation"
)

// conversationChannelPrefix names the private channels the bot creates.
const conversationChannelPrefix = "conversacion-"

// ButtonStyle selects the platform rendering for a button.
type ButtonStyle int

// Button styles used by the bot.
const (
	StylePrimary ButtonStyle = iota
	StyleSecondary
	StyleDanger
)

// Interaction carries the metadata the router needs to handle a command or
// button press, plus an opaque handle the platform binding uses to respond.
type Interaction struct {
	UserID    string
	Username  string
	ChannelID string
	GuildID   string
	IsAdmin   bool
	CreatedAt time.Time
	Raw       any
}

// Command is a slash command invocation.
type Command struct {
	Interaction
	Name         string
	Options      map[string]string
	TargetUserID string
	TargetName   string
}

// Button is a button press.
type Button struct {
	Interaction
	CustomID string
}

// Message is a plain text message received in some channel.
type Message struct {
	MessageID   string
	ChannelID   string
	AuthorID    string
	AuthorIsBot bool
	Content     string
}

// EmbedField is one field of an embed.
type EmbedField struct {
	Name   string
	Value  string
	Inline bool
}

// Embed is a platform-neutral rich embed.
type Embed struct {
	Title       string
	Description string
	Thumbnail   string
	Fields      []EmbedField
}

// ButtonSpec describes a button attached to a response.
type ButtonSpec struct {
	CustomID string
	Label    string
	Style    ButtonStyle
}

// Response is everything the router can send back for an event.
type Response struct {
	Content   string
	Embeds    []Embed
	Buttons   []ButtonSpec
	Ephemeral bool
}

// Member is the subset of guild member data the bot displays.
type Member struct {
	ID        string
	Nickname  string
	JoinedAt  time.Time
	AvatarURL string
}
