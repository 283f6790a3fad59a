package reactionrole

import "context"

type (
	// Channel is a guild text channel.
	Channel struct {
		ID      string
		GuildID string
	}

	// Message is a posted chat message.
	Message struct {
		ID        string
		ChannelID string
		GuildID   string
		AuthorID  string
		Content   string
		Embeds    []Embed
	}

	// Embed is the rich-text part of a message.
	Embed struct {
		Description string
	}

	// Role is a guild role.
	Role struct {
		ID   string
		Name string
	}

	// Member is a user's membership record in a guild.
	Member struct {
		GuildID string
		UserID  string
		RoleIDs []string
		Bot     bool
	}

	// RoleService lists and creates guild roles.
	RoleService interface {
		Roles(ctx context.Context, guildID string) ([]Role, error)
		CreateRole(ctx context.Context, guildID, name string) (Role, error)
	}

	// Platform is everything the boards need from the chat platform.
	Platform interface {
		RoleService

		// SelfID is the user id the bot posts as.
		SelfID() string

		Channel(ctx context.Context, channelID string) (Channel, error)
		Message(ctx context.Context, channelID, messageID string) (Message, error)

		// SendBoard posts a message with no content and a single embed
		// holding description.
		SendBoard(ctx context.Context, channelID, description string) (Message, error)
		AddReaction(ctx context.Context, channelID, messageID, emoji string) error

		Member(ctx context.Context, guildID, userID string) (Member, error)
		AddMemberRole(ctx context.Context, guildID, userID, roleID string) error
		RemoveMemberRole(ctx context.Context, guildID, userID, roleID string) error
	}
)
