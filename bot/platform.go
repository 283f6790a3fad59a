package bot

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/gobridge/rolebot/reactionrole"
)

var _ reactionrole.Platform = (*Bot)(nil)

// SelfID returns the bot's user id, or "" before the session is ready.
func (b *Bot) SelfID() string {
	s := b.session.State
	if s == nil {
		return ""
	}
	s.RLock()
	defer s.RUnlock()
	if s.User == nil {
		return ""
	}
	return s.User.ID
}

// Channel fetches a channel.
func (b *Bot) Channel(ctx context.Context, channelID string) (reactionrole.Channel, error) {
	c, err := b.session.Channel(channelID, discordgo.WithContext(ctx))
	if err != nil {
		return reactionrole.Channel{}, err
	}
	return reactionrole.Channel{ID: c.ID, GuildID: c.GuildID}, nil
}

// Message fetches a message.
func (b *Bot) Message(ctx context.Context, channelID, messageID string) (reactionrole.Message, error) {
	m, err := b.session.ChannelMessage(channelID, messageID, discordgo.WithContext(ctx))
	if err != nil {
		return reactionrole.Message{}, err
	}
	return message(m), nil
}

// SendBoard posts description as the only embed of a new message.
func (b *Bot) SendBoard(ctx context.Context, channelID, description string) (reactionrole.Message, error) {
	embed := &discordgo.MessageEmbed{
		Description: description,
		Color:       reactionrole.EmbedColor,
	}
	m, err := b.session.ChannelMessageSendEmbed(channelID, embed, discordgo.WithContext(ctx))
	if err != nil {
		return reactionrole.Message{}, err
	}
	return message(m), nil
}

// AddReaction reacts to a message with an emoji token as written in a
// message.
func (b *Bot) AddReaction(ctx context.Context, channelID, messageID, emoji string) error {
	return b.session.MessageReactionAdd(channelID, messageID, apiEmoji(emoji), discordgo.WithContext(ctx))
}

// Roles lists the roles of a guild.
func (b *Bot) Roles(ctx context.Context, guildID string) ([]reactionrole.Role, error) {
	roles, err := b.session.GuildRoles(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	out := make([]reactionrole.Role, 0, len(roles))
	for _, r := range roles {
		out = append(out, reactionrole.Role{ID: r.ID, Name: r.Name})
	}
	return out, nil
}

// CreateRole creates a role with default permissions.
func (b *Bot) CreateRole(ctx context.Context, guildID, name string) (reactionrole.Role, error) {
	r, err := b.session.GuildRoleCreate(guildID, &discordgo.RoleParams{Name: name}, discordgo.WithContext(ctx))
	if err != nil {
		return reactionrole.Role{}, err
	}
	return reactionrole.Role{ID: r.ID, Name: r.Name}, nil
}

// Member fetches a guild member.
func (b *Bot) Member(ctx context.Context, guildID, userID string) (reactionrole.Member, error) {
	m, err := b.session.GuildMember(guildID, userID, discordgo.WithContext(ctx))
	if err != nil {
		return reactionrole.Member{}, err
	}

	member := reactionrole.Member{
		GuildID: guildID,
		UserID:  userID,
		RoleIDs: m.Roles,
	}
	if m.User != nil {
		member.Bot = m.User.Bot
	}
	return member, nil
}

// AddMemberRole gives a member a role.
func (b *Bot) AddMemberRole(ctx context.Context, guildID, userID, roleID string) error {
	return b.session.GuildMemberRoleAdd(guildID, userID, roleID, discordgo.WithContext(ctx))
}

// RemoveMemberRole takes a role away from a member.
func (b *Bot) RemoveMemberRole(ctx context.Context, guildID, userID, roleID string) error {
	return b.session.GuildMemberRoleRemove(guildID, userID, roleID, discordgo.WithContext(ctx))
}

func message(m *discordgo.Message) reactionrole.Message {
	msg := reactionrole.Message{
		ID:        m.ID,
		ChannelID: m.ChannelID,
		GuildID:   m.GuildID,
		Content:   m.Content,
	}
	if m.Author != nil {
		msg.AuthorID = m.Author.ID
	}
	for _, e := range m.Embeds {
		if e == nil {
			continue
		}
		msg.Embeds = append(msg.Embeds, reactionrole.Embed{Description: e.Description})
	}
	return msg
}

// apiEmoji converts an emoji as written in a message to the form the
// reactions endpoint expects: name:id for custom emoji, the character
// itself otherwise.
func apiEmoji(token string) string {
	if strings.HasPrefix(token, "<") && strings.HasSuffix(token, ">") {
		token = strings.TrimSuffix(strings.TrimPrefix(token, "<"), ">")
		token = strings.TrimPrefix(token, "a")
		return strings.TrimPrefix(token, ":")
	}
	return strings.Trim(token, ":")
}
