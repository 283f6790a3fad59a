package reactionrole

import (
	"context"
	"fmt"
)

// Board is a published reaction role message.
type Board struct {
	GuildID     string
	ChannelID   string
	MessageID   string
	Definitions []Definition

	// ReactErrors holds the emoji that could not be attached. They don't
	// prevent the board from working once someone adds them by hand.
	ReactErrors []*ReactError
}

// Publisher creates boards.
type Publisher struct {
	platform Platform
	resolver *Resolver
}

// NewPublisher constructs a *Publisher.
func NewPublisher(p Platform) *Publisher {
	return &Publisher{
		platform: p,
		resolver: NewResolver(p),
	}
}

// Publish resolves the roles named in text, posts the board to channelID and
// attaches one reaction per definition.
//
// The returned error is ErrUnknownChannel, ErrNoDefinitions, a
// *ResolutionError or a failure to send the message. Reaction failures are
// reported in Board.ReactErrors.
func (p *Publisher) Publish(ctx context.Context, guildID, channelID, text string) (*Board, error) {
	channel, err := p.platform.Channel(ctx, channelID)
	if err != nil || channel.GuildID != guildID {
		return nil, ErrUnknownChannel
	}

	defs := Parse(text)
	if defs == nil {
		return nil, ErrNoDefinitions
	}

	defs, err = p.resolver.ResolveAll(ctx, guildID, defs)
	if err != nil {
		return nil, err
	}

	published, emoji := Render(text, defs)
	msg, err := p.platform.SendBoard(ctx, channel.ID, published)
	if err != nil {
		return nil, fmt.Errorf("sending board: %w", err)
	}

	board := &Board{
		GuildID:     guildID,
		ChannelID:   channel.ID,
		MessageID:   msg.ID,
		Definitions: defs,
	}
	for _, e := range emoji {
		if err := p.platform.AddReaction(ctx, channel.ID, msg.ID, e); err != nil {
			board.ReactErrors = append(board.ReactErrors, &ReactError{Emoji: e, Err: err})
		}
	}
	return board, nil
}
