// Package reactionroletest provides an in-memory reactionrole.Platform.
package reactionroletest

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/gobridge/rolebot/reactionrole"
)

// ErrNotFound is returned for unknown channels, messages and members.
var ErrNotFound = errors.New("not found")

// Call records one collaborator call.
type Call struct {
	Op   string
	Args []string
}

// Platform is a reactionrole.Platform backed by maps. It is safe for
// concurrent use.
type Platform struct {
	Self string

	// Fail makes the named operation fail with the given error.
	Fail map[string]error

	// FailReaction makes AddReaction fail for the given emoji.
	FailReaction map[string]error

	// FailCreate makes CreateRole fail for the given role name.
	FailCreate map[string]error

	// CreateDelay holds CreateRole for the given role name before it
	// creates the role.
	CreateDelay map[string]time.Duration

	mu       sync.Mutex
	nextID   int
	calls    []Call
	channels map[string]reactionrole.Channel
	messages map[string]reactionrole.Message
	roles    map[string][]reactionrole.Role
	members  map[string]*reactionrole.Member
}

// New returns an empty Platform posting as self.
func New(self string) *Platform {
	return &Platform{
		Self:         self,
		Fail:         map[string]error{},
		FailReaction: map[string]error{},
		FailCreate:   map[string]error{},
		CreateDelay:  map[string]time.Duration{},
		nextID:       1000,
		channels:     map[string]reactionrole.Channel{},
		messages:     map[string]reactionrole.Message{},
		roles:        map[string][]reactionrole.Role{},
		members:      map[string]*reactionrole.Member{},
	}
}

// AddChannel registers a channel.
func (p *Platform) AddChannel(guildID, channelID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.channels[channelID] = reactionrole.Channel{ID: channelID, GuildID: guildID}
}

// AddRole registers an existing role.
func (p *Platform) AddRole(guildID, roleID, name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.roles[guildID] = append(p.roles[guildID], reactionrole.Role{ID: roleID, Name: name})
}

// AddMember registers a guild member.
func (p *Platform) AddMember(guildID, userID string, bot bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.members[guildID+"/"+userID] = &reactionrole.Member{GuildID: guildID, UserID: userID, Bot: bot}
}

// PutMessage stores msg as is, replacing any message with the same id.
func (p *Platform) PutMessage(msg reactionrole.Message) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages[msg.ChannelID+"/"+msg.ID] = msg
}

// Roles returns the roles of a guild.
func (p *Platform) Roles(ctx context.Context, guildID string) ([]reactionrole.Role, error) {
	if err := p.record("Roles", guildID); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]reactionrole.Role(nil), p.roles[guildID]...), nil
}

// CreateRole creates a role with a generated id.
func (p *Platform) CreateRole(ctx context.Context, guildID, name string) (reactionrole.Role, error) {
	if err := p.record("CreateRole", guildID, name); err != nil {
		return reactionrole.Role{}, err
	}
	p.mu.Lock()
	delay, err := p.CreateDelay[name], p.FailCreate[name]
	p.mu.Unlock()
	if err != nil {
		return reactionrole.Role{}, err
	}
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return reactionrole.Role{}, ctx.Err()
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	role := reactionrole.Role{ID: p.id(), Name: name}
	p.roles[guildID] = append(p.roles[guildID], role)
	return role, nil
}

// SelfID returns Self.
func (p *Platform) SelfID() string {
	return p.Self
}

// Channel returns a registered channel.
func (p *Platform) Channel(ctx context.Context, channelID string) (reactionrole.Channel, error) {
	if err := p.record("Channel", channelID); err != nil {
		return reactionrole.Channel{}, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.channels[channelID]
	if !ok {
		return reactionrole.Channel{}, ErrNotFound
	}
	return c, nil
}

// Message returns a stored message.
func (p *Platform) Message(ctx context.Context, channelID, messageID string) (reactionrole.Message, error) {
	if err := p.record("Message", channelID, messageID); err != nil {
		return reactionrole.Message{}, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	m, ok := p.messages[channelID+"/"+messageID]
	if !ok {
		return reactionrole.Message{}, ErrNotFound
	}
	return m, nil
}

// SendBoard stores a board message authored by Self.
func (p *Platform) SendBoard(ctx context.Context, channelID, description string) (reactionrole.Message, error) {
	if err := p.record("SendBoard", channelID, description); err != nil {
		return reactionrole.Message{}, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	msg := reactionrole.Message{
		ID:        p.id(),
		ChannelID: channelID,
		GuildID:   p.channels[channelID].GuildID,
		AuthorID:  p.Self,
		Embeds:    []reactionrole.Embed{{Description: description}},
	}
	p.messages[channelID+"/"+msg.ID] = msg
	return msg, nil
}

// AddReaction records the reaction.
func (p *Platform) AddReaction(ctx context.Context, channelID, messageID, emoji string) error {
	if err := p.record("AddReaction", channelID, messageID, emoji); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.FailReaction[emoji]
}

// Member returns a registered member.
func (p *Platform) Member(ctx context.Context, guildID, userID string) (reactionrole.Member, error) {
	if err := p.record("Member", guildID, userID); err != nil {
		return reactionrole.Member{}, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	m, ok := p.members[guildID+"/"+userID]
	if !ok {
		return reactionrole.Member{}, ErrNotFound
	}
	return *m, nil
}

// AddMemberRole gives a member a role.
func (p *Platform) AddMemberRole(ctx context.Context, guildID, userID, roleID string) error {
	if err := p.record("AddMemberRole", guildID, userID, roleID); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	m, ok := p.members[guildID+"/"+userID]
	if !ok {
		return ErrNotFound
	}
	for _, id := range m.RoleIDs {
		if id == roleID {
			return nil
		}
	}
	m.RoleIDs = append(m.RoleIDs, roleID)
	return nil
}

// RemoveMemberRole takes a role away from a member.
func (p *Platform) RemoveMemberRole(ctx context.Context, guildID, userID, roleID string) error {
	if err := p.record("RemoveMemberRole", guildID, userID, roleID); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	m, ok := p.members[guildID+"/"+userID]
	if !ok {
		return ErrNotFound
	}
	for i, id := range m.RoleIDs {
		if id == roleID {
			m.RoleIDs = append(m.RoleIDs[:i], m.RoleIDs[i+1:]...)
			break
		}
	}
	return nil
}

// MemberRoles returns the role ids a member currently has.
func (p *Platform) MemberRoles(guildID, userID string) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	m, ok := p.members[guildID+"/"+userID]
	if !ok {
		return nil
	}
	return append([]string(nil), m.RoleIDs...)
}

// Calls returns the recorded calls named op, or all calls when op is empty.
func (p *Platform) Calls(op string) []Call {
	p.mu.Lock()
	defer p.mu.Unlock()
	var calls []Call
	for _, c := range p.calls {
		if op == "" || c.Op == op {
			calls = append(calls, c)
		}
	}
	return calls
}

// Reset forgets the recorded calls.
func (p *Platform) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = nil
}

func (p *Platform) record(op string, args ...string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, Call{Op: op, Args: args})
	return p.Fail[op]
}

// id must be called with mu held.
func (p *Platform) id() string {
	p.nextID++
	return strconv.Itoa(p.nextID)
}
