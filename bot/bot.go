package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/gobridge/rolebot/reactionrole"
)

type (
	// Logger function
	Logger func(message string, args ...interface{})

	// Options configures a Bot.
	Options struct {
		Name    string
		Version string
		Prefix  string
		DevMode bool
		Logf    Logger
	}

	// Bot structure
	Bot struct {
		name    string
		version string
		prefix  string
		devMode bool
		session *discordgo.Session
		logf    Logger
		tracer  trace.Tracer

		mu            sync.Mutex
		handlers      []Handler
		subscriptions map[*Subscription]struct{}
		removeMessage func()
	}

	// Message is a command sent to the bot.
	Message struct {
		Event         *discordgo.MessageCreate
		GuildID       string
		ChannelID     string
		AuthorID      string
		MemberRoleIDs []string

		// Text is the full message content, TrimmedText the content
		// after the command prefix.
		Text        string
		TrimmedText string
	}

	// Handler handles commands.
	Handler interface {
		Handle(ctx context.Context, m Message, r Responder)
	}

	// HandlerFunc adapts a function to a Handler.
	HandlerFunc func(ctx context.Context, m Message, r Responder)

	// Responder answers the message being handled.
	Responder interface {
		// Respond posts text to the message's channel.
		Respond(ctx context.Context, text string)
		// Reply posts text as a reply to the message.
		Reply(ctx context.Context, text string)
	}

	// ReactionHandler handles reactions added to or removed from any
	// message the bot can see.
	ReactionHandler interface {
		HandleReaction(ctx context.Context, ev reactionrole.ReactionEvent)
	}

	// ReactionHandlerFunc adapts a function to a ReactionHandler.
	ReactionHandlerFunc func(ctx context.Context, ev reactionrole.ReactionEvent)
)

// Handle calls f(ctx, m, r).
func (f HandlerFunc) Handle(ctx context.Context, m Message, r Responder) {
	f(ctx, m, r)
}

// HandleReaction calls f(ctx, ev).
func (f ReactionHandlerFunc) HandleReaction(ctx context.Context, ev reactionrole.ReactionEvent) {
	f(ctx, ev)
}

// New will create a new Discord bot on top of session. The session must not
// be open yet.
func New(session *discordgo.Session, opts Options) *Bot {
	session.Identify.Intents = discordgo.IntentGuilds |
		discordgo.IntentGuildMessages |
		discordgo.IntentGuildMessageReactions |
		discordgo.IntentMessageContent

	logf := opts.Logf
	if logf == nil {
		logf = func(string, ...interface{}) {}
	}

	return &Bot{
		name:          opts.Name,
		version:       opts.Version,
		prefix:        opts.Prefix,
		devMode:       opts.DevMode,
		session:       session,
		logf:          logf,
		tracer:        otel.Tracer("github.com/gobridge/rolebot/bot"),
		subscriptions: map[*Subscription]struct{}{},
	}
}

// Open connects to Discord and starts dispatching messages to the handlers.
func (b *Bot) Open() error {
	b.mu.Lock()
	b.removeMessage = b.session.AddHandler(b.messageCreate)
	b.mu.Unlock()

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("opening discord session: %w", err)
	}

	b.logf("Initialized %s with ID: %s\n", b.name, b.SelfID())
	return nil
}

// Close removes every subscription and disconnects.
func (b *Bot) Close() error {
	b.mu.Lock()
	subs := make([]*Subscription, 0, len(b.subscriptions))
	for s := range b.subscriptions {
		subs = append(subs, s)
	}
	if b.removeMessage != nil {
		b.removeMessage()
		b.removeMessage = nil
	}
	b.mu.Unlock()

	for _, s := range subs {
		s.Unsubscribe()
	}
	return b.session.Close()
}

// Ready returns an error until the gateway connection is up.
func (b *Bot) Ready() error {
	b.session.RLock()
	defer b.session.RUnlock()
	if !b.session.DataReady {
		return errors.New("discord session not ready")
	}
	return nil
}

// Version returns the version the bot was started with.
func (b *Bot) Version() string {
	return b.version
}

// Handle registers h for every command message. Handlers are called in
// registration order.
func (b *Bot) Handle(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

func (b *Bot) messageCreate(s *discordgo.Session, event *discordgo.MessageCreate) {
	if event.Author == nil || event.Author.Bot {
		return
	}

	m, ok := b.command(event)
	if !ok {
		return
	}

	if b.devMode {
		b.logf("got message: %s\n", m.Text)
		b.logf("channel: %s -> command: %q\n", m.ChannelID, m.TrimmedText)
	}

	ctx, span := b.tracer.Start(context.Background(), "b.MessageCreate")
	span.SetAttributes(
		attribute.String("guild", m.GuildID),
		attribute.String("channel", m.ChannelID),
	)
	defer span.End()

	b.mu.Lock()
	handlers := b.handlers
	b.mu.Unlock()

	r := &responder{b: b, event: event}
	for _, h := range handlers {
		h.Handle(ctx, m, r)
	}
}

// command builds a Message from event when it starts with the command
// prefix.
func (b *Bot) command(event *discordgo.MessageCreate) (Message, bool) {
	text := strings.TrimSpace(event.Content)
	if !strings.HasPrefix(text, b.prefix) {
		return Message{}, false
	}

	m := Message{
		Event:       event,
		GuildID:     event.GuildID,
		ChannelID:   event.ChannelID,
		Text:        text,
		TrimmedText: strings.TrimPrefix(text, b.prefix),
	}
	if event.Author != nil {
		m.AuthorID = event.Author.ID
	}
	if event.Member != nil {
		m.MemberRoleIDs = event.Member.Roles
	}
	return m, true
}

type responder struct {
	b     *Bot
	event *discordgo.MessageCreate
}

func (r *responder) Respond(ctx context.Context, text string) {
	if r.b.devMode {
		r.b.logf("should reply to message %s with %s\n", r.event.Content, text)
	}
	_, err := r.b.session.ChannelMessageSend(r.event.ChannelID, text, discordgo.WithContext(ctx))
	if err != nil {
		r.b.logf("%s\n", err)
	}
}

func (r *responder) Reply(ctx context.Context, text string) {
	if r.b.devMode {
		r.b.logf("should reply to message %s with %s\n", r.event.Content, text)
	}
	_, err := r.b.session.ChannelMessageSendReply(r.event.ChannelID, text, r.event.Reference(), discordgo.WithContext(ctx))
	if err != nil {
		r.b.logf("%s\n", err)
	}
}
