package nirc

import (
	"context"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/nirc/nirc/internal/ctxgroup"
)

// globalRegistry is the process-wide registry: cogs register against it
// through a *Bot, whose Command/PrefixCommand/On*/Task methods write into
// both the bot's own per-instance registry and this one. Every Bot snapshots from here at
// construction time and then maintains its own view independently, per
// §3 of the specification.
var globalRegistry = NewRegistry()

// GlobalRegistry returns the process-wide registry that every Bot
// snapshots from when it's constructed.
func GlobalRegistry() *Registry { return globalRegistry }

// Config holds the values needed to construct a Bot.
type Config struct {
	// Prefix is the command sigil, e.g. "!".
	Prefix string
	// Host and Port identify the server to connect to.
	Host string
	Port int
	// Nick, Username, Realname identify the bot to the server.
	Nick     string
	Username string
	Realname string
	// Password, if set, is sent as the server password (PASS) during
	// registration, and the same value is sent to NickServ as
	// "IDENTIFY <password>" once registration completes.
	Password string
	// Channels lists the channels to join after registration completes,
	// in join order. A slice (rather than a map) because the join order
	// is observable on the wire and must be deterministic.
	Channels []ChannelJoin
	// DownloadsDir is where inbound DCC files land. Defaults to "downloads".
	DownloadsDir string
	// Debug enables verbose logging regardless of NIRC_DEBUG.
	Debug bool
}

// ChannelJoin is one entry of Config.Channels: a channel to join, with an
// optional key.
type ChannelJoin struct {
	Name string
	Key  string
}

// cogRecord is the bookkeeping kept per loaded cog: exactly what it added,
// so Unload can remove exactly that and nothing more.
type cogRecord struct {
	delta Delta
	fn    CogFunc
}

// Bot is the top-level coordinator: it owns the Connection, performs
// registration, joins configured channels once the server signals the end
// of the MOTD, and drives the read/dispatch loop until shutdown.
type Bot struct {
	conn     *Connection
	Commands *Commands
	logger   *Logger

	prefix   string
	nick     string
	username string
	realname string
	password string

	mu         sync.RWMutex
	running    bool
	registered bool

	channels []ChannelJoin
	saveDir  string

	registry *Registry

	cogsMu sync.Mutex
	cogs   map[string]*cogRecord

	muteMu sync.Mutex
	mute   map[string]map[string]bool

	stop context.CancelFunc
}

// New constructs a Bot from cfg. It does not connect; call Start for that.
func New(cfg Config) *Bot {
	downloads := cfg.DownloadsDir
	if downloads == "" {
		downloads = "downloads"
	}

	logger := NewLogger(cfg.Debug || os.Getenv("NIRC_DEBUG") != "")

	conn := NewConnection(cfg.Host, cfg.Port, logger)

	b := &Bot{
		conn:       conn,
		Commands:   &Commands{conn: conn},
		logger:     logger,
		prefix:     cfg.Prefix,
		nick:       cfg.Nick,
		username:   cfg.Username,
		realname:   cfg.Realname,
		password:   cfg.Password,
		channels:   cfg.Channels,
		saveDir:    downloads,
		registry:   snapshotRegistry(globalRegistry),
		cogs:       make(map[string]*cogRecord),
		mute:       make(map[string]map[string]bool),
	}

	return b
}

// snapshotRegistry copies every current registration out of src into a
// fresh Registry, used to give each Bot its own mutable view.
func snapshotRegistry(src *Registry) *Registry {
	dst := NewRegistry()

	for _, name := range src.CommandNames() {
		if h, ok := src.Command(name); ok {
			dst.RegisterCommand(name, h)
		}
	}
	for _, prefix := range src.PrefixCommandPrefixes() {
		if h, ok := src.PrefixCommand(prefix); ok {
			dst.RegisterPrefixCommand(prefix, h)
		}
	}
	for _, id := range src.TaskIDs() {
		if t, ok := src.Task(id); ok {
			dst.RegisterTask(t.ID, t.Interval, t.MaxRepeat, t.Handler)
		}
	}
	for _, kind := range []EventKind{EventMessage, EventJoin, EventLeave, EventRaw, EventReady, EventNick, EventDCC} {
		for _, fn := range src.eventHandlersOf(kind) {
			dst.addEventHandler(kind, fn)
		}
	}

	return dst
}

// Command registers name on the bot's own registry and on the process-wide
// registry, so a cog loaded later can still see it.
func (b *Bot) Command(name string, h CommandHandler) {
	b.registry.RegisterCommand(name, h)
	globalRegistry.RegisterCommand(name, h)
}

// PrefixCommand registers a literal-prefix handler. Re-registering an
// existing prefix overwrites it and logs a warning, matching the
// specification's documented overwrite-with-warning behavior.
func (b *Bot) PrefixCommand(prefix string, h CommandHandler) {
	if b.registry.HasPrefixCommand(prefix) {
		b.logger.Printf("CORE", "prefix-command %q re-registered, overwriting", prefix)
	}
	b.registry.RegisterPrefixCommand(prefix, h)
	globalRegistry.RegisterPrefixCommand(prefix, h)
}

// onEvent registers fn under a single shared id on both the bot's own
// registry and the process-wide one, so a later cog-unload diff removes
// the same logical handler from both.
func (b *Bot) onEvent(kind EventKind, fn any) {
	id := newID(16)
	b.registry.addEventHandlerWithID(kind, id, fn)
	globalRegistry.addEventHandlerWithID(kind, id, fn)
}

// OnMessage registers h for channel-message events.
func (b *Bot) OnMessage(h EventHandler) { b.onEvent(EventMessage, h) }

// OnJoin registers h for join events.
func (b *Bot) OnJoin(h EventHandler) { b.onEvent(EventJoin, h) }

// OnLeave registers h for part/quit events.
func (b *Bot) OnLeave(h EventHandler) { b.onEvent(EventLeave, h) }

// OnRaw registers h for every inbound line that reaches the dispatcher
// (every line except a PING), with a Context that carries only the raw line.
func (b *Bot) OnRaw(h EventHandler) { b.onEvent(EventRaw, h) }

// OnNick registers h for nick-change events.
func (b *Bot) OnNick(h EventHandler) { b.onEvent(EventNick, h) }

// OnReady registers h to run once registration completes.
func (b *Bot) OnReady(h ReadyHandler) { b.onEvent(EventReady, h) }

// OnDCC registers h to run for every inbound DCC SEND advertisement.
func (b *Bot) OnDCC(h DCCHandler) { b.onEvent(EventDCC, h) }

// Task registers a periodic task on the bot and returns the bot's own
// descriptor for it.
func (b *Bot) Task(id string, intervalSeconds float64, maxRepeat int, h TaskHandler) *Task {
	t := b.registry.RegisterTask(id, intervalSeconds, maxRepeat, h)
	globalRegistry.RegisterTask(id, intervalSeconds, maxRepeat, h)
	return t
}

// Nick returns the bot's configured nickname.
func (b *Bot) Nick() string { return b.nick }

// Prefix returns the bot's configured command prefix.
func (b *Bot) Prefix() string { return b.prefix }

// Logger returns the bot's logger, for use from cogs.
func (b *Bot) Logger() *Logger { return b.logger }

// CommandNames returns every command name currently registered on this
// bot's registry, in no particular order.
func (b *Bot) CommandNames() []string { return b.registry.CommandNames() }

// PrefixCommandPrefixes returns every prefix-command prefix currently
// registered on this bot's registry.
func (b *Bot) PrefixCommandPrefixes() []string { return b.registry.PrefixCommandPrefixes() }

// Member returns a handle for issuing moderation actions against nick.
func (b *Bot) Member(nick string) *Member {
	return &Member{bot: b, Nick: nick}
}

// Channel returns a handle for issuing channel-scoped actions.
func (b *Bot) Channel(name string) *Channel {
	return &Channel{bot: b, Name: name}
}

// Oper authenticates the bot as a server operator.
func (b *Bot) Oper(username, password string) error {
	return b.Commands.Oper(username, password)
}

func (b *Bot) setMuted(channel, nick string, muted bool) {
	b.muteMu.Lock()
	defer b.muteMu.Unlock()

	if b.mute[channel] == nil {
		b.mute[channel] = make(map[string]bool)
	}
	if muted {
		b.mute[channel][nick] = true
	} else {
		delete(b.mute[channel], nick)
	}
}

func (b *Bot) isMuted(channel, nick string) bool {
	b.muteMu.Lock()
	defer b.muteMu.Unlock()
	return b.mute[channel][nick]
}

// IsRunning reports whether the main loop should continue.
func (b *Bot) IsRunning() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.running
}

// IsRegistered reports whether numeric 376 has been seen on this connection.
func (b *Bot) IsRegistered() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.registered
}

// Stop requests cooperative shutdown: the read loop exits at its next
// iteration, task drivers exit at their next check, and Start returns.
func (b *Bot) Stop() {
	b.mu.Lock()
	b.running = false
	b.mu.Unlock()

	if b.stop != nil {
		b.stop()
	}
}

// Start connects, performs registration, and runs the main read/dispatch
// loop until the connection drops or Stop is called. It returns the error
// that ended the loop, or nil on a clean Stop.
func (b *Bot) Start() error {
	if err := b.validate(); err != nil {
		return err
	}

	if err := b.conn.Connect(); err != nil {
		return err
	}

	b.mu.Lock()
	b.running = true
	b.mu.Unlock()

	if b.password != "" {
		_ = b.Commands.Pass(b.password)
	}
	_ = b.Commands.User(b.username, b.realname)
	_ = b.Commands.Nick(b.nick)

	b.logger.Print("CORE", "registration sent")
	time.Sleep(500 * time.Millisecond)

	if err := os.MkdirAll(b.saveDir, 0o755); err != nil {
		b.logger.Printf("CORE", "could not create save_dir %q: %v", b.saveDir, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	b.stop = cancel

	group := ctxgroup.New(ctx)
	group.Go(b.readLoop)

	err := group.Wait()

	b.mu.Lock()
	b.running = false
	b.mu.Unlock()

	_ = b.conn.Close("")

	return err
}

// validate checks the identity fields needed before registration can
// proceed, matching the spirit of girc's Config.isValid().
func (b *Bot) validate() error {
	if b.conn.host == "" {
		return &InvalidConfigError{Reason: "empty host"}
	}
	if !IsValidNick(b.nick) {
		return &InvalidConfigError{Reason: "bad nickname: " + b.nick}
	}
	if b.username == "" {
		return &InvalidConfigError{Reason: "empty username"}
	}
	return nil
}

// readLoop is the main loop of §4.5: read a line, handle registration and
// PING specially, then hand everything else to the dispatcher.
func (b *Bot) readLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if !b.IsRunning() {
			return nil
		}

		line, err := b.conn.ReadLine()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				return err
			}
		}

		b.handleLine(line)
	}
}

// handleLine implements steps 2-4 of §4.5's main loop.
func (b *Bot) handleLine(line string) {
	if strings.Contains(line, " 376 ") && !b.IsRegistered() {
		b.handleRegistrationComplete()
	}

	msg := ParseLine(line)

	if msg.Command == "PING" {
		_ = b.Commands.Pong(msg.Trailing)
		return
	}

	b.dispatch(line, msg)
}

// handleRegistrationComplete runs step 2 of §4.5: mark registered, identify
// with NickServ if configured, join every configured channel in order,
// then run every ready handler.
func (b *Bot) handleRegistrationComplete() {
	b.mu.Lock()
	b.registered = true
	b.mu.Unlock()

	if b.password != "" {
		_ = b.Commands.Privmsg("NickServ", "IDENTIFY "+b.password)
	}

	for _, ch := range b.channels {
		_ = b.Commands.Join(ch.Name, ch.Key)
	}

	for _, fn := range b.registry.eventHandlersOf(EventReady) {
		h, ok := fn.(ReadyHandler)
		if !ok {
			continue
		}
		b.runReadyHandler(h)
	}
}

func (b *Bot) runReadyHandler(h ReadyHandler) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Printf("ERROR", "ready handler panicked: %v", r)
		}
	}()
	h(b)
}
