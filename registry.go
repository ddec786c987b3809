package nirc

import (
	"math/rand"
	"sync"

	cmap "github.com/orcaman/concurrent-map"
)

// EventKind identifies one of the generic event buckets a handler can be
// registered against. A handler may be registered under several kinds.
// Registering it twice under the same kind is not detected: it is stored
// twice and runs twice.
type EventKind string

const (
	EventMessage EventKind = "message"
	EventJoin    EventKind = "join"
	EventLeave   EventKind = "leave"
	EventRaw     EventKind = "raw"
	EventReady   EventKind = "ready"
	EventNick    EventKind = "nick"
	EventDCC     EventKind = "dcc"
)

// CommandHandler handles a registered command or prefix-command.
type CommandHandler func(ctx *Context)

// EventHandler handles a message/join/leave/raw/nick event.
type EventHandler func(ctx *Context)

// ReadyHandler is invoked once per connection, after registration completes.
type ReadyHandler func(bot *Bot)

// DCCHandler is invoked for every inbound DCC SEND advertisement.
type DCCHandler func(ctx *Context, file *DCCFile)

// TaskHandler is the body of a periodic task.
type TaskHandler func(bot *Bot, args ...any) error

// Task is the descriptor for a registered periodic task.
type Task struct {
	ID       string
	Interval float64 // seconds
	// MaxRepeat <= 0 means unbounded.
	MaxRepeat int

	mu            sync.Mutex
	currentRepeat int

	Handler TaskHandler
}

// CurrentRepeat returns how many times the task has started an invocation,
// including one in progress.
func (t *Task) CurrentRepeat() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.currentRepeat
}

func (t *Task) bumpRepeat() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.currentRepeat++
	return t.currentRepeat
}

// handlerEntry pairs a generated id with an opaque handler value so that a
// cog's contributions to an ordered, per-kind handler list can be removed
// individually without disturbing the order of everyone else's.
type handlerEntry struct {
	id string
	fn any
}

// prefixEntry pairs a registered prefix-command's literal prefix with its
// handler, kept in a slice rather than a map so that registration order
// survives.
type prefixEntry struct {
	prefix string
	fn     CommandHandler
}

// Registry is the catalog of commands, prefix-commands, per-kind event
// handlers, and tasks. A process-wide Registry is shared by every Bot;
// each Bot additionally keeps its own snapshot (see Bot.registry) that it
// mutates independently as cogs are loaded and unloaded.
//
// commands and tasks are backed by a concurrent map since cogs may be
// loaded or unloaded from a goroutine (e.g. an fsnotify watch) concurrently
// with the bot's own dispatch loop, and neither needs to preserve
// registration order. Prefix-commands and per-kind event handlers both must
// preserve registration order — §4.4 requires multiple matching
// prefix-commands to fire in the order they were registered, same as event
// handlers within a kind — which a map cannot guarantee, so both are kept
// as plain slices guarded by the same mutex instead.
type Registry struct {
	commands cmap.ConcurrentMap
	tasks    cmap.ConcurrentMap

	mu             sync.RWMutex
	prefixCommands []prefixEntry
	events         map[EventKind][]handlerEntry
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: cmap.New(),
		tasks:    cmap.New(),
		events:   make(map[EventKind][]handlerEntry),
	}
}

const idAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func newID(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = idAlphabet[rand.Intn(len(idAlphabet))]
	}
	return string(b)
}

// RegisterCommand adds or overwrites the handler for name. Re-registering
// an existing command name is allowed and silently overwrites, matching
// prefix-command behavior; callers that care should check HasCommand first.
func (r *Registry) RegisterCommand(name string, h CommandHandler) {
	r.commands.Set(name, h)
}

// HasCommand reports whether name is registered.
func (r *Registry) HasCommand(name string) bool {
	return r.commands.Has(name)
}

// Command returns the handler registered for name, if any.
func (r *Registry) Command(name string) (CommandHandler, bool) {
	v, ok := r.commands.Get(name)
	if !ok {
		return nil, false
	}
	return v.(CommandHandler), true
}

// RemoveCommand deletes name from the registry.
func (r *Registry) RemoveCommand(name string) {
	r.commands.Remove(name)
}

// CommandNames returns every registered command name, in no particular order.
func (r *Registry) CommandNames() []string {
	return r.commands.Keys()
}

// RegisterPrefixCommand adds or overwrites the handler for literal prefix.
// Re-registering an existing prefix is allowed and overwrites in place,
// preserving its original registration-order position; the caller is
// expected to log a warning when that happens (see Bot.PrefixCommand).
func (r *Registry) RegisterPrefixCommand(prefix string, h CommandHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.prefixCommands {
		if e.prefix == prefix {
			r.prefixCommands[i].fn = h
			return
		}
	}
	r.prefixCommands = append(r.prefixCommands, prefixEntry{prefix: prefix, fn: h})
}

// HasPrefixCommand reports whether prefix is registered.
func (r *Registry) HasPrefixCommand(prefix string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.prefixCommands {
		if e.prefix == prefix {
			return true
		}
	}
	return false
}

// RemovePrefixCommand deletes prefix from the registry.
func (r *Registry) RemovePrefixCommand(prefix string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.prefixCommands {
		if e.prefix == prefix {
			r.prefixCommands = append(r.prefixCommands[:i], r.prefixCommands[i+1:]...)
			return
		}
	}
}

// PrefixCommandPrefixes returns every registered prefix string, in
// registration order.
func (r *Registry) PrefixCommandPrefixes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.prefixCommands))
	for i, e := range r.prefixCommands {
		out[i] = e.prefix
	}
	return out
}

// MatchingPrefixCommands returns, in registration order, every registered
// prefix that msg starts with.
func (r *Registry) MatchingPrefixCommands(msg string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []string
	for _, e := range r.prefixCommands {
		if len(e.prefix) <= len(msg) && msg[:len(e.prefix)] == e.prefix {
			matches = append(matches, e.prefix)
		}
	}
	return matches
}

// PrefixCommand returns the handler registered for prefix, if any.
func (r *Registry) PrefixCommand(prefix string) (CommandHandler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.prefixCommands {
		if e.prefix == prefix {
			return e.fn, true
		}
	}
	return nil, false
}

// addEventHandler appends fn to the ordered list for kind and returns the
// id it was stored under, for later removal.
func (r *Registry) addEventHandler(kind EventKind, fn any) string {
	id := newID(16)
	r.addEventHandlerWithID(kind, id, fn)
	return id
}

// addEventHandlerWithID is like addEventHandler but takes the id rather
// than generating one. A Bot registering the same handler on both its own
// registry and the process-wide one needs both entries to share an id, or
// a later cog-unload diff would compute mismatched ids and fail to remove
// the handler from one of the two registries.
func (r *Registry) addEventHandlerWithID(kind EventKind, id string, fn any) {
	r.mu.Lock()
	r.events[kind] = append(r.events[kind], handlerEntry{id: id, fn: fn})
	r.mu.Unlock()
}

// removeEventHandler removes the entry with id from kind's list, if present.
func (r *Registry) removeEventHandler(kind EventKind, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.events[kind]
	for i, e := range list {
		if e.id == id {
			r.events[kind] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// eventHandlerIDs returns the ids currently registered for kind, in order.
func (r *Registry) eventHandlerIDs(kind EventKind) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, len(r.events[kind]))
	for i, e := range r.events[kind] {
		ids[i] = e.id
	}
	return ids
}

// eventHandlersOf returns the ordered handler values for kind.
func (r *Registry) eventHandlersOf(kind EventKind) []any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]any, len(r.events[kind]))
	for i, e := range r.events[kind] {
		out[i] = e.fn
	}
	return out
}

// RegisterTask stores a task descriptor under id, overwriting any
// existing task with the same id.
func (r *Registry) RegisterTask(id string, interval float64, maxRepeat int, h TaskHandler) *Task {
	t := &Task{ID: id, Interval: interval, MaxRepeat: maxRepeat, Handler: h}
	r.tasks.Set(id, t)
	return t
}

// Task returns the task descriptor stored under id, if any.
func (r *Registry) Task(id string) (*Task, bool) {
	v, ok := r.tasks.Get(id)
	if !ok {
		return nil, false
	}
	return v.(*Task), true
}

// RemoveTask deletes id from the registry.
func (r *Registry) RemoveTask(id string) {
	r.tasks.Remove(id)
}

// TaskIDs returns every registered task id.
func (r *Registry) TaskIDs() []string {
	return r.tasks.Keys()
}

// Snapshot captures the current set of registration keys, so that a later
// call to DiffSnapshots can compute exactly what a cog added between two points in
// time.
type Snapshot struct {
	Commands       map[string]bool
	PrefixCommands map[string]bool
	Tasks          map[string]bool
	Events         map[EventKind]map[string]bool
}

// Snapshot returns the current registration keys.
func (r *Registry) Snapshot() Snapshot {
	s := Snapshot{
		Commands:       make(map[string]bool),
		PrefixCommands: make(map[string]bool),
		Tasks:          make(map[string]bool),
		Events:         make(map[EventKind]map[string]bool),
	}

	for _, k := range r.CommandNames() {
		s.Commands[k] = true
	}
	for _, k := range r.PrefixCommandPrefixes() {
		s.PrefixCommands[k] = true
	}
	for _, k := range r.TaskIDs() {
		s.Tasks[k] = true
	}

	for _, kind := range []EventKind{EventMessage, EventJoin, EventLeave, EventRaw, EventReady, EventNick, EventDCC} {
		ids := make(map[string]bool)
		for _, id := range r.eventHandlerIDs(kind) {
			ids[id] = true
		}
		s.Events[kind] = ids
	}

	return s
}

// Delta is the set of registration keys present in "after" but not in
// "before" — exactly what a cog load added.
type Delta struct {
	Commands       []string
	PrefixCommands []string
	Tasks          []string
	Events         map[EventKind][]string
}

// DiffSnapshots returns the keys present in after but absent from before.
func DiffSnapshots(before, after Snapshot) Delta {
	d := Delta{Events: make(map[EventKind][]string)}

	for k := range after.Commands {
		if !before.Commands[k] {
			d.Commands = append(d.Commands, k)
		}
	}
	for k := range after.PrefixCommands {
		if !before.PrefixCommands[k] {
			d.PrefixCommands = append(d.PrefixCommands, k)
		}
	}
	for k := range after.Tasks {
		if !before.Tasks[k] {
			d.Tasks = append(d.Tasks, k)
		}
	}
	for kind, afterIDs := range after.Events {
		beforeIDs := before.Events[kind]
		for id := range afterIDs {
			if !beforeIDs[id] {
				d.Events[kind] = append(d.Events[kind], id)
			}
		}
	}

	return d
}

// IsEmpty reports whether the delta added nothing at all.
func (d Delta) IsEmpty() bool {
	if len(d.Commands) > 0 || len(d.PrefixCommands) > 0 || len(d.Tasks) > 0 {
		return false
	}
	for _, ids := range d.Events {
		if len(ids) > 0 {
			return false
		}
	}
	return true
}
