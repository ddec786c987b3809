package nirc

import "fmt"

// CogFunc is the entry point a cog exposes: given the Bot to register
// against, it adds whatever commands, prefix-commands, event handlers, and
// tasks make up the cog. This replaces the source implementation's
// import-time side effects with an explicit call, per the re-architecture
// recommended in the specification's design notes: no global import-cache
// tricks, no pre/post diffing against ambient process state to figure out
// what changed — just run the function and diff the registry before and
// after.
type CogFunc func(b *Bot) error

// LoadResult is the outcome of a CogManager operation, matching the
// return-code taxonomy in the specification: Code 0 is success, Code 1
// is "already loaded" / "not loaded" (a no-op, not a failure), Code 2 is
// a hard failure carrying Err.
type LoadResult struct {
	Code int
	OK   bool
	Err  error
}

const (
	resultOK            = 0
	resultAlreadyLoaded = 1
	resultFailure       = 2
)

// Load imports cog's registrations into the bot. If cogID is already
// loaded, it returns (ALREADY_LOADED, false) without calling fn again.
func (b *Bot) Load(cogID string, fn CogFunc) LoadResult {
	b.cogsMu.Lock()
	if _, ok := b.cogs[cogID]; ok {
		b.cogsMu.Unlock()
		return LoadResult{Code: resultAlreadyLoaded, OK: false, Err: ErrCogAlreadyLoaded}
	}
	b.cogsMu.Unlock()

	before := b.registry.Snapshot()

	if err := fn(b); err != nil {
		b.rollbackDelta(DiffSnapshots(before, b.registry.Snapshot()))
		return LoadResult{Code: resultFailure, OK: false, Err: &CogLoadError{CogID: cogID, Err: err}}
	}

	after := b.registry.Snapshot()
	delta := DiffSnapshots(before, after)

	b.cogsMu.Lock()
	b.cogs[cogID] = &cogRecord{delta: delta, fn: fn}
	b.cogsMu.Unlock()

	b.logger.Printf("COG", "loaded %q: +%d commands +%d prefix-commands +%d tasks",
		cogID, len(delta.Commands), len(delta.PrefixCommands), len(delta.Tasks))

	return LoadResult{Code: resultOK, OK: true}
}

// Unload removes exactly the registrations cog's load added, from both
// the bot's own registry and the process-wide one. If cogID was never
// loaded, it returns (NOT_LOADED, false).
func (b *Bot) Unload(cogID string) LoadResult {
	b.cogsMu.Lock()
	rec, ok := b.cogs[cogID]
	if !ok {
		b.cogsMu.Unlock()
		return LoadResult{Code: resultAlreadyLoaded, OK: false, Err: ErrCogNotLoaded}
	}
	delete(b.cogs, cogID)
	b.cogsMu.Unlock()

	if err := b.removeDelta(rec.delta); err != nil {
		return LoadResult{Code: resultFailure, OK: false, Err: &CogUnloadError{CogID: cogID, Err: err}}
	}

	b.logger.Printf("COG", "unloaded %q", cogID)
	return LoadResult{Code: resultOK, OK: true}
}

// Reload removes cog's current registrations and re-runs fn, reconciling
// the new additions exactly as Load does. If cogID was never loaded, this
// degrades to Load and returns (NOT_LOADED, false) so the caller can tell
// a fresh load from a genuine reload.
func (b *Bot) Reload(cogID string, fn CogFunc) LoadResult {
	b.cogsMu.Lock()
	rec, wasLoaded := b.cogs[cogID]
	b.cogsMu.Unlock()

	if !wasLoaded {
		b.Load(cogID, fn)
		return LoadResult{Code: resultAlreadyLoaded, OK: false, Err: ErrCogNotLoaded}
	}

	if err := b.removeDelta(rec.delta); err != nil {
		return LoadResult{Code: resultFailure, OK: false, Err: &CogUnloadError{CogID: cogID, Err: err}}
	}

	b.cogsMu.Lock()
	delete(b.cogs, cogID)
	b.cogsMu.Unlock()

	return b.Load(cogID, fn)
}

// removeDelta deletes every key named by delta from both the bot-instance
// registry and the process-wide registry. Each removal is a plain delete
// that cannot fail, so it always returns nil and never leaves the registry
// partially reverted.
func (b *Bot) removeDelta(d Delta) error {
	for _, name := range d.Commands {
		b.registry.RemoveCommand(name)
		globalRegistry.RemoveCommand(name)
	}
	for _, prefix := range d.PrefixCommands {
		b.registry.RemovePrefixCommand(prefix)
		globalRegistry.RemovePrefixCommand(prefix)
	}
	for _, id := range d.Tasks {
		b.registry.RemoveTask(id)
		globalRegistry.RemoveTask(id)
	}
	for kind, ids := range d.Events {
		for _, id := range ids {
			b.registry.removeEventHandler(kind, id)
			globalRegistry.removeEventHandler(kind, id)
		}
	}
	return nil
}

// rollbackDelta is used when fn itself fails partway through: whatever it
// already registered before erroring is removed so a retried Load starts
// clean.
func (b *Bot) rollbackDelta(d Delta) {
	_ = b.removeDelta(d)
}

// String renders a LoadResult for logging.
func (r LoadResult) String() string {
	return fmt.Sprintf("LoadResult{code:%d ok:%t err:%v}", r.Code, r.OK, r.Err)
}
