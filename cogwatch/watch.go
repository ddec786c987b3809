// Package cogwatch optionally reloads a bot's cogs when their backing
// file changes on disk, layered on top of the manual Bot.Reload path.
package cogwatch

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/nirc/nirc"
)

// Cog pairs a cog id and registration function with the file whose
// modification should trigger a reload.
type Cog struct {
	ID   string
	Path string
	Fn   nirc.CogFunc
}

// Watcher drives fsnotify events for a set of registered cogs against one
// bot. It is optional: a bot that never constructs one behaves exactly as
// spec'd, with Reload only ever called explicitly.
type Watcher struct {
	bot *nirc.Bot
	fsw *fsnotify.Watcher

	mu   sync.Mutex
	cogs map[string]Cog // absolute path -> cog
}

// New creates a Watcher for bot. Call Add for each cog to watch, then Run.
func New(bot *nirc.Bot) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		bot:  bot,
		fsw:  fsw,
		cogs: make(map[string]Cog),
	}, nil
}

// Add loads c immediately via Bot.Load, then watches c.Path's directory
// so a later write to that file triggers Bot.Reload.
func (w *Watcher) Add(c Cog) error {
	abs, err := filepath.Abs(c.Path)
	if err != nil {
		return err
	}
	c.Path = abs

	if res := w.bot.Load(c.ID, c.Fn); !res.OK && res.Err != nirc.ErrCogAlreadyLoaded {
		return res.Err
	}

	w.mu.Lock()
	w.cogs[abs] = c
	w.mu.Unlock()

	return w.fsw.Add(filepath.Dir(abs))
}

// Run blocks, reloading the matching cog on every write or create event
// until ctx is cancelled or the underlying watcher errors out.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.reload(ev.Name)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			if err != nil {
				return err
			}
		}
	}
}

func (w *Watcher) reload(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}

	w.mu.Lock()
	c, ok := w.cogs[abs]
	w.mu.Unlock()
	if !ok {
		return
	}

	w.bot.Logger().Printf("COG", "file change detected for %q, reloading", c.ID)
	w.bot.Reload(c.ID, c.Fn)
}

// Close stops watching without waiting for Run's context to cancel.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
