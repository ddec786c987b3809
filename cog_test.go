package nirc

import (
	"errors"
	"testing"
)

func TestCogLoadUnload(t *testing.T) {
	b := testBot()

	loadCount := 0
	cog := func(b *Bot) error {
		loadCount++
		b.Command("cogcmd", func(ctx *Context) {})
		b.PrefixCommand("~ ", func(ctx *Context) {})
		b.OnJoin(func(ctx *Context) {})
		return nil
	}

	res := b.Load("test-cog", cog)
	if !res.OK || res.Code != resultOK {
		t.Fatalf("Load = %+v, want OK", res)
	}
	if !b.registry.HasCommand("cogcmd") {
		t.Fatal("cog's command was not registered")
	}
	if !globalRegistry.HasCommand("cogcmd") {
		t.Fatal("cog's command was not registered on the global registry")
	}

	// Loading the same id twice is a no-op, not a re-run.
	res2 := b.Load("test-cog", cog)
	if res2.OK || res2.Err != ErrCogAlreadyLoaded {
		t.Fatalf("second Load = %+v, want ALREADY_LOADED", res2)
	}
	if loadCount != 1 {
		t.Fatalf("cog function ran %d times, want 1", loadCount)
	}

	res3 := b.Unload("test-cog")
	if !res3.OK {
		t.Fatalf("Unload = %+v, want OK", res3)
	}
	if b.registry.HasCommand("cogcmd") {
		t.Fatal("cog's command should be gone from the bot registry after unload")
	}
	if globalRegistry.HasCommand("cogcmd") {
		t.Fatal("cog's command should be gone from the global registry after unload")
	}

	// Unloading again should report NOT_LOADED.
	res4 := b.Unload("test-cog")
	if res4.OK || res4.Err != ErrCogNotLoaded {
		t.Fatalf("second Unload = %+v, want NOT_LOADED", res4)
	}
}

// TestCogReloadIsDeterministic checks that loading, unloading, and loading
// again produces the same registry delta each time: the round-trip leaves
// no residue behind, satisfying the specification's exact-reversal property.
func TestCogReloadIsDeterministic(t *testing.T) {
	b := testBot()

	cog := func(b *Bot) error {
		b.Command("repeatable", func(ctx *Context) {})
		return nil
	}

	before := b.registry.Snapshot()

	b.Load("repeat-cog", cog)
	firstDelta := DiffSnapshots(before, b.registry.Snapshot())

	b.Unload("repeat-cog")
	afterUnload := b.registry.Snapshot()
	if !DiffSnapshots(before, afterUnload).IsEmpty() {
		t.Fatal("registry did not return to baseline after unload")
	}

	b.Load("repeat-cog", cog)
	secondDelta := DiffSnapshots(before, b.registry.Snapshot())

	if len(firstDelta.Commands) != len(secondDelta.Commands) {
		t.Fatalf("delta sizes differ across load cycles: %v vs %v", firstDelta.Commands, secondDelta.Commands)
	}
}

func TestCogLoadRollsBackOnFailure(t *testing.T) {
	b := testBot()

	cog := func(b *Bot) error {
		b.Command("partial", func(ctx *Context) {})
		return errors.New("boom")
	}

	res := b.Load("broken-cog", cog)
	if res.OK || res.Code != resultFailure {
		t.Fatalf("Load = %+v, want failure", res)
	}
	if b.registry.HasCommand("partial") {
		t.Fatal("partial registration should have been rolled back")
	}
	if globalRegistry.HasCommand("partial") {
		t.Fatal("partial registration should have been rolled back from the global registry too")
	}

	// A retried load should succeed cleanly since the failed attempt left
	// no bookkeeping behind.
	okCog := func(b *Bot) error { return nil }
	res2 := b.Load("broken-cog", okCog)
	if !res2.OK {
		t.Fatalf("retry Load = %+v, want OK", res2)
	}
}
