package nirc

import "testing"

func TestRegistryCommandRoundTrip(t *testing.T) {
	r := NewRegistry()

	if r.HasCommand("hello") {
		t.Fatal("fresh registry should not have any commands")
	}

	r.RegisterCommand("hello", func(ctx *Context) {})
	if !r.HasCommand("hello") {
		t.Fatal("RegisterCommand did not register")
	}

	r.RemoveCommand("hello")
	if r.HasCommand("hello") {
		t.Fatal("RemoveCommand did not remove")
	}
}

func TestRegistryEventHandlerOrderPreserved(t *testing.T) {
	r := NewRegistry()

	var order []int
	for i := 0; i < 5; i++ {
		i := i
		r.addEventHandler(EventMessage, EventHandler(func(ctx *Context) {
			order = append(order, i)
		}))
	}

	for _, fn := range r.eventHandlersOf(EventMessage) {
		fn.(EventHandler)(nil)
	}

	want := []int{0, 1, 2, 3, 4}
	if len(order) != len(want) {
		t.Fatalf("got %d invocations, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("handler order = %v, want %v", order, want)
		}
	}
}

func TestRegistryMatchingPrefixCommandsPreservesRegistrationOrder(t *testing.T) {
	r := NewRegistry()

	r.RegisterPrefixCommand(">>>", func(ctx *Context) {})
	r.RegisterPrefixCommand(">", func(ctx *Context) {})
	r.RegisterPrefixCommand(">>", func(ctx *Context) {})

	matches := r.MatchingPrefixCommands(">>>go")
	want := []string{">>>", ">", ">>"}
	if len(matches) != len(want) {
		t.Fatalf("matches = %v, want %v", matches, want)
	}
	for i := range want {
		if matches[i] != want[i] {
			t.Fatalf("matches = %v, want %v", matches, want)
		}
	}
}

func TestRegistryRegisterPrefixCommandOverwriteKeepsPosition(t *testing.T) {
	r := NewRegistry()

	r.RegisterPrefixCommand(">", func(ctx *Context) {})
	r.RegisterPrefixCommand(">>", func(ctx *Context) {})
	r.RegisterPrefixCommand(">", func(ctx *Context) {})

	got := r.PrefixCommandPrefixes()
	want := []string{">", ">>"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("PrefixCommandPrefixes = %v, want %v", got, want)
	}
}

func TestRegistryRemoveEventHandlerByID(t *testing.T) {
	r := NewRegistry()

	id1 := r.addEventHandler(EventJoin, EventHandler(func(ctx *Context) {}))
	id2 := r.addEventHandler(EventJoin, EventHandler(func(ctx *Context) {}))

	r.removeEventHandler(EventJoin, id1)

	ids := r.eventHandlerIDs(EventJoin)
	if len(ids) != 1 || ids[0] != id2 {
		t.Fatalf("eventHandlerIDs after removal = %v, want [%s]", ids, id2)
	}
}

// TestSharedIDAppearsInBothRegistries guards against the bug where a
// handler registered on two independent registries under two different
// generated ids would only be removable from one of them.
func TestSharedIDAppearsInBothRegistries(t *testing.T) {
	a := NewRegistry()
	b := NewRegistry()

	id := newID(16)
	fn := EventHandler(func(ctx *Context) {})
	a.addEventHandlerWithID(EventMessage, id, fn)
	b.addEventHandlerWithID(EventMessage, id, fn)

	a.removeEventHandler(EventMessage, id)
	b.removeEventHandler(EventMessage, id)

	if len(a.eventHandlerIDs(EventMessage)) != 0 || len(b.eventHandlerIDs(EventMessage)) != 0 {
		t.Fatal("shared-id handler was not removed from both registries")
	}
}

func TestDiffSnapshotsSetEquality(t *testing.T) {
	r := NewRegistry()

	before := r.Snapshot()

	r.RegisterCommand("hello", func(ctx *Context) {})
	r.RegisterPrefixCommand("? ", func(ctx *Context) {})
	r.RegisterTask("t1", 1, 1, func(bot *Bot, args ...any) error { return nil })
	id := r.addEventHandler(EventMessage, EventHandler(func(ctx *Context) {}))

	after := r.Snapshot()
	delta := DiffSnapshots(before, after)

	if delta.IsEmpty() {
		t.Fatal("delta should not be empty after registrations")
	}
	if len(delta.Commands) != 1 || delta.Commands[0] != "hello" {
		t.Fatalf("delta.Commands = %v, want [hello]", delta.Commands)
	}
	if len(delta.PrefixCommands) != 1 || delta.PrefixCommands[0] != "? " {
		t.Fatalf("delta.PrefixCommands = %v, want [? ]", delta.PrefixCommands)
	}
	if len(delta.Tasks) != 1 || delta.Tasks[0] != "t1" {
		t.Fatalf("delta.Tasks = %v, want [t1]", delta.Tasks)
	}
	if len(delta.Events[EventMessage]) != 1 || delta.Events[EventMessage][0] != id {
		t.Fatalf("delta.Events[message] = %v, want [%s]", delta.Events[EventMessage], id)
	}

	// Removing exactly what the delta named should bring the registry back
	// to an empty diff against the same before snapshot.
	for _, name := range delta.Commands {
		r.RemoveCommand(name)
	}
	for _, prefix := range delta.PrefixCommands {
		r.RemovePrefixCommand(prefix)
	}
	for _, tid := range delta.Tasks {
		r.RemoveTask(tid)
	}
	for kind, ids := range delta.Events {
		for _, eid := range ids {
			r.removeEventHandler(kind, eid)
		}
	}

	after2 := r.Snapshot()
	if !DiffSnapshots(before, after2).IsEmpty() {
		t.Fatal("registry did not return to its original state after reverting the delta")
	}
}
