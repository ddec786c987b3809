package nirc

import (
	"sync"
	"testing"
	"time"
)

func testBot() *Bot {
	return New(Config{
		Prefix:   "!",
		Host:     "irc.example.org",
		Port:     6667,
		Nick:     "nircbot",
		Username: "nircbot",
	})
}

func TestDispatchCommandSetsArgs(t *testing.T) {
	b := testBot()

	var got *Context
	b.Command("hello", func(ctx *Context) { got = ctx })

	msg := ParseLine(":alice!a@host PRIVMSG #room :!hello there world")
	b.dispatchPrivmsg(msg)

	if got == nil {
		t.Fatal("command handler was not invoked")
	}
	if got.CommandName != "hello" {
		t.Fatalf("CommandName = %q, want hello", got.CommandName)
	}
	if got.Arg != "there world" {
		t.Fatalf("Arg = %q, want %q", got.Arg, "there world")
	}
	want := []string{"there", "world"}
	if len(got.Args) != len(want) || got.Args[0] != want[0] || got.Args[1] != want[1] {
		t.Fatalf("Args = %v, want %v", got.Args, want)
	}
}

// TestDispatchCommandCollapsesWhitespace verifies the command path treats
// runs of whitespace the way Python's str.split() does: no leading
// whitespace left in Arg, and no empty leading element in Args.
func TestDispatchCommandCollapsesWhitespace(t *testing.T) {
	b := testBot()

	var got *Context
	b.Command("hello", func(ctx *Context) { got = ctx })

	msg := ParseLine(":alice!a@host PRIVMSG #room :!hello  there\tworld")
	b.dispatchPrivmsg(msg)

	if got == nil {
		t.Fatal("command handler was not invoked")
	}
	if got.Arg != "there\tworld" {
		t.Fatalf("Arg = %q, want %q", got.Arg, "there\tworld")
	}
	want := []string{"there", "world"}
	if len(got.Args) != len(want) || got.Args[0] != want[0] || got.Args[1] != want[1] {
		t.Fatalf("Args = %v, want %v", got.Args, want)
	}
}

// TestDispatchMatchingPrefixCommandsFireInRegistrationOrder guards against
// prefix-command fan-out depending on map iteration order: whichever order
// prefixes were registered in is the order their handlers run in, even
// when more than one matches the same message.
func TestDispatchMatchingPrefixCommandsFireInRegistrationOrder(t *testing.T) {
	b := testBot()

	var order []string
	var mu sync.Mutex
	record := func(name string) func(ctx *Context) {
		return func(ctx *Context) {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
		}
	}

	b.PrefixCommand(">", record(">"))
	b.PrefixCommand(">>", record(">>"))
	b.PrefixCommand(">>>", record(">>>"))

	msg := ParseLine(":alice!a@host PRIVMSG #room :>>>do it")
	b.dispatchPrivmsg(msg)

	want := []string{">", ">>", ">>>"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

// TestDispatchPrefixCommandAlwaysSetsArgs guards the preserved-intent fix
// documented for prefix-command dispatch: Args is always derived from Arg,
// even when Arg is empty, rather than being left nil.
func TestDispatchPrefixCommandAlwaysSetsArgs(t *testing.T) {
	b := testBot()

	var got *Context
	b.PrefixCommand("? ", func(ctx *Context) { got = ctx })

	msg := ParseLine(":alice!a@host PRIVMSG #room :? ")
	b.dispatchPrivmsg(msg)

	if got == nil {
		t.Fatal("prefix command handler was not invoked")
	}
	if got.Args == nil {
		t.Fatal("Args should never be nil for a prefix command")
	}
	if len(got.Args) != 1 || got.Args[0] != "" {
		t.Fatalf("Args = %v, want [\"\"]", got.Args)
	}
}

func TestDispatchMessageFallbackFires(t *testing.T) {
	b := testBot()

	fired := false
	b.OnMessage(func(ctx *Context) { fired = true })

	msg := ParseLine(":alice!a@host PRIVMSG #room :just chatting")
	b.dispatchPrivmsg(msg)

	if !fired {
		t.Fatal("message handler should fire for an unmatched channel message")
	}
}

func TestDispatchMessageDoesNotFireWhenCommandMatched(t *testing.T) {
	b := testBot()

	messageFired := false
	b.OnMessage(func(ctx *Context) { messageFired = true })
	b.Command("hello", func(ctx *Context) {})

	msg := ParseLine(":alice!a@host PRIVMSG #room :!hello")
	b.dispatchPrivmsg(msg)

	if messageFired {
		t.Fatal("message handler fired even though a command matched")
	}
}

const dccPayload = "\x01DCC SEND report.txt 3232235777 5000 1024\x01"

// TestDispatchDCCScanSkippedWhenMessageFired verifies the preserved quirk:
// the DCC scan never runs for a channel message that the message fallback
// already handled.
func TestDispatchDCCScanSkippedWhenMessageFired(t *testing.T) {
	b := testBot()

	var mu sync.Mutex
	dccFired := false
	b.OnDCC(func(ctx *Context, file *DCCFile) {
		mu.Lock()
		dccFired = true
		mu.Unlock()
	})

	msg := ParseLine(":alice!a@host PRIVMSG #room :" + dccPayload)
	b.dispatchPrivmsg(msg)

	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if dccFired {
		t.Fatal("DCC scan ran even though the channel-message fallback fired")
	}
}

// TestDispatchDCCScanRunsForPrivateMessage verifies the DCC scan does run
// when the message fallback cannot fire, as for a private message.
func TestDispatchDCCScanRunsForPrivateMessage(t *testing.T) {
	b := testBot()

	done := make(chan *DCCFile, 1)
	b.OnDCC(func(ctx *Context, file *DCCFile) { done <- file })

	msg := ParseLine(":alice!a@host PRIVMSG nircbot :" + dccPayload)
	b.dispatchPrivmsg(msg)

	select {
	case file := <-done:
		if file.Filename != "report.txt" {
			t.Fatalf("Filename = %q, want report.txt", file.Filename)
		}
	case <-time.After(time.Second):
		t.Fatal("DCC handler did not run for a private message")
	}
}
