package nirc

import (
	"strings"
	"unicode"
)

// dispatch implements the dispatcher described in §4.3/§4.4: every raw
// handler runs first and unconditionally, then the line is parsed and
// routed to command, prefix-command, message, join, leave, or nick
// handlers depending on its IRC command.
func (b *Bot) dispatch(line string, msg Message) {
	b.runRawHandlers(line)

	switch msg.Command {
	case "PRIVMSG":
		b.dispatchPrivmsg(msg)
	case "JOIN":
		if msg.AuthorNick != b.nick {
			b.runEventHandlers(EventJoin, &Context{
				Bot: b, Logger: b.logger, CommandType: "JOIN",
				Target: msg.Target, Author: msg.AuthorNick, FullLine: line,
			})
		}
	case "PART", "QUIT":
		if msg.AuthorNick != b.nick {
			b.runEventHandlers(EventLeave, &Context{
				Bot: b, Logger: b.logger, CommandType: "LEAVE",
				Target: msg.Target, Author: msg.AuthorNick, Message: msg.Trailing, FullLine: line,
			})
		}
	case "NICK":
		if msg.AuthorNick != b.nick {
			b.runEventHandlers(EventNick, &Context{
				Bot: b, Logger: b.logger, CommandType: "NICK",
				Author: msg.AuthorNick, Message: msg.Trailing, FullLine: line,
			})
		}
	}
}

// runRawHandlers invokes every raw handler with a Context that carries
// only full_line and command_type="RAW" — raw handlers must not observe
// parsed fields, so none are set.
func (b *Bot) runRawHandlers(line string) {
	for _, fn := range b.registry.eventHandlersOf(EventRaw) {
		h, ok := fn.(EventHandler)
		if !ok {
			continue
		}
		b.runHandler("raw", func() {
			h(&Context{Bot: b, Logger: b.logger, CommandType: "RAW", FullLine: line})
		})
	}
}

func (b *Bot) runEventHandlers(kind EventKind, ctx *Context) {
	for _, fn := range b.registry.eventHandlersOf(kind) {
		h, ok := fn.(EventHandler)
		if !ok {
			continue
		}
		b.runHandler(string(kind), func() { h(ctx) })
	}
}

// runHandler invokes fn, logging and swallowing any panic so that one
// broken handler never aborts the main loop (§7: HandlerError is logged,
// other handlers and the main loop continue).
func (b *Bot) runHandler(kind string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Printf("ERROR", "%s handler panicked: %v", kind, r)
		}
	}()
	fn()
}

// dispatchPrivmsg implements §4.4's command routing, including both
// quirks documented and preserved in §9 of the specification:
//
//  1. The DCC SEND scan (step 4) only runs when the channel-message
//     fallback (step 3) did NOT fire.
//  2. Prefix-command dispatch unconditionally sets ctx.args from
//     ctx.arg — fixing the source bug's intent rather than preserving it.
func (b *Bot) dispatchPrivmsg(msg Message) {
	text := msg.Trailing
	var commandFired, prefixFired bool

	if b.prefix != "" && strings.HasPrefix(text, b.prefix) {
		rest := text[len(b.prefix):]
		name, arg := splitOnce(rest)

		if h, ok := b.registry.Command(name); ok {
			ctx := &Context{
				Bot: b, Logger: b.logger, CommandType: "COMMAND",
				Target: msg.Target, Author: msg.AuthorNick, Message: text, FullLine: msg.Raw,
				CommandName: name, Arg: arg, Args: splitWhitespace(arg),
			}
			b.runHandler("command", func() { h(ctx) })
			commandFired = true
		}
	}

	for _, prefix := range b.registry.MatchingPrefixCommands(text) {
		h, ok := b.registry.PrefixCommand(prefix)
		if !ok {
			continue
		}

		arg := text[len(prefix):]
		ctx := &Context{
			Bot: b, Logger: b.logger, CommandType: "PREFIX_COMMAND",
			Target: msg.Target, Author: msg.AuthorNick, Message: text, FullLine: msg.Raw,
			CommandName: prefix, Arg: arg, Args: splitFields(arg),
		}
		b.runHandler("prefix_command", func() { h(ctx) })
		prefixFired = true
	}

	messageFired := false
	if !commandFired && !prefixFired && strings.HasPrefix(msg.Target, "#") {
		messageFired = true
		b.runEventHandlers(EventMessage, &Context{
			Bot: b, Logger: b.logger, CommandType: "MESSAGE",
			Target: msg.Target, Author: msg.AuthorNick, Message: text, FullLine: msg.Raw,
		})
	}

	if !messageFired {
		b.scanDCC(msg, text)
	}
}

// splitOnce splits s on the first run of whitespace, like Python's
// str.split(maxsplit=1): name is the first token, arg is everything after
// the run of whitespace following it, with no leading whitespace of its
// own. Used only on the command path, where arg is later re-split with
// splitWhitespace.
func splitOnce(s string) (name, arg string) {
	sp := strings.IndexFunc(s, unicode.IsSpace)
	if sp < 0 {
		return s, ""
	}
	name = s[:sp]
	arg = strings.TrimLeftFunc(s[sp:], unicode.IsSpace)
	return name, arg
}

// splitWhitespace mirrors Python's str.split() with no argument: runs of
// whitespace are collapsed and leading/trailing whitespace produces no
// empty tokens. An empty arg yields a nil slice, not [""]. Used for the
// command path's ctx.args.
func splitWhitespace(s string) []string {
	return strings.Fields(s)
}

// splitFields mirrors Python's str.split(' '), used for the prefix-command
// path's ctx.args. An empty string yields a single empty element, matching
// "".split(' ') == ['']; callers that want to treat "no argument" as "no
// tokens" should check Arg == "" directly rather than len(Args) == 0.
func splitFields(s string) []string {
	return strings.Split(s, " ")
}

// scanDCC implements §4.7: scan text for a DCC SEND CTCP payload and, if
// found, launch every dcc handler as an independent goroutine.
func (b *Bot) scanDCC(msg Message, text string) {
	file := parseDCCSend(text, msg.AuthorNick, b.saveDir, b.logger)
	if file == nil {
		return
	}

	ctx := &Context{
		Bot: b, Logger: b.logger, CommandType: "DCC",
		Target: msg.Target, Author: msg.AuthorNick, Message: text, FullLine: msg.Raw,
	}

	for _, fn := range b.registry.eventHandlersOf(EventDCC) {
		h, ok := fn.(DCCHandler)
		if !ok {
			continue
		}
		go func(h DCCHandler) {
			defer func() {
				if r := recover(); r != nil {
					b.logger.Printf("ERROR", "dcc handler panicked: %v", r)
				}
			}()
			h(ctx, file)
		}(h)
	}
}
