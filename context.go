package nirc

import "strings"

// Context carries everything a handler needs to know about the event that
// triggered it, plus a small set of convenience methods for replying.
type Context struct {
	Bot    *Bot
	Logger *Logger

	// Target is the PRIVMSG target: a channel name, or the bot's own nick
	// for a private message.
	Target string
	// Author is the nick that sent the line, derived from the parsed
	// message prefix.
	Author string
	// Message is the trailing text of the triggering line. For a NICK
	// event, this carries the new nick (Author carries the old one).
	Message string
	// FullLine is the raw, unparsed line, set for every Context regardless
	// of CommandType.
	FullLine string

	// CommandType is one of "RAW", "COMMAND", "PREFIX_COMMAND", "MESSAGE",
	// "JOIN", "LEAVE", "NICK", "DCC".
	CommandType string
	// CommandName is the matched command name or prefix-command prefix,
	// empty outside of those two command types.
	CommandName string
	// Arg is everything in Message after the command name/prefix was
	// stripped.
	Arg string
	// Args is Arg split into tokens: on runs of whitespace for a COMMAND,
	// and on single spaces for a PREFIX_COMMAND, which keeps empty tokens.
	Args []string
}

// reply sends text back to wherever this event came from: the channel, if
// Target is a channel, or the author directly otherwise. Multi-line text
// is split and sent as separate PRIVMSGs, one per line.
func (c *Context) reply(text string) {
	for _, line := range strings.Split(text, "\n") {
		c.Bot.Commands.Privmsg(c.replyTarget(), line)
	}
}

// Reply is an alias for Send, kept because both names appear in practice
// depending on whether the call reads better as a question being answered.
func (c *Context) Reply(text string) { c.reply(text) }

// Send sends text back to the channel or author, exactly like Reply.
func (c *Context) Send(text string) { c.reply(text) }

func (c *Context) replyTarget() string {
	if strings.HasPrefix(c.Target, "#") {
		return c.Target
	}
	return c.Author
}

// AuthorMember returns a Member handle for the Context's author.
func (c *Context) AuthorMember() *Member {
	return c.Bot.Member(c.Author)
}

// ChannelObj returns a Channel handle for the Context's target, or nil if
// the target isn't a channel.
func (c *Context) ChannelObj() *Channel {
	if !strings.HasPrefix(c.Target, "#") {
		return nil
	}
	return c.Bot.Channel(c.Target)
}
