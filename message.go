package nirc

import "strings"

// Message is the structured form of one CRLF-delimited line received from
// the server: (prefix, command, target, author_nick, trailing).
//
// ParseLine is a pure function equivalent to matching a line against
//
//	^(?::(\S+) )?(\S+)(?: (?!:)(.+?))?(?: :(.*))?$
//
// Go's regexp package is RE2-based and does not support the negative
// lookahead that regex relies on, so the same left-to-right backtracking
// behavior is reproduced by hand below rather than with a regexp.Regexp.
type Message struct {
	// Prefix is the raw source prefix (server name, or nick!user@host),
	// without the leading ':'. Empty if the line had none.
	Prefix string
	// Command is the IRC verb or three-digit numeric, e.g. "PRIVMSG", "376".
	Command string
	// Target is the first whitespace-separated token of the middle
	// parameters, or the trailing text when it looks like a channel name
	// and no middle parameters were present.
	Target string
	// AuthorNick is the portion of Prefix before '!', or the whole prefix
	// if there is no '!'.
	AuthorNick string
	// Trailing is the text following " :", or empty when there was no
	// trailing section.
	Trailing string

	// Raw is the exact line that was parsed.
	Raw string
}

// ParseLine parses a single IRC protocol line. It never fails: a line
// that cannot be matched by the grammar above yields a Message with every
// field empty except Raw and Trailing, which carry the original line, so
// that on_raw handlers still see it.
func ParseLine(line string) Message {
	m := Message{Raw: line}

	rest := line
	pos := 0

	if len(rest) > 0 && rest[0] == ':' {
		if sp := strings.IndexByte(rest, ' '); sp > 1 {
			m.Prefix = rest[1:sp]
			pos = sp + 1
		}
	}

	body := line[pos:]
	if body == "" || body[0] == ' ' {
		// The command group requires at least one non-space character;
		// this line cannot be matched by the grammar at all.
		m.Trailing = line
		return m
	}

	cmdEnd := strings.IndexByte(body, ' ')
	var tail string
	if cmdEnd < 0 {
		m.Command = body
		tail = ""
	} else {
		m.Command = body[:cmdEnd]
		tail = body[cmdEnd:]
	}

	middle, trailing := splitParams(tail)

	if idx := strings.IndexByte(m.Prefix, '!'); idx >= 0 {
		m.AuthorNick = m.Prefix[:idx]
	} else {
		m.AuthorNick = m.Prefix
	}

	m.Trailing = trailing

	if middle != "" {
		m.Target = strings.Fields(middle)[0]
	} else if trailing != "" && strings.HasPrefix(trailing, "#") {
		m.Target = trailing
	}

	return m
}

// splitParams takes everything after the command token, including its
// separating space (or "" if the command ran to the end of the line), and
// returns the middle parameter string and the trailing text.
func splitParams(rest string) (middle, trailing string) {
	if rest == "" {
		return "", ""
	}

	// rest always begins with the single space that followed the command.
	body := rest[1:]

	if strings.HasPrefix(body, ":") {
		return "", body[1:]
	}

	if idx := strings.Index(body, " :"); idx >= 0 {
		return body[:idx], body[idx+2:]
	}

	return body, ""
}
