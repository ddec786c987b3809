package nirc

import "strings"

// nickSpecials are the non-alphanumeric characters RFC 1459 permits inside
// a nickname besides the letters and digits.
const nickSpecials = "-[]\\`^{}_|"

// IsValidNick reports whether nick is a syntactically valid IRC nickname:
// non-empty, starting with a letter or one of the special characters, and
// containing only letters, digits, '-', and the special characters
// thereafter.
func IsValidNick(nick string) bool {
	if nick == "" {
		return false
	}

	for i := 0; i < len(nick); i++ {
		c := nick[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		case strings.IndexByte(nickSpecials, c) >= 0:
		default:
			return false
		}
	}

	return true
}

// IsValidChannel reports whether name looks like a channel name: it must
// start with '#', have at least one more character, and contain no space,
// comma, NUL, BEL, CR or LF.
func IsValidChannel(name string) bool {
	if len(name) < 2 || name[0] != '#' {
		return false
	}
	return !strings.ContainsAny(name, " \x00\x07\r\n,")
}
