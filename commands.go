package nirc

// Commands is a thin set of wrappers around Connection.SendRaw that build
// the exact outbound lines §6 of the specification names. Every method
// here is fire-and-forget: it writes one line and returns whatever
// SendRaw returned, without waiting for a server reply.
type Commands struct {
	conn *Connection
}

// Pass sends the server password during registration.
func (cmd *Commands) Pass(password string) error {
	return cmd.conn.SendRaw("PASS " + password)
}

// User sends the username/realname registration line.
func (cmd *Commands) User(username, realname string) error {
	return cmd.conn.SendRaw("USER " + username + " 0 * :" + realname)
}

// Nick sends a nickname registration or change request.
func (cmd *Commands) Nick(nick string) error {
	return cmd.conn.SendRaw("NICK " + nick)
}

// Join enters channel, appending key if non-empty.
func (cmd *Commands) Join(channel, key string) error {
	if key != "" {
		return cmd.conn.SendRaw("JOIN " + channel + " " + key)
	}
	return cmd.conn.SendRaw("JOIN " + channel)
}

// Privmsg sends text to target, which may be a channel or a nick.
func (cmd *Commands) Privmsg(target, text string) error {
	return cmd.conn.SendRaw("PRIVMSG " + target + " :" + text)
}

// Pong answers a PING with the same token the server sent.
func (cmd *Commands) Pong(token string) error {
	return cmd.conn.SendRaw("PONG :" + token)
}

// Kick removes nick from channel with the given reason.
func (cmd *Commands) Kick(channel, nick, reason string) error {
	return cmd.conn.SendRaw("KICK " + channel + " " + nick + " :" + reason)
}

// Mode applies a single mode change, e.g. Mode("#room", "+b", "nick!*@*").
func (cmd *Commands) Mode(channel, mode, arg string) error {
	if arg == "" {
		return cmd.conn.SendRaw("MODE " + channel + " " + mode)
	}
	return cmd.conn.SendRaw("MODE " + channel + " " + mode + " " + arg)
}

// TopicQuery requests the current topic of channel.
func (cmd *Commands) TopicQuery(channel string) error {
	return cmd.conn.SendRaw("TOPIC " + channel)
}

// Topic sets the topic of channel.
func (cmd *Commands) Topic(channel, topic string) error {
	return cmd.conn.SendRaw("TOPIC " + channel + " :" + topic)
}

// Oper authenticates the bot as a server operator.
func (cmd *Commands) Oper(username, password string) error {
	return cmd.conn.SendRaw("OPER " + username + " " + password)
}

// Quit sends a QUIT, with an optional parting message.
func (cmd *Commands) Quit(message string) error {
	if message != "" {
		return cmd.conn.SendRaw("QUIT :" + message)
	}
	return cmd.conn.SendRaw("QUIT")
}
