package nirc

// Member is a thin handle for issuing moderation actions against a nick.
// It carries no cached state of its own beyond the nick; the server
// remains authoritative.
type Member struct {
	bot  *Bot
	Nick string
}

// Kick removes Member from channel with the given reason.
func (m *Member) Kick(channel, reason string) {
	m.bot.Commands.Kick(channel, m.Nick, reason)
}

// Ban sets a ban (+b) on channel for this member's mask. Since the bot
// only knows the nick, the mask is the nick itself with a wildcard
// user/host, matching the common "ban by nick" shorthand.
func (m *Member) Ban(channel string) {
	m.bot.Commands.Mode(channel, "+b", m.Nick+"!*@*")
}

// Unban clears a previously set ban mask on channel.
func (m *Member) Unban(channel string) {
	m.bot.Commands.Mode(channel, "-b", m.Nick+"!*@*")
}

// Mute voices the member down (-v) on channel and records the mute in the
// bot's advisory mute cache.
func (m *Member) Mute(channel string) {
	m.bot.Commands.Mode(channel, "-v", m.Nick)
	m.bot.setMuted(channel, m.Nick, true)
}

// Unmute voices the member back up (+v) on channel and clears the
// advisory mute cache entry.
func (m *Member) Unmute(channel string) {
	m.bot.Commands.Mode(channel, "+v", m.Nick)
	m.bot.setMuted(channel, m.Nick, false)
}

// IsMuted reports whether the bot's advisory cache believes this member is
// muted on channel. This is a hint only; the server is authoritative.
func (m *Member) IsMuted(channel string) bool {
	return m.bot.isMuted(channel, m.Nick)
}
