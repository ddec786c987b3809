package nirc

// Channel is a thin handle for issuing channel-scoped commands. Like
// Member, it carries no cached state; topic queries are fire-and-forget
// requests whose replies arrive as ordinary inbound lines.
type Channel struct {
	bot  *Bot
	Name string
}

// GetTopic requests the channel's topic with a bare TOPIC query. The
// response arrives asynchronously as a numeric reply on the main
// connection; this method does not block waiting for it.
func (ch *Channel) GetTopic() {
	ch.bot.Commands.TopicQuery(ch.Name)
}

// SetTopic sets the channel's topic.
func (ch *Channel) SetTopic(topic string) {
	ch.bot.Commands.Topic(ch.Name, topic)
}

// Unban clears mask from the channel's ban list.
func (ch *Channel) Unban(mask string) {
	ch.bot.Commands.Mode(ch.Name, "-b", mask)
}

// Oper grants channel operator status to nick.
func (ch *Channel) Oper(nick string) {
	ch.bot.Commands.Mode(ch.Name, "+o", nick)
}
