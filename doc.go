// Package nirc provides a small, extensible IRC bot framework. It speaks
// the IRC wire protocol to a single server, classifies inbound lines into
// semantic events, and routes each event to handlers selected by a
// registry of commands, prefix triggers, generic event hooks, and
// periodic tasks. It also receives inbound file transfers advertised over
// the DCC SEND out-of-band protocol.
//
// See "cmd/nircd" for a runnable bot built on top of this package, and
// "examples/cogs" for how a cog registers handlers.
package nirc
