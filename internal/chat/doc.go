// Package chat holds the state of one conversation with the Dark AI backend:
// the append-only message log, the input draft, the active mode and the
// pending flag that allows at most one outstanding request.
//
// A submission is split in three steps so a UI event loop never blocks:
//
//	p, err := session.Begin(text) // appends the user message, sets pending
//	res := p.Run(ctx, backend, t) // the only step that touches the network
//	session.Complete(p, res)      // appends the bot message, clears pending
//
// Dispatcher.Send runs all three for callers that can block.
package chat
