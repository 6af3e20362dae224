// Package feed implements the upstream WebSocket client for the Binance
// futures force-order stream.
//
// The feed owns the whole connection lifecycle: dialing, keepalive ping/pong,
// stale-connection detection, and reconnection with exponential backoff. The
// rest of the monitor only consumes two things from it: the channel of raw
// frames and the current connection status (connecting/open/closed). A dropped
// connection never mutates downstream state; it only shows up as a status
// transition while reconnection proceeds in the background.
package feed
