// Package model defines the order-execution event types consumed from the
// Binance futures force-order stream, and the decoder that parses raw frames
// into them.
//
// Conventions:
//   - Quantities and prices: verbatim decimal strings as sent by the exchange
//     (never reparsed into floats, so they round-trip exactly for display)
//   - Timestamps: int64 milliseconds since Unix epoch
package model
