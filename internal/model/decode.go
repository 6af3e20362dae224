package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Decode errors
var (
	ErrMissingOrder = errors.New("frame has no order object")
)

// Wire types for JSON parsing

// frameWire is the wire format of one force-order frame:
//
//	{"e": "forceOrder", "E": 1690000000000, "o": {...}}
type frameWire struct {
	EventType string     `json:"e"`
	EventTime int64      `json:"E"`
	Order     *orderWire `json:"o"`
}

// orderWire is the nested order object. Quantity and price fields are decimal
// strings on the wire and stay strings after decoding.
type orderWire struct {
	Symbol      string `json:"s"`
	Side        string `json:"S"`
	OrderType   string `json:"o"`
	TimeInForce string `json:"f"`
	OrigQty     string `json:"q"`
	Price       string `json:"p"`
	AvgPrice    string `json:"ap"`
	Status      string `json:"X"`
	LastQty     string `json:"l"`
	FilledQty   string `json:"z"`
	TradeTime   int64  `json:"T"`
}

// Decode parses a raw frame into an Event. It validates structure only: the
// frame must be well-formed JSON and carry the nested order object. A failure
// here is non-fatal to the stream; the caller logs and drops the frame.
func Decode(raw []byte) (Event, error) {
	var wire frameWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return Event{}, fmt.Errorf("parse frame: %w", err)
	}

	if wire.Order == nil {
		return Event{}, ErrMissingOrder
	}

	o := wire.Order
	return Event{
		EventType:   wire.EventType,
		EventTime:   wire.EventTime,
		Symbol:      o.Symbol,
		Side:        o.Side,
		OrderType:   o.OrderType,
		TimeInForce: o.TimeInForce,
		OrigQty:     o.OrigQty,
		Price:       o.Price,
		AvgPrice:    o.AvgPrice,
		Status:      o.Status,
		LastQty:     o.LastQty,
		FilledQty:   o.FilledQty,
		TradeTime:   o.TradeTime,
	}, nil
}
