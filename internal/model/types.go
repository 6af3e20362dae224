package model

// Order sides as sent by the exchange.
const (
	SideBuy  = "BUY"
	SideSell = "SELL"
)

// Well-known order statuses. The status set is open: the exchange may send
// values not listed here and they are carried through untouched.
const (
	StatusNew             = "NEW"
	StatusPartiallyFilled = "PARTIALLY_FILLED"
	StatusFilled          = "FILLED"
	StatusCanceled        = "CANCELED"
)

// Event is one order-execution (liquidation) notification.
type Event struct {
	EventType string `json:"event_type"` // Stream event type (e.g., "forceOrder")
	EventTime int64  `json:"event_time"` // Exchange event time (ms since epoch)

	Symbol      string `json:"symbol"`        // Market symbol (e.g., "BTCUSDT")
	Side        string `json:"side"`          // "BUY" or "SELL"
	OrderType   string `json:"order_type"`    // Order type (e.g., "LIMIT")
	TimeInForce string `json:"time_in_force"` // Time in force (e.g., "IOC")
	OrigQty     string `json:"orig_qty"`      // Original quantity (verbatim decimal string)
	Price       string `json:"price"`         // Order price (verbatim decimal string)
	AvgPrice    string `json:"avg_price"`     // Average fill price (verbatim decimal string)
	Status      string `json:"status"`        // Order status (open set, see constants above)
	LastQty     string `json:"last_qty"`      // Last filled quantity (verbatim decimal string)
	FilledQty   string `json:"filled_qty"`    // Accumulated filled quantity (verbatim decimal string)
	TradeTime   int64  `json:"trade_time"`    // Order trade time (ms since epoch)
}
