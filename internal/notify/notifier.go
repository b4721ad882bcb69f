package notify

import "context"

// Kind selects the message template for an alert.
type Kind int

const (
	KindTarget Kind = iota
	KindGood
	KindBelowCeiling
	KindPriceDrop
)

// AlertPayload carries everything a delivery channel needs to render a deal
// or price-drop notification.
type AlertPayload struct {
	Kind        Kind
	Origin      string
	Destination string
	Departure   string
	Return      string
	TripType    string
	Source      string
	Link        string

	Price         float64 // per person
	PreviousPrice float64 // last persisted price, relevant for drops
	Passengers    int
	BaselinePrice float64 // the fare the operator would otherwise pay

	TargetPrice float64
	GoodPrice   float64
	NotifyBelow float64
}

// Notifier delivers rendered notifications. Telegram and email are
// interchangeable behind this interface.
type Notifier interface {
	SendAlert(ctx context.Context, a AlertPayload) error
	SendText(ctx context.Context, text string) error
}
