// Package queue defines the notification payloads exchanged over the
// message broker, the publisher, and the background consumer that turns
// them into emails and an audit log.
package queue

// Notification kinds published by the exchange workflow.
const (
    KindExchangeRequested = "exchange.requested"
    KindExchangeApproved  = "exchange.approved"
    KindExchangeRejected  = "exchange.rejected"
)

// Notification is the hook payload for an outbound notification: who to
// tell, what about, and enough context to render a message. Delivery
// (email, audit log) is the consumer's concern; the core only publishes.
type Notification struct {
    Kind           string `json:"kind"`
    RecipientID    uint64 `json:"recipient_id"`
    RecipientName  string `json:"recipient_name"`
    RecipientEmail string `json:"recipient_email,omitempty"`
    Subject        string `json:"subject"`
    Body           string `json:"body"`
    RequestID      uint64 `json:"request_id,omitempty"`
    EventTitle     string `json:"event_title,omitempty"`
    CreatedAt      string `json:"created_at"`
}
