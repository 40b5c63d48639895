package model

import "time"

// Exchange request statuses.  PENDING requests await the target
// organizer's decision; APPROVED and REJECTED are terminal.
const (
    ExchangeStatusPending  = "PENDING"
    ExchangeStatusApproved = "APPROVED"
    ExchangeStatusRejected = "REJECTED"
)

// ExchangeRequest is a proposal by one organizer to replace another's
// existing booking with a new one.  The proposed payload is carried
// verbatim as submitted; it is re-checked against current availability
// only at approval time.  TargetOrganizerID is captured at creation so a
// request stays addressable even if the target event is later renamed,
// and so pending-request lookups need no event re-scan.
//
// Fields:
//  ID                – primary key identifier.
//  RequesterID/Name  – organizer asking for the slot.
//  TargetEventID     – the event currently occupying the slot.
//  TargetEventTitle  – title snapshot for display.
//  TargetOrganizerID – organizer who must resolve the request.
//  Proposed          – full proposed booking payload (JSON column).
//  Status            – PENDING | APPROVED | REJECTED.
//  CreatedAt         – creation timestamp.
type ExchangeRequest struct {
    ID                uint64     // exchange_requests.id
    RequesterID       uint64     // exchange_requests.requester_id
    RequesterName     string     // exchange_requests.requester_name
    TargetEventID     uint64     // exchange_requests.target_event_id
    TargetEventTitle  string     // exchange_requests.target_event_title
    TargetOrganizerID uint64     // exchange_requests.target_organizer_id
    Proposed          EventDraft // exchange_requests.proposed (JSON)
    Status            string     // exchange_requests.status
    CreatedAt         time.Time  // exchange_requests.created_at
}
