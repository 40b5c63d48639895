package model

import (
    "errors"
    "time"
)

// Event statuses stored in events.status.  Cancelled events remain in the
// table for history but are excluded from availability checks and student
// views.  COMPLETED is set by organizers after the event date has passed.
const (
    EventStatusConfirmed = "CONFIRMED"
    EventStatusCancelled = "CANCELLED"
    EventStatusCompleted = "COMPLETED"
)

// Event is a booked time slot in a hall.  Dates are calendar days with no
// timezone ("YYYY-MM-DD") and times are wall-clock "HH:MM"; both formats
// compare correctly as strings, which keeps the overlap arithmetic free of
// time.Time conversions.  The logistics fields carry the per-department
// requirements shown on the support dashboards.
//
// Fields:
//  ID                    – primary key identifier.
//  Reference             – UUID booking reference shown to users.
//  Title                 – name of the program.
//  Department            – organizing department.
//  Date                  – calendar day "YYYY-MM-DD".
//  StartTime, EndTime    – half-open slot [start, end), "HH:MM".
//  HallID                – hall being booked.
//  OrganizerID/Name/Contact – organizer identity.
//  GuestName             – chief guest.
//  VIPArrival            – expected VIP arrival time, free text.
//  ExpectedParticipants  – planned head count (not enforced).
//  Status                – CONFIRMED | CANCELLED | COMPLETED.
//  Refreshments          – canteen items (JSON list).
//  RefreshmentsDelivered – one-way delivery flag set by canteen staff.
//  SecurityNeeds         – instructions for the security desk.
//  ElectricalNeeds       – electrical requirements (JSON list).
//  LabRequirements       – CS lab requirements (JSON list).
//  StoreItems            – general store items (JSON list).
type Event struct {
    ID                    uint64    // events.id
    Reference             string    // events.reference
    Title                 string    // events.title
    Department            string    // events.department
    Date                  string    // events.event_date
    StartTime             string    // events.start_time
    EndTime               string    // events.end_time
    HallID                uint64    // events.hall_id
    OrganizerID           uint64    // events.organizer_id
    OrganizerName         string    // events.organizer_name
    OrganizerContact      string    // events.organizer_contact
    GuestName             string    // events.guest_name
    VIPArrival            string    // events.vip_arrival
    ExpectedParticipants  uint32    // events.expected_participants
    Status                string    // events.status
    Refreshments          []string  // events.refreshments (JSON)
    RefreshmentsDelivered bool      // events.refreshments_delivered
    SecurityNeeds         string    // events.security_needs
    ElectricalNeeds       []string  // events.electrical_needs (JSON)
    LabRequirements       []string  // events.lab_requirements (JSON)
    StoreItems            []string  // events.store_items (JSON)
    CreatedAt             time.Time // events.created_at
    UpdatedAt             time.Time // events.updated_at
}

// Active reports whether the event still occupies its slot.  Completed
// events keep their slot for the historical record; only cancellation
// frees it.
func (e *Event) Active() bool { return e.Status != EventStatusCancelled }

// EventDraft is the bookable payload of an event: everything a booking
// needs minus the server-assigned identity and lifecycle fields.  It is
// used both for direct bookings and as the proposed payload carried by an
// exchange request.
type EventDraft struct {
    Title                string   `json:"title"`
    Department           string   `json:"department"`
    Date                 string   `json:"date"`
    StartTime            string   `json:"start_time"`
    EndTime              string   `json:"end_time"`
    HallID               uint64   `json:"hall_id"`
    OrganizerID          uint64   `json:"organizer_id"`
    OrganizerName        string   `json:"organizer_name"`
    OrganizerContact     string   `json:"organizer_contact"`
    GuestName            string   `json:"guest_name"`
    VIPArrival           string   `json:"vip_arrival,omitempty"`
    ExpectedParticipants uint32   `json:"expected_participants"`
    Refreshments         []string `json:"refreshments,omitempty"`
    SecurityNeeds        string   `json:"security_needs,omitempty"`
    ElectricalNeeds      []string `json:"electrical_needs,omitempty"`
    LabRequirements      []string `json:"lab_requirements,omitempty"`
    StoreItems           []string `json:"store_items,omitempty"`
}

// Event materializes the draft as a CONFIRMED event with the given
// booking reference.
func (d EventDraft) Event(reference string) Event {
    return Event{
        Reference:            reference,
        Title:                d.Title,
        Department:           d.Department,
        Date:                 d.Date,
        StartTime:            d.StartTime,
        EndTime:              d.EndTime,
        HallID:               d.HallID,
        OrganizerID:          d.OrganizerID,
        OrganizerName:        d.OrganizerName,
        OrganizerContact:     d.OrganizerContact,
        GuestName:            d.GuestName,
        VIPArrival:           d.VIPArrival,
        ExpectedParticipants: d.ExpectedParticipants,
        Status:               EventStatusConfirmed,
        Refreshments:         d.Refreshments,
        SecurityNeeds:        d.SecurityNeeds,
        ElectricalNeeds:      d.ElectricalNeeds,
        LabRequirements:      d.LabRequirements,
        StoreItems:           d.StoreItems,
    }
}

// ErrInvalidSlot is returned by ValidateSlot for malformed or empty slots.
var ErrInvalidSlot = errors.New("invalid time slot")

// ValidateSlot checks that date is "YYYY-MM-DD", both times are "HH:MM",
// and the slot is non-empty (start strictly before end).
func ValidateSlot(date, start, end string) error {
    if _, err := time.Parse("2006-01-02", date); err != nil {
        return ErrInvalidSlot
    }
    if _, err := time.Parse("15:04", start); err != nil {
        return ErrInvalidSlot
    }
    if _, err := time.Parse("15:04", end); err != nil {
        return ErrInvalidSlot
    }
    if start >= end {
        return ErrInvalidSlot
    }
    return nil
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect.  Back-to-back slots sharing a boundary do not
// overlap.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
    return aStart < bEnd && aEnd > bStart
}

// FindConflict returns the first non-cancelled event whose slot overlaps
// [start, end), scanning in the order given (insertion order).  While the
// no-overlap invariant holds there is at most one such event per attempt.
// Returns nil when the slot is free.
func FindConflict(events []Event, start, end string) *Event {
    for i := range events {
        e := &events[i]
        if e.Active() && Overlaps(start, end, e.StartTime, e.EndTime) {
            return e
        }
    }
    return nil
}
