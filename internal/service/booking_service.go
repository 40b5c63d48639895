// Package service implements the transactional booking operations. The
// HTTP handlers read through the repositories directly; every mutation
// that touches the no-overlap invariant goes through a service so the
// conflict check and the write always share one transaction.
package service

import (
    "context"
    "errors"

    "github.com/google/uuid"

    "github.com/campuskit/hall-booking/internal/model"
    "github.com/campuskit/hall-booking/internal/repository"
)

// Tx runs a function inside a storage transaction.
type Tx interface {
    WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventStore is the event persistence surface the services need.
type EventStore interface {
    ForUpdateByHallDate(ctx context.Context, hallID uint64, date string) ([]model.Event, error)
    Insert(ctx context.Context, e *model.Event) error
    GetByID(ctx context.Context, id uint64) (model.Event, error)
    GetForUpdate(ctx context.Context, id uint64) (model.Event, error)
    List(ctx context.Context, f repository.EventFilter) ([]model.Event, error)
    UpdateStatus(ctx context.Context, id uint64, status string) error
    SetRefreshmentsDelivered(ctx context.Context, id uint64) error
    Delete(ctx context.Context, id uint64) error
}

// HallStore resolves hall references.
type HallStore interface {
    GetByID(ctx context.Context, id uint64) (model.Hall, error)
}

// RequestStore is the slice of exchange request persistence the booking
// service needs: when an event leaves the CONFIRMED state its pending
// requests are rejected, so no request ever dangles against a freed slot.
type RequestStore interface {
    RejectPendingForEvent(ctx context.Context, eventID uint64) error
}

// ConflictError reports a slot conflict together with the occupying
// event, so callers can show who holds the slot and offer an exchange
// request. Unwraps to repository.ErrSlotConflict.
type ConflictError struct {
    Event model.Event
}

func (e *ConflictError) Error() string { return "hall slot conflict with event " + e.Event.Title }

func (e *ConflictError) Unwrap() error { return repository.ErrSlotConflict }

// Availability is the outcome of a read-only availability preview.
type Availability struct {
    Available bool
    Conflict  *model.Event
}

// BookingService owns the event lifecycle: atomic booking, cancellation,
// completion, the administrative purge and the refreshments flag.
type BookingService struct {
    tx       Tx
    events   EventStore
    halls    HallStore
    requests RequestStore
}

func NewBookingService(tx Tx, events EventStore, halls HallStore, requests RequestStore) *BookingService {
    return &BookingService{tx: tx, events: events, halls: halls, requests: requests}
}

// CheckAvailability is the read-only preview used by the booking form. It
// takes no locks; Book re-checks under lock, so a stale preview can never
// produce an overlapping booking.
func (s *BookingService) CheckAvailability(ctx context.Context, hallID uint64, date, start, end string) (Availability, error) {
    if err := model.ValidateSlot(date, start, end); err != nil {
        return Availability{}, err
    }
    if _, err := s.halls.GetByID(ctx, hallID); err != nil {
        return Availability{}, err
    }
    day, err := s.events.List(ctx, repository.EventFilter{HallID: hallID, Date: date})
    if err != nil {
        return Availability{}, err
    }
    if c := model.FindConflict(day, start, end); c != nil {
        return Availability{Available: false, Conflict: c}, nil
    }
    return Availability{Available: true}, nil
}

// Book creates a CONFIRMED event if the slot is free. The conflict scan
// and the insert run in one transaction over locked (hall, date) rows, so
// two organizers racing for the same slot serialize and the loser gets a
// ConflictError instead of a silent double booking.
func (s *BookingService) Book(ctx context.Context, draft model.EventDraft) (model.Event, error) {
    if err := model.ValidateSlot(draft.Date, draft.StartTime, draft.EndTime); err != nil {
        return model.Event{}, err
    }
    if _, err := s.halls.GetByID(ctx, draft.HallID); err != nil {
        return model.Event{}, err
    }

    event := draft.Event(uuid.NewString())
    err := s.tx.WithTx(ctx, func(ctx context.Context) error {
        day, err := s.events.ForUpdateByHallDate(ctx, draft.HallID, draft.Date)
        if err != nil {
            return err
        }
        if c := model.FindConflict(day, draft.StartTime, draft.EndTime); c != nil {
            return &ConflictError{Event: *c}
        }
        return s.events.Insert(ctx, &event)
    })
    if err != nil {
        return model.Event{}, err
    }
    return event, nil
}

// Cancel soft-deletes an event. Only the organizer may cancel; cancelling
// twice is a no-op. Pending exchange requests against the event are
// rejected in the same transaction.
func (s *BookingService) Cancel(ctx context.Context, eventID, organizerID uint64) error {
    return s.tx.WithTx(ctx, func(ctx context.Context) error {
        ev, err := s.events.GetForUpdate(ctx, eventID)
        if err != nil {
            return err
        }
        if ev.OrganizerID != organizerID {
            return repository.ErrForbidden
        }
        if ev.Status == model.EventStatusCancelled {
            return nil
        }
        if err := s.events.UpdateStatus(ctx, eventID, model.EventStatusCancelled); err != nil {
            return err
        }
        return s.requests.RejectPendingForEvent(ctx, eventID)
    })
}

// MarkCompleted transitions a CONFIRMED event to COMPLETED. The slot
// stays occupied for the historical record.
func (s *BookingService) MarkCompleted(ctx context.Context, eventID, organizerID uint64) error {
    return s.tx.WithTx(ctx, func(ctx context.Context) error {
        ev, err := s.events.GetForUpdate(ctx, eventID)
        if err != nil {
            return err
        }
        if ev.OrganizerID != organizerID {
            return repository.ErrForbidden
        }
        if ev.Status == model.EventStatusCompleted {
            return nil
        }
        if ev.Status != model.EventStatusConfirmed {
            return repository.ErrEventNotOpen
        }
        return s.events.UpdateStatus(ctx, eventID, model.EventStatusCompleted)
    })
}

// Purge physically removes an event and its registrations. Principal
// only; pending exchange requests against it are rejected first so they
// never point at a missing event.
func (s *BookingService) Purge(ctx context.Context, eventID uint64) error {
    return s.tx.WithTx(ctx, func(ctx context.Context) error {
        if _, err := s.events.GetForUpdate(ctx, eventID); err != nil {
            return err
        }
        if err := s.requests.RejectPendingForEvent(ctx, eventID); err != nil {
            return err
        }
        return s.events.Delete(ctx, eventID)
    })
}

// MarkRefreshmentsDelivered flips the one-way delivery flag. Idempotent;
// a missing event surfaces repository.ErrNotFound.
func (s *BookingService) MarkRefreshmentsDelivered(ctx context.Context, eventID uint64) error {
    err := s.events.SetRefreshmentsDelivered(ctx, eventID)
    if errors.Is(err, repository.ErrNotFound) {
        return repository.ErrNotFound
    }
    return err
}
