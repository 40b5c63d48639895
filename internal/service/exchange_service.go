package service

import (
    "context"
    "fmt"
    "log"
    "time"

    "github.com/google/uuid"

    "github.com/campuskit/hall-booking/internal/model"
    "github.com/campuskit/hall-booking/internal/queue"
    "github.com/campuskit/hall-booking/internal/repository"
)

// ExchangeStore is the exchange request persistence surface the service
// needs.
type ExchangeStore interface {
    Insert(ctx context.Context, req *model.ExchangeRequest) error
    GetForUpdate(ctx context.Context, id uint64) (model.ExchangeRequest, error)
    UpdateStatus(ctx context.Context, id uint64, status string) error
    RejectPendingForEvent(ctx context.Context, eventID uint64) error
}

// UserStore resolves recipients for notifications.
type UserStore interface {
    GetByID(ctx context.Context, id uint64) (model.User, error)
}

// Notifier publishes a notification. Delivery is best effort: a broker
// outage must never fail the booking mutation it follows.
type Notifier interface {
    Notify(ctx context.Context, n queue.Notification) error
}

// ResolveResult reports what an exchange resolution changed.
type ResolveResult struct {
    Request  model.ExchangeRequest
    Target   model.Event
    NewEvent *model.Event // set only on approval
}

// ExchangeService owns the slot-exchange workflow: a requester proposes a
// booking for an occupied slot, and the occupying organizer approves or
// rejects it. Approval swaps the bookings atomically.
type ExchangeService struct {
    tx       Tx
    events   EventStore
    requests ExchangeStore
    users    UserStore
    notifier Notifier
}

func NewExchangeService(tx Tx, events EventStore, requests ExchangeStore, users UserStore, notifier Notifier) *ExchangeService {
    return &ExchangeService{tx: tx, events: events, requests: requests, users: users, notifier: notifier}
}

// Request creates a PENDING exchange request against the event occupying
// the requested slot. The proposed payload is stored verbatim; it is
// validated for shape here but checked against availability only at
// approval time. The target organizer is captured on the request so
// later lookups need no event re-scan.
func (s *ExchangeService) Request(ctx context.Context, requester model.User, targetEventID uint64, proposed model.EventDraft) (model.ExchangeRequest, error) {
    if err := model.ValidateSlot(proposed.Date, proposed.StartTime, proposed.EndTime); err != nil {
        return model.ExchangeRequest{}, err
    }
    target, err := s.events.GetByID(ctx, targetEventID)
    if err != nil {
        return model.ExchangeRequest{}, err
    }
    if !target.Active() {
        // A cancelled target no longer occupies the slot; there is
        // nothing to exchange.
        return model.ExchangeRequest{}, repository.ErrNotFound
    }

    req := model.ExchangeRequest{
        RequesterID:       requester.ID,
        RequesterName:     requester.Name,
        TargetEventID:     target.ID,
        TargetEventTitle:  target.Title,
        TargetOrganizerID: target.OrganizerID,
        Proposed:          proposed,
        Status:            model.ExchangeStatusPending,
    }
    if err := s.requests.Insert(ctx, &req); err != nil {
        return model.ExchangeRequest{}, err
    }

    s.notify(ctx, queue.Notification{
        Kind:        queue.KindExchangeRequested,
        RecipientID: target.OrganizerID,
        Subject:     fmt.Sprintf("Hall Exchange Request for %s", target.Title),
        Body: fmt.Sprintf("%s has requested your slot in hall %d on %s (%s-%s) for %q.",
            requester.Name, proposed.HallID, proposed.Date, proposed.StartTime, proposed.EndTime, proposed.Title),
        RequestID:  req.ID,
        EventTitle: target.Title,
    })
    return req, nil
}

// Resolve settles a PENDING request. Only the target organizer may
// resolve. Rejection flips the request status and nothing else. Approval
// runs as one transaction: cancel the target, re-check the proposed slot
// against current state, book it. A conflict discovered here aborts the
// whole transaction, so the target stays CONFIRMED and the request stays
// PENDING; the resolver sees the ConflictError and can reject instead.
func (s *ExchangeService) Resolve(ctx context.Context, requestID, resolverID uint64, approved bool) (ResolveResult, error) {
    var res ResolveResult
    err := s.tx.WithTx(ctx, func(ctx context.Context) error {
        req, err := s.requests.GetForUpdate(ctx, requestID)
        if err != nil {
            return err
        }
        if req.Status != model.ExchangeStatusPending {
            return repository.ErrAlreadyResolved
        }
        if req.TargetOrganizerID != resolverID {
            return repository.ErrForbidden
        }

        target, err := s.events.GetForUpdate(ctx, req.TargetEventID)
        if err != nil {
            return err
        }

        if !approved {
            if err := s.requests.UpdateStatus(ctx, requestID, model.ExchangeStatusRejected); err != nil {
                return err
            }
            req.Status = model.ExchangeStatusRejected
            res = ResolveResult{Request: req, Target: target}
            return nil
        }

        if err := s.events.UpdateStatus(ctx, target.ID, model.EventStatusCancelled); err != nil {
            return err
        }
        // Scan after the cancel so the freed slot does not conflict with
        // itself; any third-party booking made since the request was
        // created still does.
        day, err := s.events.ForUpdateByHallDate(ctx, req.Proposed.HallID, req.Proposed.Date)
        if err != nil {
            return err
        }
        if c := model.FindConflict(day, req.Proposed.StartTime, req.Proposed.EndTime); c != nil {
            return &ConflictError{Event: *c}
        }

        booked := req.Proposed.Event(uuid.NewString())
        if err := s.events.Insert(ctx, &booked); err != nil {
            return err
        }
        if err := s.requests.UpdateStatus(ctx, requestID, model.ExchangeStatusApproved); err != nil {
            return err
        }
        // The target left the CONFIRMED state, so its remaining pending
        // requests are settled too, same as on cancel and purge. This
        // request is already APPROVED and stays untouched.
        if err := s.requests.RejectPendingForEvent(ctx, target.ID); err != nil {
            return err
        }
        req.Status = model.ExchangeStatusApproved
        target.Status = model.EventStatusCancelled
        res = ResolveResult{Request: req, Target: target, NewEvent: &booked}
        return nil
    })
    if err != nil {
        return ResolveResult{}, err
    }

    kind, subject := queue.KindExchangeRejected, fmt.Sprintf("Exchange Request for %s Rejected", res.Request.TargetEventTitle)
    if approved {
        kind, subject = queue.KindExchangeApproved, fmt.Sprintf("Exchange Request for %s Approved", res.Request.TargetEventTitle)
    }
    s.notify(ctx, queue.Notification{
        Kind:        kind,
        RecipientID: res.Request.RequesterID,
        Subject:     subject,
        RequestID:   res.Request.ID,
        EventTitle:  res.Request.TargetEventTitle,
    })
    return res, nil
}

// notify resolves the recipient and publishes. Failures are logged only.
func (s *ExchangeService) notify(ctx context.Context, n queue.Notification) {
    if s.notifier == nil {
        return
    }
    if u, err := s.users.GetByID(ctx, n.RecipientID); err == nil {
        n.RecipientName = u.Name
        n.RecipientEmail = u.Email
    }
    n.CreatedAt = time.Now().UTC().Format(time.RFC3339)
    if err := s.notifier.Notify(ctx, n); err != nil {
        log.Printf("exchange: notification publish failed: %v", err)
    }
}
