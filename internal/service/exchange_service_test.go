package service

import (
    "context"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/campuskit/hall-booking/internal/model"
    "github.com/campuskit/hall-booking/internal/queue"
    "github.com/campuskit/hall-booking/internal/repository"
)

func exchangeFixture() (*fakeStore, *recordingNotifier, *ExchangeService, model.Event) {
    f := newFakeStore()
    target := confirmedEvent(10, 1, 2, "2025-06-01", "10:00", "12:00", "AI in Healthcare Seminar")
    f.events = append(f.events, target)
    n := &recordingNotifier{}
    return f, n, newExchangeService(f, n), target
}

func proposedDraft() model.EventDraft {
    return model.EventDraft{
        Title:            "Mathematics Symposium",
        Department:       "Mathematics",
        Date:             "2025-06-01",
        StartTime:        "10:00",
        EndTime:          "13:00",
        HallID:           1,
        OrganizerID:      3,
        OrganizerName:    "Prof. Alan Turing",
        OrganizerContact: "9123456780",
        GuestName:        "Prof. R. Ramanujan",
    }
}

func TestExchangeService_Request(t *testing.T) {
    ctx := context.Background()
    requester := model.User{ID: 3, Name: "Prof. Alan Turing", Role: model.RoleTeacher}

    t.Run("creates a pending request addressed to the target organizer", func(t *testing.T) {
        f, n, svc, target := exchangeFixture()

        req, err := svc.Request(ctx, requester, target.ID, proposedDraft())
        require.NoError(t, err)
        assert.Equal(t, model.ExchangeStatusPending, req.Status)
        assert.Equal(t, target.OrganizerID, req.TargetOrganizerID)
        assert.Equal(t, target.Title, req.TargetEventTitle)
        assert.Equal(t, proposedDraft(), req.Proposed)
        assert.Len(t, f.requests, 1)

        require.Len(t, n.sent, 1)
        assert.Equal(t, queue.KindExchangeRequested, n.sent[0].Kind)
        assert.Equal(t, target.OrganizerID, n.sent[0].RecipientID)
        assert.Equal(t, "staff@college.test", n.sent[0].RecipientEmail)
        assert.Contains(t, n.sent[0].Subject, target.Title)
    })

    t.Run("missing target is reported", func(t *testing.T) {
        _, _, svc, _ := exchangeFixture()
        _, err := svc.Request(ctx, requester, 404, proposedDraft())
        assert.ErrorIs(t, err, repository.ErrNotFound)
    })

    t.Run("cancelled target no longer occupies the slot", func(t *testing.T) {
        f, _, svc, target := exchangeFixture()
        f.events[0].Status = model.EventStatusCancelled
        _, err := svc.Request(ctx, requester, target.ID, proposedDraft())
        assert.ErrorIs(t, err, repository.ErrNotFound)
    })

    t.Run("malformed proposed slot is rejected", func(t *testing.T) {
        _, _, svc, target := exchangeFixture()
        bad := proposedDraft()
        bad.EndTime = "09:00"
        _, err := svc.Request(ctx, requester, target.ID, bad)
        assert.ErrorIs(t, err, model.ErrInvalidSlot)
    })
}

func TestExchangeService_Resolve(t *testing.T) {
    ctx := context.Background()
    requester := model.User{ID: 3, Name: "Prof. Alan Turing", Role: model.RoleTeacher}

    pending := func() (*fakeStore, *recordingNotifier, *ExchangeService, model.ExchangeRequest, model.Event) {
        f, n, svc, target := exchangeFixture()
        req, err := svc.Request(ctx, requester, target.ID, proposedDraft())
        if err != nil {
            panic(err)
        }
        n.sent = nil
        return f, n, svc, req, target
    }

    t.Run("reject flips only the request status", func(t *testing.T) {
        f, n, svc, req, target := pending()

        res, err := svc.Resolve(ctx, req.ID, target.OrganizerID, false)
        require.NoError(t, err)
        assert.Equal(t, model.ExchangeStatusRejected, res.Request.Status)
        assert.Nil(t, res.NewEvent)

        assert.Equal(t, model.EventStatusConfirmed, f.events[0].Status)
        assert.Len(t, f.events, 1) // no new event created
        assert.Equal(t, model.ExchangeStatusRejected, f.requests[0].Status)

        require.Len(t, n.sent, 1)
        assert.Equal(t, queue.KindExchangeRejected, n.sent[0].Kind)
        assert.Equal(t, requester.ID, n.sent[0].RecipientID)
    })

    t.Run("approve swaps the bookings atomically", func(t *testing.T) {
        f, n, svc, req, target := pending()

        res, err := svc.Resolve(ctx, req.ID, target.OrganizerID, true)
        require.NoError(t, err)
        assert.Equal(t, model.ExchangeStatusApproved, res.Request.Status)
        assert.Equal(t, model.EventStatusCancelled, res.Target.Status)
        require.NotNil(t, res.NewEvent)
        assert.Equal(t, model.EventStatusConfirmed, res.NewEvent.Status)
        assert.Equal(t, "Mathematics Symposium", res.NewEvent.Title)
        assert.NotEmpty(t, res.NewEvent.Reference)

        // Exactly one new event; the target stays in history as cancelled.
        require.Len(t, f.events, 2)
        assert.Equal(t, model.EventStatusCancelled, f.events[0].Status)
        assert.Equal(t, model.ExchangeStatusApproved, f.requests[0].Status)

        require.Len(t, n.sent, 1)
        assert.Equal(t, queue.KindExchangeApproved, n.sent[0].Kind)
    })

    t.Run("approve settles sibling requests against the same target", func(t *testing.T) {
        f, _, svc, req, target := pending()
        sibling, err := svc.Request(ctx,
            model.User{ID: 5, Name: "Prof. Grace Hopper", Role: model.RoleTeacher},
            target.ID,
            model.EventDraft{
                Title:       "Compilers Colloquium",
                Department:  "Computer Science",
                Date:        "2025-06-01",
                StartTime:   "14:00",
                EndTime:     "16:00",
                HallID:      2,
                OrganizerID: 5,
            })
        require.NoError(t, err)

        _, err = svc.Resolve(ctx, req.ID, target.OrganizerID, true)
        require.NoError(t, err)

        // The target left CONFIRMED, so the sibling cannot stay pending
        // against it and must not be approvable afterwards.
        assert.Equal(t, model.ExchangeStatusApproved, f.requests[0].Status)
        assert.Equal(t, model.ExchangeStatusRejected, f.requests[1].Status)

        _, err = svc.Resolve(ctx, sibling.ID, target.OrganizerID, true)
        assert.ErrorIs(t, err, repository.ErrAlreadyResolved)
        assert.Len(t, f.events, 2)
    })

    t.Run("approve rolls back when a third booking now conflicts", func(t *testing.T) {
        f, _, svc, req, target := pending()
        // A third organizer booked part of the proposed slot after the
        // request was created.
        f.events = append(f.events, confirmedEvent(20, 1, 5, "2025-06-01", "12:30", "14:00", "Quantum Physics Workshop"))

        _, err := svc.Resolve(ctx, req.ID, target.OrganizerID, true)
        var ce *ConflictError
        require.ErrorAs(t, err, &ce)
        assert.Equal(t, "Quantum Physics Workshop", ce.Event.Title)

        // Rollback: target not cancelled, request still pending, nothing booked.
        assert.Equal(t, model.EventStatusConfirmed, f.events[0].Status)
        assert.Equal(t, model.ExchangeStatusPending, f.requests[0].Status)
        assert.Len(t, f.events, 2)
    })

    t.Run("only the target organizer may resolve", func(t *testing.T) {
        f, _, svc, req, _ := pending()
        _, err := svc.Resolve(ctx, req.ID, requester.ID, true)
        assert.ErrorIs(t, err, repository.ErrForbidden)
        assert.Equal(t, model.ExchangeStatusPending, f.requests[0].Status)
    })

    t.Run("resolving twice is reported", func(t *testing.T) {
        _, _, svc, req, target := pending()
        _, err := svc.Resolve(ctx, req.ID, target.OrganizerID, false)
        require.NoError(t, err)
        _, err = svc.Resolve(ctx, req.ID, target.OrganizerID, true)
        assert.ErrorIs(t, err, repository.ErrAlreadyResolved)
    })

    t.Run("missing request is reported", func(t *testing.T) {
        _, _, svc, _, target := pending()
        _, err := svc.Resolve(ctx, 404, target.OrganizerID, true)
        assert.ErrorIs(t, err, repository.ErrNotFound)
    })
}
