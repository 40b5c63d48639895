package service

import (
    "context"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/campuskit/hall-booking/internal/model"
    "github.com/campuskit/hall-booking/internal/repository"
)

func draft(hallID, organizerID uint64, date, start, end, title string) model.EventDraft {
    return model.EventDraft{
        Title:                title,
        Department:           "Computer Science",
        Date:                 date,
        StartTime:            start,
        EndTime:              end,
        HallID:               hallID,
        OrganizerID:          organizerID,
        OrganizerName:        "Prof. Sarah Smith",
        OrganizerContact:     "9876543210",
        GuestName:            "Dr. A. Kumar",
        ExpectedParticipants: 120,
    }
}

func TestBookingService_Book(t *testing.T) {
    ctx := context.Background()

    t.Run("books a free slot as CONFIRMED", func(t *testing.T) {
        f := newFakeStore()
        svc := newBookingService(f)

        ev, err := svc.Book(ctx, draft(1, 2, "2025-06-01", "10:00", "12:00", "AI in Healthcare Seminar"))
        require.NoError(t, err)
        assert.Equal(t, model.EventStatusConfirmed, ev.Status)
        assert.NotZero(t, ev.ID)
        assert.NotEmpty(t, ev.Reference)
        assert.Len(t, f.events, 1)
    })

    t.Run("overlapping slot returns the occupying event and stores nothing", func(t *testing.T) {
        f := newFakeStore()
        svc := newBookingService(f)
        _, err := svc.Book(ctx, draft(1, 2, "2025-06-01", "10:00", "12:00", "AI in Healthcare Seminar"))
        require.NoError(t, err)

        _, err = svc.Book(ctx, draft(1, 3, "2025-06-01", "11:00", "13:00", "Mathematics Symposium"))
        var ce *ConflictError
        require.ErrorAs(t, err, &ce)
        assert.Equal(t, "AI in Healthcare Seminar", ce.Event.Title)
        assert.ErrorIs(t, err, repository.ErrSlotConflict)
        assert.Len(t, f.events, 1)
    })

    t.Run("back to back booking is allowed", func(t *testing.T) {
        f := newFakeStore()
        svc := newBookingService(f)
        _, err := svc.Book(ctx, draft(1, 2, "2025-06-01", "10:00", "12:00", "Morning Session"))
        require.NoError(t, err)

        _, err = svc.Book(ctx, draft(1, 3, "2025-06-01", "12:00", "13:00", "Noon Session"))
        require.NoError(t, err)
        assert.Len(t, f.events, 2)
    })

    t.Run("same slot in another hall or on another date is free", func(t *testing.T) {
        f := newFakeStore()
        svc := newBookingService(f)
        _, err := svc.Book(ctx, draft(1, 2, "2025-06-01", "10:00", "12:00", "A"))
        require.NoError(t, err)
        _, err = svc.Book(ctx, draft(2, 2, "2025-06-01", "10:00", "12:00", "B"))
        require.NoError(t, err)
        _, err = svc.Book(ctx, draft(1, 2, "2025-06-02", "10:00", "12:00", "C"))
        require.NoError(t, err)
    })

    t.Run("rejects malformed slots", func(t *testing.T) {
        f := newFakeStore()
        svc := newBookingService(f)
        _, err := svc.Book(ctx, draft(1, 2, "2025-06-01", "12:00", "10:00", "Backwards"))
        assert.ErrorIs(t, err, model.ErrInvalidSlot)
    })

    t.Run("rejects unknown hall", func(t *testing.T) {
        f := newFakeStore()
        svc := newBookingService(f)
        _, err := svc.Book(ctx, draft(99, 2, "2025-06-01", "10:00", "12:00", "Nowhere"))
        assert.ErrorIs(t, err, repository.ErrNotFound)
    })
}

func TestBookingService_CheckAvailability(t *testing.T) {
    ctx := context.Background()
    f := newFakeStore()
    svc := newBookingService(f)

    _, err := svc.Book(ctx, draft(1, 2, "2025-06-01", "10:00", "12:00", "AI in Healthcare Seminar"))
    require.NoError(t, err)

    t.Run("overlap reports the conflicting event", func(t *testing.T) {
        av, err := svc.CheckAvailability(ctx, 1, "2025-06-01", "11:00", "13:00")
        require.NoError(t, err)
        assert.False(t, av.Available)
        require.NotNil(t, av.Conflict)
        assert.Equal(t, "AI in Healthcare Seminar", av.Conflict.Title)
    })

    t.Run("back to back slot is available", func(t *testing.T) {
        av, err := svc.CheckAvailability(ctx, 1, "2025-06-01", "12:00", "13:00")
        require.NoError(t, err)
        assert.True(t, av.Available)
        assert.Nil(t, av.Conflict)
    })

    t.Run("cancelled events do not block", func(t *testing.T) {
        require.NoError(t, svc.Cancel(ctx, f.events[0].ID, 2))
        av, err := svc.CheckAvailability(ctx, 1, "2025-06-01", "11:00", "13:00")
        require.NoError(t, err)
        assert.True(t, av.Available)
    })
}

func TestBookingService_Cancel(t *testing.T) {
    ctx := context.Background()

    t.Run("idempotent soft delete", func(t *testing.T) {
        f := newFakeStore()
        svc := newBookingService(f)
        ev, err := svc.Book(ctx, draft(1, 2, "2025-06-01", "10:00", "12:00", "A"))
        require.NoError(t, err)

        require.NoError(t, svc.Cancel(ctx, ev.ID, 2))
        require.NoError(t, svc.Cancel(ctx, ev.ID, 2))
        assert.Equal(t, model.EventStatusCancelled, f.events[0].Status)
        assert.Len(t, f.events, 1) // cancel keeps history
    })

    t.Run("frees the slot for rebooking", func(t *testing.T) {
        f := newFakeStore()
        svc := newBookingService(f)
        ev, err := svc.Book(ctx, draft(1, 2, "2025-06-01", "10:00", "12:00", "A"))
        require.NoError(t, err)
        require.NoError(t, svc.Cancel(ctx, ev.ID, 2))

        _, err = svc.Book(ctx, draft(1, 3, "2025-06-01", "10:00", "12:00", "B"))
        require.NoError(t, err)
    })

    t.Run("only the organizer may cancel", func(t *testing.T) {
        f := newFakeStore()
        svc := newBookingService(f)
        ev, err := svc.Book(ctx, draft(1, 2, "2025-06-01", "10:00", "12:00", "A"))
        require.NoError(t, err)

        assert.ErrorIs(t, svc.Cancel(ctx, ev.ID, 3), repository.ErrForbidden)
        assert.Equal(t, model.EventStatusConfirmed, f.events[0].Status)
    })

    t.Run("missing event is reported", func(t *testing.T) {
        f := newFakeStore()
        svc := newBookingService(f)
        assert.ErrorIs(t, svc.Cancel(ctx, 404, 2), repository.ErrNotFound)
    })

    t.Run("rejects pending exchange requests on the event", func(t *testing.T) {
        f := newFakeStore()
        svc := newBookingService(f)
        ev, err := svc.Book(ctx, draft(1, 2, "2025-06-01", "10:00", "12:00", "A"))
        require.NoError(t, err)
        f.requests = append(f.requests, model.ExchangeRequest{
            ID: 1, TargetEventID: ev.ID, TargetOrganizerID: 2, Status: model.ExchangeStatusPending,
        })

        require.NoError(t, svc.Cancel(ctx, ev.ID, 2))
        assert.Equal(t, model.ExchangeStatusRejected, f.requests[0].Status)
    })
}

func TestBookingService_Purge(t *testing.T) {
    ctx := context.Background()
    f := newFakeStore()
    svc := newBookingService(f)

    ev, err := svc.Book(ctx, draft(1, 2, "2025-06-01", "10:00", "12:00", "A"))
    require.NoError(t, err)
    f.regs = append(f.regs, model.Registration{ID: 1, EventID: ev.ID, StudentID: 4})
    f.requests = append(f.requests, model.ExchangeRequest{
        ID: 1, TargetEventID: ev.ID, TargetOrganizerID: 2, Status: model.ExchangeStatusPending,
    })

    require.NoError(t, svc.Purge(ctx, ev.ID))
    assert.Empty(t, f.events)
    assert.Empty(t, f.regs)
    assert.Equal(t, model.ExchangeStatusRejected, f.requests[0].Status)

    assert.ErrorIs(t, svc.Purge(ctx, ev.ID), repository.ErrNotFound)
}

func TestBookingService_MarkRefreshmentsDelivered(t *testing.T) {
    ctx := context.Background()
    f := newFakeStore()
    svc := newBookingService(f)

    ev, err := svc.Book(ctx, draft(1, 2, "2025-06-01", "10:00", "12:00", "A"))
    require.NoError(t, err)

    require.NoError(t, svc.MarkRefreshmentsDelivered(ctx, ev.ID))
    assert.True(t, f.events[0].RefreshmentsDelivered)

    // One-way flag; repeating is a no-op.
    require.NoError(t, svc.MarkRefreshmentsDelivered(ctx, ev.ID))
    assert.True(t, f.events[0].RefreshmentsDelivered)

    assert.ErrorIs(t, svc.MarkRefreshmentsDelivered(ctx, 404), repository.ErrNotFound)
}

func TestBookingService_MarkCompleted(t *testing.T) {
    ctx := context.Background()
    f := newFakeStore()
    svc := newBookingService(f)

    ev, err := svc.Book(ctx, draft(1, 2, "2025-06-01", "10:00", "12:00", "A"))
    require.NoError(t, err)

    require.NoError(t, svc.MarkCompleted(ctx, ev.ID, 2))
    assert.Equal(t, model.EventStatusCompleted, f.events[0].Status)

    // Completed events keep their slot occupied.
    _, err = svc.Book(ctx, draft(1, 3, "2025-06-01", "10:00", "12:00", "B"))
    assert.ErrorIs(t, err, repository.ErrSlotConflict)

    f.events[0].Status = model.EventStatusCancelled
    assert.ErrorIs(t, svc.MarkCompleted(ctx, ev.ID, 2), repository.ErrEventNotOpen)
}
