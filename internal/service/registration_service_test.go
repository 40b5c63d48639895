package service

import (
    "context"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/campuskit/hall-booking/internal/model"
    "github.com/campuskit/hall-booking/internal/repository"
)

func TestRegistrationService_Register(t *testing.T) {
    ctx := context.Background()
    student := model.User{ID: 4, Name: "John Doe", Role: model.RoleStudent}

    seed := func() (*fakeStore, *RegistrationService, model.Event) {
        f := newFakeStore()
        ev := confirmedEvent(10, 1, 2, "2025-06-01", "10:00", "12:00", "AI in Healthcare Seminar")
        f.events = append(f.events, ev)
        return f, newRegistrationService(f), ev
    }

    t.Run("first registration is stored", func(t *testing.T) {
        f, svc, ev := seed()
        reg, created, err := svc.Register(ctx, ev.ID, student, "CS2021001", "9988776655")
        require.NoError(t, err)
        assert.True(t, created)
        assert.Equal(t, "CS2021001", reg.RollNo)
        assert.Len(t, f.regs, 1)
    })

    t.Run("duplicate registration is an idempotent no-op", func(t *testing.T) {
        f, svc, ev := seed()
        first, created, err := svc.Register(ctx, ev.ID, student, "CS2021001", "9988776655")
        require.NoError(t, err)
        require.True(t, created)

        // Second attempt with a different roll number changes nothing.
        second, created, err := svc.Register(ctx, ev.ID, student, "CS9999999", "0000000000")
        require.NoError(t, err)
        assert.False(t, created)
        assert.Equal(t, first, second)
        require.Len(t, f.regs, 1)
        assert.Equal(t, "CS2021001", f.regs[0].RollNo)
    })

    t.Run("concurrent duplicate converges on the stored row", func(t *testing.T) {
        f, svc, ev := seed()
        // Simulate losing the unique-index race: the pre-insert lookup
        // misses, the insert fails with a duplicate-key error, and the
        // winner's row is what gets re-read.
        f.regs = append(f.regs, model.Registration{
            ID: 1, EventID: ev.ID, StudentID: student.ID, RollNo: "CS2021001",
        })
        f.hideRegOnce = true
        f.failRegInsertDup = true

        reg, created, err := svc.Register(ctx, ev.ID, student, "CS9999999", "0000000000")
        require.NoError(t, err)
        assert.False(t, created)
        assert.Equal(t, "CS2021001", reg.RollNo)
        assert.Len(t, f.regs, 1)
    })

    t.Run("cancelled event rejects registration", func(t *testing.T) {
        f, svc, ev := seed()
        f.events[0].Status = model.EventStatusCancelled
        _, _, err := svc.Register(ctx, ev.ID, student, "CS2021001", "9988776655")
        assert.ErrorIs(t, err, repository.ErrEventNotOpen)
        assert.Empty(t, f.regs)
    })

    t.Run("completed event rejects registration", func(t *testing.T) {
        f, svc, ev := seed()
        f.events[0].Status = model.EventStatusCompleted
        _, _, err := svc.Register(ctx, ev.ID, student, "CS2021001", "9988776655")
        assert.ErrorIs(t, err, repository.ErrEventNotOpen)
    })

    t.Run("missing event is reported", func(t *testing.T) {
        _, svc, _ := seed()
        _, _, err := svc.Register(ctx, 404, student, "CS2021001", "9988776655")
        assert.ErrorIs(t, err, repository.ErrNotFound)
    })
}
