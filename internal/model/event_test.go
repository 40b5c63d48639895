package model

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
    cases := []struct {
        name                   string
        aStart, aEnd           string
        bStart, bEnd           string
        want                   bool
    }{
        {"identical slots", "10:00", "12:00", "10:00", "12:00", true},
        {"partial overlap at end", "11:00", "13:00", "10:00", "12:00", true},
        {"partial overlap at start", "09:00", "11:00", "10:00", "12:00", true},
        {"candidate inside existing", "10:30", "11:30", "10:00", "12:00", true},
        {"existing inside candidate", "09:00", "13:00", "10:00", "12:00", true},
        {"back to back after", "12:00", "13:00", "10:00", "12:00", false},
        {"back to back before", "09:00", "10:00", "10:00", "12:00", false},
        {"disjoint", "14:00", "15:00", "10:00", "12:00", false},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            assert.Equal(t, tc.want, Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd))
        })
    }
}

func TestFindConflict(t *testing.T) {
    events := []Event{
        {ID: 1, Title: "AI in Healthcare Seminar", StartTime: "10:00", EndTime: "12:00", Status: EventStatusConfirmed},
        {ID: 2, Title: "Cancelled Workshop", StartTime: "11:00", EndTime: "13:00", Status: EventStatusCancelled},
        {ID: 3, Title: "Alumni Meet", StartTime: "15:00", EndTime: "17:00", Status: EventStatusConfirmed},
    }

    t.Run("overlapping slot returns first active conflict", func(t *testing.T) {
        c := FindConflict(events, "11:00", "13:00")
        if assert.NotNil(t, c) {
            assert.Equal(t, uint64(1), c.ID)
        }
    })

    t.Run("cancelled events do not conflict", func(t *testing.T) {
        c := FindConflict(events, "12:00", "13:00")
        assert.Nil(t, c)
    })

    t.Run("back to back slot is free", func(t *testing.T) {
        assert.Nil(t, FindConflict(events, "12:00", "15:00"))
    })

    t.Run("completed event still occupies its slot", func(t *testing.T) {
        done := []Event{{ID: 9, StartTime: "09:00", EndTime: "10:00", Status: EventStatusCompleted}}
        assert.NotNil(t, FindConflict(done, "09:30", "11:00"))
    })

    t.Run("insertion order wins over time order", func(t *testing.T) {
        reordered := []Event{
            {ID: 3, StartTime: "15:00", EndTime: "17:00", Status: EventStatusConfirmed},
            {ID: 1, StartTime: "10:00", EndTime: "12:00", Status: EventStatusConfirmed},
        }
        c := FindConflict(reordered, "09:00", "18:00")
        if assert.NotNil(t, c) {
            assert.Equal(t, uint64(3), c.ID)
        }
    })
}

func TestValidateSlot(t *testing.T) {
    assert.NoError(t, ValidateSlot("2025-06-01", "10:00", "12:00"))
    assert.ErrorIs(t, ValidateSlot("2025-06-01", "12:00", "12:00"), ErrInvalidSlot) // empty slot
    assert.ErrorIs(t, ValidateSlot("2025-06-01", "13:00", "12:00"), ErrInvalidSlot)
    assert.ErrorIs(t, ValidateSlot("01-06-2025", "10:00", "12:00"), ErrInvalidSlot)
    assert.ErrorIs(t, ValidateSlot("2025-06-01", "10am", "12:00"), ErrInvalidSlot)
    assert.ErrorIs(t, ValidateSlot("2025-06-01", "10:00", "24:30"), ErrInvalidSlot)
}

func TestEventDraftEvent(t *testing.T) {
    d := EventDraft{
        Title:                "Mathematics Symposium",
        Department:           "Mathematics",
        Date:                 "2025-06-02",
        StartTime:            "09:00",
        EndTime:              "16:00",
        HallID:               2,
        OrganizerID:          3,
        OrganizerName:        "Prof. Alan Turing",
        OrganizerContact:     "9123456780",
        GuestName:            "Prof. R. Ramanujan",
        ExpectedParticipants: 80,
        Refreshments:         []string{"Tea", "Snacks"},
    }
    e := d.Event("ref-123")
    assert.Equal(t, EventStatusConfirmed, e.Status)
    assert.Equal(t, "ref-123", e.Reference)
    assert.Equal(t, d.Title, e.Title)
    assert.Equal(t, d.HallID, e.HallID)
    assert.Equal(t, d.Refreshments, e.Refreshments)
    assert.False(t, e.RefreshmentsDelivered)
    assert.Zero(t, e.ID)
}
