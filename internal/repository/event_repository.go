package repository

import (
    "context"
    "database/sql"
    "encoding/json"
    "strings"

    "github.com/campuskit/hall-booking/internal/model"
)

// EventRepo provides persistence for events. All methods honor an ambient
// transaction via dbtx, so services can compose them atomically.
type EventRepo struct{ DB *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{DB: db} }

const eventCols = `id, reference, title, department, event_date, start_time, end_time,
    hall_id, organizer_id, organizer_name, organizer_contact, guest_name, vip_arrival,
    expected_participants, status, refreshments, refreshments_delivered, security_needs,
    electrical_needs, lab_requirements, store_items, created_at, updated_at`

// ForUpdateByHallDate loads every event in a hall on a date and locks the
// rows for the current transaction. Callers scan the result for conflicts
// before inserting; the row locks close the check-then-act race between
// concurrent bookings of the same (hall, date).
func (r *EventRepo) ForUpdateByHallDate(ctx context.Context, hallID uint64, date string) ([]model.Event, error) {
    q := "SELECT " + eventCols + " FROM events WHERE hall_id=? AND event_date=? ORDER BY id FOR UPDATE"
    rows, err := dbtx(ctx, r.DB).QueryContext(ctx, q, hallID, date)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    return collectEvents(rows)
}

// Insert stores a new event and populates its generated ID.
func (r *EventRepo) Insert(ctx context.Context, e *model.Event) error {
    const q = `INSERT INTO events (reference, title, department, event_date, start_time, end_time,
        hall_id, organizer_id, organizer_name, organizer_contact, guest_name, vip_arrival,
        expected_participants, status, refreshments, security_needs, electrical_needs,
        lab_requirements, store_items)
        VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`
    res, err := dbtx(ctx, r.DB).ExecContext(ctx, q,
        e.Reference, e.Title, e.Department, e.Date, e.StartTime, e.EndTime,
        e.HallID, e.OrganizerID, e.OrganizerName, e.OrganizerContact, e.GuestName, e.VIPArrival,
        e.ExpectedParticipants, e.Status, jsonList(e.Refreshments), e.SecurityNeeds,
        jsonList(e.ElectricalNeeds), jsonList(e.LabRequirements), jsonList(e.StoreItems))
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    e.ID = uint64(id)
    return nil
}

// GetByID fetches a single event.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (model.Event, error) {
    rows, err := dbtx(ctx, r.DB).QueryContext(ctx,
        "SELECT "+eventCols+" FROM events WHERE id=? LIMIT 1", id)
    if err != nil {
        return model.Event{}, err
    }
    defer rows.Close()
    evs, err := collectEvents(rows)
    if err != nil {
        return model.Event{}, err
    }
    if len(evs) == 0 {
        return model.Event{}, ErrNotFound
    }
    return evs[0], nil
}

// GetForUpdate fetches a single event and locks its row.
func (r *EventRepo) GetForUpdate(ctx context.Context, id uint64) (model.Event, error) {
    rows, err := dbtx(ctx, r.DB).QueryContext(ctx,
        "SELECT "+eventCols+" FROM events WHERE id=? LIMIT 1 FOR UPDATE", id)
    if err != nil {
        return model.Event{}, err
    }
    defer rows.Close()
    evs, err := collectEvents(rows)
    if err != nil {
        return model.Event{}, err
    }
    if len(evs) == 0 {
        return model.Event{}, ErrNotFound
    }
    return evs[0], nil
}

// EventFilter narrows List. Zero values mean "no filter". Status filters
// on an exact status; when empty, cancelled events are excluded so the
// default listing matches what students and support staff should see.
type EventFilter struct {
    Date        string
    HallID      uint64
    OrganizerID uint64
    Status      string
    FromDate    string // inclusive lower bound on event_date
    All         bool   // include cancelled events (principal history view)
}

// List returns events matching the filter, in insertion order.
func (r *EventRepo) List(ctx context.Context, f EventFilter) ([]model.Event, error) {
    var (
        where []string
        args  []any
    )
    if f.Date != "" {
        where = append(where, "event_date=?")
        args = append(args, f.Date)
    }
    if f.FromDate != "" {
        where = append(where, "event_date>=?")
        args = append(args, f.FromDate)
    }
    if f.HallID != 0 {
        where = append(where, "hall_id=?")
        args = append(args, f.HallID)
    }
    if f.OrganizerID != 0 {
        where = append(where, "organizer_id=?")
        args = append(args, f.OrganizerID)
    }
    switch {
    case f.Status != "":
        where = append(where, "status=?")
        args = append(args, f.Status)
    case !f.All:
        where = append(where, "status<>?")
        args = append(args, model.EventStatusCancelled)
    }

    q := "SELECT " + eventCols + " FROM events"
    if len(where) > 0 {
        q += " WHERE " + strings.Join(where, " AND ")
    }
    q += " ORDER BY id"

    rows, err := dbtx(ctx, r.DB).QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    return collectEvents(rows)
}

// UpdateStatus sets the lifecycle status of an event.
func (r *EventRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
    res, err := dbtx(ctx, r.DB).ExecContext(ctx,
        "UPDATE events SET status=? WHERE id=?", status, id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        // Distinguish "missing" from "already in this status".
        var exists uint64
        err := dbtx(ctx, r.DB).QueryRowContext(ctx,
            "SELECT id FROM events WHERE id=? LIMIT 1", id).Scan(&exists)
        if err == sql.ErrNoRows {
            return ErrNotFound
        }
        return err
    }
    return nil
}

// SetRefreshmentsDelivered flips the one-way delivery flag.
func (r *EventRepo) SetRefreshmentsDelivered(ctx context.Context, id uint64) error {
    res, err := dbtx(ctx, r.DB).ExecContext(ctx,
        "UPDATE events SET refreshments_delivered=1 WHERE id=?", id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        var exists uint64
        err := dbtx(ctx, r.DB).QueryRowContext(ctx,
            "SELECT id FROM events WHERE id=? LIMIT 1", id).Scan(&exists)
        if err == sql.ErrNoRows {
            return ErrNotFound
        }
        return err
    }
    return nil
}

// Delete physically removes an event and its registrations. Irreversible;
// reserved for the administrative purge.
func (r *EventRepo) Delete(ctx context.Context, id uint64) error {
    q := dbtx(ctx, r.DB)
    if _, err := q.ExecContext(ctx, "DELETE FROM registrations WHERE event_id=?", id); err != nil {
        return err
    }
    res, err := q.ExecContext(ctx, "DELETE FROM events WHERE id=?", id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrNotFound
    }
    return nil
}

func collectEvents(rows *sql.Rows) ([]model.Event, error) {
    var out []model.Event
    for rows.Next() {
        var (
            e                                          model.Event
            refreshments, electrical, lab, store []byte
        )
        if err := rows.Scan(&e.ID, &e.Reference, &e.Title, &e.Department, &e.Date,
            &e.StartTime, &e.EndTime, &e.HallID, &e.OrganizerID, &e.OrganizerName,
            &e.OrganizerContact, &e.GuestName, &e.VIPArrival, &e.ExpectedParticipants,
            &e.Status, &refreshments, &e.RefreshmentsDelivered, &e.SecurityNeeds,
            &electrical, &lab, &store, &e.CreatedAt, &e.UpdatedAt); err != nil {
            return nil, err
        }
        for _, pair := range []struct {
            raw []byte
            dst *[]string
        }{
            {refreshments, &e.Refreshments},
            {electrical, &e.ElectricalNeeds},
            {lab, &e.LabRequirements},
            {store, &e.StoreItems},
        } {
            if len(pair.raw) > 0 {
                if err := json.Unmarshal(pair.raw, pair.dst); err != nil {
                    return nil, err
                }
            }
        }
        out = append(out, e)
    }
    return out, rows.Err()
}

// jsonList marshals a string list for a JSON column; nil becomes an empty
// array so scans never see SQL NULL.
func jsonList(v []string) []byte {
    if v == nil {
        v = []string{}
    }
    b, _ := json.Marshal(v)
    return b
}
