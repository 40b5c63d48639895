package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/campuskit/hall-booking/internal/model"
)

// RegistrationRepo provides persistence for student registrations. The
// table carries UNIQUE(event_id, student_id); the repository treats a
// duplicate-key insert as the idempotent outcome the service expects.
type RegistrationRepo struct{ DB *sql.DB }

func NewRegistrationRepo(db *sql.DB) *RegistrationRepo { return &RegistrationRepo{DB: db} }

const registrationCols = "id, event_id, student_id, student_name, roll_no, phone, registered_at"

// FindByEventStudent returns the registration of a student for an event,
// or ErrNotFound.
func (r *RegistrationRepo) FindByEventStudent(ctx context.Context, eventID, studentID uint64) (model.Registration, error) {
    var reg model.Registration
    err := dbtx(ctx, r.DB).QueryRowContext(ctx,
        "SELECT "+registrationCols+" FROM registrations WHERE event_id=? AND student_id=? LIMIT 1",
        eventID, studentID).
        Scan(&reg.ID, &reg.EventID, &reg.StudentID, &reg.StudentName, &reg.RollNo, &reg.Phone, &reg.RegisteredAt)
    if err == sql.ErrNoRows {
        return reg, ErrNotFound
    }
    return reg, err
}

// Insert stores a registration. A concurrent duplicate is reported as
// AlreadyExists=false via error swallowing at the service layer; here a
// unique-key violation surfaces unchanged so callers can re-read the row.
func (r *RegistrationRepo) Insert(ctx context.Context, reg *model.Registration) error {
    res, err := dbtx(ctx, r.DB).ExecContext(ctx,
        "INSERT INTO registrations (event_id, student_id, student_name, roll_no, phone) VALUES (?,?,?,?,?)",
        reg.EventID, reg.StudentID, reg.StudentName, reg.RollNo, reg.Phone)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    reg.ID = uint64(id)
    return nil
}

// IsDuplicate reports whether err is the MySQL duplicate-key error for
// the (event_id, student_id) unique index.
func IsDuplicate(err error) bool {
    return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}

// ListByEvent returns an event's roster in registration order.
func (r *RegistrationRepo) ListByEvent(ctx context.Context, eventID uint64) ([]model.Registration, error) {
    rows, err := dbtx(ctx, r.DB).QueryContext(ctx,
        "SELECT "+registrationCols+" FROM registrations WHERE event_id=? ORDER BY id", eventID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    return collectRegistrations(rows)
}

// ListByStudent returns all registrations a student has made.
func (r *RegistrationRepo) ListByStudent(ctx context.Context, studentID uint64) ([]model.Registration, error) {
    rows, err := dbtx(ctx, r.DB).QueryContext(ctx,
        "SELECT "+registrationCols+" FROM registrations WHERE student_id=? ORDER BY id", studentID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    return collectRegistrations(rows)
}

// CountByEvent returns the roster size for an event.
func (r *RegistrationRepo) CountByEvent(ctx context.Context, eventID uint64) (int, error) {
    var n int
    err := dbtx(ctx, r.DB).QueryRowContext(ctx,
        "SELECT COUNT(*) FROM registrations WHERE event_id=?", eventID).Scan(&n)
    return n, err
}

func collectRegistrations(rows *sql.Rows) ([]model.Registration, error) {
    var out []model.Registration
    for rows.Next() {
        var reg model.Registration
        if err := rows.Scan(&reg.ID, &reg.EventID, &reg.StudentID, &reg.StudentName,
            &reg.RollNo, &reg.Phone, &reg.RegisteredAt); err != nil {
            return nil, err
        }
        out = append(out, reg)
    }
    return out, rows.Err()
}
