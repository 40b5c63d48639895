package repository

import (
    "context"
    "database/sql"
    "encoding/json"

    "github.com/campuskit/hall-booking/internal/model"
)

// ExchangeRepo provides persistence for exchange requests. The proposed
// booking payload is stored verbatim as JSON.
type ExchangeRepo struct{ DB *sql.DB }

func NewExchangeRepo(db *sql.DB) *ExchangeRepo { return &ExchangeRepo{DB: db} }

const exchangeCols = `id, requester_id, requester_name, target_event_id, target_event_title,
    target_organizer_id, proposed, status, created_at`

// Insert stores a new request and populates its generated ID.
func (r *ExchangeRepo) Insert(ctx context.Context, req *model.ExchangeRequest) error {
    proposed, err := json.Marshal(req.Proposed)
    if err != nil {
        return err
    }
    const q = `INSERT INTO exchange_requests (requester_id, requester_name, target_event_id,
        target_event_title, target_organizer_id, proposed, status) VALUES (?,?,?,?,?,?,?)`
    res, err := dbtx(ctx, r.DB).ExecContext(ctx, q,
        req.RequesterID, req.RequesterName, req.TargetEventID, req.TargetEventTitle,
        req.TargetOrganizerID, proposed, req.Status)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    req.ID = uint64(id)
    return nil
}

// GetForUpdate fetches a request and locks its row for resolution.
func (r *ExchangeRepo) GetForUpdate(ctx context.Context, id uint64) (model.ExchangeRequest, error) {
    rows, err := dbtx(ctx, r.DB).QueryContext(ctx,
        "SELECT "+exchangeCols+" FROM exchange_requests WHERE id=? LIMIT 1 FOR UPDATE", id)
    if err != nil {
        return model.ExchangeRequest{}, err
    }
    defer rows.Close()
    reqs, err := collectRequests(rows)
    if err != nil {
        return model.ExchangeRequest{}, err
    }
    if len(reqs) == 0 {
        return model.ExchangeRequest{}, ErrNotFound
    }
    return reqs[0], nil
}

// PendingForOrganizer returns PENDING requests addressed to the organizer,
// oldest first. The organizer was captured at creation time, so this is a
// direct filter with no event re-scan.
func (r *ExchangeRepo) PendingForOrganizer(ctx context.Context, organizerID uint64) ([]model.ExchangeRequest, error) {
    rows, err := dbtx(ctx, r.DB).QueryContext(ctx,
        "SELECT "+exchangeCols+" FROM exchange_requests WHERE target_organizer_id=? AND status=? ORDER BY id",
        organizerID, model.ExchangeStatusPending)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    return collectRequests(rows)
}

// UpdateStatus transitions a request to a terminal status.
func (r *ExchangeRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
    res, err := dbtx(ctx, r.DB).ExecContext(ctx,
        "UPDATE exchange_requests SET status=? WHERE id=?", status, id)
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

// RejectPendingForEvent rejects every PENDING request targeting the event.
// Called when the target is cancelled or purged, so requests never dangle
// against a slot that no longer exists.
func (r *ExchangeRepo) RejectPendingForEvent(ctx context.Context, eventID uint64) error {
    _, err := dbtx(ctx, r.DB).ExecContext(ctx,
        "UPDATE exchange_requests SET status=? WHERE target_event_id=? AND status=?",
        model.ExchangeStatusRejected, eventID, model.ExchangeStatusPending)
    return err
}

func collectRequests(rows *sql.Rows) ([]model.ExchangeRequest, error) {
    var out []model.ExchangeRequest
    for rows.Next() {
        var (
            req      model.ExchangeRequest
            proposed []byte
        )
        if err := rows.Scan(&req.ID, &req.RequesterID, &req.RequesterName, &req.TargetEventID,
            &req.TargetEventTitle, &req.TargetOrganizerID, &proposed, &req.Status, &req.CreatedAt); err != nil {
            return nil, err
        }
        if len(proposed) > 0 {
            if err := json.Unmarshal(proposed, &req.Proposed); err != nil {
                return nil, err
            }
        }
        out = append(out, req)
    }
    return out, rows.Err()
}
