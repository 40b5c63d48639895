package repository

import (
    "context"
    "database/sql"
    "encoding/json"

    "github.com/campuskit/hall-booking/internal/model"
)

// HallRepo reads the hall directory. Halls are seeded reference data, so
// the repository is read-only; there is no mutation surface at runtime.
type HallRepo struct{ DB *sql.DB }

func NewHallRepo(db *sql.DB) *HallRepo { return &HallRepo{DB: db} }

// List returns all halls ordered by name.
func (r *HallRepo) List(ctx context.Context) ([]model.Hall, error) {
    rows, err := dbtx(ctx, r.DB).QueryContext(ctx,
        "SELECT id, name, capacity, location, amenities, created_at FROM halls ORDER BY name")
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    var halls []model.Hall
    for rows.Next() {
        h, err := scanHall(rows)
        if err != nil {
            return nil, err
        }
        halls = append(halls, h)
    }
    return halls, rows.Err()
}

// GetByID fetches a single hall.
func (r *HallRepo) GetByID(ctx context.Context, id uint64) (model.Hall, error) {
    rows, err := dbtx(ctx, r.DB).QueryContext(ctx,
        "SELECT id, name, capacity, location, amenities, created_at FROM halls WHERE id=? LIMIT 1", id)
    if err != nil {
        return model.Hall{}, err
    }
    defer rows.Close()
    if !rows.Next() {
        if err := rows.Err(); err != nil {
            return model.Hall{}, err
        }
        return model.Hall{}, ErrNotFound
    }
    return scanHall(rows)
}

func scanHall(rows *sql.Rows) (model.Hall, error) {
    var (
        h        model.Hall
        amenities []byte
    )
    if err := rows.Scan(&h.ID, &h.Name, &h.Capacity, &h.Location, &amenities, &h.CreatedAt); err != nil {
        return h, err
    }
    if len(amenities) > 0 {
        if err := json.Unmarshal(amenities, &h.Amenities); err != nil {
            return h, err
        }
    }
    return h, nil
}
