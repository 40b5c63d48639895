package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/campuskit/hall-booking/internal/model"
    "github.com/campuskit/hall-booking/internal/utils"
)

// UserRepo provides persistence for the `users` table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = "id,name,email,password_hash,role,department,is_active,created_at,updated_at"

// Create hashes the password with bcrypt, inserts the user and returns its ID.
func (r *UserRepo) Create(ctx context.Context, name, email, password, role, department string, cost int) (uint64, error) {
    email = strings.ToLower(strings.TrimSpace(email))
    hash, err := utils.HashPassword(password, cost)
    if err != nil {
        return 0, err
    }
    res, err := r.DB.ExecContext(ctx,
        "INSERT INTO users (name, email, password_hash, role, department) VALUES (?,?,?,?,?)",
        name, email, hash, role, department)
    if err != nil {
        // 1062 = duplicate key on the unique email index
        if strings.Contains(strings.ToLower(err.Error()), "1062") {
            return 0, ErrEmailExists
        }
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
    email = strings.ToLower(strings.TrimSpace(email))
    return r.scanOne(r.DB.QueryRowContext(ctx,
        "SELECT "+userCols+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
    return r.scanOne(r.DB.QueryRowContext(ctx,
        "SELECT "+userCols+" FROM users WHERE id=? LIMIT 1", id))
}

func (r *UserRepo) scanOne(row *sql.Row) (model.User, error) {
    var u model.User
    err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Department,
        &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
    if err == sql.ErrNoRows {
        return u, ErrNotFound
    }
    return u, err
}
