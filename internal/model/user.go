package model

import "time"

// Role names stored in users.role and embedded in JWT claims.  TEACHER is
// the organizer role; STAFF_* roles belong to the support departments that
// service event logistics.
const (
    RolePrincipal       = "PRINCIPAL"
    RoleTeacher         = "TEACHER"
    RoleStudent         = "STUDENT"
    RoleStaffCanteen    = "STAFF_CANTEEN"
    RoleStaffSecurity   = "STAFF_SECURITY"
    RoleStaffElectrical = "STAFF_ELECTRICAL"
    RoleStaffCSLab      = "STAFF_CS"
    RoleStaffStore      = "STAFF_STORE"
)

// SupportRoles lists every support-department role.  Used when registering
// routes that any support dashboard may call.
var SupportRoles = []string{
    RoleStaffCanteen,
    RoleStaffSecurity,
    RoleStaffElectrical,
    RoleStaffCSLab,
    RoleStaffStore,
}

// KnownRole reports whether name is one of the role constants above.
func KnownRole(name string) bool {
    switch name {
    case RolePrincipal, RoleTeacher, RoleStudent:
        return true
    }
    for _, r := range SupportRoles {
        if name == r {
            return true
        }
    }
    return false
}

// User represents an application user record as stored in the `users`
// table.  PasswordHash is a bcrypt digest; the plain password is never
// persisted or compared directly.  Department is informational for
// teachers and students and empty for support staff.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – display name shown on dashboards and rosters.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Role         – one of the role constants above.
//  Department   – academic department (optional).
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
    ID           uint64    // users.id
    Name         string    // users.name
    Email        string    // users.email
    PasswordHash string    // users.password_hash
    Role         string    // users.role
    Department   string    // users.department
    IsActive     bool      // users.is_active
    CreatedAt    time.Time // users.created_at
    UpdatedAt    time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each
// refresh token belongs to a user and contains metadata for expiry
// and revocation.  The plain token is not stored; only its SHA-256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
    ID        uint64     // refresh_tokens.id
    UserID    uint64     // refresh_tokens.user_id
    TokenHash string     // refresh_tokens.token_hash
    ExpiresAt time.Time  // refresh_tokens.expires_at
    RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
    CreatedAt time.Time  // refresh_tokens.created_at
}
