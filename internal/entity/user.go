package entity

import "time"

const (
	RoleSuperAdmin = "Super Admin"
	RoleEksekutif  = "Eksekutif"
)

const (
	VerificationPending  = "pending"
	VerificationApproved = "approved"
	VerificationRejected = "rejected"
)

// AllowedRoles are the only role values an account may carry. Login is refused
// for anything else.
var AllowedRoles = []string{RoleSuperAdmin, RoleEksekutif}

func IsAllowedRole(name string) bool {
	for _, r := range AllowedRoles {
		if r == name {
			return true
		}
	}
	return false
}

// DbUser represents a persisted user account.
type DbUser struct {
	ID                uint       `gorm:"primarykey" json:"id"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	NIP               string     `gorm:"column:nip;type:varchar(50);uniqueIndex;not null" json:"nip"`
	Username          string     `gorm:"column:username;type:varchar(100);uniqueIndex;not null" json:"username"`
	Email             string     `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	FullName          string     `gorm:"column:full_name;type:varchar(255);not null" json:"full_name"`
	Jabatan           string     `gorm:"column:jabatan;type:varchar(255)" json:"jabatan"`
	Organization      string     `gorm:"column:organization;type:varchar(255)" json:"organization"`
	NoTelepon         string     `gorm:"column:no_telepon;type:varchar(20)" json:"no_telepon"`
	HashedPassword    *string    `gorm:"column:hashed_password;type:varchar(255)" json:"-"`
	IsActive          bool       `gorm:"column:is_active;not null;default:false" json:"is_active"`
	IsVerified        bool       `gorm:"column:is_verified;not null;default:false" json:"is_verified"`
	IsApproved        bool       `gorm:"column:is_approved;not null;default:false" json:"is_approved"`
	StatusVerifikasi  string     `gorm:"column:status_verifikasi;type:varchar(50);index;not null;default:pending" json:"status_verifikasi"`
	VerifiedBy        *uint      `gorm:"column:verified_by" json:"verified_by,omitempty"`
	VerifiedAt        *time.Time `gorm:"column:verified_at" json:"verified_at,omitempty"`
	VerificationNotes string     `gorm:"column:verification_notes;type:text" json:"verification_notes,omitempty"`
	RoleName          *string    `gorm:"column:role_name;type:varchar(50);index" json:"role_name"`
	LastActivity      *time.Time `gorm:"column:last_activity" json:"last_activity,omitempty"`
	TokenVersion      int        `gorm:"column:token_version;not null;default:0" json:"-"`
}

// TableName overrides default pluralised name.
func (DbUser) TableName() string {
	return "users"
}

// Role returns the role name or empty when the account has none yet.
func (u *DbUser) Role() string {
	if u == nil || u.RoleName == nil {
		return ""
	}
	return *u.RoleName
}

// IsSuperAdmin reports whether the account carries the administrative role.
func (u *DbUser) IsSuperAdmin() bool {
	return u.Role() == RoleSuperAdmin
}

// DbRole is one of the two fixed roles, kept as reference data.
type DbRole struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Name        string    `gorm:"column:name;type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"column:description;type:varchar(255)" json:"description"`
}

func (DbRole) TableName() string {
	return "roles"
}

// UserSummary is the user representation returned to clients.
type UserSummary struct {
	ID               uint       `json:"id"`
	NIP              string     `json:"nip"`
	Username         string     `json:"username"`
	Email            string     `json:"email"`
	FullName         string     `json:"full_name"`
	Jabatan          string     `json:"jabatan"`
	Organization     string     `json:"organization"`
	NoTelepon        string     `json:"no_telepon"`
	IsActive         bool       `json:"is_active"`
	IsVerified       bool       `json:"is_verified"`
	StatusVerifikasi string     `json:"status_verifikasi"`
	RoleName         *string    `json:"role_name"`
	LastActivity     *time.Time `json:"last_activity,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// UserQuery supports listing users with pagination, search and role filter.
type UserQuery struct {
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
	Search string `form:"search"`
	Role   string `form:"role"`
}
