package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Role struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	RoleID       *uint     `json:"role_id"`
	Role         Role      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"role"`
	AvatarURL    *string   `gorm:"type:text" json:"avatar_url,omitempty"`

	// Denormalized mirrors of the membership workflow, kept for fast reads.
	// Written in the same transaction as the application record.
	ProfileComplete  bool   `gorm:"default:false" json:"profile_complete"`
	MembershipStatus string `gorm:"size:20;default:pending" json:"membership_status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	Profile   *Profile  `gorm:"constraint:OnDelete:CASCADE" json:"profile,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// LegacyRoleAssignment duplicates role data from the pre-migration schema.
// It is not authoritative: RoleResolver checks User.Role first and falls back
// here only when the user row carries no role.
type LegacyRoleAssignment struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	RoleName  string    `gorm:"size:50;not null" json:"role_name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type Profile struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`

	// Mandatory fields. All six must be non-empty for the profile to count
	// as complete, which gates membership finalization.
	FullName      string `gorm:"size:100" json:"full_name"`
	Nickname      string `gorm:"size:50" json:"nickname"`
	Department    string `gorm:"size:100" json:"department"`
	Hall          string `gorm:"size:100" json:"hall"`
	ContactNumber string `gorm:"size:30" json:"contact_number"`
	BloodGroup    string `gorm:"size:10" json:"blood_group"`

	Address    *string `gorm:"type:text" json:"address,omitempty"`
	Profession *string `gorm:"size:100" json:"profession,omitempty"`
	Bio        *string `gorm:"type:text" json:"bio,omitempty"`
	PhotoURL   *string `gorm:"type:text" json:"photo_url,omitempty"`

	Documents []VerificationDocument `gorm:"foreignKey:UserID;references:UserID" json:"documents,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsComplete reports whether all six mandatory fields are filled in.
// Completeness is recomputed on every profile write, never trusted from a
// stored flag.
func (p *Profile) IsComplete() bool {
	if p == nil {
		return false
	}
	return p.FullName != "" &&
		p.Nickname != "" &&
		p.Department != "" &&
		p.Hall != "" &&
		p.ContactNumber != "" &&
		p.BloodGroup != ""
}

// VerificationDocument is an uploaded identity document (certificate scan,
// student ID). Purged from object storage once the application is finalized.
type VerificationDocument struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	URL        string    `gorm:"type:text;not null" json:"url"`
	MimeType   string    `gorm:"size:100" json:"mime_type"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

func (d *VerificationDocument) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
