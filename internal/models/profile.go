package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Gender values stored on a profile.
const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"
	GenderOther  = "OTHER"
)

// Sexual preference values. An empty string means the user never set one
// and is treated the same as PreferenceBoth when matching.
const (
	PreferenceMale   = "MALE"
	PreferenceFemale = "FEMALE"
	PreferenceBoth   = "BOTH"
)

// Fame rating bounds. Every adjustment is clamped into this range.
const (
	FameRatingMin     = 1
	FameRatingMax     = 100
	DefaultFameRating = 40
)

// Profile represents a user profile (PostgreSQL). Profiles are created by
// the profile-management service; this core only mutates the fame rating
// and the presence fields.
type Profile struct {
	ID                uint          `json:"id" gorm:"primaryKey"`
	FirstName         string        `json:"first_name" gorm:"size:50"`
	LastName          string        `json:"last_name" gorm:"size:50"`
	Email             string        `json:"email" gorm:"uniqueIndex"`
	Age               int           `json:"age"`
	Gender            string        `json:"gender" gorm:"size:10"`
	SexualPreferences string        `json:"sexual_preferences" gorm:"size:10"`
	Biography         string        `json:"biography"`
	ProfilePicture    string        `json:"profile_picture"`
	Latitude          float64       `json:"latitude"`
	Longitude         float64       `json:"longitude"`
	FameRating        int           `json:"fame_rating" gorm:"default:40"`
	ProfileCompleted  bool          `json:"profile_completed" gorm:"default:false;index"`
	EmailVerified     bool          `json:"email_verified" gorm:"default:false"`
	IsActive          bool          `json:"is_active" gorm:"default:false"`
	LastConnection    time.Time     `json:"last_connection"`
	Interests         []InterestTag `json:"interests" gorm:"many2many:profile_interests;"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"-"`
}

// InterestTag is a reusable interest label shared across profiles.
type InterestTag struct {
	ID  uint   `json:"id" gorm:"primaryKey"`
	Tag string `json:"tag" gorm:"uniqueIndex;size:50"`
}

// InterestNames flattens the interest tags into plain strings.
func (p *Profile) InterestNames() []string {
	names := make([]string, len(p.Interests))
	for i, tag := range p.Interests {
		names[i] = tag.Tag
	}
	return names
}

// FullName is the display name used in notification messages.
func (p *Profile) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Usable reports whether the profile may participate in matching.
func (p *Profile) Usable() bool {
	return p.ProfileCompleted && p.EmailVerified
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
