package model

import (
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxPlayerNameLen = 200
	MaxGenderLen     = 50
	MaxPhotoURLLen   = 500
)

// Player is a roster member owned by one user account.
type Player struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	DateOfBirth time.Time `json:"date_of_birth"`
	Gender      *string   `json:"gender,omitempty"`
	PhotoURL    *string   `json:"photo_url,omitempty"`
	Audit
}

// Validate reports whether the player satisfies its invariants right now.
func (p Player) Validate() bool { return p.ValidateAt(time.Now().UTC()) }

// ValidateAt is Validate against an explicit reference instant.
func (p Player) ValidateAt(now time.Time) bool {
	if strings.TrimSpace(p.UserID) == "" || !p.hasCreator() {
		return false
	}
	name := strings.TrimSpace(p.Name)
	if name == "" || utf8.RuneCountInString(name) > MaxPlayerNameLen {
		return false
	}
	if p.DateOfBirth.IsZero() || !DateOf(p.DateOfBirth).Before(Today(now)) {
		return false
	}
	if p.Gender != nil && utf8.RuneCountInString(*p.Gender) > MaxGenderLen {
		return false
	}
	if p.PhotoURL != nil && !IsAbsoluteHTTPURL(*p.PhotoURL) {
		return false
	}
	return true
}

// UpdateLastModified stamps the update pair with the current UTC time.
func (p *Player) UpdateLastModified(userID string) error {
	return p.Touch(userID, time.Now())
}

// CalculateAge returns completed years as of today.
func (p Player) CalculateAge() int { return p.CalculateAgeAt(time.Now().UTC()) }

// CalculateAgeAt returns completed years between DateOfBirth and now.
// A Feb 29 birthday is reached on Mar 1 in non-leap years.
func (p Player) CalculateAgeAt(now time.Time) int {
	if p.DateOfBirth.IsZero() {
		return 0
	}
	dob := p.DateOfBirth.UTC()
	now = now.UTC()
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// IsAbsoluteHTTPURL accepts http/https URLs with a host, up to MaxPhotoURLLen.
func IsAbsoluteHTTPURL(raw string) bool {
	if raw == "" || len(raw) > MaxPhotoURLLen {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}
