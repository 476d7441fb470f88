// Package user holds what the storefront knows about a viewer. Identity is
// owned by the external provider; the profile only caches the claims needed
// to contact the viewer outside a request.
package user

import (
	"errors"
	"strings"
	"time"

	vo "github.com/reelgate-inc/reelgate/internal/domain/user/valueobjects"
)

var (
	ErrProfileNotFound = errors.New("user profile not found")
	ErrUserIDRequired  = errors.New("user ID is required")
)

const maxDisplayNameLength = 100

type Profile struct {
	userID      string
	email       *vo.Email
	displayName string
	createdAt   time.Time
	updatedAt   time.Time
}

// NewProfile builds a profile from verified identity claims. An unusable
// email is dropped rather than rejected; the viewer simply gets no mail.
func NewProfile(userID, email, displayName string, now time.Time) (*Profile, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	now = now.UTC()
	p := &Profile{userID: userID, createdAt: now, updatedAt: now}
	p.apply(email, displayName)
	return p, nil
}

func ReconstructProfile(userID, email, displayName string, createdAt, updatedAt time.Time) *Profile {
	p := &Profile{userID: userID, createdAt: createdAt.UTC(), updatedAt: updatedAt.UTC()}
	p.apply(email, displayName)
	return p
}

// UpdateFromClaims refreshes contact data and reports whether anything changed.
// Empty claims never erase what is already known.
func (p *Profile) UpdateFromClaims(email, displayName string, now time.Time) bool {
	before := *p
	p.apply(email, displayName)
	changed := !before.email.Equals(p.email) || before.displayName != p.displayName
	if changed {
		p.updatedAt = now.UTC()
	}
	return changed
}

func (p *Profile) apply(email, displayName string) {
	if e, err := vo.NewEmail(email); err == nil {
		p.email = e
	}
	if name := normalizeName(displayName); name != "" {
		p.displayName = name
	}
}

func normalizeName(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	if r := []rune(name); len(r) > maxDisplayNameLength {
		name = string(r[:maxDisplayNameLength])
	}
	return name
}

func (p *Profile) UserID() string {
	return p.userID
}

// Email returns the contact address or empty when none is known.
func (p *Profile) Email() string {
	return p.email.String()
}

func (p *Profile) HasEmail() bool {
	return p.email != nil
}

func (p *Profile) DisplayName() string {
	return p.displayName
}

// GreetingName falls back to the email local part when no name is known.
func (p *Profile) GreetingName() string {
	if p.displayName != "" {
		return p.displayName
	}
	if local, _, ok := strings.Cut(p.Email(), "@"); ok {
		return local
	}
	return "there"
}

func (p *Profile) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Profile) UpdatedAt() time.Time {
	return p.updatedAt
}
