package user

import "context"

type ProfileRepository interface {
	// Upsert inserts the profile or overwrites the contact columns of an existing one.
	Upsert(ctx context.Context, p *Profile) error
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
}
