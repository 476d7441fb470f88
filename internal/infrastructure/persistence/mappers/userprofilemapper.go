package mappers

import (
	"github.com/reelgate-inc/reelgate/internal/domain/user"
	"github.com/reelgate-inc/reelgate/internal/infrastructure/persistence/models"
)

func UserProfileToModel(p *user.Profile) *models.UserProfileModel {
	var email *string
	if p.HasEmail() {
		e := p.Email()
		email = &e
	}
	return &models.UserProfileModel{
		UserID:      p.UserID(),
		Email:       email,
		DisplayName: p.DisplayName(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}

func UserProfileToDomain(m *models.UserProfileModel) *user.Profile {
	var email string
	if m.Email != nil {
		email = *m.Email
	}
	return user.ReconstructProfile(m.UserID, email, m.DisplayName, m.CreatedAt, m.UpdatedAt)
}
