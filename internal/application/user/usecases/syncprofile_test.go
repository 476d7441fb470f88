package usecases

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelgate-inc/reelgate/internal/domain/user"
	"github.com/reelgate-inc/reelgate/internal/shared/biztime"
	"github.com/reelgate-inc/reelgate/internal/shared/errors"
	"github.com/reelgate-inc/reelgate/internal/shared/logger"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type mockProfileRepository struct {
	profiles map[string]*user.Profile
	upserts  int

	GetErr    error
	UpsertErr error
}

func newMockProfileRepository() *mockProfileRepository {
	return &mockProfileRepository{profiles: make(map[string]*user.Profile)}
}

func (m *mockProfileRepository) Upsert(ctx context.Context, p *user.Profile) error {
	if m.UpsertErr != nil {
		return m.UpsertErr
	}
	m.upserts++
	m.profiles[p.UserID()] = p
	return nil
}

func (m *mockProfileRepository) GetByUserID(ctx context.Context, userID string) (*user.Profile, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	p, ok := m.profiles[userID]
	if !ok {
		return nil, user.ErrProfileNotFound
	}
	return p, nil
}

func newSyncUseCase(repo *mockProfileRepository) *SyncProfileUseCase {
	return NewSyncProfileUseCase(repo, biztime.Fixed(testNow), logger.NewNopLogger())
}

func TestSyncProfile_CreatesOnFirstSight(t *testing.T) {
	repo := newMockProfileRepository()

	p, err := newSyncUseCase(repo).Execute(context.Background(), SyncProfileCommand{
		UserID: "user-1", Email: "Ada@Example.com", DisplayName: "Ada",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.upserts)
	assert.Equal(t, "ada@example.com", p.Email())
	assert.Equal(t, testNow, p.CreatedAt())
}

func TestSyncProfile_UnchangedClaimsDoNotWrite(t *testing.T) {
	repo := newMockProfileRepository()
	uc := newSyncUseCase(repo)
	cmd := SyncProfileCommand{UserID: "user-1", Email: "ada@example.com", DisplayName: "Ada"}

	_, err := uc.Execute(context.Background(), cmd)
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.upserts)

	cmd.DisplayName = "Ada L."
	p, err := uc.Execute(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.upserts)
	assert.Equal(t, "Ada L.", p.DisplayName())
}

func TestSyncProfile_Errors(t *testing.T) {
	_, err := newSyncUseCase(newMockProfileRepository()).Execute(context.Background(), SyncProfileCommand{})
	assert.True(t, errors.IsValidationError(err))

	repo := newMockProfileRepository()
	repo.GetErr = stderrors.New("db down")
	_, err = newSyncUseCase(repo).Execute(context.Background(), SyncProfileCommand{UserID: "user-1"})
	assert.ErrorIs(t, err, repo.GetErr)

	repo = newMockProfileRepository()
	repo.UpsertErr = stderrors.New("read-only")
	_, err = newSyncUseCase(repo).Execute(context.Background(), SyncProfileCommand{UserID: "user-1"})
	assert.ErrorIs(t, err, repo.UpsertErr)
}
