package users

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tripbazaar/travel-backend/pkg/config"
	"github.com/tripbazaar/travel-backend/pkg/db/models"
	pkgerrors "github.com/tripbazaar/travel-backend/pkg/errors"
	"github.com/tripbazaar/travel-backend/pkg/security"
	"github.com/tripbazaar/travel-backend/pkg/types"
)

type stubRepo struct {
	byMobile map[string]*models.User
	created  []*models.User
	findErr  error
}

func newStubRepo() *stubRepo {
	return &stubRepo{byMobile: map[string]*models.User{}}
}

func (s *stubRepo) WithTx(*gorm.DB) Repository { return s }

func (s *stubRepo) Create(_ context.Context, user *models.User) (*models.User, error) {
	user.ID = uuid.New()
	s.created = append(s.created, user)
	s.byMobile[user.Mobile] = user
	return user, nil
}

func (s *stubRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	for _, user := range s.byMobile {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) FindByMobile(_ context.Context, mobile string) (*models.User, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	user, ok := s.byMobile[mobile]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func newTestService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo, config.PasswordConfig{})
	require.NoError(t, err)
	return svc
}

func TestEnsureBookingUser_CreatesVerifiedAccount(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)

	result, err := svc.EnsureBookingUser(context.Background(), types.ContactDetail{
		Name:   "Asha",
		Mobile: "9876543210",
		Email:  "asha@example.com",
	})

	require.NoError(t, err)
	require.True(t, result.Created)
	require.NotEmpty(t, result.TempPassword)
	require.Len(t, repo.created, 1)

	user := repo.created[0]
	assert.True(t, user.Verified)
	assert.Equal(t, "9876543210", user.Mobile)

	ok, err := security.VerifyPassword(result.TempPassword, user.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEnsureBookingUser_ReusesExistingAccount(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)

	first, err := svc.EnsureBookingUser(context.Background(), types.ContactDetail{
		Name:   "Asha",
		Mobile: "9876543210",
	})
	require.NoError(t, err)

	second, err := svc.EnsureBookingUser(context.Background(), types.ContactDetail{
		Name:   "Someone",
		Mobile: "9876543210",
	})

	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Empty(t, second.TempPassword)
	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Len(t, repo.created, 1)
}

func TestEnsureBookingUser_RequiresMobile(t *testing.T) {
	svc := newTestService(t, newStubRepo())

	_, err := svc.EnsureBookingUser(context.Background(), types.ContactDetail{Name: "Asha"})

	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestEnsureBookingUser_LookupFailure(t *testing.T) {
	repo := newStubRepo()
	repo.findErr = assert.AnError
	svc := newTestService(t, repo)

	_, err := svc.EnsureBookingUser(context.Background(), types.ContactDetail{Mobile: "9876543210"})

	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeInternal, pkgerrors.As(err).Code())
	assert.Empty(t, repo.created)
}
