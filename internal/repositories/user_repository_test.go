package repositories

import (
	"testing"

	"socialChat/internal/errs"
	"socialChat/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB, firstName string, aiAccess bool) *models.User {
	t.Helper()
	user := &models.User{
		FirstName: firstName,
		LastName:  "Tester",
		Email:     firstName + "@example.com",
		AIAccess:  aiAccess,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestGetUserById(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	seeded := seedUser(t, db, "alice", true)

	user, err := repo.GetUserById(seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.FirstName)
	assert.True(t, user.AIAccess)
}

func TestGetUserByIdNotFound(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	_, err := repo.GetUserById(999)
	assert.ErrorIs(t, err, errs.ErrUserNotFound)
}

func TestGetAllUsersWithPagination(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	seedUser(t, db, "alice", false)
	seedUser(t, db, "bob", false)
	seedUser(t, db, "carol", false)

	page, err := repo.GetAllUsersWithPagination(1, 2)
	require.NoError(t, err)
	assert.Len(t, page.Users, 2)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, "alice", page.Users[0].FirstName)
}

func TestSetUserOnlineStatus(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	seeded := seedUser(t, db, "alice", false)

	isOnline, lastSeen, err := repo.SetUserOnlineStatus(seeded.ID, true)
	require.NoError(t, err)
	assert.True(t, isOnline)
	require.NotNil(t, lastSeen)

	isOnline, _, err = repo.GetUserOnlineStatus(seeded.ID)
	require.NoError(t, err)
	assert.True(t, isOnline)
}

func TestSetUserOnlineStatusUnknownUser(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	_, _, err := repo.SetUserOnlineStatus(999, true)
	assert.ErrorIs(t, err, errs.ErrUserNotFound)
}
