package service

import (
	"lms_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfileLazilyCreates(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice", model.Student)

	var count int64
	require.NoError(t, env.db.Model(&model.Profile{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	profile, err := env.user.GetProfile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, profile.UserID)
	assert.Equal(t, "alice", profile.User.Username)

	// 第二次取回同一份
	again, err := env.user.GetProfile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, again.ID)

	require.NoError(t, env.db.Model(&model.Profile{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpdateProfileTouchesUserNames(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice", model.Student)

	bio := "Gopher"
	firstName := "Alice"
	profile, err := env.user.UpdateProfile(user.ID, ProfileUpdate{
		Bio:       &bio,
		FirstName: &firstName,
	})
	require.NoError(t, err)
	assert.Equal(t, "Gopher", profile.Bio)
	assert.Equal(t, "Alice", profile.User.FirstName)

	stored, err := env.user.GetUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", stored.FirstName)
}
