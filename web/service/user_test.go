package service

import (
	"testing"

	"github.com/jvlcode/goblog/database"
	"github.com/jvlcode/goblog/database/model"

	"github.com/stretchr/testify/assert"
)

func TestRegisterHashesPassword(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}

	user, err := service.Register("vijay", "vijay@example.com", "sup3rsecret")
	assert.NoError(t, err)
	assert.NotEqual(t, "sup3rsecret", user.Password)
	assert.NotEmpty(t, user.Password)

	// The stored credentials authenticate.
	assert.NotNil(t, service.CheckUser("vijay", "sup3rsecret"))
	assert.Nil(t, service.CheckUser("vijay", "wrong"))
	assert.Nil(t, service.CheckUser("nobody", "sup3rsecret"))
}

func TestRegisterAddsReadersGroupOnce(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}

	first, err := service.Register("alice", "alice@example.com", "password123")
	assert.NoError(t, err)
	second, err := service.Register("bob", "bob@example.com", "password123")
	assert.NoError(t, err)

	var count int64
	db := database.GetDB()
	assert.NoError(t, db.Model(&model.Group{}).Where("name = ?", model.ReadersGroup).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// Membership grants view_post through the group.
	assert.True(t, first.HasPerm(model.PermViewPost))
	assert.True(t, second.HasPerm(model.PermViewPost))
	assert.False(t, first.HasPerm(model.PermAddPost))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}

	_, err := service.Register("carol", "carol@example.com", "password123")
	assert.NoError(t, err)

	_, err = service.Register("carol", "other@example.com", "password123")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = service.Register("carol2", "carol@example.com", "password123")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestGetUserByEmail(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}

	registered, err := service.Register("dave", "dave@example.com", "password123")
	assert.NoError(t, err)

	user, err := service.GetUserByEmail("dave@example.com")
	assert.NoError(t, err)
	assert.Equal(t, registered.Id, user.Id)

	_, err = service.GetUserByEmail("nobody@example.com")
	assert.True(t, database.IsNotFound(err))
}

func TestUpdatePassword(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}

	user, err := service.Register("erin", "erin@example.com", "oldpassword")
	assert.NoError(t, err)

	assert.NoError(t, service.UpdatePassword(user.Id, "newpassword1"))
	assert.Nil(t, service.CheckUser("erin", "oldpassword"))
	assert.NotNil(t, service.CheckUser("erin", "newpassword1"))
}

func TestAdminHasAllPerms(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}

	// The seeded admin short-circuits every capability check.
	admin, err := service.GetUser(1)
	assert.NoError(t, err)
	assert.True(t, admin.IsAdmin)
	assert.True(t, admin.HasPerm(model.PermAddPost))
	assert.True(t, admin.HasPerm(model.PermCanPublish))
}

func TestAnonymousHasNoPerms(t *testing.T) {
	var anonymous *model.User
	assert.False(t, anonymous.HasPerm(model.PermViewPost))
}
