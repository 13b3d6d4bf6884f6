package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_Principal(t *testing.T) {
	var p Principal = &User{ID: 7, Username: "mario", Staff: false, Groups: []string{RoleDeliveryCrew}}

	assert.Equal(t, uint(7), p.UserID())
	assert.False(t, p.IsStaff())
	assert.True(t, p.HasRole(RoleDeliveryCrew))
	assert.False(t, p.HasRole(RoleManager))
}

func TestCanManageGroups(t *testing.T) {
	assert.True(t, CanManageGroups(&User{Staff: true}))
	assert.True(t, CanManageGroups(&User{Groups: []string{RoleManager}}))
	assert.False(t, CanManageGroups(&User{Groups: []string{RoleDeliveryCrew}}))
	assert.False(t, CanManageGroups(&User{}))
}
