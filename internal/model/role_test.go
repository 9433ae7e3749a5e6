package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleValid(t *testing.T) {
	for _, role := range []Role{RoleUser, RoleProfessional, RoleAdmin} {
		assert.True(t, role.Valid(), role)
	}
	assert.False(t, Role("").Valid())
	assert.False(t, Role("coach").Valid())
}

func TestSessionRoleHelpers(t *testing.T) {
	var none *Session
	assert.False(t, none.IsAdmin())
	assert.False(t, none.IsProfessional())

	assert.True(t, (&Session{Role: RoleProfessional}).IsProfessional())
	assert.False(t, (&Session{Role: RoleUser}).IsProfessional())
	assert.True(t, (&Session{Role: RoleAdmin}).IsAdmin())
}
