package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"taskdesk/internal/models"
)

func TestSessionLifecycle(t *testing.T) {
	s := New()

	assert.False(t, s.Authenticated())
	assert.Zero(t, s.Current().ID)
	assert.Equal(t, models.RoleUser, s.Current().Role)

	s.Set(models.Identity{ID: 7, Login: "alice", Role: models.RoleAdmin})
	assert.True(t, s.Authenticated())
	assert.Equal(t, "alice", s.Current().Login)
	assert.Equal(t, models.RoleAdmin, s.Current().Role)

	s.Clear()
	assert.False(t, s.Authenticated())
	assert.Empty(t, s.Current().Login)
	assert.Equal(t, models.RoleUser, s.Current().Role)
}
