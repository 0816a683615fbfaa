package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleString(t *testing.T) {
	assert.Equal(t, "Admin", RoleAdmin.String())
	assert.Equal(t, "Manager", RoleManager.String())
	assert.Equal(t, "User", RoleUser.String())
	assert.Equal(t, "Unknown", Role(99).String())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "New", StatusNew.String())
	assert.Equal(t, "In progress", StatusInProgress.String())
	assert.Equal(t, "Paused", StatusPaused.String())
	assert.Equal(t, "Completed", StatusCompleted.String())
	assert.Equal(t, "Cancelled", StatusCancelled.String())
	assert.Equal(t, "Unknown", Status(99).String())
}

func TestStatusesDisplayOrder(t *testing.T) {
	assert.Equal(t, []Status{StatusNew, StatusInProgress, StatusPaused, StatusCompleted, StatusCancelled}, Statuses)
}
