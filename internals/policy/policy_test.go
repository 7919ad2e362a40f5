package policy

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIsOwner(t *testing.T) {
	owner := uuid.New()

	assert.True(t, IsOwner(owner, owner))
	assert.False(t, IsOwner(owner, uuid.New()))

	// a nil owner matches nobody, not even a nil caller
	assert.False(t, IsOwner(uuid.Nil, uuid.Nil))
	assert.False(t, IsOwner(uuid.Nil, owner))
}

func TestIsActionable(t *testing.T) {
	assert.True(t, IsActionable(false, true))
	assert.False(t, IsActionable(true, true))
	assert.False(t, IsActionable(false, false))
	assert.False(t, IsActionable(true, false))
}
