package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Sync(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := NewAuthService(" Coach@Example.com ")
	authID := uuid.New()

	admin, err := svc.Sync(ctx, authID, "coach@example.com")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, admin.Role)
	assert.Equal(t, "coach", admin.DisplayName)
	assert.Equal(t, authID, admin.AuthID)

	member, err := svc.Sync(ctx, authID, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, RoleUser, member.Role)

	_, err = svc.Sync(ctx, uuid.Nil, "ana@example.com")
	assertValidationError(t, err)

	assert.Equal(t, RoleUser, NewAuthService("").RoleFor(""))
}
