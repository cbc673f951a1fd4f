package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-api/internal/config"
)

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()

	assert.Len(t, p, 6)
	for resource, access := range p {
		assert.Equal(t, RoleUser, access.Read, resource)
		assert.Equal(t, RoleAdmin, access.Write, resource)
	}
	assert.Equal(t, DefaultAccess, p.For("unknown"))
}

func TestPolicy_Apply(t *testing.T) {
	base := DefaultPolicy()

	got, err := base.Apply(map[string]config.AccessRule{
		ResourceHelpRequest: {Write: "role_user"},
		ResourceArticle:     {Read: "admin"},
	})
	require.NoError(t, err)

	assert.Equal(t, Access{Read: RoleUser, Write: RoleUser}, got.For(ResourceHelpRequest))
	assert.Equal(t, Access{Read: RoleAdmin, Write: RoleAdmin}, got.For(ResourceArticle))
	assert.Equal(t, DefaultAccess, got.For(ResourceOrganization))
	assert.Equal(t, DefaultAccess, base.For(ResourceHelpRequest), "base policy must not change")
}

func TestPolicy_ApplyRejectsUnknown(t *testing.T) {
	_, err := DefaultPolicy().Apply(map[string]config.AccessRule{"users": {Read: "USER"}})
	assert.ErrorContains(t, err, `unknown resource "users"`)

	_, err = DefaultPolicy().Apply(map[string]config.AccessRule{ResourceArticle: {Write: "OWNER"}})
	assert.ErrorContains(t, err, "invalid role")
}

func TestPolicy_ApplyEmpty(t *testing.T) {
	got, err := DefaultPolicy().Apply(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultPolicy(), got)
}
