package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollowpress/hollow-press/pkg/idgen"
)

func TestTokenRoundTripAndAdmin(t *testing.T) {
	require.NoError(t, idgen.InitSqidsEncoderWithSeed("test-seed"))
	secret := []byte("secret")

	tests := []struct {
		name      string
		groupID   uint
		wantAdmin bool
	}{
		{name: "管理员组", groupID: 1, wantAdmin: true},
		{name: "普通用户组", groupID: 2, wantAdmin: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := GenerateToken(10, tt.groupID, secret, time.Minute)
			require.NoError(t, err)

			claims, err := ParseToken(token, secret)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAdmin, IsAdmin(claims))
		})
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	require.NoError(t, idgen.InitSqidsEncoderWithSeed("test-seed"))

	token, err := GenerateToken(10, 1, []byte("secret"), time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, []byte("other"))
	assert.Error(t, err)
}

func TestIsAdminRejectsForeignEntity(t *testing.T) {
	require.NoError(t, idgen.InitSqidsEncoderWithSeed("test-seed"))

	// 用户 ID 1 与管理员组 ID 数值相同，但实体类型不同
	userID, err := idgen.GeneratePublicID(1, idgen.EntityTypeUser)
	require.NoError(t, err)

	assert.False(t, IsAdmin(&CustomClaims{UserGroupID: userID}))
	assert.False(t, IsAdmin(nil))
	assert.False(t, IsAdmin(&CustomClaims{}))
}
