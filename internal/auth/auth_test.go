package auth

import (
	"context"
	"testing"
	"time"

	"shopfront/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuer_RoundTrip(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)
	user := model.User{ID: uuid.New(), Email: "staff@example.com", Role: model.RoleManager, IsStaff: true}

	token, err := issuer.Generate(user)
	require.NoError(t, err)

	p, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, p.UserID)
	assert.Equal(t, user.Email, p.Email)
	assert.Equal(t, model.RoleManager, p.Role)
	assert.True(t, p.IsStaff)
}

func TestIssuer_ParseRejects(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)
	user := model.User{ID: uuid.New(), Email: "a@example.com", Role: model.RoleCustomer}

	expiredIssuer := NewIssuer("secret", time.Hour)
	expiredIssuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiredIssuer.Generate(user)
	require.NoError(t, err)

	wrongKey, err := NewIssuer("other", time.Hour).Generate(user)
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "not-a-uuid",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "Garbage", token: "not-a-token"},
		{name: "Expired", token: expired},
		{name: "Wrong key", token: wrongKey},
		{name: "Unsigned", token: unsigned},
		{name: "Bad subject", token: badSubject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issuer.Parse(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestPrincipal_CanManageOrders(t *testing.T) {
	tests := []struct {
		name     string
		p        Principal
		expected bool
	}{
		{name: "Customer", p: Principal{Role: model.RoleCustomer}, expected: false},
		{name: "Seller", p: Principal{Role: model.RoleSeller}, expected: false},
		{name: "Manager", p: Principal{Role: model.RoleManager}, expected: true},
		{name: "Admin", p: Principal{Role: model.RoleAdmin}, expected: true},
		{name: "Staff customer", p: Principal{Role: model.RoleCustomer, IsStaff: true}, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.p.CanManageOrders())
		})
	}
}

func TestContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	p := Principal{UserID: uuid.New(), Role: model.RoleAdmin}
	got, ok := FromContext(WithPrincipal(context.Background(), p))
	require.True(t, ok)
	assert.Equal(t, p, got)
}
