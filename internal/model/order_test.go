package model

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransition(t *testing.T) {
	tests := []struct {
		from     OrderStatus
		to       OrderStatus
		expected bool
	}{
		{OrderStatusPending, OrderStatusPaid, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusPending, OrderStatusPending, false},
		{OrderStatusPaid, OrderStatusShipped, true},
		{OrderStatusPaid, OrderStatusCancelled, true},
		{OrderStatusPaid, OrderStatusPending, false},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusPaid, false},
		{OrderStatusPending, OrderStatus("refunded"), false},
		{OrderStatus("refunded"), OrderStatusPaid, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.from.CanTransition(tt.to))
		})
	}
}

func TestOrderStatus_ValidAndDisplay(t *testing.T) {
	assert.True(t, OrderStatusShipped.Valid())
	assert.False(t, OrderStatus("lost").Valid())
	assert.Equal(t, "Shipped", OrderStatusShipped.Display())
	assert.Equal(t, "Cancelled", OrderStatusCancelled.Display())
	assert.Equal(t, "lost", OrderStatus("lost").Display())
}

func TestDomainError_Kinds(t *testing.T) {
	var domainErr *DomainError

	assert.True(t, errors.As(error(ErrOrderNotFound), &domainErr))
	assert.Equal(t, KindNotFound, domainErr.Kind)
	assert.Equal(t, KindValidation, ErrCartEmpty.Kind)
	assert.Equal(t, KindForbidden, ErrReviewForbidden.Kind)
	assert.Equal(t, KindUnauthenticated, ErrUnauthenticated.Kind)
	assert.Equal(t, "Invalid status transition.", ErrInvalidTransition.Error())
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleSeller.Valid())
	assert.False(t, Role("root").Valid())
}

func TestCartLine_LineTotal(t *testing.T) {
	line := CartLine{CartItem: CartItem{Quantity: 3}}
	line.CurrentPrice = line.CurrentPrice.Add(mustDecimal("19.99"))
	assert.Equal(t, "59.97", line.LineTotal().StringFixed(2))
}

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
