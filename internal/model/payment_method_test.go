package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePaymentMethod(t *testing.T) {
	cases := []struct {
		raw  string
		want PaymentMethod
		ok   bool
	}{
		{"efectivo", MethodCash, true},
		{"Efectivo", MethodCash, true},
		{"  EFECTIVO  ", MethodCash, true},
		{"cash", MethodCash, true},
		{"tarjeta – crédito", MethodCardCredit, true},
		{"Tarjeta - Credito", MethodCardCredit, true},
		{"tarjeta debito", MethodCardDebit, true},
		{"Transferencia", MethodTransfer, true},
		{"mercado pago", MethodMercadoPago, true},
		{"crédito", MethodStoreCredit, true},
		{"vales de despensa", PaymentMethod("vales de despensa"), false},
	}
	for _, tc := range cases {
		got, ok := ParsePaymentMethod(tc.raw)
		assert.Equal(t, tc.want, got, "raw=%q", tc.raw)
		assert.Equal(t, tc.ok, ok, "raw=%q", tc.raw)
	}
}

func TestIsCash(t *testing.T) {
	assert.True(t, MethodCash.IsCash())
	assert.False(t, MethodCardDebit.IsCash())
	assert.False(t, MethodStoreCredit.IsCash())

	// Store credit must never count as drawer cash even through aliases.
	m, _ := ParsePaymentMethod("credito")
	assert.False(t, m.IsCash())
}

func TestMovementDirection(t *testing.T) {
	assert.Equal(t, DirectionOut, MovementExpense.Direction())
	assert.Equal(t, DirectionIn, MovementIncome.Direction())
	assert.Equal(t, DirectionIn, MovementOpening.Direction())
	assert.Equal(t, DirectionIn, MovementCustomerPayment.Direction())
	assert.False(t, CashMovementType("withdrawal").Valid())
}
