package model

import "strings"

// PaymentMethod is the canonical set of payment methods accepted at the till.
// The canonical values keep the Spanish display names printed on tickets.
type PaymentMethod string

const (
	MethodCash        PaymentMethod = "Efectivo"
	MethodCardCredit  PaymentMethod = "Tarjeta – Crédito"
	MethodCardDebit   PaymentMethod = "Tarjeta – Débito"
	MethodTransfer    PaymentMethod = "Transferencia"
	MethodMercadoPago PaymentMethod = "MercadoPago"
	// MethodStoreCredit charges the sale (or part of it) to the customer's
	// running credit balance. It never enters the drawer.
	MethodStoreCredit PaymentMethod = "Crédito"
)

// accent-insensitive, dash-insensitive lookup keys
var methodAliases = map[string]PaymentMethod{
	"efectivo":          MethodCash,
	"cash":              MethodCash,
	"tarjeta - credito": MethodCardCredit,
	"tarjeta credito":   MethodCardCredit,
	"tarjeta - debito":  MethodCardDebit,
	"tarjeta debito":    MethodCardDebit,
	"transferencia":     MethodTransfer,
	"mercadopago":       MethodMercadoPago,
	"mercado pago":      MethodMercadoPago,
	"credito":           MethodStoreCredit,
}

var methodNormalizer = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u",
	"–", "-", "—", "-",
)

// ParsePaymentMethod canonicalizes a raw method string. Capitalization,
// accents and dash variants all resolve to the same constant, so a sale
// recorded as "efectivo" still counts as cash during reconciliation.
// Unknown methods are preserved verbatim (ok=false) — they show up in the
// per-method totals but are never classified as cash.
func ParsePaymentMethod(raw string) (PaymentMethod, bool) {
	key := strings.Join(strings.Fields(methodNormalizer.Replace(strings.ToLower(strings.TrimSpace(raw)))), " ")
	if m, ok := methodAliases[key]; ok {
		return m, true
	}
	if raw = strings.TrimSpace(raw); raw == "" {
		return "SIN MÉTODO", false
	}
	return PaymentMethod(raw), false
}

// IsCash reports whether the method moves physical cash through the drawer.
func (m PaymentMethod) IsCash() bool { return m == MethodCash }

func (m PaymentMethod) String() string { return string(m) }
