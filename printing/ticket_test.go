package printing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"cresly-pos/models"
	"cresly-pos/utils"
)

func snapshot() utils.OrderSnapshot {
	note := "sin aji"
	return utils.OrderSnapshot{
		ID:            12,
		Number:        "012",
		Type:          models.OrderTypeDineIn,
		PaymentMethod: models.PaymentCash,
		Total:         decimal.RequireFromString("25.50"),
		CreatedAt:     time.Date(2026, 9, 1, 13, 45, 0, 0, time.Local),
		Lines: []utils.LineSnapshot{
			{
				Kind:       models.LineKindCombo,
				Quantity:   2,
				Components: []string{"Sopa de pollo", "Arroz con pollo", "Chicha morada"},
				Note:       &note,
			},
			{
				Kind:       models.LineKindExtra,
				Quantity:   1,
				Components: []string{"Huevo frito"},
			},
		},
	}
}

func TestTicketDineInWithTable(t *testing.T) {
	o := snapshot()
	table := 4
	o.TableNumber = &table

	lines := Ticket(&o)

	require.Equal(t, "RESTAURANTE CRESLY", lines[0])
	require.Equal(t, "Pedido #012", lines[1])
	require.Equal(t, "Fecha: 2026-09-01", lines[2])
	require.Equal(t, "Hora: 13:45", lines[3])
	require.Contains(t, lines, "Mesa: 4")
	require.Contains(t, lines, "PRODUCTOS:")
	require.Contains(t, lines, "2x Almuerzo")
	require.Contains(t, lines, " - Sopa de pollo")
	require.Contains(t, lines, " - Arroz con pollo")
	require.Contains(t, lines, "  Nota: sin aji")
	require.Contains(t, lines, "1x Extra")
	require.Contains(t, lines, "TOTAL: $25.50")
	require.Equal(t, "Forma de pago: Efectivo", lines[len(lines)-1])

	for _, line := range lines {
		require.LessOrEqual(t, len(line), LineWidth)
	}
}

func TestTicketDineInWithoutTable(t *testing.T) {
	o := snapshot()

	lines := Ticket(&o)
	require.Contains(t, lines, "Tipo: Servirse")
	require.NotContains(t, lines, "Mesa: 0")
}

func TestTicketToGoWithTransfer(t *testing.T) {
	o := snapshot()
	o.Type = models.OrderTypeToGo
	o.PaymentMethod = models.PaymentTransfer

	lines := Ticket(&o)
	require.Contains(t, lines, "Tipo: Llevar")
	require.Contains(t, lines, "Forma de pago: Transferencia")
}

func TestTicketReservedShowsSubtypeAndContact(t *testing.T) {
	o := snapshot()
	o.Type = models.OrderTypeReserved
	subtype := "delivery"
	contact := "Juan Perez 999888777"
	o.ReservedSubtype = &subtype
	o.Contact = &contact

	lines := Ticket(&o)
	require.Contains(t, lines, "Tipo: Reservado (delivery)")
	require.Contains(t, lines, "Contacto: Juan Perez 999888777")
}

func TestTicketGeneralNotes(t *testing.T) {
	o := snapshot()
	obs := "entregar a las 2pm"
	o.GeneralNotes = &obs

	lines := Ticket(&o)
	require.Contains(t, lines, "Obs: entregar a las 2pm")
}
