package printing

import (
	"fmt"

	"cresly-pos/models"
	"cresly-pos/utils"
)

// LineWidth is the printable width of the kitchen thermal printers.
const LineWidth = 45

var kindLabels = map[string]string{
	models.LineKindCombo:      "Almuerzo",
	models.LineKindSoupOnly:   "Sopa",
	models.LineKindSecondOnly: "Segundo",
	models.LineKindExtra:      "Extra",
}

var paymentLabels = map[string]string{
	models.PaymentCash:     "Efectivo",
	models.PaymentTransfer: "Transferencia",
}

// Ticket renders an order snapshot as the plain text lines sent to the print
// relay. The relay owns the ruler framing and the paper cut.
func Ticket(o *utils.OrderSnapshot) []string {
	lines := []string{
		"RESTAURANTE CRESLY",
		fmt.Sprintf("Pedido #%s", o.Number),
		fmt.Sprintf("Fecha: %s", o.CreatedAt.Format("2006-01-02")),
		fmt.Sprintf("Hora: %s", o.CreatedAt.Format("15:04")),
		"",
	}

	switch o.Type {
	case models.OrderTypeDineIn:
		if o.TableNumber != nil {
			lines = append(lines, fmt.Sprintf("Mesa: %d", *o.TableNumber))
		} else {
			lines = append(lines, "Tipo: Servirse")
		}
	case models.OrderTypeToGo:
		lines = append(lines, "Tipo: Llevar")
	case models.OrderTypeReserved:
		label := "Tipo: Reservado"
		if o.ReservedSubtype != nil {
			label = fmt.Sprintf("Tipo: Reservado (%s)", *o.ReservedSubtype)
		}
		lines = append(lines, label)
	}
	if o.Contact != nil && *o.Contact != "" {
		lines = append(lines, fmt.Sprintf("Contacto: %s", *o.Contact))
	}
	if o.GeneralNotes != nil && *o.GeneralNotes != "" {
		lines = append(lines, fmt.Sprintf("Obs: %s", *o.GeneralNotes))
	}

	lines = append(lines, "", "PRODUCTOS:")
	for _, item := range o.Lines {
		label, ok := kindLabels[item.Kind]
		if !ok {
			label = item.Kind
		}
		lines = append(lines, fmt.Sprintf("%dx %s", item.Quantity, label))
		for _, component := range item.Components {
			lines = append(lines, fmt.Sprintf(" - %s", component))
		}
		if item.Note != nil && *item.Note != "" {
			lines = append(lines, fmt.Sprintf("  Nota: %s", *item.Note))
		}
	}

	lines = append(lines,
		"",
		fmt.Sprintf("TOTAL: $%s", o.Total.StringFixed(2)),
		fmt.Sprintf("Forma de pago: %s", paymentLabels[o.PaymentMethod]),
	)
	return lines
}
