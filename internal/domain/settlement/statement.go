package settlement

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

type DisplayMode string

const (
	DisplayItemized DisplayMode = "itemized"
	DisplayGrouped  DisplayMode = "grouped"
)

// DisplayConfig is supplied by the caller. Groups fold complemento line
// items into user-named buckets keyed by raw field names; label length and
// group-count limits are the renderer's caller's concern, not the engine's.
type DisplayConfig struct {
	Mode   DisplayMode    `json:"mode"`
	Groups []DisplayGroup `json:"groups,omitempty"`
}

type DisplayGroup struct {
	Name   string   `json:"name"`
	Fields []string `json:"fields"`
}

// LineItem exposes one concept with both its display label and the raw field
// name usable as a grouping key.
type LineItem struct {
	Component string          `json:"component"`
	Field     string          `json:"field"`
	Label     string          `json:"label"`
	Amount    decimal.Decimal `json:"amount"`
}

// LineItems lists every computed concept of every enabled component, in
// statement order.
func (r *Result) LineItems() []LineItem {
	items := baseLineItems("finiquito", r.Amounts.Finiquito)
	if r.Amounts.Liquidacion != nil {
		liq := r.Amounts.Liquidacion
		items = append(items,
			LineItem{Component: "liquidacion", Field: "severance", Label: "Indemnización 90 días", Amount: liq.Severance.Amount},
			LineItem{Component: "liquidacion", Field: "yearsIndemnity", Label: "Indemnización 20 días por año", Amount: liq.YearsIndemnity.Amount},
			LineItem{Component: "liquidacion", Field: "seniorityPremium", Label: "Prima de antigüedad", Amount: liq.SeniorityPremium.Amount},
			LineItem{Component: "liquidacion", Field: "gratification", Label: "Gratificación", Amount: liq.Gratification.Amount},
		)
	}
	if r.Amounts.Complemento != nil {
		items = append(items, baseLineItems("complemento", *r.Amounts.Complemento)...)
	}
	return items
}

func baseLineItems(component string, amounts BaseAmounts) []LineItem {
	return []LineItem{
		{Component: component, Field: "workedDays", Label: "Días trabajados", Amount: amounts.WorkedDays.Amount},
		{Component: component, Field: "seventhDay", Label: "Séptimo día", Amount: amounts.SeventhDay.Amount},
		{Component: component, Field: "vacation", Label: "Vacaciones", Amount: amounts.Vacation.Amount},
		{Component: component, Field: "vacationPremium", Label: "Prima vacacional", Amount: amounts.VacationPremium.Amount},
		{Component: component, Field: "aguinaldo", Label: "Aguinaldo", Amount: amounts.Aguinaldo.Amount},
	}
}

// RenderStatement produces the settlement statement PDF. In grouped mode the
// complemento items are folded into the configured buckets; itemized mode
// lists every concept with its label.
func RenderStatement(rec Record, cfg DisplayConfig) ([]byte, error) {
	if cfg.Mode == "" {
		cfg.Mode = DisplayItemized
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	translator := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, translator("Finiquito"))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, translator(fmt.Sprintf("Empleado: %s", rec.Input.EmployeeName)))
	pdf.Ln(6)
	pdf.Cell(0, 7, translator(fmt.Sprintf("Puesto: %s", rec.Input.Position)))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Ingreso: %s   Baja: %s",
		rec.Input.HireDate.Format("2006-01-02"),
		rec.Input.TerminationDate.Format("2006-01-02")))
	pdf.Ln(6)
	pdf.Cell(0, 7, translator(fmt.Sprintf("Salario diario: %s   Salario diario integrado: %s",
		rec.Input.DailySalary.StringFixed(2),
		rec.Input.IntegratedDailySalary.StringFixed(2))))
	pdf.Ln(10)

	items := rec.Result.LineItems()
	if cfg.Mode == DisplayGrouped {
		items = groupItems(items, cfg.Groups)
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(120, 7, translator("Percepción"))
	pdf.Cell(0, 7, "Importe")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for _, item := range items {
		pdf.Cell(120, 6, translator(item.Label))
		pdf.Cell(0, 6, item.Amount.StringFixed(2))
		pdf.Ln(6)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(120, 6, "Total percepciones")
	pdf.Cell(0, 6, rec.Result.Totales.TotalAPagar.Add(rec.Result.Deducciones.Total).StringFixed(2))
	pdf.Ln(6)
	pdf.Cell(120, 6, "Total deducciones")
	pdf.Cell(0, 6, rec.Result.Deducciones.Total.StringFixed(2))
	pdf.Ln(6)
	pdf.Cell(120, 6, "Total a pagar")
	pdf.Cell(0, 6, rec.Result.Totales.TotalAPagar.StringFixed(2))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// groupItems folds complemento items into their configured buckets; finiquito
// and liquidación items always stay itemized. Complemento items not claimed
// by any group remain itemized too.
func groupItems(items []LineItem, groups []DisplayGroup) []LineItem {
	fieldGroup := map[string]string{}
	for _, group := range groups {
		for _, field := range group.Fields {
			fieldGroup[field] = group.Name
		}
	}

	var out []LineItem
	groupIdx := map[string]int{}
	for _, item := range items {
		if item.Component != "complemento" {
			out = append(out, item)
			continue
		}
		name, ok := fieldGroup[item.Field]
		if !ok {
			out = append(out, item)
			continue
		}
		if idx, seen := groupIdx[name]; seen {
			out[idx].Amount = out[idx].Amount.Add(item.Amount)
			continue
		}
		groupIdx[name] = len(out)
		out = append(out, LineItem{Component: "complemento", Field: name, Label: name, Amount: item.Amount})
	}
	return out
}
