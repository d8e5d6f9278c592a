package payroll

import "github.com/shopspring/decimal"

type Line struct {
	Type   string
	Amount decimal.Decimal
}

type Totals struct {
	Gross      decimal.Decimal `json:"gross"`
	Deductions decimal.Decimal `json:"deductions"`
	Net        decimal.Decimal `json:"net"`
}

// ComputeTotals adds earning lines to the basic salary and subtracts
// deduction lines. Lines of any other type are ignored.
func ComputeTotals(basic decimal.Decimal, lines []Line) Totals {
	gross := basic
	deductions := decimal.Zero
	for _, line := range lines {
		switch line.Type {
		case ElementTypeEarning:
			gross = gross.Add(line.Amount)
		case ElementTypeDeduction:
			deductions = deductions.Add(line.Amount)
		}
	}
	return Totals{
		Gross:      gross.Round(2),
		Deductions: deductions.Round(2),
		Net:        gross.Sub(deductions).Round(2),
	}
}

func (p Profile) Totals() Totals {
	return ComputeTotals(p.BasicSalary, []Line{
		{Type: ElementTypeEarning, Amount: p.Allowances},
		{Type: ElementTypeDeduction, Amount: p.Deductions},
	})
}

func (t Totals) Add(other Totals) Totals {
	return Totals{
		Gross:      t.Gross.Add(other.Gross),
		Deductions: t.Deductions.Add(other.Deductions),
		Net:        t.Net.Add(other.Net),
	}
}
