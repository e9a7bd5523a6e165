package settlement

import "github.com/shopspring/decimal"

// conceptAmount prices a day factor against a daily salary. The result is
// rounded to cents exactly once, half up; totals sum already-rounded leaves
// and are never re-rounded.
func conceptAmount(factor float64, dailySalary decimal.Decimal) Concept {
	amount := dailySalary.Mul(decimal.NewFromFloat(factor)).Round(2)
	return Concept{Factor: factor, DailySalary: dailySalary, Amount: amount}
}

func baseAmounts(factors BaseFactors, dailySalary decimal.Decimal) BaseAmounts {
	amounts := BaseAmounts{
		WorkedDays:      conceptAmount(factors.WorkedDays, dailySalary),
		SeventhDay:      conceptAmount(factors.SeventhDay, dailySalary),
		Vacation:        conceptAmount(factors.Vacation, dailySalary),
		VacationPremium: conceptAmount(factors.VacationPremium, dailySalary),
		Aguinaldo:       conceptAmount(factors.Aguinaldo, dailySalary),
	}
	amounts.Total = amounts.WorkedDays.Amount.
		Add(amounts.SeventhDay.Amount).
		Add(amounts.Vacation.Amount).
		Add(amounts.VacationPremium.Amount).
		Add(amounts.Aguinaldo.Amount)
	return amounts
}

// liquidationAmounts prices the severance concepts. The seniority premium is
// priced at the daily salary capped at a multiple of the applicable minimum
// wage; the gratification takes the days-based amount when days were given
// and falls back to the flat peso figure otherwise.
func liquidationAmounts(factors LiquidationFactors, in LiquidationInput, dailySalary decimal.Decimal, borderZone bool, caps Caps) LiquidationAmounts {
	capped := dailySalary
	capValue := decimal.NewFromFloat(caps.minimumWage(borderZone) * caps.SeniorityPremiumCapMultiple)
	if capValue.IsPositive() && capped.GreaterThan(capValue) {
		capped = capValue
	}

	amounts := LiquidationAmounts{
		Severance:        conceptAmount(factors.Severance, dailySalary),
		YearsIndemnity:   conceptAmount(factors.YearsIndemnity, dailySalary),
		SeniorityPremium: conceptAmount(factors.SeniorityPremium, capped),
	}

	switch {
	case factors.Gratification > 0:
		amounts.Gratification = conceptAmount(factors.Gratification, dailySalary)
	case in.GratificationType != "" && in.GratificationPesos.IsPositive():
		amounts.Gratification = Concept{DailySalary: dailySalary, Amount: in.GratificationPesos.Round(2)}
	default:
		amounts.Gratification = Concept{DailySalary: dailySalary, Amount: decimal.Zero.Round(2)}
	}

	amounts.Total = amounts.Severance.Amount.
		Add(amounts.YearsIndemnity.Amount).
		Add(amounts.SeniorityPremium.Amount).
		Add(amounts.Gratification.Amount)
	return amounts
}
