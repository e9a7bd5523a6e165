package settlement

import "github.com/shopspring/decimal"

// Calculate runs the full pipeline: validation, tenure, factors, amounts,
// aggregation and nets. It is a pure function of its input; defaults are
// resolved by the caller before entry, and recalculation re-enters here with
// merged input and replaces every derived field.
func Calculate(in Input, caps Caps) (*Result, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}

	result := &Result{
		Metadata: Metadata{
			DaysWorked:             DaysWorked(in.HireDate, in.TerminationDate),
			YearsWorked:            YearsWorked(in.HireDate, in.TerminationDate),
			DaysPerMonth:           in.DaysPerMonth,
			DaysPerMonthOverridden: in.DaysPerMonthOverridden,
			DaysPerMonthReason:     in.DaysPerMonthReason,
			SuperiorBenefits:       in.SuperiorBenefits,
		},
	}

	result.Factors.Finiquito = baseFactors(
		in.HireDate, in.TerminationDate,
		in.WorkedDays, in.VacationDays, in.VacationPremiumPercent, in.AguinaldoDays,
		in.PendingVacationDays, in.PendingVacationPremium,
	)
	if err := result.Factors.Finiquito.check(); err != nil {
		return nil, err
	}
	result.Amounts.Finiquito = baseAmounts(result.Factors.Finiquito, in.DailySalary)

	if in.Liquidation != nil {
		factors := liquidationFactors(*in.Liquidation, result.Metadata.YearsWorked)
		if err := factors.check(); err != nil {
			return nil, err
		}
		amounts := liquidationAmounts(factors, *in.Liquidation, in.DailySalary, in.BorderZone, caps)
		result.Factors.Liquidacion = &factors
		result.Amounts.Liquidacion = &amounts
	}

	if in.Complement != nil {
		result.Metadata.RealDaysWorked = DaysWorked(in.Complement.RealHireDate, in.TerminationDate)
		result.Metadata.RealYearsWorked = YearsWorked(in.Complement.RealHireDate, in.TerminationDate)
		factors := baseFactors(
			in.Complement.RealHireDate, in.TerminationDate,
			in.WorkedDays, in.VacationDays, in.VacationPremiumPercent, in.AguinaldoDays,
			in.Complement.PendingVacationDays, in.Complement.PendingVacationPremium,
		)
		if err := factors.check(); err != nil {
			return nil, err
		}
		amounts := baseAmounts(factors, in.Complement.RealDailySalary)
		result.Factors.Complemento = &factors
		result.Amounts.Complemento = &amounts
	}

	result.Deducciones = DeductionTotals{
		ISR:       in.Deductions.ISR.Round(2),
		Subsidy:   in.Deductions.Subsidy.Round(2),
		Infonavit: in.Deductions.Infonavit.Round(2),
		Fonacot:   in.Deductions.Fonacot.Round(2),
		Other:     in.Deductions.Other.Round(2),
	}
	result.Deducciones.Total = result.Deducciones.ISR.
		Add(result.Deducciones.Subsidy).
		Add(result.Deducciones.Infonavit).
		Add(result.Deducciones.Fonacot).
		Add(result.Deducciones.Other)

	result.Totales = totals(result)
	return result, nil
}

// totals applies the fixed allocation rule: every manual deduction is charged
// once, entirely against Finiquito. The other component nets equal their
// perception totals, and the grand total subtracts deductions exactly once.
func totals(result *Result) Totals {
	t := Totals{
		Finiquito:   result.Amounts.Finiquito.Total.Sub(result.Deducciones.Total),
		Liquidacion: decimal.Zero,
		Complemento: decimal.Zero,
	}
	perceptions := result.Amounts.Finiquito.Total
	if result.Amounts.Liquidacion != nil {
		t.Liquidacion = result.Amounts.Liquidacion.Total
		perceptions = perceptions.Add(result.Amounts.Liquidacion.Total)
	}
	if result.Amounts.Complemento != nil {
		t.Complemento = result.Amounts.Complemento.Total
		perceptions = perceptions.Add(result.Amounts.Complemento.Total)
	}
	t.TotalAPagar = perceptions.Sub(result.Deducciones.Total)
	return t
}
