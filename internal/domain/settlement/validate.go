package settlement

import "github.com/shopspring/decimal"

// Validate rejects malformed input before any calculation runs. On failure
// it returns a *ValidationError listing every offending field.
func Validate(in Input) error {
	verr := &ValidationError{}

	if in.EmployeeName == "" {
		verr.add("employeeName", "is required")
	}
	if in.HireDate.IsZero() {
		verr.add("hireDate", "is required")
	}
	if in.TerminationDate.IsZero() {
		verr.add("terminationDate", "is required")
	}
	if !in.HireDate.IsZero() && !in.TerminationDate.IsZero() &&
		normalizeDate(in.TerminationDate).Before(normalizeDate(in.HireDate)) {
		verr.add("terminationDate", "must be on or after hireDate")
	}
	if in.DailySalary.IsNegative() || in.DailySalary.IsZero() {
		verr.add("dailySalary", "must be positive")
	}
	if in.IntegratedDailySalary.IsNegative() {
		verr.add("integratedDailySalary", "must not be negative")
	}

	checkNonNegative(verr, "aguinaldoDays", in.AguinaldoDays)
	checkNonNegative(verr, "vacationDays", in.VacationDays)
	checkNonNegative(verr, "vacationPremiumPercent", in.VacationPremiumPercent)
	checkNonNegative(verr, "daysPerMonth", in.DaysPerMonth)
	checkNonNegative(verr, "pendingVacationDays", in.PendingVacationDays)
	checkNonNegative(verr, "pendingVacationPremium", in.PendingVacationPremium)
	checkNonNegative(verr, "workedDays", in.WorkedDays)
	if in.DaysPerMonthOverridden && in.DaysPerMonthReason == "" {
		verr.add("daysPerMonthReason", "is required when the days factor is overridden")
	}

	if in.Complement != nil {
		if in.Complement.RealHireDate.IsZero() {
			verr.add("complement.realHireDate", "is required when complemento is enabled")
		}
		if !in.Complement.RealDailySalary.IsPositive() {
			verr.add("complement.realDailySalary", "must be positive when complemento is enabled")
		}
		if !in.Complement.RealHireDate.IsZero() && !in.TerminationDate.IsZero() &&
			normalizeDate(in.TerminationDate).Before(normalizeDate(in.Complement.RealHireDate)) {
			verr.add("complement.realHireDate", "must be on or before terminationDate")
		}
		checkNonNegative(verr, "complement.pendingVacationDays", in.Complement.PendingVacationDays)
		checkNonNegative(verr, "complement.pendingVacationPremium", in.Complement.PendingVacationPremium)
	}

	if in.Liquidation != nil {
		liq := in.Liquidation
		if liq.GratificationType != "" && liq.GratificationDays <= 0 && !liq.GratificationPesos.IsPositive() {
			verr.add("liquidation.gratification", "requires gratificationDays or gratificationPesos")
		}
		if liq.GratificationType != "" && liq.GratificationType != GratificationDays && liq.GratificationType != GratificationPesos {
			verr.add("liquidation.gratificationType", "must be days or pesos")
		}
		checkNonNegative(verr, "liquidation.gratificationDays", liq.GratificationDays)
		if liq.GratificationPesos.IsNegative() {
			verr.add("liquidation.gratificationPesos", "must not be negative")
		}
		checkNonNegative(verr, "liquidation.severanceDays", liq.SeveranceDays)
		checkNonNegative(verr, "liquidation.seniorityPremiumDays", liq.SeniorityPremiumDays)
	}

	for _, d := range []struct {
		field string
		value decimal.Decimal
	}{
		{"deductions.isr", in.Deductions.ISR},
		{"deductions.subsidy", in.Deductions.Subsidy},
		{"deductions.infonavit", in.Deductions.Infonavit},
		{"deductions.fonacot", in.Deductions.Fonacot},
		{"deductions.other", in.Deductions.Other},
	} {
		if d.value.IsNegative() {
			verr.add(d.field, "must not be negative")
		}
	}

	if len(verr.Issues) > 0 {
		return verr
	}
	return nil
}

func checkNonNegative(verr *ValidationError, field string, value float64) {
	if value < 0 {
		verr.add(field, "must not be negative")
	}
}
