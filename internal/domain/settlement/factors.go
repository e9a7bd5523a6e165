package settlement

import "time"

// Proration denominators are exactly 365 by statutory convention, a
// deliberate deviation from the 365.25 used by YearsWorked.
const prorationYearDays = 365.0

func workedDaysFactor(workedDays float64) float64 {
	if workedDays < 0 {
		return 0
	}
	return workedDays
}

// seventhDayFactor pays one rest day per six worked days, never exceeding
// the worked-days count itself.
func seventhDayFactor(workedDays float64) float64 {
	if workedDays <= 0 {
		return 0
	}
	factor := workedDays / 6
	if factor > workedDays {
		return workedDays
	}
	return factor
}

func vacationFactor(vacationDays float64, hireDate, terminationDate time.Time, pendingDays float64) float64 {
	elapsed := float64(daysInAnniversaryYear(hireDate, terminationDate))
	return vacationDays*(elapsed/prorationYearDays) + pendingDays
}

func vacationPremiumFactor(vacation, premiumPercent, pendingPremium float64) float64 {
	return vacation*(premiumPercent/100) + pendingPremium
}

func aguinaldoFactor(aguinaldoDays float64, hireDate, terminationDate time.Time) float64 {
	elapsed := float64(daysInCalendarYear(hireDate, terminationDate))
	return aguinaldoDays * (elapsed / prorationYearDays)
}

// baseFactors derives the Finiquito concept set for one employment period.
// Complemento re-runs this against the real hire date with its own carry-ins;
// the two invocations share no state.
func baseFactors(hireDate, terminationDate time.Time, workedDays, vacationDays, premiumPercent, aguinaldoDays, pendingVacation, pendingPremium float64) BaseFactors {
	vacation := vacationFactor(vacationDays, hireDate, terminationDate, pendingVacation)
	return BaseFactors{
		WorkedDays:      workedDaysFactor(workedDays),
		SeventhDay:      seventhDayFactor(workedDays),
		Vacation:        vacation,
		VacationPremium: vacationPremiumFactor(vacation, premiumPercent, pendingPremium),
		Aguinaldo:       aguinaldoFactor(aguinaldoDays, hireDate, terminationDate),
	}
}

// liquidationFactors derives the severance concept set. The 20-days-per-year
// indemnification and the seniority premium both use whole completed years.
func liquidationFactors(in LiquidationInput, yearsWorked float64) LiquidationFactors {
	completedYears := float64(int(yearsWorked))
	factors := LiquidationFactors{
		Severance:        in.SeveranceDays,
		YearsIndemnity:   YearsIndemnityDaysPerYear * completedYears,
		SeniorityPremium: in.SeniorityPremiumDays * completedYears,
	}
	if in.GratificationType != "" && in.GratificationDays > 0 {
		factors.Gratification = in.GratificationDays
	}
	return factors
}

func (f BaseFactors) check() error {
	for _, c := range []struct {
		name  string
		value float64
	}{
		{"workedDays", f.WorkedDays},
		{"seventhDay", f.SeventhDay},
		{"vacation", f.Vacation},
		{"vacationPremium", f.VacationPremium},
		{"aguinaldo", f.Aguinaldo},
	} {
		if c.value < 0 {
			return invariantErr(c.name, c.value)
		}
	}
	return nil
}

func (f LiquidationFactors) check() error {
	for _, c := range []struct {
		name  string
		value float64
	}{
		{"severance", f.Severance},
		{"yearsIndemnity", f.YearsIndemnity},
		{"seniorityPremium", f.SeniorityPremium},
		{"gratification", f.Gratification},
	} {
		if c.value < 0 {
			return invariantErr(c.name, c.value)
		}
	}
	return nil
}
