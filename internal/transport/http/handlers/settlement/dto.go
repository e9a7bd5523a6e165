package settlementhandler

import (
	"github.com/shopspring/decimal"

	"finiquitos/internal/domain/settlement"
	"finiquitos/internal/transport/http/shared"
)

// Payload dates travel as strings (RFC3339 or YYYY-MM-DD) and are parsed
// through the shared validator before the engine sees them.
type createRequest struct {
	EmployeeName string `json:"employeeName"`
	Position     string `json:"position"`
	EmployeeRef  string `json:"employeeRef"`

	HireDate              string          `json:"hireDate"`
	TerminationDate       string          `json:"terminationDate"`
	DailySalary           decimal.Decimal `json:"dailySalary"`
	IntegratedDailySalary decimal.Decimal `json:"integratedDailySalary"`
	SalaryFrequency       string          `json:"salaryFrequency"`
	BorderZone            bool            `json:"borderZone"`
	SuperiorBenefits      bool            `json:"superiorBenefits"`

	AguinaldoDays          float64 `json:"aguinaldoDays"`
	VacationDays           float64 `json:"vacationDays"`
	VacationPremiumPercent float64 `json:"vacationPremiumPercent"`
	DaysPerMonth           float64 `json:"daysPerMonth"`
	DaysPerMonthReason     string  `json:"daysPerMonthReason"`
	PendingVacationDays    float64 `json:"pendingVacationDays"`
	PendingVacationPremium float64 `json:"pendingVacationPremium"`
	WorkedDays             float64 `json:"workedDays"`

	Complement  *complementPayload  `json:"complement"`
	Liquidation *liquidationPayload `json:"liquidation"`

	Deductions deductionsPayload `json:"deductions"`
}

type complementPayload struct {
	RealHireDate           string          `json:"realHireDate"`
	RealDailySalary        decimal.Decimal `json:"realDailySalary"`
	PendingVacationDays    float64         `json:"pendingVacationDays"`
	PendingVacationPremium float64         `json:"pendingVacationPremium"`
}

type liquidationPayload struct {
	GratificationType    string          `json:"gratificationType"`
	GratificationDays    float64         `json:"gratificationDays"`
	GratificationPesos   decimal.Decimal `json:"gratificationPesos"`
	SeveranceDays        float64         `json:"severanceDays"`
	SeniorityPremiumDays float64         `json:"seniorityPremiumDays"`
}

type deductionsPayload struct {
	ISR       decimal.Decimal `json:"isr"`
	Subsidy   decimal.Decimal `json:"subsidy"`
	Infonavit decimal.Decimal `json:"infonavit"`
	Fonacot   decimal.Decimal `json:"fonacot"`
	Other     decimal.Decimal `json:"other"`
}

func (p createRequest) toInput(v *shared.Validator) settlement.Input {
	in := settlement.Input{
		EmployeeName:           p.EmployeeName,
		Position:               p.Position,
		EmployeeRef:            p.EmployeeRef,
		DailySalary:            p.DailySalary,
		IntegratedDailySalary:  p.IntegratedDailySalary,
		SalaryFrequency:        settlement.SalaryFrequency(p.SalaryFrequency),
		BorderZone:             p.BorderZone,
		SuperiorBenefits:       p.SuperiorBenefits,
		AguinaldoDays:          p.AguinaldoDays,
		VacationDays:           p.VacationDays,
		VacationPremiumPercent: p.VacationPremiumPercent,
		DaysPerMonth:           p.DaysPerMonth,
		DaysPerMonthReason:     p.DaysPerMonthReason,
		PendingVacationDays:    p.PendingVacationDays,
		PendingVacationPremium: p.PendingVacationPremium,
		WorkedDays:             p.WorkedDays,
		Deductions:             p.Deductions.toDeductions(),
	}

	v.Required("employeeName", p.EmployeeName, "is required")
	v.Required("hireDate", p.HireDate, "is required")
	v.Required("terminationDate", p.TerminationDate, "is required")
	if hired, ok := v.Date("hireDate", p.HireDate); ok {
		in.HireDate = hired
	}
	if terminated, ok := v.Date("terminationDate", p.TerminationDate); ok {
		in.TerminationDate = terminated
	}
	v.DateOrder("hireDate", in.HireDate, "terminationDate", in.TerminationDate)

	if p.Complement != nil {
		comp := settlement.ComplementInput{
			RealDailySalary:        p.Complement.RealDailySalary,
			PendingVacationDays:    p.Complement.PendingVacationDays,
			PendingVacationPremium: p.Complement.PendingVacationPremium,
		}
		v.Required("complement.realHireDate", p.Complement.RealHireDate, "is required")
		if real, ok := v.Date("complement.realHireDate", p.Complement.RealHireDate); ok {
			comp.RealHireDate = real
		}
		in.Complement = &comp
	}

	if p.Liquidation != nil {
		in.Liquidation = &settlement.LiquidationInput{
			GratificationType:    settlement.GratificationType(p.Liquidation.GratificationType),
			GratificationDays:    p.Liquidation.GratificationDays,
			GratificationPesos:   p.Liquidation.GratificationPesos,
			SeveranceDays:        p.Liquidation.SeveranceDays,
			SeniorityPremiumDays: p.Liquidation.SeniorityPremiumDays,
		}
	}

	return in
}

func (p deductionsPayload) toDeductions() settlement.Deductions {
	return settlement.Deductions{
		ISR:       p.ISR,
		Subsidy:   p.Subsidy,
		Infonavit: p.Infonavit,
		Fonacot:   p.Fonacot,
		Other:     p.Other,
	}
}

type patchRequest struct {
	EmployeeName *string `json:"employeeName"`
	Position     *string `json:"position"`
	EmployeeRef  *string `json:"employeeRef"`

	HireDate              *string          `json:"hireDate"`
	TerminationDate       *string          `json:"terminationDate"`
	DailySalary           *decimal.Decimal `json:"dailySalary"`
	IntegratedDailySalary *decimal.Decimal `json:"integratedDailySalary"`
	SalaryFrequency       *string          `json:"salaryFrequency"`
	BorderZone            *bool            `json:"borderZone"`
	SuperiorBenefits      *bool            `json:"superiorBenefits"`

	AguinaldoDays          *float64 `json:"aguinaldoDays"`
	VacationDays           *float64 `json:"vacationDays"`
	VacationPremiumPercent *float64 `json:"vacationPremiumPercent"`
	DaysPerMonth           *float64 `json:"daysPerMonth"`
	DaysPerMonthReason     *string  `json:"daysPerMonthReason"`
	PendingVacationDays    *float64 `json:"pendingVacationDays"`
	PendingVacationPremium *float64 `json:"pendingVacationPremium"`
	WorkedDays             *float64 `json:"workedDays"`

	EnableComplement  *bool                    `json:"enableComplement"`
	Complement        *complementPatchPayload  `json:"complement"`
	EnableLiquidation *bool                    `json:"enableLiquidation"`
	Liquidation       *liquidationPatchPayload `json:"liquidation"`

	Deductions *deductionsPatchPayload `json:"deductions"`
}

type complementPatchPayload struct {
	RealHireDate           *string          `json:"realHireDate"`
	RealDailySalary        *decimal.Decimal `json:"realDailySalary"`
	PendingVacationDays    *float64         `json:"pendingVacationDays"`
	PendingVacationPremium *float64         `json:"pendingVacationPremium"`
}

type liquidationPatchPayload struct {
	GratificationType    *string          `json:"gratificationType"`
	GratificationDays    *float64         `json:"gratificationDays"`
	GratificationPesos   *decimal.Decimal `json:"gratificationPesos"`
	SeveranceDays        *float64         `json:"severanceDays"`
	SeniorityPremiumDays *float64         `json:"seniorityPremiumDays"`
}

type deductionsPatchPayload struct {
	ISR       *decimal.Decimal `json:"isr"`
	Subsidy   *decimal.Decimal `json:"subsidy"`
	Infonavit *decimal.Decimal `json:"infonavit"`
	Fonacot   *decimal.Decimal `json:"fonacot"`
	Other     *decimal.Decimal `json:"other"`
}

func (p patchRequest) toPatch(v *shared.Validator) settlement.Patch {
	patch := settlement.Patch{
		EmployeeName:           p.EmployeeName,
		Position:               p.Position,
		EmployeeRef:            p.EmployeeRef,
		DailySalary:            p.DailySalary,
		IntegratedDailySalary:  p.IntegratedDailySalary,
		BorderZone:             p.BorderZone,
		SuperiorBenefits:       p.SuperiorBenefits,
		AguinaldoDays:          p.AguinaldoDays,
		VacationDays:           p.VacationDays,
		VacationPremiumPercent: p.VacationPremiumPercent,
		DaysPerMonth:           p.DaysPerMonth,
		DaysPerMonthReason:     p.DaysPerMonthReason,
		PendingVacationDays:    p.PendingVacationDays,
		PendingVacationPremium: p.PendingVacationPremium,
		WorkedDays:             p.WorkedDays,
		EnableComplement:       p.EnableComplement,
		EnableLiquidation:      p.EnableLiquidation,
	}

	if p.HireDate != nil {
		if hired, ok := v.Date("hireDate", *p.HireDate); ok {
			patch.HireDate = &hired
		}
	}
	if p.TerminationDate != nil {
		if terminated, ok := v.Date("terminationDate", *p.TerminationDate); ok {
			patch.TerminationDate = &terminated
		}
	}
	if p.SalaryFrequency != nil {
		freq := settlement.SalaryFrequency(*p.SalaryFrequency)
		patch.SalaryFrequency = &freq
	}

	if p.Complement != nil {
		comp := settlement.ComplementPatch{
			RealDailySalary:        p.Complement.RealDailySalary,
			PendingVacationDays:    p.Complement.PendingVacationDays,
			PendingVacationPremium: p.Complement.PendingVacationPremium,
		}
		if p.Complement.RealHireDate != nil {
			if real, ok := v.Date("complement.realHireDate", *p.Complement.RealHireDate); ok {
				comp.RealHireDate = &real
			}
		}
		patch.Complement = &comp
	}

	if p.Liquidation != nil {
		liq := settlement.LiquidationPatch{
			GratificationDays:    p.Liquidation.GratificationDays,
			GratificationPesos:   p.Liquidation.GratificationPesos,
			SeveranceDays:        p.Liquidation.SeveranceDays,
			SeniorityPremiumDays: p.Liquidation.SeniorityPremiumDays,
		}
		if p.Liquidation.GratificationType != nil {
			gt := settlement.GratificationType(*p.Liquidation.GratificationType)
			liq.GratificationType = &gt
		}
		patch.Liquidation = &liq
	}

	if p.Deductions != nil {
		patch.Deductions = &settlement.DeductionsPatch{
			ISR:       p.Deductions.ISR,
			Subsidy:   p.Deductions.Subsidy,
			Infonavit: p.Deductions.Infonavit,
			Fonacot:   p.Deductions.Fonacot,
			Other:     p.Deductions.Other,
		}
	}

	return patch
}
