package settlement

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wizard step shapes used to pre-populate a new draft from an existing
// record. Dates stay time.Time so a JSON round-trip hands real date values
// back to the wizard, not strings.

type WizardBaseStep struct {
	EmployeeName          string          `json:"employeeName"`
	Position              string          `json:"position"`
	EmployeeRef           string          `json:"employeeRef,omitempty"`
	HireDate              time.Time       `json:"hireDate"`
	TerminationDate       time.Time       `json:"terminationDate"`
	DailySalary           decimal.Decimal `json:"dailySalary"`
	IntegratedDailySalary decimal.Decimal `json:"integratedDailySalary"`
	SalaryFrequency       SalaryFrequency `json:"salaryFrequency"`
	BorderZone            bool            `json:"borderZone"`
	SuperiorBenefits      bool            `json:"superiorBenefits"`
	EnableComplement      bool            `json:"enableComplement"`
	RealHireDate          *time.Time      `json:"realHireDate,omitempty"`
	RealDailySalary       decimal.Decimal `json:"realDailySalary"`
	EnableLiquidation     bool            `json:"enableLiquidation"`
}

type WizardFactorsStep struct {
	AguinaldoDays            float64           `json:"aguinaldoDays"`
	VacationDays             float64           `json:"vacationDays"`
	VacationPremiumPercent   float64           `json:"vacationPremiumPercent"`
	DaysPerMonth             float64           `json:"daysPerMonth"`
	PendingVacationDays      float64           `json:"pendingVacationDays"`
	PendingVacationPremium   float64           `json:"pendingVacationPremium"`
	WorkedDays               float64           `json:"workedDays"`
	ComplementPendingDays    float64           `json:"complementPendingDays"`
	ComplementPendingPremium float64           `json:"complementPendingPremium"`
	GratificationType        GratificationType `json:"gratificationType,omitempty"`
	GratificationDays        float64           `json:"gratificationDays"`
	GratificationPesos       decimal.Decimal   `json:"gratificationPesos"`
	SeveranceDays            float64           `json:"severanceDays"`
	SeniorityPremiumDays     float64           `json:"seniorityPremiumDays"`
}

type WizardDeductionsStep struct {
	ISR       decimal.Decimal `json:"isr"`
	Subsidy   decimal.Decimal `json:"subsidy"`
	Infonavit decimal.Decimal `json:"infonavit"`
	Fonacot   decimal.Decimal `json:"fonacot"`
	Other     decimal.Decimal `json:"other"`
}

type WizardDraft struct {
	Base       WizardBaseStep       `json:"base"`
	Factors    WizardFactorsStep    `json:"factors"`
	Deductions WizardDeductionsStep `json:"deductions"`
}

// WizardDraftFromRecord maps a persisted record into the three wizard steps
// for duplication. Version-1 records cannot be losslessly expressed in the
// three-component model, so they are rejected outright instead of producing
// a best-effort partial mapping.
func WizardDraftFromRecord(rec Record) (*WizardDraft, error) {
	if rec.Version != CurrentVersion {
		return nil, ErrUnsupportedVersion
	}

	in := rec.Input
	draft := &WizardDraft{
		Base: WizardBaseStep{
			EmployeeName:          in.EmployeeName,
			Position:              in.Position,
			EmployeeRef:           in.EmployeeRef,
			HireDate:              in.HireDate,
			TerminationDate:       in.TerminationDate,
			DailySalary:           in.DailySalary,
			IntegratedDailySalary: in.IntegratedDailySalary,
			SalaryFrequency:       in.SalaryFrequency,
			BorderZone:            in.BorderZone,
			SuperiorBenefits:      in.SuperiorBenefits,
			RealDailySalary:       decimal.Zero,
		},
		Factors: WizardFactorsStep{
			AguinaldoDays:          in.AguinaldoDays,
			VacationDays:           in.VacationDays,
			VacationPremiumPercent: in.VacationPremiumPercent,
			DaysPerMonth:           in.DaysPerMonth,
			PendingVacationDays:    in.PendingVacationDays,
			PendingVacationPremium: in.PendingVacationPremium,
			WorkedDays:             in.WorkedDays,
			GratificationPesos:     decimal.Zero,
		},
		Deductions: WizardDeductionsStep{
			ISR:       in.Deductions.ISR,
			Subsidy:   in.Deductions.Subsidy,
			Infonavit: in.Deductions.Infonavit,
			Fonacot:   in.Deductions.Fonacot,
			Other:     in.Deductions.Other,
		},
	}

	if in.Complement != nil {
		realHire := in.Complement.RealHireDate
		draft.Base.EnableComplement = true
		draft.Base.RealHireDate = &realHire
		draft.Base.RealDailySalary = in.Complement.RealDailySalary
		draft.Factors.ComplementPendingDays = in.Complement.PendingVacationDays
		draft.Factors.ComplementPendingPremium = in.Complement.PendingVacationPremium
	}

	if in.Liquidation != nil {
		draft.Base.EnableLiquidation = true
		draft.Factors.GratificationType = in.Liquidation.GratificationType
		draft.Factors.GratificationDays = in.Liquidation.GratificationDays
		draft.Factors.GratificationPesos = in.Liquidation.GratificationPesos
		draft.Factors.SeveranceDays = in.Liquidation.SeveranceDays
		draft.Factors.SeniorityPremiumDays = in.Liquidation.SeniorityPremiumDays
	}

	return draft, nil
}
