package settlement

import (
	"time"

	"github.com/shopspring/decimal"
)

// Patch is a typed partial update. A nil field means "leave the stored value
// alone"; a present field wins over the stored one. Direct fields (name,
// position, reference) never trigger recalculation.
type Patch struct {
	EmployeeName *string `json:"employeeName,omitempty"`
	Position     *string `json:"position,omitempty"`
	EmployeeRef  *string `json:"employeeRef,omitempty"`

	HireDate              *time.Time       `json:"hireDate,omitempty"`
	TerminationDate       *time.Time       `json:"terminationDate,omitempty"`
	DailySalary           *decimal.Decimal `json:"dailySalary,omitempty"`
	IntegratedDailySalary *decimal.Decimal `json:"integratedDailySalary,omitempty"`
	SalaryFrequency       *SalaryFrequency `json:"salaryFrequency,omitempty"`
	BorderZone            *bool            `json:"borderZone,omitempty"`
	SuperiorBenefits      *bool            `json:"superiorBenefits,omitempty"`

	AguinaldoDays          *float64 `json:"aguinaldoDays,omitempty"`
	VacationDays           *float64 `json:"vacationDays,omitempty"`
	VacationPremiumPercent *float64 `json:"vacationPremiumPercent,omitempty"`
	DaysPerMonth           *float64 `json:"daysPerMonth,omitempty"`
	DaysPerMonthReason     *string  `json:"daysPerMonthReason,omitempty"`
	PendingVacationDays    *float64 `json:"pendingVacationDays,omitempty"`
	PendingVacationPremium *float64 `json:"pendingVacationPremium,omitempty"`
	WorkedDays             *float64 `json:"workedDays,omitempty"`

	EnableComplement *bool            `json:"enableComplement,omitempty"`
	Complement       *ComplementPatch `json:"complement,omitempty"`

	EnableLiquidation *bool             `json:"enableLiquidation,omitempty"`
	Liquidation       *LiquidationPatch `json:"liquidation,omitempty"`

	Deductions *DeductionsPatch `json:"deductions,omitempty"`
}

type ComplementPatch struct {
	RealHireDate           *time.Time       `json:"realHireDate,omitempty"`
	RealDailySalary        *decimal.Decimal `json:"realDailySalary,omitempty"`
	PendingVacationDays    *float64         `json:"pendingVacationDays,omitempty"`
	PendingVacationPremium *float64         `json:"pendingVacationPremium,omitempty"`
}

type LiquidationPatch struct {
	GratificationType    *GratificationType `json:"gratificationType,omitempty"`
	GratificationDays    *float64           `json:"gratificationDays,omitempty"`
	GratificationPesos   *decimal.Decimal   `json:"gratificationPesos,omitempty"`
	SeveranceDays        *float64           `json:"severanceDays,omitempty"`
	SeniorityPremiumDays *float64           `json:"seniorityPremiumDays,omitempty"`
}

type DeductionsPatch struct {
	ISR       *decimal.Decimal `json:"isr,omitempty"`
	Subsidy   *decimal.Decimal `json:"subsidy,omitempty"`
	Infonavit *decimal.Decimal `json:"infonavit,omitempty"`
	Fonacot   *decimal.Decimal `json:"fonacot,omitempty"`
	Other     *decimal.Decimal `json:"other,omitempty"`
}

// RequiresRecalculation reports whether any trigger field is present.
// When false the update applies only direct field writes; recomputing from a
// placeholder merge must never happen on that path.
func (p Patch) RequiresRecalculation() bool {
	return p.HireDate != nil ||
		p.TerminationDate != nil ||
		p.DailySalary != nil ||
		p.IntegratedDailySalary != nil ||
		p.SalaryFrequency != nil ||
		p.BorderZone != nil ||
		p.SuperiorBenefits != nil ||
		p.AguinaldoDays != nil ||
		p.VacationDays != nil ||
		p.VacationPremiumPercent != nil ||
		p.DaysPerMonth != nil ||
		p.DaysPerMonthReason != nil ||
		p.PendingVacationDays != nil ||
		p.PendingVacationPremium != nil ||
		p.WorkedDays != nil ||
		p.EnableComplement != nil ||
		p.Complement != nil ||
		p.EnableLiquidation != nil ||
		p.Liquidation != nil ||
		p.Deductions != nil
}

// Apply merges the patch over the stored input, field by field.
func (p Patch) Apply(in Input) Input {
	setString(&in.EmployeeName, p.EmployeeName)
	setString(&in.Position, p.Position)
	setString(&in.EmployeeRef, p.EmployeeRef)

	if p.HireDate != nil {
		in.HireDate = *p.HireDate
	}
	if p.TerminationDate != nil {
		in.TerminationDate = *p.TerminationDate
	}
	if p.DailySalary != nil {
		in.DailySalary = *p.DailySalary
	}
	if p.IntegratedDailySalary != nil {
		in.IntegratedDailySalary = *p.IntegratedDailySalary
	}
	if p.SalaryFrequency != nil {
		in.SalaryFrequency = *p.SalaryFrequency
	}
	if p.BorderZone != nil {
		in.BorderZone = *p.BorderZone
	}
	if p.SuperiorBenefits != nil {
		in.SuperiorBenefits = *p.SuperiorBenefits
	}

	setFloat(&in.AguinaldoDays, p.AguinaldoDays)
	setFloat(&in.VacationDays, p.VacationDays)
	setFloat(&in.VacationPremiumPercent, p.VacationPremiumPercent)
	setFloat(&in.PendingVacationDays, p.PendingVacationDays)
	setFloat(&in.PendingVacationPremium, p.PendingVacationPremium)
	setFloat(&in.WorkedDays, p.WorkedDays)
	setFloat(&in.DaysPerMonth, p.DaysPerMonth)
	if p.DaysPerMonthReason != nil {
		in.DaysPerMonthReason = *p.DaysPerMonthReason
	}

	in.Complement = p.applyComplement(in.Complement)
	in.Liquidation = p.applyLiquidation(in.Liquidation)

	if p.Deductions != nil {
		if p.Deductions.ISR != nil {
			in.Deductions.ISR = *p.Deductions.ISR
		}
		if p.Deductions.Subsidy != nil {
			in.Deductions.Subsidy = *p.Deductions.Subsidy
		}
		if p.Deductions.Infonavit != nil {
			in.Deductions.Infonavit = *p.Deductions.Infonavit
		}
		if p.Deductions.Fonacot != nil {
			in.Deductions.Fonacot = *p.Deductions.Fonacot
		}
		if p.Deductions.Other != nil {
			in.Deductions.Other = *p.Deductions.Other
		}
	}

	return in
}

// applyComplement handles enablement transitions. Disabling drops the whole
// sub-input so no stale complemento values survive into the result.
func (p Patch) applyComplement(current *ComplementInput) *ComplementInput {
	if p.EnableComplement != nil && !*p.EnableComplement {
		return nil
	}
	if p.Complement == nil {
		if p.EnableComplement != nil && *p.EnableComplement && current == nil {
			return &ComplementInput{}
		}
		return current
	}
	merged := ComplementInput{}
	if current != nil {
		merged = *current
	}
	if p.Complement.RealHireDate != nil {
		merged.RealHireDate = *p.Complement.RealHireDate
	}
	if p.Complement.RealDailySalary != nil {
		merged.RealDailySalary = *p.Complement.RealDailySalary
	}
	setFloat(&merged.PendingVacationDays, p.Complement.PendingVacationDays)
	setFloat(&merged.PendingVacationPremium, p.Complement.PendingVacationPremium)
	return &merged
}

// applyLiquidation seeds a freshly enabled liquidación with the statutory
// day-count defaults; a field the patch carries still wins, zeros included,
// and an already-stored sub-input is never re-defaulted.
func (p Patch) applyLiquidation(current *LiquidationInput) *LiquidationInput {
	if p.EnableLiquidation != nil && !*p.EnableLiquidation {
		return nil
	}
	seeded := LiquidationInput{
		SeveranceDays:        DefaultSeveranceDays,
		SeniorityPremiumDays: DefaultSeniorityPremiumDays,
	}
	if p.Liquidation == nil {
		if p.EnableLiquidation != nil && *p.EnableLiquidation && current == nil {
			return &seeded
		}
		return current
	}
	merged := seeded
	if current != nil {
		merged = *current
	}
	if p.Liquidation.GratificationType != nil {
		merged.GratificationType = *p.Liquidation.GratificationType
	}
	setFloat(&merged.GratificationDays, p.Liquidation.GratificationDays)
	if p.Liquidation.GratificationPesos != nil {
		merged.GratificationPesos = *p.Liquidation.GratificationPesos
	}
	setFloat(&merged.SeveranceDays, p.Liquidation.SeveranceDays)
	setFloat(&merged.SeniorityPremiumDays, p.Liquidation.SeniorityPremiumDays)
	return &merged
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}
