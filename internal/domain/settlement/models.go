package settlement

import (
	"time"

	"github.com/shopspring/decimal"
)

type SalaryFrequency string

const (
	FrequencyWeekly   SalaryFrequency = "weekly"
	FrequencyBiweekly SalaryFrequency = "biweekly"
	FrequencyMonthly  SalaryFrequency = "monthly"
	FrequencyDaily    SalaryFrequency = "daily"
)

type GratificationType string

const (
	GratificationDays  GratificationType = "days"
	GratificationPesos GratificationType = "pesos"
)

// Input is the full parameter set for one settlement calculation.
// Monetary fields are decimal; day counts and factors stay float64.
type Input struct {
	EmployeeName string `json:"employeeName"`
	Position     string `json:"position"`
	EmployeeRef  string `json:"employeeRef,omitempty"`

	HireDate              time.Time       `json:"hireDate"`
	TerminationDate       time.Time       `json:"terminationDate"`
	DailySalary           decimal.Decimal `json:"dailySalary"`
	IntegratedDailySalary decimal.Decimal `json:"integratedDailySalary"`
	SalaryFrequency       SalaryFrequency `json:"salaryFrequency"`
	BorderZone            bool            `json:"borderZone"`
	SuperiorBenefits      bool            `json:"superiorBenefits,omitempty"`

	AguinaldoDays          float64 `json:"aguinaldoDays"`
	VacationDays           float64 `json:"vacationDays"`
	VacationPremiumPercent float64 `json:"vacationPremiumPercent"`
	DaysPerMonth           float64 `json:"daysPerMonth"`
	DaysPerMonthOverridden bool    `json:"daysPerMonthOverridden,omitempty"`
	DaysPerMonthReason     string  `json:"daysPerMonthReason,omitempty"`
	PendingVacationDays    float64 `json:"pendingVacationDays"`
	PendingVacationPremium float64 `json:"pendingVacationPremium"`
	WorkedDays             float64 `json:"workedDays"`

	Complement  *ComplementInput  `json:"complement,omitempty"`
	Liquidation *LiquidationInput `json:"liquidation,omitempty"`

	Deductions Deductions `json:"deductions"`
}

// ComplementInput holds the parallel "real" employment terms. A non-nil
// pointer means the component is enabled.
type ComplementInput struct {
	RealHireDate           time.Time       `json:"realHireDate"`
	RealDailySalary        decimal.Decimal `json:"realDailySalary"`
	PendingVacationDays    float64         `json:"pendingVacationDays"`
	PendingVacationPremium float64         `json:"pendingVacationPremium"`
}

type LiquidationInput struct {
	GratificationType    GratificationType `json:"gratificationType,omitempty"`
	GratificationDays    float64           `json:"gratificationDays,omitempty"`
	GratificationPesos   decimal.Decimal   `json:"gratificationPesos"`
	SeveranceDays        float64           `json:"severanceDays"`
	SeniorityPremiumDays float64           `json:"seniorityPremiumDays"`
}

// Deductions are entered by the preparer, never derived.
type Deductions struct {
	ISR       decimal.Decimal `json:"isr"`
	Subsidy   decimal.Decimal `json:"subsidy"`
	Infonavit decimal.Decimal `json:"infonavit"`
	Fonacot   decimal.Decimal `json:"fonacot"`
	Other     decimal.Decimal `json:"other"`
}

func (d Deductions) Total() decimal.Decimal {
	return d.ISR.Add(d.Subsidy).Add(d.Infonavit).Add(d.Fonacot).Add(d.Other)
}

// Metadata carries the tenure figures every factor was derived from.
type Metadata struct {
	DaysWorked             int     `json:"daysWorked"`
	YearsWorked            float64 `json:"yearsWorked"`
	DaysPerMonth           float64 `json:"daysPerMonth"`
	DaysPerMonthOverridden bool    `json:"daysPerMonthOverridden,omitempty"`
	DaysPerMonthReason     string  `json:"daysPerMonthReason,omitempty"`
	SuperiorBenefits       bool    `json:"superiorBenefits,omitempty"`
	RealDaysWorked         int     `json:"realDaysWorked,omitempty"`
	RealYearsWorked        float64 `json:"realYearsWorked,omitempty"`
}

// BaseFactors is the concept set shared by Finiquito and Complemento.
type BaseFactors struct {
	WorkedDays      float64 `json:"workedDays"`
	SeventhDay      float64 `json:"seventhDay"`
	Vacation        float64 `json:"vacation"`
	VacationPremium float64 `json:"vacationPremium"`
	Aguinaldo       float64 `json:"aguinaldo"`
}

type LiquidationFactors struct {
	Severance        float64 `json:"severance"`
	YearsIndemnity   float64 `json:"yearsIndemnity"`
	SeniorityPremium float64 `json:"seniorityPremium"`
	Gratification    float64 `json:"gratification"`
}

type Factors struct {
	Finiquito   BaseFactors         `json:"finiquito"`
	Liquidacion *LiquidationFactors `json:"liquidacion,omitempty"`
	Complemento *BaseFactors        `json:"complemento,omitempty"`
}

// Concept pairs a day factor with the salary basis it was priced at.
type Concept struct {
	Factor      float64         `json:"factor"`
	DailySalary decimal.Decimal `json:"dailySalary"`
	Amount      decimal.Decimal `json:"amount"`
}

type BaseAmounts struct {
	WorkedDays      Concept         `json:"workedDays"`
	SeventhDay      Concept         `json:"seventhDay"`
	Vacation        Concept         `json:"vacation"`
	VacationPremium Concept         `json:"vacationPremium"`
	Aguinaldo       Concept         `json:"aguinaldo"`
	Total           decimal.Decimal `json:"total"`
}

type LiquidationAmounts struct {
	Severance        Concept         `json:"severance"`
	YearsIndemnity   Concept         `json:"yearsIndemnity"`
	SeniorityPremium Concept         `json:"seniorityPremium"`
	Gratification    Concept         `json:"gratification"`
	Total            decimal.Decimal `json:"total"`
}

type Amounts struct {
	Finiquito   BaseAmounts         `json:"finiquito"`
	Liquidacion *LiquidationAmounts `json:"liquidacion,omitempty"`
	Complemento *BaseAmounts        `json:"complemento,omitempty"`
}

type DeductionTotals struct {
	ISR       decimal.Decimal `json:"isr"`
	Subsidy   decimal.Decimal `json:"subsidy"`
	Infonavit decimal.Decimal `json:"infonavit"`
	Fonacot   decimal.Decimal `json:"fonacot"`
	Other     decimal.Decimal `json:"other"`
	Total     decimal.Decimal `json:"total"`
}

// Totals holds per-component nets plus the single grand total. Deductions
// are applied once, entirely against Finiquito; Liquidacion and Complemento
// nets equal their perception totals so nothing is double-counted.
type Totals struct {
	Finiquito   decimal.Decimal `json:"finiquito"`
	Liquidacion decimal.Decimal `json:"liquidacion"`
	Complemento decimal.Decimal `json:"complemento"`
	TotalAPagar decimal.Decimal `json:"totalAPagar"`
}

type Result struct {
	Metadata    Metadata        `json:"metadata"`
	Factors     Factors         `json:"factors"`
	Amounts     Amounts         `json:"amounts"`
	Deducciones DeductionTotals `json:"deducciones"`
	Totales     Totals          `json:"totales"`
}

// Record is the persisted settlement. Version 1 rows predate the
// three-component model and are read-only for recalculation.
type Record struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenantId"`
	Version   int       `json:"version"`
	Input     Input     `json:"input"`
	Result    Result    `json:"result"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Attachment struct {
	ID           string    `json:"id"`
	SettlementID string    `json:"settlementId"`
	FileURL      string    `json:"fileUrl"`
	CreatedAt    time.Time `json:"createdAt"`
}
