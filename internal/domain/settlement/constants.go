package settlement

const (
	DefaultAguinaldoDays          = 15.0
	DefaultVacationDays           = 12.0
	DefaultVacationPremiumPercent = 25.0
	DefaultDaysPerMonth           = 30.4

	DefaultSeveranceDays        = 90.0
	DefaultSeniorityPremiumDays = 12.0
	YearsIndemnityDaysPerYear   = 20.0

	CurrentVersion = 2
	LegacyVersion  = 1
)

// Caps configures the statutory constants the engine does not hardcode.
// SeniorityPremiumCapMultiple bounds the daily salary used for the
// seniority premium at a multiple of the applicable minimum wage.
type Caps struct {
	MinimumWage                 float64
	MinimumWageBorder           float64
	SeniorityPremiumCapMultiple float64
}

func DefaultCaps() Caps {
	return Caps{
		MinimumWage:                 278.80,
		MinimumWageBorder:           419.88,
		SeniorityPremiumCapMultiple: 2,
	}
}

func (c Caps) minimumWage(borderZone bool) float64 {
	if borderZone {
		return c.MinimumWageBorder
	}
	return c.MinimumWage
}

// Defaults carries the benefit-plan values filled in when the preparer
// leaves a field at zero. They are deployment configuration, not statute,
// so the server wires them from env rather than the constants above.
type Defaults struct {
	AguinaldoDays          float64
	VacationDays           float64
	VacationPremiumPercent float64
	DaysPerMonth           float64
}

func StandardDefaults() Defaults {
	return Defaults{
		AguinaldoDays:          DefaultAguinaldoDays,
		VacationDays:           DefaultVacationDays,
		VacationPremiumPercent: DefaultVacationPremiumPercent,
		DaysPerMonth:           DefaultDaysPerMonth,
	}
}

// Apply fills the benefit-plan fields the preparer left at zero. It runs
// once, at create time; merged updates keep explicit values, zeros included.
func (d Defaults) Apply(in Input) Input {
	if in.AguinaldoDays == 0 {
		in.AguinaldoDays = d.AguinaldoDays
	}
	if in.VacationDays == 0 {
		in.VacationDays = d.VacationDays
	}
	if in.VacationPremiumPercent == 0 {
		in.VacationPremiumPercent = d.VacationPremiumPercent
	}
	if in.DaysPerMonth == 0 {
		in.DaysPerMonth = d.DaysPerMonth
	}
	if in.Liquidation != nil {
		if in.Liquidation.SeveranceDays == 0 {
			in.Liquidation.SeveranceDays = DefaultSeveranceDays
		}
		if in.Liquidation.SeniorityPremiumDays == 0 {
			in.Liquidation.SeniorityPremiumDays = DefaultSeniorityPremiumDays
		}
	}
	return d.flagOverride(in)
}

// flagOverride records whether the effective days factor departs from the
// configured default. Validation then demands a reason for any override.
func (d Defaults) flagOverride(in Input) Input {
	in.DaysPerMonthOverridden = in.DaysPerMonth != d.DaysPerMonth
	return in
}
