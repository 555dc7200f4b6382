package recurrence

import "time"

// RulePreset is a named, static rule template for a common Brazilian
// recurring obligation. Presets are pure data used to pre-populate rule
// creation; the amounts and accounts always come from the user.
type RulePreset struct {
	Slug        string     `json:"slug"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Pattern     Pattern    `json:"pattern"`
	Interval    int        `json:"interval"`
	DayOfMonth  *int       `json:"day_of_month,omitempty"`
	PaymentDay  PaymentDay `json:"payment_day"`
	Priority    Priority   `json:"priority"`
	Tags        []string   `json:"tags"`
}

var presets = []RulePreset{
	{
		Slug:        "aluguel",
		Name:        "Aluguel",
		Description: "Rent due on the first business day of each month",
		Pattern:     PatternMonthly,
		Interval:    1,
		PaymentDay:  PaymentDayFirstBusinessDay,
		Priority:    PriorityHigh,
		Tags:        []string{"moradia", "fixo"},
	},
	{
		Slug:        "salario",
		Name:        "Salário",
		Description: "Salary paid on the last business day of each month",
		Pattern:     PatternMonthly,
		Interval:    1,
		PaymentDay:  PaymentDayLastBusinessDay,
		Priority:    PriorityNormal,
		Tags:        []string{"renda"},
	},
	{
		Slug:        "conta-de-luz",
		Name:        "Conta de Luz",
		Description: "Utility bill on the business day closest to the 10th",
		Pattern:     PatternMonthly,
		Interval:    1,
		DayOfMonth:  intPtr(10),
		PaymentDay:  PaymentDayClosestBusinessDay,
		Priority:    PriorityHigh,
		Tags:        []string{"utilidades"},
	},
	{
		Slug:        "fatura-cartao",
		Name:        "Fatura do Cartão",
		Description: "Credit-card statement on the business day closest to the 15th",
		Pattern:     PatternMonthly,
		Interval:    1,
		DayOfMonth:  intPtr(15),
		PaymentDay:  PaymentDayClosestBusinessDay,
		Priority:    PriorityUrgent,
		Tags:        []string{"cartao"},
	},
	{
		Slug:        "assinatura",
		Name:        "Assinatura",
		Description: "Subscription charged on a fixed day of the month",
		Pattern:     PatternMonthly,
		Interval:    1,
		DayOfMonth:  intPtr(5),
		PaymentDay:  PaymentDayFixedDay,
		Priority:    PriorityLow,
		Tags:        []string{"assinaturas"},
	},
	{
		Slug:        "carne-leao",
		Name:        "Carnê-Leão",
		Description: "Income-tax installment on the last business day of the month",
		Pattern:     PatternMonthly,
		Interval:    1,
		PaymentDay:  PaymentDayLastBusinessDay,
		Priority:    PriorityUrgent,
		Tags:        []string{"impostos"},
	},
	{
		Slug:        "aporte-mensal",
		Name:        "Aporte Mensal",
		Description: "Monthly investment contribution on the first business day",
		Pattern:     PatternMonthly,
		Interval:    1,
		DayOfMonth:  intPtr(1),
		PaymentDay:  PaymentDayBusinessDay,
		Priority:    PriorityNormal,
		Tags:        []string{"investimentos"},
	},
	{
		Slug:        "condominio",
		Name:        "Condomínio",
		Description: "Condominium fee on the 10th, rolled to a business day",
		Pattern:     PatternMonthly,
		Interval:    1,
		DayOfMonth:  intPtr(10),
		PaymentDay:  PaymentDayBusinessDay,
		Priority:    PriorityHigh,
		Tags:        []string{"moradia", "fixo"},
	},
}

// Presets returns the full preset catalog. The returned slice is a copy.
func Presets() []RulePreset {
	out := make([]RulePreset, len(presets))
	copy(out, presets)
	return out
}

// PresetBySlug looks up a preset by its slug.
func PresetBySlug(slug string) (RulePreset, bool) {
	for _, p := range presets {
		if p.Slug == slug {
			return p, true
		}
	}
	return RulePreset{}, false
}

// Rule builds a concrete Rule from the preset anchored at startDate. Preset
// rules always consider Brazilian holidays; that is the point of them.
func (p RulePreset) Rule(startDate time.Time) Rule {
	return Rule{
		Pattern:                   p.Pattern,
		Interval:                  p.Interval,
		DayOfMonth:                p.DayOfMonth,
		PaymentDay:                p.PaymentDay,
		StartDate:                 DateOnly(startDate),
		ConsiderBrazilianHolidays: true,
	}
}

func intPtr(v int) *int { return &v }
