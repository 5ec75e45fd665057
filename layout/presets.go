package layout

import (
	"slices"
	"time"
)

const (
	PresetDefault = "default"
	PresetTrading = "trading"
	PresetMinimal = "minimal"
)

var (
	summaryCards = Section{
		ID:        "summary-cards",
		Title:     "Portfolio Summary",
		Enabled:   true,
		Order:     0,
		Component: ComponentSummaryCards,
		Size:      SizeFull,
	}
	performanceChart = Section{
		ID:        "performance-chart",
		Title:     "Performance Chart",
		Enabled:   true,
		Order:     1,
		Component: ComponentPerformanceChart,
		Size:      SizeFull,
	}
	portfolioList = Section{
		ID:        "portfolio-list",
		Title:     "Your Portfolios",
		Enabled:   true,
		Order:     2,
		Component: ComponentPortfolioList,
		Size:      SizeFull,
	}
	topCryptos = Section{
		ID:        "top-cryptos",
		Title:     "Top Cryptocurrencies",
		Enabled:   true,
		Order:     3,
		Component: ComponentTopCryptos,
		Size:      SizeQuarter,
	}
)

func with(s Section, order int, mods ...func(*Section)) Section {
	s.Order = order
	for _, m := range mods {
		m(&s)
	}
	return s
}

func sized(size Size) func(*Section) {
	return func(s *Section) { s.Size = size }
}

func disabled(s *Section) { s.Enabled = false }

var presets = map[string][]Section{
	PresetDefault: {summaryCards, performanceChart, portfolioList, topCryptos},
	PresetTrading: {
		with(performanceChart, 0, sized(SizeHalf)),
		with(topCryptos, 1, sized(SizeHalf)),
		with(summaryCards, 2),
		with(portfolioList, 3),
	},
	// Disabled sections stay in the list so re-enabling them keeps their settings.
	PresetMinimal: {
		with(summaryCards, 0),
		with(topCryptos, 1),
		with(performanceChart, 2, disabled),
		with(portfolioList, 3, disabled),
	},
}

// Default returns a fresh copy of the default layout stamped with now.
func Default(now time.Time) Layout {
	l, _ := Preset(PresetDefault, now)
	return l
}

// Preset returns a fresh copy of the named preset stamped with now.
func Preset(name string, now time.Time) (Layout, bool) {
	sections, ok := presets[name]
	if !ok {
		return Layout{}, false
	}
	return Layout{Sections: slices.Clone(sections), LastModified: now}, true
}

// PresetNames lists the known presets in a stable order.
func PresetNames() []string {
	return []string{PresetDefault, PresetTrading, PresetMinimal}
}
