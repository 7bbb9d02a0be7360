package domain

// FilterProfile is a subscriber's view preferences, keyed by an opaque chat
// identifier. Created lazily with defaults on first interaction and mutated
// in place by user commands.
type FilterProfile struct {
	// Mode selects which opportunity list the subscriber sees and is
	// alerted on.
	Mode OpportunityKind `json:"mode"`
	// MinSpreadPercent applies to spot-futures and futures-futures modes.
	MinSpreadPercent float64 `json:"minSpreadPercent"`
	// MinFundingDailyPercent applies to funding-rate mode.
	MinFundingDailyPercent float64 `json:"minFundingDailyPercent"`
	// MinVolume filters out opportunities whose known 24h volume is below
	// the threshold. Opportunities with unknown (zero) volume pass.
	MinVolume float64 `json:"minVolume"`
	// EnabledExchanges restricts alerts to opportunities whose venues are
	// all enabled.
	EnabledExchanges map[string]bool `json:"enabledExchanges"`
}

// DefaultProfile returns the profile assigned on first interaction: every
// configured exchange enabled, 0.5% minimum spread, no volume floor.
func DefaultProfile(exchanges []string) FilterProfile {
	enabled := make(map[string]bool, len(exchanges))
	for _, ex := range exchanges {
		enabled[ex] = true
	}
	return FilterProfile{
		Mode:                   KindSpotFutures,
		MinSpreadPercent:       0.5,
		MinFundingDailyPercent: 0.5,
		MinVolume:              0,
		EnabledExchanges:       enabled,
	}
}

// AllowsExchanges reports whether every given venue is enabled in the profile.
func (p FilterProfile) AllowsExchanges(venues ...string) bool {
	for _, v := range venues {
		if !p.EnabledExchanges[v] {
			return false
		}
	}
	return true
}
