package model

// Preferences holds per-subscriber alert settings.
type Preferences struct {
	AlertsEnabled bool
	MinConfidence int
	MinRiskReward float64
}

// DefaultPreferences returns the settings a subscriber starts with.
func DefaultPreferences() Preferences {
	return Preferences{
		AlertsEnabled: true,
		MinConfidence: 60,
		MinRiskReward: 1.5,
	}
}
