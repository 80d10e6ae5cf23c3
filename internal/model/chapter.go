package model

// Chapter resource defaults used when content leaves a field unset.
const (
	DefaultChronosenseUses   = 2
	DefaultTechPulseMax      = 3
	DefaultTechPulseRecharge = 1
)

// ChapterDef describes per-chapter resource parameters. Nil fields fall back to defaults.
type ChapterDef struct {
	ID                string `json:"id"`
	Title             string `json:"title,omitempty"`
	ChronosenseUses   *int   `json:"chronosense_uses,omitempty"`
	TechPulseMax      *int   `json:"tech_pulse_max,omitempty"`
	TechPulseStart    *int   `json:"tech_pulse_start,omitempty"`
	TechPulseRecharge *int   `json:"tech_pulse_recharge,omitempty"`
}

// Resources holds the chapter-scoped ability state of a player.
type Resources struct {
	ChronosenseUsesRemaining int  `json:"chronosense_uses_remaining"`
	TechPulse                int  `json:"tech_pulse"`
	TechPulseMax             int  `json:"tech_pulse_max"`
	TechPulseSet             bool `json:"tech_pulse_set"`
}
