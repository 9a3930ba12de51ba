package cycle

import (
	"context"
	"time"
)

// PhaseKey is the stable token of a cycle phase.
type PhaseKey string

const (
	PhaseMenstruation PhaseKey = "menstruation"
	PhaseFollicular   PhaseKey = "follicular"
	PhaseOvulation    PhaseKey = "ovulation"
	PhaseLuteal       PhaseKey = "luteal"
)

// Phases lists the phase keys in cycle order.
var Phases = []PhaseKey{PhaseMenstruation, PhaseFollicular, PhaseOvulation, PhaseLuteal}

// Role selects whose perspective the advice is written for.
type Role string

const (
	RoleSelf    Role = "self"
	RolePartner Role = "partner"
)

// Tone selects the register of the advice.
type Tone string

const (
	ToneGentle  Tone = "gentle"
	TonePlayful Tone = "playful"
)

const (
	DateLayout = "2006-01-02"

	DefaultCycleLength = 28
	DefaultMensesDays  = 5
	LutealLength       = 14

	MinCycleLength = 20
	MaxCycleLength = 40
	MinMensesDays  = 1
	MaxMensesDays  = 10
)

// Request captures the payload accepted by the evaluator.
// Zero CycleLength or MensesDays fall back to the configured defaults.
type Request struct {
	StartDate    string `json:"start_date"`
	ObservedDate string `json:"observed_date,omitempty"`
	CycleLength  int    `json:"cycle_length,omitempty"`
	MensesDays   int    `json:"menses_days,omitempty"`
	Role         string `json:"role,omitempty"`
	Tone         string `json:"tone,omitempty"`
}

// HormoneProfile holds relative hormone scores in [0,100].
type HormoneProfile struct {
	Estrogen     int `json:"estrogen"`
	Progesterone int `json:"progesterone"`
	LH           int `json:"LH"`
	Testosterone int `json:"testosterone"`
}

// Advice is one pre-authored block of guidance.
// Self variants use Items; partner variants use Tips and Phrases.
type Advice struct {
	Headline string   `json:"headline" yaml:"headline"`
	Items    []string `json:"items,omitempty" yaml:"items,omitempty"`
	Tips     []string `json:"tips,omitempty" yaml:"tips,omitempty"`
	Phrases  []string `json:"phrases,omitempty" yaml:"phrases,omitempty"`
}

// Result is serialized back to API consumers.
type Result struct {
	CycleDay     int            `json:"cycle_day"`
	CycleLength  int            `json:"cycle_length"`
	Phase        string         `json:"phase"`
	PhaseKey     PhaseKey       `json:"phase_key"`
	Hormones     HormoneProfile `json:"hormones"`
	Symptoms     []string       `json:"symptoms"`
	Advice       Advice         `json:"advice"`
	ObservedDate string         `json:"observed_date"`
}

// StatusRequest is the input of the flattened status summary.
type StatusRequest struct {
	StartDate string `json:"start_date"`
	Gender    string `json:"gender,omitempty"`
}

// Status is a flattened view of an evaluation for simple clients.
type Status struct {
	CycleDay     int      `json:"cycle_day"`
	Phase        string   `json:"phase"`
	Estrogen     float64  `json:"estrogen"`
	Progesterone float64  `json:"progesterone"`
	Symptoms     []string `json:"symptoms"`
	Suggestions  string   `json:"suggestions"`
}

// TimelineDay describes one day of the cycle containing the observed date.
type TimelineDay struct {
	CycleDay int            `json:"cycle_day"`
	Date     string         `json:"date"`
	PhaseKey PhaseKey       `json:"phase_key"`
	Hormones HormoneProfile `json:"hormones"`
}

// Timeline is the per-day projection of a full cycle.
type Timeline struct {
	CycleLength  int           `json:"cycle_length"`
	MensesDays   int           `json:"menses_days"`
	CurrentDay   int           `json:"current_day"`
	CycleStart   string        `json:"cycle_start"`
	ObservedDate string        `json:"observed_date"`
	Days         []TimelineDay `json:"days"`
}

// PhaseInfo describes a phase as served by the content library.
type PhaseInfo struct {
	Key      PhaseKey `json:"key"`
	Label    string   `json:"label"`
	Symptoms []string `json:"symptoms"`
}

// ContentInfo summarises the loaded content library.
type ContentInfo struct {
	Version string      `json:"version"`
	Locale  string      `json:"locale"`
	Phases  []PhaseInfo `json:"phases"`
}

// ContentSource loads the advice library once at start-up.
type ContentSource interface {
	Load(ctx context.Context) (*Library, error)
}

// Config wires runtime dependencies for the cycle domain.
type Config struct {
	DefaultCycleLength int
	DefaultMensesDays  int
	Locale             string
	Timezone           *time.Location
}
