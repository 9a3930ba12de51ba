package cycle

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// DefaultLocale is used when a requested label locale is missing.
const DefaultLocale = "zh"

// Library is the static advice content. It is decoded once at start-up and only read afterwards;
// accessors hand out copies so callers cannot mutate the shared value.
type Library struct {
	Version            string                          `yaml:"version" json:"version"`
	Phases             map[PhaseKey]PhaseContent       `yaml:"phases" json:"phases"`
	FallbackSuggestion string                          `yaml:"fallbackSuggestion" json:"fallbackSuggestion"`
	Playful            PlayfulRewrite                  `yaml:"playful" json:"playful"`
	Advice             map[Role]map[PhaseKey][]Advice `yaml:"advice" json:"advice"`
}

// PhaseContent holds display labels and typical symptoms of a phase.
type PhaseContent struct {
	Labels   map[string]string `yaml:"labels" json:"labels"`
	Symptoms []string          `yaml:"symptoms" json:"symptoms"`
}

// PlayfulRewrite marks the ovulation variant promoted for the playful tone.
type PlayfulRewrite struct {
	Marker      string `yaml:"marker" json:"marker"`
	Replacement string `yaml:"replacement" json:"replacement"`
}

// Validate checks the library carries everything the evaluator reads.
func (l *Library) Validate() error {
	if l == nil {
		return errors.New("library is nil")
	}
	var problems []error
	if strings.TrimSpace(l.Version) == "" {
		problems = append(problems, errors.New("version cannot be empty"))
	}
	for _, key := range Phases {
		phase, ok := l.Phases[key]
		if !ok {
			problems = append(problems, fmt.Errorf("phases.%s missing", key))
			continue
		}
		if len(phase.Labels) == 0 {
			problems = append(problems, fmt.Errorf("phases.%s.labels cannot be empty", key))
		}
		if len(phase.Symptoms) == 0 {
			problems = append(problems, fmt.Errorf("phases.%s.symptoms cannot be empty", key))
		}
	}
	for _, role := range []Role{RoleSelf, RolePartner} {
		pools := l.Advice[role]
		if len(pools[PhaseFollicular]) == 0 {
			problems = append(problems, fmt.Errorf("advice.%s.follicular cannot be empty", role))
		}
		for phase, variants := range pools {
			for i, v := range variants {
				if strings.TrimSpace(v.Headline) == "" {
					problems = append(problems, fmt.Errorf("advice.%s.%s[%d].headline cannot be empty", role, phase, i))
				}
				if role == RoleSelf && len(v.Items) == 0 {
					problems = append(problems, fmt.Errorf("advice.%s.%s[%d].items cannot be empty", role, phase, i))
				}
				if role == RolePartner && len(v.Tips) == 0 {
					problems = append(problems, fmt.Errorf("advice.%s.%s[%d].tips cannot be empty", role, phase, i))
				}
			}
		}
	}
	return errors.Join(problems...)
}

// Label returns the display label of a phase in locale, falling back to DefaultLocale and then the key.
func (l *Library) Label(key PhaseKey, locale string) string {
	labels := l.Phases[key].Labels
	if label := labels[locale]; label != "" {
		return label
	}
	if label := labels[DefaultLocale]; label != "" {
		return label
	}
	return string(key)
}

// Symptoms returns a copy of the symptom list of a phase.
func (l *Library) Symptoms(key PhaseKey) []string {
	symptoms := slices.Clone(l.Phases[key].Symptoms)
	if symptoms == nil {
		return []string{}
	}
	return symptoms
}

// Variants returns the advice pool for (phase, role), falling back to the follicular pool of the role.
// The returned slice shares no memory with the library.
func (l *Library) Variants(phase PhaseKey, role Role) []Advice {
	pools := l.Advice[role]
	variants, ok := pools[phase]
	if !ok || len(variants) == 0 {
		variants = pools[PhaseFollicular]
	}
	out := make([]Advice, len(variants))
	for i, v := range variants {
		out[i] = v.clone()
	}
	return out
}

func (a Advice) clone() Advice {
	return Advice{
		Headline: a.Headline,
		Items:    slices.Clone(a.Items),
		Tips:     slices.Clone(a.Tips),
		Phrases:  slices.Clone(a.Phrases),
	}
}

// Details returns the supporting lines of the advice: items for self, tips for partner.
func (a Advice) Details() []string {
	if len(a.Items) > 0 {
		return a.Items
	}
	return a.Tips
}
