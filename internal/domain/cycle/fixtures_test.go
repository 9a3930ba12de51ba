package cycle

import (
	"io"
	"log/slog"
	"time"
)

func testLibrary() *Library {
	self := func(headline string) Advice {
		return Advice{Headline: headline, Items: []string{headline + " item 1", headline + " item 2"}}
	}
	partner := func(headline string) Advice {
		return Advice{
			Headline: headline,
			Tips:     []string{headline + " tip"},
			Phrases:  []string{headline + " phrase"},
		}
	}
	return &Library{
		Version: "test-1",
		Phases: map[PhaseKey]PhaseContent{
			PhaseMenstruation: {Labels: map[string]string{"zh": "月经期", "en": "Menstruation"}, Symptoms: []string{"fatigue", "cramps"}},
			PhaseFollicular:   {Labels: map[string]string{"zh": "卵泡期", "en": "Follicular"}, Symptoms: []string{"energy"}},
			PhaseOvulation:    {Labels: map[string]string{"zh": "排卵期", "en": "Ovulation"}, Symptoms: []string{"confidence"}},
			PhaseLuteal:       {Labels: map[string]string{"zh": "黄体期"}, Symptoms: []string{"bloating", "irritability"}},
		},
		FallbackSuggestion: "listen to your body",
		Playful:            PlayfulRewrite{Marker: "if you go playful", Replacement: "playful mode on"},
		Advice: map[Role]map[PhaseKey][]Advice{
			RoleSelf: {
				PhaseMenstruation: {self("rest first"), self("keep warm")},
				PhaseFollicular:   {self("start something"), self("plan ahead")},
				PhaseOvulation: {
					self("ov one"), self("ov two"), self("ov three"), self("ov four"),
					self("if you go playful, respect boundaries"),
				},
				PhaseLuteal: {self("slow down"), self("sleep early")},
			},
			RolePartner: {
				PhaseFollicular: {partner("plan a date"), partner("cheer her on")},
				PhaseLuteal:     {partner("be the calm"), partner("be specific"), partner("take chores")},
			},
		},
	}
}

func newTestService(now time.Time) *service {
	return &service{
		cfg: Config{
			DefaultCycleLength: DefaultCycleLength,
			DefaultMensesDays:  DefaultMensesDays,
			Locale:             "zh",
		},
		library:  testLibrary(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		timezone: time.UTC,
		now:      func() time.Time { return now },
	}
}
