package cycle

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/yanqian/cycle-advisor/pkg/util"
)

// Service exposes cycle phase estimation and advice selection.
type Service interface {
	Evaluate(ctx context.Context, req Request) (Result, error)
	Status(ctx context.Context, req StatusRequest) (Status, error)
	Timeline(ctx context.Context, req Request) (Timeline, error)
	Describe(ctx context.Context) ContentInfo
}

type service struct {
	cfg      Config
	library  *Library
	logger   *slog.Logger
	timezone *time.Location
	now      func() time.Time
}

// NewService wires up the cycle domain around an already validated library.
func NewService(cfg Config, library *Library, logger *slog.Logger) Service {
	tz := cfg.Timezone
	if tz == nil {
		tz = time.UTC
	}
	if cfg.DefaultCycleLength == 0 {
		cfg.DefaultCycleLength = DefaultCycleLength
	}
	if cfg.DefaultMensesDays == 0 {
		cfg.DefaultMensesDays = DefaultMensesDays
	}
	if cfg.Locale == "" {
		cfg.Locale = DefaultLocale
	}
	return &service{
		cfg:      cfg,
		library:  library,
		logger:   logger.With("component", "cycle.service"),
		timezone: tz,
		now:      util.NowUTC,
	}
}

// observation is a validated request with every default resolved.
type observation struct {
	start       time.Time
	observed    time.Time
	cycleLength int
	mensesDays  int
	cycleDay    int
}

func (s *service) Evaluate(ctx context.Context, req Request) (Result, error) {
	obs, err := s.observe(req)
	if err != nil {
		return Result{}, err
	}

	phase := NewPhaseWindows(obs.cycleLength, obs.mensesDays).Classify(obs.cycleDay)
	role := NormalizeRole(req.Role)
	tone := NormalizeTone(req.Tone)
	observed := obs.observed.Format(DateLayout)
	advice := SelectAdvice(s.library, phase, role, tone, observed+"-"+strconv.Itoa(obs.cycleDay))

	s.logger.Debug("cycle evaluated", "phase", phase, "cycle_day", obs.cycleDay, "role", role, "tone", tone)

	return Result{
		CycleDay:     obs.cycleDay,
		CycleLength:  obs.cycleLength,
		Phase:        s.library.Label(phase, s.cfg.Locale),
		PhaseKey:     phase,
		Hormones:     EstimateHormones(obs.cycleDay, obs.cycleLength),
		Symptoms:     s.library.Symptoms(phase),
		Advice:       advice,
		ObservedDate: observed,
	}, nil
}

func (s *service) Status(ctx context.Context, req StatusRequest) (Status, error) {
	gender := strings.ToLower(req.Gender)
	if gender == "" {
		gender = "female"
	}
	role := RolePartner
	if gender == "female" {
		role = RoleSelf
	}

	res, err := s.Evaluate(ctx, Request{StartDate: req.StartDate, Role: string(role)})
	if err != nil {
		return Status{}, err
	}

	suggestion := strings.TrimSpace(res.Advice.Headline + " " + strings.Join(res.Advice.Details(), " "))
	if suggestion == "" {
		suggestion = s.library.FallbackSuggestion
	}
	return Status{
		CycleDay:     res.CycleDay,
		Phase:        res.Phase,
		Estrogen:     float64(res.Hormones.Estrogen),
		Progesterone: float64(res.Hormones.Progesterone),
		Symptoms:     res.Symptoms,
		Suggestions:  suggestion,
	}, nil
}

func (s *service) Timeline(ctx context.Context, req Request) (Timeline, error) {
	obs, err := s.observe(req)
	if err != nil {
		return Timeline{}, err
	}

	windows := NewPhaseWindows(obs.cycleLength, obs.mensesDays)
	cycleStart := obs.observed.AddDate(0, 0, -(obs.cycleDay - 1))
	days := make([]TimelineDay, 0, obs.cycleLength)
	for day := 1; day <= obs.cycleLength; day++ {
		days = append(days, TimelineDay{
			CycleDay: day,
			Date:     cycleStart.AddDate(0, 0, day-1).Format(DateLayout),
			PhaseKey: windows.Classify(day),
			Hormones: EstimateHormones(day, obs.cycleLength),
		})
	}
	return Timeline{
		CycleLength:  obs.cycleLength,
		MensesDays:   obs.mensesDays,
		CurrentDay:   obs.cycleDay,
		CycleStart:   cycleStart.Format(DateLayout),
		ObservedDate: obs.observed.Format(DateLayout),
		Days:         days,
	}, nil
}

func (s *service) Describe(ctx context.Context) ContentInfo {
	phases := make([]PhaseInfo, 0, len(Phases))
	for _, key := range Phases {
		phases = append(phases, PhaseInfo{
			Key:      key,
			Label:    s.library.Label(key, s.cfg.Locale),
			Symptoms: s.library.Symptoms(key),
		})
	}
	return ContentInfo{Version: s.library.Version, Locale: s.cfg.Locale, Phases: phases}
}

// observe validates req in a fixed order and resolves defaults. The first failing rule wins.
func (s *service) observe(req Request) (observation, error) {
	cycleLength := req.CycleLength
	if cycleLength == 0 {
		cycleLength = s.cfg.DefaultCycleLength
	}
	if cycleLength < MinCycleLength || cycleLength > MaxCycleLength {
		return observation{}, errCycleLength(cycleLength)
	}
	mensesDays := req.MensesDays
	if mensesDays == 0 {
		mensesDays = s.cfg.DefaultMensesDays
	}
	if mensesDays < MinMensesDays || mensesDays > MaxMensesDays {
		return observation{}, errMensesDays(mensesDays)
	}

	if req.StartDate == "" {
		return observation{}, errMissingStartDate()
	}
	start, err := ParseDate(req.StartDate)
	if err != nil {
		return observation{}, errInvalidDate("start_date", err)
	}

	var observed time.Time
	if req.ObservedDate == "" {
		observed = util.CivilDate(s.now(), s.timezone)
	} else if observed, err = ParseDate(req.ObservedDate); err != nil {
		return observation{}, errInvalidDate("observed_date", err)
	}

	elapsed := ElapsedDays(start, observed)
	if elapsed < 0 {
		return observation{}, errOutOfOrder()
	}

	return observation{
		start:       start,
		observed:    observed,
		cycleLength: cycleLength,
		mensesDays:  mensesDays,
		cycleDay:    CycleDay(elapsed, cycleLength),
	}, nil
}
