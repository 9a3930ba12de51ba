package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/yanqian/cycle-advisor/internal/domain/cycle"
	"github.com/yanqian/cycle-advisor/internal/infra/content"
	"github.com/yanqian/cycle-advisor/pkg/logger"
)

// evalFlags are shared by evaluate and timeline.
type evalFlags struct {
	start       string
	observed    string
	cycleLength int
	mensesDays  int
	role        string
	tone        string
	locale      string
	timezone    string
	contentPath string
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "cyclectl",
		Short:        "Estimate cycle phases and pick advice from the command line",
		SilenceUsage: true,
	}
	root.AddCommand(newEvaluateCmd(), newTimelineCmd(), newContentCmd())
	return root
}

func newEvaluateCmd() *cobra.Command {
	flags := &evalFlags{}
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate one observation and print the result as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := flags.service(cmd.Context(), logger.NewTo(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			res, err := svc.Evaluate(cmd.Context(), flags.request())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}
	bindEvalFlags(cmd, flags)
	return cmd
}

func newTimelineCmd() *cobra.Command {
	flags := &evalFlags{}
	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Print every day of the current cycle with its phase and hormone levels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := flags.service(cmd.Context(), logger.NewTo(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			tl, err := svc.Timeline(cmd.Context(), flags.request())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, day := range tl.Days {
				marker := " "
				if day.CycleDay == tl.CurrentDay {
					marker = "*"
				}
				h := day.Hormones
				fmt.Fprintf(out, "%s %2d %s %-12s E=%3d P=%3d LH=%3d T=%3d\n",
					marker, day.CycleDay, day.Date, day.PhaseKey, h.Estrogen, h.Progesterone, h.LH, h.Testosterone)
			}
			return nil
		},
	}
	bindEvalFlags(cmd, flags)
	return cmd
}

func newContentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Inspect advice library documents",
	}

	var file string
	validate := &cobra.Command{
		Use:   "validate",
		Short: "Load and validate a library document; defaults to the built-in one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := loadLibrary(cmd.Context(), file)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: version %s\n", lib.Version)
			return nil
		},
	}
	validate.Flags().StringVar(&file, "file", "", "library document (YAML or JSON)")
	cmd.AddCommand(validate)
	return cmd
}

func bindEvalFlags(cmd *cobra.Command, f *evalFlags) {
	fs := cmd.Flags()
	fs.StringVar(&f.start, "start", "", "first day of the last period (YYYY-MM-DD)")
	fs.StringVar(&f.observed, "observed", "", "day to evaluate (YYYY-MM-DD), defaults to today")
	fs.IntVar(&f.cycleLength, "cycle-length", 0, "cycle length in days (20-40), 0 for the default")
	fs.IntVar(&f.mensesDays, "menses-days", 0, "period length in days (1-10), 0 for the default")
	fs.StringVar(&f.role, "role", string(cycle.RoleSelf), "self or partner")
	fs.StringVar(&f.tone, "tone", string(cycle.ToneGentle), "gentle or playful")
	fs.StringVar(&f.locale, "locale", cycle.DefaultLocale, "phase label locale")
	fs.StringVar(&f.timezone, "timezone", "Asia/Shanghai", "timezone used to resolve today")
	fs.StringVar(&f.contentPath, "content", "", "library document, defaults to the built-in one")
	_ = cmd.MarkFlagRequired("start")
}

func (f *evalFlags) request() cycle.Request {
	return cycle.Request{
		StartDate:    f.start,
		ObservedDate: f.observed,
		CycleLength:  f.cycleLength,
		MensesDays:   f.mensesDays,
		Role:         f.role,
		Tone:         f.tone,
	}
}

func (f *evalFlags) service(ctx context.Context, log *slog.Logger) (cycle.Service, error) {
	lib, err := loadLibrary(ctx, f.contentPath)
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(f.timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", f.timezone, err)
	}
	cfg := cycle.Config{Locale: f.locale, Timezone: loc}
	return cycle.NewService(cfg, lib, log), nil
}

func loadLibrary(ctx context.Context, path string) (*cycle.Library, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	var source cycle.ContentSource = content.Embedded{}
	if path != "" {
		source = content.File{Path: path}
	}
	return source.Load(ctx)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
