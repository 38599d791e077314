package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/arloliu/eprcalc"
	"github.com/arloliu/eprcalc/remote"
	"github.com/arloliu/eprcalc/surveyfile"
)

type evaluateFlags struct {
	strategy          string
	plateauWindow     int
	tailMin           int
	samplesPerSegment int
	testCurrent       float64
	faultCurrent      float64
	safetyFactor      float64
	json              bool
	curve             bool
}

func newEvaluateCmd(l *slog.Logger) *cobra.Command {
	var f evaluateFlags

	cmd := &cobra.Command{
		Use:   "evaluate <survey-file>",
		Short: "Evaluate a survey file",
		Example: `  eprcalc evaluate site-7.yaml
  eprcalc evaluate site-7.yaml.zst --strategy last-point --plateau-window 4
  eprcalc evaluate site-7.yaml --test-current 2.5 --json --curve`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluate(cmd, l, args[0], f)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.strategy, "strategy", "s", envString("EPRCALC_STRATEGY", ""),
		"remote voltage strategy (extrapolate, average-last-n, last-point); overrides the file")
	fl.IntVarP(&f.plateauWindow, "plateau-window", "n", envInt("EPRCALC_PLATEAU_WINDOW", 0),
		"readings in the plateau window and the average (min 3); overrides the file")
	fl.IntVar(&f.tailMin, "tail-min", envInt("EPRCALC_TAIL_MIN", 0),
		"minimum extrapolation tail (min 3); overrides the file")
	fl.IntVar(&f.samplesPerSegment, "samples-per-segment", 0, "display curve samples per interval")
	fl.Float64Var(&f.testCurrent, "test-current", 0, "injected test current in A; overrides the file")
	fl.Float64Var(&f.faultCurrent, "fault-current", 0, "prospective fault current in A; overrides the file")
	fl.Float64Var(&f.safetyFactor, "safety-factor", 0, "safety factor; overrides the file")
	fl.BoolVar(&f.json, "json", false, "print the result as JSON")
	fl.BoolVar(&f.curve, "curve", false, "include the display curve")

	return cmd
}

func (f evaluateFlags) options() ([]eprcalc.Option, error) {
	var opts []eprcalc.Option
	if f.strategy != "" {
		s, err := remote.ParseStrategy(f.strategy)
		if err != nil {
			return nil, err
		}
		opts = append(opts, eprcalc.WithStrategy(s))
	}
	if f.plateauWindow > 0 {
		opts = append(opts, eprcalc.WithPlateauWindow(f.plateauWindow))
	}
	if f.tailMin > 0 {
		opts = append(opts, eprcalc.WithTailMin(f.tailMin))
	}
	if f.samplesPerSegment > 0 {
		opts = append(opts, eprcalc.WithSamplesPerSegment(f.samplesPerSegment))
	}

	return opts, nil
}

func runEvaluate(cmd *cobra.Command, l *slog.Logger, path string, f evaluateFlags) error {
	s, err := surveyfile.Load(path)
	if err != nil {
		return err
	}
	l.Debug("survey_loaded", "path", path, "rows", len(s.File.Samples),
		"kept", s.Snapshot.Len(), "dropped", s.Snapshot.Dropped())
	if n := s.Snapshot.Dropped(); n > 0 {
		l.Warn("rows_dropped", "path", path, "count", n, "reason", "missing distance or voltage")
	}

	fl := cmd.Flags()
	if fl.Changed("test-current") {
		s.Instrument.TestCurrent = f.testCurrent
	}
	if fl.Changed("fault-current") {
		s.Instrument.FaultCurrent = f.faultCurrent
	}
	if fl.Changed("safety-factor") {
		s.Instrument.SafetyFactor = f.safetyFactor
	}

	opts, err := f.options()
	if err != nil {
		return err
	}

	res, err := s.Evaluate(opts...)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	l.Debug("evaluated", "fingerprint", fmt.Sprintf("%016x", res.Fingerprint),
		"knee", res.Knee.Found, "v_inf", res.VInf, "plateau", res.Plateau.Status.String())

	rep := newReport(path, s, res)
	if f.curve {
		pts, err := s.Curve(opts...)
		if err != nil {
			return fmt.Errorf("%s: curve: %w", path, err)
		}
		rep.setCurve(pts)
	}

	out := cmd.OutOrStdout()
	if f.json {
		return rep.writeJSON(out)
	}

	return rep.writeText(out)
}
