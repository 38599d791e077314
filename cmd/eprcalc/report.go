package main

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	jsoniter "github.com/json-iterator/go"

	"github.com/arloliu/eprcalc"
	"github.com/arloliu/eprcalc/interp"
	"github.com/arloliu/eprcalc/surveyfile"
)

// report is the printable outcome of one evaluation. Non-finite numbers become
// null in JSON.
type report struct {
	Path        string     `json:"path"`
	Fingerprint string     `json:"fingerprint"`
	Included    int        `json:"included"`
	Excluded    int        `json:"excluded"`
	Dropped     int        `json:"dropped"`
	Strategy    string     `json:"strategy"`
	Knee        kneeOut    `json:"knee"`
	Tail        tailOut    `json:"tail"`
	VInf        *float64   `json:"v_inf"`
	Rg          *float64   `json:"rg"`
	Scale       *float64   `json:"scale"`
	EPRScaled   *float64   `json:"epr_scaled"`
	Remote      string     `json:"remote_detail"`
	Plateau     plateauOut `json:"plateau"`
	Curve       []pointOut `json:"curve,omitempty"`
}

type kneeOut struct {
	Found    bool     `json:"found"`
	Index    int      `json:"index"`
	Distance *float64 `json:"distance_m"`
	Status   string   `json:"status"`
	Detail   string   `json:"detail"`
}

type tailOut struct {
	Start    int  `json:"start"`
	Len      int  `json:"len"`
	FromKnee bool `json:"from_knee"`
}

type plateauOut struct {
	Status   string   `json:"status"`
	Severity string   `json:"severity"`
	Window   int      `json:"window"`
	RangePct *float64 `json:"range_pct"`
	SlopePct *float64 `json:"slope_pct_per_100m"`
	Detail   string   `json:"detail"`
}

type pointOut struct {
	DistanceM float64 `json:"distance_m"`
	VoltageMV float64 `json:"voltage_mv"`
}

func newReport(path string, s *surveyfile.Survey, res *eprcalc.Result) *report {
	return &report{
		Path:        path,
		Fingerprint: fmt.Sprintf("%016x", res.Fingerprint),
		Included:    res.Points,
		Excluded:    s.Snapshot.Len() - res.Points,
		Dropped:     s.Snapshot.Dropped(),
		Strategy:    res.Remote.Strategy.String(),
		Knee: kneeOut{
			Found:    res.Knee.Found,
			Index:    res.Knee.Index,
			Distance: finite(res.KneeDistance),
			Status:   res.Knee.Status.String(),
			Detail:   res.Knee.Detail,
		},
		Tail:      tailOut{Start: res.Tail.Start, Len: res.Tail.Len, FromKnee: res.Tail.FromKnee},
		VInf:      finite(res.VInf),
		Rg:        finite(res.Rg),
		Scale:     finite(res.Scale),
		EPRScaled: finite(res.EPRScaled),
		Remote:    res.Remote.Detail,
		Plateau: plateauOut{
			Status:   res.Plateau.Status.String(),
			Severity: res.Plateau.Status.Severity().String(),
			Window:   res.Plateau.Window,
			RangePct: finite(res.Plateau.RangePct),
			SlopePct: finite(res.Plateau.SlopePctPer100m),
			Detail:   res.Plateau.Detail,
		},
	}
}

func (r *report) setCurve(pts []interp.Point) {
	r.Curve = make([]pointOut, len(pts))
	for i, p := range pts {
		r.Curve[i] = pointOut{DistanceM: p.X, VoltageMV: p.Y}
	}
}

func (r *report) writeJSON(w io.Writer) error {
	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(r)
}

func (r *report) writeText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Survey\t%s\t(fingerprint %s)\n", r.Path, r.Fingerprint)
	fmt.Fprintf(tw, "Readings\t%s included\t%d excluded, %d dropped\n",
		humanize.Comma(int64(r.Included)), r.Excluded, r.Dropped)

	if r.Knee.Found {
		fmt.Fprintf(tw, "Knee\t%s\t%s\n", si(r.Knee.Distance, "m"), r.Knee.Detail)
	} else {
		fmt.Fprintf(tw, "Knee\tnone\t%s\n", r.Knee.Detail)
	}
	origin := "last readings"
	if r.Tail.FromKnee {
		origin = "from knee"
	}
	fmt.Fprintf(tw, "Tail\t%d readings\t%s\n", r.Tail.Len, origin)
	fmt.Fprintf(tw, "V∞\t%s\t%s: %s\n", si(r.VInf, "V"), r.Strategy, r.Remote)
	fmt.Fprintf(tw, "Rg\t%s\t\n", si(r.Rg, "Ω"))
	fmt.Fprintf(tw, "Scale\t%s\t\n", plain(r.Scale))
	fmt.Fprintf(tw, "EPR\t%s\t\n", si(r.EPRScaled, "V"))
	fmt.Fprintf(tw, "Plateau\t%s [%s]\t%s\n", r.Plateau.Status, r.Plateau.Severity, r.Plateau.Detail)

	if err := tw.Flush(); err != nil {
		return err
	}

	if len(r.Curve) > 0 {
		if _, err := fmt.Fprintln(w, "\ndistance_m,voltage_mv"); err != nil {
			return err
		}
		for _, p := range r.Curve {
			if _, err := fmt.Fprintf(w, "%.3f,%.3f\n", p.DistanceM, p.VoltageMV); err != nil {
				return err
			}
		}
	}

	return nil
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}

	return &v
}

func si(v *float64, unit string) string {
	if v == nil {
		return "n/a"
	}

	return humanize.SIWithDigits(*v, 4, unit)
}

func plain(v *float64) string {
	if v == nil {
		return "n/a"
	}

	return humanize.FtoaWithDigits(*v, 4)
}
