// Package surveyfile loads and saves field survey files.
//
// A survey file is YAML holding the instrument constants, optional analysis
// settings and the traverse rows. A .zst, .s2 or .lz4 suffix selects transparent
// compression:
//
//	instrument:
//	  test_current: 1.0
//	  fault_current: 5000
//	  safety_factor: 1.2
//	analysis:
//	  strategy: extrapolate
//	  plateau_window: 5
//	reference: ref
//	samples:
//	  - {id: ref, distance: 0, mv: 0, lat: -34.9285, lon: 138.6007}
//	  - {distance: 0.1, mv: 141}
//	  - {mode: gps, mv: 151, lat: -34.92849, lon: 138.6007}
package surveyfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/eprcalc"
	"github.com/arloliu/eprcalc/compress"
	"github.com/arloliu/eprcalc/interp"
	"github.com/arloliu/eprcalc/remote"
	"github.com/arloliu/eprcalc/survey"
)

var (
	// ErrEmpty is returned for a file with no YAML document.
	ErrEmpty = errors.New("empty survey file")
	// ErrUnknownReference is returned when the reference id matches no row.
	ErrUnknownReference = errors.New("reference row not found")
	// ErrReferenceNoPosition is returned when the reference row lacks coordinates.
	ErrReferenceNoPosition = errors.New("reference row has no position")
	// ErrInvalidMode is returned for a row mode other than manual or gps.
	ErrInvalidMode = errors.New("invalid row mode")
	// ErrDuplicateID is returned when two rows share an id.
	ErrDuplicateID = errors.New("duplicate row id")
)

// Row modes.
const (
	ModeManual = "manual"
	ModeGPS    = "gps"
)

// File is the YAML document of a survey.
type File struct {
	Instrument Instrument `yaml:"instrument"`
	Analysis   Analysis   `yaml:"analysis,omitempty"`
	// Reference is the id of the row whose position anchors GPS distances.
	Reference string `yaml:"reference,omitempty"`
	Samples   []Row  `yaml:"samples"`
}

// Instrument holds the electrical constants. A missing safety factor means 1.
type Instrument struct {
	TestCurrent  float64  `yaml:"test_current"`
	FaultCurrent float64  `yaml:"fault_current"`
	SafetyFactor *float64 `yaml:"safety_factor,omitempty"`
}

// Analysis holds optional settings. Zero values keep the library defaults.
type Analysis struct {
	Strategy          string `yaml:"strategy,omitempty"`
	PlateauWindow     int    `yaml:"plateau_window,omitempty"`
	TailMin           int    `yaml:"tail_min,omitempty"`
	SamplesPerSegment int    `yaml:"samples_per_segment,omitempty"`
}

// Row is one traverse reading. Missing numbers decode as nil.
type Row struct {
	ID       string   `yaml:"id,omitempty"`
	Mode     string   `yaml:"mode,omitempty"`
	Distance *float64 `yaml:"distance,omitempty"`
	MV       *float64 `yaml:"mv,omitempty"`
	Lat      *float64 `yaml:"lat,omitempty"`
	Lon      *float64 `yaml:"lon,omitempty"`
	Excluded bool     `yaml:"excluded,omitempty"`
}

func (r Row) position() *orb.Point {
	if r.Lat == nil || r.Lon == nil {
		return nil
	}

	return &orb.Point{*r.Lon, *r.Lat}
}

// Survey is a loaded, validated survey ready for evaluation.
type Survey struct {
	File       *File
	Snapshot   survey.Snapshot
	Instrument eprcalc.Instrument
	Options    []eprcalc.Option
}

// Evaluate runs eprcalc.Evaluate with the file settings followed by extra.
func (s *Survey) Evaluate(extra ...eprcalc.Option) (*eprcalc.Result, error) {
	return eprcalc.Evaluate(s.Snapshot, s.Instrument, append(s.options(), extra...)...)
}

// Curve runs eprcalc.Curve with the file settings followed by extra.
func (s *Survey) Curve(extra ...eprcalc.Option) ([]interp.Point, error) {
	return eprcalc.Curve(s.Snapshot, append(s.options(), extra...)...)
}

func (s *Survey) options() []eprcalc.Option {
	return append([]eprcalc.Option(nil), s.Options...)
}

// Load reads, decompresses and parses the survey at path.
func Load(path string) (*Survey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	codec, err := compress.CreateCodec(compress.TypeForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	data, err := codec.Decompress(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	s, err := f.Survey()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

// Parse decodes a YAML survey document. Unknown keys are rejected and rows
// without an id receive a random UUID.
func Parse(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}

		return nil, fmt.Errorf("parse survey: %w", err)
	}

	seen := make(map[string]int, len(f.Samples))
	for i := range f.Samples {
		row := &f.Samples[i]
		row.Mode = strings.ToLower(strings.TrimSpace(row.Mode))
		if row.Mode != "" && row.Mode != ModeManual && row.Mode != ModeGPS {
			return nil, fmt.Errorf("samples[%d]: %w: %q", i, ErrInvalidMode, row.Mode)
		}
		if row.ID == "" {
			row.ID = uuid.NewString()
		}
		if j, ok := seen[row.ID]; ok {
			return nil, fmt.Errorf("samples[%d] and samples[%d]: %w: %q", j, i, ErrDuplicateID, row.ID)
		}
		seen[row.ID] = i
	}

	return &f, nil
}

// Survey resolves the reference row and builds the snapshot, instrument and options.
func (f *File) Survey() (*Survey, error) {
	ref, err := f.referencePoint()
	if err != nil {
		return nil, err
	}

	opts, err := f.Analysis.options()
	if err != nil {
		return nil, err
	}

	return &Survey{
		File:       f,
		Snapshot:   survey.NewSnapshot(f.samples(), ref),
		Instrument: f.Instrument.instrument(),
		Options:    opts,
	}, nil
}

func (f *File) referencePoint() (*orb.Point, error) {
	if f.Reference == "" {
		return nil, nil
	}
	for _, row := range f.Samples {
		if row.ID != f.Reference {
			continue
		}
		p := row.position()
		if p == nil {
			return nil, fmt.Errorf("%w: %q", ErrReferenceNoPosition, f.Reference)
		}

		return p, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownReference, f.Reference)
}

func (f *File) samples() []survey.Sample {
	out := make([]survey.Sample, len(f.Samples))
	for i, row := range f.Samples {
		out[i] = survey.Sample{
			ID:              row.ID,
			Distance:        valueOrNaN(row.Distance),
			VoltageMV:       valueOrNaN(row.MV),
			Excluded:        row.Excluded,
			Position:        row.position(),
			PositionDerived: row.Mode == ModeGPS,
		}
	}

	return out
}

func (in Instrument) instrument() eprcalc.Instrument {
	sf := 1.0
	if in.SafetyFactor != nil {
		sf = *in.SafetyFactor
	}

	return eprcalc.Instrument{
		TestCurrent:  in.TestCurrent,
		FaultCurrent: in.FaultCurrent,
		SafetyFactor: sf,
	}
}

func (a Analysis) options() ([]eprcalc.Option, error) {
	var opts []eprcalc.Option
	if a.Strategy != "" {
		s, err := remote.ParseStrategy(a.Strategy)
		if err != nil {
			return nil, fmt.Errorf("analysis.strategy: %w", err)
		}
		opts = append(opts, eprcalc.WithStrategy(s))
	}
	if a.PlateauWindow > 0 {
		opts = append(opts, eprcalc.WithPlateauWindow(a.PlateauWindow))
	}
	if a.TailMin > 0 {
		opts = append(opts, eprcalc.WithTailMin(a.TailMin))
	}
	if a.SamplesPerSegment > 0 {
		opts = append(opts, eprcalc.WithSamplesPerSegment(a.SamplesPerSegment))
	}

	return opts, nil
}

// Encode renders f as YAML.
func Encode(f *File) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return nil, fmt.Errorf("encode survey: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode survey: %w", err)
	}

	return buf.Bytes(), nil
}

// Save writes f to path, compressed according to the path suffix.
func Save(path string, f *File) error {
	data, err := Encode(f)
	if err != nil {
		return err
	}

	codec, err := compress.CreateCodec(compress.TypeForPath(path))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	packed, err := codec.Compress(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	return os.WriteFile(path, packed, 0o644)
}

func valueOrNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}

	return *v
}
