package surveyfile

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/eprcalc"
	"github.com/arloliu/eprcalc/geo"
	"github.com/arloliu/eprcalc/plateau"
	"github.com/arloliu/eprcalc/remote"
)

const traverseYAML = `
instrument:
  test_current: 1.0
  fault_current: 5000
  safety_factor: 1.2
analysis:
  strategy: extrapolate
  plateau_window: 4
samples:
  - {id: p01, distance: 0.1, mv: 141}
  - {id: p02, distance: 1, mv: 151}
  - {id: p03, distance: 2, mv: 155}
  - {id: p04, distance: 3, mv: 155}
  - {id: p05, distance: 4, mv: 156}
  - {id: p06, distance: 6, mv: 144}
  - {id: p07, distance: 11, mv: 171}
  - {id: p08, distance: 17, mv: 181}
  - {id: p09, distance: 28, mv: 196}
  - {id: p10, distance: 61, mv: 197}
  - {id: p11, distance: 147, mv: 218}
  - {id: p12, distance: 408, mv: 220}
  - {id: bad, distance: 90, mv: 5000, excluded: true}
`

const gpsYAML = `
instrument:
  test_current: 2
  fault_current: 1000
reference: ref
samples:
  - {id: ref, distance: 0, mv: 0, lat: -34.9285, lon: 138.6007}
  - {distance: 0.1, mv: 141}
  - {id: g1, mode: gps, mv: 151, lat: -34.9275, lon: 138.6007}
  - {id: g2, mode: GPS, distance: 3, mv: 160}
  - {id: tape, mode: manual, distance: 7, mv: 170, lat: -34.9, lon: 138.6}
  - {id: nodist, mv: 150}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadTraverse(t *testing.T) {
	s, err := Load(writeFile(t, "site.yaml", traverseYAML))
	require.NoError(t, err)

	require.Equal(t, eprcalc.Instrument{TestCurrent: 1, FaultCurrent: 5000, SafetyFactor: 1.2}, s.Instrument)
	require.Equal(t, 13, s.Snapshot.Len())
	require.Len(t, s.Options, 2)

	res, err := s.Evaluate()
	require.NoError(t, err)
	require.Equal(t, 12, res.Points)
	require.Equal(t, 61.0, res.KneeDistance)
	require.InDelta(t, 0.2182186, res.VInf, 1e-6)
	require.Equal(t, plateau.StatusBorderline, res.Plateau.Status)

	// extra options apply after the file settings
	res, err = s.Evaluate(eprcalc.WithPlateauWindow(5), eprcalc.WithStrategy(remote.LastPoint))
	require.NoError(t, err)
	require.Equal(t, plateau.StatusUnstable, res.Plateau.Status)
	require.Equal(t, 0.22, res.VInf)
	require.Len(t, s.Options, 2)

	pts, err := s.Curve()
	require.NoError(t, err)
	require.Len(t, pts, 11*26)
}

func TestLoadGPSRows(t *testing.T) {
	s, err := Load(writeFile(t, "gps.yml", gpsYAML))
	require.NoError(t, err)

	require.Equal(t, 1.0, s.Instrument.SafetyFactor)
	require.Equal(t, 1, s.Snapshot.Dropped())

	ref, ok := s.Snapshot.Reference()
	require.True(t, ok)
	require.Equal(t, orb.Point{138.6007, -34.9285}, ref)

	byID := map[string]float64{}
	generated := 0
	for _, smp := range s.Snapshot.Samples() {
		byID[smp.ID] = smp.Distance
		if _, err := uuid.Parse(smp.ID); err == nil {
			generated++
			assert.Equal(t, 0.1, smp.Distance)
		}
	}
	require.Equal(t, 1, generated)

	want := geo.Distance(ref, orb.Point{138.6007, -34.9275})
	require.InDelta(t, want, byID["g1"], 1e-9)
	require.Equal(t, 0.0, byID["ref"])
	// a gps row without a position keeps its tape distance
	require.Equal(t, 3.0, byID["g2"])
	require.Equal(t, 7.0, byID["tape"])
	require.NotContains(t, byID, "nodist")
}

func TestParseAssignsIDs(t *testing.T) {
	f, err := Parse([]byte("instrument: {test_current: 1}\nsamples:\n  - {distance: 1, mv: 2}\n  - {distance: 2, mv: 3}\n"))
	require.NoError(t, err)
	require.Len(t, f.Samples, 2)
	for _, row := range f.Samples {
		_, err := uuid.Parse(row.ID)
		require.NoError(t, err)
	}
	require.NotEqual(t, f.Samples[0].ID, f.Samples[1].ID)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		err  error
		msg  string
	}{
		{"empty", "", ErrEmpty, ""},
		{"unknown key", "instrument: {test_current: 1}\nsamplez: []\n", nil, "samplez"},
		{"bad mode", "samples:\n  - {mode: laser, distance: 1, mv: 2}\n", ErrInvalidMode, "laser"},
		{"duplicate id", "samples:\n  - {id: a, distance: 1, mv: 2}\n  - {id: a, distance: 2, mv: 2}\n", ErrDuplicateID, "samples[0] and samples[1]"},
		{"not yaml", "samples: [\n", nil, "parse survey"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
			}
			if tt.msg != "" {
				require.ErrorContains(t, err, tt.msg)
			}
		})
	}
}

func TestSurveyErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		err  error
	}{
		{"unknown reference", "reference: nope\nsamples:\n  - {id: a, distance: 1, mv: 2}\n", ErrUnknownReference},
		{"reference without position", "reference: a\nsamples:\n  - {id: a, distance: 1, mv: 2, lat: 1}\n", ErrReferenceNoPosition},
		{"bad strategy", "analysis: {strategy: extrapolat}\nsamples: []\n", remote.ErrUnknownStrategy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.doc))
			require.NoError(t, err)
			_, err = f.Survey()
			require.ErrorIs(t, err, tt.err)
		})
	}

	t.Run("strategy suggestion", func(t *testing.T) {
		f, err := Parse([]byte("analysis: {strategy: extrapolat}\n"))
		require.NoError(t, err)
		_, err = f.Survey()
		require.ErrorContains(t, err, `did you mean "extrapolate"`)
	})
}

func TestLoadErrorsCarryPath(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("corrupt compressed file", func(t *testing.T) {
		path := writeFile(t, "site.yaml.zst", "definitely not zstd")
		_, err := Load(path)
		require.ErrorContains(t, err, path)
	})

	t.Run("invalid survey", func(t *testing.T) {
		path := writeFile(t, "site.yaml", "reference: x\nsamples: []\n")
		_, err := Load(path)
		require.ErrorIs(t, err, ErrUnknownReference)
		require.ErrorContains(t, err, path)
	})
}

func TestSaveLoadRoundTrip(t *testing.T) {
	orig, err := Parse([]byte(gpsYAML))
	require.NoError(t, err)

	for _, name := range []string{"site.yaml", "site.yaml.zst", "site.yaml.s2", "site.yaml.lz4"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, Save(path, orig))

			s, err := Load(path)
			require.NoError(t, err)
			require.Equal(t, orig, s.File)

			want, err := orig.Survey()
			require.NoError(t, err)
			require.Equal(t, want.Snapshot.Fingerprint(), s.Snapshot.Fingerprint())
		})
	}

	t.Run("compressed files are smaller", func(t *testing.T) {
		dir := t.TempDir()
		plain := filepath.Join(dir, "a.yaml")
		packed := filepath.Join(dir, "a.yaml.zst")
		big := &File{Instrument: Instrument{TestCurrent: 1}}
		for i := range 500 {
			d := float64(i)
			mv := 150.0
			big.Samples = append(big.Samples, Row{ID: uuid.NewString(), Distance: &d, MV: &mv})
		}
		require.NoError(t, Save(plain, big))
		require.NoError(t, Save(packed, big))

		ps, err := os.Stat(plain)
		require.NoError(t, err)
		zs, err := os.Stat(packed)
		require.NoError(t, err)
		require.Less(t, zs.Size(), ps.Size())
	})
}

func TestEncodeOmitsMissingValues(t *testing.T) {
	mv := 150.0
	data, err := Encode(&File{
		Instrument: Instrument{TestCurrent: 1},
		Samples:    []Row{{ID: "a", MV: &mv}},
	})
	require.NoError(t, err)
	require.NotContains(t, string(data), "distance")
	require.NotContains(t, string(data), "analysis")

	f, err := Parse(data)
	require.NoError(t, err)
	s, err := f.Survey()
	require.NoError(t, err)
	require.Zero(t, s.Snapshot.Len())
	require.Equal(t, 1, s.Snapshot.Dropped())
	require.True(t, math.IsNaN(f.samples()[0].Distance))
}
