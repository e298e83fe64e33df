package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/san-kum/disp4b/internal/scan"
)

var ErrRunNotFound = errors.New("storage: run not found")

// swapped in tests to exercise the cleanup path
var writeEnergies = writeSamples

var sampleHeader = []string{
	"side", "pair", "triplet", "quadruplet",
	"dispersion", "attenuation", "short_range", "total",
}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

// RunMetadata describes a saved scan. ID and Timestamp are assigned by Save.
// MinSide and MinEnergy are zero when no sample has a finite total.
type RunMetadata struct {
	ID          string       `json:"id"`
	Preset      string       `json:"preset,omitempty"`
	Timestamp   time.Time    `json:"timestamp"`
	Provider    string       `json:"provider"`
	Coefficient float64      `json:"coefficient"`
	Dispersion  string       `json:"dispersion"`
	Triplets    string       `json:"triplets,omitempty"`
	Request     scan.Request `json:"request"`
	Duration    float64      `json:"duration_ms"`
	MinSide     float64      `json:"min_side"`
	MinEnergy   float64      `json:"min_energy"`
}

func (s *Store) Save(meta RunMetadata, result *scan.Result) (string, error) {
	if err := s.Init(); err != nil {
		return "", errors.Wrap(err, "create store")
	}

	now := time.Now()
	runID, runDir, err := s.createRunDir(result.Request.Shape, now)
	if err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Request = result.Request
	meta.Duration = float64(result.Duration.Microseconds()) / 1000.0
	if low, ok := result.Lowest(); ok {
		meta.MinSide = low.Side
		meta.MinEnergy = low.Total
	}

	if err := writeMetadata(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	if err := writeEnergies(filepath.Join(runDir, "energies.csv"), result.Samples); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	return runID, nil
}

func (s *Store) createRunDir(shape string, now time.Time) (string, string, error) {
	stamp := now.UnixNano()
	for {
		runID := fmt.Sprintf("%s_%d", shape, stamp)
		runDir := filepath.Join(s.baseDir, runID)
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			return runID, runDir, nil
		}
		if !os.IsExist(err) {
			return "", "", errors.Wrap(err, "create run directory")
		}
		stamp++
	}
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create metadata")
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(meta), "encode metadata")
}

func writeSamples(path string, samples []scan.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create energies")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(sampleHeader); err != nil {
		return errors.Wrap(err, "write energies")
	}
	for _, smp := range samples {
		row := []string{
			formatFloat(smp.Side),
			formatFloat(smp.Pair),
			formatFloat(smp.Triplet),
			formatFloat(smp.Quadruplet),
			formatFloat(smp.Dispersion),
			formatFloat(smp.Attenuation),
			formatFloat(smp.ShortRange),
			formatFloat(smp.Total),
		}
		if err := w.Write(row); err != nil {
			return errors.Wrap(err, "write energies")
		}
	}
	w.Flush()
	return errors.Wrap(w.Error(), "flush energies")
}

// energies span many orders of magnitude, so values are written in full
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// List returns every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, errors.Wrap(err, "list runs")
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		if !runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].Timestamp.After(runs[j].Timestamp)
		}
		return runs[i].ID > runs[j].ID
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(ErrRunNotFound, runID)
		}
		return nil, errors.Wrap(err, "read metadata")
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, errors.Wrapf(err, "decode metadata %s", runID)
	}
	return &meta, nil
}

// LoadSamples reads the energies of a run. Malformed rows are skipped.
func (s *Store) LoadSamples(runID string) ([]scan.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "energies.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(ErrRunNotFound, runID)
		}
		return nil, errors.Wrap(err, "open energies")
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "read energies %s", runID)
	}
	if len(records) < 2 {
		return []scan.Sample{}, nil
	}

	samples := make([]scan.Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != len(sampleHeader) {
			continue
		}
		vals := make([]float64, len(record))
		ok := true
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}
		samples = append(samples, scan.Sample{
			Side:        vals[0],
			Pair:        vals[1],
			Triplet:     vals[2],
			Quadruplet:  vals[3],
			Dispersion:  vals[4],
			Attenuation: vals[5],
			ShortRange:  vals[6],
			Total:       vals[7],
		})
	}
	return samples, nil
}
