package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/san-kum/disp4b/internal/scan"
)

type ExportData struct {
	Metadata RunMetadata   `json:"metadata"`
	Samples  []scan.Sample `json:"samples"`
}

// exportSample mirrors scan.Sample with fields that survive NaN and Inf.
type exportSample struct {
	Side        jsonFloat `json:"side"`
	Pair        jsonFloat `json:"pair"`
	Triplet     jsonFloat `json:"triplet"`
	Quadruplet  jsonFloat `json:"quadruplet"`
	Dispersion  jsonFloat `json:"dispersion"`
	Attenuation jsonFloat `json:"attenuation"`
	ShortRange  jsonFloat `json:"short_range"`
	Total       jsonFloat `json:"total"`
}

type exportDoc struct {
	Metadata RunMetadata    `json:"metadata"`
	Samples  []exportSample `json:"samples"`
}

func (d ExportData) MarshalJSON() ([]byte, error) {
	doc := exportDoc{Metadata: d.Metadata, Samples: make([]exportSample, len(d.Samples))}
	for i, s := range d.Samples {
		doc.Samples[i] = exportSample{
			Side:        jsonFloat(s.Side),
			Pair:        jsonFloat(s.Pair),
			Triplet:     jsonFloat(s.Triplet),
			Quadruplet:  jsonFloat(s.Quadruplet),
			Dispersion:  jsonFloat(s.Dispersion),
			Attenuation: jsonFloat(s.Attenuation),
			ShortRange:  jsonFloat(s.ShortRange),
			Total:       jsonFloat(s.Total),
		}
	}
	return json.Marshal(doc)
}

func (d *ExportData) UnmarshalJSON(data []byte) error {
	var doc exportDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	d.Metadata = doc.Metadata
	d.Samples = make([]scan.Sample, len(doc.Samples))
	for i, s := range doc.Samples {
		d.Samples[i] = scan.Sample{
			Side:        float64(s.Side),
			Pair:        float64(s.Pair),
			Triplet:     float64(s.Triplet),
			Quadruplet:  float64(s.Quadruplet),
			Dispersion:  float64(s.Dispersion),
			Attenuation: float64(s.Attenuation),
			ShortRange:  float64(s.ShortRange),
			Total:       float64(s.Total),
		}
	}
	return nil
}

// LoadExport gathers the metadata and samples of a stored run.
func (s *Store) LoadExport(runID string) (ExportData, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return ExportData{}, err
	}
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return ExportData{}, err
	}
	return ExportData{Metadata: *meta, Samples: samples}, nil
}

// Export writes a stored run as a single JSON document.
func (s *Store) Export(w io.Writer, runID string) error {
	data, err := s.LoadExport(runID)
	if err != nil {
		return err
	}
	return WriteJSON(w, data)
}

func ExportJSON(path string, data ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create export")
	}
	defer file.Close()

	return WriteJSON(file, data)
}

func WriteJSON(w io.Writer, data ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(data), "encode export")
}
