package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/avosk/flightsim/internal/sim"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Airframe  string             `json:"airframe"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	RateHz    float64            `json:"rate_hz"`
	Duration  float64            `json:"duration"`
	Preset    string             `json:"preset,omitempty"`
	Metrics   map[string]float64 `json:"metrics"`
}

// seriesColumns is the recorded telemetry layout, one row per snapshot.
var seriesColumns = []string{
	"time", "lat", "lng", "alt",
	"roll", "pitch", "yaw",
	"vn", "ve", "vd",
	"airspeed",
}

func snapshotRow(t float64, snap sim.Snapshot) []string {
	vals := []float64{
		t, snap.Latitude, snap.Longitude, snap.AltitudeM,
		snap.RollDeg, snap.PitchDeg, snap.YawDeg,
		snap.SpeedN, snap.SpeedE, snap.SpeedD,
		snap.AirspeedMS,
	}
	row := make([]string, len(vals))
	for i, v := range vals {
		row[i] = strconv.FormatFloat(v, 'f', 6, 64)
	}
	return row
}

func (s *Store) Save(airframe, preset string, rateHz, duration float64, seed int64, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", airframe, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Airframe:  airframe,
		Timestamp: time.Now(),
		Seed:      seed,
		RateHz:    rateHz,
		Duration:  duration,
		Preset:    preset,
		Metrics:   result.Metrics,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "telemetry.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(seriesColumns); err != nil {
		return "", err
	}
	for i, snap := range result.Snapshots {
		if err := w.Write(snapshotRow(result.Times[i], snap)); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSeries reads the recorded telemetry back as named columns.
func (s *Store) LoadSeries(runID string) (map[string][]float64, error) {
	csvPath := filepath.Join(s.baseDir, runID, "telemetry.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return map[string][]float64{}, nil
	}

	header := records[0]
	series := make(map[string][]float64, len(header))
	for _, name := range header {
		series[name] = make([]float64, 0, len(records)-1)
	}

	for _, record := range records[1:] {
		if len(record) != len(header) {
			continue
		}
		for j, field := range record {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				continue
			}
			series[header[j]] = append(series[header[j]], val)
		}
	}

	return series, nil
}

// Column returns one named series plus the matching time axis.
func (s *Store) Column(runID, name string) (times, values []float64, err error) {
	series, err := s.LoadSeries(runID)
	if err != nil {
		return nil, nil, err
	}
	values, ok := series[name]
	if !ok {
		return nil, nil, fmt.Errorf("unknown column: %s", name)
	}
	return series["time"], values, nil
}
