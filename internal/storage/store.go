// Package storage persists simulation runs as per-run directories with
// a metadata file and a frames CSV.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/planar/internal/sim"
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
	Scene     string             `json:"scene"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Steps     int                `json:"steps"`
	Bodies    int                `json:"bodies"`
	Rods      int                `json:"rods"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes one run directory: metadata.json plus frames.csv with a
// time column and x, y, rotation per body. Body count must be constant
// across the run.
func (s *Store) Save(sceneName string, cfg sim.Config, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", sceneName, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	numBodies, numRods := 0, 0
	if len(result.Frames) > 0 {
		numBodies = len(result.Frames[0])
	}
	if len(result.Rods) > 0 {
		numRods = len(result.Rods[0])
	}

	meta := RunMetadata{
		ID:        runID,
		Scene:     sceneName,
		Timestamp: time.Now(),
		Dt:        cfg.Dt,
		Duration:  cfg.Duration,
		Steps:     result.StepsTaken,
		Bodies:    numBodies,
		Rods:      numRods,
		Metrics:   result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(result.Frames) == 0 {
		return runID, nil
	}

	header := []string{"time"}
	for _, b := range result.Frames[0] {
		header = append(header,
			fmt.Sprintf("b%d_x", b.ID),
			fmt.Sprintf("b%d_y", b.ID),
			fmt.Sprintf("b%d_rot", b.ID),
		)
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i, frame := range result.Frames {
		row := []string{strconv.FormatFloat(result.Times[i], 'f', 6, 64)}
		for _, b := range frame {
			row = append(row,
				strconv.FormatFloat(b.Position.X, 'f', 6, 64),
				strconv.FormatFloat(b.Position.Y, 'f', 6, 64),
				strconv.FormatFloat(b.Rotation, 'f', 6, 64),
			)
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// List returns metadata for every readable run under the base dir.
// Directories with missing or corrupt metadata are skipped.
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

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
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
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadFrames reads frames.csv back as raw float rows, one per frame,
// in header order minus the leading time column.
func (s *Store) LoadFrames(runID string) ([][]float64, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return [][]float64{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	frames := make([][]float64, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) == 0 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		times = append(times, t)

		frame := make([]float64, 0, len(record)-1)
		for _, field := range record[1:] {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				continue
			}
			frame = append(frame, val)
		}
		frames = append(frames, frame)
	}

	return frames, times, nil
}
