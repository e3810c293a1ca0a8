package export

import (
	"encoding/json"
	"os"

	"github.com/san-kum/planar/internal/sim"
	"github.com/san-kum/planar/internal/world"
)

type runDump struct {
	Times   []float64           `json:"times"`
	Frames  [][]world.BodyState `json:"frames"`
	Metrics map[string]float64  `json:"metrics"`
}

// ResultToJSON writes the full run, frame by frame, as indented JSON.
func ResultToJSON(path string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(runDump{
		Times:   result.Times,
		Frames:  result.Frames,
		Metrics: result.Metrics,
	})
}
