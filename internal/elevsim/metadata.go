package elevsim

import (
	"encoding/json"

	"github.com/xyproto/randomstring"

	"github.com/szymonmasternak/TTK4145-Elevator-Simulator/internal/elevutils"
)

const RUN_ID_DEFAULT_LEN = 10

// RunMetaData identifies one run in log lines.
type RunMetaData struct {
	SoftwareVersion string  `json:"software_version"`
	RunID           string  `json:"run_id"`
	RandomSeed      int64   `json:"random_seed"`
	NumPassengers   int     `json:"num_passengers"`
	NumFloors       int     `json:"num_floors"`
	NumElevators    int     `json:"num_elevators"`
	TimeFactor      float64 `json:"time_factor"`
}

func newRunMetaData(params Parameters) *RunMetaData {
	runID := params.RunID
	if runID == "" {
		runID = randomstring.EnglishFrequencyString(RUN_ID_DEFAULT_LEN)
		Log.Debug().Msgf("No run identifier provided, generated random identifier \"%v\"", runID)
	}

	return &RunMetaData{
		SoftwareVersion: elevutils.GetGitHash(),
		RunID:           runID,
		RandomSeed:      params.RandomSeed,
		NumPassengers:   params.NumPassengers,
		NumFloors:       params.NumFloors,
		NumElevators:    params.NumElevators,
		TimeFactor:      params.TimeFactor,
	}
}

func (metaData *RunMetaData) String() string {
	jsonData, err := json.Marshal(metaData)

	if err != nil {
		Log.Error().Msg("Error Serialising RunMetaData Object to JSON")
		return ""
	}
	return string(jsonData)
}
