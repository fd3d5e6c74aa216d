package elevconfig

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/szymonmasternak/TTK4145-Elevator-Simulator/internal/elevconsts"
	"github.com/szymonmasternak/TTK4145-Elevator-Simulator/internal/elevsim"
	"github.com/szymonmasternak/TTK4145-Elevator-Simulator/internal/elevstrategy"
	"github.com/szymonmasternak/TTK4145-Elevator-Simulator/internal/logger"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

const scenario = `
run_id: lobby
random_seed: 42
num_passengers: 12
num_floors: 6
num_elevators: 2
time_factor: 100
timeout: 30s
status_interval: 2s
delay_between_passengers:
  min: 1s
  max: 3s
strategies:
  elevator_selection: random
constants:
  travel_time_between_floors: 3s
  passenger_board_time: 500ms
initial_floors: [0, 5]
batch:
  random_seeds: [1, 2]
  num_floors: [4, 6, 8]
`

func TestLoad(t *testing.T) {
	_ = logger.GetLoggerConfigured(zerolog.Disabled)

	c, err := Load(writeFile(t, "scenario.yaml", scenario))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if c.RunID != "lobby" || c.RandomSeed != 42 || c.NumPassengers != 12 || c.NumFloors != 6 || c.NumElevators != 2 {
		t.Errorf("Load() = %+v", c)
	}
	if c.TimeFactor != 100 || c.Timeout != 30*time.Second || c.StatusInterval != 2*time.Second {
		t.Errorf("time factor/timeout/status interval = %v/%v/%v", c.TimeFactor, c.Timeout, c.StatusInterval)
	}
	if c.DelayBetweenPassengers != (DelayConfig{Min: time.Second, Max: 3 * time.Second}) {
		t.Errorf("DelayBetweenPassengers = %+v", c.DelayBetweenPassengers)
	}

	// Unset keys keep their defaults.
	if c.Strategies.ElevatorSelection != elevstrategy.RandomSelectionName ||
		c.Strategies.Embarkation != elevstrategy.SimpleEmbarkationName ||
		c.Strategies.FloorQueueMerge != elevstrategy.ByOrderMergeName {
		t.Errorf("Strategies = %+v", c.Strategies)
	}
	expectedConstants := elevconsts.DefaultConstants()
	expectedConstants.TravelTimeBetweenFloors = 3 * time.Second
	expectedConstants.PassengerBoardTime = 500 * time.Millisecond
	if c.Constants != expectedConstants {
		t.Errorf("Constants = %+v, expected %+v", c.Constants, expectedConstants)
	}
}

func TestLoadEmptyFileGivesDefaults(t *testing.T) {
	_ = logger.GetLoggerConfigured(zerolog.Disabled)

	c, err := Load(writeFile(t, "empty.yaml", ""))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	params, err := c.Parameters()
	if err != nil {
		t.Fatalf("Parameters() error = %v", err)
	}
	if params.String() != elevsim.NewParameters().String() {
		t.Errorf("Parameters() = %v, expected %v", params, elevsim.NewParameters())
	}
}

func TestLoadErrors(t *testing.T) {
	_ = logger.GetLoggerConfigured(zerolog.Disabled)

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, expected %v", err, os.ErrNotExist)
	}
	if _, err := Load(writeFile(t, "bad.yaml", "timeout: soon\n")); !errors.Is(err, elevconsts.ErrInvalidParameter) {
		t.Errorf("Load(bad duration) error = %v, expected %v", err, elevconsts.ErrInvalidParameter)
	}
}

func TestParameters(t *testing.T) {
	_ = logger.GetLoggerConfigured(zerolog.Disabled)

	c, err := Load(writeFile(t, "scenario.yaml", scenario))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	params, err := c.Parameters()
	if err != nil {
		t.Fatalf("Parameters() error = %v", err)
	}
	if elevstrategy.Name(params.ElevatorSelection) != elevstrategy.RandomSelectionName {
		t.Errorf("ElevatorSelection = %s, expected %s", elevstrategy.Name(params.ElevatorSelection), elevstrategy.RandomSelectionName)
	}
	if params.RunID != "lobby" || len(params.InitialFloors) != 2 || params.InitialFloors[1] != 5 {
		t.Errorf("Parameters() = %+v", params)
	}

	c.Strategies.FloorQueueMerge = "sorted"
	if _, err := c.Parameters(); !errors.Is(err, elevconsts.ErrInvalidParameter) {
		t.Errorf("Parameters() with unknown strategy error = %v, expected %v", err, elevconsts.ErrInvalidParameter)
	}

	c = Default()
	c.NumFloors = 1
	if _, err := c.Parameters(); !errors.Is(err, elevconsts.ErrInvalidParameter) {
		t.Errorf("Parameters() with 1 floor error = %v, expected %v", err, elevconsts.ErrInvalidParameter)
	}
}

func TestBatchParameters(t *testing.T) {
	_ = logger.GetLoggerConfigured(zerolog.Disabled)

	c, err := Load(writeFile(t, "scenario.yaml", scenario))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	list, err := c.BatchParameters()
	if err != nil {
		t.Fatalf("BatchParameters() error = %v", err)
	}
	if len(list) != 6 {
		t.Fatalf("BatchParameters() returned %d runs, expected 6", len(list))
	}
	if list[0].RandomSeed != 1 || list[0].NumFloors != 4 || list[0].NumElevators != 2 || list[0].RunID != "lobby-0" {
		t.Errorf("BatchParameters()[0] = %+v", list[0])
	}
	if list[5].RandomSeed != 2 || list[5].NumFloors != 8 || list[5].RunID != "lobby-5" {
		t.Errorf("BatchParameters()[5] = %+v", list[5])
	}
}

func TestApplyEnvFile(t *testing.T) {
	_ = logger.GetLoggerConfigured(zerolog.Disabled)

	path := writeFile(t, ".env", `
# overrides for a quick run
ELEVSIM_NUM_PASSENGERS=3
ELEVSIM_TIME_FACTOR=250
ELEVSIM_TIMEOUT=1m
ELEVSIM_DEBUG_OUTPUT=true
ELEVSIM_DELAY_MIN=0s
ELEVSIM_DELAY_MAX=2s
ELEVSIM_ELEVATOR_SELECTION=random
OTHER_TOOL_SETTING=ignored
`)

	c := Default()
	if err := c.ApplyEnvFile(path); err != nil {
		t.Fatalf("ApplyEnvFile() error = %v", err)
	}

	if c.NumPassengers != 3 || c.TimeFactor != 250 || c.Timeout != time.Minute || !c.DebugOutput {
		t.Errorf("ApplyEnvFile() = %+v", c)
	}
	if c.DelayBetweenPassengers != (DelayConfig{Min: 0, Max: 2 * time.Second}) {
		t.Errorf("DelayBetweenPassengers = %+v", c.DelayBetweenPassengers)
	}
	if c.Strategies.ElevatorSelection != elevstrategy.RandomSelectionName {
		t.Errorf("ElevatorSelection = %s", c.Strategies.ElevatorSelection)
	}
	if c.NumFloors != elevsim.DEFAULT_NUM_FLOORS {
		t.Errorf("NumFloors = %d, expected the default %d", c.NumFloors, elevsim.DEFAULT_NUM_FLOORS)
	}
}

func TestApplyEnvErrors(t *testing.T) {
	_ = logger.GetLoggerConfigured(zerolog.Disabled)

	tests := []map[string]string{
		{"ELEVSIM_NUM_FLOORS": "ten"},
		{"ELEVSIM_TIMEOUT": "10"},
		{"ELEVSIM_DEBUG_OUTPUT": "maybe"},
		{"ELEVSIM_WEIGHT_LIMIT": "800"},
	}

	for _, env := range tests {
		c := Default()
		if err := c.ApplyEnv(env); !errors.Is(err, elevconsts.ErrInvalidParameter) {
			t.Errorf("ApplyEnv(%v) error = %v, expected %v", env, err, elevconsts.ErrInvalidParameter)
		}
	}

	for _, factor := range []string{"NaN", "Inf", "-Inf", "-50"} {
		c := Default()
		if err := c.ApplyEnv(map[string]string{"ELEVSIM_TIME_FACTOR": factor}); err != nil {
			t.Fatalf("ApplyEnv(TIME_FACTOR=%s) error = %v", factor, err)
		}
		if _, err := c.Parameters(); !errors.Is(err, elevconsts.ErrInvalidParameter) {
			t.Errorf("Parameters() with time factor %s error = %v, expected %v", factor, err, elevconsts.ErrInvalidParameter)
		}
	}

	c := Default()
	if err := c.ApplyEnvFile(filepath.Join(t.TempDir(), ".env")); err == nil {
		t.Errorf("ApplyEnvFile(missing) error = nil")
	}
}
