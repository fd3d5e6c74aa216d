// Package elevconfig loads simulation scenarios from YAML files, with
// optional overrides from a .env file.
package elevconfig

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/szymonmasternak/TTK4145-Elevator-Simulator/internal/elevconsts"
	"github.com/szymonmasternak/TTK4145-Elevator-Simulator/internal/elevsim"
	"github.com/szymonmasternak/TTK4145-Elevator-Simulator/internal/elevstrategy"
	"github.com/szymonmasternak/TTK4145-Elevator-Simulator/internal/logger"
)

var Log = logger.GetLogger()

const ENV_PREFIX = "ELEVSIM_"

type DelayConfig struct {
	Min time.Duration `yaml:"min"`
	Max time.Duration `yaml:"max"`
}

type StrategyConfig struct {
	ElevatorSelection string `yaml:"elevator_selection"`
	Embarkation       string `yaml:"embarkation"`
	FloorQueueMerge   string `yaml:"floor_queue_merge"`
}

// BatchConfig lists the values a batch run permutes over. Empty lists keep
// the scenario's own value.
type BatchConfig struct {
	RandomSeeds  []int64 `yaml:"random_seeds"`
	NumElevators []int   `yaml:"num_elevators"`
	NumFloors    []int   `yaml:"num_floors"`
}

type Config struct {
	RunID                  string               `yaml:"run_id"`
	RandomSeed             int64                `yaml:"random_seed"`
	NumPassengers          int                  `yaml:"num_passengers"`
	NumFloors              int                  `yaml:"num_floors"`
	NumElevators           int                  `yaml:"num_elevators"`
	TimeFactor             float64              `yaml:"time_factor"`
	Timeout                time.Duration        `yaml:"timeout"`
	DebugOutput            bool                 `yaml:"debug_output"`
	StatusInterval         time.Duration        `yaml:"status_interval"`
	DelayBetweenPassengers DelayConfig          `yaml:"delay_between_passengers"`
	Strategies             StrategyConfig       `yaml:"strategies"`
	Constants              elevconsts.Constants `yaml:"constants"`
	InitialFloors          []int                `yaml:"initial_floors"`
	Batch                  BatchConfig          `yaml:"batch"`
}

// Default mirrors elevsim.NewParameters.
func Default() Config {
	return Config{
		RandomSeed:    elevsim.DEFAULT_RANDOM_SEED,
		NumPassengers: elevsim.DEFAULT_NUM_PASSENGERS,
		NumFloors:     elevsim.DEFAULT_NUM_FLOORS,
		NumElevators:  elevsim.DEFAULT_NUM_ELEVATORS,
		TimeFactor:    elevsim.DEFAULT_TIME_FACTOR,
		Timeout:       elevsim.DEFAULT_TIMEOUT,
		DelayBetweenPassengers: DelayConfig{
			Min: elevsim.DEFAULT_MIN_DELAY,
			Max: elevsim.DEFAULT_MAX_DELAY,
		},
		Strategies: StrategyConfig{
			ElevatorSelection: elevstrategy.NearestHeadingTowardsName,
			Embarkation:       elevstrategy.SimpleEmbarkationName,
			FloorQueueMerge:   elevstrategy.ByOrderMergeName,
		},
		Constants: elevconsts.DefaultConstants(),
	}
}

// Load reads a scenario file on top of the defaults. Keys missing from the
// file keep their default value.
func Load(path string) (Config, error) {
	c := Default()

	file, err := os.Open(path)
	if err != nil {
		return c, fmt.Errorf("opening config file: %w", err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return c, fmt.Errorf("%w: decoding config file %s: %v", elevconsts.ErrInvalidParameter, path, err)
	}

	Log.Debug().Msgf("Loaded config file %s", path)
	return c, nil
}

// ApplyEnvFile overrides config fields with the ELEVSIM_* keys of a .env file.
func (c *Config) ApplyEnvFile(path string) error {
	envFile, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("reading env file: %w", err)
	}
	return c.ApplyEnv(envFile)
}

// ApplyEnv overrides config fields from a key/value map. Keys without the
// ELEVSIM_ prefix are ignored, unknown ELEVSIM_ keys are an error.
func (c *Config) ApplyEnv(env map[string]string) error {
	for key, value := range env {
		name, ok := strings.CutPrefix(key, ENV_PREFIX)
		if !ok {
			continue
		}

		var err error
		switch name {
		case "RUN_ID":
			c.RunID = value
		case "RANDOM_SEED":
			c.RandomSeed, err = strconv.ParseInt(value, 10, 64)
		case "NUM_PASSENGERS":
			c.NumPassengers, err = strconv.Atoi(value)
		case "NUM_FLOORS":
			c.NumFloors, err = strconv.Atoi(value)
		case "NUM_ELEVATORS":
			c.NumElevators, err = strconv.Atoi(value)
		case "TIME_FACTOR":
			c.TimeFactor, err = strconv.ParseFloat(value, 64)
		case "TIMEOUT":
			c.Timeout, err = time.ParseDuration(value)
		case "DEBUG_OUTPUT":
			c.DebugOutput, err = strconv.ParseBool(value)
		case "STATUS_INTERVAL":
			c.StatusInterval, err = time.ParseDuration(value)
		case "DELAY_MIN":
			c.DelayBetweenPassengers.Min, err = time.ParseDuration(value)
		case "DELAY_MAX":
			c.DelayBetweenPassengers.Max, err = time.ParseDuration(value)
		case "ELEVATOR_SELECTION":
			c.Strategies.ElevatorSelection = value
		case "EMBARKATION":
			c.Strategies.Embarkation = value
		case "FLOOR_QUEUE_MERGE":
			c.Strategies.FloorQueueMerge = value
		default:
			err = errors.New("unknown key")
		}
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", elevconsts.ErrInvalidParameter, key, value, err)
		}

		Log.Debug().Msgf("Config override %s=%s", key, value)
	}
	return nil
}

// Parameters resolves strategy names and builds the parameter set of a single run.
func (c Config) Parameters() (elevsim.Parameters, error) {
	selection, err := elevstrategy.LookupElevatorSelection(c.Strategies.ElevatorSelection)
	if err != nil {
		return elevsim.Parameters{}, err
	}
	embarkation, err := elevstrategy.LookupEmbarkation(c.Strategies.Embarkation)
	if err != nil {
		return elevsim.Parameters{}, err
	}
	merge, err := elevstrategy.LookupFloorQueueMerge(c.Strategies.FloorQueueMerge)
	if err != nil {
		return elevsim.Parameters{}, err
	}

	params := elevsim.NewParameters().
		WithRunID(c.RunID).
		WithRandomSeed(c.RandomSeed).
		WithNumPassengers(c.NumPassengers).
		WithNumFloors(c.NumFloors).
		WithNumElevators(c.NumElevators).
		WithTimeFactor(c.TimeFactor).
		WithTimeout(c.Timeout).
		WithDebugOutput(c.DebugOutput).
		WithStatusInterval(c.StatusInterval).
		WithDelayBetweenPassengers(elevsim.UniformDelay(c.DelayBetweenPassengers.Min, c.DelayBetweenPassengers.Max)).
		WithConstants(c.Constants).
		WithElevatorSelection(selection).
		WithEmbarkation(embarkation).
		WithFloorQueueMerge(merge).
		WithInitialFloors(c.InitialFloors...)

	return params, params.Validate()
}

// BatchParameters expands the batch section into one parameter set per run,
// ordered by seed, then elevator count, then floor count.
func (c Config) BatchParameters() ([]elevsim.Parameters, error) {
	base, err := c.Parameters()
	if err != nil {
		return nil, err
	}

	list := elevsim.NewPermutator(base).
		RandomSeeds(c.Batch.RandomSeeds...).
		NumElevators(c.Batch.NumElevators...).
		NumFloors(c.Batch.NumFloors...).
		Permute()

	// A configured run id is shared by the whole batch, number the runs.
	if c.RunID != "" {
		for i := range list {
			list[i] = list[i].WithRunID(fmt.Sprintf("%s-%d", c.RunID, i))
		}
	}
	return list, nil
}
