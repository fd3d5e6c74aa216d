package elevutils

import (
	_ "embed"
	"flag"
	"fmt"
	"os"
	"strings"
)

//go:generate sh -c "printf %s $(git rev-parse HEAD) > githash.txt"
//go:embed githash.txt
var gitHash string

func GetGitHash() string {
	return strings.TrimSpace(gitHash)
}

const DEFAULT_CONFIG_PATH = "config/simulation.yaml"

// CmdArgs holds the parsed command line of the simulator.
type CmdArgs struct {
	ConfigPath  string
	EnvPath     string
	RunID       string
	Batch       bool
	Debug       bool
	Interactive bool
}

func ProcessCmdArgs() CmdArgs {
	cmdArgs, help, version, err := parseCmdArgs(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if version {
		fmt.Println("Version:", GetGitHash())
		os.Exit(0)
	}

	if help {
		fmt.Println("Usage: ./elevatorsim [OPTIONS]")
		fmt.Println("TTK4145 Elevator Dispatch Simulator")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Keys (with -interactive):")
		fmt.Println("	q, Esc, Ctrl-C	Stop the running simulation")
		os.Exit(0)
	}

	return cmdArgs
}

func parseCmdArgs(flagSet *flag.FlagSet, args []string) (CmdArgs, bool, bool, error) {
	help := flagSet.Bool("help", false, "Show Help Window")
	version := flagSet.Bool("version", false, "Show Version")
	configPath := flagSet.String("config", DEFAULT_CONFIG_PATH, "Scenario file to run. Defaults to "+DEFAULT_CONFIG_PATH)
	envPath := flagSet.String("env", "", "Optional .env file with ELEVSIM_* overrides")
	runID := flagSet.String("id", "", "Set the identifier of the run. Overrides the scenario file, defaults to random string")
	batch := flagSet.Bool("batch", false, "Run every permutation of the scenario's batch section. Defaults to false")
	debug := flagSet.Bool("debug", false, "Log every elevator and floor step. Defaults to false")
	interactive := flagSet.Bool("interactive", false, "Stop the simulation with q, Esc or Ctrl-C. Defaults to false")

	if err := flagSet.Parse(args); err != nil {
		return CmdArgs{}, false, false, err
	}
	if flagSet.NArg() > 0 {
		return CmdArgs{}, false, false, fmt.Errorf("unexpected arguments: %v", flagSet.Args())
	}
	if *configPath == "" {
		return CmdArgs{}, false, false, fmt.Errorf("config path must not be empty")
	}

	return CmdArgs{
		ConfigPath:  *configPath,
		EnvPath:     *envPath,
		RunID:       *runID,
		Batch:       *batch,
		Debug:       *debug,
		Interactive: *interactive,
	}, *help, *version, nil
}
