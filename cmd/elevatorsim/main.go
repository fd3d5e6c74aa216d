package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/szymonmasternak/TTK4145-Elevator-Simulator/internal/elevconfig"
	"github.com/szymonmasternak/TTK4145-Elevator-Simulator/internal/elevsim"
	"github.com/szymonmasternak/TTK4145-Elevator-Simulator/internal/elevutils"
	"github.com/szymonmasternak/TTK4145-Elevator-Simulator/internal/logger"
)

var Logger = logger.GetLoggerConfigured(zerolog.InfoLevel)

func main() {
	cmdArgs := elevutils.ProcessCmdArgs()
	if cmdArgs.Debug {
		Logger = logger.GetLoggerConfigured(zerolog.DebugLevel)
	}

	// Starting Programme
	Logger.Info().Msgf("Starting Elevator Simulator, version %s", elevutils.GetGitHash())

	if err := run(cmdArgs); err != nil {
		Logger.Error().Err(err).Msg("Elevator Simulator failed")
		os.Exit(1)
	}
}

func run(cmdArgs elevutils.CmdArgs) error {
	config, err := elevconfig.Load(cmdArgs.ConfigPath)
	if err != nil {
		return err
	}
	if cmdArgs.EnvPath != "" {
		if err := config.ApplyEnvFile(cmdArgs.EnvPath); err != nil {
			return err
		}
	}
	if cmdArgs.RunID != "" {
		config.RunID = cmdArgs.RunID
	}
	config.DebugOutput = config.DebugOutput || cmdArgs.Debug

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cmdArgs.Interactive {
		watchCtx, stopWatching := context.WithCancel(ctx)
		watchDone := make(chan struct{})
		go func() {
			defer close(watchDone)
			if err := elevutils.WatchKeyboard(watchCtx, cancel); err != nil {
				Logger.Error().Err(err).Msg("Keyboard unavailable, stop with Ctrl-C")
			}
		}()
		//the terminal has to be restored before exiting
		defer func() {
			stopWatching()
			<-watchDone
		}()
	}

	if cmdArgs.Batch {
		paramList, err := config.BatchParameters()
		if err != nil {
			return err
		}
		_, err = elevsim.RunBatch(ctx, paramList)
		return err
	}

	params, err := config.Parameters()
	if err != nil {
		return err
	}

	simulator, err := elevsim.NewSimulator(params)
	if err != nil {
		return err
	}
	Logger.Info().Msgf("Simulation: %v", simulator.MetaData.String())

	result, err := simulator.Run(ctx)
	if err != nil {
		return err
	}
	Logger.Info().Msgf("Result: %v", result)
	return nil
}
