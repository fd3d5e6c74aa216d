package elevutils

import (
	"context"

	"github.com/eiannone/keyboard"

	"github.com/szymonmasternak/TTK4145-Elevator-Simulator/internal/logger"
)

var Log = logger.GetLogger()

const KEY_EVENT_BUFFER_SIZE = 10

// WatchKeyboard calls stop once q, Esc or Ctrl-C is pressed. It returns when
// that happens or when ctx is done, and restores the terminal on return.
func WatchKeyboard(ctx context.Context, stop func()) error {
	keyEvents, err := keyboard.GetKeys(KEY_EVENT_BUFFER_SIZE)
	if err != nil {
		return err
	}
	defer func() {
		if err := keyboard.Close(); err != nil {
			Log.Error().Err(err).Msg("Error restoring terminal")
		}
	}()

	Log.Info().Msg("Press q, Esc or Ctrl-C to stop the simulation")

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-keyEvents:
			if !ok {
				return nil
			}
			if event.Err != nil {
				return event.Err
			}
			if isStopKey(event.Rune, event.Key) {
				Log.Warn().Msg("Stop requested from keyboard")
				stop()
				return nil
			}
		}
	}
}

func isStopKey(char rune, key keyboard.Key) bool {
	switch {
	case char == 'q', char == 'Q':
		return true
	case key == keyboard.KeyEsc, key == keyboard.KeyCtrlC:
		return true
	default:
		return false
	}
}
