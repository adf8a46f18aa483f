package install

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// CreateDestination creates dest. An existing directory is accepted when it
// is empty, when noInteraction is set, or when the user confirms; declining
// returns ErrDeclined. An existing but unreadable destination and any
// other mkdir failure are errors.
func CreateDestination(dest string, noInteraction bool, p Prompter, log Logger) error {
	err := os.Mkdir(dest, 0o755)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("could not create destination folder: %w", err)
	}

	entries, err := os.ReadDir(dest)
	if err != nil {
		return fmt.Errorf("destination folder already exists and could not be read: %w", err)
	}

	switch {
	case len(entries) == 0:
		log.Info("Destination folder already exists but is empty, continuing.")
	case noInteraction:
		log.Warn("Destination folder already exists and is not empty, continuing because of -y flag.")
	default:
		ok, err := p.Confirm("Destination folder already exists and is not empty. Continue anyway?")
		if err != nil {
			return err
		}
		if !ok {
			return ErrDeclined
		}
	}
	return nil
}
