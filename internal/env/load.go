package env

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// DefaultPath is the dotenv file read at startup.
const DefaultPath = ".env"

// Load sets environment variables from a dotenv file (KEY=VALUE lines, # comments,
// optional quotes). Variables already set in the process environment win.
// The file may be missing; that is not an error.
func Load(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}
