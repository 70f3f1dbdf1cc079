package dotenv

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const localFile = ".env.local"

// Load reads .env into the process environment and then .env.local on top of
// it when present. Variables already set in the environment are kept, except
// for the ones .env.local overrides. The -port flag wins over both files.
func Load() error {
	if err := godotenv.Load(); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}

	if _, err := os.Stat(localFile); err == nil {
		if err := godotenv.Overload(localFile); err != nil {
			return fmt.Errorf("load %s: %w", localFile, err)
		}
	}

	var portFlag string
	flag.StringVar(&portFlag, "port", "", "Server port (overrides PORT environment variable)")
	if !flag.Parsed() {
		flag.Parse()
	}

	if portFlag == "" {
		return nil
	}

	if _, err := strconv.ParseUint(portFlag, 10, 16); err != nil {
		return fmt.Errorf("invalid -port %q: %w", portFlag, err)
	}
	if err := os.Setenv("PORT", portFlag); err != nil {
		return fmt.Errorf("failed to set PORT environment variable: %w", err)
	}
	return nil
}
