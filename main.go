package main

import (
	"github.com/joho/godotenv"

	"github.com/DoubleTimeOnly/daybrief/cmd"
)

// version will be set by goreleaser during build
var version = "dev"

func main() {
	// Pick up GOOGLE_CLIENT_ID / GOOGLE_CLIENT_SECRET from a local .env if
	// present; a missing file is fine.
	_ = godotenv.Load()

	// Set the version from build-time variable
	cmd.SetVersion(version)

	// Execute the root command
	cmd.Execute()
}
