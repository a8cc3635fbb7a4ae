package main

import (
	"log"
	"os"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Diagnostics go to stderr; stdout carries command output only.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if os.Getenv("FIDUCIAL_LOG_LEVEL") == "debug" {
		log.Printf("fiducial v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	Execute()
}
