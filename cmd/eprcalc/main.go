// Command eprcalc evaluates fall-of-potential earth test surveys.
//
//	eprcalc evaluate site-7.yaml
//	eprcalc evaluate site-7.yaml.zst --strategy average-last-n --json
//	eprcalc convert site-7.yaml site-7.yaml.zst
//
// Defaults for the analysis flags may be set with EPRCALC_STRATEGY,
// EPRCALC_PLATEAU_WINDOW and EPRCALC_TAIL_MIN, either in the environment or in a
// .env file in the working directory. LOG_LEVEL and LOG_FORMAT control logging.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/arloliu/eprcalc/internal/logger"
)

func main() {
	_ = godotenv.Load(".env")
	l := logger.Setup()

	if err := newRootCmd(l).Execute(); err != nil {
		l.Error("command_failed", "err", err)
		os.Exit(1)
	}
}
