package main

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newRootCmd(l *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "eprcalc",
		Short: "Earth potential rise and ground resistance from probe traverses",
		Long: `eprcalc analyses fall-of-potential survey files. It finds the knee between
near-field and remote readings, estimates the remote-earth voltage, derives the
ground resistance and the EPR scaled to fault current, and judges whether the
far readings have reached a plateau.

Survey files are YAML, optionally compressed (.zst, .s2, .lz4).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newEvaluateCmd(l), newConvertCmd(l))

	return root
}

func envString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}

	return fallback
}

func envInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}

	return n
}
