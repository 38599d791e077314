package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/arloliu/eprcalc/compress"
	"github.com/arloliu/eprcalc/surveyfile"
)

func newConvertCmd(l *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Re-encode a survey file, choosing compression from the output suffix",
		Long: `convert reads a survey file and writes it back as normalised YAML. Rows
without an id are given one. The output suffix (.zst, .s2, .lz4 or none) selects
the compression.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, l, args[0], args[1])
		},
	}
}

func runConvert(cmd *cobra.Command, l *slog.Logger, in, out string) error {
	s, err := surveyfile.Load(in)
	if err != nil {
		return err
	}
	if err := surveyfile.Save(out, s.File); err != nil {
		return err
	}

	src, err := os.Stat(in)
	if err != nil {
		return err
	}
	dst, err := os.Stat(out)
	if err != nil {
		return err
	}
	typ := compress.TypeForPath(out)
	l.Debug("converted", "in", in, "out", out, "compression", typ.String(),
		"in_bytes", src.Size(), "out_bytes", dst.Size())

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) -> %s (%s, %s), %d rows\n",
		in, humanize.Bytes(uint64(src.Size())),
		out, humanize.Bytes(uint64(dst.Size())), typ, len(s.File.Samples))

	return err
}
