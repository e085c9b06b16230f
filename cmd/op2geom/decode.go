package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/op2geom/internal/api"
	"github.com/samcharles93/op2geom/internal/logger"
	"github.com/samcharles93/op2geom/internal/model"
	"github.com/samcharles93/op2geom/pkg/op2"
)

type decodeOptions struct {
	Path      string
	Endian    string
	Precision string
	Output    string
	Strict    bool
	Debug     io.Writer
}

func decodeCmd() *cli.Command {
	var (
		filePath string
		output   string
		strict   bool
	)

	return &cli.Command{
		Name:      "decode",
		Usage:     "Decode the GEOM4 records of an OP2 table",
		ArgsUsage: "<file>",
		Flags: append(formatFlags(),
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "path to the GEOM4 table stream",
				Destination: &filePath,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "output format (summary, json)",
				Value:       "summary",
				Destination: &output,
			},
			&cli.StringFlag{
				Name:        "debug-out",
				Usage:       "write the per record debug stream to a file (- for stderr)",
				Destination: &debugOut,
			},
			&cli.BoolFlag{
				Name:        "strict",
				Usage:       "exit non-zero when any record fails to decode",
				Destination: &strict,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			applyDecodeConfig(cmd, loaded)
			if filePath == "" {
				filePath = cmd.Args().First()
			}
			if filePath == "" {
				return cli.Exit("error: a stream file is required (argument or --file)", 1)
			}

			dbg, closeDebug, err := openDebugOut(debugOut)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			defer closeDebug()

			err = runDecode(ctx, logger.FromContext(ctx), os.Stdout, decodeOptions{
				Path:      filePath,
				Endian:    endian,
				Precision: precision,
				Output:    output,
				Strict:    strict,
				Debug:     dbg,
			})
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			return nil
		},
	}
}

func openDebugOut(path string) (io.Writer, func(), error) {
	switch path {
	case "":
		return nil, func() {}, nil
	case "-":
		return os.Stderr, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

func runDecode(ctx context.Context, log logger.Logger, out io.Writer, opts decodeOptions) error {
	if opts.Output != "summary" && opts.Output != "json" {
		return fmt.Errorf("unknown output format %q (want summary or json)", opts.Output)
	}
	p, ok := op2.ParsePrecision(opts.Precision)
	if !ok {
		return fmt.Errorf("unknown precision %q (want single or double)", opts.Precision)
	}

	f, err := op2.OpenFile(opts.Path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	order, err := op2.ResolveByteOrder(opts.Endian, f.Data)
	if err != nil {
		return err
	}
	format := op2.Format{Order: order, Precision: p}

	m := model.New()
	start := time.Now()
	stats, err := op2.NewDecoder(format).DecodeStream(ctx, m, logger.NewDiagnostics(log, opts.Debug), f.Data)
	if err != nil {
		return fmt.Errorf("%s: %w", opts.Path, err)
	}
	log.Info("decoded stream",
		"file", opts.Path,
		"bytes", len(f.Data),
		"entities", m.Len(),
		"elapsed", time.Since(start).Round(time.Microsecond),
	)

	result := api.DecodeResult{
		Endian:    op2.OrderName(order),
		Precision: p.String(),
		Stats:     stats,
		Cards:     m.Summary(),
		Entities:  m.Items(),
	}
	if opts.Output == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	} else {
		writeSummary(out, opts.Path, result)
	}

	if opts.Strict && stats.FailedTotal() > 0 {
		return errors.New(failedMessage(stats))
	}
	return nil
}

func writeSummary(w io.Writer, path string, r api.DecodeResult) {
	s := r.Stats
	_, _ = fmt.Fprintf(w, "%s (%s endian, %s precision)\n\n", path, r.Endian, r.Precision)
	_, _ = fmt.Fprintf(w, "  blocks   %8d\n", s.Blocks)
	_, _ = fmt.Fprintf(w, "  markers  %8d\n", s.Markers)
	_, _ = fmt.Fprintf(w, "  decoded  %8d\n", s.Decoded)
	_, _ = fmt.Fprintf(w, "  skipped  %8d\n", s.Skipped)
	_, _ = fmt.Fprintf(w, "  failed   %8d\n", s.FailedTotal())
	_, _ = fmt.Fprintf(w, "  entities %8d\n", s.Entities)
	if len(r.Cards) == 0 {
		return
	}
	_, _ = fmt.Fprintf(w, "\n  %-10s %8s %8s\n", "CARD", "RECORDS", "STORED")
	for _, c := range r.Cards {
		_, _ = fmt.Fprintf(w, "  %-10s %8d %8d\n", c.Card, c.Records, c.Entities)
	}
}

func failedMessage(s op2.Stats) string {
	if s.FailedTotal() == 1 {
		return "1 record failed to decode"
	}
	return fmt.Sprintf("%d records failed to decode", s.FailedTotal())
}
