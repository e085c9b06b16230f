package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/op2geom/internal/api"
	"github.com/samcharles93/op2geom/pkg/op2"
)

func recordsCmd() *cli.Command {
	var (
		implemented bool
		asJSON      bool
	)

	return &cli.Command{
		Name:      "records",
		Aliases:   []string{"ls"},
		Usage:     "List the GEOM4 record keys the decoder dispatches",
		ArgsUsage: "[code,increment,revision]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "implemented",
				Usage:       "only list keys with a decoder",
				Destination: &implemented,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print JSON instead of a table",
				Destination: &asJSON,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			infos, err := selectRecords(op2.Geom4Table(), cmd.Args().First(), implemented)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(api.RecordsResponse{Object: "list", Data: infos})
			}
			writeRecords(os.Stdout, infos)
			return nil
		},
	}
}

// selectRecords filters table by an optional key argument and the
// implemented flag.
func selectRecords(table *op2.Table, arg string, implementedOnly bool) ([]api.RecordInfo, error) {
	if arg != "" {
		k, err := op2.ParseRecordKey(arg)
		if err != nil {
			return nil, err
		}
		e, ok := table.Lookup(k)
		if !ok {
			return nil, fmt.Errorf("record key %s is not in the GEOM4 table", k)
		}
		table = op2.NewTable(map[op2.RecordKey]op2.Entry{k: e})
	}
	all := api.RecordInfos(table)
	if !implementedOnly {
		return all, nil
	}
	out := all[:0]
	for _, info := range all {
		if info.Implemented {
			out = append(out, info)
		}
	}
	return out, nil
}

func writeRecords(w io.Writer, infos []api.RecordInfo) {
	decoded := 0
	for _, info := range infos {
		name := info.Name
		if name == "" {
			name = "-"
		}
		status := "skip"
		if info.Implemented {
			status = "decode"
			decoded++
		}
		_, _ = fmt.Fprintf(w, "  %-16s %-10s %s\n", info.Key, name, status)
	}
	_, _ = fmt.Fprintf(w, "\n%d key(s), %d decoded\n", len(infos), decoded)
}
