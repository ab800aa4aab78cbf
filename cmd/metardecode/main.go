// Command metardecode decodes raw METAR reports without touching the network.
//
// Usage:
//
//	metardecode [-station KJFK] [-format json|text] [report ...]
//
// Each argument is decoded as one report. With no arguments, every non-blank
// line of stdin is decoded independently.
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/couchcryptid/metarflow-service/internal/domain"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("metardecode", flag.ContinueOnError)
	fs.SetOutput(stderr)
	station := fs.String("station", "", "station hint used when a report carries no station")
	format := fs.String("format", "json", "output format: json or text")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	write, err := writerFor(*format, stdout)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	hint := strings.ToUpper(strings.TrimSpace(*station))

	if fs.NArg() > 0 {
		for _, report := range fs.Args() {
			if err := write(domain.Decode(report, hint)); err != nil {
				fmt.Fprintln(stderr, "write report:", err)
				return 1
			}
		}
		return 0
	}

	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := write(domain.Decode(line, hint)); err != nil {
			fmt.Fprintln(stderr, "write report:", err)
			return 1
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintln(stderr, "read stdin:", err)
		return 1
	}
	return 0
}

func writerFor(format string, w io.Writer) (func(domain.Report) error, error) {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		return func(r domain.Report) error { return enc.Encode(r) }, nil
	case "text":
		first := true
		return func(r domain.Report) error {
			if !first {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			first = false
			return writeText(w, r)
		}, nil
	default:
		return nil, errors.New("unknown format " + format + ": want json or text")
	}
}

// writeText prints one "Label: value" line per decoded section, skipping
// sections that were absent from the report.
func writeText(w io.Writer, r domain.Report) error {
	rows := []struct{ label, value string }{
		{"Station", r.Station},
		{"Date/Time", r.DateTime},
		{"Wind", r.Wind},
		{"Visibility", r.Visibility},
		{"Weather", r.Weather},
		{"Clouds", r.Clouds},
		{"Temperature", r.Temperature},
		{"Dewpoint", r.Dewpoint},
		{"Altimeter", r.Altimeter},
		{"Remarks", r.Remarks},
		{"Raw", r.Raw},
	}
	for _, row := range rows {
		if row.value == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "%-12s %s\n", row.label+":", row.value); err != nil {
			return err
		}
	}
	return nil
}
