package app

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"yashubustudio/idgen/generator"
)

var entityCSVHeader = []string{"sample", "format", "start", "end", "label", "value", "span_ok"}

// entityRecords flattens preview rows into one CSV record per entity.
func entityRecords(rows []PreviewRow) [][]string {
	records := make([][]string, 0, len(rows)*8+1)
	records = append(records, entityCSVHeader)
	for _, r := range rows {
		runes := []rune(r.Sample.Text)
		for _, e := range r.Sample.Entities {
			ok := "no"
			if e.Start >= 0 && e.End <= len(runes) && e.Start <= e.End && string(runes[e.Start:e.End]) == e.Value {
				ok = "yes"
			}
			records = append(records, []string{
				strconv.Itoa(r.Index + 1),
				string(r.Format),
				strconv.Itoa(e.Start),
				strconv.Itoa(e.End),
				e.Label,
				e.Value,
				ok,
			})
		}
	}
	return records
}

func writeEntityCSV(w io.Writer, rows []PreviewRow) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(entityRecords(rows)); err != nil {
		return fmt.Errorf("write entity csv: %w", err)
	}
	return nil
}

func writeSamplesJSON(w io.Writer, rows []PreviewRow) error {
	samples := make([]generator.Sample, len(rows))
	for i, r := range rows {
		samples[i] = r.Sample
	}
	return generator.EncodeSamples(w, samples)
}

// entityLines renders the entities of a sample for the detail dialog.
func entityLines(s generator.Sample) []string {
	lines := make([]string, 0, len(s.Entities))
	for _, e := range s.Entities {
		mark := "✓"
		if generator.SpanText(s.Text, e.Start, e.End) != e.Value {
			mark = "✗"
		}
		lines = append(lines, fmt.Sprintf("%s [%d:%d] %-18s %q", mark, e.Start, e.End, e.Label, e.Value))
	}
	return lines
}
