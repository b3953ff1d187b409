package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"yashubustudio/idgen/generator"
)

func main() {
	verbose := flag.Bool("v", false, "Print every entity, not only mismatches")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-v] FILE\n\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		log.Fatalf("idgen-verify: %v", errors.New("expected exactly one input file"))
	}

	samples, err := generator.ReadSamples(flag.Arg(0))
	if err != nil {
		log.Fatalf("idgen-verify: %v", err)
	}
	rep := generator.Verify(samples)
	printReport(samples, rep, *verbose)
	if !rep.Accurate() {
		os.Exit(1)
	}
}

func printReport(samples []generator.Sample, rep generator.Report, verbose bool) {
	last := -1
	for _, c := range rep.Checks {
		if !verbose && c.OK {
			continue
		}
		if c.Sample != last {
			last = c.Sample
			fmt.Printf("\nItem %d: %s\n", c.Sample+1, preview(samples[c.Sample].Text, 80))
		}
		mark := "ok "
		if !c.OK {
			mark = "BAD"
		}
		fmt.Printf("  [%s] [%d:%d] %-18s expected %q got %q\n",
			mark, c.Entity.Start, c.Entity.End, c.Entity.Label, c.Entity.Value, c.Actual)
	}
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Items:    %d\n", len(samples))
	fmt.Printf("Entities: %d\n", rep.Total)
	fmt.Printf("Errors:   %d\n", rep.Errors)
	if rep.Total > 0 {
		fmt.Printf("Accuracy: %.2f%%\n", 100*float64(rep.Total-rep.Errors)/float64(rep.Total))
	}
	if rep.Accurate() {
		fmt.Println("All entity positions are correct.")
	}
}

func preview(text string, limit int) string {
	text = strings.ReplaceAll(text, "\n", " ")
	r := []rune(text)
	if len(r) > limit {
		return string(r[:limit]) + "…"
	}
	return text
}
