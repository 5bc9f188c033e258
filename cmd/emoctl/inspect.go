package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/MichonGoddijn231849/emolens/internal/segment"
	"github.com/MichonGoddijn231849/emolens/internal/timecode"
	"github.com/MichonGoddijn231849/emolens/internal/timeline"
)

func runInspect() {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	showRows := fs.Bool("rows", false, "Print every parsed segment row")
	fs.Parse(os.Args[1:])

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: emoctl inspect [-rows] <artifact url or path>")
		os.Exit(1)
	}
	ref := fs.Arg(0)

	cfg := loadConfig()
	events, err := fetchEvents(newClient(cfg), ref)
	if err != nil {
		fmt.Fprintf(os.Stderr, "inspect failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%d segments, plan vocabulary %q\n\n", len(events), cfg.API.Plan)

	series := timeline.Build(events, segment.Labels(cfg.API.Plan))

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Label", "Count"})
	for _, d := range series.Distribution {
		t.AppendRow(table.Row{d.Label, d.Count})
	}
	t.Render()

	fmt.Printf("\n%d counted buckets\n", len(series.Counted))
	if len(series.Continuous) > 0 {
		fmt.Printf("intensity curve: %d points\n", len(series.Continuous))
	} else {
		fmt.Printf("stripe: %d segments\n", len(series.Segments))
	}

	if !*showRows {
		return
	}

	fmt.Println()
	rt := table.NewWriter()
	rt.SetOutputMirror(os.Stdout)
	rt.SetStyle(table.StyleLight)
	rt.AppendHeader(table.Row{"#", "Start", "Label", "Text"})
	for i, ev := range events {
		rt.AppendRow(table.Row{i + 1, timecode.Format(ev.StartMs), ev.Label, truncate(ev.Text, 60)})
	}
	rt.Render()
}
