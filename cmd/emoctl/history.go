package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/MichonGoddijn231849/emolens/internal/history"
)

func runHistory() {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	clearAll := fs.Bool("clear", false, "Empty the archive instead of listing it")
	fs.Parse(os.Args[1:])

	st := openStore()
	defer st.Close()

	if *clearAll {
		if err := st.Clear(); err != nil {
			fmt.Fprintf(os.Stderr, "clear failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("archive cleared")
		return
	}

	entries, err := st.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "list failed: %v\n", err)
		os.Exit(1)
	}

	if len(entries) == 0 {
		fmt.Println("archive is empty")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Created", "Source", "Plan", "Artifact", "Feedback"})
	for _, e := range entries {
		feedback := ""
		if e.FeedbackSubmitted {
			feedback = "sent"
		}
		t.AppendRow(table.Row{
			e.ID,
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			truncate(e.SourceRef, 40),
			e.Plan,
			truncate(e.ArtifactRef, 40),
			feedback,
		})
	}
	t.Render()

	fmt.Printf("%d of %d slots used\n", len(entries), history.MaxEntries)
}
