package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/sync/errgroup"

	"github.com/MichonGoddijn231849/emolens/internal/history"
)

// verifyResult is one archived run's health check.
type verifyResult struct {
	entry    history.Entry
	segments int
	err      error
}

func runVerify() {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	parallel := fs.Int("p", 4, "Concurrent artifact fetches")
	prune := fs.Bool("prune", false, "Remove entries whose artifact is gone")
	fs.Parse(os.Args[1:])

	st := openStore()
	defer st.Close()

	entries, err := st.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "list failed: %v\n", err)
		os.Exit(1)
	}
	if len(entries) == 0 {
		fmt.Println("archive is empty, nothing to verify")
		return
	}

	client := newClient(loadConfig())

	results := make([]verifyResult, len(entries))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(*parallel)
	for i, e := range entries {
		i, e := i, e
		g.Go(func() error {
			fetchCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()
			events, err := client.FetchArtifact(fetchCtx, e.ArtifactRef)
			mu.Lock()
			results[i] = verifyResult{entry: e, segments: len(events), err: err}
			mu.Unlock()
			return nil // one bad artifact must not stop the sweep
		})
	}
	g.Wait()

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Artifact", "Segments", "Status"})

	broken := 0
	for _, r := range results {
		status := "ok"
		if r.err != nil {
			status = truncate(r.err.Error(), 50)
			broken++
		}
		t.AppendRow(table.Row{r.entry.ID, truncate(r.entry.ArtifactRef, 40), r.segments, status})
	}
	t.Render()
	fmt.Printf("%d of %d artifacts reachable\n", len(results)-broken, len(results))

	if !*prune || broken == 0 {
		return
	}

	for _, r := range results {
		if r.err == nil {
			continue
		}
		if err := st.Remove(r.entry.ID); err != nil {
			fmt.Fprintf(os.Stderr, "prune %s failed: %v\n", r.entry.ID, err)
			continue
		}
		fmt.Printf("pruned %s\n", r.entry.ID)
	}
}
