package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/MichonGoddijn231849/emolens/internal/segment"
)

func runExport() {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("o", "", "Output file (default stdout)")
	fs.Parse(os.Args[1:])

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: emoctl export [-o file] <artifact url or path>")
		os.Exit(1)
	}
	ref := fs.Arg(0)

	events, err := fetchEvents(newClient(loadConfig()), ref)
	if err != nil {
		fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
		os.Exit(1)
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	if err := segment.WriteArtifact(w, events); err != nil {
		fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
		os.Exit(1)
	}

	if *out != "" {
		fmt.Fprintf(os.Stderr, "wrote %d segments to %s\n", len(events), *out)
	}
}
