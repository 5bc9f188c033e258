// Command emoctl is the debug and maintenance CLI for emolens.
//
// Usage:
//
//	emoctl                     Show help
//	emoctl history             List the archived analysis runs
//	emoctl inspect <artifact>  Parse an artifact and show its series
//	emoctl export <artifact>   Dump an artifact as normalized CSV
//	emoctl verify              Check every archived artifact is reachable
package main

import (
	"fmt"
	"os"
)

const usage = `emoctl — emolens debug & maintenance CLI

Usage:
  emoctl <command> [flags]

Commands:
  history     List the archived analysis runs
  inspect     Fetch and parse one artifact, show its label distribution
  export      Dump one artifact as normalized CSV
  verify      Check that every archived artifact is still fetchable

Environment:
  EMOLENS_API_URL   Inference service base URL (overrides config)
  EMOLENS_PLAN      Plan tier: basic, plus or pro (overrides config)

Run 'emoctl <command> -h' for command-specific help.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(0)
	}

	cmd := os.Args[1]
	// Strip the program name + subcommand so flag sets see only their flags
	os.Args = os.Args[1:]

	switch cmd {
	case "history":
		runHistory()
	case "inspect":
		runInspect()
	case "export":
		runExport()
	case "verify":
		runVerify()
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "emoctl: unknown command %q\n\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}
