// Command vcdiff compares two Value Change Dump waveform files and reports
// every point where their recorded signal values disagree.
package main

import (
	"os"

	"github.com/db47h/vcdiff/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
