package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"mailmeter/internal/cli"
	"mailmeter/internal/console"
	"mailmeter/internal/mailbox"
)

func main() {
	cli.LoadEnvFile()

	delimiter := flag.String("delimiter", ",", "CSV field delimiter")
	unwantedFile := flag.String("unwanted-file", "./data/unwanted.csv", "path to the unwanted-sender list")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(1)
	}
	path := flag.Arg(0)

	if len([]rune(*delimiter)) != 1 {
		fmt.Fprintf(os.Stderr, "delimiter must be a single character, got %q\n", *delimiter)
		os.Exit(1)
	}

	reader, err := mailbox.NewFromCSVFile(path, []rune(*delimiter)[0], *unwantedFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load %s: %v\n", path, err)
		os.Exit(1)
	}

	p := tea.NewProgram(console.NewAppModel(reader), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "console error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] <export.csv>\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Interactive sender management for a mailbox CSV export.\n\nFlags:\n")
	flag.PrintDefaults()
}
