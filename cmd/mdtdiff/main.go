package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/tyngw/mdtable-diff/internal/diff"
	"github.com/tyngw/mdtable-diff/internal/table"
	"github.com/tyngw/mdtable-diff/internal/tools"
	"github.com/tyngw/mdtable-diff/internal/types"
	"github.com/tyngw/mdtable-diff/pkg/config"
	"github.com/tyngw/mdtable-diff/pkg/spinner"
)

var version = "dev"

func main() {
	filePath := flag.String("file", "", "Markdown file to inspect")
	revRange := flag.String("range", "", "Git revision range (default: working tree vs HEAD)")
	configFile := flag.String("config", "", "Path to configuration file")
	showVersion := flag.Bool("version", false, "Show version information")
	showHelp := flag.Bool("help", false, "Show help message")
	flag.Parse()

	if *showVersion {
		fmt.Printf("mdtdiff version %s\n", version)
		return
	}

	if *showHelp || *filePath == "" {
		fmt.Println("mdtdiff - structural diff for markdown tables")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Printf("  %s -file FILE [options]\n", os.Args[0])
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Printf("  %s -file README.md                      # working tree vs HEAD\n", os.Args[0])
		fmt.Printf("  %s -file README.md -range HEAD~3..HEAD  # across a revision range\n", os.Args[0])
		if *filePath == "" && !*showHelp {
			os.Exit(1)
		}
		return
	}

	cfg := config.DefaultConfig()
	if *configFile != "" {
		loaded, err := config.LoadConfig(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to load config from %s: %v\n", *configFile, err)
			os.Exit(1)
		}
		cfg = loaded
	}

	source, err := os.ReadFile(*filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to read %s: %v\n", *filePath, err)
		os.Exit(1)
	}

	tables := table.ParseTables(source)
	if len(tables) == 0 {
		fmt.Printf("No tables found in %s\n", *filePath)
		return
	}

	gitSource := &tools.GitDiffSource{GitBinary: cfg.Git.Binary}
	cache := diff.NewCache(time.Duration(cfg.Diff.CacheTTLMillis)*time.Millisecond, nil)
	detector := &diff.ColumnDetector{
		SimilarityThreshold: cfg.Diff.SimilarityThreshold,
		SamplingThreshold:   cfg.Diff.SamplingThreshold,
	}
	analyzer := diff.NewAnalyzer(gitSource, cache, detector)

	spin := spinner.New("Computing table diffs...")
	spin.Start()

	type tableReport struct {
		data    types.TableData
		rows    []types.RowDiff
		columns types.ColumnDiffResult
	}
	var reports []tableReport
	for _, t := range tables {
		rows := analyzer.RowDiffs(*filePath, *revRange, t)
		cols := analyzer.ColumnDiffsFromRows(rows, t)
		reports = append(reports, tableReport{data: t, rows: rows, columns: cols})
	}

	spin.Stop()

	for i, r := range reports {
		fmt.Printf("Table %d (lines %d-%d):\n", i+1, r.data.StartLine+1, r.data.EndLine+1)
		tools.RenderRowDiffs(os.Stdout, r.data, r.rows)
		tools.RenderColumnDiff(os.Stdout, r.columns)
		fmt.Println()
	}
}
