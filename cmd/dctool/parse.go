package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/HonzaMatousek/libdivecomputer/pkg/divecomputer"
)

var (
	parseCmd = &cobra.Command{
		Use:   "parse [hex]",
		Short: "Decode a memory dump and print the dive header",
		Long: `parse decodes a memory dump given as a hex argument or via --file.
Without either it reads hex dumps interactively from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := decodeOptions()
			if err != nil {
				return err
			}
			if len(args) == 0 && dumpFile == "" {
				return runInteractive(opts)
			}
			result, err := loadDump(opts, args)
			if err != nil {
				return err
			}
			return printResult(result)
		},
	}

	parseShowSamples bool
	parseAsJSON      bool
)

func init() {
	rootCmd.AddCommand(parseCmd)
	addDecodeFlags(parseCmd)
	parseCmd.Flags().BoolVar(&parseShowSamples, "samples", false, "print the decoded sample rows")
	parseCmd.Flags().BoolVar(&parseAsJSON, "json", false, "print the full result as JSON")
}

func runInteractive(opts divecomputer.ParseOptions) error {
	scanner := bufio.NewScanner(os.Stdin)
	// Memory dumps are far longer than the default token limit.
	scanner.Buffer(make([]byte, 0, 1024*1024), 8*1024*1024)
	logrus.Info("dctool parse mode. Paste a hex dump and press Enter (Ctrl+D to exit).")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		result, err := divecomputer.ParseHexWithOptions(line, opts)
		if err != nil {
			logrus.WithError(err).Error("failed to decode dump")
			continue
		}
		if err := printResult(result); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func printResult(result divecomputer.Result) error {
	if parseAsJSON {
		blob, err := json.MarshalIndent(map[string]any{
			"family":     result.Family,
			"byte_count": result.ByteCount,
			"start_time": result.StartTime.Format(time.RFC3339),
			"fields":     result.Fields,
			"samples":    result.Samples,
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(blob))
		return nil
	}
	fmt.Println(result.String())
	if parseShowSamples {
		for _, s := range result.Samples {
			fmt.Printf("t=%5.0fs  temp=%6.2fC  depth=%6.2fm\n", s.Time, s.Temperature, s.Depth)
		}
	}
	return nil
}
