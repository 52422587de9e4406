package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/HonzaMatousek/libdivecomputer/internal/parser"
	"github.com/HonzaMatousek/libdivecomputer/pkg/divecomputer"
)

// Decode flags shared by the parse and import commands.
var (
	decodeFamily      string
	decodeDevTime     uint32
	decodeSysTime     string
	decodeAtmospheric float64
	decodeDensity     float64

	dumpFile string
	dumpRaw  bool
)

func addDecodeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&decodeFamily, "family", "", "parser backend (defaults to the configured family)")
	cmd.Flags().Uint32Var(&decodeDevTime, "devtime", 0, "device tick counter captured at download time")
	cmd.Flags().StringVar(&decodeSysTime, "systime", "", "download instant in RFC 3339 (defaults to now)")
	cmd.Flags().Float64Var(&decodeAtmospheric, "atmospheric", 0, "atmospheric pressure in Pa (defaults to the configured value)")
	cmd.Flags().Float64Var(&decodeDensity, "density", 0, "water density in kg/m3 (defaults to the configured value)")
	cmd.Flags().StringVarP(&dumpFile, "file", "f", "", "read the dump from a file instead of the command line")
	cmd.Flags().BoolVar(&dumpRaw, "raw", false, "treat --file as raw binary instead of hex text")
}

// loadDump decodes the dump named by --file or by the positional hex
// argument.
func loadDump(opts divecomputer.ParseOptions, args []string) (divecomputer.Result, error) {
	switch {
	case dumpFile != "":
		data, err := os.ReadFile(dumpFile)
		if err != nil {
			return divecomputer.Result{}, fmt.Errorf("read dump file: %w", err)
		}
		if dumpRaw {
			return divecomputer.Parse(data, opts)
		}
		return divecomputer.ParseHexWithOptions(string(data), opts)
	case len(args) == 1:
		return divecomputer.ParseHexWithOptions(args[0], opts)
	default:
		return divecomputer.Result{}, fmt.Errorf("either a hex argument or --file is required")
	}
}

// decodeOptions merges the decode flags with the configuration defaults.
func decodeOptions() (divecomputer.ParseOptions, error) {
	opts := divecomputer.ParseOptions{
		Family:      decodeFamily,
		DevTime:     decodeDevTime,
		Atmospheric: decodeAtmospheric,
	}
	if opts.Family == "" {
		opts.Family = appConfig.Parser.Family
	}
	if opts.Atmospheric == 0 {
		opts.Atmospheric = appConfig.Parser.Atmospheric
	}
	density := decodeDensity
	if density == 0 {
		density = appConfig.Parser.WaterDensity
	}
	opts.Hydrostatic = density * parser.Gravity
	if decodeSysTime != "" {
		systime, err := time.Parse(time.RFC3339, decodeSysTime)
		if err != nil {
			return opts, fmt.Errorf("invalid --systime: %w", err)
		}
		opts.SysTime = systime
	}
	return opts, nil
}
