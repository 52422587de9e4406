package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/HonzaMatousek/libdivecomputer/internal/logbook"
)

var (
	showCmd = &cobra.Command{
		Use:   "show <id>",
		Short: "Show a stored dive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openLogbook()
			if err != nil {
				return err
			}
			defer store.Close()

			dive, err := store.Get(args[0])
			if err != nil {
				return err
			}
			if showAsJSON {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(dive)
			}
			return outputDiveTable(dive)
		},
	}

	showAsJSON      bool
	showWithSamples bool
)

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showAsJSON, "json", false, "print the dive as JSON")
	showCmd.Flags().BoolVar(&showWithSamples, "samples", false, "print the sample rows")
}

func outputDiveTable(dive logbook.Dive) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "ID:\t%s\n", dive.ID)
	fmt.Fprintf(w, "Family:\t%s\n", dive.Family)
	fmt.Fprintf(w, "Start:\t%s\n", dive.StartTime.Format(time.RFC3339))
	fmt.Fprintf(w, "Duration:\t%s\n", formatDuration(dive.DiveTime))
	fmt.Fprintf(w, "Max depth:\t%.1f m\n", dive.MaxDepth)
	fmt.Fprintf(w, "Gas mixes:\t%d\n", dive.GasMixCount)
	fmt.Fprintf(w, "Samples:\t%d\n", len(dive.Samples))
	fmt.Fprintf(w, "Imported:\t%s\n", dive.ImportedAt.Format(time.RFC3339))

	if showWithSamples {
		for _, s := range dive.Samples {
			fmt.Fprintf(w, "\tt=%.0fs\ttemp=%.2fC\tdepth=%.2fm\n", s.Time, s.Temperature, s.Depth)
		}
	}

	return nil
}
