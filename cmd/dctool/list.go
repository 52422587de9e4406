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
	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List the dives stored in the logbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openLogbook()
			if err != nil {
				return err
			}
			defer store.Close()

			dives, err := store.List()
			if err != nil {
				return err
			}
			if listAsJSON {
				return outputDivesJSON(dives)
			}
			return outputDivesTable(dives)
		},
	}

	listAsJSON bool
)

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listAsJSON, "json", false, "print the dives as JSON")
}

func outputDivesTable(dives []logbook.Dive) error {
	if len(dives) == 0 {
		fmt.Println("No dives stored")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ID\tSTART\tDURATION\tMAX DEPTH\tSAMPLES\tFAMILY")

	for _, dive := range dives {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f m\t%d\t%s\n",
			dive.ID,
			dive.StartTime.Format("2006-01-02 15:04"),
			formatDuration(dive.DiveTime),
			dive.MaxDepth,
			len(dive.Samples),
			dive.Family)
	}

	return nil
}

func outputDivesJSON(dives []logbook.Dive) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(dives)
}

// formatDuration renders a dive time in seconds as e.g. "43m20s".
func formatDuration(seconds float64) string {
	return (time.Duration(seconds) * time.Second).String()
}
