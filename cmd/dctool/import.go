package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/HonzaMatousek/libdivecomputer/internal/logbook"
)

var importCmd = &cobra.Command{
	Use:   "import [hex]",
	Short: "Decode a memory dump and store the dive in the logbook",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := decodeOptions()
		if err != nil {
			return err
		}
		result, err := loadDump(opts, args)
		if err != nil {
			return err
		}

		store, err := openLogbook()
		if err != nil {
			return err
		}
		defer store.Close()

		dive, err := logbook.FromResult(result)
		if err != nil {
			return err
		}
		id, err := store.Put(dive)
		if err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{
			"id":     id,
			"family": result.Family,
			"bytes":  result.ByteCount,
		}).Info("dive imported")
		fmt.Println(id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	addDecodeFlags(importCmd)
}
