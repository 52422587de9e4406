package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/HonzaMatousek/libdivecomputer/internal/api"
)

var (
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the dive log HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openLogbook()
			if err != nil {
				return err
			}
			defer store.Close()

			addr := appConfig.Listen
			if serveListen != "" {
				addr = serveListen
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			server := api.NewServer(store, logrus.StandardLogger(), api.NewMetrics(reg))
			return server.ListenAndServe(addr)
		},
	}

	serveListen string
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&serveListen, "listen", "l", "", "listen address (overrides the config file)")
}
