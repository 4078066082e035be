package main

import (
	"os"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
)

const serviceName = "supply-orders"

var rootCmd = &cobra.Command{
	Use:           "orders",
	Short:         "Supply order service",
	Long:          `Accepts supply orders from branches and forwards them to the resource planning system.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}
