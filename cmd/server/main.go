package main // Entry point package

import (
	"log"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Fatal(err)
	}
}

// newRootCommand runs the HTTP server when no subcommand is given.
func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "restaurant",
		Short:         "Restaurant operations backend: tables, menu, bookings and orders",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	root.AddCommand(newServeCommand(), newAuditConsumerCommand())
	return root
}
