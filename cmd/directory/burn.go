package main

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/seantiz/directory/internal/loadgen"
)

func burnCommand() *cobra.Command {
	var seconds int

	cmd := &cobra.Command{
		Use:    "burn",
		Short:  "Keep one CPU busy for a fixed duration",
		Args:   cobra.NoArgs,
		Hidden: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			loadgen.Burn(ctx, time.Duration(seconds)*time.Second)
			return nil
		},
	}

	cmd.Flags().IntVar(&seconds, "duration", loadgen.DefaultSeconds, "seconds to keep the CPU busy")
	return cmd
}
