// Command physioctl inspects and maintains visitor bookings in the
// configured state store.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"
	_ "time/tzdata"

	"github.com/spf13/cobra"

	"github.com/wolfman30/physio-clinic/cmd/mainconfig"
	"github.com/wolfman30/physio-clinic/internal/app/bootstrap"
	"github.com/wolfman30/physio-clinic/internal/bookings"
	"github.com/wolfman30/physio-clinic/internal/clinic"
	appconfig "github.com/wolfman30/physio-clinic/internal/config"
	"github.com/wolfman30/physio-clinic/internal/schedule"
	"github.com/wolfman30/physio-clinic/internal/state"
	"github.com/wolfman30/physio-clinic/pkg/logging"
)

// serviceFactory opens the booking service and returns a cleanup func.
type serviceFactory func(ctx context.Context) (*bookings.Service, func(), error)

func main() {
	if err := newRootCmd(openService).Execute(); err != nil {
		os.Exit(1)
	}
}

func openService(ctx context.Context) (*bookings.Service, func(), error) {
	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)

	loc, err := schedule.LoadLocation(cfg.ClinicTimezone)
	if err != nil {
		return nil, nil, err
	}
	rt, err := mainconfig.Connect(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	store, err := bootstrap.BuildStore(cfg, rt.Backends, logger)
	if err != nil {
		rt.Close()
		return nil, nil, err
	}

	svc := bookings.NewService(state.NewService(store, logger, nil), nil, logger,
		bookings.WithLocation(loc),
		bookings.WithEventLocation(clinic.DefaultProfile().EventLocation()),
		bookings.WithWindowDays(cfg.BookingWindowDays),
	)
	return svc, rt.Close, nil
}

func newRootCmd(open serviceFactory) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "physioctl",
		Short:        "Inspect clinic availability and visitor bookings",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(daysCmd(open))
	rootCmd.AddCommand(slotsCmd(open))
	rootCmd.AddCommand(icsCmd(open))
	rootCmd.AddCommand(bookingsCmd(open))
	return rootCmd
}

func daysCmd(open serviceFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "days",
		Short: "List the open booking days",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, done, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer done()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, d := range svc.OpenDays() {
				fmt.Fprintf(w, "%s\t%s\n", d.Date, d.Label)
			}
			return w.Flush()
		},
	}
}

func slotsCmd(open serviceFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slots",
		Short: "List available times for a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, _ := cmd.Flags().GetString("date")
			if date == "" {
				return fmt.Errorf("--date is required")
			}
			svc, done, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer done()

			for _, slot := range svc.Slots(date) {
				fmt.Fprintln(cmd.OutOrStdout(), slot)
			}
			return nil
		},
	}
	cmd.Flags().String("date", "", "Date in YYYY-MM-DD")
	return cmd
}

func icsCmd(open serviceFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ics <booking-id>",
		Short: "Write the calendar file for a booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			visitor, _ := cmd.Flags().GetString("visitor")
			outDir, _ := cmd.Flags().GetString("out")
			if visitor == "" {
				return fmt.Errorf("--visitor is required")
			}
			svc, done, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer done()

			artifact, err := svc.Calendar(cmd.Context(), visitor, args[0])
			if err != nil {
				return err
			}
			if outDir == "" {
				_, err = cmd.OutOrStdout().Write(artifact.Body)
				return err
			}
			path := filepath.Join(outDir, artifact.Filename)
			if err := os.WriteFile(path, artifact.Body, 0o644); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().String("visitor", "", "Visitor session id")
	cmd.Flags().String("out", "", "Directory to write the .ics file into (default stdout)")
	return cmd
}

func bookingsCmd(open serviceFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "Manage a visitor's bookings",
	}
	cmd.PersistentFlags().String("visitor", "", "Visitor session id")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List a visitor's bookings",
		RunE: func(cmd *cobra.Command, args []string) error {
			visitor, _ := cmd.Flags().GetString("visitor")
			if visitor == "" {
				return fmt.Errorf("--visitor is required")
			}
			svc, done, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer done()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTART\tSERVICE\tTHERAPIST\tMODE\tNAME")
			for _, b := range svc.List(cmd.Context(), visitor) {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					b.ID, b.Start.In(svc.Location()).Format(time.RFC3339), b.Service, b.Therapist, b.Mode, b.Name)
			}
			return w.Flush()
		},
	}

	cancelCmd := &cobra.Command{
		Use:   "cancel <booking-id>",
		Short: "Cancel a visitor's booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			visitor, _ := cmd.Flags().GetString("visitor")
			if visitor == "" {
				return fmt.Errorf("--visitor is required")
			}
			svc, done, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer done()

			removed, err := svc.Cancel(cmd.Context(), visitor, args[0])
			if err != nil {
				return err
			}
			if removed {
				fmt.Fprintf(cmd.OutOrStdout(), "cancelled %s\n", args[0])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "no booking %s\n", args[0])
			}
			return nil
		},
	}

	cmd.AddCommand(listCmd, cancelCmd)
	return cmd
}
