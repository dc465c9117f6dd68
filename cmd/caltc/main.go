package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"caltc/internal/calendar"
	"caltc/internal/cli"
	"caltc/internal/exitcode"
	"caltc/internal/logging"
	"caltc/internal/mapedit"
	"caltc/internal/render"
	"caltc/internal/settings"
)

// version vars injected via ldflags at build time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	flags := &cli.Flags{}

	rootCmd := &cobra.Command{
		Use:     "caltc",
		Short:   "Render calendar events as timeclock ledger lines",
		Long:    "caltc queries a calendar store for events in a configurable date range and prints them as hledger-timeclock i/o lines.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, flags)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cli.Bind(rootCmd, flags)
	rootCmd.AddCommand(newCalendarsCmd(flags))
	rootCmd.AddCommand(newMapCmd(flags))

	if err := rootCmd.Execute(); err != nil {
		logging.Error(err.Error())
		os.Exit(codeFor(err))
	}
}

// codeFor maps a terminal error onto its exit code. Every failure is
// surfaced exactly once, by main, as a single line.
func codeFor(err error) int {
	var notFound *calendar.NotFoundError
	switch {
	case errors.Is(err, calendar.ErrAccessDenied):
		return exitcode.PermissionDenied
	case errors.As(err, &notFound):
		return exitcode.CalendarNotFound
	case errors.Is(err, mapedit.ErrMappingNotFound):
		return exitcode.MappingNotFound
	}
	return exitcode.Error
}

// runList is the main pipeline: settings chain, effective resolution,
// access grant, range query, render.
func runList(cmd *cobra.Command, flags *cli.Flags) error {
	logging.SetVerbose(flags.Verbose)

	policy, err := cli.Validate(flags)
	if err != nil {
		return err
	}

	startDir, err := cli.StartDir(flags)
	if err != nil {
		return fmt.Errorf("resolve working directory: %w", err)
	}

	merged := settings.ResolveChain(startDir, policy)
	for key := range merged.DuplicateKeys {
		logging.Warn(fmt.Sprintf("duplicate mapping key in settings: %s", key))
	}

	eff := settings.ResolveEffective(cli.Collect(cmd, flags), merged, time.Now())
	logging.Debug(fmt.Sprintf("range %s .. %s, policy %s",
		eff.Start.Format("2006-01-02 15:04"), eff.End.Format("2006-01-02 15:04"), policy))

	src, err := openSource(cmd.Context(), flags)
	if err != nil {
		return err
	}

	events, err := src.Events(cmd.Context(), eff.Start, eff.End, eff.Calendars)
	if err != nil {
		return err
	}

	for _, line := range render.Render(events, eff) {
		fmt.Println(line)
	}
	return nil
}

// openSource builds the event source and awaits its permission grant.
// The wait runs to completion; a denial surfaces as the fixed
// access-denied message.
func openSource(ctx context.Context, flags *cli.Flags) (calendar.Source, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	src := calendar.NewDirSource(cli.SourceDir(flags))
	if err := src.RequestAccess(ctx); err != nil {
		if errors.Is(err, calendar.ErrAccessDenied) {
			return nil, calendar.ErrAccessDenied
		}
		return nil, err
	}
	return src, nil
}

// newCalendarsCmd lists every calendar the event source offers.
func newCalendarsCmd(flags *cli.Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "calendars",
		Short: "List available calendar names",
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.SetVerbose(flags.Verbose)

			src, err := openSource(cmd.Context(), flags)
			if err != nil {
				return err
			}
			for _, info := range src.Calendars() {
				fmt.Println(info.Name)
			}
			return nil
		},
	}
}

// newMapCmd edits title mappings in the nearest settings file.
func newMapCmd(flags *cli.Flags) *cobra.Command {
	mapCmd := &cobra.Command{
		Use:   "map",
		Short: "Edit title mappings in the settings chain",
	}

	addCmd := &cobra.Command{
		Use:   "add <title> <replacement>",
		Short: "Add or update a title mapping in the nearest settings file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := editTarget(flags, true)
			if err != nil {
				return err
			}
			if err := mapedit.Add(path, args[0], args[1]); err != nil {
				return err
			}
			logging.Info(fmt.Sprintf("mapped %q to %q in %s", args[0], args[1], path))
			return nil
		},
	}

	removeCmd := &cobra.Command{
		Use:   "remove <title>",
		Short: "Remove a title mapping from the nearest settings file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := editTarget(flags, false)
			if err != nil {
				return err
			}
			if err := mapedit.Remove(path, args[0]); err != nil {
				return err
			}
			logging.Info(fmt.Sprintf("removed mapping %q from %s", args[0], path))
			return nil
		},
	}

	mapCmd.AddCommand(addCmd, removeCmd)
	return mapCmd
}

// editTarget picks the settings file a map edit applies to: the nearest
// discovered file, or (for add) a fresh one in the start directory when
// the chain is empty.
func editTarget(flags *cli.Flags, createOK bool) (string, error) {
	startDir, err := cli.StartDir(flags)
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}

	if paths := settings.Discover(startDir); len(paths) > 0 {
		return paths[0], nil
	}
	if createOK {
		return filepath.Join(startDir, settings.FileName), nil
	}
	return "", fmt.Errorf("%w: no settings file found from %s", mapedit.ErrMappingNotFound, startDir)
}
