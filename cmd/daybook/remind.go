// ABOUTME: CLI commands for the daily journal reminder.
// ABOUTME: Toggles and times the reminder, and runs the foreground reminder loop.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/2389-research/daybook/internal/reminder"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Manage the daily journal reminder",
}

var remindStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show reminder settings",
	Args:  cobra.NoArgs,
	RunE:  runRemindStatus,
}

var remindOnCmd = &cobra.Command{
	Use:   "on",
	Short: "Enable the daily reminder",
	Args:  cobra.NoArgs,
	RunE:  runRemindOn,
}

var remindOffCmd = &cobra.Command{
	Use:   "off",
	Short: "Disable the daily reminder",
	Args:  cobra.NoArgs,
	RunE:  runRemindOff,
}

var remindTimeCmd = &cobra.Command{
	Use:   "time <HH:MM>",
	Short: "Set the reminder time",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemindTime,
}

var remindRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the reminder in the foreground",
	Long:  "Stay running and print a reminder every day at the configured time. Stop with Ctrl-C.",
	Args:  cobra.NoArgs,
	RunE:  runRemindRun,
}

func init() {
	rootCmd.AddCommand(remindCmd)
	remindCmd.AddCommand(remindStatusCmd)
	remindCmd.AddCommand(remindOnCmd)
	remindCmd.AddCommand(remindOffCmd)
	remindCmd.AddCommand(remindTimeCmd)
	remindCmd.AddCommand(remindRunCmd)
}

// newReminderService wires the preference file, a cron scheduler that prints
// to out, and stderr alerts. Callers must Stop the scheduler.
func newReminderService(out, alerts io.Writer) (*reminder.Service, *reminder.CronScheduler, error) {
	path, err := globalConfig.GetReminderPath()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve reminder path: %w", err)
	}

	scheduler := reminder.NewCronScheduler(time.Local, func(title, body string) {
		fmt.Fprintf(out, "\a%s %s\n%s\n", time.Now().Format("15:04"), title, body)
	})
	svc, err := reminder.NewService(
		reminder.NewFilePreferenceStore(path),
		scheduler,
		func(msg string) { fmt.Fprintln(alerts, msg) },
		globalLogger,
	)
	if err != nil {
		scheduler.Stop()
		return nil, nil, err
	}
	return svc, scheduler, nil
}

func runRemindStatus(cmd *cobra.Command, args []string) error {
	svc, scheduler, err := newReminderService(cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer scheduler.Stop()

	pref := svc.Preference()
	state := "off"
	if pref.Enabled {
		state = "on"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Daily reminder: %s\n", state)
	fmt.Fprintf(cmd.OutOrStdout(), "Time: %s\n", pref.Time)

	if err := svc.Resume(); err != nil {
		return err
	}
	if next, ok := scheduler.Next(); ok {
		fmt.Fprintf(cmd.OutOrStdout(), "Next: %s\n", next.Format("Mon 2 Jan 15:04"))
	}
	return nil
}

func runRemindOn(cmd *cobra.Command, args []string) error {
	svc, scheduler, err := newReminderService(cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer scheduler.Stop()

	if err := svc.SetEnabled(cmd.Context(), true); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Daily reminder on at %s. Keep 'daybook remind run' going to receive it.\n", svc.Preference().Time)
	return nil
}

func runRemindOff(cmd *cobra.Command, args []string) error {
	svc, scheduler, err := newReminderService(cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer scheduler.Stop()

	if err := svc.SetEnabled(cmd.Context(), false); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Daily reminder off.")
	return nil
}

func runRemindTime(cmd *cobra.Command, args []string) error {
	t, err := reminder.ParseTimeOfDay(args[0])
	if err != nil {
		return err
	}

	svc, scheduler, err := newReminderService(cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer scheduler.Stop()

	if err := svc.SetTime(cmd.Context(), t); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Reminder time set to %s.\n", t)
	return nil
}

func runRemindRun(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	svc, scheduler, err := newReminderService(cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer scheduler.Stop()

	if !svc.Preference().Enabled {
		return fmt.Errorf("daily reminder is off; enable it with 'daybook remind on'")
	}

	// A terminal can always print, so notification permission is granted.
	svc.HandlePermission(reminder.PermissionAuthorized)
	if next, ok := scheduler.Next(); ok {
		fmt.Fprintf(cmd.OutOrStdout(), "Waiting for reminder at %s (Ctrl-C to stop)\n", next.Format("Mon 2 Jan 15:04"))
	}

	<-ctx.Done()
	return nil
}
