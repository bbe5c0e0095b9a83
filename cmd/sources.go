package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/DoubleTimeOnly/daybrief/internal/config"
)

func newSourcesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Manage the configured calendar sources",
		Long: `List, add, remove and reorder the calendars the brief aggregates.
The list order matters: simultaneous events are tie-broken by it, earlier
sources first. Calendar IDs are "primary" or an address-like calendar ID.`,
	}

	cmd.AddCommand(newSourcesListCmd())
	cmd.AddCommand(newSourcesAddCmd())
	cmd.AddCommand(newSourcesRemoveCmd())
	cmd.AddCommand(newSourcesMoveCmd())
	return cmd
}

func newSourcesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured calendar sources in order",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, _, err := loadSettings()
			if err != nil {
				return err
			}
			if len(settings.Sources) == 0 {
				fmt.Println("No calendar sources configured.")
				return nil
			}
			for _, src := range settings.Sources {
				label := src.Label
				if label == "" {
					label = "-"
				}
				fmt.Printf("%d\t%s\t%s\n", src.Order, src.ID, label)
			}
			return nil
		},
	}
}

func newSourcesAddCmd() *cobra.Command {
	var label string

	cmd := &cobra.Command{
		Use:   "add <calendar-id>",
		Short: "Append a calendar source to the list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, store, err := loadSettings()
			if err != nil {
				return err
			}
			settings.Sources = config.AddSource(settings.Sources, args[0], label)
			if err := store.Save(settings); err != nil {
				return fmt.Errorf("failed to save settings: %w", err)
			}
			newNotifier().Infof("Added calendar %s at position %d.", args[0], len(settings.Sources)-1)
			return nil
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "Display label shown next to the calendar's events")
	return cmd
}

func newSourcesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <position>",
		Short: "Remove the calendar source at a position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			position, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid position %q: %w", args[0], err)
			}

			settings, store, err := loadSettings()
			if err != nil {
				return err
			}
			sources, err := config.RemoveSource(settings.Sources, position)
			if err != nil {
				return err
			}
			settings.Sources = sources
			if err := store.Save(settings); err != nil {
				return fmt.Errorf("failed to save settings: %w", err)
			}
			newNotifier().Infof("Removed calendar at position %d.", position)
			return nil
		},
	}
}

func newSourcesMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <from> <to>",
		Short: "Move a calendar source to a new position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid position %q: %w", args[0], err)
			}
			to, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid position %q: %w", args[1], err)
			}

			settings, store, err := loadSettings()
			if err != nil {
				return err
			}
			sources, err := config.MoveSource(settings.Sources, from, to)
			if err != nil {
				return err
			}
			settings.Sources = sources
			if err := store.Save(settings); err != nil {
				return fmt.Errorf("failed to save settings: %w", err)
			}
			newNotifier().Infof("Moved calendar from position %d to %d.", from, to)
			return nil
		},
	}
}
