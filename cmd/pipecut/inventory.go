package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/pipecut/internal/model"
)

func newInventoryCmd() *cobra.Command {
	invCmd := &cobra.Command{
		Use:   "inventory",
		Short: "Inspect and maintain the leftover inventory",
	}
	invCmd.AddCommand(newInventoryListCmd(), newInventoryAddCmd(), newInventoryClearCmd())
	return invCmd
}

func newInventoryListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved leftovers, longest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			leftovers, err := a.store.GetLeftoversSorted(cmd.Context())
			if err != nil {
				return fmt.Errorf("load leftovers: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(leftovers) == 0 {
				fmt.Fprintln(out, "Inventory is empty.")
				return nil
			}

			var total float64
			for _, lo := range leftovers {
				class := model.ClassifyScrap(lo.Length, a.cfg.Settings.UsableThreshold)
				fmt.Fprintf(out, "%-10s %10.2f mm  %s\n", lo.ID, lo.Length, class)
				total += lo.Length
			}
			fmt.Fprintf(out, "\n%d leftover(s), %.2f mm total\n", len(leftovers), total)
			return nil
		},
	}
}

func newInventoryAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add LENGTH...",
		Short: "Add leftover pieces by length in mm",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			for _, arg := range args {
				var length float64
				if _, err := fmt.Sscanf(arg, "%g", &length); err != nil || length <= 0 {
					return fmt.Errorf("invalid length %q", arg)
				}
				lo, err := a.store.InsertLeftover(cmd.Context(), length)
				if err != nil {
					return fmt.Errorf("insert leftover: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%.2f mm)\n", lo.ID, lo.Length)
			}
			return nil
		},
	}
}

func newInventoryClearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every saved leftover",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear the inventory without --yes")
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.store.ClearAllLeftovers(cmd.Context()); err != nil {
				return fmt.Errorf("clear inventory: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Inventory cleared.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}
