package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	costing "github.com/xraph/costing"
	"github.com/xraph/costing/item"
	"github.com/xraph/costing/types"
)

const emptyMessage = "No items added yet. Start costing!"

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <cost-per-unit> <quantity-used> [unit]",
		Short: "Add an ingredient usage to the sheet",
		Args:  cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := item.Input{
				Name:         args[0],
				CostPerUnit:  args[1],
				QuantityUsed: args[2],
			}
			if len(args) == 4 {
				in.Unit = args[3]
			}

			li, err := a.ledger.Add(cmd.Context(), in)
			if err != nil {
				if costing.IsValidation(err) {
					fmt.Fprintln(cmd.ErrOrStderr(), costing.ValidationMessage)
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s: %s %s at %s = %s\n",
				li.Name,
				li.QuantityUsed.String(),
				li.Unit,
				a.money(li.CostPerUnit),
				a.money(li.TotalItemCost),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "Total: %s\n", a.ledger.Total())
			return nil
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show every item on the sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items := a.ledger.Items()
			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, emptyMessage)
				fmt.Fprintf(out, "Total: %s\n", a.ledger.Total())
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tCOST/UNIT\tQTY\tUNIT\tTOTAL")
			for _, li := range items {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					li.ID,
					li.Name,
					a.money(li.CostPerUnit),
					li.QuantityUsed.String(),
					li.Unit,
					a.money(li.TotalItemCost),
				)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "Total: %s\n", a.ledger.Total())
			return nil
		},
	}
}

func newRemoveCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove one item from the sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			li, ok := a.ledger.Find(args[0])
			if !ok {
				return fmt.Errorf("no item with id %q", args[0])
			}

			prompt := fmt.Sprintf("Remove %s (%s)?", li.Name, a.money(li.TotalItemCost))
			if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), prompt) {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}

			if _, err := a.ledger.Remove(cmd.Context(), li.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", li.Name)
			fmt.Fprintf(cmd.OutOrStdout(), "Total: %s\n", a.ledger.Total())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newClearCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every item and erase the saved sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			prompt := fmt.Sprintf("Clear all %d items?", a.ledger.Len())
			if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), prompt) {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}

			if err := a.ledger.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Sheet cleared.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newTotalCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "total",
		Short: "Print the sheet total",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), a.ledger.Total())
			return nil
		},
	}
}

// money formats an amount in the sheet currency.
func (a *app) money(amount decimal.Decimal) string {
	return types.New(amount, a.ledger.Currency()).String()
}

// confirm asks a yes/no question and reports whether the answer was yes.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N] ", prompt)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
