package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/model"

	"github.com/spf13/cobra"
)

func newItemsCmd(current func() *app) *cobra.Command {
	var filters catalog.Filters

	cmd := &cobra.Command{
		Use:   "items",
		Short: "List catalog items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			products := current().catalog.Query(cmd.Context(), filters)
			out := cmd.OutOrStdout()
			if len(products) == 0 {
				fmt.Fprintln(out, "No items found")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE")
			for _, p := range products {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\n", p.ID, p.Name, p.Category, p.Price)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&filters.Category, "category", "", "only items in this category")
	cmd.Flags().Float64Var(&filters.MinPrice, "min", 0, "minimum price")
	cmd.Flags().Float64Var(&filters.MaxPrice, "max", 0, "maximum price")
	return cmd
}

func newCategoriesCmd(current func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List catalog categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, c := range current().catalog.ListCategories(cmd.Context()) {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}

func newCartCmd(current func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cart",
		Short: "Show the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printCart(cmd.OutOrStdout(), current().cart.Cart(cmd.Context()))
			return nil
		},
	}
}

func newAddCmd(current func() *app) *cobra.Command {
	var quantity int

	cmd := &cobra.Command{
		Use:   "add <item-id>",
		Short: "Add an item to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()
			ctx := cmd.Context()

			product, ok := findProduct(a.catalog.Query(ctx, catalog.Filters{}), args[0])
			if !ok {
				return fmt.Errorf("item %q not found in catalog", args[0])
			}

			events, cancel := a.notifier.Subscribe(1)
			defer cancel()

			res := a.cart.AddItem(ctx, product, quantity)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, res.Message(product.Name))
			printBadge(out, events)
			return nil
		},
	}

	cmd.Flags().IntVarP(&quantity, "qty", "q", 1, "quantity to add")
	return cmd
}

func newRemoveCmd(current func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <item-id>",
		Short: "Remove an item from the local cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()
			events, cancel := a.notifier.Subscribe(1)
			defer cancel()

			a.cart.RemoveItem(cmd.Context(), args[0])
			printBadge(cmd.OutOrStdout(), events)
			return nil
		},
	}
}

func newLoginCmd(current func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login <email> <password>",
		Short: "Log in and keep the session locally",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := current().sessions.Login(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", describeUser(sess.User))
			return nil
		},
	}
}

func newSignupCmd(current func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "signup <name> <email> <password>",
		Short: "Create an account and log in",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := current().sessions.Signup(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed up as %s\n", describeUser(sess.User))
			return nil
		},
	}
}

func newLogoutCmd(current func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := current().sessions.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(current func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in shopper",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := current().sessions.Current(cmd.Context())
			if sess == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", describeUser(sess.User))
			return nil
		},
	}
}

func findProduct(products []model.Product, id string) (model.Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

func printCart(out io.Writer, c model.Cart) {
	if len(c) == 0 {
		fmt.Fprintln(out, "Cart is empty")
		return
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tQTY\tPRICE\tSUBTOTAL")
	for _, line := range c {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f\t%.2f\n", line.ProductID, line.Name, line.Quantity, line.Price, line.Subtotal())
	}
	tw.Flush()
	fmt.Fprintf(out, "Total: %.2f\n", cart.TotalPrice(c))
}

// printBadge prints the cart badge for the latest change, if one was published.
func printBadge(out io.Writer, events <-chan cart.Event) {
	select {
	case ev, ok := <-events:
		if ok {
			fmt.Fprintf(out, "Cart (%d)\n", ev.Count)
		}
	default:
	}
}

func describeUser(u model.User) string {
	switch {
	case u.Name != "" && u.Email != "":
		return fmt.Sprintf("%s <%s>", u.Name, u.Email)
	case u.Email != "":
		return u.Email
	case u.Name != "":
		return u.Name
	default:
		return "unknown user"
	}
}
