package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"storefront/models"
	"storefront/services"
	"storefront/utils"

	"github.com/spf13/cobra"
)

type checkoutOptions struct {
	cartPath string
	adjust   []string
	form     models.CheckoutForm
	dryRun   bool
}

func checkoutCmd(opts *rootOptions) *cobra.Command {
	co := &checkoutOptions{form: models.CheckoutForm{}}
	var fullName, email, phone, address string

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Review a cart and place the order",
		Long: `Reads the cart from a JSON file (an array of line items), applies any
quantity adjustments, prints the total and submits the order.

Adjustments use 1-based positions: --adjust 2:+1 adds one to the second item.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			co.form[models.FieldFullName] = fullName
			co.form[models.FieldEmail] = email
			co.form[models.FieldPhone] = phone
			co.form[models.FieldAddress] = address

			items, err := loadCart(co.cartPath)
			if err != nil {
				return err
			}

			svc := services.NewCheckoutService(a.client, a.session, a.cfg.CheckoutRequiredFields)
			return runCheckout(cmd.Context(), svc, services.NewCart(items), co, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&co.cartPath, "cart", "c", "", "Cart JSON file")
	cmd.Flags().StringSliceVar(&co.adjust, "adjust", nil, "Quantity change as position:delta, e.g. 1:+2 or 2:-1")
	cmd.Flags().StringVar(&fullName, "full-name", "", "Recipient name")
	cmd.Flags().StringVar(&email, "email", "", "Contact email")
	cmd.Flags().StringVar(&phone, "phone", "", "Contact phone")
	cmd.Flags().StringVar(&address, "address", "", "Delivery address")
	cmd.Flags().BoolVar(&co.dryRun, "dry-run", false, "Print the cart and total without ordering")
	_ = cmd.MarkFlagRequired("cart")
	return cmd
}

func runCheckout(ctx context.Context, svc *services.CheckoutService, cart *services.Cart, co *checkoutOptions, out io.Writer) error {
	for _, raw := range co.adjust {
		index, delta, err := parseAdjust(raw)
		if err != nil {
			return err
		}
		if _, err := cart.SetQuantity(index, delta); err != nil {
			return err
		}
	}

	printCart(out, cart)
	if co.dryRun {
		return nil
	}

	conf, err := svc.Checkout(ctx, cart, co.form)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Order %s placed (%s)\n", conf.OrderID, conf.Status)
	if conf.Message != "" {
		fmt.Fprintln(out, conf.Message)
	}
	return nil
}

func printCart(out io.Writer, cart *services.Cart) {
	for i, item := range cart.Items() {
		price := "-"
		if item.Price.Valid {
			price = utils.FormatMoney(item.Price.Decimal)
		}
		fmt.Fprintf(out, "%2d. %-30s %3d x %10s = %10s\n", i+1, item.Name, item.Quantity, price, utils.FormatMoney(item.Subtotal()))
	}
	fmt.Fprintf(out, "Total: %s\n", utils.FormatMoney(cart.Total()))
}

func loadCart(path string) ([]models.LineItem, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cart: %w", err)
	}

	var items []models.LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("parse cart %s: %w", path, err)
	}
	return items, nil
}

// parseAdjust turns "2:+1" into a zero-based index and a delta.
func parseAdjust(raw string) (int, int, error) {
	pos, delta, ok := strings.Cut(raw, ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid adjustment %q, want position:delta", raw)
	}

	position, err := strconv.Atoi(strings.TrimSpace(pos))
	if err != nil || position < 1 {
		return 0, 0, fmt.Errorf("invalid position in %q", raw)
	}

	d, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(delta), "+"))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid delta in %q", raw)
	}
	return position - 1, d, nil
}
