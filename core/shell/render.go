package shell

import (
	"fmt"
	"strings"

	"github.com/kennygrant/sanitize"
	"github.com/tryanzu/storefront/modules/cart"
	"github.com/tryanzu/storefront/modules/catalog"
	"github.com/tryanzu/storefront/modules/helpers"
	"github.com/tryanzu/storefront/modules/notify"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

var badges = map[notify.Kind]string{
	notify.Success: "[ok]",
	notify.Info:    "[info]",
	notify.Warning: "[warn]",
	notify.Error:   "[error]",
}

// Price formats an amount in rupees with thousands grouping.
func Price(amount float64) string {
	return printer.Sprintf("₹%v", number.Decimal(amount, number.MaxFractionDigits(2)))
}

func (s *Storefront) listing(list catalog.Products) {
	for _, p := range list {
		fmt.Fprintf(s.out, "%4s  %-40s %12s  %s\n", p.Id, helpers.Truncate(p.Title, 40), Price(p.Price), p.Category)
	}
}

func (s *Storefront) detail(p catalog.Product) {
	fmt.Fprintf(s.out, "%s\n%s\n", p.Title, strings.Repeat("-", len([]rune(p.Title))))
	fmt.Fprintf(s.out, "Price:    %s\n", Price(p.Price))
	fmt.Fprintf(s.out, "Brand:    %s\n", p.Maker())
	fmt.Fprintf(s.out, "Category: %s\n", p.Category)
	fmt.Fprintf(s.out, "Rating:   %.1f (%d reviews)\n", p.Rating.Rate, p.Rating.Count)
	if p.Description != "" {
		fmt.Fprintf(s.out, "\n%s\n", sanitize.HTML(p.Description))
	}
}

func (s *Storefront) basket(items []cart.LineItem) {
	for _, line := range items {
		fmt.Fprintf(s.out, "%4s  %-40s %3d × %-10s %12s\n", line.Id, helpers.Truncate(line.Title, 40), line.Quantity, Price(line.Price), Price(line.Subtotal()))
	}
	fmt.Fprintf(s.out, "Total: %s\n", Price(cart.Total(items)))
}
