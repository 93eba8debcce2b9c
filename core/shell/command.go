package shell

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell"
	"github.com/op/go-logging"
	"github.com/tryanzu/storefront/modules/cart"
	"github.com/tryanzu/storefront/modules/catalog"
	"github.com/tryanzu/storefront/modules/notify"
)

var log = logging.MustGetLogger("shell")

var (
	ErrUsage          = errors.New("wrong usage")
	ErrUnknownCommand = errors.New("unknown command")
)

type command struct {
	usage string
	help  string
	fn    func(args []string) error
}

// Storefront is an interactive client over one owned cart.
type Storefront struct {
	Catalog *catalog.Catalog
	Cart    *cart.Cart
	Toasts  *notify.Center

	out      io.Writer
	commands map[string]command
}

func New(products *catalog.Catalog, owned *cart.Cart, out io.Writer) *Storefront {
	s := &Storefront{
		Catalog: products,
		Cart:    owned,
		Toasts:  notify.NewCenter(),
		out:     out,
	}
	s.commands = map[string]command{
		"products": {"products [category=X] [brand=X] [price=min-max] [dropdown=band]", "List products, filtered.", s.products},
		"search":   {"search <term>", "Search products by title.", s.search},
		"show":     {"show <id>", "Show one product.", s.show},
		"add":      {"add <id> [quantity]", "Add a product to the cart.", s.add},
		"inc":      {"inc <id>", "Increase the quantity of a cart line.", s.inc},
		"dec":      {"dec <id>", "Decrease the quantity of a cart line.", s.dec},
		"qty":      {"qty <id> <n>", "Set the quantity of a cart line.", s.qty},
		"remove":   {"remove <id>", "Remove a cart line.", s.remove},
		"cart":     {"cart", "Show the cart.", s.showCart},
		"clear":    {"clear", "Empty the cart.", s.clearCart},
	}

	owned.Subscribe(func(change cart.Change) {
		fmt.Fprintf(s.out, "[cart: %d]\n", len(change.Items))
	})
	return s
}

// Exec runs one command by name.
func (s *Storefront) Exec(name string, args []string) error {
	cmd, exists := s.commands[name]
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	err := cmd.fn(args)
	if errors.Is(err, ErrUsage) {
		return fmt.Errorf("%w, usage: %s", ErrUsage, cmd.usage)
	}
	return err
}

// Run starts the interactive shell on the terminal.
func (s *Storefront) Run() {
	shell := ishell.New()
	shell.Println("Storefront interactive shell")

	names := make([]string, 0, len(s.commands))
	for name := range s.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		name := name
		shell.AddCmd(&ishell.Cmd{
			Name: name,
			Help: s.commands[name].help,
			Func: func(c *ishell.Context) {
				if err := s.Exec(name, c.Args); err != nil {
					c.Println(err)
				}
			},
		})
	}

	// start shell
	shell.Run()
}

// RunShell serves the storefront shell on stdout.
func RunShell(products *catalog.Catalog, owned *cart.Cart) {
	New(products, owned, os.Stdout).Run()
}

func (s *Storefront) products(args []string) error {
	query := url.Values{}
	for _, arg := range args {
		kv := strings.SplitN(arg, "=", 2)
		if len(kv) != 2 {
			return ErrUsage
		}
		query.Add(kv[0], kv[1])
	}

	f, err := catalog.ParseFilter(query)
	if err != nil {
		return err
	}
	page := s.Catalog.Find(f)
	s.listing(page.List)
	fmt.Fprintf(s.out, "showing %d of %d\n", len(page.List), page.Total)
	return nil
}

func (s *Storefront) search(args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}
	found := s.Catalog.Search(strings.Join(args, " "), 0)
	if len(found) == 0 {
		fmt.Fprintln(s.out, "no products found")
		return nil
	}
	s.listing(found)
	return nil
}

func (s *Storefront) show(args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	p, err := s.Catalog.FindId(args[0])
	if err != nil {
		return err
	}
	s.detail(p)
	return nil
}

func (s *Storefront) add(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return ErrUsage
	}
	quantity := 1
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return ErrUsage
		}
		quantity = n
	}

	p, err := s.Catalog.FindId(args[0])
	if err != nil {
		return err
	}
	return s.result(s.Cart.AddQuantity(p.Item(), quantity))
}

func (s *Storefront) inc(args []string) error {
	return s.step(args, 1)
}

func (s *Storefront) dec(args []string) error {
	return s.step(args, -1)
}

func (s *Storefront) step(args []string, by int) error {
	if len(args) != 1 {
		return ErrUsage
	}
	line, ok := s.line(args[0])
	if !ok {
		return s.result(cart.Result{Status: cart.NotFound, Item: cart.LineItem{Id: args[0]}})
	}
	return s.result(s.Cart.SetQuantity(line.Id, line.Quantity+by))
}

func (s *Storefront) qty(args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return ErrUsage
	}
	return s.result(s.Cart.SetQuantity(args[0], n))
}

func (s *Storefront) remove(args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	return s.result(s.Cart.Remove(args[0]))
}

func (s *Storefront) showCart(args []string) error {
	items := s.Cart.Items()
	if len(items) == 0 {
		fmt.Fprintln(s.out, "Your cart is empty")
		return nil
	}
	s.basket(items)
	return nil
}

func (s *Storefront) clearCart(args []string) error {
	return s.result(s.Cart.Clear())
}

// result prints the toast for res and reports persistence faults.
func (s *Storefront) result(res cart.Result) error {
	if res.Status == cart.NotFound {
		fmt.Fprintf(s.out, "%s is not in the cart\n", res.Item.Id)
		return nil
	}
	if t, ok := s.Toasts.Result(res); ok {
		fmt.Fprintf(s.out, "%s %s\n", badges[t.Kind], t.Message)
	}
	if res.Err != nil && res.Status != cart.Rejected {
		log.Warningf("cart was not saved: %v", res.Err)
	}
	return nil
}

func (s *Storefront) line(id string) (cart.LineItem, bool) {
	id = strings.TrimSpace(id)
	for _, line := range s.Cart.Items() {
		if line.Id == id {
			return line, true
		}
	}
	return cart.LineItem{}, false
}
