package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/FransManlangit/jicus-pos/internal/cart"
	"github.com/FransManlangit/jicus-pos/internal/catalog"
	"github.com/FransManlangit/jicus-pos/internal/catalog/cache"
	"github.com/FransManlangit/jicus-pos/internal/checkout"
	"github.com/FransManlangit/jicus-pos/internal/client"
	"github.com/FransManlangit/jicus-pos/internal/config"
	"github.com/FransManlangit/jicus-pos/internal/domain"
	"github.com/FransManlangit/jicus-pos/internal/payment"
	"github.com/FransManlangit/jicus-pos/internal/pricing"
	"github.com/FransManlangit/jicus-pos/internal/session"
	"github.com/FransManlangit/jicus-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	slogger := logger.New("pos")

	api := client.New(cfg.BackendURL, cfg.RequestTimeout)

	var productCache cache.ProductCache = cache.NewMemoryCache(15 * time.Minute)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		defer rdb.Close()
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Redis connection failed:", err)
		}
		log.Printf("Using shared catalog cache at %s", cfg.RedisAddr)
		productCache = cache.NewRedisCache(rdb)
	}

	cartStore := cart.NewStore()
	r := &register{
		api:      api,
		catalog:  catalog.NewService(api, productCache, slogger),
		sessions: session.NewManager(api, session.NewFileStore(cfg.TokenPath)),
		cart:     cartStore,
		checkout: checkout.NewService(api, cartStore, pricing.NewCalculator(cfg.TaxRate), slogger),
	}

	fmt.Println("Jicus POS. Type 'help' for commands.")
	r.run(os.Stdin)
}

type register struct {
	api      *client.Client
	catalog  *catalog.Service
	sessions *session.Manager
	cart     *cart.Store
	checkout *checkout.Service

	listed []domain.Product
}

func (r *register) run(in *os.File) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return
		}
		r.dispatch(fields[0], fields[1:])
	}
}

func (r *register) dispatch(cmd string, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var err error
	switch cmd {
	case "help":
		printHelp()
	case "products":
		err = r.listProducts(ctx, "")
	case "find":
		err = r.listProducts(ctx, strings.Join(args, " "))
	case "reload":
		r.catalog.Invalidate()
		err = r.listProducts(ctx, "")
	case "add":
		err = r.add(args)
	case "cart":
		r.printCart()
	case "remove":
		err = r.withIndex(args, r.cart.Remove)
	case "+":
		err = r.withIndex(args, r.cart.Increment)
	case "-":
		err = r.withIndex(args, r.cart.Decrement)
	case "qty":
		err = r.setQuantity(args)
	case "login":
		err = r.login(ctx, args)
	case "logout":
		err = r.sessions.Logout(ctx)
	case "profile":
		err = r.profile(ctx)
	case "cash":
		err = r.confirm(ctx, payment.Selection{Method: payment.MethodCash, CashTendered: strings.Join(args, "")})
	case "gcash":
		err = r.confirm(ctx, payment.Selection{Method: payment.MethodEWallet, ReferenceNumber: payment.FilterReference(strings.Join(args, ""))})
	case "new":
		r.checkout.Reset()
		r.cart.Clear()
	default:
		fmt.Printf("unknown command %q, try 'help'\n", cmd)
	}
	if err != nil {
		fmt.Println("error:", err)
	}
}

func (r *register) listProducts(ctx context.Context, query string) error {
	var (
		products []domain.Product
		err      error
	)
	if query == "" {
		products, err = r.catalog.Products(ctx)
	} else {
		products, err = r.catalog.Search(ctx, query)
	}
	if err != nil {
		return err
	}
	r.listed = products
	for i, p := range products {
		fmt.Printf("%3d  %-30s ₱%s\n", i+1, p.Name, p.Price.StringFixed(2))
	}
	return nil
}

func (r *register) add(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: add <product#> [qty]")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(r.listed) {
		return fmt.Errorf("no listed product #%s, run 'products' first", args[0])
	}
	qty := 1
	if len(args) > 1 {
		if qty, err = strconv.Atoi(args[1]); err != nil {
			return cart.ErrInvalidQuantity
		}
	}
	if err := r.cart.AddOrMerge(r.listed[n-1], qty); err != nil {
		return err
	}
	r.printCart()
	return nil
}

func (r *register) withIndex(args []string, op func(int) error) error {
	if len(args) == 0 {
		return errors.New("usage: <command> <line#>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return cart.ErrIndexOutOfRange
	}
	if err := op(n - 1); err != nil {
		return err
	}
	r.printCart()
	return nil
}

func (r *register) setQuantity(args []string) error {
	if len(args) < 2 {
		return errors.New("usage: qty <line#> <quantity>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return cart.ErrIndexOutOfRange
	}
	if err := r.cart.SetQuantity(n-1, args[1]); err != nil {
		return err
	}
	r.printCart()
	return nil
}

func (r *register) printCart() {
	lines := r.cart.Lines()
	if len(lines) == 0 {
		fmt.Println("cart is empty")
		return
	}
	for i, l := range lines {
		fmt.Printf("%3d  %-30s x%-3d ₱%s\n", i+1, l.Name, l.Quantity, l.UnitPrice.StringFixed(2))
	}
	t := r.checkout.Totals()
	fmt.Printf("     items ₱%s  tax ₱%s  total ₱%s\n",
		t.ItemsPrice.StringFixed(2), t.TaxPrice.StringFixed(2), t.TotalPrice.StringFixed(2))
}

func (r *register) login(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: login <email> <password>")
	}
	sess, err := r.sessions.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s\n", sess.UserID)
	return nil
}

func (r *register) profile(ctx context.Context) error {
	sess, err := r.sessions.Current(ctx)
	if err != nil {
		return err
	}
	profile, err := r.api.User(ctx, sess.Token, sess.UserID)
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s>\n", profile.Name, profile.Email)
	return nil
}

func (r *register) confirm(ctx context.Context, sel payment.Selection) error {
	sess, err := r.sessions.Current(ctx)
	if err != nil {
		return err
	}
	result, err := r.checkout.Confirm(ctx, sess, sel)
	if err != nil {
		return err
	}
	fmt.Printf("order placed  total ₱%s", result.Totals.TotalPrice.StringFixed(2))
	if result.Method == payment.MethodCash {
		fmt.Printf("  change ₱%s", result.Change.StringFixed(2))
	}
	fmt.Println()
	r.checkout.Reset()
	return nil
}

func printHelp() {
	fmt.Print(`products              list the catalog
find <name>           search products by name
reload                refetch the catalog
add <n> [qty]         add listed product n to the cart
cart                  show the cart and totals
remove <n>            remove cart line n
+ <n> / - <n>         bump cart line n up or down
qty <n> <q>           set the quantity of line n
login <email> <pw>    sign in
logout                sign out
profile               show the signed-in user
cash <amount>         tender cash and place the order
gcash <reference>     tender by GCash reference and place the order
new                   start the next sale
quit                  exit
`)
}
