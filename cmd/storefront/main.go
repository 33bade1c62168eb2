// Command storefront is a headless client for the e-commerce backend: product
// browsing, guest and authenticated carts, checkout, order history, and the
// admin back-office, driven from the terminal.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/hugoev/Ecommerce-Platform-sub000/internal/api"
	"github.com/hugoev/Ecommerce-Platform-sub000/internal/domain"
	"github.com/hugoev/Ecommerce-Platform-sub000/internal/guestcart"
	"github.com/hugoev/Ecommerce-Platform-sub000/internal/reconcile"
	"github.com/hugoev/Ecommerce-Platform-sub000/internal/session"
	"github.com/hugoev/Ecommerce-Platform-sub000/internal/storage"
)

type Config struct {
	APIBaseURL        string
	RequestTimeout    time.Duration
	StorageBackend    string
	StorageDir        string
	RedisAddr         string
	RequestsPerSecond float64
}

func loadConfig() *Config {
	timeout, err := time.ParseDuration(getEnv("REQUEST_TIMEOUT", "30s"))
	if err != nil {
		timeout = 30 * time.Second
	}
	rps, err := strconv.ParseFloat(getEnv("REQUESTS_PER_SECOND", "20"), 64)
	if err != nil {
		rps = 20
	}

	return &Config{
		APIBaseURL:        getEnv("API_BASE_URL", "http://localhost:8080"),
		RequestTimeout:    timeout,
		StorageBackend:    getEnv("STORAGE_BACKEND", "file"),
		StorageDir:        getEnv("STORAGE_DIR", defaultStorageDir()),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RequestsPerSecond: rps,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func defaultStorageDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".storefront"
	}
	return dir + "/storefront"
}

func newStorage(cfg *Config) (storage.Store, error) {
	switch cfg.StorageBackend {
	case "memory":
		return storage.NewMemory(), nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return storage.NewRedis(client, storage.DefaultTTL), nil
	case "file":
		return storage.NewFile(cfg.StorageDir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("skipping .env: %v", err)
	}

	cfg := loadConfig()

	kv, err := newStorage(cfg)
	if err != nil {
		log.Fatalf("storage init failed: %v", err)
	}

	sessions := session.New(kv)
	client := api.New(api.Config{
		BaseURL:           cfg.APIBaseURL,
		Timeout:           cfg.RequestTimeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
	}, sessions)

	ctx := context.Background()

	// The guest cart key is namespaced by session id so shared backends
	// (redis) keep concurrent guest sessions apart. For the file backend the
	// namespace is effectively constant per config dir, like a browser origin.
	guestKey := guestcart.DefaultKey + "/" + sessions.GuestID(ctx)
	guest := guestcart.NewWithKey(kv, guestKey)

	app := &app{
		cfg:      cfg,
		client:   client,
		sessions: sessions,
		guest:    guest,
		merger:   reconcile.New(guest, client),
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	if err := app.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		log.Fatalf("%v", err)
	}
}

type app struct {
	cfg      *Config
	client   *api.Client
	sessions *session.Manager
	guest    *guestcart.Store
	merger   *reconcile.Reconciler
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "items":
		return a.listItems(ctx, args)
	case "item":
		return a.showItem(ctx, args)
	case "sales":
		return a.listSales(ctx)
	case "cart":
		return a.cart(ctx, args)
	case "login":
		return a.login(ctx, args)
	case "logout":
		a.sessions.Logout(ctx)
		fmt.Println("logged out")
		return nil
	case "register":
		return a.register(ctx, args)
	case "whoami":
		return a.whoami(ctx)
	case "checkout":
		return a.checkout(ctx)
	case "orders":
		return a.orders(ctx)
	case "order":
		return a.order(ctx, args)
	case "admin":
		return a.admin(ctx, args)
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: storefront <command> [args]

  items [category]               list products
  item <id>                      show one product
  sales                          list items on sale
  cart show                      show the current cart
  cart add <itemId> <qty>        add an item
  cart update <itemId> <qty>     set an item quantity
  cart remove <itemId>           remove an item
  cart clear                     empty the cart
  cart discount <code> [pct]     apply a discount code
  login <username> <password>    log in and merge the guest cart
  logout                         drop the session
  register <user> <email> <pw>   create an account
  whoami                         show the logged-in user
  checkout                       place an order from the server cart
  orders                         list order history
  order <id>                     show one order
  admin users [page]             list registered users
  admin discounts                list discount codes
  admin discount <code> <pct>    create a discount code
  admin orders [status]          list all orders, optionally by status
  admin order-status <id> <st>   update an order's status
  admin sale-toggle <id>         flip a sale on or off`)
}

func (a *app) listItems(ctx context.Context, args []string) error {
	query := api.ItemQuery{Size: 50}
	if len(args) > 0 {
		query.Category = args[0]
	}

	items, pagination, err := a.client.Items(ctx, query)
	if err != nil {
		return err
	}
	for _, item := range items {
		fmt.Printf("%6d  %-40s  $%.2f  (%d available)\n", item.ID, item.Title, item.Price, item.QuantityAvailable)
	}
	if pagination != nil && !pagination.Last {
		fmt.Printf("... %d more\n", pagination.TotalElements-int64(len(items)))
	}
	return nil
}

func (a *app) showItem(ctx context.Context, args []string) error {
	id, err := argID(args, 0)
	if err != nil {
		return err
	}
	item, err := a.client.ItemByID(ctx, id)
	if err != nil {
		return err
	}
	return printJSON(item)
}

func (a *app) listSales(ctx context.Context) error {
	sales, err := a.client.SalesItems(ctx)
	if err != nil {
		return err
	}
	for _, sale := range sales {
		fmt.Printf("%6d  %-40s  $%.2f -> $%.2f  (%.0f%% off, ends %s)\n",
			sale.ItemID, sale.Title, sale.OriginalPrice, sale.SalePrice, sale.DiscountPercentage, sale.SaleEndDate)
	}
	return nil
}

// cart routes to the guest store or the server cart depending on whether a
// usable session exists. After login, reads go through the backend only.
func (a *app) cart(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("cart: missing subcommand")
	}

	if a.sessions.LoggedIn(ctx) {
		return a.serverCart(ctx, args)
	}
	return a.guestCart(ctx, args)
}

func (a *app) guestCart(ctx context.Context, args []string) error {
	switch args[0] {
	case "show":
		cart := a.guest.Get(ctx)
		if cart == nil {
			fmt.Println("cart is empty")
			return nil
		}
		return printJSON(cart)
	case "add":
		id, err := argID(args, 1)
		if err != nil {
			return err
		}
		quantity, err := argInt(args, 2)
		if err != nil {
			return err
		}
		// Price and title come from the catalog so the guest snapshot can
		// render line totals offline.
		item, err := a.client.ItemByID(ctx, id)
		if err != nil {
			return err
		}
		cart := a.guest.AddItem(ctx, item.ID, item.Title, item.Price, quantity)
		return printJSON(cart)
	case "update":
		id, err := argID(args, 1)
		if err != nil {
			return err
		}
		quantity, err := argInt(args, 2)
		if err != nil {
			return err
		}
		cart := a.guest.UpdateQuantity(ctx, id, quantity)
		if cart == nil {
			return fmt.Errorf("no such item in cart")
		}
		return printJSON(cart)
	case "remove":
		id, err := argID(args, 1)
		if err != nil {
			return err
		}
		cart := a.guest.RemoveItem(ctx, id)
		if cart == nil {
			return fmt.Errorf("cart is empty")
		}
		return printJSON(cart)
	case "clear":
		a.guest.Clear(ctx)
		fmt.Println("cart cleared")
		return nil
	case "discount":
		if len(args) < 2 {
			return fmt.Errorf("cart discount: missing code")
		}
		percentage := 10.0
		if len(args) > 2 {
			parsed, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("bad percentage %q", args[2])
			}
			percentage = parsed
		}
		cart := a.guest.ApplyDiscount(ctx, args[1], percentage)
		if cart == nil {
			return fmt.Errorf("cart is empty")
		}
		return printJSON(cart)
	default:
		return fmt.Errorf("cart: unknown subcommand %q", args[0])
	}
}

func (a *app) serverCart(ctx context.Context, args []string) error {
	user, ok := a.sessions.User(ctx)
	if !ok {
		return fmt.Errorf("session has no user record, log in again")
	}

	switch args[0] {
	case "show":
		cart, err := a.client.CartSummary(ctx, user.ID)
		if err != nil {
			return err
		}
		return printJSON(cart)
	case "add":
		id, err := argID(args, 1)
		if err != nil {
			return err
		}
		quantity, err := argInt(args, 2)
		if err != nil {
			return err
		}
		if err := a.client.AddCartItem(ctx, user.ID, id, quantity); err != nil {
			return err
		}
	case "update":
		id, err := argID(args, 1)
		if err != nil {
			return err
		}
		quantity, err := argInt(args, 2)
		if err != nil {
			return err
		}
		if err := a.client.UpdateCartQuantity(ctx, user.ID, id, quantity); err != nil {
			return err
		}
	case "remove":
		id, err := argID(args, 1)
		if err != nil {
			return err
		}
		if err := a.client.RemoveCartItem(ctx, user.ID, id); err != nil {
			return err
		}
	case "clear":
		if err := a.client.ClearCart(ctx, user.ID); err != nil {
			return err
		}
	case "discount":
		if len(args) < 2 {
			return fmt.Errorf("cart discount: missing code")
		}
		cart, err := a.client.ApplyCartDiscount(ctx, user.ID, args[1])
		if err != nil {
			return err
		}
		return printJSON(cart)
	default:
		return fmt.Errorf("cart: unknown subcommand %q", args[0])
	}

	// Optimistic refresh after any mutation, like the web client does.
	cart, err := a.client.CartSummary(ctx, user.ID)
	if err != nil {
		return err
	}
	return printJSON(cart)
}

func (a *app) login(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("login: need username and password")
	}

	result, err := a.client.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	if err := a.sessions.SetToken(ctx, result.Token); err != nil {
		return err
	}
	if err := a.sessions.SetUser(ctx, &result.User); err != nil {
		return err
	}
	fmt.Printf("logged in as %s\n", result.User.Username)

	// Cart merge is a non-critical side effect: login has already succeeded
	// and stays succeeded no matter how the transfer goes.
	merged := a.merger.MergeOnLogin(ctx, result.User.ID)
	if merged.Attempted() > 0 {
		fmt.Printf("moved %d of %d guest cart items to your account\n", len(merged.Transferred), merged.Attempted())
	}
	if merged.DroppedDiscountCode != "" {
		fmt.Printf("re-apply discount code %q to your cart\n", merged.DroppedDiscountCode)
	}
	return nil
}

func (a *app) register(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("register: need username, email, and password")
	}
	user, err := a.client.Register(ctx, api.RegisterRequest{
		Username: args[0],
		Email:    args[1],
		Password: args[2],
	})
	if err != nil {
		return err
	}
	fmt.Printf("registered %s (id %d), now log in\n", user.Username, user.ID)
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	if !a.sessions.LoggedIn(ctx) {
		fmt.Println("not logged in")
		return nil
	}
	user, ok := a.sessions.User(ctx)
	if !ok {
		fmt.Println("not logged in")
		return nil
	}
	profile, err := a.client.Profile(ctx, user.ID)
	if err != nil {
		return err
	}
	return printJSON(profile)
}

func (a *app) checkout(ctx context.Context) error {
	order, err := a.client.PlaceOrder(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("order %d placed, total $%.2f\n", order.ID, order.Total)
	return nil
}

func (a *app) orders(ctx context.Context) error {
	orders, err := a.client.MyOrders(ctx)
	if err != nil {
		return err
	}
	for _, order := range orders {
		fmt.Printf("%6d  %-10s  $%8.2f  %s\n", order.ID, order.Status, order.Total, order.OrderDate)
	}
	return nil
}

func (a *app) order(ctx context.Context, args []string) error {
	id, err := argID(args, 0)
	if err != nil {
		return err
	}
	order, err := a.client.OrderByID(ctx, id)
	if err != nil {
		return err
	}
	return printJSON(order)
}

func (a *app) admin(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("admin: missing subcommand")
	}

	switch args[0] {
	case "users":
		page := 0
		if len(args) > 1 {
			parsed, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("bad page %q", args[1])
			}
			page = parsed
		}
		users, pagination, err := a.client.AdminUsers(ctx, page, 20)
		if err != nil {
			return err
		}
		for _, user := range users {
			active := "active"
			if !user.IsActive {
				active = "inactive"
			}
			fmt.Printf("%6d  %-20s  %-12s  %s\n", user.ID, user.Username, user.Role, active)
		}
		if pagination != nil {
			fmt.Printf("page %d of %d\n", pagination.PageNumber+1, pagination.TotalPages)
		}
		return nil
	case "discounts":
		codes, err := a.client.DiscountCodes(ctx)
		if err != nil {
			return err
		}
		for _, code := range codes {
			fmt.Printf("%6d  %-16s  %5.1f%%  active=%t  expires %s\n",
				code.ID, code.Code, code.DiscountPercentage, code.Active, code.ExpiryDate)
		}
		return nil
	case "discount":
		if len(args) < 3 {
			return fmt.Errorf("admin discount: need code and percentage")
		}
		percentage, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("bad percentage %q", args[2])
		}
		code, err := a.client.CreateDiscountCode(ctx, api.DiscountCodeRequest{
			Code:               args[1],
			DiscountPercentage: percentage,
		})
		if err != nil {
			return err
		}
		return printJSON(code)
	case "orders":
		var orders []domain.Order
		var err error
		if len(args) > 1 {
			orders, err = a.client.OrdersByStatus(ctx, args[1])
		} else {
			orders, err = a.client.AllOrders(ctx)
		}
		if err != nil {
			return err
		}
		for _, order := range orders {
			fmt.Printf("%6d  %-16s  %-10s  $%8.2f  %s\n", order.ID, order.Username, order.Status, order.Total, order.OrderDate)
		}
		return nil
	case "order-status":
		id, err := argID(args, 1)
		if err != nil {
			return err
		}
		if len(args) < 3 {
			return fmt.Errorf("admin order-status: missing status")
		}
		order, err := a.client.UpdateOrderStatus(ctx, id, args[2])
		if err != nil {
			return err
		}
		return printJSON(order)
	case "sale-toggle":
		id, err := argID(args, 1)
		if err != nil {
			return err
		}
		sale, err := a.client.ToggleSalesItem(ctx, id)
		if err != nil {
			return err
		}
		return printJSON(sale)
	default:
		return fmt.Errorf("admin: unknown subcommand %q", args[0])
	}
}

func argID(args []string, index int) (int64, error) {
	if index >= len(args) {
		return 0, fmt.Errorf("missing id argument")
	}
	id, err := strconv.ParseInt(args[index], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("bad id %q", args[index])
	}
	return id, nil
}

func argInt(args []string, index int) (int, error) {
	if index >= len(args) {
		return 0, fmt.Errorf("missing quantity argument")
	}
	n, err := strconv.Atoi(args[index])
	if err != nil {
		return 0, fmt.Errorf("bad quantity %q", args[index])
	}
	return n, nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
