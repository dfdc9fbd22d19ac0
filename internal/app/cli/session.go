package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ecomarket/marketplace/internal/console"
	catalogdomain "github.com/ecomarket/marketplace/internal/domains/catalog/domain"
	catalogports "github.com/ecomarket/marketplace/internal/domains/catalog/ports"
	marketports "github.com/ecomarket/marketplace/internal/domains/market/ports"
	userdomain "github.com/ecomarket/marketplace/internal/domains/users/domain"
	userports "github.com/ecomarket/marketplace/internal/domains/users/ports"
)

// Session drives the interactive two-tier menu state machine: an anonymous
// menu, then an authenticated menu whose actions are shared between roles
// with admin-only entries gated by a capability tag.
type Session struct {
	console console.Console
	catalog catalogports.Service
	users   userports.Service
	market  marketports.Service
	form    *validator.Validate
	eof     bool
}

func NewSession(c console.Console, catalog catalogports.Service, users userports.Service, market marketports.Service) *Session {
	return &Session{
		console: c,
		catalog: catalog,
		users:   users,
		market:  market,
		form:    newFormValidator(),
	}
}

// ask reads one answer, remembering input exhaustion so the menu loops stop
// instead of spinning on empty reads from a closed stdin.
func (s *Session) ask(question string) string {
	answer, err := s.console.Prompt(question)
	if err != nil {
		s.eof = true
	}
	return answer
}

// Run loops the anonymous menu until the user exits or input runs out.
func (s *Session) Run(ctx context.Context) {
	for {
		s.console.Display("\nWelcome to the Marketplace", console.Info)
		s.console.Display("1. Register", console.Info)
		s.console.Display("2. Login", console.Info)
		s.console.Display("3. See All Products", console.Info)
		s.console.Display("4. Exit", console.Info)

		choice := s.ask("Enter your choice: ")
		if s.eof {
			return
		}
		switch choice {
		case "1":
			s.register(ctx)
		case "2":
			s.login(ctx)
		case "3":
			s.browse(ctx)
		case "4":
			s.console.Display("Thank you for using the Marketplace. Goodbye!", console.Success)
			return
		default:
			s.console.Display("Invalid choice. Please try again.", console.Error)
		}
	}
}

func (s *Session) register(ctx context.Context) {
	form := registrationForm{
		Name:     s.ask("Enter your name: "),
		Username: s.ask("Enter your username: "),
		Email:    s.ask("Enter your email: "),
		Password: s.ask("Enter your password: "),
	}
	if err := validateRegistration(s.form, form); err != nil {
		s.console.Display("Validation error: "+err.Error(), console.Error)
		return
	}
	if _, err := s.users.Register(ctx, form.toInput()); err != nil {
		if errors.Is(err, userdomain.ErrDuplicateUsername) {
			s.console.Display("Username already exists. Please choose a different username.", console.Error)
			return
		}
		s.console.Display("Registration failed: "+err.Error(), console.Error)
		return
	}
	s.console.Display("Registration successful!", console.Success)
}

func (s *Session) login(ctx context.Context) {
	username := s.ask("Enter your username: ")
	password := s.ask("Enter your password: ")

	user, err := s.users.Authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, userports.ErrInvalidCredentials) {
			s.console.Display("Invalid username or password.", console.Error)
			return
		}
		s.console.Display("Login failed: "+err.Error(), console.Error)
		return
	}
	s.console.Display("Login successful!", console.Success)
	s.showNotifications(ctx, user.Username)
	s.authenticated(ctx, user)
}

// showNotifications drains and displays the mailbox; messages count as
// delivered only once the cleared state is persisted, so a storage failure
// keeps them queued for the next login.
func (s *Session) showNotifications(ctx context.Context, username string) {
	messages, err := s.users.DrainNotifications(ctx, username)
	if err != nil {
		s.console.Display("Could not fetch notifications: "+err.Error(), console.Error)
		return
	}
	if len(messages) == 0 {
		s.console.Display("No new notifications.", console.Info)
		return
	}
	s.console.Display("\nYou have new notifications:", console.Info)
	for i, message := range messages {
		s.console.Display(fmt.Sprintf("Notification %d: %s", i+1, message), console.Warning)
	}
}

type menuItem struct {
	label string
	run   func(ctx context.Context)
}

// authenticated runs the role-tagged submenu until logout. Both roles share
// the common actions; the admin tag appends the privileged entries instead of
// duplicating the whole menu.
func (s *Session) authenticated(ctx context.Context, user *userdomain.User) {
	items := []menuItem{
		{"See All Products", s.browse},
		{"Buy Products", func(ctx context.Context) { s.buy(ctx, user.Username) }},
		{"See Bought Products", func(ctx context.Context) { s.myOrders(ctx, user.Username) }},
		{"Search Products by Name", s.searchProducts},
		{"Search Orders by ID", func(ctx context.Context) { s.searchOrder(ctx, user.Username) }},
	}
	if user.Admin {
		items = append(items,
			menuItem{"Add Product", s.addProduct},
			menuItem{"Edit Product", s.editProduct},
			menuItem{"Approve Orders", s.approveOrders},
			menuItem{"See All Orders", s.allOrders},
		)
	}

	title := "\nUser Menu"
	if user.Admin {
		title = "\nAdmin Menu"
	}
	for {
		s.console.Display(title, console.Info)
		for i, item := range items {
			s.console.Display(fmt.Sprintf("%d. %s", i+1, item.label), console.Info)
		}
		s.console.Display(fmt.Sprintf("%d. Logout", len(items)+1), console.Info)

		choice := s.ask("Enter your choice: ")
		if s.eof {
			return
		}
		index, err := strconv.Atoi(choice)
		if err != nil || index < 1 || index > len(items)+1 {
			s.console.Display("Invalid choice. Please try again.", console.Error)
			continue
		}
		if index == len(items)+1 {
			s.console.Display("Logged out successfully.", console.Success)
			return
		}
		items[index-1].run(ctx)
	}
}

func (s *Session) browse(ctx context.Context) {
	catalog, err := s.catalog.List(ctx)
	if err != nil {
		s.console.Display("Could not load products: "+err.Error(), console.Error)
		return
	}
	if len(catalog) == 0 {
		s.console.Display("No products available at the moment.", console.Error)
		return
	}
	s.console.Display("All Products:", console.Info)
	s.displayProducts(catalog)
}

func (s *Session) searchProducts(ctx context.Context) {
	term := s.ask("Enter product name to search: ")
	results, err := s.catalog.Search(ctx, term)
	if err != nil {
		s.console.Display("Search failed: "+err.Error(), console.Error)
		return
	}
	if len(results) == 0 {
		s.console.Display("No products found matching your search.", console.Error)
		return
	}
	s.console.Display("Search Results:", console.Info)
	s.displayProducts(results)
}

func (s *Session) displayProducts(catalog catalogdomain.Catalog) {
	for _, product := range catalog {
		s.console.Display(fmt.Sprintf("\nProduct ID: %s", product.ID), console.Warning)
		s.console.Display(fmt.Sprintf("Name: %s", product.Name), console.Info)
		s.console.Display(fmt.Sprintf("Price: $%v", product.Price), console.Info)
		s.console.Display(fmt.Sprintf("Description: %s", product.Description), console.Info)
		s.console.Display(fmt.Sprintf("Quantity: %d", product.Quantity), console.Info)
	}
}

func (s *Session) buy(ctx context.Context, username string) {
	productID := s.ask("Enter the product ID to buy: ")
	order, err := s.market.Buy(ctx, username, productID)
	if err != nil {
		switch {
		case errors.Is(err, catalogdomain.ErrNotFound):
			s.console.Display("Product not found.", console.Error)
		case errors.Is(err, catalogdomain.ErrOutOfStock):
			s.console.Display("Out of stock!", console.Error)
		default:
			s.console.Display("Purchase failed: "+err.Error(), console.Error)
		}
		return
	}
	s.console.Display(fmt.Sprintf("Order placed! Order ID: %s. Awaiting admin approval.", order.ID), console.Success)
}

func (s *Session) myOrders(ctx context.Context, username string) {
	orders, err := s.users.Orders(ctx, username)
	if err != nil {
		s.console.Display("Could not load orders: "+err.Error(), console.Error)
		return
	}
	if len(orders) == 0 {
		s.console.Display("You have not bought any products yet.", console.Error)
		return
	}
	s.console.Display("Your Orders:", console.Info)
	for _, order := range orders {
		s.console.Display(fmt.Sprintf("\nOrder ID: %s", order.ID), console.Warning)
		s.console.Display(fmt.Sprintf("Product Name: %s", order.Product.Name), console.Info)
		s.console.Display(fmt.Sprintf("Price: $%v", order.Product.Price), console.Info)
		s.console.Display(fmt.Sprintf("Description: %s", order.Product.Description), console.Info)
		s.console.Display(fmt.Sprintf("Status: %s", order.Status), console.Info)
	}
}

func (s *Session) searchOrder(ctx context.Context, username string) {
	orderID := s.ask("Enter Order ID to search: ")
	order, err := s.users.FindOrder(ctx, username, orderID)
	if err != nil {
		if errors.Is(err, userdomain.ErrOrderNotFound) {
			s.console.Display("Order not found.", console.Error)
			return
		}
		s.console.Display("Could not search orders: "+err.Error(), console.Error)
		return
	}
	s.console.Display("Order Found:", console.Info)
	s.console.Display(fmt.Sprintf("Order ID: %s", order.ID), console.Info)
	s.console.Display(fmt.Sprintf("Product Name: %s", order.Product.Name), console.Info)
	s.console.Display(fmt.Sprintf("Price: $%v", order.Product.Price), console.Info)
	s.console.Display(fmt.Sprintf("Quantity: %d", order.Product.Quantity), console.Info)
	s.console.Display(fmt.Sprintf("Status: %s", order.Status), console.Info)
}

func (s *Session) addProduct(ctx context.Context) {
	name := s.ask("Enter product name: ")
	rawPrice := s.ask("Enter product price: ")
	description := s.ask("Enter product description: ")

	price, err := strconv.ParseFloat(rawPrice, 64)
	if err != nil {
		s.console.Display("Price must be a number.", console.Error)
		return
	}
	product, err := s.catalog.Add(ctx, name, price, description)
	if err != nil {
		s.console.Display("Could not add product: "+err.Error(), console.Error)
		return
	}
	s.console.Display(fmt.Sprintf("Product added successfully! Default quantity set to %d.", product.Quantity), console.Success)
}

func (s *Session) editProduct(ctx context.Context) {
	productID := s.ask("Enter the Product ID to edit: ")
	catalog, err := s.catalog.List(ctx)
	if err != nil {
		s.console.Display("Could not load products: "+err.Error(), console.Error)
		return
	}
	current, err := catalog.Find(productID)
	if err != nil {
		s.console.Display("Product not found.", console.Error)
		return
	}

	var name, description *string
	var price *float64
	if raw := s.ask(fmt.Sprintf("Enter new name (%s): ", current.Name)); raw != "" {
		name = &raw
	}
	if raw := s.ask(fmt.Sprintf("Enter new price (%v): ", current.Price)); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			s.console.Display("Price must be a number.", console.Error)
			return
		}
		price = &parsed
	}
	if raw := s.ask(fmt.Sprintf("Enter new description (%s): ", current.Description)); raw != "" {
		description = &raw
	}

	if _, err := s.catalog.Edit(ctx, productID, name, price, description); err != nil {
		s.console.Display("Could not update product: "+err.Error(), console.Error)
		return
	}
	s.console.Display("Product updated successfully!", console.Success)
}

func (s *Session) approveOrders(ctx context.Context) {
	pending, err := s.market.PendingOrders(ctx)
	if err != nil {
		s.console.Display("Could not load pending orders: "+err.Error(), console.Error)
		return
	}
	if len(pending) == 0 {
		s.console.Display("No pending orders.", console.Success)
		return
	}

	var refs []marketports.OrderRef
	for _, placed := range pending {
		s.console.Display(fmt.Sprintf("\nOrder ID: %s", placed.Order.ID), console.Warning)
		s.console.Display(fmt.Sprintf("User: %s", placed.Username), console.Info)
		s.console.Display(fmt.Sprintf("Product: %s", placed.Order.Product.Name), console.Info)
		s.console.Display(fmt.Sprintf("Price: $%v", placed.Order.Product.Price), console.Info)
		if strings.EqualFold(strings.TrimSpace(s.ask("Approve this order? (yes/no): ")), "yes") {
			refs = append(refs, marketports.OrderRef{Username: placed.Username, OrderID: placed.Order.ID})
		}
	}
	if _, err := s.market.ApproveAll(ctx, refs); err != nil {
		s.console.Display("Could not process approvals: "+err.Error(), console.Error)
		return
	}
	s.console.Display("Order approvals processed.", console.Success)
}

func (s *Session) allOrders(ctx context.Context) {
	placed, err := s.market.AllOrders(ctx)
	if err != nil {
		s.console.Display("Could not load orders: "+err.Error(), console.Error)
		return
	}
	if len(placed) == 0 {
		s.console.Display("No orders found.", console.Success)
		return
	}
	s.console.Display("All Orders:", console.Info)
	for _, entry := range placed {
		s.console.Display(fmt.Sprintf("\nOrder ID: %s", entry.Order.ID), console.Warning)
		s.console.Display(fmt.Sprintf("User: %s", entry.Username), console.Info)
		s.console.Display(fmt.Sprintf("Product: %s", entry.Order.Product.Name), console.Info)
		s.console.Display(fmt.Sprintf("Price: $%v", entry.Order.Product.Price), console.Info)
		s.console.Display(fmt.Sprintf("Status: %s", entry.Order.Status), console.Info)
	}
}
