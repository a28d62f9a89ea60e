package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/filsox/store-api/internal/api/http/handlers"
	"github.com/filsox/store-api/internal/auth"
	"github.com/filsox/store-api/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	Products       *handlers.ProductsHandler
	Finance        *handlers.FinanceHandler
	Customers      *handlers.CustomersHandler
	Sales          *handlers.SalesHandler
	Stores         *handlers.StoresHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Store-scoped groups sit behind the
// module toggles of the tenant's plan.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	protected := app.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/auth/me", cfg.Auth.Me)
	protected.Post("/auth/password/change", cfg.Auth.ChangePassword)

	osGroup := protected.Group("/os", auth.RequireStore(), auth.RequireModule(domain.ModuleTickets))
	osGroup.Get("/queues", cfg.Tickets.Queues)
	osGroup.Get("/queues/counts", cfg.Tickets.QueueCounts)
	osGroup.Get("", cfg.Tickets.ListTickets)
	osGroup.Post("", cfg.Tickets.CreateTicket)
	osGroup.Get("/:id", cfg.Tickets.GetTicket)
	osGroup.Patch("/:id", cfg.Tickets.UpdateTicket)
	osGroup.Post("/:id/complete", cfg.Tickets.Complete)
	osGroup.Post("/:id/warranty", cfg.Tickets.SendToWarranty)
	osGroup.Post("/:id/warranty/arrived", cfg.Tickets.MarkArrived)
	osGroup.Post("/:id/deliver", cfg.Tickets.Deliver)
	osGroup.Get("/:id/qrcode", cfg.Tickets.QRCode)
	osGroup.Delete("/number/:number", auth.RequireRole(domain.RoleAdmin), cfg.Tickets.DeleteTicket)

	stockGroup := protected.Group("/products", auth.RequireStore(), auth.RequireModule(domain.ModuleInventory))
	stockGroup.Get("/metrics", cfg.Products.Metrics)
	stockGroup.Get("", cfg.Products.ListProducts)
	stockGroup.Post("", cfg.Products.CreateProduct)
	stockGroup.Put("/:id", cfg.Products.UpdateProduct)
	stockGroup.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Products.DeleteProduct)

	salesGroup := protected.Group("/sales", auth.RequireStore(), auth.RequireModule(domain.ModuleInventory))
	salesGroup.Get("", cfg.Sales.ListSales)
	salesGroup.Post("", cfg.Sales.CreateSale)

	financeGroup := protected.Group("/finance", auth.RequireStore(), auth.RequireModule(domain.ModuleFinance))
	financeGroup.Get("/summary", cfg.Finance.Summary)
	financeGroup.Get("", cfg.Finance.ListEntries)
	financeGroup.Post("", cfg.Finance.CreateEntry)
	financeGroup.Patch("/:id/status", cfg.Finance.SettleEntry)
	financeGroup.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Finance.DeleteEntry)

	customersGroup := protected.Group("/customers", auth.RequireStore(), auth.RequireModule(domain.ModuleCustomers))
	customersGroup.Get("", cfg.Customers.ListCustomers)
	customersGroup.Post("", cfg.Customers.CreateCustomer)
	customersGroup.Get("/:id/detail", cfg.Customers.GetCustomerDetail)
	customersGroup.Put("/:id", cfg.Customers.UpdateCustomer)
	customersGroup.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Customers.DeleteCustomer)

	usersGroup := protected.Group("/users", auth.RequireStore(), auth.RequireRole(domain.RoleAdmin))
	usersGroup.Get("", cfg.Users.ListUsers)
	usersGroup.Post("", cfg.Users.CreateUser)
	usersGroup.Patch("/:id", cfg.Users.UpdateUser)
	usersGroup.Delete("/:id", cfg.Users.DeleteUser)

	adminGroup := protected.Group("/admin/stores", auth.RequireSuperAdmin())
	adminGroup.Get("", cfg.Stores.ListStores)
	adminGroup.Post("", cfg.Stores.CreateStore)
	adminGroup.Get("/:id", cfg.Stores.GetStore)
	adminGroup.Patch("/:id", cfg.Stores.UpdateStore)
	adminGroup.Post("/:id/users", cfg.Stores.CreateStoreUser)
}
