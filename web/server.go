package web

import (
	"log"

	"github.com/CaptnR/football-jersey-store/web/handlers"
	"github.com/CaptnR/football-jersey-store/web/middleware"
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server represents the web server
type Server struct {
	app *fiber.App
}

// NewServer creates a new Fiber server
func NewServer() *Server {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("ERROR [%s %s]: %v", c.Method(), c.Path(), err)

			message := err.Error()
			if code == fiber.StatusInternalServerError {
				// Never leak internals to the caller.
				message = "Something went wrong"
			}
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"message": message,
			})
		},
	})

	// Middleware
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path} ${error}\n",
	}))

	// Prometheus scrape endpoint
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Setup routes
	setupRoutes(app)

	return &Server{app: app}
}

// App exposes the underlying Fiber app. Used by tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start starts the server
func (s *Server) Start(port string) error {
	log.Printf("Server starting on http://localhost:%s", port)
	return s.app.Listen(":" + port)
}

// setupRoutes configures all application routes
func setupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Auth
	api.Post("/signup", handlers.Signup)
	api.Post("/login", handlers.Login)

	// Catalog (public)
	api.Get("/teams", handlers.TeamList)
	api.Get("/teams/:id", handlers.TeamDetail)
	api.Get("/players", handlers.PlayerList)
	api.Get("/players/:id", handlers.PlayerDetail)
	api.Get("/jerseys", handlers.JerseyList)
	api.Get("/jerseys/:id", handlers.JerseyDetail)
	api.Get("/jerseys/:id/reviews", handlers.ReviewList)
	api.Get("/sales", handlers.ActiveSales)

	// Reviews
	api.Post("/jerseys/:id/reviews", middleware.RequireAuth, handlers.ReviewCreate)
	api.Put("/jerseys/:id/reviews/:reviewID", middleware.RequireAuth, handlers.ReviewUpdate)
	api.Delete("/jerseys/:id/reviews/:reviewID", middleware.RequireAuth, handlers.ReviewDelete)

	// Cart checkout and orders
	api.Post("/checkout", middleware.RequireAuth, handlers.Checkout)
	api.Get("/orders/my_orders", middleware.RequireAuth, handlers.MyOrders)
	api.Get("/orders/:id", middleware.RequireAuth, handlers.OrderDetail)
	api.Patch("/orders/:id/status", middleware.RequireAuth, handlers.UpdateOrderStatus)
	api.Post("/orders/:id/return", middleware.RequireAuth, handlers.RequestReturn)

	// Wishlist
	api.Get("/wishlist", middleware.RequireAuth, handlers.WishlistList)
	api.Post("/wishlist", middleware.RequireAuth, handlers.WishlistAdd)
	api.Delete("/wishlist/:jerseyID", middleware.RequireAuth, handlers.WishlistRemove)

	// Customizations
	api.Get("/customizations", middleware.RequireAuth, handlers.CustomizationList)
	api.Post("/customizations", middleware.RequireAuth, handlers.CustomizationCreate)

	// Stock management (staff key on the public jersey path, matching the
	// storefront client)
	api.Patch("/jerseys/:id/stock", middleware.RequireAuth, middleware.RequireStaff, handlers.JerseyUpdateStock)
	api.Patch("/jerseys/:jerseyID/images/:id/primary", middleware.RequireAuth, middleware.RequireStaff, handlers.JerseySetPrimaryImage)

	// Admin
	admin := api.Group("/admin", middleware.RequireAuth, middleware.RequireStaff)
	admin.Get("/dashboard", handlers.Dashboard)
	admin.Get("/orders", handlers.AdminOrderList)
	admin.Patch("/orders/:id/status", handlers.UpdateOrderStatus)

	admin.Get("/returns", handlers.PendingReturns)
	admin.Post("/returns/:id", handlers.ResolveReturn)

	admin.Get("/sales", handlers.SaleList)
	admin.Post("/sales", handlers.SaleCreate)
	admin.Put("/sales/:id", handlers.SaleUpdate)
	admin.Delete("/sales/:id", handlers.SaleDelete)
	admin.Post("/sales/:id/toggle", handlers.SaleToggle)

	admin.Post("/teams", handlers.TeamCreate)
	admin.Put("/teams/:id", handlers.TeamUpdate)
	admin.Delete("/teams/:id", handlers.TeamDelete)

	admin.Post("/players", handlers.PlayerCreate)
	admin.Put("/players/:id", handlers.PlayerUpdate)
	admin.Delete("/players/:id", handlers.PlayerDelete)

	admin.Post("/jerseys", handlers.JerseyCreate)
	admin.Put("/jerseys/:id", handlers.JerseyUpdate)
	admin.Delete("/jerseys/:id", handlers.JerseyDelete)
	admin.Post("/jerseys/bulk-delete", handlers.JerseyBulkDelete)
}
