package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/CaptnR/football-jersey-store/database"
	"github.com/CaptnR/football-jersey-store/models"
	"github.com/CaptnR/football-jersey-store/web/middleware"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockDB puts a sqlmock-backed GORM connection behind the package-wide
// handle for the duration of one test.
func newMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	database.SetDB(db)
	return mock
}

// newTestApp builds a Fiber app with the request user already injected, so
// handler behavior is tested without the token round trip.
func newTestApp(user *models.User) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		middleware.SetCurrentUser(c, user)
		return c.Next()
	})

	api := app.Group("/api")
	api.Post("/checkout", Checkout)
	api.Patch("/orders/:id/status", UpdateOrderStatus)
	api.Post("/orders/:id/return", RequestReturn)
	api.Post("/wishlist", WishlistAdd)
	api.Delete("/wishlist/:jerseyID", WishlistRemove)
	api.Post("/jerseys/:id/reviews", ReviewCreate)
	api.Post("/admin/returns/:id", ResolveReturn)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), "body: %s", raw)
	return env
}

func shopper() *models.User {
	return &models.User{ID: 7, Username: "ramos_fan", IsStaff: false}
}

func admin() *models.User {
	return &models.User{ID: 1, Username: "admin", IsStaff: true}
}
