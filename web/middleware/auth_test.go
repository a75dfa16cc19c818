package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/CaptnR/football-jersey-store/database"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newAuthApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	database.SetDB(db)

	app := fiber.New()
	app.Get("/me", RequireAuth, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"username": CurrentUser(c).Username})
	})
	app.Get("/admin", RequireAuth, RequireStaff, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app, mock
}

func get(t *testing.T, app *fiber.App, path, authorization string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func tokenRows(isStaff bool) (*sqlmock.Rows, *sqlmock.Rows) {
	tokens := sqlmock.NewRows([]string{"key", "user_id"}).
		AddRow("a3f1c09de4b24c55", 7)
	users := sqlmock.NewRows([]string{"id", "username", "is_staff"}).
		AddRow(7, "ramos_fan", isStaff)
	return tokens, users
}

func TestRequireAuthMissingHeader(t *testing.T) {
	app, _ := newAuthApp(t)

	resp := get(t, app, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthBadScheme(t *testing.T) {
	app, _ := newAuthApp(t)

	resp := get(t, app, "/me", "Basic a3f1c09de4b24c55")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthUnknownToken(t *testing.T) {
	app, mock := newAuthApp(t)

	mock.ExpectQuery(`SELECT \* FROM "auth_tokens"`).
		WillReturnRows(sqlmock.NewRows([]string{"key"}))

	resp := get(t, app, "/me", "Token nope")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRequireAuthTokenScheme(t *testing.T) {
	app, mock := newAuthApp(t)

	tokens, users := tokenRows(false)
	mock.ExpectQuery(`SELECT \* FROM "auth_tokens"`).WillReturnRows(tokens)
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(users)

	resp := get(t, app, "/me", "Token a3f1c09de4b24c55")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRequireAuthBearerScheme(t *testing.T) {
	app, mock := newAuthApp(t)

	tokens, users := tokenRows(false)
	mock.ExpectQuery(`SELECT \* FROM "auth_tokens"`).WillReturnRows(tokens)
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(users)

	resp := get(t, app, "/me", "Bearer a3f1c09de4b24c55")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRequireStaffRejectsShopper(t *testing.T) {
	app, mock := newAuthApp(t)

	tokens, users := tokenRows(false)
	mock.ExpectQuery(`SELECT \* FROM "auth_tokens"`).WillReturnRows(tokens)
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(users)

	resp := get(t, app, "/admin", "Token a3f1c09de4b24c55")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRequireStaffAllowsAdmin(t *testing.T) {
	app, mock := newAuthApp(t)

	tokens, users := tokenRows(true)
	mock.ExpectQuery(`SELECT \* FROM "auth_tokens"`).WillReturnRows(tokens)
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(users)

	resp := get(t, app, "/admin", "Token a3f1c09de4b24c55")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}
