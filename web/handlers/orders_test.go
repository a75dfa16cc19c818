package handlers

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateOrderStatusCustomerCannotShip(t *testing.T) {
	mock := newMockDB(t)
	app := newTestApp(shopper())

	mock.ExpectQuery(`SELECT \* FROM "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "status", "total_price"}).
			AddRow(1, 7, "processing", "160.00"))

	resp := doJSON(t, app, http.MethodPatch, "/api/orders/1/status", fiber.Map{"status": "shipped"})

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrderStatusCustomerCancelsProcessing(t *testing.T) {
	mock := newMockDB(t)
	app := newTestApp(shopper())

	mock.ExpectQuery(`SELECT \* FROM "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "status", "total_price"}).
			AddRow(1, 7, "processing", "160.00"))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "orders"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	resp := doJSON(t, app, http.MethodPatch, "/api/orders/1/status", fiber.Map{"status": "cancelled"})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	env := decodeEnvelope(t, resp)
	assert.True(t, env.Success)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrderStatusDeliveredIsLocked(t *testing.T) {
	mock := newMockDB(t)
	app := newTestApp(admin())

	mock.ExpectQuery(`SELECT \* FROM "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "status", "total_price"}).
			AddRow(1, 7, "delivered", "160.00"))

	resp := doJSON(t, app, http.MethodPatch, "/api/orders/1/status", fiber.Map{"status": "shipped"})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrderStatusOtherUsersOrder(t *testing.T) {
	mock := newMockDB(t)
	app := newTestApp(shopper())

	mock.ExpectQuery(`SELECT \* FROM "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "status", "total_price"}).
			AddRow(1, 42, "processing", "160.00"))

	resp := doJSON(t, app, http.MethodPatch, "/api/orders/1/status", fiber.Map{"status": "cancelled"})

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrderStatusUnknownValue(t *testing.T) {
	newMockDB(t)
	app := newTestApp(admin())

	resp := doJSON(t, app, http.MethodPatch, "/api/orders/1/status", fiber.Map{"status": "teleported"})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
