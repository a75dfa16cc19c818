package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutEmptyCartRejected(t *testing.T) {
	newMockDB(t)
	app := newTestApp(shopper())

	resp := doJSON(t, app, http.MethodPost, "/api/checkout", fiber.Map{
		"items":       []fiber.Map{},
		"total_price": "0",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	env := decodeEnvelope(t, resp)
	assert.False(t, env.Success)
}

func TestCheckoutCreatesOrderAndReservesStock(t *testing.T) {
	mock := newMockDB(t)
	app := newTestApp(shopper())

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "sales"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT \* FROM "jerseys"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "player_id", "price", "stock", "low_stock_threshold"}).
			AddRow(3, 10, "80.00", 5, 5))
	mock.ExpectQuery(`SELECT \* FROM "players"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "team_id"}).
			AddRow(10, "Jude Bellingham", 20))
	mock.ExpectQuery(`SELECT \* FROM "teams"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "league"}).
			AddRow(20, "Real Madrid", "La Liga"))
	mock.ExpectExec(`UPDATE "jerseys" SET "stock"=stock - `).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "order_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectCommit()

	// Reload with items for the response payload.
	mock.ExpectQuery(`SELECT \* FROM "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "status", "total_price"}).
			AddRow(1, 7, "processing", "160.00"))
	mock.ExpectQuery(`SELECT \* FROM "order_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "jersey_id", "quantity", "price", "size", "type"}).
			AddRow(11, 1, 3, 2, "80.00", "L", "regular"))

	resp := doJSON(t, app, http.MethodPost, "/api/checkout", fiber.Map{
		"items": []fiber.Map{
			{"jersey_id": 3, "quantity": 2, "size": "L"},
		},
		"total_price": "160.00",
	})

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	env := decodeEnvelope(t, resp)
	assert.True(t, env.Success)
	assert.Equal(t, "Order placed", env.Message)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckoutZeroTotalFullyDiscountedCart(t *testing.T) {
	mock := newMockDB(t)
	app := newTestApp(shopper())

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	// A flat discount larger than the price clamps the item to 0.00.
	mock.ExpectQuery(`SELECT \* FROM "sales"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "sale_type", "target_value", "discount_type", "discount_value", "start_date", "end_date", "is_active"}).
			AddRow(1, "ALL", "", "FLAT", "100.00", now.Add(-time.Hour), now.Add(time.Hour), true))
	mock.ExpectQuery(`SELECT \* FROM "jerseys"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "player_id", "price", "stock", "low_stock_threshold"}).
			AddRow(3, 10, "80.00", 5, 5))
	mock.ExpectQuery(`SELECT \* FROM "players"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "team_id"}).
			AddRow(10, "Jude Bellingham", 20))
	mock.ExpectQuery(`SELECT \* FROM "teams"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "league"}).
			AddRow(20, "Real Madrid", "La Liga"))
	mock.ExpectExec(`UPDATE "jerseys" SET "stock"=stock - `).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "order_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectCommit()

	mock.ExpectQuery(`SELECT \* FROM "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "status", "total_price"}).
			AddRow(1, 7, "processing", "0.00"))
	mock.ExpectQuery(`SELECT \* FROM "order_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "jersey_id", "quantity", "price", "size", "type"}).
			AddRow(11, 1, 3, 1, "0.00", "M", "regular"))

	resp := doJSON(t, app, http.MethodPost, "/api/checkout", fiber.Map{
		"items": []fiber.Map{
			{"jersey_id": 3, "quantity": 1},
		},
		"total_price": "0.00",
	})

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	env := decodeEnvelope(t, resp)
	assert.True(t, env.Success)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckoutNegativeTotalRejected(t *testing.T) {
	newMockDB(t)
	app := newTestApp(shopper())

	resp := doJSON(t, app, http.MethodPost, "/api/checkout", fiber.Map{
		"items": []fiber.Map{
			{"jersey_id": 3, "quantity": 1},
		},
		"total_price": "-10.00",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCheckoutInsufficientStockRollsBack(t *testing.T) {
	mock := newMockDB(t)
	app := newTestApp(shopper())

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "sales"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT \* FROM "jerseys"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "player_id", "price", "stock", "low_stock_threshold"}).
			AddRow(3, 10, "80.00", 1, 5))
	mock.ExpectQuery(`SELECT \* FROM "players"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "team_id"}).
			AddRow(10, "Jude Bellingham", 20))
	mock.ExpectQuery(`SELECT \* FROM "teams"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "league"}).
			AddRow(20, "Real Madrid", "La Liga"))
	// Guarded decrement matches no rows when stock is short.
	mock.ExpectExec(`UPDATE "jerseys" SET "stock"=stock - `).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	resp := doJSON(t, app, http.MethodPost, "/api/checkout", fiber.Map{
		"items": []fiber.Map{
			{"jersey_id": 3, "quantity": 2},
		},
		"total_price": "160.00",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	env := decodeEnvelope(t, resp)
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "stock")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckoutMissingJerseyAborts(t *testing.T) {
	mock := newMockDB(t)
	app := newTestApp(shopper())

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "sales"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT \* FROM "jerseys"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	resp := doJSON(t, app, http.MethodPost, "/api/checkout", fiber.Map{
		"items": []fiber.Map{
			{"jersey_id": 99, "quantity": 1},
		},
		"total_price": "80.00",
	})

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckoutCustomItemNeedsPrice(t *testing.T) {
	mock := newMockDB(t)
	app := newTestApp(shopper())

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "sales"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	resp := doJSON(t, app, http.MethodPost, "/api/checkout", fiber.Map{
		"items": []fiber.Map{
			{"type": "custom", "quantity": 1, "player_name": "RAMOS"},
		},
		"total_price": "95.00",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}
