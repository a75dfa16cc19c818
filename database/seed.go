package database

import (
	"fmt"
	"log"
	"time"

	"github.com/CaptnR/football-jersey-store/models"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedData populates the database with a small catalog, an admin account,
// a handful of shoppers and enough orders/reviews to exercise the API.
// Idempotent: does nothing when teams already exist.
func SeedData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Team{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Seed skipped: catalog already populated")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := seedUser(tx, "admin", "admin@jerseystore.local", "admin123", true); err != nil {
			return err
		}

		teams := []models.Team{
			{Name: "Manchester United", League: "Premier League", Logo: "logos/man_utd.png"},
			{Name: "Real Madrid", League: "La Liga", Logo: "logos/real_madrid.png"},
			{Name: "FC Barcelona", League: "La Liga", Logo: "logos/barcelona.png"},
			{Name: "Bayern Munich", League: "Bundesliga", Logo: "logos/bayern.png"},
		}
		if err := tx.Create(&teams).Error; err != nil {
			return err
		}

		players := []models.Player{
			{Name: "Bruno Fernandes", TeamID: teams[0].ID},
			{Name: "Marcus Rashford", TeamID: teams[0].ID},
			{Name: "Vinicius Junior", TeamID: teams[1].ID},
			{Name: "Jude Bellingham", TeamID: teams[1].ID},
			{Name: "Robert Lewandowski", TeamID: teams[2].ID},
			{Name: "Harry Kane", TeamID: teams[3].ID},
		}
		if err := tx.Create(&players).Error; err != nil {
			return err
		}

		jerseys := make([]models.Jersey, 0, len(players))
		for i, p := range players {
			jerseys = append(jerseys, models.Jersey{
				PlayerID:          p.ID,
				Price:             decimal.NewFromInt(int64(80 + 5*i)),
				Stock:             20 + 3*i,
				LowStockThreshold: 5,
			})
		}
		if err := tx.Create(&jerseys).Error; err != nil {
			return err
		}

		for i := range jerseys {
			images := []models.JerseyImage{
				{JerseyID: jerseys[i].ID, Image: fmt.Sprintf("jerseys/%d_front.jpg", jerseys[i].ID), IsPrimary: true, DisplayOrder: 0},
				{JerseyID: jerseys[i].ID, Image: fmt.Sprintf("jerseys/%d_back.jpg", jerseys[i].ID), DisplayOrder: 1},
			}
			if err := tx.Create(&images).Error; err != nil {
				return err
			}
		}

		now := time.Now()
		sales := []models.Sale{
			{
				SaleType:      models.SaleTeam,
				TargetValue:   fmt.Sprint(teams[0].ID),
				DiscountType:  models.DiscountFlat,
				DiscountValue: decimal.NewFromInt(20),
				StartDate:     now.AddDate(0, 0, -1),
				EndDate:       now.AddDate(0, 0, 13),
				IsActive:      true,
			},
			{
				SaleType:      models.SaleLeague,
				TargetValue:   "La Liga",
				DiscountType:  models.DiscountPercentage,
				DiscountValue: decimal.NewFromInt(10),
				StartDate:     now.AddDate(0, 0, -1),
				EndDate:       now.AddDate(0, 0, 6),
				IsActive:      true,
			},
		}
		if err := tx.Create(&sales).Error; err != nil {
			return err
		}

		// A few shoppers with delivered orders and reviews
		for i := 0; i < 5; i++ {
			username := gofakeit.Username()
			user, err := seedUser(tx, username, gofakeit.Email(), "password123", false)
			if err != nil {
				return err
			}

			jersey := jerseys[i%len(jerseys)]
			order := models.Order{
				UserID:     user.ID,
				Status:     models.OrderDelivered,
				TotalPrice: jersey.Price,
			}
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
			jerseyID := jersey.ID
			item := models.OrderItem{
				OrderID:    order.ID,
				JerseyID:   &jerseyID,
				Quantity:   1,
				Price:      jersey.Price,
				Size:       "M",
				Type:       models.ItemRegular,
				PlayerName: players[i%len(players)].Name,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}

			review := models.Review{
				UserID:   user.ID,
				JerseyID: jersey.ID,
				Rating:   gofakeit.Number(3, 5),
				Comment:  gofakeit.Sentence(8),
			}
			if err := tx.Create(&review).Error; err != nil {
				return err
			}
			if err := models.RecalculateAverageRating(tx, jersey.ID); err != nil {
				return err
			}
		}

		log.Println("Seed data created")
		return nil
	})
}

func seedUser(tx *gorm.DB, username, email, password string, staff bool) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		IsStaff:      staff,
	}
	if err := tx.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
