package mock

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/MarquisOgre/Spices/internal/db"
	applog "github.com/MarquisOgre/Spices/internal/log"
	"github.com/MarquisOgre/Spices/models"
)

// New returns an in-memory sqlite database seeded with a representative
// master price list, recipes, pack pricing, and one sample order. It backs
// local development and the handler test suite.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	database, err := gorm.Open(sqlite.Open("file:spices-mock?mode=memory&cache=shared"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(database); err != nil {
		return nil, err
	}

	if err := seed(ctx, database); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return database, nil
}

func seed(ctx context.Context, database *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	password, err := bcrypt.GenerateFromPassword([]byte("masala"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &models.User{
		Name:         "Kitchen Admin",
		Email:        "admin@spices.local",
		PasswordHash: string(password),
	}
	if err := database.WithContext(ctx).Create(user).Error; err != nil {
		return err
	}

	ingredients := []models.MasterIngredient{
		{Name: "Coriander Seeds", PricePerKg: 120, Brand: "Premium"},
		{Name: "Red Chili", PricePerKg: 200, Brand: "Spicy"},
		{Name: "Turmeric", PricePerKg: 150, Brand: "Golden"},
		{Name: "Cumin Seeds", PricePerKg: 180, Brand: "Aromatic"},
		{Name: "Black Gram", PricePerKg: 140, Brand: "Fresh"},
		{Name: "Sesame Seeds", PricePerKg: 300, Brand: "Premium"},
	}
	for i := range ingredients {
		if err := database.WithContext(ctx).Create(&ingredients[i]).Error; err != nil {
			return err
		}
	}

	recipes := []models.Recipe{
		{
			Name:         "Sambar Powder",
			Preparation:  "Dry roast all ingredients separately until aromatic. Cool completely and grind to fine powder. Store in airtight container.",
			SellingPrice: 400,
			Overheads:    50,
			ShelfLife:    "6 months",
			Storage:      "Store in dry, airtight container",
			Ingredients: []models.RecipeIngredient{
				{IngredientName: "Coriander Seeds", Quantity: 200, Unit: "g"},
				{IngredientName: "Red Chili", Quantity: 100, Unit: "g"},
				{IngredientName: "Turmeric", Quantity: 50, Unit: "g"},
			},
		},
		{
			Name:         "Rasam Powder",
			Preparation:  "Dry roast coriander seeds and cumin seeds separately. Roast red chili until crisp. Cool and grind all together to fine powder.",
			SellingPrice: 350,
			Overheads:    40,
			ShelfLife:    "6 months",
			Storage:      "Store in dry place",
			Ingredients: []models.RecipeIngredient{
				{IngredientName: "Coriander Seeds", Quantity: 150, Unit: "g"},
				{IngredientName: "Cumin Seeds", Quantity: 100, Unit: "g"},
				{IngredientName: "Red Chili", Quantity: 80, Unit: "g"},
			},
		},
		{
			Name:         "Idly Podi",
			Preparation:  "Dry roast black gram until golden. Roast sesame seeds until they pop. Roast red chili until crisp. Cool and grind coarsely with salt.",
			SellingPrice: 450,
			Overheads:    60,
			ShelfLife:    "4 months",
			Storage:      "Airtight container",
			Ingredients: []models.RecipeIngredient{
				{IngredientName: "Black Gram", Quantity: 300, Unit: "g"},
				{IngredientName: "Sesame Seeds", Quantity: 150, Unit: "g"},
				{IngredientName: "Red Chili", Quantity: 100, Unit: "g"},
			},
		},
	}
	for i := range recipes {
		if err := database.WithContext(ctx).Create(&recipes[i]).Error; err != nil {
			return err
		}
	}

	pricing := []models.RecipePricing{
		{RecipeName: "Sambar Powder", QuantityType: "250g", Price: 110, IsEnabled: true},
		{RecipeName: "Sambar Powder", QuantityType: "1kg", Price: 400, IsEnabled: true},
		{RecipeName: "Rasam Powder", QuantityType: "250g", Price: 95, IsEnabled: true},
		{RecipeName: "Idly Podi", QuantityType: "250g", Price: 120, IsEnabled: false},
	}
	for i := range pricing {
		if err := database.WithContext(ctx).Create(&pricing[i]).Error; err != nil {
			return err
		}
	}

	order := models.Order{
		CustomerName:  "Lakshmi Stores",
		PhoneNumber:   "9876543210",
		Address:       "14 Bazaar Street, Mylapore",
		TotalAmount:   590,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusUnpaid,
		InvoiceNumber: "INV-202601-0001",
		Items: []models.OrderItem{
			{RecipeName: "Sambar Powder", QuantityType: "1kg", Quantity: 1, Amount: 400},
			{RecipeName: "Rasam Powder", QuantityType: "250g", Quantity: 2, Amount: 95},
		},
	}
	if err := database.WithContext(ctx).Create(&order).Error; err != nil {
		return err
	}

	applog.Debug(ctx, "mock database seeded")
	return nil
}
