package store

import (
	"errors"

	"fleamarket_backend/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Store is the persistence layer for users, products and transactions. All
// reads that back an endpoint are scoped here, and the only generic product
// write it offers cannot touch the status column.
type Store struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{DB: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrNotFound
	}
	return err
}

// ---- Users ----

func (s *Store) CreateUser(user *models.User) error {
	return s.DB.Create(user).Error
}

func (s *Store) UserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *Store) UserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *Store) UpdatePassword(userID uint, hash string) error {
	return s.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("password", hash).Error
}

// ---- Products ----

func (s *Store) CreateProduct(product *models.Product) error {
	if err := s.DB.Create(product).Error; err != nil {
		return err
	}
	return s.DB.Preload("Seller").First(product, product.ID).Error
}

func (s *Store) ProductByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := s.DB.Preload("Seller").First(&product, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &product, nil
}

// ListProducts returns a public page of products, newest first, optionally
// filtered by exact status.
func (s *Store) ListProducts(status string, page, limit int) ([]models.Product, int64, error) {
	query := s.DB.Model(&models.Product{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	err := query.Preload("Seller").
		Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&products).Error
	return products, total, err
}

// UpdateProductDetails is the generic product write path. Select pins the
// writable columns, so status edits cannot sneak through here no matter what
// the caller binds.
func (s *Store) UpdateProductDetails(product *models.Product, name string, price decimal.Decimal) error {
	return s.DB.Model(product).Select("name", "price").
		Updates(models.Product{Name: name, Price: price}).Error
}

// ---- Scoped queries ----

// ListOwnProductsOnSale returns the user's products that are still listed.
func (s *Store) ListOwnProductsOnSale(userID uint) ([]models.Product, error) {
	var products []models.Product
	err := s.DB.Preload("Seller").
		Where("seller_id = ? AND status = ?", userID, models.ProductOnSale).
		Order("created_at desc").
		Find(&products).Error
	return products, err
}

// ListSales returns every product the user has listed, in any status.
func (s *Store) ListSales(userID uint) ([]models.Product, error) {
	var products []models.Product
	err := s.DB.Preload("Seller").
		Where("seller_id = ?", userID).
		Order("created_at desc").
		Find(&products).Error
	return products, err
}

// ListPurchases returns the transactions in which the user is the buyer.
func (s *Store) ListPurchases(userID uint) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := s.transactionQuery().
		Where("buyer_id = ?", userID).
		Order("created_at desc").
		Find(&transactions).Error
	return transactions, err
}

// ListTransactionsFor returns transactions where the user is seller or buyer,
// most recent first. A limit of 0 means no limit.
func (s *Store) ListTransactionsFor(userID uint, limit int) ([]models.Transaction, error) {
	query := s.transactionQuery().
		Where("seller_id = ? OR buyer_id = ?", userID, userID).
		Order("created_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var transactions []models.Transaction
	err := query.Find(&transactions).Error
	return transactions, err
}

func (s *Store) TransactionByID(id uint) (*models.Transaction, error) {
	var tx models.Transaction
	if err := s.transactionQuery().First(&tx, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &tx, nil
}

func (s *Store) transactionQuery() *gorm.DB {
	return s.DB.Model(&models.Transaction{}).
		Preload("Product").
		Preload("Product.Seller").
		Preload("Seller").
		Preload("Buyer")
}

// ---- Refresh tokens ----

func (s *Store) SaveRefreshToken(token *models.RefreshToken) error {
	return s.DB.Create(token).Error
}

// ConsumeRefreshToken revokes a live refresh token by digest and returns it.
// The guarded update makes each token single-use even under concurrent
// refresh calls.
func (s *Store) ConsumeRefreshToken(tokenHash string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("token_hash = ?", tokenHash).First(&token).Error; err != nil {
			return notFound(err)
		}
		res := tx.Model(&models.RefreshToken{}).
			Where("id = ? AND revoked_at IS NULL", token.ID).
			Update("revoked_at", gorm.Expr("CURRENT_TIMESTAMP"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &token, nil
}
