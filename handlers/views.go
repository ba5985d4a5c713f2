package handlers

import (
	"time"

	"fleamarket_backend/models"

	"github.com/shopspring/decimal"
)

// View models assembled explicitly per endpoint. The nesting is fixed and
// shallow: transaction → product → seller bottoms out at plain user fields,
// so a User→Transaction→Product→User expansion cycle cannot occur.

type UserView struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type ProductView struct {
	ID        uint            `json:"id"`
	Seller    UserView        `json:"seller"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

type TransactionView struct {
	ID          uint        `json:"id"`
	Product     ProductView `json:"product"`
	Seller      UserView    `json:"seller"`
	Buyer       UserView    `json:"buyer"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	CompletedAt *time.Time  `json:"completed_at"`
}

// UserDetailView embeds the user's still-listed products and their most
// recent transactions.
type UserDetailView struct {
	UserView
	Products     []ProductView     `json:"products"`
	Transactions []TransactionView `json:"transactions"`
}

func NewUserView(u *models.User) UserView {
	return UserView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

func NewProductView(p *models.Product) ProductView {
	return ProductView{
		ID:        p.ID,
		Seller:    NewUserView(&p.Seller),
		Name:      p.Name,
		Price:     p.Price,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
	}
}

func NewProductViews(products []models.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for i := range products {
		views = append(views, NewProductView(&products[i]))
	}
	return views
}

func NewTransactionView(t *models.Transaction) TransactionView {
	return TransactionView{
		ID:          t.ID,
		Product:     NewProductView(&t.Product),
		Seller:      NewUserView(&t.Seller),
		Buyer:       NewUserView(&t.Buyer),
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
		CompletedAt: t.CompletedAt,
	}
}

func NewTransactionViews(transactions []models.Transaction) []TransactionView {
	views := make([]TransactionView, 0, len(transactions))
	for i := range transactions {
		views = append(views, NewTransactionView(&transactions[i]))
	}
	return views
}
