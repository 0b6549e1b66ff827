package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/hayamij/PY-CameraShop-sub000/internal/domain"
)

type postgresProductRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresProductRepository(db *sql.DB, logger *logrus.Logger) domain.ProductRepository {
	return &postgresProductRepository{db: db, log: logger}
}

const productColumns = `id, name, description, price, currency, stock_quantity, category_id, brand_id, COALESCE(image_url, ''), is_visible, created_at`

func (r *postgresProductRepository) FindByID(ctx context.Context, id int) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.findOne(ctx, query, id)
}

// FindByIDForUpdate locks the product row until the surrounding transaction
// commits. Outside a transaction it degrades to a plain read.
func (r *postgresProductRepository) FindByIDForUpdate(ctx context.Context, id int) (*domain.Product, error) {
	if txFromContext(ctx) == nil {
		return r.FindByID(ctx, id)
	}
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return r.findOne(ctx, query, id)
}

func (r *postgresProductRepository) findOne(ctx context.Context, query string, id int) (*domain.Product, error) {
	q := queryerFrom(ctx, r.db)

	var (
		product              domain.Product
		price                decimal.Decimal
		currency             string
		createdAt            time.Time
	)
	err := q.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&price,
		&currency,
		&product.StockQuantity,
		&product.CategoryID,
		&product.BrandID,
		&product.ImageURL,
		&product.IsVisible,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.log.Errorf("Failed to get product by ID %d: %v", id, err)
		return nil, fmt.Errorf("could not retrieve product: %w", err)
	}

	product.Price, err = domain.NewMoney(price, domain.Currency(currency))
	if err != nil {
		return nil, fmt.Errorf("invalid stored price for product %d: %w", id, err)
	}
	product.CreatedAt = createdAt
	return &product, nil
}

// Save persists the facets this core mutates: stock and visibility.
func (r *postgresProductRepository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	q := queryerFrom(ctx, r.db)

	query := `
        UPDATE products
        SET stock_quantity = $1, is_visible = $2
        WHERE id = $3
    `
	result, err := q.ExecContext(ctx, query, product.StockQuantity, product.IsVisible, product.ID)
	if err != nil {
		r.log.Errorf("Failed to save product %d: %v", product.ID, err)
		return nil, fmt.Errorf("could not save product: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("could not confirm product save: %w", err)
	}
	if affected == 0 {
		return nil, &domain.ProductNotFoundError{ProductID: product.ID}
	}

	r.log.Debugf("Product %d saved (stock: %d, visible: %t)", product.ID, product.StockQuantity, product.IsVisible)
	return product, nil
}
