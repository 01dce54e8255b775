package repository

import (
	"context"

	"github.com/Wallacekaast/CRMESTOFADOS/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindBySKU(ctx context.Context, sku string) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	ListActive(ctx context.Context) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)

	// DecrementStockClampedTx subtracts qty from stock_quantity in a single
	// statement, flooring at zero — an oversell clamps, it never errors.
	DecrementStockClampedTx(tx *gorm.DB, id uuid.UUID, qty int) error

	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) DB() *gorm.DB { return r.db }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productRepo) FindBySKU(ctx context.Context, sku string) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("sku = ?", sku).First(&p).Error
	return &p, err
}

func (r *productRepo) List(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) ListActive(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Where("active = true").Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"name":           p.Name,
			"description":    p.Description,
			"sku":            p.SKU,
			"category":       p.Category,
			"image_url":      p.ImageURL,
			"price":          p.Price,
			"cost":           p.Cost,
			"stock_quantity": p.StockQuantity,
			"min_stock":      p.MinStock,
			"active":         p.Active,
		})
	return res.RowsAffected, res.Error
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *productRepo) DecrementStockClampedTx(tx *gorm.DB, id uuid.UUID, qty int) error {
	return tx.Model(&model.Product{}).
		Where("id = ?", id).
		Update("stock_quantity", gorm.Expr("MAX(stock_quantity - ?, 0)", qty)).Error
}
