package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Wallacekaast/CRMESTOFADOS/internal/dto"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/infra"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/model"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	catalogCacheKey = "cache:catalog"
	catalogCacheTTL = 60 * time.Second
)

type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context) ([]dto.ProductResponse, error)
	// Catalog lists active products for the public storefront, served from
	// a short-TTL Redis cache.
	Catalog(ctx context.Context) ([]dto.ProductResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Import fetches the configured external catalog and upserts by SKU.
	// Best-effort: individual bad rows are skipped, not fatal.
	Import(ctx context.Context, url string) (*dto.ImportProductsResponse, error)
}

type productService struct {
	repo     repository.ProductRepository
	rdb      *redis.Client
	importer *infra.ImportClient
}

func NewProductService(repo repository.ProductRepository, rdb *redis.Client, importer *infra.ImportClient) ProductService {
	return &productService{repo: repo, rdb: rdb, importer: importer}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	product := model.Product{
		Name:          req.Name,
		Description:   req.Description,
		SKU:           req.SKU,
		Category:      req.Category,
		ImageURL:      req.ImageURL,
		Price:         req.Price,
		Cost:          req.Cost,
		StockQuantity: req.StockQuantity,
		MinStock:      req.MinStock,
		Active:        req.Active,
	}
	if err := s.repo.Create(ctx, &product); err != nil {
		return nil, err
	}
	s.invalidateCatalog(ctx)
	return productToResponse(&product), nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("Produto não encontrado")
	}
	return productToResponse(product), nil
}

func (s *productService) List(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return productsToResponses(products), nil
}

func (s *productService) Catalog(ctx context.Context) ([]dto.ProductResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, catalogCacheKey).Bytes(); err == nil {
			var out []dto.ProductResponse
			if json.Unmarshal(cached, &out) == nil {
				return out, nil
			}
		}
	}

	products, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := productsToResponses(products)

	if s.rdb != nil {
		if b, err := json.Marshal(out); err == nil {
			_ = s.rdb.Set(ctx, catalogCacheKey, b, catalogCacheTTL).Err()
		}
	}
	return out, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product := model.Product{
		ID:            id,
		Name:          req.Name,
		Description:   req.Description,
		SKU:           req.SKU,
		Category:      req.Category,
		ImageURL:      req.ImageURL,
		Price:         req.Price,
		Cost:          req.Cost,
		StockQuantity: req.StockQuantity,
		MinStock:      req.MinStock,
		Active:        req.Active,
	}
	affected, err := s.repo.Update(ctx, &product)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, errors.New("Produto não encontrado")
	}
	s.invalidateCatalog(ctx)
	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return productToResponse(updated), nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.New("Produto não encontrado")
	}
	s.invalidateCatalog(ctx)
	return nil
}

// ── Import ────────────────────────────────────────────────────────────────────

func (s *productService) Import(ctx context.Context, url string) (*dto.ImportProductsResponse, error) {
	if s.importer == nil {
		return nil, errors.New("Importação não configurada")
	}
	rows, err := s.importer.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	resp := &dto.ImportProductsResponse{}
	for _, row := range rows {
		if row.Name == "" || row.SKU == "" {
			resp.Skipped++
			continue
		}
		sku := row.SKU
		existing, err := s.repo.FindBySKU(ctx, sku)
		switch {
		case err == nil:
			existing.Name = row.Name
			existing.Price = row.Price
			if row.ImageURL != "" {
				img := row.ImageURL
				existing.ImageURL = &img
			}
			if _, err := s.repo.Update(ctx, existing); err != nil {
				resp.Skipped++
				continue
			}
			resp.Updated++
		case errors.Is(err, gorm.ErrRecordNotFound):
			product := model.Product{
				Name:   row.Name,
				SKU:    &sku,
				Price:  row.Price,
				Active: true,
			}
			if row.ImageURL != "" {
				img := row.ImageURL
				product.ImageURL = &img
			}
			if err := s.repo.Create(ctx, &product); err != nil {
				resp.Skipped++
				continue
			}
			resp.Imported++
		default:
			resp.Skipped++
		}
	}

	s.invalidateCatalog(ctx)
	log.Info().
		Int("imported", resp.Imported).
		Int("updated", resp.Updated).
		Int("skipped", resp.Skipped).
		Msg("product import finished")
	return resp, nil
}

func (s *productService) invalidateCatalog(ctx context.Context) {
	if s.rdb != nil {
		_ = s.rdb.Del(ctx, catalogCacheKey).Err()
	}
}

// ── Mappers ───────────────────────────────────────────────────────────────────

func productToResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID.String(),
		Name:          p.Name,
		Description:   p.Description,
		SKU:           p.SKU,
		Category:      p.Category,
		ImageURL:      p.ImageURL,
		Price:         p.Price,
		Cost:          p.Cost,
		StockQuantity: p.StockQuantity,
		MinStock:      p.MinStock,
		Active:        p.Active,
		CreatedAt:     p.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:     p.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func productsToResponses(products []model.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, *productToResponse(&products[i]))
	}
	return out
}
