package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	log "github.com/sirupsen/logrus"
)

type ProductUsecase struct {
	productRepo repo.ProductRepository
	cache       repo.ProductCache
}

// cacheはnilでもよい
func NewProductUsecase(productRepo repo.ProductRepository, cache repo.ProductCache) *ProductUsecase {
	return &ProductUsecase{productRepo: productRepo, cache: cache}
}

// GET /productsの入力DTO
type ListProductsInput struct {
	Page     int
	Limit    int
	Q        string
	MinPrice *int64
	MaxPrice *int64
	Sort     repo.ProductSort
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

func productNotFound(id int64) error {
	return NewHTTPError(http.StatusNotFound, fmt.Sprintf("Product with ID %d not found", id))
}

func (u *ProductUsecase) ListPublicProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page < 1 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if len(in.Q) > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "q too long")
	}
	if in.MinPrice != nil && *in.MinPrice < 0 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "min_price must be >= 0")
	}
	if in.MaxPrice != nil && *in.MaxPrice < 0 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "max_price must be >= 0")
	}
	if in.MinPrice != nil && in.MaxPrice != nil && *in.MinPrice > *in.MaxPrice {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "min_price must be <= max_price")
	}
	if !in.Sort.Valid() {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid sort")
	}

	items, total, err := u.productRepo.ListPublic(ctx, repo.ProductListQuery{
		Page:     in.Page,
		Limit:    in.Limit,
		Q:        strings.TrimSpace(in.Q),
		MinPrice: in.MinPrice,
		MaxPrice: in.MaxPrice,
		Sort:     in.Sort,
	})
	if err != nil {
		return ProductListOutput{}, internalError(err)
	}

	return ProductListOutput{
		Items: items,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

// キャッシュ -> DB の順に見る。キャッシュの失敗はログだけ
func (u *ProductUsecase) GetProductDetail(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	if u.cache != nil {
		cached, err := u.cache.GetProduct(ctx, productID)
		if err != nil {
			log.WithError(err).WithField("product_id", productID).Warn("product cache get failed")
		} else if cached != nil {
			return *cached, nil
		}
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, productNotFound(productID)
	}
	if err != nil {
		return model.Product{}, internalError(err)
	}

	if u.cache != nil {
		if err := u.cache.SetProduct(ctx, p); err != nil {
			log.WithError(err).WithField("product_id", productID).Warn("product cache set failed")
		}
	}
	return p, nil
}

type ProductInput struct {
	Name        string
	Description string
	Price       int64
	SalePrice   *int64
}

func validateProductInput(in ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.Price < 0 {
		return NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.SalePrice != nil && (*in.SalePrice < 0 || *in.SalePrice > in.Price) {
		return NewHTTPError(http.StatusBadRequest, "sale_price must be between 0 and price")
	}
	return nil
}

func (u *ProductUsecase) AdminCreateProduct(ctx context.Context, in ProductInput) (model.Product, error) {
	if err := validateProductInput(in); err != nil {
		return model.Product{}, err
	}

	p, err := u.productRepo.Create(ctx, model.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		SalePrice:   in.SalePrice,
	})
	if err != nil {
		return model.Product{}, internalError(err)
	}
	return p, nil
}

func (u *ProductUsecase) AdminUpdateProduct(ctx context.Context, productID int64, in ProductInput) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if err := validateProductInput(in); err != nil {
		return model.Product{}, err
	}

	p, err := u.productRepo.Update(ctx, model.Product{
		ID:          productID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		SalePrice:   in.SalePrice,
	})
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, productNotFound(productID)
	}
	if err != nil {
		return model.Product{}, internalError(err)
	}
	u.evict(ctx, productID)
	return p, nil
}

func (u *ProductUsecase) AdminDeleteProduct(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	err := u.productRepo.SoftDelete(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return productNotFound(productID)
	}
	if err != nil {
		return internalError(err)
	}
	u.evict(ctx, productID)
	return nil
}

func (u *ProductUsecase) evict(ctx context.Context, productID int64) {
	if u.cache == nil {
		return
	}
	if err := u.cache.DeleteProduct(ctx, productID); err != nil {
		log.WithError(err).WithField("product_id", productID).Warn("product cache evict failed")
	}
}
