package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tenaypos/internal/apierror"
	"tenaypos/internal/dto"
	"tenaypos/internal/model"
	"tenaypos/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type ProductService interface {
	Create(ctx context.Context, actor model.Actor, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Update(ctx context.Context, actor model.Actor, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	// LookupByBarcode serves the scanner path on the sale screen; results are
	// cached in Redis for a short TTL.
	LookupByBarcode(ctx context.Context, barcode string) (*dto.PriceLookupResponse, error)
}

type productService struct {
	repo     repository.ProductRepository
	rdb      *redis.Client
	cacheTTL time.Duration
}

func NewProductService(repo repository.ProductRepository, rdb *redis.Client, cacheTTL time.Duration) ProductService {
	return &productService{repo: repo, rdb: rdb, cacheTTL: cacheTTL}
}

func (s *productService) Create(ctx context.Context, actor model.Actor, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if !actor.Permissions.CanManageProducts {
		return nil, apierror.Forbidden("No tienes permiso para administrar productos")
	}

	p := model.Product{
		Name:           req.Name,
		SKU:            req.SKU,
		Barcode:        req.Barcode,
		Category:       req.Category,
		Cost:           req.Cost,
		PriceRetail:    req.PriceRetail,
		PriceWholesale: req.PriceWholesale,
		Stock:          req.Stock,
		MinStock:       req.MinStock,
		IsActive:       true,
	}
	for _, v := range req.Variants {
		p.Variants = append(p.Variants, model.ProductVariant{
			Kind:           v.Kind,
			Size:           v.Size,
			Color:          v.Color,
			Tone:           v.Tone,
			Scent:          v.Scent,
			Cost:           v.Cost,
			PriceRetail:    v.PriceRetail,
			PriceWholesale: v.PriceWholesale,
			Stock:          v.Stock,
		})
	}

	if err := s.repo.Create(ctx, &p); err != nil {
		return nil, apierror.Validation("El SKU ya existe")
	}
	resp := dto.ProductFromModel(&p)
	return &resp, nil
}

func (s *productService) Update(ctx context.Context, actor model.Actor, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if !actor.Permissions.CanManageProducts {
		return nil, apierror.Forbidden("No tienes permiso para administrar productos")
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Producto no encontrado")
	}

	oldBarcode := p.Barcode
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Barcode != nil {
		p.Barcode = req.Barcode
	}
	if req.Category != nil {
		p.Category = req.Category
	}
	if req.Cost != nil {
		p.Cost = *req.Cost
	}
	if req.PriceRetail != nil {
		p.PriceRetail = *req.PriceRetail
	}
	if req.PriceWholesale != nil {
		p.PriceWholesale = req.PriceWholesale
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.MinStock != nil {
		p.MinStock = *req.MinStock
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, apierror.Persistence("Error actualizando el producto", err)
	}
	s.invalidateCache(ctx, oldBarcode, p.Barcode)

	resp := dto.ProductFromModel(p)
	return &resp, nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Producto no encontrado")
	}
	resp := dto.ProductFromModel(p)
	return &resp, nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apierror.Persistence("Error consultando productos", err)
	}
	data := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		data = append(data, dto.ProductFromModel(&products[i]))
	}
	return &dto.ProductListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func priceCacheKey(barcode string) string { return fmt.Sprintf("price:%s", barcode) }

func (s *productService) LookupByBarcode(ctx context.Context, barcode string) (*dto.PriceLookupResponse, error) {
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, priceCacheKey(barcode)).Result(); err == nil {
			var cached dto.PriceLookupResponse
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return &cached, nil
			}
		}
	}

	p, err := s.repo.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, apierror.NotFound("Producto no encontrado")
	}
	resp := dto.PriceLookupResponse{
		ProductID:   p.ID.String(),
		Name:        p.Name,
		PriceRetail: p.PriceRetail,
		Stock:       p.Stock,
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, priceCacheKey(barcode), raw, s.cacheTTL).Err(); err != nil {
				log.Warn().Err(err).Str("barcode", barcode).Msg("no se pudo cachear el precio")
			}
		}
	}
	return &resp, nil
}

func (s *productService) invalidateCache(ctx context.Context, barcodes ...*string) {
	if s.rdb == nil {
		return
	}
	for _, b := range barcodes {
		if b == nil || *b == "" {
			continue
		}
		if err := s.rdb.Del(ctx, priceCacheKey(*b)).Err(); err != nil {
			log.Warn().Err(err).Str("barcode", *b).Msg("no se pudo invalidar el cache de precio")
		}
	}
}
