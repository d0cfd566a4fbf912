package usecase

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-hotel/internal/application/dto"
	"github.com/jhoicas/gestion-hotel/internal/application/ports"
	"github.com/jhoicas/gestion-hotel/internal/domain"
	"github.com/jhoicas/gestion-hotel/internal/domain/entity"
	"github.com/jhoicas/gestion-hotel/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock solo se fija al crear;
// después lo mueve el libro de consumos.
type ProductUseCase struct {
	txRunner ports.TxRunner
	repos    ports.Repos
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner ports.TxRunner, repos ports.Repos) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, repos: repos}
}

// Create crea un producto con su stock inicial. Si viene NewCategory, la categoría
// se crea en la misma transacción.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	now := time.Now()
	p := &entity.Product{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		UnitPrice:   in.UnitPrice,
		Stock:       in.InitialStock,
		CategoryID:  strings.TrimSpace(in.CategoryID),
		Available:   true,
		ImageRef:    strings.TrimSpace(in.ImageRef),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Available != nil {
		p.Available = *in.Available
	}
	if in.InitialStock < 0 {
		return nil, domain.NewValidationError("initial_stock", "el stock inicial no puede ser negativo")
	}
	if err := validateProduct(p); err != nil {
		return nil, err
	}

	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		if err := checkProductName(ctx, r.Products, p); err != nil {
			return err
		}
		if err := resolveCategory(ctx, r.Categories, p, in.NewCategory); err != nil {
			return err
		}
		return r.Products.Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	resp := dto.ProductFromEntity(p)
	return &resp, nil
}

// GetByID obtiene un producto.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.repos.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.ProductFromEntity(p)
	return &resp, nil
}

// Update actualiza los datos descriptivos del producto. No existe forma de tocar el stock aquí.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var out *entity.Product
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		p, err := r.Products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if in.Name != nil {
			p.Name = strings.TrimSpace(*in.Name)
		}
		if in.Description != nil {
			p.Description = strings.TrimSpace(*in.Description)
		}
		if in.UnitPrice != nil {
			p.UnitPrice = *in.UnitPrice
		}
		if in.Available != nil {
			p.Available = *in.Available
		}
		if in.ImageRef != nil {
			p.ImageRef = strings.TrimSpace(*in.ImageRef)
		}
		if err := validateProduct(p); err != nil {
			return err
		}
		if in.Name != nil {
			if err := checkProductName(ctx, r.Products, p); err != nil {
				return err
			}
		}
		newCategory := ""
		if in.NewCategory != nil {
			newCategory = *in.NewCategory
		}
		if in.CategoryID != nil || strings.TrimSpace(newCategory) != "" {
			if in.CategoryID != nil {
				p.CategoryID = strings.TrimSpace(*in.CategoryID)
			}
			if err := resolveCategory(ctx, r.Categories, p, newCategory); err != nil {
				return err
			}
		}
		p.UpdatedAt = time.Now()
		out = p
		return r.Products.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	resp := dto.ProductFromEntity(out)
	return &resp, nil
}

// List lista productos por nombre con paginación.
func (uc *ProductUseCase) List(ctx context.Context, f dto.ProductFilter, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repos.Products.List(ctx, repository.ProductFilter{CategoryID: f.CategoryID, OnlyAvailable: f.OnlyAvailable}, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.ProductFromEntity(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un producto y, por cascada, sus consumos.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	p, err := uc.repos.Products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return uc.repos.Products.Delete(ctx, id)
}

func validateProduct(p *entity.Product) error {
	if utf8.RuneCountInString(p.Name) < entity.ProductNameMinLen {
		return domain.NewValidationError("name", "el nombre del producto debe tener al menos 3 caracteres")
	}
	if !p.UnitPrice.GreaterThan(decimal.Zero) {
		return domain.NewValidationError("unit_price", "el precio debe ser mayor a 0")
	}
	return nil
}

func checkProductName(ctx context.Context, repo repository.ProductRepository, p *entity.Product) error {
	other, err := repo.GetByName(ctx, p.Name)
	if err != nil {
		return err
	}
	if other != nil && other.ID != p.ID {
		return domain.NewValidationErrorOf(domain.ErrDuplicate, "name", "ya existe un producto con ese nombre")
	}
	return nil
}

// resolveCategory crea la categoría nueva si se indicó; si no, exige que
// CategoryID (cuando no es vacío) exista y esté activa.
func resolveCategory(ctx context.Context, repo repository.CategoryRepository, p *entity.Product, newCategory string) error {
	if strings.TrimSpace(newCategory) != "" {
		c, err := createCategory(ctx, repo, "new_category", newCategory, "", true)
		if err != nil {
			return err
		}
		p.CategoryID = c.ID
		return nil
	}
	if p.CategoryID == "" {
		return nil
	}
	c, err := repo.GetByID(ctx, p.CategoryID)
	if err != nil {
		return err
	}
	if c == nil || !c.Active {
		return domain.NewValidationError("category_id", "seleccione una categoría activa")
	}
	return nil
}
