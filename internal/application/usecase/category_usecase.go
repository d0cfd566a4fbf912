package usecase

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jhoicas/gestion-hotel/internal/application/dto"
	"github.com/jhoicas/gestion-hotel/internal/domain"
	"github.com/jhoicas/gestion-hotel/internal/domain/entity"
	"github.com/jhoicas/gestion-hotel/internal/domain/repository"
)

const categoryNameMaxLen = 100

// CategoryUseCase casos de uso CRUD para categorías de productos.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría; el nombre es único sin distinguir mayúsculas.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	c, err := createCategory(ctx, uc.repo, "name", in.Name, strings.TrimSpace(in.Description), active)
	if err != nil {
		return nil, err
	}
	resp := dto.CategoryFromEntity(c)
	return &resp, nil
}

// GetByID obtiene una categoría.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.CategoryFromEntity(c)
	return &resp, nil
}

// List lista categorías por nombre; onlyActive restringe a las seleccionables.
func (uc *CategoryUseCase) List(ctx context.Context, onlyActive bool) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx, onlyActive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CategoryFromEntity(c))
	}
	return out, nil
}

// Update actualiza una categoría.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name, err := validCategoryName("name", *in.Name)
		if err != nil {
			return nil, err
		}
		other, err := uc.repo.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != c.ID {
			return nil, duplicateCategory("name")
		}
		c.Name = name
	}
	if in.Description != nil {
		c.Description = strings.TrimSpace(*in.Description)
	}
	if in.Active != nil {
		c.Active = *in.Active
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := dto.CategoryFromEntity(c)
	return &resp, nil
}

// Delete elimina la categoría; sus productos quedan sin categoría.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

// createCategory valida y crea una categoría. field es el campo de entrada que
// se informa en los errores ("name" o "new_category").
func createCategory(ctx context.Context, repo repository.CategoryRepository, field, name, description string, active bool) (*entity.Category, error) {
	name, err := validCategoryName(field, name)
	if err != nil {
		return nil, err
	}
	existing, err := repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, duplicateCategory(field)
	}
	now := time.Now()
	c := &entity.Category{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		Active:      active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func validCategoryName(field, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.NewValidationError(field, "el nombre de la categoría es obligatorio")
	}
	if utf8.RuneCountInString(name) > categoryNameMaxLen {
		return "", domain.NewValidationError(field, "el nombre no puede superar 100 caracteres")
	}
	return name, nil
}

func duplicateCategory(field string) error {
	return domain.NewValidationErrorOf(domain.ErrDuplicate, field, "ya existe una categoría con ese nombre")
}
