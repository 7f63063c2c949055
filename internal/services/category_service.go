package services

import (
	"database/sql"
	"fmt"

	"github.com/mblanco/stockroom-be/internal/models"
)

// CategoryServiceProvider defines the interface for category services.
type CategoryServiceProvider interface {
	GetAllCategories() ([]models.Category, error)
	CreateCategory(name string) (models.Category, error)
}

// CategoryService provides business logic for categories.
type CategoryService struct {
	db *sql.DB
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(db *sql.DB) *CategoryService {
	return &CategoryService{db: db}
}

// GetAllCategories retrieves every category in insertion order.
func (s *CategoryService) GetAllCategories() ([]models.Category, error) {
	rows, err := s.db.Query("SELECT id, name, created_at FROM categories ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

// CreateCategory persists a new category with a globally unique name.
func (s *CategoryService) CreateCategory(name string) (models.Category, error) {
	var existing int64
	err := s.db.QueryRow("SELECT id FROM categories WHERE name = ?", name).Scan(&existing)
	if err == nil {
		return models.Category{}, fmt.Errorf("%w: category %q", ErrConflict, name)
	}
	if err != sql.ErrNoRows {
		return models.Category{}, err
	}

	res, err := s.db.Exec("INSERT INTO categories(name) VALUES(?)", name)
	if err != nil {
		return models.Category{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Category{}, err
	}

	var cat models.Category
	row := s.db.QueryRow("SELECT id, name, created_at FROM categories WHERE id = ?", id)
	if err := row.Scan(&cat.ID, &cat.Name, &cat.CreatedAt); err != nil {
		return models.Category{}, err
	}
	return cat, nil
}
