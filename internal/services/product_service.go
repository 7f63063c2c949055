package services

import (
	"database/sql"
	"fmt"

	"github.com/mblanco/stockroom-be/internal/models"
)

// ProductUpdate carries the fields of a partial product update. Rack and Bin
// are applied only when their Set flag is true; a Set flag with a nil value
// clears the column.
type ProductUpdate struct {
	Name    string
	Rack    *string
	RackSet bool
	Bin     *string
	BinSet  bool
}

// ProductServiceProvider defines the interface for product services.
type ProductServiceProvider interface {
	CreateProduct(userID int64, name string, categoryID int64, rack, bin *string) (models.Product, error)
	UpdateProduct(userID, productID int64, upd ProductUpdate) (models.Product, error)
	DeleteProduct(userID, productID int64) error
}

// ProductService provides business logic for products. Every mutation is
// scoped to the owning user: a product owned by someone else is treated
// exactly like a product that does not exist.
type ProductService struct {
	db *sql.DB
}

// NewProductService creates a new ProductService.
func NewProductService(db *sql.DB) *ProductService {
	return &ProductService{db: db}
}

// CreateProduct persists a new product owned by userID. The owner always
// comes from the session, never from the request body.
func (s *ProductService) CreateProduct(userID int64, name string, categoryID int64, rack, bin *string) (models.Product, error) {
	var categoryExists int64
	err := s.db.QueryRow("SELECT id FROM categories WHERE id = ?", categoryID).Scan(&categoryExists)
	if err == sql.ErrNoRows {
		return models.Product{}, fmt.Errorf("%w: category %d does not exist", ErrValidation, categoryID)
	}
	if err != nil {
		return models.Product{}, err
	}

	var existing int64
	err = s.db.QueryRow("SELECT id FROM products WHERE name = ?", name).Scan(&existing)
	if err == nil {
		return models.Product{}, fmt.Errorf("%w: product %q", ErrConflict, name)
	}
	if err != sql.ErrNoRows {
		return models.Product{}, err
	}

	stmt, err := s.db.Prepare("INSERT INTO products(name, rack, bin, category_id, user_id) VALUES(?, ?, ?, ?, ?)")
	if err != nil {
		return models.Product{}, err
	}
	defer stmt.Close()

	res, err := stmt.Exec(name, rack, bin, categoryID, userID)
	if err != nil {
		return models.Product{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Product{}, err
	}
	return s.getProduct(id)
}

// UpdateProduct applies a partial update to a product owned by userID.
// Existence and ownership are checked together so a foreign product is
// indistinguishable from a missing one.
func (s *ProductService) UpdateProduct(userID, productID int64, upd ProductUpdate) (models.Product, error) {
	product, err := s.getOwnedProduct(userID, productID)
	if err != nil {
		return models.Product{}, err
	}

	if upd.Name != product.Name {
		var existing int64
		err := s.db.QueryRow("SELECT id FROM products WHERE name = ? AND id != ?", upd.Name, productID).Scan(&existing)
		if err == nil {
			return models.Product{}, fmt.Errorf("%w: product %q", ErrConflict, upd.Name)
		}
		if err != sql.ErrNoRows {
			return models.Product{}, err
		}
	}

	product.Name = upd.Name
	if upd.RackSet {
		product.Rack = upd.Rack
	}
	if upd.BinSet {
		product.Bin = upd.Bin
	}

	_, err = s.db.Exec("UPDATE products SET name = ?, rack = ?, bin = ? WHERE id = ?",
		product.Name, product.Rack, product.Bin, product.ID)
	if err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// DeleteProduct removes a product owned by userID. Repeating the delete for
// an already-gone id yields the same ErrNotFound.
func (s *ProductService) DeleteProduct(userID, productID int64) error {
	res, err := s.db.Exec("DELETE FROM products WHERE id = ? AND user_id = ?", productID, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: product %d", ErrNotFound, productID)
	}
	return nil
}

func (s *ProductService) getProduct(id int64) (models.Product, error) {
	row := s.db.QueryRow(`
		SELECT id, name, rack, bin, category_id, user_id, created_at
		FROM products WHERE id = ?`, id)
	product, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return models.Product{}, fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	if err != nil {
		return models.Product{}, err
	}
	return product, nil
}

func (s *ProductService) getOwnedProduct(userID, productID int64) (models.Product, error) {
	row := s.db.QueryRow(`
		SELECT id, name, rack, bin, category_id, user_id, created_at
		FROM products WHERE id = ? AND user_id = ?`, productID, userID)
	product, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return models.Product{}, fmt.Errorf("%w: product %d", ErrNotFound, productID)
	}
	if err != nil {
		return models.Product{}, err
	}
	return product, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (models.Product, error) {
	var (
		product models.Product
		rack    sql.NullString
		bin     sql.NullString
	)
	err := row.Scan(&product.ID, &product.Name, &rack, &bin, &product.CategoryID, &product.UserID, &product.CreatedAt)
	if err != nil {
		return models.Product{}, err
	}
	if rack.Valid {
		product.Rack = &rack.String
	}
	if bin.Valid {
		product.Bin = &bin.String
	}
	return product, nil
}
