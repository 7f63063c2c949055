package services

import (
	"database/sql"
	"fmt"

	"github.com/mblanco/stockroom-be/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	CreateUser(name, password string) (models.User, error)
	AuthenticateUser(name, password string) (models.User, error)
	GetUserByID(id int64) (models.User, error)
	DeleteUser(id int64) error
}

// UserService provides business logic for user accounts.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// CreateUser creates a new user with a freshly hashed password. The new user
// is not logged in; that is a separate step.
func (s *UserService) CreateUser(name, password string) (models.User, error) {
	var existing int64
	err := s.db.QueryRow("SELECT id FROM users WHERE name = ?", name).Scan(&existing)
	if err == nil {
		return models.User{}, fmt.Errorf("%w: username %q is taken", ErrConflict, name)
	}
	if err != sql.ErrNoRows {
		return models.User{}, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	res, err := s.db.Exec("INSERT INTO users(name, password_hash) VALUES(?, ?)", name, string(hashedPassword))
	if err != nil {
		return models.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, err
	}

	return s.GetUserByID(id)
}

// AuthenticateUser verifies a user's credentials. Unknown name and wrong
// password both come back as ErrInvalidCredentials.
func (s *UserService) AuthenticateUser(name, password string) (models.User, error) {
	var (
		id   int64
		hash string
	)
	err := s.db.QueryRow("SELECT id, password_hash FROM users WHERE name = ?", name).Scan(&id, &hash)
	if err == sql.ErrNoRows {
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	return s.GetUserByID(id)
}

// GetUserByID retrieves a single user by ID, including the derived category
// view. The password hash is never loaded into the returned value.
func (s *UserService) GetUserByID(id int64) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, name, created_at FROM users WHERE id = ?", id)
	err := row.Scan(&user.ID, &user.Name, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return models.User{}, fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	if err != nil {
		return models.User{}, err
	}

	user.Categories, err = s.categoriesForUser(id)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// DeleteUser removes a user. Their products and sessions go with them via
// the schema's ON DELETE CASCADE.
func (s *UserService) DeleteUser(id int64) error {
	res, err := s.db.Exec("DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	return nil
}

// categoriesForUser computes the distinct categories the user has products
// in, each carrying only that user's products. This is a read-time join,
// recomputed on every call; there is no stored relation to go stale.
func (s *UserService) categoriesForUser(userID int64) ([]models.UserCategory, error) {
	rows, err := s.db.Query(`
		SELECT DISTINCT c.id, c.name
		FROM categories c
		JOIN products p ON p.category_id = c.id
		WHERE p.user_id = ?
		ORDER BY c.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.UserCategory{}
	for rows.Next() {
		var cat models.UserCategory
		if err := rows.Scan(&cat.ID, &cat.Name); err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range categories {
		products, err := s.productsForUserCategory(userID, categories[i].ID)
		if err != nil {
			return nil, err
		}
		categories[i].Products = products
	}
	return categories, nil
}

func (s *UserService) productsForUserCategory(userID, categoryID int64) ([]models.Product, error) {
	rows, err := s.db.Query(`
		SELECT id, name, rack, bin, category_id, user_id, created_at
		FROM products
		WHERE user_id = ? AND category_id = ?
		ORDER BY id`, userID, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}
