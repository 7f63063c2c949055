package database

import (
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

type seedProduct struct {
	name     string
	rack     string
	bin      string
	category string
	user     string
}

// Seed wipes the database and loads a small set of sample users, categories
// and products. Every seed user's password is "password123".
func Seed(db *sql.DB) error {
	// Clear existing data. Products and sessions go first so the FK
	// constraints stay satisfied.
	for _, table := range []string{"sessions", "products", "users", "categories"} {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	categories := []string{"Electronics", "Tools", "Office Supplies", "Hardware", "Safety Equipment"}
	categoryIDs := make(map[string]int64, len(categories))
	for _, name := range categories {
		res, err := db.Exec("INSERT INTO categories(name) VALUES(?)", name)
		if err != nil {
			return fmt.Errorf("failed to seed category %q: %w", name, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		categoryIDs[name] = id
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	userIDs := make(map[string]int64, 3)
	for _, name := range []string{"alice", "bob", "charlie"} {
		res, err := db.Exec("INSERT INTO users(name, password_hash) VALUES(?, ?)", name, string(hash))
		if err != nil {
			return fmt.Errorf("failed to seed user %q: %w", name, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		userIDs[name] = id
	}

	products := []seedProduct{
		{"Laptop", "A1", "B3", "Electronics", "alice"},
		{"USB Cable", "A1", "B5", "Electronics", "alice"},
		{"Screwdriver Set", "C2", "D1", "Tools", "alice"},
		{"Stapler", "B3", "A2", "Office Supplies", "alice"},
		{"Paper Clips", "B3", "A3", "Office Supplies", "alice"},

		{"Monitor", "A2", "C1", "Electronics", "bob"},
		{"Keyboard", "A2", "C2", "Electronics", "bob"},
		{"Hammer", "D1", "E3", "Tools", "bob"},
		{"Wrench", "D1", "E4", "Tools", "bob"},
		{"Bolts", "E5", "F2", "Hardware", "bob"},
		{"Screws", "E5", "F3", "Hardware", "bob"},

		{"Safety Goggles", "F1", "G2", "Safety Equipment", "charlie"},
		{"Hard Hat", "F1", "G3", "Safety Equipment", "charlie"},
		{"Drill", "D2", "E5", "Tools", "charlie"},
		{"Mouse", "A3", "C4", "Electronics", "charlie"},
		{"Notebook", "B4", "A5", "Office Supplies", "charlie"},
		{"Gloves", "F2", "G4", "Safety Equipment", "charlie"},
		{"Nails", "E6", "F4", "Hardware", "charlie"},
	}

	stmt, err := db.Prepare("INSERT INTO products(name, rack, bin, category_id, user_id) VALUES(?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range products {
		if _, err := stmt.Exec(p.name, p.rack, p.bin, categoryIDs[p.category], userIDs[p.user]); err != nil {
			return fmt.Errorf("failed to seed product %q: %w", p.name, err)
		}
	}

	return nil
}
