package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/MrLemonHog/nylium-wiki-page/internal/models"
)

// Store keeps an imported catalogue queryable for the wiki server
type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS categories (
			name TEXT PRIMARY KEY,
			position INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS items (
			id TEXT PRIMARY KEY,
			item_id TEXT NOT NULL,
			category TEXT NOT NULL REFERENCES categories(name) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			search TEXT NOT NULL,
			data TEXT NOT NULL,
			imported_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_items_category ON items(category, position)`,
		`CREATE INDEX IF NOT EXISTS idx_items_item_id ON items(item_id)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// rowID derives a stable key for one filed record. The same item can be
// filed under several categories, so the category and position are part of
// the key.
func rowID(category string, position int, itemID string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("%s:%d:%s", category, position, itemID))).String()
}

// searchText is matched case-insensitively with LIKE. SQLite only folds
// ASCII, so the text is lowered here.
func searchText(item models.Item) string {
	return strings.ToLower(item.ID + " " + item.Name)
}

// --- Catalogue ---

// ReplaceCatalogue swaps the stored catalogue for cat in one transaction
func (s *Store) ReplaceCatalogue(cat *models.Catalogue) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM items`); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM categories`); err != nil {
		return err
	}

	catStmt, err := tx.Prepare(`INSERT INTO categories (name, position) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer catStmt.Close()

	itemStmt, err := tx.Prepare(`
		INSERT INTO items (id, item_id, category, position, name, search, data, imported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer itemStmt.Close()

	now := time.Now()
	for pos, category := range cat.Categories() {
		if _, err := catStmt.Exec(category, pos); err != nil {
			return fmt.Errorf("category %s: %w", category, err)
		}

		for i, item := range cat.Items(category) {
			data, err := json.Marshal(item)
			if err != nil {
				return fmt.Errorf("item %s: %w", item.ID, err)
			}
			_, err = itemStmt.Exec(rowID(category, i, item.ID), item.ID, category, i,
				item.Name, searchText(item), string(data), now)
			if err != nil {
				return fmt.Errorf("item %s: %w", item.ID, err)
			}
		}
	}

	return tx.Commit()
}

// GetCategories returns every category with its item count, in schema order
func (s *Store) GetCategories() ([]models.CategorySummary, error) {
	rows, err := s.db.Query(`
		SELECT c.name, c.position, COUNT(i.id)
		FROM categories c LEFT JOIN items i ON i.category = c.name
		GROUP BY c.name, c.position
		ORDER BY c.position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.CategorySummary{}
	for rows.Next() {
		var c models.CategorySummary
		if err := rows.Scan(&c.Name, &c.Position, &c.ItemCount); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// GetItems returns the items of a category, optionally filtered by a
// case-insensitive substring of the id or name. It returns nil when the
// category does not exist.
func (s *Store) GetItems(category, query string) (*models.ItemList, error) {
	var exists int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM categories WHERE name = ?`, category).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, nil
	}

	var rows *sql.Rows
	if query != "" {
		rows, err = s.db.Query(`
			SELECT data FROM items
			WHERE category = ? AND search LIKE ? ESCAPE '\'
			ORDER BY position
		`, category, "%"+escapeLike(strings.ToLower(query))+"%")
	} else {
		rows, err = s.db.Query(`
			SELECT data FROM items WHERE category = ? ORDER BY position
		`, category)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := &models.ItemList{Category: category, Items: []models.Item{}}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, item)
	}
	list.TotalCount = len(list.Items)
	return list, rows.Err()
}

// GetItem returns the first filed record with the given item id, nil when
// there is none
func (s *Store) GetItem(itemID string) (*models.Item, error) {
	row := s.db.QueryRow(`
		SELECT i.data FROM items i JOIN categories c ON c.name = i.category
		WHERE i.item_id = ?
		ORDER BY c.position, i.position
		LIMIT 1
	`, itemID)

	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (models.Item, error) {
	var item models.Item
	var data string
	if err := row.Scan(&data); err != nil {
		return item, err
	}
	if err := json.Unmarshal([]byte(data), &item); err != nil {
		return item, fmt.Errorf("corrupt item row: %w", err)
	}
	return item, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
