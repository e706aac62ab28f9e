package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"wattwise/api/models"
)

// SearchError is the generic error surfaced by product search failures.
// It carries only a message.
type SearchError struct {
	Message string
}

func (e *SearchError) Error() string { return e.Message }

type ProductStore struct {
	db *sql.DB
}

func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

const productColumns = `id, sku, name, description, category, price, efficiency_rating, annual_kwh, created_at`

// sortClauses is the fixed whitelist of ORDER BY options; anything else
// falls back to relevance order.
var sortClauses = map[string]string{
	"price_asc":  "price ASC",
	"price_desc": "price DESC",
	"name":       "name ASC",
	"newest":     "created_at DESC",
}

// SearchProducts runs a full-text query over name and description with an
// ILIKE fallback, plus a separate COUNT for pagination.
func (s *ProductStore) SearchProducts(ctx context.Context, term, category, sort string, page, pageSize int) (*models.ProductSearchResult, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	where := "WHERE 1=1"
	var args []interface{}

	term = strings.TrimSpace(term)
	if term != "" {
		args = append(args, term)
		// plainto_tsquery returns an empty query for stopword-only or
		// symbol-only input; the ILIKE arm still matches those.
		where += fmt.Sprintf(
			` AND (to_tsvector('english', name || ' ' || description) @@ plainto_tsquery('english', $%d)
			   OR name ILIKE '%%' || $%d || '%%')`, len(args), len(args))
	}
	if category != "" {
		args = append(args, category)
		where += fmt.Sprintf(" AND category = $%d", len(args))
	}

	var total uint64
	countQuery := `SELECT COUNT(*) FROM products ` + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Printf("Error counting products for search term %q: %v", term, err)
		return nil, &SearchError{Message: "product search failed"}
	}

	orderBy, ok := sortClauses[sort]
	if !ok {
		orderBy = "name ASC"
	}

	args = append(args, pageSize, (page-1)*pageSize)
	query := fmt.Sprintf(`SELECT %s FROM products %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		productColumns, where, orderBy, len(args)-1, len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Printf("Error searching products for term %q: %v", term, err)
		return nil, &SearchError{Message: "product search failed"}
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.Category,
			&p.Price, &p.EfficiencyRating, &p.AnnualKWh, &p.CreatedAt); err != nil {
			log.Printf("Error scanning product row: %v", err)
			continue
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		log.Printf("Row error during product search: %v", err)
		return nil, &SearchError{Message: "product search failed"}
	}

	return &models.ProductSearchResult{
		Products: products,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// UpsertProduct inserts or refreshes a catalog row by SKU.
func (s *ProductStore) UpsertProduct(ctx context.Context, p models.Product) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO products (sku, name, description, category, price, efficiency_rating, annual_kwh)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (sku) DO UPDATE
		SET name = EXCLUDED.name, description = EXCLUDED.description,
		    category = EXCLUDED.category, price = EXCLUDED.price,
		    efficiency_rating = EXCLUDED.efficiency_rating, annual_kwh = EXCLUDED.annual_kwh;`,
		p.SKU, p.Name, p.Description, p.Category, p.Price, p.EfficiencyRating, p.AnnualKWh)
	if err != nil {
		return fmt.Errorf("failed to upsert product %s: %w", p.SKU, err)
	}
	return nil
}
