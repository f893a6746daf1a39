package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stockyardhq/warehouse-backend/pkg/migrate"
)

func TestWarehouseMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_warehouse_tables.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no warehouse migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS products",
		"CREATE TABLE IF NOT EXISTS stock_levels",
		"CREATE TABLE IF NOT EXISTS stock_transactions",
		"CONSTRAINT uq_products_code UNIQUE (code)",
		"CHECK (unit_price >= 0)",
		"CHECK (type IN ('IN', 'OUT'))",
		"CHECK (quantity > 0)",
		"DROP TABLE IF EXISTS stock_transactions",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}

	// the cascade delete is explicit in the repository, never in DDL
	if strings.Contains(content, "ON DELETE CASCADE") {
		t.Error("cascade must not be declared at the database level")
	}
}

func TestValidateDirAcceptsShippedMigrations(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("shipped migrations failed validation: %v", err)
	}
}
