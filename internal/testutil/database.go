package testutil

import (
	"database/sql"
	"fmt"
	"os"
	"testing"

	_ "github.com/go-sql-driver/mysql"

	"littlelemon/internal/infrastructure/mysql"
)

const defaultTestDSN = "root:@tcp(localhost:3306)/littlelemon_test?parseTime=true&clientFoundRows=true"

func testDSN() string {
	if dsn := os.Getenv("LITTLELEMON_TEST_DSN"); dsn != "" {
		return dsn
	}
	return defaultTestDSN
}

// SetupTestDB opens the integration database and skips the test when it is unreachable.
func SetupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("mysql", testDSN())
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// SetupTestTables applies the embedded migrations and empties every table.
func SetupTestTables(t *testing.T, db *sql.DB) {
	if err := mysql.RunMigrations(testDSN()); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}
	truncate(t, db)
}

// CleanupTestDB empties the tables and closes db.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	truncate(t, db)
	db.Close()
}

func truncate(t *testing.T, db *sql.DB) {
	tables := []string{"order_items", "orders", "cart_items", "menu_items", "user_group_members", "users"}
	for _, table := range tables {
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}

// InsertUser creates a user row and returns its id.
func InsertUser(t *testing.T, db *sql.DB, username string) uint {
	result, err := db.Exec(`INSERT INTO users (username, email, password_hash) VALUES (?, ?, 'x')`, username, username+"@example.com")
	if err != nil {
		t.Fatalf("failed to insert user %s: %v", username, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("failed to read user id: %v", err)
	}
	return uint(id)
}

// InsertMenuItem creates a menu item row and returns its id.
func InsertMenuItem(t *testing.T, db *sql.DB, name string, price string) uint {
	result, err := db.Exec(`INSERT INTO menu_items (name, price, description) VALUES (?, ?, ?)`, name, price, name)
	if err != nil {
		t.Fatalf("failed to insert menu item %s: %v", name, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("failed to read menu item id: %v", err)
	}
	return uint(id)
}
