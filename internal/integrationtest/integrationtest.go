// Package integrationtest provides db and seed helpers used in integration tests.
package integrationtest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/lumenbank/lumen-bank/cmd/httpserver"
	"github.com/lumenbank/lumen-bank/internal/accountrepo"
	"github.com/lumenbank/lumen-bank/internal/domain"
	"github.com/lumenbank/lumen-bank/internal/middleware"
	"github.com/lumenbank/lumen-bank/internal/userrepo"
	"github.com/lumenbank/lumen-bank/pkg/configpkg"
	"github.com/lumenbank/lumen-bank/pkg/dbpkg"
	"github.com/lumenbank/lumen-bank/pkg/passpkg"
	"github.com/lumenbank/lumen-bank/pkg/randompkg"
)

// SetupServer returns test server that cleans up database after each integration test.
func SetupServer(t *testing.T) *httpserver.Server {
	config, err := configpkg.Load("../../configs")
	if err != nil {
		t.Fatalf(`configpkg.Load("../../configs") returned error: %v`, err)
	}

	zerolog.SetGlobalLevel(zerolog.FatalLevel)

	logger := middleware.CreateLogger(config)

	db := SetupDB(t, config.DBDriver, config.DBSource)

	gin.SetMode(gin.ReleaseMode)

	server, err := httpserver.New(db, logger, config)
	if err != nil {
		t.Fatalf(`httpserver.New(db, logger, config) returned error: %v`, err)
	}

	return server
}

// Flush flushes all db tables without dropping.
func Flush(t *testing.T, db *sql.DB) {
	t.Helper()

	var tables string

	const query = `
	SELECT string_agg(table_name, ', ')
	FROM information_schema.tables
	WHERE table_schema='public';`

	row := db.QueryRow(query)

	err := row.Scan(&tables)
	if err != nil {
		t.Fatalf("db cleanup failed. err: %v", err)
	}

	if _, err := db.Exec(`TRUNCATE TABLE ` + tables + " CASCADE"); err != nil {
		t.Fatalf("db cleanup failed. err: %v", err)
	}
}

// SetupDB sets up connection with database for testing and then cleans it.
func SetupDB(t *testing.T, driver, source string) *sql.DB {
	t.Helper()

	db, err := dbpkg.Setup(driver, source)
	if err != nil {
		t.Fatalf("db initialization failed. err: %v", err)
	}

	t.Cleanup(func() {
		Flush(t, db)

		if err := db.Close(); err != nil {
			t.Fatalf("db cleanup failed. err: %v", err)
		}
	})

	return db
}

// SeedUser inserts a random user and returns it.
func SeedUser(t *testing.T, db *sql.DB) domain.User {
	t.Helper()

	hashedPassword, err := passpkg.Hash(randompkg.String(10))
	if err != nil {
		t.Fatalf("passpkg.Hash returned error: %v", err)
	}

	user, err := userrepo.NewRepoPGS(db).Create(context.Background(), domain.CreateUserParams{
		Username:       randompkg.Owner(),
		HashedPassword: hashedPassword,
	})
	if err != nil {
		t.Fatalf("seeding user returned error: %v", err)
	}

	return user
}

// SeedAccount inserts an account for the given owner and returns it.
func SeedAccount(t *testing.T, db *sql.DB, owner string) domain.Account {
	t.Helper()

	account, err := accountrepo.NewRepoPGS(db).Create(context.Background(), owner, randompkg.AccountName())
	if err != nil {
		t.Fatalf("seeding account returned error: %v", err)
	}

	return account
}
