package database

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-erp-api/pkg/config"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := fs.ReadDir(migrationFS, "migrations")
	require.NoError(t, err)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, entry := range entries {
		name := entry.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		}
	}

	require.NotEmpty(t, ups)
	assert.Equal(t, ups, downs)
}

func TestSeedMigrationCarriesDemoAccounts(t *testing.T) {
	raw, err := fs.ReadFile(migrationFS, "migrations/000002_seed_demo_data.up.sql")
	require.NoError(t, err)

	seed := string(raw)
	for _, id := range []string{"admin01", "prof001", "prof002", "stu001", "stu005"} {
		assert.Contains(t, seed, "'"+id+"'")
	}
}

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "school_erp", SSLMode: "disable"})

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=school_erp sslmode=disable", dsn)
}
