package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationNames_Sorted(t *testing.T) {
	names, err := migrationNames()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "001_init.sql", names[0])
}

func TestMigration_InitDeclaresCascades(t *testing.T) {
	body, err := migrationsFS.ReadFile("migrations/001_init.sql")
	require.NoError(t, err)
	sql := string(body)
	assert.Contains(t, sql, "room_id         UUID NOT NULL REFERENCES rooms (id) ON DELETE CASCADE")
	assert.Contains(t, sql, "guest_id   UUID REFERENCES guests (id) ON DELETE SET NULL")
	assert.Contains(t, sql, "category_id UUID REFERENCES categories (id) ON DELETE SET NULL")
	assert.Contains(t, sql, "ON categories (lower(name))")
}

func TestLimitClause(t *testing.T) {
	assert.Equal(t, " LIMIT 20 OFFSET 40", limitClause(20, 40))
	assert.Equal(t, " OFFSET 0", limitClause(0, -5))
}
