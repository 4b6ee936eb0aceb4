package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrationURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"postgres://u:p@localhost:5432/db?sslmode=disable", "pgx5://u:p@localhost:5432/db?sslmode=disable"},
		{"postgresql://u@db/dispatch", "pgx5://u@db/dispatch"},
		{"pgx5://u@db/dispatch", "pgx5://u@db/dispatch"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, migrationURL(tt.in))
	}
}

func TestMigrate_UnknownDirection(t *testing.T) {
	err := Migrate("postgres://localhost/db", t.TempDir(), MigrateDirection("sideways"))
	assert.Error(t, err)
}
