package database

import (
	"testing"

	"campus-notifier/config"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.Mysql{Host: "db", Port: "3307", Username: "app", Password: "p@ss", DBName: "campus"})
	assert.Contains(t, dsn, "app:p@ss@tcp(db:3307)/campus?")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")

	assert.Equal(t, "u:p@tcp(h:1)/x", DSN(config.Mysql{DSN: "u:p@tcp(h:1)/x", Host: "ignored"}))
}
