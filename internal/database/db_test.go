package database

import (
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSNRoundTripsThroughDriverParser(t *testing.T) {
	o := Options{User: "cinetour", Password: "s3cret", Host: "db", Port: "3306", Name: "cinetour"}

	cfg, err := mysql.ParseDSN(o.DSN())
	require.NoError(t, err)
	assert.Equal(t, "cinetour", cfg.User)
	assert.Equal(t, "s3cret", cfg.Passwd)
	assert.Equal(t, "db:3306", cfg.Addr)
	assert.Equal(t, "cinetour", cfg.DBName)
	assert.True(t, cfg.ParseTime)
}

func TestDSNWithoutPassword(t *testing.T) {
	o := Options{User: "root", Host: "localhost", Port: "3306", Name: "cinetour"}
	assert.NotContains(t, o.DSN(), "root:")
}
