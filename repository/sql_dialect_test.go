package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDialectRebind(t *testing.T) {
	q := "SELECT * FROM bookings WHERE id=? AND booking_no=?"
	assert.Equal(t, "SELECT * FROM bookings WHERE id=$1 AND booking_no=$2", Postgres.rebind(q))
	assert.Equal(t, q, SQLite.rebind(q))
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, `%100\%%`, likePattern(" 100% "))
	assert.Equal(t, `%a\_b%`, likePattern("a_b"))
	assert.Equal(t, `%c:\\x%`, likePattern(`c:\x`))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "?,?,?", placeholders(3))
	assert.Equal(t, "?", placeholders(1))
}
