// Package models holds the persisted catalog entities.
package models

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Prices cross the API as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

const (
	// MaxGameNameLength is the longest name a game may carry.
	MaxGameNameLength = 50

	// PriceDecimals is the scale of the price column; finer prices would be
	// rounded on write.
	PriceDecimals = 2
)

var (
	// MinPrice and MaxPrice bound the price of a game, inclusive.
	MinPrice = decimal.RequireFromString("0.01")
	MaxPrice = decimal.RequireFromString("1000")
)

// HasPriceScale reports whether p fits the price column without rounding.
func HasPriceScale(p decimal.Decimal) bool {
	return p.Equal(p.Round(PriceDecimals))
}

// Genre is a row of the genres table.
type Genre struct {
	ID   int    `db:"id"`
	Name string `db:"name"`
}

// Game is a row of the games table.
type Game struct {
	ID          int             `db:"id"`
	Name        string          `db:"name"`
	GenreID     int             `db:"genre_id"`
	Price       decimal.Decimal `db:"price"`
	ReleaseDate Date            `db:"release_date"`
}

// GameWithGenre is a game joined to its genre. GenreName is nil when the
// game's genre_id has no matching genre row.
type GameWithGenre struct {
	Game
	GenreName *string `db:"genre_name"`
}
