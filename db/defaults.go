package db

import "Gin_boardgame_lending_tool/models"

// DefaultGames is the shelf the kiosk started with, used by reset and by
// the seed command. Barcodes follow the printed label sheet.
func DefaultGames() []models.BoardGame {
	return []models.BoardGame{
		{ID: 1, Name: "Catan", Barcode: "001", Category: "เกมวางกลยุทธ์", Description: "Trade, build and settle the island of Catan.", ImageURL: "/img/catan.jpg", IsPopular: true},
		{ID: 2, Name: "Splendor", Barcode: "002", Category: "เกมวางกลยุทธ์", Description: "Collect gems and build a jewel trading empire.", ImageURL: "/img/splendor.jpg", IsPopular: true},
		{ID: 3, Name: "UNO", Barcode: "003", Category: "เกมการ์ด", Description: "Classic shedding card game.", ImageURL: "/img/uno.jpg", IsPopular: true},
		{ID: 4, Name: "Werewolf", Barcode: "004", Category: "เกมปาร์ตี้", Description: "Hidden-role village deduction game.", ImageURL: "/img/werewolf.jpg"},
		{ID: 5, Name: "Ticket to Ride", Barcode: "005", Category: "เกมวางกลยุทธ์", Description: "Claim railway routes across the map.", ImageURL: "/img/ticket-to-ride.jpg"},
		{ID: 6, Name: "Dixit", Barcode: "006", Category: "เกมปาร์ตี้", Description: "Storytelling with surreal illustrated cards.", ImageURL: "/img/dixit.jpg"},
		{ID: 7, Name: "Jenga", Barcode: "007", Category: "เกมครอบครัว", Description: "Pull a block, keep the tower standing.", ImageURL: "/img/jenga.jpg"},
		{ID: 8, Name: "Exploding Kittens", Barcode: "008", Category: "เกมการ์ด", Description: "Russian-roulette style card game.", ImageURL: "/img/exploding-kittens.jpg"},
	}
}
