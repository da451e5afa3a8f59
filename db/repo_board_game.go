package db

import (
	"context"
	"errors"
	"strings"

	"Gin_boardgame_lending_tool/models"

	"gorm.io/gorm"
)

var ErrDuplicateName = errors.New("a game with this name already exists")

// Games are the local catalog cache. The ledger is the source of truth for
// loan state; nothing here records borrows or returns.

func (r *Repo) ListGames(ctx context.Context) ([]models.BoardGame, error) {
	var games []models.BoardGame
	err := r.DB.WithContext(ctx).Order("id ASC").Find(&games).Error
	return games, err
}

func (r *Repo) FindGameByID(ctx context.Context, id uint) (*models.BoardGame, error) {
	var g models.BoardGame
	if err := r.DB.WithContext(ctx).First(&g, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

// CreateGame assigns max(id)+1 when no id is given, matching how the
// catalog has always numbered games.
func (r *Repo) CreateGame(ctx context.Context, g *models.BoardGame) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.checkName(tx, g.Name, 0); err != nil {
			return err
		}
		if g.ID == 0 {
			var maxID uint
			if err := tx.Model(&models.BoardGame{}).
				Select("COALESCE(MAX(id), 0)").
				Scan(&maxID).Error; err != nil {
				return err
			}
			g.ID = maxID + 1
		}
		return tx.Create(g).Error
	})
}

func (r *Repo) UpdateGame(ctx context.Context, g *models.BoardGame) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.checkName(tx, g.Name, g.ID); err != nil {
			return err
		}
		res := tx.Model(&models.BoardGame{}).Where("id = ?", g.ID).
			Updates(map[string]interface{}{
				"name":        g.Name,
				"barcode":     g.Barcode,
				"category":    g.Category,
				"description": g.Description,
				"image_url":   g.ImageURL,
				"is_popular":  g.IsPopular,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *Repo) DeleteGames(ctx context.Context, ids []uint) (int64, error) {
	res := r.DB.WithContext(ctx).Where("id IN ?", ids).Delete(&models.BoardGame{})
	return res.RowsAffected, res.Error
}

// ResetGames wipes the catalog and reloads the bundled defaults.
func (r *Repo) ResetGames(ctx context.Context) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.BoardGame{}).Error; err != nil {
			return err
		}
		games := DefaultGames()
		return tx.Create(&games).Error
	})
}

// names are the join key against the ledger, so duplicates would make
// returns ambiguous at the source
func (r *Repo) checkName(tx *gorm.DB, name string, selfID uint) error {
	var n int64
	q := tx.Model(&models.BoardGame{}).Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name)))
	if selfID != 0 {
		q = q.Where("id <> ?", selfID)
	}
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return ErrDuplicateName
	}
	return nil
}
