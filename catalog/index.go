// Package catalog is the local read surface the reconciliation engine
// resolves scanned tokens against. It mirrors the bg_games table in memory;
// the ledger, not this index, decides whether a game is on loan.
package catalog

import (
	"strings"
	"sync"

	"Gin_boardgame_lending_tool/kbd"
	"Gin_boardgame_lending_tool/models"
)

type Index struct {
	mu    sync.RWMutex
	games []models.BoardGame
	// cart, keyed by game id — never persisted
	selected map[uint]bool
}

func NewIndex(games []models.BoardGame) *Index {
	idx := &Index{selected: make(map[uint]bool)}
	idx.Reload(games)
	return idx
}

// Reload swaps the snapshot after catalog CRUD. Cart entries for games that
// no longer exist are dropped.
func (idx *Index) Reload(games []models.BoardGame) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.games = make([]models.BoardGame, len(games))
	copy(idx.games, games)
	alive := make(map[uint]bool, len(games))
	for _, g := range games {
		alive[g.ID] = true
	}
	for id := range idx.selected {
		if !alive[id] {
			delete(idx.selected, id)
		}
	}
}

// Resolve maps a scanned/typed token to a game. Lookup order matters:
//  1. exact barcode (case sensitive, barcodes are digit strings)
//  2. name, case-insensitive, token as typed
//  3. name, case-insensitive, each keyboard-layout variant
//
// First match wins; ok=false means the token resolved to nothing.
func (idx *Index) Resolve(token string) (models.BoardGame, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	for _, g := range idx.games {
		if g.Barcode != "" && g.Barcode == token {
			return g, true
		}
	}
	for _, cand := range kbd.Normalize(token).All() {
		for _, g := range idx.games {
			if strings.EqualFold(g.Name, cand) {
				return g, true
			}
		}
	}
	return models.BoardGame{}, false
}

func (idx *Index) FindByID(id uint) (models.BoardGame, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	for _, g := range idx.games {
		if g.ID == id {
			return g, true
		}
	}
	return models.BoardGame{}, false
}

// List returns the snapshot with the cart flag applied.
func (idx *Index) List() []models.BoardGame {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	out := make([]models.BoardGame, len(idx.games))
	copy(out, idx.games)
	for i := range out {
		out[i].Selected = idx.selected[out[i].ID]
	}
	return out
}

// ToggleSelect flips a game's cart flag, reporting the new state.
func (idx *Index) ToggleSelect(id uint) (bool, bool) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	found := false
	for _, g := range idx.games {
		if g.ID == id {
			found = true
			break
		}
	}
	if !found {
		return false, false
	}
	idx.selected[id] = !idx.selected[id]
	if !idx.selected[id] {
		delete(idx.selected, id)
	}
	return idx.selected[id], true
}

// SelectedNames lists the cart in catalog order, for the borrow submission.
func (idx *Index) SelectedNames() []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	var names []string
	for _, g := range idx.games {
		if idx.selected[g.ID] {
			names = append(names, g.Name)
		}
	}
	return names
}

// ClearSelection empties the cart, on submission or cancellation.
func (idx *Index) ClearSelection() {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.selected = make(map[uint]bool)
}
