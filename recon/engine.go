// Package recon drives borrow/return state transitions against the external
// ledger. The ledger is the source of truth for "who has what"; the local
// catalog only resolves tokens to games. Every operation re-reads ledger
// state, so repeating an operation is safe: a second scan of an already
// returned game lands on not_currently_borrowed, never a duplicate return.
package recon

import (
	"context"
	"regexp"
	"strings"
	"sync"

	"go.uber.org/zap"

	"Gin_boardgame_lending_tool/ledger"
	"Gin_boardgame_lending_tool/models"
)

// Gateway is what the engine needs from the ledger client.
type Gateway interface {
	FetchActiveLoans(ctx context.Context) ([]models.LoanRecord, error)
	SubmitBorrow(ctx context.Context, info models.BorrowerInfo) error
	SubmitReturn(ctx context.Context, studentID, gameName string) error
}

// Resolver is what the engine needs from the catalog index.
type Resolver interface {
	Resolve(token string) (models.BoardGame, bool)
}

var studentIDPattern = regexp.MustCompile(`^[0-9]{5}$`)

type Engine struct {
	// serializes ledger writes: at most one borrow/return in flight per
	// process, overlapping dispatches queue behind it
	mu sync.Mutex

	catalog Resolver
	ledger  Gateway
	log     *zap.Logger
}

func NewEngine(catalog Resolver, gw Gateway, log *zap.Logger) *Engine {
	return &Engine{catalog: catalog, ledger: gw, log: log}
}

// ManualReturn handles the borrower-driven pathway: the borrower picked a
// loan from the visible active list and typed their id as confirmation.
// Both checks are local; the ledger is only contacted once they pass.
func (e *Engine) ManualReturn(ctx context.Context, target models.LoanRecord, enteredID string) Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := strings.TrimSpace(enteredID)
	if !studentIDPattern.MatchString(id) {
		return Outcome{
			Kind:    KindInvalidIDFormat,
			Message: "student id must be exactly 5 digits",
		}
	}
	if id != strings.TrimSpace(target.StudentID) {
		return Outcome{
			Kind:     KindIdentityMismatch,
			Message:  "student id does not match this loan",
			GameName: target.GameName,
		}
	}

	if err := e.ledger.SubmitReturn(ctx, id, target.GameName); err != nil {
		return e.returnFailure(err, target.GameName, id)
	}
	return Outcome{
		Kind:      KindReturned,
		Message:   "game returned",
		GameName:  target.GameName,
		StudentID: id,
	}
}

// ScanReturn handles the automatic pathway: a raw scanned token, no
// borrower identity. Handing back the physical box is the trust signal, so
// the first name-matching active loan is returned without confirmation.
// When several students hold copies of the same title the outcome lists all
// of them; the pick is the first in the ledger's own order.
func (e *Engine) ScanReturn(ctx context.Context, token string) Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	game, ok := e.catalog.Resolve(token)
	if !ok {
		e.log.Info("scan resolved nothing", zap.String("token", token))
		return Outcome{
			Kind:    KindItemNotFound,
			Message: "no catalog entry matches this scan",
			Token:   token,
		}
	}

	loans, err := e.ledger.FetchActiveLoans(ctx)
	if err != nil {
		e.log.Warn("active loan fetch failed", zap.Error(err))
		return Outcome{
			Kind:     KindConnectionError,
			Message:  "could not reach the ledger, rescan to retry",
			GameName: game.Name,
		}
	}

	var candidates []models.LoanRecord
	for _, l := range loans {
		if strings.EqualFold(strings.TrimSpace(l.GameName), game.Name) {
			candidates = append(candidates, l)
		}
	}
	if len(candidates) == 0 {
		return Outcome{
			Kind:     KindNotCurrentlyBorrowed,
			Message:  "this game is not on loan right now",
			GameName: game.Name,
		}
	}

	match := candidates[0]
	if len(candidates) > 1 {
		e.log.Warn("ambiguous scan return, taking first match",
			zap.String("game", game.Name),
			zap.Int("candidates", len(candidates)))
	}
	if err := e.ledger.SubmitReturn(ctx, strings.TrimSpace(match.StudentID), match.GameName); err != nil {
		o := e.returnFailure(err, match.GameName, match.StudentID)
		o.Candidates = candidates
		return o
	}
	return Outcome{
		Kind:       KindReturned,
		Message:    "game returned",
		GameName:   match.GameName,
		StudentID:  strings.TrimSpace(match.StudentID),
		Candidates: candidates,
	}
}

// Borrow commits the cart. Per-game writes and their aggregation live in
// the gateway; here we only validate the borrower and translate the result.
func (e *Engine) Borrow(ctx context.Context, info models.BorrowerInfo) Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	info.StudentID = strings.TrimSpace(info.StudentID)
	if !studentIDPattern.MatchString(info.StudentID) {
		return Outcome{
			Kind:    KindInvalidIDFormat,
			Message: "student id must be exactly 5 digits",
		}
	}
	if len(info.Games) == 0 {
		return Outcome{
			Kind:    KindEmptyCart,
			Message: "select at least one game",
		}
	}

	if err := e.ledger.SubmitBorrow(ctx, info); err != nil {
		if ledger.IsRejected(err) {
			return Outcome{
				Kind:      KindBorrowBlocked,
				Message:   rejectionMessage(err, "some games were borrowed by someone else first"),
				StudentID: info.StudentID,
			}
		}
		return Outcome{
			Kind:    KindConnectionError,
			Message: "could not reach the ledger, submission may be partial",
		}
	}
	return Outcome{
		Kind:      KindBorrowed,
		Message:   "borrow recorded",
		StudentID: info.StudentID,
	}
}

func (e *Engine) returnFailure(err error, game, studentID string) Outcome {
	if ledger.IsRejected(err) {
		// typically a race: someone else returned it first
		return Outcome{
			Kind:      KindReturnRejected,
			Message:   rejectionMessage(err, "the ledger has no matching open loan"),
			GameName:  game,
			StudentID: strings.TrimSpace(studentID),
		}
	}
	return Outcome{
		Kind:     KindConnectionError,
		Message:  "could not reach the ledger, rescan to retry",
		GameName: game,
	}
}

func rejectionMessage(err error, fallback string) string {
	if le, ok := err.(*ledger.Error); ok && le.Message != "" {
		return le.Message
	}
	return fallback
}
