// controllers/srv.go
package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"Gin_boardgame_lending_tool/app"
	"Gin_boardgame_lending_tool/catalog"
	"Gin_boardgame_lending_tool/db"
	"Gin_boardgame_lending_tool/ledger"
	"Gin_boardgame_lending_tool/recon"
	"Gin_boardgame_lending_tool/session"

	"go.uber.org/zap"
)

type Srv struct {
	Repo      *db.Repo
	Catalog   *catalog.Index
	Engine    *recon.Engine
	Ledger    *ledger.Client
	Loans     *ledger.Snapshot
	StaffSess *session.StaffSessionStore
	Log       *zap.Logger
	Cfg       app.Config
}

func GetSrv(a *app.App) *Srv {
	repo := db.NewRepo(a.DB)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	games, err := repo.ListGames(ctx)
	if err != nil {
		a.Logger.Fatal("load catalog", zap.Error(err))
	}
	idx := catalog.NewIndex(games)

	return &Srv{
		Repo:      repo,
		Catalog:   idx,
		Engine:    recon.NewEngine(idx, a.Ledger, a.Logger),
		Ledger:    a.Ledger,
		Loans:     a.Loans,
		StaffSess: a.StaffSessions(),
		Log:       a.Logger,
		Cfg:       a.Config,
	}
}

// reloadCatalog re-reads the table into the in-memory index after CRUD.
func (s *Srv) reloadCatalog(ctx context.Context) error {
	games, err := s.Repo.ListGames(ctx)
	if err != nil {
		return err
	}
	s.Catalog.Reload(games)
	return nil
}

// --- helpers ---

func (s *Srv) setStaffCookie(w http.ResponseWriter, sessionID string, maxAge time.Duration) {
	secure := strings.HasPrefix(s.Cfg.WebOrigin, "https://")
	http.SetCookie(w, &http.Cookie{
		Name:     app.StaffSessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
		MaxAge:   int(maxAge / time.Second),
	})
}

// outcomeStatus maps engine outcomes onto HTTP codes. Informational
// outcomes are 200: "not currently borrowed" is an answer, not a fault.
func outcomeStatus(o recon.Outcome) int {
	switch o.Kind {
	case recon.KindReturned, recon.KindNotCurrentlyBorrowed:
		return http.StatusOK
	case recon.KindBorrowed:
		return http.StatusCreated
	case recon.KindItemNotFound:
		return http.StatusNotFound
	case recon.KindInvalidIDFormat, recon.KindEmptyCart:
		return http.StatusBadRequest
	case recon.KindIdentityMismatch:
		return http.StatusForbidden
	case recon.KindReturnRejected, recon.KindBorrowBlocked:
		return http.StatusConflict
	case recon.KindConnectionError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
