package controllers

import (
	"net/http"

	"Gin_boardgame_lending_tool/app"
	"Gin_boardgame_lending_tool/ledger"
	"Gin_boardgame_lending_tool/models"
	"Gin_boardgame_lending_tool/recon"

	"github.com/gin-gonic/gin"
)

type LoanController struct{ *Srv }

func NewLoanController(s *Srv) *LoanController { return &LoanController{Srv: s} }

// ActiveLoans serves the live list; on a transport failure it falls back to
// the cron-refreshed snapshot and says so, rather than showing an empty
// screen at the kiosk.
func (lc *LoanController) ActiveLoans(c *gin.Context) {
	loans, err := lc.Ledger.FetchActiveLoans(c.Request.Context())
	if err == nil {
		c.JSON(http.StatusOK, app.H{"items": loans, "stale": false})
		return
	}
	if ledger.IsTransport(err) {
		cached, fetchedAt := lc.Loans.Cached()
		if !fetchedAt.IsZero() {
			c.JSON(http.StatusOK, app.H{
				"items":     cached,
				"stale":     true,
				"fetchedAt": fetchedAt,
			})
			return
		}
	}
	c.JSON(http.StatusBadGateway, app.H{"error": err.Error()})
}

func (lc *LoanController) Transactions(c *gin.Context) {
	items, err := lc.Ledger.FetchAllTransactions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"items": items})
}

// Borrow commits the cart. The client may name games explicitly; otherwise
// the server-side selection is used. The cart clears only on success.
func (lc *LoanController) Borrow(c *gin.Context) {
	var in models.BorrowerInfo
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if len(in.Games) == 0 {
		in.Games = lc.Catalog.SelectedNames()
	}

	o := lc.Engine.Borrow(c.Request.Context(), in)
	if o.Kind == recon.KindBorrowed {
		lc.Catalog.ClearSelection()
	}
	c.JSON(outcomeStatus(o), o)
}

// ManualReturn is the borrower-driven pathway: the target loan was picked
// from the visible list, the entered id is the confirmation step.
func (lc *LoanController) ManualReturn(c *gin.Context) {
	var in struct {
		Target    models.LoanRecord `json:"target" binding:"required"`
		StudentID string            `json:"studentId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	o := lc.Engine.ManualReturn(c.Request.Context(), in.Target, in.StudentID)
	c.JSON(outcomeStatus(o), o)
}
