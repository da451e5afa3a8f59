package routes

import (
	"Gin_boardgame_lending_tool/app"
	"Gin_boardgame_lending_tool/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	// 控制器与依赖
	s := controllers.GetSrv(a)
	catalogCtl := controllers.NewCatalogController(s)
	loanCtl := controllers.NewLoanController(s)
	scanCtl := controllers.NewScanController(s)
	staffCtl := controllers.NewStaffController(s)

	staffMW := app.StaffRequired(s.StaffSess)

	// ------------------------------
	// Passcode gate
	// ------------------------------
	staff := r.Group("/api/staff")
	{
		staff.POST("/unlock", staffCtl.Unlock)
		staff.POST("/lock", staffCtl.Lock)
	}

	// ------------------------------
	// Catalog browsing + cart (kiosk, open)
	// ------------------------------
	games := r.Group("/api/games")
	{
		games.GET("", catalogCtl.ListGames)
		games.POST("/:id/select", catalogCtl.ToggleSelect)
		games.POST("/clear_selection", catalogCtl.ClearSelection)
		games.GET("/:id/status", catalogCtl.GameStatus)
		games.GET("/:id/label", catalogCtl.Label)
	}

	// Catalog management (staff only)
	gamesAdmin := r.Group("/api/games", staffMW)
	{
		gamesAdmin.POST("", catalogCtl.CreateGame)
		gamesAdmin.PUT("/:id", catalogCtl.UpdateGame)
		gamesAdmin.DELETE("", catalogCtl.DeleteGames) // body: {ids: [...]}
		gamesAdmin.POST("/reset", catalogCtl.ResetGames)
		gamesAdmin.GET("/labels.pdf", catalogCtl.LabelSheet)
	}

	// ------------------------------
	// Loans (ledger-backed)
	// ------------------------------
	loans := r.Group("/api/loans")
	{
		loans.GET("/active", loanCtl.ActiveLoans)
		loans.POST("/borrow", loanCtl.Borrow)
		loans.POST("/return", loanCtl.ManualReturn)
	}
	r.GET("/api/loans/transactions", staffMW, loanCtl.Transactions)

	// ------------------------------
	// Scanner input
	// ------------------------------
	r.POST("/api/scan", scanCtl.Scan)
	r.GET("/ws/scan", scanCtl.ScanSocket)
}
