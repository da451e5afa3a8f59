package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"Gin_boardgame_lending_tool/app"
	"Gin_boardgame_lending_tool/db"
	"Gin_boardgame_lending_tool/labels"
	"Gin_boardgame_lending_tool/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CatalogController struct{ *Srv }

func NewCatalogController(s *Srv) *CatalogController { return &CatalogController{Srv: s} }

// 列表（含购物车勾选状态）
func (cc *CatalogController) ListGames(c *gin.Context) {
	c.JSON(http.StatusOK, app.H{"games": cc.Catalog.List()})
}

func (cc *CatalogController) CreateGame(c *gin.Context) {
	var in struct {
		Name        string `json:"name" binding:"required"`
		Barcode     string `json:"barcode"`
		Category    string `json:"category"`
		Description string `json:"description"`
		ImageURL    string `json:"imageUrl"`
		IsPopular   bool   `json:"isPopular"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	g := &models.BoardGame{
		Name: in.Name, Barcode: in.Barcode, Category: in.Category,
		Description: in.Description, ImageURL: in.ImageURL, IsPopular: in.IsPopular,
	}
	if err := cc.Repo.CreateGame(c.Request.Context(), g); err != nil {
		if errors.Is(err, db.ErrDuplicateName) {
			c.JSON(http.StatusConflict, app.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	if err := cc.reloadCatalog(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, g)
}

func (cc *CatalogController) UpdateGame(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "bad game id"})
		return
	}
	var in struct {
		Name        string `json:"name" binding:"required"`
		Barcode     string `json:"barcode"`
		Category    string `json:"category"`
		Description string `json:"description"`
		ImageURL    string `json:"imageUrl"`
		IsPopular   bool   `json:"isPopular"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	g := &models.BoardGame{
		ID: uint(id), Name: in.Name, Barcode: in.Barcode, Category: in.Category,
		Description: in.Description, ImageURL: in.ImageURL, IsPopular: in.IsPopular,
	}
	if err := cc.Repo.UpdateGame(c.Request.Context(), g); err != nil {
		switch {
		case errors.Is(err, db.ErrDuplicateName):
			c.JSON(http.StatusConflict, app.H{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, app.H{"error": "game not found"})
		default:
			c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		}
		return
	}
	if err := cc.reloadCatalog(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, g)
}

// 批量删除
func (cc *CatalogController) DeleteGames(c *gin.Context) {
	var in struct {
		IDs []uint `json:"ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	n, err := cc.Repo.DeleteGames(c.Request.Context(), in.IDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	if err := cc.reloadCatalog(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"deleted": n})
}

func (cc *CatalogController) ResetGames(c *gin.Context) {
	if err := cc.Repo.ResetGames(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	if err := cc.reloadCatalog(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true, "games": cc.Catalog.List()})
}

// 勾选/取消勾选（借用购物车）
func (cc *CatalogController) ToggleSelect(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "bad game id"})
		return
	}
	on, ok := cc.Catalog.ToggleSelect(uint(id))
	if !ok {
		c.JSON(http.StatusNotFound, app.H{"error": "game not found"})
		return
	}
	c.JSON(http.StatusOK, app.H{"selected": on, "cart": cc.Catalog.SelectedNames()})
}

func (cc *CatalogController) ClearSelection(c *gin.Context) {
	cc.Catalog.ClearSelection()
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// 单个游戏的扫码标签 PNG
func (cc *CatalogController) Label(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "bad game id"})
		return
	}
	g, ok := cc.Catalog.FindByID(uint(id))
	if !ok {
		c.JSON(http.StatusNotFound, app.H{"error": "game not found"})
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "256"))
	png, err := labels.PNG(g, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// 整页标签 PDF，打印后贴盒
func (cc *CatalogController) LabelSheet(c *gin.Context) {
	pdf, err := labels.SheetPDF(cc.Catalog.List())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="labels.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// GameStatus asks the ledger directly whether one game is out.
func (cc *CatalogController) GameStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "bad game id"})
		return
	}
	g, ok := cc.Catalog.FindByID(uint(id))
	if !ok {
		c.JSON(http.StatusNotFound, app.H{"error": "game not found"})
		return
	}
	st, err := cc.Ledger.CheckGame(c.Request.Context(), g.Name)
	if err != nil {
		c.JSON(http.StatusBadGateway, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, st)
}
