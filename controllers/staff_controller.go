package controllers

import (
	"net/http"
	"time"

	"Gin_boardgame_lending_tool/app"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StaffController struct{ *Srv }

func NewStaffController(s *Srv) *StaffController { return &StaffController{Srv: s} }

// Unlock trades the shared passcode for a session cookie. This is a gate,
// not an identity: everyone behind it is "staff".
func (st *StaffController) Unlock(c *gin.Context) {
	var in struct {
		Passcode string `json:"passcode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if in.Passcode != st.Cfg.StaffPasscode {
		c.JSON(http.StatusUnauthorized, app.H{"error": "wrong passcode"})
		return
	}
	id := uuid.NewString()
	if err := st.StaffSess.Create(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	st.setStaffCookie(c.Writer, id, st.Cfg.SessionTTL)
	c.JSON(http.StatusOK, app.H{"ok": true})
}

func (st *StaffController) Lock(c *gin.Context) {
	if ck, err := c.Request.Cookie(app.StaffSessionCookie); err == nil && ck.Value != "" {
		_ = st.StaffSess.Delete(c.Request.Context(), ck.Value)
	}
	st.setStaffCookie(c.Writer, "", -time.Second)
	c.JSON(http.StatusOK, app.H{"ok": true})
}
