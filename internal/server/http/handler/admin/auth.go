package admin

import (
	"go-shopadmin/internal/util/retcode"
	"go-shopadmin/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthHandler struct{ d Dependencies }

func NewAuthHandler(d Dependencies) *AuthHandler { return &AuthHandler{d: d} }

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" form:"username"`
		Password string `json:"password" form:"password"`
	}
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, retcode.JSON_PARSE_FAIL, "invalid body")
		return
	}
	res, err := h.d.Auth.Login(c.Request.Context(), req.Username, req.Password, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		fail(c, retcode.LOGIN_ERROR, err)
		return
	}
	response.Success(c, gin.H{
		"token": res.Token,
		"user": gin.H{
			"id":        res.User.ID,
			"username":  res.User.Username,
			"firstname": res.User.Firstname,
			"lastname":  res.User.Lastname,
		},
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	jti := c.GetString("jti")
	if err := h.d.Auth.Logout(c.Request.Context(), jti); err != nil {
		fail(c, retcode.UNKNOWN, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

// Forgotten issues a reset code for the given email. The reply is identical
// whether or not an account matches, so the endpoint cannot be used to probe
// for registered addresses.
func (h *AuthHandler) Forgotten(c *gin.Context) {
	var req struct {
		Email string `json:"email" form:"email"`
	}
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, retcode.JSON_PARSE_FAIL, "invalid body")
		return
	}
	if req.Email == "" {
		response.Error(c, retcode.EMPTY_PARAMS, "email required")
		return
	}
	code := uuid.NewString()
	if err := h.d.User.EditResetCode(c.Request.Context(), req.Email, code); err != nil {
		fail(c, retcode.DB_SAVE_ERROR, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

// Reset consumes a reset code: the matching account gets the new password and
// the code is cleared in the same statement.
func (h *AuthHandler) Reset(c *gin.Context) {
	var req struct {
		Code     string `json:"code" form:"code"`
		Password string `json:"password" form:"password"`
	}
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, retcode.JSON_PARSE_FAIL, "invalid body")
		return
	}
	u, err := h.d.User.GetUserByResetCode(c.Request.Context(), req.Code)
	if err != nil {
		fail(c, retcode.DB_READ_ERROR, err)
		return
	}
	if u == nil {
		response.Error(c, retcode.NOT_EXISTS, "invalid reset code")
		return
	}
	if err := h.d.User.EditPassword(c.Request.Context(), u.ID, req.Password); err != nil {
		fail(c, retcode.DB_SAVE_ERROR, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}
