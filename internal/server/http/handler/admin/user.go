package admin

import (
	"go-shopadmin/internal/repository/dao"
	"go-shopadmin/internal/service"
	"go-shopadmin/internal/util/retcode"
	"go-shopadmin/pkg/response"

	"github.com/gin-gonic/gin"
)

type UserHandler struct{ d Dependencies }

func NewUserHandler(d Dependencies) *UserHandler { return &UserHandler{d: d} }

func (h *UserHandler) List(c *gin.Context) {
	p := dao.UserListParams{
		Filter: dao.UserFilter{Username: c.Query("username")},
		Sort:   c.Query("sort"),
		Order:  c.Query("order"),
		Start:  qIntPtr(c, "start"),
		Limit:  qIntPtr(c, "limit"),
	}
	res, err := h.d.User.ListUsers(c.Request.Context(), p)
	if err != nil {
		fail(c, retcode.DB_READ_ERROR, err)
		return
	}
	response.Success(c, res)
}

func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.d.User.GetUser(c.Request.Context(), pInt64(c, "id"))
	if err != nil {
		fail(c, retcode.DB_READ_ERROR, err)
		return
	}
	if u == nil {
		response.Error(c, retcode.NOT_EXISTS, "user not found")
		return
	}
	response.Success(c, u)
}

func (h *UserHandler) Add(c *gin.Context) {
	var req service.UserParams
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, retcode.JSON_PARSE_FAIL, "invalid body")
		return
	}
	id, err := h.d.User.AddUser(c.Request.Context(), req)
	if err != nil {
		fail(c, retcode.DB_SAVE_ERROR, err)
		return
	}
	response.Success(c, gin.H{"id": id})
}

// Edit rewrites the profile; an empty password in the body leaves the stored
// hash untouched.
func (h *UserHandler) Edit(c *gin.Context) {
	var req service.UserParams
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, retcode.JSON_PARSE_FAIL, "invalid body")
		return
	}
	if err := h.d.User.EditUser(c.Request.Context(), pInt64(c, "id"), req); err != nil {
		fail(c, retcode.DB_SAVE_ERROR, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.d.User.DeleteUser(c.Request.Context(), pInt64(c, "id")); err != nil {
		fail(c, retcode.DB_SAVE_ERROR, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *UserHandler) Logins(c *gin.Context) {
	start := qInt(c, "start", 0)
	limit := qInt(c, "limit", 0)
	res, err := h.d.User.LoginHistory(c.Request.Context(), pInt64(c, "id"), start, limit)
	if err != nil {
		fail(c, retcode.DB_READ_ERROR, err)
		return
	}
	response.Success(c, res)
}

func (h *UserHandler) Groups(c *gin.Context) {
	groups, err := h.d.User.ListGroups(c.Request.Context())
	if err != nil {
		fail(c, retcode.DB_READ_ERROR, err)
		return
	}
	response.Success(c, groups)
}
