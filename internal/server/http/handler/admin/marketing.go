package admin

import (
	"go-shopadmin/internal/repository/dao"
	"go-shopadmin/internal/service"
	"go-shopadmin/internal/util/retcode"
	"go-shopadmin/pkg/response"

	"github.com/gin-gonic/gin"
)

type MarketingHandler struct{ d Dependencies }

func NewMarketingHandler(d Dependencies) *MarketingHandler { return &MarketingHandler{d: d} }

func (h *MarketingHandler) List(c *gin.Context) {
	p := dao.MarketingListParams{
		Filter: dao.MarketingFilter{
			Name:      c.Query("name"),
			Code:      c.Query("code"),
			DateAdded: c.Query("date_added"),
		},
		Sort:  c.Query("sort"),
		Order: c.Query("order"),
		Start: qIntPtr(c, "start"),
		Limit: qIntPtr(c, "limit"),
	}
	res, err := h.d.Marketing.List(c.Request.Context(), p)
	if err != nil {
		fail(c, retcode.DB_READ_ERROR, err)
		return
	}
	response.Success(c, res)
}

func (h *MarketingHandler) Get(c *gin.Context) {
	m, err := h.d.Marketing.Get(c.Request.Context(), pInt64(c, "id"))
	if err != nil {
		fail(c, retcode.DB_READ_ERROR, err)
		return
	}
	if m == nil {
		response.Error(c, retcode.NOT_EXISTS, "marketing not found")
		return
	}
	response.Success(c, m)
}

func (h *MarketingHandler) GetByCode(c *gin.Context) {
	m, err := h.d.Marketing.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		fail(c, retcode.DB_READ_ERROR, err)
		return
	}
	if m == nil {
		response.Error(c, retcode.NOT_EXISTS, "marketing not found")
		return
	}
	response.Success(c, m)
}

func (h *MarketingHandler) Add(c *gin.Context) {
	var req service.MarketingParams
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, retcode.JSON_PARSE_FAIL, "invalid body")
		return
	}
	id, err := h.d.Marketing.Add(c.Request.Context(), req)
	if err != nil {
		fail(c, retcode.DB_SAVE_ERROR, err)
		return
	}
	response.Success(c, gin.H{"id": id})
}

func (h *MarketingHandler) Edit(c *gin.Context) {
	var req service.MarketingParams
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, retcode.JSON_PARSE_FAIL, "invalid body")
		return
	}
	if err := h.d.Marketing.Edit(c.Request.Context(), pInt64(c, "id"), req); err != nil {
		fail(c, retcode.DB_SAVE_ERROR, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *MarketingHandler) Delete(c *gin.Context) {
	if err := h.d.Marketing.Delete(c.Request.Context(), pInt64(c, "id")); err != nil {
		fail(c, retcode.DB_SAVE_ERROR, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}
