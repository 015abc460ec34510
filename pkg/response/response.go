package response

import (
	"go-shopadmin/internal/util/retcode"

	"github.com/gin-gonic/gin"
)

type Body struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

func JSON(c *gin.Context, code int, msg string, data interface{}) {
	c.JSON(200, Body{Code: code, Msg: msg, Data: data})
}

func Success(c *gin.Context, data interface{}) {
	JSON(c, retcode.SUCCESS, "success", data)
}

// Error expects a negative business code; anything >=0 is coerced to INVALID
// so HTTP status codes cannot leak into the envelope by mistake.
func Error(c *gin.Context, code int, msg string) {
	if code >= 0 {
		code = retcode.INVALID
	}
	JSON(c, code, msg, nil)
}
