package admin

import (
	"errors"
	"strconv"

	"go-shopadmin/internal/service"
	"go-shopadmin/internal/util/retcode"
	"go-shopadmin/pkg/response"

	"github.com/gin-gonic/gin"
)

func qInt(c *gin.Context, key string, def int) int {
	v := c.Query(key)
	if v == "" {
		return def
	}
	if i, err := strconv.Atoi(v); err == nil {
		return i
	}
	return def
}

func qIntPtr(c *gin.Context, key string) *int {
	v := c.Query(key)
	if v == "" {
		return nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &i
}

func pInt64(c *gin.Context, key string) int64 {
	i, _ := strconv.ParseInt(c.Param(key), 10, 64)
	return i
}

// fail translates service and storage errors into business retcodes. fallback
// is used for plain errors, typically DB_SAVE_ERROR or DB_READ_ERROR.
func fail(c *gin.Context, fallback int, err error) {
	var mf *service.MissingFieldError
	switch {
	case errors.As(err, &mf):
		response.Error(c, retcode.EMPTY_PARAMS, err.Error())
	case errors.Is(err, service.ErrNotFound):
		response.Error(c, retcode.NOT_EXISTS, err.Error())
	case errors.Is(err, service.ErrDuplicateUsername):
		response.Error(c, retcode.INVALID, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrUserDisabled):
		response.Error(c, retcode.LOGIN_ERROR, err.Error())
	default:
		response.Error(c, fallback, err.Error())
	}
}
