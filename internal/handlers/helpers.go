package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	userdomain "github.com/SerraVetServices/vet-scheduler/internal/domain/user"
	"github.com/SerraVetServices/vet-scheduler/internal/middleware"
)

// actor lê identidade e papel colocados no contexto pelo AuthMiddleware.
func actor(c *gin.Context) (uint, userdomain.Role) {
	id := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(userdomain.Role)
	return id, role
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func queryInt(c *gin.Context, key string, def int) int {
	v := c.Query(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
