package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/reservation-scheduler/internal/dto"
	"github.com/BruksfildServices01/reservation-scheduler/internal/httperr"
	"github.com/BruksfildServices01/reservation-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/reservation-scheduler/internal/middleware"
)

type MeHandler struct {
	users middleware.UserLookup
	log   *zap.Logger
}

func NewMeHandler(users middleware.UserLookup, log *zap.Logger) *MeHandler {
	return &MeHandler{users: users, log: log}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	user, err := h.users.GetUser(c.Request.Context(), middleware.TenantID(c), middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, dto.ToUserDTO(user))
}
