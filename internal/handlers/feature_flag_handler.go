package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/reservation-scheduler/internal/featureflag"
	"github.com/BruksfildServices01/reservation-scheduler/internal/httperr"
	"github.com/BruksfildServices01/reservation-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/reservation-scheduler/internal/middleware"
)

type FeatureFlagHandler struct {
	flags *featureflag.Service
	log   *zap.Logger
}

func NewFeatureFlagHandler(flags *featureflag.Service, log *zap.Logger) *FeatureFlagHandler {
	return &FeatureFlagHandler{flags: flags, log: log}
}

func (h *FeatureFlagHandler) Get(c *gin.Context) {
	httpresp.OK(c, h.flags.Get(c.Request.Context(), middleware.TenantID(c)))
}

// Patch takes a partial {"flag_name": bool} object.
func (h *FeatureFlagHandler) Patch(c *gin.Context) {
	var patch map[string]bool
	if err := bindJSON(c, &patch); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	if len(patch) == 0 {
		httperr.Respond(c, h.log, httperr.Validation("no feature flags given", nil))
		return
	}

	flags, err := h.flags.Update(c.Request.Context(), middleware.TenantID(c), patch)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, flags)
}
