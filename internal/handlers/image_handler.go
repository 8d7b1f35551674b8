package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/reservation-scheduler/internal/featureflag"
	"github.com/BruksfildServices01/reservation-scheduler/internal/httperr"
	"github.com/BruksfildServices01/reservation-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/reservation-scheduler/internal/infra/storage"
	"github.com/BruksfildServices01/reservation-scheduler/internal/middleware"
)

type ImageUploader interface {
	UploadImage(ctx context.Context, prefix string, r io.Reader) (string, error)
}

// ImageHandler attaches pictures to menus and staff. uploader is nil when storage is not configured.
type ImageHandler struct {
	uploader ImageUploader
	flags    *featureflag.Service
	menus    MenuStore
	staff    StaffStore
	log      *zap.Logger
}

func NewImageHandler(uploader ImageUploader, flags *featureflag.Service, menus MenuStore, staff StaffStore, log *zap.Logger) *ImageHandler {
	return &ImageHandler{uploader: uploader, flags: flags, menus: menus, staff: staff, log: log}
}

func (h *ImageHandler) UploadMenuImage(c *gin.Context) {
	id, ok := h.prepare(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	menu, err := h.menus.GetMenu(ctx, middleware.TenantID(c), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	url, ok := h.upload(c, fmt.Sprintf("%s/menus/%d", menu.TenantID, menu.ID))
	if !ok {
		return
	}

	menu.ImageURL = url
	if err := h.menus.SaveMenu(ctx, menu); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, menu)
}

func (h *ImageHandler) UploadStaffImage(c *gin.Context) {
	id, ok := h.prepare(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	staff, err := h.staff.GetStaff(ctx, middleware.TenantID(c), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	url, ok := h.upload(c, fmt.Sprintf("%s/staff/%d", staff.TenantID, staff.ID))
	if !ok {
		return
	}

	staff.ImageURL = url
	if err := h.staff.SaveStaff(ctx, staff); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, staff)
}

func (h *ImageHandler) prepare(c *gin.Context) (uint, bool) {
	if !h.flags.IsEnabled(c.Request.Context(), middleware.TenantID(c), featureflag.MenuImages) {
		httperr.Respond(c, h.log, httperr.New(httperr.CodeFeatureDisabled, "menu_images is disabled"))
		return 0, false
	}
	if h.uploader == nil {
		httperr.Respond(c, h.log, httperr.New(httperr.CodeUnavailable, "image storage is not configured"))
		return 0, false
	}
	id, err := idParam(c, "id")
	if err != nil {
		httperr.Respond(c, h.log, err)
		return 0, false
	}
	return id, true
}

func (h *ImageHandler) upload(c *gin.Context, prefix string) (string, bool) {
	fh, err := c.FormFile("image")
	if err != nil {
		if middleware.IsBodyTooLarge(err) {
			httperr.Respond(c, h.log, httperr.Validation("image too large", map[string]string{"image": "max_size"}))
			return "", false
		}
		httperr.Respond(c, h.log, httperr.Validation("invalid request", map[string]string{"image": "required"}))
		return "", false
	}

	f, err := fh.Open()
	if err != nil {
		httperr.Respond(c, h.log, err)
		return "", false
	}
	defer f.Close()

	url, err := h.uploader.UploadImage(c.Request.Context(), prefix, f)
	switch {
	case errors.Is(err, storage.ErrUnsupportedImage):
		httperr.Respond(c, h.log, httperr.Validation("unsupported image", map[string]string{"image": "jpeg|png"}))
		return "", false
	case errors.Is(err, storage.ErrImageTooLarge):
		httperr.Respond(c, h.log, httperr.Validation("image too large", map[string]string{"image": "max_size"}))
		return "", false
	case err != nil:
		httperr.Respond(c, h.log, err)
		return "", false
	}
	return url, true
}
