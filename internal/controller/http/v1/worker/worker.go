package worker

import (
	"fmt"
	"net/http"
	"reflect"

	"github.com/pkg/errors"

	"timeclock/backend/foundation/web"
	"timeclock/backend/internal/repository/postgres/worker"
	"timeclock/backend/internal/service/badge"
)

type Controller struct {
	worker Worker
}

func NewController(worker Worker) *Controller {
	return &Controller{worker: worker}
}

func (uc Controller) GetMe(c *web.Context) error {
	response, err := uc.worker.GetMe(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetList(c *web.Context) error {
	var filter worker.Filter

	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if offset, ok := c.GetQueryFunc(reflect.Int, "offset").(*int); ok {
		filter.Offset = offset
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if search, ok := c.GetQueryFunc(reflect.String, "search").(*string); ok {
		filter.Search = search
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := uc.worker.GetList(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"results": list,
			"count":   count,
		},
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetDetailById(c *web.Context) error {
	id := c.GetParamUUID("id")

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.worker.GetDetailById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Create(c *web.Context) error {
	var request worker.CreateRequest

	if err := c.BindFunc(&request, "Email", "Password", "FullName"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.worker.Create(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusCreated)
}

// GetBadge serves the worker's QR badge as png.
func (uc Controller) GetBadge(c *web.Context) error {
	id := c.GetParamUUID("id")

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	detail, err := uc.worker.GetDetailById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	png, err := badge.PNG(detail.ID)
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "encoding badge"), http.StatusInternalServerError))
	}

	return c.RespondFile(fmt.Sprintf("badge_%s.png", detail.ID), "image/png", png)
}
