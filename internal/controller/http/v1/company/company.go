package company

import (
	"net/http"

	"timeclock/backend/foundation/web"
	"timeclock/backend/internal/repository/postgres/company"
)

type Controller struct {
	company Company
}

func NewController(company Company) *Controller {
	return &Controller{company: company}
}

func (uc Controller) GetInfo(c *web.Context) error {
	response, err := uc.company.GetInfo(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) UpdateColumns(c *web.Context) error {
	var request company.UpdateRequest

	if err := c.BindFunc(&request, "Name"); err != nil {
		return c.RespondError(err)
	}

	if err := uc.company.UpdateColumns(c.Ctx, request); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}
