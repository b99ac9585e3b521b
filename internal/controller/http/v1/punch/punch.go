package punch

import (
	"fmt"
	"net/http"
	"reflect"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"timeclock/backend/foundation/web"
	"timeclock/backend/internal/auth"
	"timeclock/backend/internal/repository/postgres/punch"
	"timeclock/backend/internal/service/report"
)

type Controller struct {
	punch Punch
}

func NewController(punch Punch) *Controller {
	return &Controller{punch: punch}
}

func (uc Controller) Mark(c *web.Context) error {
	punchType := c.GetParam(reflect.String, "type").(string)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.punch.Mark(c.Ctx, punchType)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusCreated)
}

// GetMyHistory is GetHistory for the caller.
func (uc Controller) GetMyHistory(c *web.Context) error {
	claims, err := auth.GetClaims(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return uc.history(c, claims.UserId)
}

func (uc Controller) GetHistory(c *web.Context) error {
	id := c.GetParamUUID("id")

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	return uc.history(c, id)
}

func (uc Controller) history(c *web.Context, workerID uuid.UUID) error {
	var filter punch.Filter

	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if offset, ok := c.GetQueryFunc(reflect.Int, "offset").(*int); ok {
		filter.Offset = offset
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := uc.punch.GetHistory(c.Ctx, workerID, filter)
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

func (uc Controller) GetDailyHours(c *web.Context) error {
	id := c.GetParamUUID("id")

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	list, err := uc.punch.GetDailyHours(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   list,
		"status": true,
	}, http.StatusOK)
}

// ExportHours renders the daily hours as csv, xlsx or pdf.
func (uc Controller) ExportHours(c *web.Context) error {
	id := c.GetParamUUID("id")

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var raw string
	if format, ok := c.GetQueryFunc(reflect.String, "format").(*string); ok {
		raw = *format
	}

	format, ok := report.ParseFormat(raw)
	if !ok {
		return c.RespondError(&web.Error{
			Err:    errors.New("invalid query parameters"),
			Status: http.StatusBadRequest,
			Fields: []web.FieldError{{Field: "format", Error: "must be one of csv, xlsx, pdf"}},
		})
	}

	days, err := uc.punch.GetDaySummaries(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	body, err := report.Hours(format, "Worked hours", days)
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "rendering report"), http.StatusInternalServerError))
	}

	return c.RespondFile(fmt.Sprintf("hours_%s.%s", id, format), format.ContentType(), body)
}

func (uc Controller) GetStatus(c *web.Context) error {
	id := c.GetParamUUID("id")

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.punch.GetStatus(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

// GetWeekly returns the raw punches of a week as csv.
func (uc Controller) GetWeekly(c *web.Context) error {
	id := c.GetParamUUID("id")

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	week, ok := c.GetQueryFunc(reflect.String, "week").(*string)
	if !ok {
		return c.RespondError(&web.Error{
			Err:    errors.New("invalid query parameters"),
			Status: http.StatusBadRequest,
			Fields: []web.FieldError{{Field: "week", Error: "required"}},
		})
	}

	weekStart, err := date.ParseDate(*week)
	if err != nil {
		return c.RespondError(&web.Error{
			Err:    errors.Wrap(err, "parsing week"),
			Status: http.StatusBadRequest,
			Fields: []web.FieldError{{Field: "week", Error: "must be YYYY-MM-DD"}},
		})
	}

	events, err := uc.punch.GetWeeklyEvents(c.Ctx, id, weekStart)
	if err != nil {
		return c.RespondError(err)
	}

	body, err := report.EventsCSV(events)
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "rendering report"), http.StatusInternalServerError))
	}

	return c.RespondFile(fmt.Sprintf("weekly_%s.csv", weekStart), report.CSV.ContentType(), body)
}

func (uc Controller) GetBoard(c *web.Context) error {
	list, err := uc.punch.GetBoard(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   list,
		"status": true,
	}, http.StatusOK)
}
