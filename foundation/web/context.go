package web

import (
	"context"
	"net/http"
	"reflect"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Context carries the gin context plus the request scoped context.Context
// that middleware may enrich (claims, deadlines).
type Context struct {
	*gin.Context
	Ctx context.Context

	paramErrs []FieldError
	queryErrs []FieldError
}

// Respond sends data to the client as JSON.
func (c *Context) Respond(data interface{}, status int) error {
	if status == http.StatusNoContent {
		c.Status(status)
		return nil
	}

	c.JSON(status, data)

	return nil
}

// RespondError sends an error response back to the client. Errors that are
// not *Error are answered with 500 and returned so the App logs them.
func (c *Context) RespondError(err error) error {
	var webErr *Error
	if errors.As(err, &webErr) {
		c.JSON(webErr.Status, ErrorResponse{
			Error:  webErr.Err.Error(),
			Fields: webErr.Fields,
			Status: false,
		})
		return nil
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:  http.StatusText(http.StatusInternalServerError),
		Status: false,
	})

	return err
}

// RespondFile streams a generated document as an attachment.
func (c *Context) RespondFile(name, contentType string, body []byte) error {
	c.Header("Content-Disposition", "attachment; filename=\""+name+"\"")
	c.Data(http.StatusOK, contentType, body)

	return nil
}

// BindFunc decodes the request into dest and checks that the listed fields
// are set.
func (c *Context) BindFunc(dest interface{}, required ...string) error {
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBind(dest); err != nil {
			return NewRequestError(errors.Wrap(err, "binding request"), http.StatusBadRequest)
		}
	}

	if fields := Required(dest, required...); len(fields) > 0 {
		return &Error{
			Err:    errors.New("field validation error"),
			Status: http.StatusBadRequest,
			Fields: fields,
		}
	}

	return nil
}

// GetParam returns the path parameter converted to kind. Conversion failures
// are collected and reported by ValidParam.
func (c *Context) GetParam(kind reflect.Kind, key string) interface{} {
	value := c.Param(key)

	switch kind {
	case reflect.Int:
		i, err := strconv.Atoi(value)
		if err != nil {
			c.paramErrs = append(c.paramErrs, FieldError{Field: key, Error: "must be an integer"})
		}
		return i
	default:
		if value == "" {
			c.paramErrs = append(c.paramErrs, FieldError{Field: key, Error: "required"})
		}
		return value
	}
}

// GetParamUUID returns the path parameter parsed as a uuid.
func (c *Context) GetParamUUID(key string) uuid.UUID {
	id, err := uuid.Parse(c.Param(key))
	if err != nil {
		c.paramErrs = append(c.paramErrs, FieldError{Field: key, Error: "must be a uuid"})
	}

	return id
}

// GetQueryFunc returns a pointer to the query value converted to kind, or nil
// when the query key is absent.
func (c *Context) GetQueryFunc(kind reflect.Kind, key string) interface{} {
	value, ok := c.GetQuery(key)
	if !ok || value == "" {
		return nil
	}

	switch kind {
	case reflect.Int:
		i, err := strconv.Atoi(value)
		if err != nil {
			c.queryErrs = append(c.queryErrs, FieldError{Field: key, Error: "must be an integer"})
			return nil
		}
		return &i
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			c.queryErrs = append(c.queryErrs, FieldError{Field: key, Error: "must be a boolean"})
			return nil
		}
		return &b
	default:
		return &value
	}
}

func (c *Context) ValidParam() error {
	if len(c.paramErrs) == 0 {
		return nil
	}

	return &Error{
		Err:    errors.New("invalid path parameters"),
		Status: http.StatusBadRequest,
		Fields: c.paramErrs,
	}
}

func (c *Context) ValidQuery() error {
	if len(c.queryErrs) == 0 {
		return nil
	}

	return &Error{
		Err:    errors.New("invalid query parameters"),
		Status: http.StatusBadRequest,
		Fields: c.queryErrs,
	}
}
