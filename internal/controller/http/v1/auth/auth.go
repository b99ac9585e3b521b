package auth

import (
	"net/http"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"timeclock/backend/foundation/web"
	"timeclock/backend/internal/auth"
	"timeclock/backend/internal/repository/postgres/worker"
)

type Controller struct {
	worker Worker
	auth   *auth.Auth
}

func NewController(worker Worker, a *auth.Auth) *Controller {
	return &Controller{worker: worker, auth: a}
}

func (uc Controller) SignIn(c *web.Context) error {
	var data worker.SignInRequest

	err := c.BindFunc(&data, "Email", "Password")
	if err != nil {
		return c.RespondError(err)
	}

	detail, err := uc.worker.GetByEmail(c.Ctx, data.Email)
	if err != nil {
		return c.RespondError(err)
	}

	if detail.Password == nil || detail.Role == nil {
		return c.RespondError(web.NewRequestError(errors.New("worker cannot sign in"), http.StatusUnauthorized))
	}

	if err = bcrypt.CompareHashAndPassword([]byte(*detail.Password), []byte(data.Password)); err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "incorrect password"), http.StatusUnauthorized))
	}

	accessToken, err := uc.auth.GenerateToken(detail.ID, detail.CompanyID, *detail.Role)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusInternalServerError))
	}

	return c.Respond(map[string]interface{}{
		"status": true,
		"data": map[string]interface{}{
			"access_token": accessToken,
			"token_type":   "bearer",
			"worker":       detail,
		},
	}, http.StatusOK)
}
