package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/payment"
	"github.com/trezcool/shule/core/user"
)

type paymentApi struct {
	deps ServerDeps
}

func registerPaymentAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := paymentApi{deps: deps}

	pg := g.Group("/payments", jwt)
	pg.POST("", api.record)
	pg.GET("", api.query, roleMiddleware(user.RoleTeacher))
}

// Handlers

func (api *paymentApi) record(ctx echo.Context) error {
	var data payment.NewPayment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPayment")
	}
	if err := api.deps.Validate.Struct(&data); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	usr, err := api.deps.UserSvc.GetByID(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "finding user by ID")
	}

	pmt, err := api.deps.PaymentSvc.Record(ctx.Request().Context(), data, usr)
	if err != nil {
		return errors.Wrap(err, "recording payment")
	}
	return ctx.JSON(http.StatusCreated, pmt)
}

func (api *paymentApi) query(ctx echo.Context) error {
	payments, err := api.deps.PaymentSvc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying payments")
	}
	if payments == nil {
		payments = []payment.Payment{}
	}
	return ctx.JSON(http.StatusOK, payments)
}
