package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/core/user"
)

var errStdNotFoundInCtx = errors.New("student object not found in echo.Context")

type studentApi struct {
	deps ServerDeps
}

func registerStudentAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := studentApi{deps: deps}

	sg := g.Group("/students", jwt)
	sg.GET("", api.query, roleMiddleware(user.RoleTeacher))
	sg.GET("/:id", api.retrieve, studentSelfOrStaffMiddleware(deps.StudentSvc))
}

// Handlers

func (api *studentApi) query(ctx echo.Context) error {
	students, err := api.deps.StudentSvc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	if students == nil {
		students = []student.Student{}
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	std, ok := ctx.Get(contextStudentKey).(student.Student)
	if !ok {
		return errors.Wrap(errStdNotFoundInCtx, "retrieving object from context")
	}
	return ctx.JSON(http.StatusOK, std)
}
