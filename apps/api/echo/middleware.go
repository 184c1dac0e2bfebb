package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/student"
)

var contextStudentKey = "student"

// roleMiddleware only lets callers holding any of the given roles through.
// Admins always pass.
func roleMiddleware(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			if claims.IsAdmin() {
				return next(ctx)
			}
			for _, role := range roles {
				if claims.Role == role {
					return next(ctx)
				}
			}
			return errHttpForbidden
		}
	}
}

// studentSelfOrStaffMiddleware guards a student detail route: staff can read
// any profile, a student caller only their own. The resolved Student is set
// on the context for the handler.
func studentSelfOrStaffMiddleware(svc student.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}

			std, err := svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
			if err != nil {
				if errors.Cause(err) == student.ErrNotFound {
					return errHttpNotFound
				}
				return errors.Wrap(err, "finding student by ID")
			}

			if !claims.IsStaff() && std.UserID != claims.Subject {
				return errHttpForbidden
			}

			ctx.Set(contextStudentKey, std)
			return next(ctx)
		}
	}
}
