package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/academics"
	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/core/user"
)

type academicsApi struct {
	deps ServerDeps
}

func registerAcademicsAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := academicsApi{deps: deps}
	staff := roleMiddleware(user.RoleTeacher)

	sg := g.Group("/subjects", jwt)
	sg.GET("", api.querySubjects)
	sg.POST("", api.createSubject, roleMiddleware())

	cg := g.Group("/classes", jwt)
	cg.GET("", api.queryClasses)
	cg.POST("", api.createClass, roleMiddleware())

	eg := g.Group("/exams", jwt)
	eg.GET("", api.queryExams)
	eg.POST("", api.createExam, staff)
	eg.GET("/:id/questions", api.queryQuestions)
	eg.POST("/:id/questions", api.createQuestion, staff)
	eg.POST("/:id/submit", api.submit, roleMiddleware(user.RoleStudent))

	g.POST("/results/:id/grade", api.grade, jwt, staff)
	g.POST("/semester-results", api.recordSemesterResult, jwt, staff)
	g.GET("/export/student/:id/report", api.studentReport, jwt, staff)
}

// Handlers

func (api *academicsApi) createSubject(ctx echo.Context) error {
	var data academics.NewSubject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubject")
	}
	if err := api.deps.Validate.Struct(&data); err != nil {
		return err
	}

	sub, err := api.deps.AcademicsSvc.CreateSubject(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating subject")
	}
	return ctx.JSON(http.StatusCreated, sub)
}

func (api *academicsApi) querySubjects(ctx echo.Context) error {
	subjects, err := api.deps.AcademicsSvc.QuerySubjects(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying subjects")
	}
	if subjects == nil {
		subjects = []academics.Subject{}
	}
	return ctx.JSON(http.StatusOK, subjects)
}

func (api *academicsApi) createClass(ctx echo.Context) error {
	var data academics.NewClass
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewClass")
	}
	if err := api.deps.Validate.Struct(&data); err != nil {
		return err
	}

	cls, err := api.deps.AcademicsSvc.CreateClass(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating class")
	}
	return ctx.JSON(http.StatusCreated, cls)
}

func (api *academicsApi) queryClasses(ctx echo.Context) error {
	classes, err := api.deps.AcademicsSvc.QueryClasses(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying classes")
	}
	if classes == nil {
		classes = []academics.Class{}
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (api *academicsApi) createExam(ctx echo.Context) error {
	var data academics.NewExam
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewExam")
	}
	if err := api.deps.Validate.Struct(&data); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	exam, err := api.deps.AcademicsSvc.CreateExam(ctx.Request().Context(), data, claims.Subject)
	if err != nil {
		return errors.Wrap(err, "creating exam")
	}
	return ctx.JSON(http.StatusCreated, exam)
}

func (api *academicsApi) queryExams(ctx echo.Context) error {
	exams, err := api.deps.AcademicsSvc.QueryExams(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying exams")
	}
	if exams == nil {
		exams = []academics.Exam{}
	}
	return ctx.JSON(http.StatusOK, exams)
}

func (api *academicsApi) queryQuestions(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	questions, err := api.deps.AcademicsSvc.QueryQuestions(ctx.Request().Context(), ctx.Param("id"), claims.IsStaff())
	if err != nil {
		return errors.Wrap(err, "querying questions")
	}
	if questions == nil {
		questions = []academics.Question{}
	}
	return ctx.JSON(http.StatusOK, questions)
}

func (api *academicsApi) createQuestion(ctx echo.Context) error {
	var data academics.NewQuestion
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewQuestion")
	}
	if err := api.deps.Validate.Struct(&data); err != nil {
		return err
	}

	q, err := api.deps.AcademicsSvc.CreateQuestion(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == academics.ErrExamNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "creating question")
	}
	return ctx.JSON(http.StatusCreated, q)
}

func (api *academicsApi) submit(ctx echo.Context) error {
	var data academics.Submission
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Submission")
	}
	if err := api.deps.Validate.Struct(&data); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	res, err := api.deps.AcademicsSvc.Submit(ctx.Request().Context(), claims.Subject, ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == academics.ErrStudentProfileRequired {
			return echo.NewHTTPError(http.StatusForbidden, academics.ErrStudentProfileRequired.Error())
		}
		return errors.Wrap(err, "submitting exam")
	}
	return ctx.JSON(http.StatusCreated, res)
}

func (api *academicsApi) grade(ctx echo.Context) error {
	var data academics.GradeInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to GradeInput")
	}
	if err := api.deps.Validate.Struct(&data); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	res, err := api.deps.AcademicsSvc.Grade(ctx.Request().Context(), ctx.Param("id"), data, claims.Subject)
	if err != nil {
		if errors.Cause(err) == academics.ErrResultNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "grading result")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *academicsApi) recordSemesterResult(ctx echo.Context) error {
	var data academics.NewSemesterResult
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSemesterResult")
	}
	if err := api.deps.Validate.Struct(&data); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	sr, err := api.deps.AcademicsSvc.RecordSemesterResult(ctx.Request().Context(), data, claims.Subject)
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "recording semester result")
	}
	return ctx.JSON(http.StatusCreated, sr)
}

func (api *academicsApi) studentReport(ctx echo.Context) error {
	report, err := api.deps.AcademicsSvc.StudentReport(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "building student report")
	}
	return ctx.JSON(http.StatusOK, report)
}
