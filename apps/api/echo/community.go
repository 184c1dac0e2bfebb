package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/community"
	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/core/user"
)

type communityApi struct {
	deps ServerDeps
}

func registerCommunityAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := communityApi{deps: deps}

	pg := g.Group("/posts", jwt)
	pg.GET("", api.queryPosts)
	pg.POST("", api.createPost)

	podg := g.Group("/pods", jwt)
	podg.GET("", api.queryPods)
	podg.POST("", api.createPod)
	podg.POST("/:id/join", api.joinPod)
	podg.GET("/:id/posts", api.queryPodPosts)
	podg.POST("/:id/posts", api.createPodPost)

	jg := g.Group("/journals", jwt, roleMiddleware(user.RoleStudent))
	jg.GET("", api.queryOwnJournals)
	jg.POST("", api.createJournal)
}

// Handlers

func (api *communityApi) createPost(ctx echo.Context) error {
	var data community.NewPost
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPost")
	}
	if err := api.deps.Validate.Struct(&data); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	post, err := api.deps.CommunitySvc.CreatePost(ctx.Request().Context(), claims.Subject, data)
	if err != nil {
		return errors.Wrap(err, "creating post")
	}
	return ctx.JSON(http.StatusCreated, post)
}

func (api *communityApi) queryPosts(ctx echo.Context) error {
	posts, err := api.deps.CommunitySvc.QueryPosts(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying posts")
	}
	if posts == nil {
		posts = []community.Post{}
	}
	return ctx.JSON(http.StatusOK, posts)
}

func (api *communityApi) createPod(ctx echo.Context) error {
	var data community.NewPod
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPod")
	}
	if err := api.deps.Validate.Struct(&data); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	pod, err := api.deps.CommunitySvc.CreatePod(ctx.Request().Context(), claims.Subject, data)
	if err != nil {
		return errors.Wrap(err, "creating pod")
	}
	return ctx.JSON(http.StatusCreated, pod)
}

func (api *communityApi) queryPods(ctx echo.Context) error {
	pods, err := api.deps.CommunitySvc.QueryPods(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying pods")
	}
	if pods == nil {
		pods = []community.Pod{}
	}
	return ctx.JSON(http.StatusOK, pods)
}

func (api *communityApi) joinPod(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	if err := api.deps.CommunitySvc.JoinPod(ctx.Request().Context(), ctx.Param("id"), claims.Subject); err != nil {
		if errors.Cause(err) == community.ErrPodNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "joining pod")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *communityApi) createPodPost(ctx echo.Context) error {
	var data community.NewPodPost
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPodPost")
	}
	if err := api.deps.Validate.Struct(&data); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	post, err := api.deps.CommunitySvc.CreatePodPost(ctx.Request().Context(), ctx.Param("id"), claims.Subject, data)
	if err != nil {
		if errors.Cause(err) == community.ErrPodNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "creating pod post")
	}
	return ctx.JSON(http.StatusCreated, post)
}

func (api *communityApi) queryPodPosts(ctx echo.Context) error {
	posts, err := api.deps.CommunitySvc.QueryPodPosts(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying pod posts")
	}
	if posts == nil {
		posts = []community.PodPost{}
	}
	return ctx.JSON(http.StatusOK, posts)
}

func (api *communityApi) createJournal(ctx echo.Context) error {
	var data community.NewJournal
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewJournal")
	}
	if err := api.deps.Validate.Struct(&data); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	j, err := api.deps.CommunitySvc.CreateJournal(ctx.Request().Context(), claims.Subject, data)
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return errHttpForbidden
		}
		return errors.Wrap(err, "creating journal")
	}
	return ctx.JSON(http.StatusCreated, j)
}

func (api *communityApi) queryOwnJournals(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	journals, err := api.deps.CommunitySvc.QueryOwnJournals(ctx.Request().Context(), claims.Subject)
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return errHttpForbidden
		}
		return errors.Wrap(err, "querying journals")
	}
	if journals == nil {
		journals = []community.Journal{}
	}
	return ctx.JSON(http.StatusOK, journals)
}
