package community

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/student"
)

var ErrPodNotFound = errors.New("pod not found")

type (
	Repository interface {
		CreateJournal(ctx context.Context, j Journal, exec ...core.DBExecutor) (Journal, error)
		QueryJournalsByStudent(ctx context.Context, studentID string, exec ...core.DBExecutor) ([]Journal, error)

		CreatePost(ctx context.Context, p Post, exec ...core.DBExecutor) (Post, error)
		QueryAllPosts(ctx context.Context, exec ...core.DBExecutor) ([]Post, error)

		CreatePod(ctx context.Context, pod Pod, exec ...core.DBExecutor) (Pod, error)
		QueryAllPods(ctx context.Context, exec ...core.DBExecutor) ([]Pod, error)
		GetPod(ctx context.Context, id string, exec ...core.DBExecutor) (Pod, error)
		// AddPodMember is idempotent: joining twice is a no-op.
		AddPodMember(ctx context.Context, m PodMember, exec ...core.DBExecutor) error
		CreatePodPost(ctx context.Context, pp PodPost, exec ...core.DBExecutor) (PodPost, error)
		QueryPodPosts(ctx context.Context, podID string, exec ...core.DBExecutor) ([]PodPost, error)
	}

	Service interface {
		CreateJournal(ctx context.Context, callerUserID string, nj NewJournal) (Journal, error)
		QueryOwnJournals(ctx context.Context, callerUserID string) ([]Journal, error)

		CreatePost(ctx context.Context, authorID string, np NewPost) (Post, error)
		QueryPosts(ctx context.Context) ([]Post, error)

		CreatePod(ctx context.Context, createdBy string, np NewPod) (Pod, error)
		QueryPods(ctx context.Context) ([]Pod, error)
		JoinPod(ctx context.Context, podID, userID string) error
		CreatePodPost(ctx context.Context, podID, authorID string, npp NewPodPost) (PodPost, error)
		QueryPodPosts(ctx context.Context, podID string) ([]PodPost, error)
	}

	service struct {
		repo    Repository
		stdRepo student.Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, stdRepo student.Repository) Service {
	return &service{repo: repo, stdRepo: stdRepo}
}

func (svc *service) CreateJournal(ctx context.Context, callerUserID string, nj NewJournal) (Journal, error) {
	std, err := svc.stdRepo.GetStudent(ctx, student.GetFilter{UserID: callerUserID})
	if err != nil {
		return Journal{}, err
	}
	return svc.repo.CreateJournal(ctx, Journal{
		StudentID: std.ID,
		Title:     core.CleanString(nj.Title),
		Body:      nj.Body,
		CreatedAt: time.Now().UTC(),
	})
}

func (svc *service) QueryOwnJournals(ctx context.Context, callerUserID string) ([]Journal, error) {
	std, err := svc.stdRepo.GetStudent(ctx, student.GetFilter{UserID: callerUserID})
	if err != nil {
		return nil, err
	}
	return svc.repo.QueryJournalsByStudent(ctx, std.ID)
}

func (svc *service) CreatePost(ctx context.Context, authorID string, np NewPost) (Post, error) {
	return svc.repo.CreatePost(ctx, Post{
		AuthorID:  authorID,
		Title:     core.CleanString(np.Title),
		Body:      np.Body,
		CreatedAt: time.Now().UTC(),
	})
}

func (svc *service) QueryPosts(ctx context.Context) ([]Post, error) {
	return svc.repo.QueryAllPosts(ctx)
}

func (svc *service) CreatePod(ctx context.Context, createdBy string, np NewPod) (Pod, error) {
	pod, err := svc.repo.CreatePod(ctx, Pod{
		Name:        core.CleanString(np.Name),
		Description: null.NewString(np.Description, np.Description != ""),
		CreatedBy:   createdBy,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return Pod{}, err
	}
	// the creator is a member
	err = svc.repo.AddPodMember(ctx, PodMember{PodID: pod.ID, UserID: createdBy, JoinedAt: time.Now().UTC()})
	return pod, err
}

func (svc *service) QueryPods(ctx context.Context) ([]Pod, error) {
	return svc.repo.QueryAllPods(ctx)
}

func (svc *service) JoinPod(ctx context.Context, podID, userID string) error {
	if _, err := svc.repo.GetPod(ctx, podID); err != nil {
		return err
	}
	return svc.repo.AddPodMember(ctx, PodMember{PodID: podID, UserID: userID, JoinedAt: time.Now().UTC()})
}

func (svc *service) CreatePodPost(ctx context.Context, podID, authorID string, npp NewPodPost) (PodPost, error) {
	if _, err := svc.repo.GetPod(ctx, podID); err != nil {
		return PodPost{}, err
	}
	return svc.repo.CreatePodPost(ctx, PodPost{
		PodID:     podID,
		AuthorID:  authorID,
		Body:      npp.Body,
		CreatedAt: time.Now().UTC(),
	})
}

func (svc *service) QueryPodPosts(ctx context.Context, podID string) ([]PodPost, error) {
	return svc.repo.QueryPodPosts(ctx, podID)
}
