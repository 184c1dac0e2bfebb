package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/community"
)

type communityRepository struct {
	exec core.DBExecutor
}

var _ community.Repository = (*communityRepository)(nil) // interface compliance check

func NewCommunityRepository(exec core.DBExecutor) *communityRepository {
	return &communityRepository{exec: exec}
}

func (repo communityRepository) getExec(svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 {
		return svcExec[0]
	}
	return repo.exec
}

func (repo communityRepository) CreateJournal(ctx context.Context, j community.Journal, exec ...core.DBExecutor) (community.Journal, error) {
	j.ID = uuid.New().String()
	_, err := repo.getExec(exec).ExecContext(ctx,
		`INSERT INTO journals (id, student_id, title, body, created_at) VALUES ($1, $2, $3, $4, $5)`,
		j.ID, j.StudentID, j.Title, j.Body, j.CreatedAt)
	if err != nil {
		return community.Journal{}, errors.Wrap(err, "inserting journal")
	}
	return j, nil
}

func (repo communityRepository) QueryJournalsByStudent(ctx context.Context, studentID string, exec ...core.DBExecutor) ([]community.Journal, error) {
	var journals []community.Journal
	err := repo.getExec(exec).SelectContext(ctx, &journals,
		`SELECT * FROM journals WHERE student_id = $1 ORDER BY created_at DESC`, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "querying journals")
	}
	return journals, nil
}

func (repo communityRepository) CreatePost(ctx context.Context, p community.Post, exec ...core.DBExecutor) (community.Post, error) {
	p.ID = uuid.New().String()
	_, err := repo.getExec(exec).ExecContext(ctx,
		`INSERT INTO posts (id, author_id, title, body, created_at) VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.AuthorID, p.Title, p.Body, p.CreatedAt)
	if err != nil {
		return community.Post{}, errors.Wrap(err, "inserting post")
	}
	return p, nil
}

func (repo communityRepository) QueryAllPosts(ctx context.Context, exec ...core.DBExecutor) ([]community.Post, error) {
	var posts []community.Post
	err := repo.getExec(exec).SelectContext(ctx, &posts,
		`SELECT p.*, u.name AS author_name
		 FROM posts p INNER JOIN users u ON u.id = p.author_id
		 ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "querying posts")
	}
	return posts, nil
}

func (repo communityRepository) CreatePod(ctx context.Context, pod community.Pod, exec ...core.DBExecutor) (community.Pod, error) {
	pod.ID = uuid.New().String()
	_, err := repo.getExec(exec).ExecContext(ctx,
		`INSERT INTO pods (id, name, description, created_by, created_at) VALUES ($1, $2, $3, $4, $5)`,
		pod.ID, pod.Name, pod.Description, pod.CreatedBy, pod.CreatedAt)
	if err != nil {
		return community.Pod{}, errors.Wrap(err, "inserting pod")
	}
	return pod, nil
}

func (repo communityRepository) QueryAllPods(ctx context.Context, exec ...core.DBExecutor) ([]community.Pod, error) {
	var pods []community.Pod
	err := repo.getExec(exec).SelectContext(ctx, &pods,
		`SELECT * FROM pods ORDER BY created_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "querying pods")
	}
	return pods, nil
}

func (repo communityRepository) GetPod(ctx context.Context, id string, exec ...core.DBExecutor) (community.Pod, error) {
	var pod community.Pod
	err := repo.getExec(exec).GetContext(ctx, &pod, `SELECT * FROM pods WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return community.Pod{}, community.ErrPodNotFound
		}
		return community.Pod{}, errors.Wrap(err, "finding pod")
	}
	return pod, nil
}

func (repo communityRepository) AddPodMember(ctx context.Context, m community.PodMember, exec ...core.DBExecutor) error {
	_, err := repo.getExec(exec).ExecContext(ctx,
		`INSERT INTO pod_members (pod_id, user_id, joined_at) VALUES ($1, $2, $3)
		 ON CONFLICT (pod_id, user_id) DO NOTHING`,
		m.PodID, m.UserID, m.JoinedAt)
	return errors.Wrap(err, "adding pod member")
}

func (repo communityRepository) CreatePodPost(ctx context.Context, pp community.PodPost, exec ...core.DBExecutor) (community.PodPost, error) {
	pp.ID = uuid.New().String()
	_, err := repo.getExec(exec).ExecContext(ctx,
		`INSERT INTO pod_posts (id, pod_id, author_id, body, created_at) VALUES ($1, $2, $3, $4, $5)`,
		pp.ID, pp.PodID, pp.AuthorID, pp.Body, pp.CreatedAt)
	if err != nil {
		return community.PodPost{}, errors.Wrap(err, "inserting pod post")
	}
	return pp, nil
}

func (repo communityRepository) QueryPodPosts(ctx context.Context, podID string, exec ...core.DBExecutor) ([]community.PodPost, error) {
	var posts []community.PodPost
	err := repo.getExec(exec).SelectContext(ctx, &posts,
		`SELECT pp.*, u.name AS author_name
		 FROM pod_posts pp INNER JOIN users u ON u.id = pp.author_id
		 WHERE pp.pod_id = $1
		 ORDER BY pp.created_at`, podID)
	if err != nil {
		return nil, errors.Wrap(err, "querying pod posts")
	}
	return posts, nil
}
