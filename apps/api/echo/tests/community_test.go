package tests

import (
	"net/http"
	"testing"

	"github.com/trezcool/shule/core/community"
	"github.com/trezcool/shule/core/user"
	testutil "github.com/trezcool/shule/tests"
)

func Test_communityApi_posts(t *testing.T) {
	testutil.ResetDB(t, db)

	teacher := testutil.CreateUser(t, usrRepo, "Teacher", "teacher@test.cd", "S3cretPass!", user.RoleTeacher)
	token := getToken(t, teacher)

	req, rec := newAuthRequest(http.MethodPost, "/v1/posts", token,
		[]byte(`{"title":"Karibu","body":"Welcome to the new term."}`))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: code = %v; body %s", rec.Code, rec.Body.String())
	}
	var post community.Post
	decodeBody(t, rec, &post)
	if post.AuthorID != teacher.ID {
		t.Errorf("authorID = %q; want %q", post.AuthorID, teacher.ID)
	}

	req, rec = newAuthRequest(http.MethodGet, "/v1/posts", token)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: code = %v; body %s", rec.Code, rec.Body.String())
	}
	var posts []community.Post
	decodeBody(t, rec, &posts)
	if len(posts) != 1 {
		t.Fatalf("len(posts) = %d; want 1", len(posts))
	}
	if posts[0].AuthorName != teacher.Name {
		t.Errorf("authorName = %q; want %q", posts[0].AuthorName, teacher.Name)
	}
}

func Test_communityApi_pods(t *testing.T) {
	testutil.ResetDB(t, db)

	creator := testutil.CreateUser(t, usrRepo, "Creator", "creator@test.cd", "S3cretPass!", user.RoleStudent)
	member := testutil.CreateUser(t, usrRepo, "Member", "member@test.cd", "S3cretPass!", user.RoleStudent)

	req, rec := newAuthRequest(http.MethodPost, "/v1/pods", getToken(t, creator),
		[]byte(`{"name":"Math Club","description":"Problem solving"}`))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: code = %v; body %s", rec.Code, rec.Body.String())
	}
	var pod community.Pod
	decodeBody(t, rec, &pod)

	// the creator is already a member
	var count int
	if err := db.Get(&count, `SELECT COUNT(*) FROM pod_members WHERE pod_id = $1`, pod.ID); err != nil {
		t.Fatalf("counting members: %v", err)
	}
	if count != 1 {
		t.Errorf("member count = %d; want 1", count)
	}

	// joining twice is a no-op
	for i := 0; i < 2; i++ {
		req, rec = newAuthRequest(http.MethodPost, "/v1/pods/"+pod.ID+"/join", getToken(t, member))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("join #%d: code = %v; body %s", i+1, rec.Code, rec.Body.String())
		}
	}
	if err := db.Get(&count, `SELECT COUNT(*) FROM pod_members WHERE pod_id = $1`, pod.ID); err != nil {
		t.Fatalf("counting members: %v", err)
	}
	if count != 2 {
		t.Errorf("member count = %d; want 2", count)
	}

	// unknown pod is a 404
	req, rec = newAuthRequest(http.MethodPost, "/v1/pods/deadbeef/join", getToken(t, member))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("join unknown: code = %v; want %v", rec.Code, http.StatusNotFound)
	}

	// pod posts
	req, rec = newAuthRequest(http.MethodPost, "/v1/pods/"+pod.ID+"/posts", getToken(t, member),
		[]byte(`{"body":"First meeting on Friday."}`))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("pod post: code = %v; body %s", rec.Code, rec.Body.String())
	}

	req, rec = newAuthRequest(http.MethodGet, "/v1/pods/"+pod.ID+"/posts", getToken(t, creator))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("list pod posts: code = %v; body %s", rec.Code, rec.Body.String())
	}
	var podPosts []community.PodPost
	decodeBody(t, rec, &podPosts)
	if len(podPosts) != 1 || podPosts[0].AuthorName != member.Name {
		t.Errorf("unexpected pod posts: %+v", podPosts)
	}
}

func Test_communityApi_journals(t *testing.T) {
	testutil.ResetDB(t, db)

	teacher := testutil.CreateUser(t, usrRepo, "Teacher", "teacher@test.cd", "S3cretPass!", user.RoleTeacher)
	aliceUsr := testutil.CreateUser(t, usrRepo, "Alice", "alice@test.cd", "S3cretPass!", user.RoleStudent)
	testutil.CreateStudent(t, stdRepo, aliceUsr)
	bobUsr := testutil.CreateUser(t, usrRepo, "Bob", "bob@test.cd", "S3cretPass!", user.RoleStudent)
	testutil.CreateStudent(t, stdRepo, bobUsr)

	body := []byte(`{"title":"Day one","body":"Learned fractions today."}`)

	t.Run("teacher cannot journal", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/journals", getToken(t, teacher), body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Errorf("code = %v; want %v", rec.Code, http.StatusForbidden)
		}
	})

	t.Run("journals are private to their author", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/journals", getToken(t, aliceUsr), body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create: code = %v; body %s", rec.Code, rec.Body.String())
		}

		req, rec = newAuthRequest(http.MethodGet, "/v1/journals", getToken(t, aliceUsr))
		app.ServeHTTP(rec, req)
		var journals []community.Journal
		decodeBody(t, rec, &journals)
		if len(journals) != 1 {
			t.Errorf("alice len(journals) = %d; want 1", len(journals))
		}

		req, rec = newAuthRequest(http.MethodGet, "/v1/journals", getToken(t, bobUsr))
		app.ServeHTTP(rec, req)
		decodeBody(t, rec, &journals)
		if len(journals) != 0 {
			t.Errorf("bob len(journals) = %d; want 0", len(journals))
		}
	})
}
