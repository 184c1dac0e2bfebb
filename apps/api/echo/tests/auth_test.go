package tests

import (
	"context"
	"net/http"
	"testing"

	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/core/user"
	testutil "github.com/trezcool/shule/tests"
)

func Test_authApi_register(t *testing.T) {
	testutil.ResetDB(t, db)

	testutil.CreateUser(t, usrRepo, "Taken", "taken@test.cd", "S3cretPass!", user.RoleStudent)

	tests := []httpTest{
		{
			name:     "empty body fails",
			body:     []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"name":"this field is required","email":"this field is required","password":"this field is required"}`),
		},
		{
			name:     "invalid email fails",
			body:     []byte(`{"name":"Jo","email":"nope","password":"S3cretPass!"}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"email":"email must be a valid email address"}`),
		},
		{
			name:     "short password fails",
			body:     []byte(`{"name":"Jo","email":"jo@test.cd","password":"nope"}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "duplicate email conflicts",
			body:     []byte(`{"name":"Copy Cat","email":"taken@test.cd","password":"S3cretPass!"}`),
			wantCode: http.StatusConflict,
			wantData: []byte(`{"error":"a user with this email already exists"}`),
		},
		{
			name:     "default role is student",
			body:     []byte(`{"name":"Amani Juma","email":"amani@test.cd","password":"S3cretPass!"}`),
			wantCode: http.StatusCreated,
		},
		{
			name:     "teacher role skips profile",
			body:     []byte(`{"name":"Mwalimu","email":"mwalimu@test.cd","password":"S3cretPass!","role":"teacher"}`),
			wantCode: http.StatusCreated,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/auth/register", tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantData != nil {
				checkCodeAndData(t, tt, rec)
				return
			}
			if rec.Code != tt.wantCode {
				t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
			}
		})
	}
}

// a student registration creates exactly one profile with a usable student number
func Test_authApi_register_studentProfile(t *testing.T) {
	testutil.ResetDB(t, db)
	ctx := context.Background()

	req, rec := newRequest(http.MethodPost, "/v1/auth/register",
		[]byte(`{"name":"Neema Joseph","email":"neema@test.cd","password":"S3cretPass!","role":"student"}`))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: code = %v; body %s", rec.Code, rec.Body.String())
	}

	var res struct {
		Token string    `json:"token"`
		User  user.User `json:"user"`
	}
	decodeBody(t, rec, &res)
	usr := res.User
	if usr.Role != user.RoleStudent {
		t.Errorf("role = %q; want %q", usr.Role, user.RoleStudent)
	}

	// the returned token is a usable session
	if res.Token == "" {
		t.Fatal("register did not return a session token")
	}
	req, rec = newAuthRequest(http.MethodGet, "/v1/me", res.Token)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("GET /me with register token: code = %v; body %s", rec.Code, rec.Body.String())
	}

	std, err := stdRepo.GetStudent(ctx, student.GetFilter{UserID: usr.ID})
	if err != nil {
		t.Fatalf("GetStudent() failed: %v", err)
	}
	if std.StudentNumber == "" {
		t.Error("student number was not assigned")
	}

	var count int
	if err := db.Get(&count, `SELECT COUNT(*) FROM students WHERE user_id = $1`, usr.ID); err != nil {
		t.Fatalf("counting profiles: %v", err)
	}
	if count != 1 {
		t.Errorf("profile count = %d; want 1", count)
	}

	// a teacher registration creates none
	req, rec = newRequest(http.MethodPost, "/v1/auth/register",
		[]byte(`{"name":"Mwalimu","email":"mwalimu@test.cd","password":"S3cretPass!","role":"teacher"}`))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: code = %v; body %s", rec.Code, rec.Body.String())
	}
	var tres struct {
		User user.User `json:"user"`
	}
	decodeBody(t, rec, &tres)
	if _, err := stdRepo.GetStudent(ctx, student.GetFilter{UserID: tres.User.ID}); err != student.ErrNotFound {
		t.Errorf("GetStudent() err = %v; want ErrNotFound", err)
	}
}

func Test_authApi_login(t *testing.T) {
	testutil.ResetDB(t, db)

	usr := testutil.CreateUser(t, usrRepo, "Amani Juma", "amani@test.cd", "S3cretPass!", user.RoleStudent)

	invalidCreds := marchallObj(t, httpErr{Error: "invalid credentials"})
	tests := []httpTest{
		{
			name:     "empty body fails",
			body:     []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"email":"this field is required","password":"this field is required"}`),
		},
		{
			name:     "unknown email fails",
			body:     []byte(`{"email":"ghost@test.cd","password":"S3cretPass!"}`),
			wantCode: http.StatusUnauthorized,
			wantData: invalidCreds,
		},
		{
			name:     "wrong password fails the same way",
			body:     []byte(`{"email":"amani@test.cd","password":"WrongPass!"}`),
			wantCode: http.StatusUnauthorized,
			wantData: invalidCreds,
		},
		{
			name:     "valid credentials pass",
			body:     []byte(`{"email":"amani@test.cd","password":"S3cretPass!"}`),
			wantCode: http.StatusOK,
		},
		{
			name:     "email is case-insensitive",
			body:     []byte(`{"email":"AMANI@test.cd","password":"S3cretPass!"}`),
			wantCode: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/auth/login", tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantData != nil {
				checkCodeAndData(t, tt, rec)
				return
			}
			if rec.Code != tt.wantCode {
				t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
			}

			var resp struct {
				Token string    `json:"token"`
				User  user.User `json:"user"`
			}
			decodeBody(t, rec, &resp)
			if resp.Token == "" {
				t.Error("no token returned")
			}
			if resp.User.ID != usr.ID {
				t.Errorf("user.ID = %q; want %q", resp.User.ID, usr.ID)
			}
			if !resp.User.LastLogin.Valid {
				t.Error("lastLogin was not set")
			}
		})
	}
}

func Test_authApi_me(t *testing.T) {
	testutil.ResetDB(t, db)

	usr := testutil.CreateUser(t, usrRepo, "Amani Juma", "amani@test.cd", "S3cretPass!", user.RoleStudent)

	tests := []httpTest{
		{
			name:     "auth required",
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, errMissingToken),
		},
		{
			name:     "authed user gets own account",
			token:    getToken(t, usr),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, usr),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, "/v1/me", tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_authApi_passwordReset(t *testing.T) {
	testutil.ResetDB(t, db)

	testutil.CreateUser(t, usrRepo, "Amani Juma", "amani@test.cd", "S3cretPass!", user.RoleStudent)

	// the request endpoint never leaks whether the account exists
	for _, email := range []string{"amani@test.cd", "ghost@test.cd"} {
		req, rec := newRequest(http.MethodPost, "/v1/auth/password-reset", []byte(`{"email":"`+email+`"}`))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("request for %s: code = %v; want %v", email, rec.Code, http.StatusOK)
		}
	}

	// garbage uid/token is rejected
	req, rec := newRequest(http.MethodPost, "/v1/auth/password-reset-confirm",
		[]byte(`{"uid":"bogus","token":"bogus","password":"NewS3cret!","password_confirm":"NewS3cret!"}`))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("confirm: code = %v; want %v; body %s", rec.Code, http.StatusBadRequest, rec.Body.String())
	}
}
