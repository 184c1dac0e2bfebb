package tests

import (
	"net/http"
	"testing"

	"github.com/trezcool/shule/core/user"
	testutil "github.com/trezcool/shule/tests"
)

func Test_studentApi_query(t *testing.T) {
	testutil.ResetDB(t, db)

	admin := testutil.CreateUser(t, usrRepo, "Admin", "admin@test.cd", "S3cretPass!", user.RoleAdmin)
	teacher := testutil.CreateUser(t, usrRepo, "Teacher", "teacher@test.cd", "S3cretPass!", user.RoleTeacher)
	stdUsr := testutil.CreateUser(t, usrRepo, "Student", "student@test.cd", "S3cretPass!", user.RoleStudent)
	std := testutil.CreateStudent(t, stdRepo, stdUsr)

	forbidden := marchallObj(t, httpErr{Error: "permission denied"})
	tests := []httpTest{
		{name: "auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "student cannot list", token: getToken(t, stdUsr), wantCode: http.StatusForbidden, wantData: forbidden},
		{name: "teacher can list", token: getToken(t, teacher), wantCode: http.StatusOK, wantData: marchallList(t, std)},
		{name: "admin overrides the gate", token: getToken(t, admin), wantCode: http.StatusOK, wantData: marchallList(t, std)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, "/v1/students", tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_studentApi_retrieve(t *testing.T) {
	testutil.ResetDB(t, db)

	admin := testutil.CreateUser(t, usrRepo, "Admin", "admin@test.cd", "S3cretPass!", user.RoleAdmin)
	teacher := testutil.CreateUser(t, usrRepo, "Teacher", "teacher@test.cd", "S3cretPass!", user.RoleTeacher)
	ownerUsr := testutil.CreateUser(t, usrRepo, "Owner", "owner@test.cd", "S3cretPass!", user.RoleStudent)
	owner := testutil.CreateStudent(t, stdRepo, ownerUsr)
	otherUsr := testutil.CreateUser(t, usrRepo, "Other", "other@test.cd", "S3cretPass!", user.RoleStudent)
	testutil.CreateStudent(t, stdRepo, otherUsr)

	ownerData := marchallObj(t, owner)
	tests := []httpTest{
		{name: "auth required", path: "/v1/students/" + owner.ID, wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "owner can read own profile", path: "/v1/students/" + owner.ID, token: getToken(t, ownerUsr), wantCode: http.StatusOK, wantData: ownerData},
		{name: "another student cannot", path: "/v1/students/" + owner.ID, token: getToken(t, otherUsr), wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"})},
		{name: "teacher can read any profile", path: "/v1/students/" + owner.ID, token: getToken(t, teacher), wantCode: http.StatusOK, wantData: ownerData},
		{name: "admin can read any profile", path: "/v1/students/" + owner.ID, token: getToken(t, admin), wantCode: http.StatusOK, wantData: ownerData},
		{name: "unknown id is a 404", path: "/v1/students/deadbeef", token: getToken(t, admin), wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
