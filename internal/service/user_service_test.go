package service

import (
	"context"
	"errors"
	"testing"

	"go-shopadmin/internal/domain/model"
	"go-shopadmin/internal/pkg/cache"
	"go-shopadmin/internal/repository/dao"
	"go-shopadmin/pkg/crypto"

	"gorm.io/gorm"
)

func newUserService(t *testing.T) (*UserService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewUserService(
		dao.NewUserDAO(db),
		dao.NewUserGroupDAO(db),
		dao.NewUserLoginDAO(db),
		db,
		cache.NewMemory(),
		nopLogger(),
	)
	return svc, db
}

func seedGroup(t *testing.T, db *gorm.DB, name string) int64 {
	t.Helper()
	g := model.UserGroup{Name: name, Permission: "{}"}
	if err := db.Create(&g).Error; err != nil {
		t.Fatalf("seed group: %v", err)
	}
	return g.ID
}

func TestAddUserHashesPassword(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()
	gid := seedGroup(t, db, "Administrator")

	id, err := svc.AddUser(ctx, UserParams{
		Username:    "alice",
		UserGroupID: gid,
		Password:    "s3cret-pass",
		Email:       "alice@shop.example",
		Status:      true,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	u, err := svc.GetUser(ctx, id)
	if err != nil || u == nil {
		t.Fatalf("get: %v %v", u, err)
	}
	if u.Password == "s3cret-pass" {
		t.Fatal("plaintext password reached storage")
	}
	if !crypto.VerifyPassword("s3cret-pass", u.Password) {
		t.Error("stored hash does not verify against the original password")
	}
	if crypto.VerifyPassword("wrong", u.Password) {
		t.Error("wrong password verified")
	}
}

func TestAddUserRequiredFields(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()
	gid := seedGroup(t, db, "Staff")

	cases := []struct {
		name  string
		p     UserParams
		field string
	}{
		{"missing username", UserParams{Password: "x", Email: "a@b.c", UserGroupID: gid}, "username"},
		{"missing password", UserParams{Username: "u", Email: "a@b.c", UserGroupID: gid}, "password"},
		{"missing email", UserParams{Username: "u", Password: "x", UserGroupID: gid}, "email"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddUser(ctx, tc.p)
			var mf *MissingFieldError
			if !errors.As(err, &mf) {
				t.Fatalf("expected MissingFieldError, got %v", err)
			}
			if mf.Field != tc.field {
				t.Errorf("expected field %q, got %q", tc.field, mf.Field)
			}
		})
	}
}

func TestAddUserRejectsDuplicateUsername(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()
	gid := seedGroup(t, db, "Staff")

	p := UserParams{Username: "bob", Password: "pw", Email: "bob@shop.example", UserGroupID: gid}
	if _, err := svc.AddUser(ctx, p); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if _, err := svc.AddUser(ctx, p); !errors.Is(err, ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestEditUserEmptyPasswordKeepsHash(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()
	gid := seedGroup(t, db, "Staff")

	id, _ := svc.AddUser(ctx, UserParams{Username: "carol", Password: "original-pw", Email: "c@shop.example", UserGroupID: gid})
	before, _ := svc.GetUser(ctx, id)

	err := svc.EditUser(ctx, id, UserParams{
		Username:    "carol",
		UserGroupID: gid,
		Firstname:   "Carol",
		Email:       "carol@shop.example",
		Status:      true,
		// Password left empty on purpose
	})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	after, _ := svc.GetUser(ctx, id)
	if after.Password != before.Password {
		t.Error("empty password edit replaced the stored hash")
	}
	if after.Firstname != "Carol" || after.Email != "carol@shop.example" {
		t.Errorf("profile fields not updated: %+v", after)
	}
}

func TestEditUserNewPasswordRehashes(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()
	gid := seedGroup(t, db, "Staff")

	id, _ := svc.AddUser(ctx, UserParams{Username: "dave", Password: "old-pw", Email: "d@shop.example", UserGroupID: gid})
	before, _ := svc.GetUser(ctx, id)

	err := svc.EditUser(ctx, id, UserParams{
		Username:    "dave",
		UserGroupID: gid,
		Email:       "d@shop.example",
		Password:    "new-pw",
	})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	after, _ := svc.GetUser(ctx, id)
	if after.Password == before.Password {
		t.Fatal("password edit did not replace the hash")
	}
	if !crypto.VerifyPassword("new-pw", after.Password) {
		t.Error("new password does not verify")
	}
	if crypto.VerifyPassword("old-pw", after.Password) {
		t.Error("old password still verifies")
	}
}

func TestEditPasswordClearsResetCode(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()
	gid := seedGroup(t, db, "Staff")

	id, _ := svc.AddUser(ctx, UserParams{Username: "erin", Password: "pw", Email: "Erin@Shop.example", UserGroupID: gid})
	if err := svc.EditResetCode(ctx, "erin@shop.example", "reset-tok"); err != nil {
		t.Fatalf("issue reset code: %v", err)
	}
	if u, _ := svc.GetUserByResetCode(ctx, "reset-tok"); u == nil || u.ID != id {
		t.Fatalf("reset code lookup failed: %+v", u)
	}

	if err := svc.EditPassword(ctx, id, "brand-new"); err != nil {
		t.Fatalf("edit password: %v", err)
	}
	if u, _ := svc.GetUserByResetCode(ctx, "reset-tok"); u != nil {
		t.Error("reset code survived a password change")
	}
	after, _ := svc.GetUser(ctx, id)
	if !crypto.VerifyPassword("brand-new", after.Password) {
		t.Error("new password does not verify")
	}
}

func TestListUsersResolvesGroupNames(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()
	admins := seedGroup(t, db, "Administrator")
	staff := seedGroup(t, db, "Staff")

	_, _ = svc.AddUser(ctx, UserParams{Username: "frank", Password: "pw", Email: "f@shop.example", UserGroupID: admins})
	_, _ = svc.AddUser(ctx, UserParams{Username: "grace", Password: "pw", Email: "g@shop.example", UserGroupID: staff})

	res, err := svc.ListUsers(ctx, dao.UserListParams{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Total != 2 || len(res.List) != 2 {
		t.Fatalf("expected 2 users, got total=%d len=%d", res.Total, len(res.List))
	}
	names := map[string]string{}
	for _, u := range res.List {
		names[u.Username] = u.UserGroup
	}
	if names["frank"] != "Administrator" || names["grace"] != "Staff" {
		t.Errorf("group names wrong: %v", names)
	}
}
