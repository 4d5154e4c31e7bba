package authz

import (
	"context"
	"errors"
	"testing"
)

func TestRequireAdminUnauthenticated(t *testing.T) {
	err := RequireAdmin(context.Background())
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestRequireAdminForbidden(t *testing.T) {
	ctx := ContextWithUser(context.Background(), &AuthUser{ID: 10})

	err := RequireAdmin(ctx)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequireAdminAllowed(t *testing.T) {
	ctx := ContextWithUser(context.Background(), &AuthUser{ID: 10, IsAdmin: true})

	if err := RequireAdmin(ctx); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestUserFromContextNil(t *testing.T) {
	//nolint:staticcheck
	if user := UserFromContext(nil); user != nil {
		t.Fatalf("expected nil user, got %+v", user)
	}
	if IsAdmin(nil) {
		t.Fatal("expected nil user to not be admin")
	}
}
