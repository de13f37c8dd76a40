package access_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-termmeta/pkg/access"
)

func TestRolesDefaults(t *testing.T) {
	roles := access.NewRoles(nil)

	editor := access.WithActor(context.Background(), access.Actor{ID: "7", Roles: []string{"Editor"}})
	if !roles.Can(editor, "manage_categories") {
		t.Fatalf("editor should manage categories")
	}

	author := access.WithActor(context.Background(), access.Actor{ID: "8", Roles: []string{"author"}})
	if roles.Can(author, "manage_categories") {
		t.Fatalf("author should not manage categories")
	}

	if roles.Can(context.Background(), "manage_categories") {
		t.Fatalf("missing actor must be denied")
	}
	if !roles.Can(context.Background(), "") {
		t.Fatalf("empty capability is always granted")
	}
}

func TestRolesGrant(t *testing.T) {
	roles := access.NewRoles(map[string][]string{})
	ctx := access.WithActor(context.Background(), access.Actor{Roles: []string{"shop_manager"}})
	if roles.Can(ctx, "manage_product_terms") {
		t.Fatalf("capability granted before Grant")
	}
	roles.Grant("shop_manager", "manage_product_terms")
	if !roles.Can(ctx, "manage_product_terms") {
		t.Fatalf("expected capability after Grant")
	}
}

func TestActorFrom(t *testing.T) {
	if _, ok := access.ActorFrom(context.Background()); ok {
		t.Fatalf("expected no actor")
	}
	ctx := access.WithActor(context.Background(), access.Actor{ID: "1"})
	actor, ok := access.ActorFrom(ctx)
	if !ok || actor.ID != "1" {
		t.Fatalf("unexpected actor %+v (ok=%v)", actor, ok)
	}
}
