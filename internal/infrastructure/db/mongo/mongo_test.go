package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskforge/task-manager/internal/core/domain"
)

func TestOpCtx_AppliesDeadline(t *testing.T) {
	ctx, cancel := opCtx(context.Background())
	defer cancel()

	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("expected a deadline on the operation context")
	}
	if remaining := time.Until(deadline); remaining > defaultTimeout {
		t.Fatalf("deadline %v exceeds the fixed per-op timeout %v", remaining, defaultTimeout)
	}
}

func TestOpCtx_KeepsEarlierParentDeadline(t *testing.T) {
	parent, parentCancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer parentCancel()

	ctx, cancel := opCtx(parent)
	defer cancel()

	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("expected a deadline on the operation context")
	}
	if time.Until(deadline) > time.Millisecond {
		t.Fatal("operation context must not extend a tighter parent deadline")
	}
}

func TestOwnerFilter_MalformedTaskID(t *testing.T) {
	if _, err := ownerFilter("not-hex", primitive.NewObjectID().Hex()); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestOwnerFilter_MalformedOwnerID(t *testing.T) {
	if _, err := ownerFilter(primitive.NewObjectID().Hex(), "not-hex"); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestOwnerFilter_EmptyOwnerSkipsScope(t *testing.T) {
	id := primitive.NewObjectID()

	filter, err := ownerFilter(id.Hex(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, scoped := filter["user_id"]; scoped {
		t.Fatalf("audit-path filter must not carry an owner clause: %v", filter)
	}
	if filter["_id"] != id {
		t.Fatalf("unexpected id clause: %v", filter)
	}
}

func TestUserObjectID_MalformedIsNotFound(t *testing.T) {
	if _, err := userObjectID("zz"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestIsTransactionUnsupported(t *testing.T) {
	if !isTransactionUnsupported(mongo.CommandError{Code: 20, Name: "IllegalOperation"}) {
		t.Fatal("code 20 must trigger the sequential fallback")
	}
	if isTransactionUnsupported(mongo.CommandError{Code: 11000}) {
		t.Fatal("other command errors must not trigger the fallback")
	}
	if isTransactionUnsupported(errors.New("dial timeout")) {
		t.Fatal("non-command errors must not trigger the fallback")
	}
}
