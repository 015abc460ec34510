package dao

import (
	"context"
	"fmt"
	"testing"

	"go-shopadmin/internal/domain/model"
)

func TestLoginHistoryPagingClamps(t *testing.T) {
	db := newTestDB(t)
	d := NewUserLoginDAO(db)
	ctx := context.Background()

	const userID = int64(7)
	for i := 0; i < 15; i++ {
		err := d.Create(ctx, &model.UserLogin{
			UserID:    userID,
			IP:        fmt.Sprintf("10.0.0.%d", i),
			UserAgent: "test-agent",
		})
		if err != nil {
			t.Fatalf("seed login %d: %v", i, err)
		}
	}
	// a row for someone else must never leak in
	_ = d.Create(ctx, &model.UserLogin{UserID: 8, IP: "10.9.9.9"})

	total, err := d.CountByUserID(ctx, userID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 15 {
		t.Fatalf("expected 15 rows, got %d", total)
	}

	// limit below 1 falls back to the default page of 10
	page, err := d.ListByUserID(ctx, userID, 0, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page) != 10 {
		t.Fatalf("expected default page of 10, got %d", len(page))
	}

	// negative start clamps to 0
	clamped, err := d.ListByUserID(ctx, userID, -3, 5)
	if err != nil {
		t.Fatalf("list clamped: %v", err)
	}
	zero, _ := d.ListByUserID(ctx, userID, 0, 5)
	if len(clamped) != len(zero) {
		t.Fatalf("clamped page size %d differs from start=0 page %d", len(clamped), len(zero))
	}
	for i := range zero {
		if clamped[i].ID != zero[i].ID {
			t.Fatalf("clamped page diverged at pos %d", i)
		}
	}

	// tail window
	tail, _ := d.ListByUserID(ctx, userID, 10, 10)
	if len(tail) != 5 {
		t.Fatalf("expected 5 tail rows, got %d", len(tail))
	}
	for _, l := range tail {
		if l.UserID != userID {
			t.Fatalf("foreign row leaked: %+v", l)
		}
	}
}
