package dao

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go-shopadmin/internal/domain/model"
)

func TestMarketingCreateAndGet(t *testing.T) {
	d := NewMarketingDAO(newTestDB(t))
	ctx := context.Background()

	id, err := d.Create(ctx, &model.Marketing{Name: "Spring Sale", Description: "april push", Code: "SPRING24"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id <= 0 {
		t.Fatalf("expected positive id, got %d", id)
	}

	got, err := d.GetByID(ctx, id, nil)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected row, got nil")
	}
	if got.Name != "Spring Sale" || got.Code != "SPRING24" {
		t.Errorf("unexpected row: %+v", got)
	}
	if got.DateAdded.IsZero() {
		t.Error("date_added not set on create")
	}
	if got.Orders != 0 {
		t.Errorf("expected zero orders for fresh campaign, got %d", got.Orders)
	}

	byCode, err := d.GetByCode(ctx, "SPRING24", nil)
	if err != nil {
		t.Fatalf("get by code: %v", err)
	}
	if byCode == nil || byCode.ID != id {
		t.Fatalf("get by code mismatch: %+v", byCode)
	}
}

func TestMarketingGetMissingReturnsNilNil(t *testing.T) {
	d := NewMarketingDAO(newTestDB(t))
	ctx := context.Background()

	got, err := d.GetByID(ctx, 404, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing id, got %+v", got)
	}
}

func TestMarketingUpdatePreservesDateAdded(t *testing.T) {
	d := NewMarketingDAO(newTestDB(t))
	ctx := context.Background()

	id, _ := d.Create(ctx, &model.Marketing{Name: "Old", Code: "OLD"})
	before, _ := d.GetByID(ctx, id, nil)

	if err := d.Update(ctx, id, &model.Marketing{Name: "New", Description: "changed", Code: "NEW"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	after, _ := d.GetByID(ctx, id, nil)
	if after.Name != "New" || after.Code != "NEW" || after.Description != "changed" {
		t.Errorf("fields not updated: %+v", after)
	}
	if !after.DateAdded.Equal(before.DateAdded) {
		t.Errorf("date_added changed on update: %v -> %v", before.DateAdded, after.DateAdded)
	}
}

func TestMarketingDeleteMissingIsNoOp(t *testing.T) {
	d := NewMarketingDAO(newTestDB(t))
	if err := d.Delete(context.Background(), 9999); err != nil {
		t.Fatalf("delete of missing id should be silent, got %v", err)
	}
}

func seedMarketing(t *testing.T, d *MarketingDAO) {
	t.Helper()
	ctx := context.Background()
	rows := []model.Marketing{
		{Name: "Alpha Launch", Code: "ALPHA"},
		{Name: "Alpha Retarget", Code: "ALPHA2"},
		{Name: "Beta Blast", Code: "BETA"},
		{Name: "Gamma Push", Code: "GAMMA"},
	}
	for i := range rows {
		if _, err := d.Create(ctx, &rows[i]); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func TestMarketingListCountParity(t *testing.T) {
	d := NewMarketingDAO(newTestDB(t))
	seedMarketing(t, d)
	ctx := context.Background()

	filters := []MarketingFilter{
		{},
		{Name: "Alpha"},
		{Code: "BETA"},
		{Name: "Alpha", Code: "ALPHA2"},
		{DateAdded: time.Now().Format("2006-01-02")},
		{DateAdded: "1999-01-01"},
	}
	for i, f := range filters {
		list, err := d.List(ctx, MarketingListParams{Filter: f}, nil)
		if err != nil {
			t.Fatalf("filter %d list: %v", i, err)
		}
		total, err := d.Count(ctx, f)
		if err != nil {
			t.Fatalf("filter %d count: %v", i, err)
		}
		if int64(len(list)) != total {
			t.Errorf("filter %d: list %d rows, count %d", i, len(list), total)
		}
	}
}

func TestMarketingUnknownSortFallsBack(t *testing.T) {
	d := NewMarketingDAO(newTestDB(t))
	seedMarketing(t, d)
	ctx := context.Background()

	byDefault, err := d.List(ctx, MarketingListParams{}, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	byBogus, err := d.List(ctx, MarketingListParams{Sort: "orders; DROP TABLE marketing"}, nil)
	if err != nil {
		t.Fatalf("list with bogus sort: %v", err)
	}
	if len(byBogus) != len(byDefault) {
		t.Fatalf("row counts differ: %d vs %d", len(byBogus), len(byDefault))
	}
	for i := range byDefault {
		if byDefault[i].ID != byBogus[i].ID {
			t.Fatalf("bogus sort should order like the default (name): pos %d: %d vs %d", i, byDefault[i].ID, byBogus[i].ID)
		}
	}
}

func TestMarketingSortDirection(t *testing.T) {
	d := NewMarketingDAO(newTestDB(t))
	seedMarketing(t, d)
	ctx := context.Background()

	asc, _ := d.List(ctx, MarketingListParams{Sort: "code", Order: "ASC"}, nil)
	desc, _ := d.List(ctx, MarketingListParams{Sort: "code", Order: "DESC"}, nil)
	weird, _ := d.List(ctx, MarketingListParams{Sort: "code", Order: "sideways"}, nil)

	if len(asc) == 0 || len(asc) != len(desc) {
		t.Fatalf("unexpected list sizes: %d vs %d", len(asc), len(desc))
	}
	for i := range asc {
		if asc[i].ID != desc[len(desc)-1-i].ID {
			t.Fatalf("DESC is not the reverse of ASC at pos %d", i)
		}
		// anything but DESC means ASC
		if asc[i].ID != weird[i].ID {
			t.Fatalf("unknown direction should behave as ASC at pos %d", i)
		}
	}
}

func TestMarketingWindowClamps(t *testing.T) {
	d := NewMarketingDAO(newTestDB(t))
	ctx := context.Background()
	for i := 0; i < 25; i++ {
		if _, err := d.Create(ctx, &model.Marketing{Name: fmt.Sprintf("Camp %02d", i), Code: fmt.Sprintf("C%02d", i)}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	// no window at all: everything comes back
	all, _ := d.List(ctx, MarketingListParams{}, nil)
	if len(all) != 25 {
		t.Fatalf("expected 25 rows without window, got %d", len(all))
	}

	// negative start clamps to 0, limit 0 falls back to the default 20
	clamped, _ := d.List(ctx, MarketingListParams{Start: intPtr(-5), Limit: intPtr(0)}, nil)
	if len(clamped) != 20 {
		t.Fatalf("expected default limit 20, got %d", len(clamped))
	}
	normal, _ := d.List(ctx, MarketingListParams{Start: intPtr(0), Limit: intPtr(20)}, nil)
	for i := range normal {
		if clamped[i].ID != normal[i].ID {
			t.Fatalf("clamped window differs from explicit window at pos %d", i)
		}
	}

	// start beyond the end yields an empty page
	empty, _ := d.List(ctx, MarketingListParams{Start: intPtr(100), Limit: intPtr(10)}, nil)
	if len(empty) != 0 {
		t.Fatalf("expected empty page, got %d rows", len(empty))
	}
}

func TestMarketingOrdersDerivedCount(t *testing.T) {
	db := newTestDB(t)
	d := NewMarketingDAO(db)
	ctx := context.Background()

	id, _ := d.Create(ctx, &model.Marketing{Name: "Tracked", Code: "TRACK"})
	otherID, _ := d.Create(ctx, &model.Marketing{Name: "Untracked", Code: "NONE"})

	orders := []model.Order{
		{MarketingID: id, OrderStatusID: 5, Total: 10, DateAdded: time.Now()},
		{MarketingID: id, OrderStatusID: 5, Total: 20, DateAdded: time.Now()},
		{MarketingID: id, OrderStatusID: 3, Total: 30, DateAdded: time.Now()}, // not complete
		{MarketingID: otherID, OrderStatusID: 5, Total: 40, DateAdded: time.Now()},
	}
	for i := range orders {
		if err := db.Create(&orders[i]).Error; err != nil {
			t.Fatalf("seed order: %v", err)
		}
	}

	got, err := d.GetByID(ctx, id, []int{5})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Orders != 2 {
		t.Errorf("expected 2 complete orders, got %d", got.Orders)
	}

	// several complete statuses
	multi, _ := d.GetByID(ctx, id, []int{3, 5})
	if multi.Orders != 3 {
		t.Errorf("expected 3 orders across statuses, got %d", multi.Orders)
	}

	// empty status set pins the count to zero
	zero, _ := d.GetByID(ctx, id, nil)
	if zero.Orders != 0 {
		t.Errorf("expected 0 with empty status set, got %d", zero.Orders)
	}

	list, err := d.List(ctx, MarketingListParams{}, []int{5})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	byID := map[int64]int64{}
	for _, m := range list {
		byID[m.ID] = m.Orders
	}
	if byID[id] != 2 || byID[otherID] != 1 {
		t.Errorf("derived counts wrong in list: %v", byID)
	}
}
