package dao

import (
	"context"
	"errors"
	"time"

	"go-shopadmin/internal/domain/model"

	"gorm.io/gorm"
)

// MarketingDAO is the data access object for campaign tracking codes.
type MarketingDAO struct {
	DB *gorm.DB
}

func NewMarketingDAO(db *gorm.DB) *MarketingDAO { return &MarketingDAO{DB: db} }

// WithTx returns a DAO bound to the given transaction (or same instance if tx nil).
func (d *MarketingDAO) WithTx(tx *gorm.DB) *MarketingDAO {
	if tx == nil {
		return d
	}
	return &MarketingDAO{DB: tx}
}

// MarketingFilter holds the optional list/count predicates. Empty string
// means no clause; active predicates AND together.
type MarketingFilter struct {
	Name      string // prefix match
	Code      string // exact match
	DateAdded string // YYYY-MM-DD, matches the calendar day ignoring time
}

type MarketingListParams struct {
	Filter MarketingFilter
	Sort   string
	Order  string
	Start  *int
	Limit  *int
}

var marketingSortColumns = map[string]string{
	"name":       "name",
	"code":       "code",
	"date_added": "date_added",
}

const (
	marketingDefaultSort  = "name"
	marketingDefaultLimit = 20
)

// Create inserts the record and returns the generated id. DateAdded is set
// here; callers cannot override it.
func (d *MarketingDAO) Create(ctx context.Context, m *model.Marketing) (int64, error) {
	m.ID = 0
	m.DateAdded = time.Now()
	if err := d.DB.WithContext(ctx).Create(m).Error; err != nil {
		return 0, storageErr("marketing create", err)
	}
	return m.ID, nil
}

// Update overwrites exactly the mutable fields. ID and DateAdded never
// appear in the update set.
func (d *MarketingDAO) Update(ctx context.Context, id int64, m *model.Marketing) error {
	err := d.DB.WithContext(ctx).Model(&model.Marketing{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":        m.Name,
		"description": m.Description,
		"code":        m.Code,
	}).Error
	return storageErr("marketing update", err)
}

// Delete removes the row. Deleting a missing id is a silent no-op.
func (d *MarketingDAO) Delete(ctx context.Context, id int64) error {
	return storageErr("marketing delete", d.DB.WithContext(ctx).Delete(&model.Marketing{}, id).Error)
}

// GetByID returns (nil, nil) when no row matches.
func (d *MarketingDAO) GetByID(ctx context.Context, id int64, completeStatusIDs []int) (*model.Marketing, error) {
	var m model.Marketing
	q := d.withOrders(d.DB.WithContext(ctx).Model(&model.Marketing{}), completeStatusIDs)
	if err := q.Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storageErr("marketing get", err)
	}
	return &m, nil
}

func (d *MarketingDAO) GetByCode(ctx context.Context, code string, completeStatusIDs []int) (*model.Marketing, error) {
	var m model.Marketing
	q := d.withOrders(d.DB.WithContext(ctx).Model(&model.Marketing{}), completeStatusIDs)
	if err := q.Where("code = ?", code).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storageErr("marketing get by code", err)
	}
	return &m, nil
}

// List applies the filters, the allow-listed sort and the pagination window.
// Every call re-queries; nothing is cached at this layer.
func (d *MarketingDAO) List(ctx context.Context, p MarketingListParams, completeStatusIDs []int) ([]model.Marketing, error) {
	q := d.withOrders(d.DB.WithContext(ctx).Model(&model.Marketing{}), completeStatusIDs)
	q = d.applyFilter(q, p.Filter)
	q = q.Order(orderClause(marketingSortColumns, marketingDefaultSort, p.Sort, p.Order))
	q = applyWindow(q, p.Start, p.Limit, marketingDefaultLimit)
	var list []model.Marketing
	if err := q.Find(&list).Error; err != nil {
		return nil, storageErr("marketing list", err)
	}
	return list, nil
}

// Count applies the identical filter predicate as List and never the sort or
// pagination clause, so the pair stays in lock-step.
func (d *MarketingDAO) Count(ctx context.Context, f MarketingFilter) (int64, error) {
	var total int64
	q := d.applyFilter(d.DB.WithContext(ctx).Model(&model.Marketing{}), f)
	if err := q.Count(&total).Error; err != nil {
		return 0, storageErr("marketing count", err)
	}
	return total, nil
}

func (d *MarketingDAO) applyFilter(q *gorm.DB, f MarketingFilter) *gorm.DB {
	if f.Name != "" {
		q = q.Where("name LIKE ?", f.Name+"%")
	}
	if f.Code != "" {
		q = q.Where("code = ?", f.Code)
	}
	if f.DateAdded != "" {
		q = dayRange(q, "date_added", f.DateAdded)
	}
	return q
}

// withOrders attaches the derived orders column: completed orders that
// reference the row. An empty status set makes the count constantly zero.
func (d *MarketingDAO) withOrders(q *gorm.DB, statusIDs []int) *gorm.DB {
	if len(statusIDs) == 0 {
		return q.Select("marketing.*, 0 AS orders")
	}
	return q.Select(
		"marketing.*, (SELECT COUNT(*) FROM orders o WHERE o.marketing_id = marketing.id AND o.order_status_id IN ?) AS orders",
		statusIDs,
	)
}
