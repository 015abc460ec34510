package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-shopadmin/internal/domain/model"

	"gorm.io/gorm"
)

// UserDAO is the data access object for administrative accounts. Password
// values passed in are expected to be already hashed; hashing policy lives
// in the service layer.
type UserDAO struct {
	DB *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO { return &UserDAO{DB: db} }

func (d *UserDAO) WithTx(tx *gorm.DB) *UserDAO {
	if tx == nil {
		return d
	}
	return &UserDAO{DB: tx}
}

type UserFilter struct {
	Username string // prefix match
}

type UserListParams struct {
	Filter UserFilter
	Sort   string
	Order  string
	Start  *int
	Limit  *int
}

var userSortColumns = map[string]string{
	"username":   "username",
	"status":     "status",
	"date_added": "date_added",
}

const (
	userDefaultSort  = "username"
	userDefaultLimit = 20
)

func (d *UserDAO) Create(ctx context.Context, u *model.User) (int64, error) {
	u.ID = 0
	u.DateAdded = time.Now()
	if err := d.DB.WithContext(ctx).Create(u).Error; err != nil {
		return 0, storageErr("user create", err)
	}
	return u.ID, nil
}

// Update overwrites the non-credential fields. The stored password hash and
// reset code are untouched; see UpdatePassword.
func (d *UserDAO) Update(ctx context.Context, id int64, u *model.User) error {
	err := d.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"username":      u.Username,
		"user_group_id": u.UserGroupID,
		"firstname":     u.Firstname,
		"lastname":      u.Lastname,
		"email":         u.Email,
		"image":         u.Image,
		"status":        u.Status,
	}).Error
	return storageErr("user update", err)
}

// UpdatePassword stores the new hash and clears any active reset code in the
// same statement.
func (d *UserDAO) UpdatePassword(ctx context.Context, id int64, hash string) error {
	err := d.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"password": hash,
		"code":     "",
	}).Error
	return storageErr("user update password", err)
}

// UpdateResetCode stores an opaque reset code against the account matched by
// case-insensitive email.
func (d *UserDAO) UpdateResetCode(ctx context.Context, email, code string) error {
	err := d.DB.WithContext(ctx).Model(&model.User{}).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		Update("code", code).Error
	return storageErr("user update reset code", err)
}

func (d *UserDAO) Delete(ctx context.Context, id int64) error {
	return storageErr("user delete", d.DB.WithContext(ctx).Delete(&model.User{}, id).Error)
}

// GetByID resolves the denormalized user_group display name alongside the row.
func (d *UserDAO) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	err := d.DB.WithContext(ctx).Model(&model.User{}).
		Select(`"user".*, (SELECT ug.name FROM user_group ug WHERE ug.id = "user".user_group_id) AS user_group`).
		Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storageErr("user get", err)
	}
	return &u, nil
}

func (d *UserDAO) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	if err := d.DB.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storageErr("user get by username", err)
	}
	return &u, nil
}

func (d *UserDAO) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := d.DB.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(email)).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storageErr("user get by email", err)
	}
	return &u, nil
}

// GetByResetCode matches the stored reset code exactly. An empty code never
// matches: a blank code column means "no active reset", not a valid token.
func (d *UserDAO) GetByResetCode(ctx context.Context, code string) (*model.User, error) {
	if code == "" {
		return nil, nil
	}
	var u model.User
	err := d.DB.WithContext(ctx).Where("code = ? AND code <> ''", code).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storageErr("user get by reset code", err)
	}
	return &u, nil
}

func (d *UserDAO) List(ctx context.Context, p UserListParams) ([]model.User, error) {
	q := d.applyFilter(d.DB.WithContext(ctx).Model(&model.User{}), p.Filter)
	q = q.Order(orderClause(userSortColumns, userDefaultSort, p.Sort, p.Order))
	q = applyWindow(q, p.Start, p.Limit, userDefaultLimit)
	var list []model.User
	if err := q.Find(&list).Error; err != nil {
		return nil, storageErr("user list", err)
	}
	return list, nil
}

func (d *UserDAO) Count(ctx context.Context, f UserFilter) (int64, error) {
	var total int64
	q := d.applyFilter(d.DB.WithContext(ctx).Model(&model.User{}), f)
	if err := q.Count(&total).Error; err != nil {
		return 0, storageErr("user count", err)
	}
	return total, nil
}

func (d *UserDAO) CountByGroupID(ctx context.Context, groupID int64) (int64, error) {
	var total int64
	err := d.DB.WithContext(ctx).Model(&model.User{}).
		Where("user_group_id = ?", groupID).Count(&total).Error
	if err != nil {
		return 0, storageErr("user count by group", err)
	}
	return total, nil
}

func (d *UserDAO) CountByEmail(ctx context.Context, email string) (int64, error) {
	var total int64
	err := d.DB.WithContext(ctx).Model(&model.User{}).
		Where("LOWER(email) = ?", strings.ToLower(email)).Count(&total).Error
	if err != nil {
		return 0, storageErr("user count by email", err)
	}
	return total, nil
}

func (d *UserDAO) applyFilter(q *gorm.DB, f UserFilter) *gorm.DB {
	if f.Username != "" {
		q = q.Where("username LIKE ?", f.Username+"%")
	}
	return q
}
