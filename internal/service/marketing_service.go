package service

import (
	"context"

	"go-shopadmin/internal/domain/model"
	"go-shopadmin/internal/logging"
	"go-shopadmin/internal/repository/dao"

	"go.uber.org/zap"
)

// MarketingService manages campaign tracking codes. The derived orders count
// on returned rows covers orders in the configured complete statuses only.
type MarketingService struct {
	DAO               *dao.MarketingDAO
	CompleteStatusIDs []int
	Logger            *logging.Logger
}

func NewMarketingService(d *dao.MarketingDAO, completeStatusIDs []int, l *logging.Logger) *MarketingService {
	return &MarketingService{DAO: d, CompleteStatusIDs: completeStatusIDs, Logger: l}
}

type MarketingParams struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Code        string `json:"code"`
}

func (s *MarketingService) Add(ctx context.Context, p MarketingParams) (int64, error) {
	if p.Name == "" {
		return 0, missingField("name")
	}
	if p.Code == "" {
		return 0, missingField("code")
	}
	id, err := s.DAO.Create(ctx, &model.Marketing{
		Name:        p.Name,
		Description: p.Description,
		Code:        p.Code,
	})
	if err != nil {
		return 0, err
	}
	s.Logger.WithContext(ctx).Info("marketing_created", zap.Int64("id", id), zap.String("code", p.Code))
	return id, nil
}

func (s *MarketingService) Edit(ctx context.Context, id int64, p MarketingParams) error {
	if p.Name == "" {
		return missingField("name")
	}
	if p.Code == "" {
		return missingField("code")
	}
	existing, err := s.DAO.GetByID(ctx, id, nil)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.DAO.Update(ctx, id, &model.Marketing{
		Name:        p.Name,
		Description: p.Description,
		Code:        p.Code,
	})
}

func (s *MarketingService) Delete(ctx context.Context, id int64) error {
	return s.DAO.Delete(ctx, id)
}

func (s *MarketingService) Get(ctx context.Context, id int64) (*model.Marketing, error) {
	return s.DAO.GetByID(ctx, id, s.CompleteStatusIDs)
}

func (s *MarketingService) GetByCode(ctx context.Context, code string) (*model.Marketing, error) {
	return s.DAO.GetByCode(ctx, code, s.CompleteStatusIDs)
}

type MarketingListResult struct {
	List  []model.Marketing `json:"list"`
	Total int64             `json:"total"`
}

// List always re-queries; totals come from the same filter predicate as the
// page so they never drift apart.
func (s *MarketingService) List(ctx context.Context, p dao.MarketingListParams) (*MarketingListResult, error) {
	list, err := s.DAO.List(ctx, p, s.CompleteStatusIDs)
	if err != nil {
		return nil, err
	}
	total, err := s.DAO.Count(ctx, p.Filter)
	if err != nil {
		return nil, err
	}
	return &MarketingListResult{List: list, Total: total}, nil
}
