package notification_log

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fatflowers/texttopay/internal/models"
	"github.com/fatflowers/texttopay/pkg/apperr"
)

var sortableColumns = []string{"created_at", "notification_time", "payment_id", "status"}

// ScanRequest filters and pages the receipt log. Empty filters match all rows.
type ScanRequest struct {
	Status    string `form:"status"`
	PaymentID string `form:"payment_id"`
	EventType string `form:"event_type"`
	From      int    `form:"from"`
	Size      int    `form:"size"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
}

type ScanResponse struct {
	Items []*models.PaymentNotificationLog `json:"items"`
	Total int64                            `json:"total"`
}

// StatusCount is the number of receipt rows in one status.
type StatusCount struct {
	Status models.PaymentNotificationLogStatus `json:"status"`
	Count  int64                               `json:"count"`
}

var errDisabled = apperr.Configuration("webhook receipt log is disabled; set database.dsn")

// Scan lists receipt rows, newest first unless sort says otherwise.
func (s *Service) Scan(ctx context.Context, req *ScanRequest) (*ScanResponse, error) {
	if !s.Enabled() {
		return nil, errDisabled
	}
	if req == nil {
		req = &ScanRequest{}
	}
	if req.Size <= 0 {
		req.Size = 10
	}
	if req.From < 0 {
		req.From = 0
	}
	if req.SortBy == "" {
		req.SortBy = "created_at"
	}
	if !lo.Contains(sortableColumns, req.SortBy) {
		return nil, apperr.Validation("sort_by must be one of %v", sortableColumns)
	}

	filter := &models.PaymentNotificationLog{
		Status:    models.PaymentNotificationLogStatus(req.Status),
		PaymentID: req.PaymentID,
		EventType: req.EventType,
	}
	base := func() *gorm.DB {
		return s.db.WithContext(ctx).Model(&models.PaymentNotificationLog{}).Where(filter)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count notification logs: %w", err)
	}

	var rows []*models.PaymentNotificationLog
	q := base().Limit(req.Size).
		Order(clause.OrderBy{Columns: []clause.OrderByColumn{{Column: clause.Column{Name: req.SortBy}, Desc: req.SortOrder != "asc"}}})
	if req.From > 0 {
		q = q.Offset(req.From)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list notification logs: %w", err)
	}
	return &ScanResponse{Items: rows, Total: total}, nil
}

// CountByStatus groups the receipt log by status, ordered by status name.
func (s *Service) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	if !s.Enabled() {
		return nil, errDisabled
	}
	var results []StatusCount
	err := s.db.WithContext(ctx).Model(&models.PaymentNotificationLog{}).
		Select("status, count(*) as count").
		Group("status").
		Order("status").
		Find(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count notification logs by status: %w", err)
	}
	return results, nil
}
