package mock

import (
	"context"

	"github.com/fwojciec/stagenote"
)

var _ stagenote.PerformanceService = (*PerformanceService)(nil)

// PerformanceService is a mock implementation of stagenote.PerformanceService.
type PerformanceService struct {
	CreatePerformanceFn   func(ctx context.Context, rec *stagenote.PerformanceRecord) error
	FindPerformanceByIDFn func(ctx context.Context, id string) (*stagenote.PerformanceRecord, error)
	FindPerformancesFn    func(ctx context.Context, filter stagenote.PerformanceFilter) ([]*stagenote.PerformanceRecord, error)
	DeletePerformanceFn   func(ctx context.Context, id string) error
}

func (s *PerformanceService) CreatePerformance(ctx context.Context, rec *stagenote.PerformanceRecord) error {
	return s.CreatePerformanceFn(ctx, rec)
}

func (s *PerformanceService) FindPerformanceByID(ctx context.Context, id string) (*stagenote.PerformanceRecord, error) {
	return s.FindPerformanceByIDFn(ctx, id)
}

func (s *PerformanceService) FindPerformances(ctx context.Context, filter stagenote.PerformanceFilter) ([]*stagenote.PerformanceRecord, error) {
	return s.FindPerformancesFn(ctx, filter)
}

func (s *PerformanceService) DeletePerformance(ctx context.Context, id string) error {
	return s.DeletePerformanceFn(ctx, id)
}
