package service

import (
	"context"
	"time"

	"course-advisor-be/internal/dto"

	"gorm.io/gorm"
)

type IHealthService interface {
	Check(ctx context.Context) (*dto.HealthResponse, error)
}

type healthService struct {
	db *gorm.DB
}

func NewHealthService(db *gorm.DB) IHealthService {
	return &healthService{db: db}
}

// Check pings the store. The response is filled in even when the ping fails.
func (hs *healthService) Check(ctx context.Context) (*dto.HealthResponse, error) {
	res := &dto.HealthResponse{Status: "ok", Database: "up"}

	sqlDB, err := hs.db.DB()
	if err == nil {
		pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		err = sqlDB.PingContext(pctx)
	}
	if err != nil {
		res.Status = "degraded"
		res.Database = "down"
		return res, err
	}
	return res, nil
}
