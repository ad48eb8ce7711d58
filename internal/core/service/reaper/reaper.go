package reaper

import (
	"assetvault/internal/config"
	"assetvault/internal/core/port"
	"log/slog"
)

type reaperService struct {
	uow     port.UnitOfWork
	storage port.ObjectStorage
	cfg     config.UploadConfig
	logger  *slog.Logger
}

// NewReaperService creates a new reaper service
func NewReaperService(uow port.UnitOfWork, storage port.ObjectStorage, cfg config.UploadConfig, logger *slog.Logger) port.ReaperService {
	return &reaperService{
		uow:     uow,
		storage: storage,
		cfg:     cfg,
		logger:  logger,
	}
}
