package service

import (
	"context"

	"voltrent-backend/internal/apperr"
	"voltrent-backend/internal/domain"
	"voltrent-backend/internal/repository"
)

type notificationService struct {
	noteRepo  repository.NotificationRepository
	tokenRepo repository.DeviceTokenRepository
}

func NewNotificationService(noteRepo repository.NotificationRepository, tokenRepo repository.DeviceTokenRepository) NotificationService {
	return &notificationService{noteRepo: noteRepo, tokenRepo: tokenRepo}
}

func (s *notificationService) GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.noteRepo.List(ctx, userID, pageSize, (page-1)*pageSize)
}

func (s *notificationService) UnreadCount(ctx context.Context, userID int32) (int32, error) {
	return s.noteRepo.UnreadCount(ctx, userID)
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, notificationID int32) error {
	return s.noteRepo.MarkAsRead(ctx, notificationID, userID)
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID int32) error {
	return s.noteRepo.MarkAllAsRead(ctx, userID)
}

func (s *notificationService) RegisterDevice(ctx context.Context, userID int32, token string, platform domain.DevicePlatform) error {
	if token == "" {
		return apperr.BadRequest("device token is required")
	}
	if platform != domain.DevicePlatformAndroid && platform != domain.DevicePlatformIOS {
		return apperr.BadRequest("unsupported platform")
	}
	return s.tokenRepo.Upsert(ctx, &domain.DeviceToken{UserID: userID, Token: token, Platform: platform})
}

func (s *notificationService) UnregisterDevice(ctx context.Context, token string) error {
	return s.tokenRepo.DeleteByToken(ctx, token)
}
