package notification

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"

	"guildroster/models"
	"guildroster/utils"
)

// NotificationService defines methods for announcing schedule decisions.
// Announcements are best-effort: a failed push never fails the write that
// triggered it.
type NotificationService interface {
	FinalTimeSet(ctx context.Context, teamName string, week models.WeekKey, slotKey string) error
	FinalTimeCleared(ctx context.Context, teamName string, week models.WeekKey) error
}

// DefaultNotificationService sends FCM topic messages, one topic per guild.
type DefaultNotificationService struct {
	Topic  string
	Logger *zap.Logger
}

func NewDefaultNotificationService(topic string, logger *zap.Logger) *DefaultNotificationService {
	if topic == "" {
		topic = "guild-announcements"
	}
	return &DefaultNotificationService{Topic: topic, Logger: logger}
}

// FinalTimeSet announces a decided run time for a team's week.
func (s *DefaultNotificationService) FinalTimeSet(ctx context.Context, teamName string, week models.WeekKey, slotKey string) error {
	title := fmt.Sprintf("%s: run time decided", teamName)
	body := fmt.Sprintf("This week's run is set for %s", slotKey)
	return s.send(ctx, title, body, map[string]string{
		"teamName": teamName,
		"weekKey":  string(week),
		"slotKey":  slotKey,
	})
}

// FinalTimeCleared announces that a previously decided time no longer holds.
func (s *DefaultNotificationService) FinalTimeCleared(ctx context.Context, teamName string, week models.WeekKey) error {
	title := fmt.Sprintf("%s: run time cleared", teamName)
	body := "The decided time was removed after a schedule edit; watch for a new one."
	return s.send(ctx, title, body, map[string]string{
		"teamName": teamName,
		"weekKey":  string(week),
	})
}

func (s *DefaultNotificationService) send(ctx context.Context, title, body string, data map[string]string) error {
	if utils.FCMClient == nil {
		if s.Logger != nil {
			s.Logger.Info("push disabled, announcement logged only",
				zap.String("title", title), zap.String("body", body))
		}
		return nil
	}
	msg := &messaging.Message{
		Topic: s.Topic,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send announcement: %w", err)
	}
	return nil
}
