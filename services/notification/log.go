package notification

import (
	"context"

	"go.uber.org/zap"

	"craftlink/utils"
)

// LogNotificationService records outgoing notifications in the application log.
// Used until a real delivery gateway is wired in deployment.
type LogNotificationService struct{}

func (s *LogNotificationService) SendCustomerNotification(ctx context.Context, customerID, title, body string, data map[string]string) error {
	utils.GetLogger().Info("customer notification",
		zap.String("customerID", customerID),
		zap.String("title", title),
		zap.String("body", body))
	return nil
}

func (s *LogNotificationService) SendProfessionalNotification(ctx context.Context, professionalID, title, body string, data map[string]string) error {
	utils.GetLogger().Info("professional notification",
		zap.String("professionalID", professionalID),
		zap.String("title", title),
		zap.String("body", body))
	return nil
}
