package notification

import "context"

// NotificationService is the delivery boundary. Push/SMS/email transport is an
// external concern; this core only hands messages across it.
type NotificationService interface {
	SendCustomerNotification(ctx context.Context, customerID, title, body string, data map[string]string) error
	SendProfessionalNotification(ctx context.Context, professionalID, title, body string, data map[string]string) error
}
