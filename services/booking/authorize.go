package booking

import "craftlink/models"

// canAccess is the capability check shared by get, status update, cancellation
// and photo attachment: only the booking's customer or its assigned
// professional may see or act on it. Administrators bypass this at the request
// layer.
func canAccess(b *models.Booking, requesterID string) bool {
	return b.IsParty(requesterID)
}
