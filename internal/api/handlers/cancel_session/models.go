package cancel_session

import (
	"github.com/m04kA/TMS-BookingService/internal/service/sessions/models"
)

// CancelSessionRequest HTTP request model
type CancelSessionRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CancelSessionRequest) ToServiceRequest(userID int64) *models.CancelSessionRequest {
	return &models.CancelSessionRequest{
		UserID:             userID,
		CancellationReason: r.CancellationReason,
	}
}
