package get_tutor_sessions

import (
	"time"

	"github.com/m04kA/TMS-BookingService/internal/domain"
	"github.com/m04kA/TMS-BookingService/internal/service/sessions/models"
)

// ToServiceRequest собирает запрос сервиса из параметров запроса
// Периодные параметры парсятся из формата YYYY-MM-DD
func ToServiceRequest(tutorID, userID int64, startDateStr, endDateStr, status string, includeCanceled bool) (*models.GetTutorSessionsRequest, error) {
	req := &models.GetTutorSessionsRequest{
		TutorID:         tutorID,
		UserID:          userID,
		IncludeCanceled: includeCanceled,
	}

	if startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if status != "" {
		req.Status = &status
	}

	return req, nil
}
