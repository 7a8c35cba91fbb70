package dto

import "hr-recruitment/internal/domain/application"

// ApplicationDetailResponse wraps one fully expanded application.
type ApplicationDetailResponse struct {
	Application application.Details `json:"application"`
}
