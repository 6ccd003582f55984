package model

// CreateRecordRequest is the body of POST /records
type CreateRecordRequest struct {
	InputText *string  `json:"inputText" validate:"omitempty,min=1"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"omitempty,longitude"`
	StartDate string   `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string   `json:"endDate" validate:"required,datetime=2006-01-02"`
}

// UpdateRecordRequest is the body of PUT /records/{id}.
// Every field is optional; absent fields keep their stored values.
type UpdateRecordRequest struct {
	InputText *string  `json:"inputText" validate:"omitempty,min=1"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"omitempty,longitude"`
	StartDate *string  `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   *string  `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
}

// HasLocationChange reports whether the update touches any location field,
// which forces the service to re-resolve the location.
func (r UpdateRecordRequest) HasLocationChange() bool {
	return r.InputText != nil || r.Latitude != nil || r.Longitude != nil
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	OK  bool   `json:"ok"`
	Now string `json:"now"`
}

// DeleteResponse is the body of DELETE /records/{id}
type DeleteResponse struct {
	OK bool `json:"ok"`
}
