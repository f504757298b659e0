// Package services: services/enquiry_service.go
package services

import (
	"errors"
	"sync"

	"ambica-decor/logger"
	"ambica-decor/models"
)

// EnquiryAPI is the slice of the API client the review panel needs.
type EnquiryAPI interface {
	ListEnquiries() ([]models.Enquiry, error)
	UpdateEnquiryStatus(id, status string) error
}

// EnquiryServiceInterface is the enquiry review panel workflow: a
// read-only list plus one mutating operation, the status transition.
type EnquiryServiceInterface interface {
	Load() error
	List() []models.Enquiry
	SetStatus(id, status string) error
}

// EnquiryService caches the last successfully fetched enquiry list.
// A failed mutation never touches the cache; a successful one refetches.
type EnquiryService struct {
	mu    sync.Mutex
	api   EnquiryAPI
	cache []models.Enquiry
}

// NewEnquiryService builds an EnquiryService over the given API slice.
func NewEnquiryService(api EnquiryAPI) *EnquiryService {
	return &EnquiryService{api: api}
}

// Load refetches the enquiry list. On failure the previous cache is
// kept and the error is surfaced to the caller for notification.
func (s *EnquiryService) Load() error {
	enquiries, err := s.api.ListEnquiries()
	if err != nil {
		logger.Warn.Printf("EnquiryService: load failed, keeping previous list: %v", err)
		return err
	}
	s.mu.Lock()
	s.cache = enquiries
	s.mu.Unlock()
	return nil
}

// List returns a copy of the last successfully fetched list.
func (s *EnquiryService) List() []models.Enquiry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Enquiry, len(s.cache))
	copy(out, s.cache)
	return out
}

// SetStatus transitions an enquiry to the given status. The transition
// is unconditional (re-setting the same status is allowed); it takes
// effect by calling the backend and then refetching the list.
func (s *EnquiryService) SetStatus(id, status string) error {
	if !models.ValidEnquiryStatus(status) {
		return errors.New("unknown enquiry status: " + status)
	}
	if err := s.api.UpdateEnquiryStatus(id, status); err != nil {
		logger.Warn.Printf("EnquiryService: status update failed for %s: %v", id, err)
		return err
	}
	logger.Info.Printf("EnquiryService: enquiry %s moved to %s", id, status)
	return s.Load()
}
