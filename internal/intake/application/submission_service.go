package application

import (
	"context"

	"github.com/sngm3741/business-intake/api/internal/intake/domain"
)

type submissionService struct {
	forwarder SubmissionForwarder
}

// NewSubmissionService creates a SubmissionService that forwards through forwarder.
func NewSubmissionService(forwarder SubmissionForwarder) SubmissionService {
	return &submissionService{forwarder: forwarder}
}

func (s *submissionService) Submit(ctx context.Context, payload domain.SubmissionPayload) error {
	return s.forwarder.Forward(ctx, payload)
}
