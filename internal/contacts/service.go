package contacts

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/OmerAlfiel/Shahen-website/pkg/db/models"
	pkgerrors "github.com/OmerAlfiel/Shahen-website/pkg/errors"
	"github.com/OmerAlfiel/Shahen-website/pkg/logger"
	"github.com/OmerAlfiel/Shahen-website/pkg/metrics"
)

// Service defines the contact submission workflow.
type Service interface {
	Submit(ctx context.Context, submission Submission) (*SubmitResult, error)
	List(ctx context.Context, params ListParams) (*Page, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Contact, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, update StatusUpdate) (*models.Contact, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, params SearchParams) (*Page, error)
	Stats(ctx context.Context) (*Stats, error)
}

// ServiceParams groups the service dependencies. Metrics and Now are optional.
type ServiceParams struct {
	Repository Repository
	Logger     *logger.Logger
	Metrics    *metrics.ContactMetrics
	Now        func() time.Time
}

type service struct {
	repo    Repository
	logg    *logger.Logger
	metrics *metrics.ContactMetrics
	now     func() time.Time
}

const notFoundMessage = "Contact submission not found"

// NewService wires contact dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repository == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "contacts repository required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:    params.Repository,
		logg:    logg,
		metrics: params.Metrics,
		now:     now,
	}, nil
}

func (s *service) Submit(ctx context.Context, submission Submission) (*SubmitResult, error) {
	form := submission.Form
	if err := ValidateForm(form); err != nil {
		s.metrics.IncSubmission(metrics.ContactResultInvalid)
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Validation failed").WithDetails(Violations(err))
	}

	contact := &models.Contact{
		Name:      strings.TrimSpace(form.Name),
		Message:   strings.TrimSpace(form.Message),
		Phone:     optional(NormalizePhone(form.Phone)),
		Company:   optional(strings.TrimSpace(form.Company)),
		IPAddress: optional(truncate(submission.IPAddress, 45)),
		UserAgent: optional(submission.UserAgent),
	}
	if err := s.repo.Create(ctx, contact); err != nil {
		s.metrics.IncSubmission(metrics.ContactResultFailed)
		s.logg.Error(ctx, "contact.submit_failed", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, MessageStoreFailed)
	}

	s.metrics.IncSubmission(metrics.ContactResultAccepted)
	logCtx := s.logg.WithContactID(ctx, contact.ID.String())
	s.logg.Info(logCtx, "contact.submitted")

	return &SubmitResult{
		Success: true,
		Message: MessageReceived,
		ID:      contact.ID,
	}, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*Page, error) {
	if params.Status != "" && !params.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid status value")
	}
	rows, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list contacts")
	}
	return newPage(rows, total), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Contact, error) {
	contact, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load contact")
	}
	if contact == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage)
	}
	return contact, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, update StatusUpdate) (*models.Contact, error) {
	if !update.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid status value")
	}
	contact, err := s.repo.UpdateStatus(ctx, id, update)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update contact status")
	}
	if contact == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage)
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"contact_id": id.String(),
		"status":     update.Status.String(),
	}), "contact.status_updated")
	return contact, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete contact")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage)
	}
	return nil
}

func (s *service) Search(ctx context.Context, params SearchParams) (*Page, error) {
	params.Term = strings.TrimSpace(params.Term)
	if params.Term == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Search term is required")
	}
	rows, total, err := s.repo.Search(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search contacts")
	}
	return newPage(rows, total), nil
}

// Stats counts today's submissions from midnight UTC.
func (s *service) Stats(ctx context.Context) (*Stats, error) {
	since := s.now().UTC().Truncate(24 * time.Hour)
	stats, err := s.repo.Stats(ctx, since)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "contact stats")
	}
	return &stats, nil
}

func newPage(rows []models.Contact, total int64) *Page {
	if rows == nil {
		rows = []models.Contact{}
	}
	return &Page{Contacts: rows, Total: total}
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func truncate(value string, limit int) string {
	if len(value) <= limit {
		return value
	}
	return value[:limit]
}
