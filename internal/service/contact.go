package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"tent-ledger-backend/internal/domain"
	"tent-ledger-backend/internal/ledger"
	"tent-ledger-backend/internal/repository"
)

type contactService struct {
	repo repository.ContactRepository
	now  func() time.Time
}

func NewContactService(repo repository.ContactRepository) ContactService {
	return &contactService{repo: repo, now: time.Now}
}

// AddContact stores a directory entry. Order count and spend start at zero
// and are never derived from ledger records.
func (s *contactService) AddContact(ctx context.Context, contact *domain.Contact) (*domain.Contact, error) {
	created := domain.Contact{
		Name:     strings.TrimSpace(contact.Name),
		Email:    strings.TrimSpace(contact.Email),
		Phone:    strings.TrimSpace(contact.Phone),
		Location: strings.TrimSpace(contact.Location),
	}
	if err := ledger.ValidateStruct(&created); err != nil {
		return nil, err
	}

	created.ID = uuid.NewString()
	created.CreatedAt = s.now().UTC()
	if err := s.repo.Create(ctx, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *contactService) ListContacts(ctx context.Context) ([]domain.Contact, error) {
	return s.repo.List(ctx)
}
