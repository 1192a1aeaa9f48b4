package inquiry

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Notifier interface {
	SendInquiryNotification(ctx context.Context, inq Inquiry) (string, error)
}

type Service struct {
	repo     Repository
	location *time.Location
	notifier Notifier
}

func NewService(repo Repository, location *time.Location, notifier Notifier) *Service {
	return &Service{
		repo:     repo,
		location: location,
		notifier: notifier,
	}
}

// Submit normalizes and stores a contact inquiry. Field validation happens at
// the handler; here the values are trimmed and the email lowercased before
// insertion.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (Inquiry, error) {
	inq := Inquiry{
		ID:        primitive.NewObjectID().Hex(),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Mobile:    strings.TrimSpace(req.Mobile),
		Category:  strings.TrimSpace(req.Category),
		CreatedAt: time.Now().In(s.location),
	}

	if err := s.repo.Insert(ctx, inq); err != nil {
		return Inquiry{}, err
	}
	return inq, nil
}

// AdminList returns every inquiry, newest first. Category and date filtering
// is a front-end concern over the full list.
func (s *Service) AdminList(ctx context.Context) ([]Inquiry, error) {
	return s.repo.List(ctx)
}

func (s *Service) Notify(ctx context.Context, inq Inquiry) error {
	if s.notifier == nil {
		return nil
	}
	_, err := s.notifier.SendInquiryNotification(ctx, inq)
	return err
}
