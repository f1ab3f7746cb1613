package service

import (
	"context"
	"log"
	"strings"

	"clientbook/internal/apperr"
	"clientbook/internal/model"
	"clientbook/internal/notify"
	"clientbook/internal/repository"
	"clientbook/pkg/util"
)

// FeedbackService is the append-only feedback log.
type FeedbackService struct {
	repo   repository.IFeedbackRepository
	mail   *notify.Dispatcher
	admins []string
}

// NewFeedbackService creates a new feedback service. Every submission is
// announced to admins.
func NewFeedbackService(repo repository.IFeedbackRepository, mail *notify.Dispatcher, admins []string) *FeedbackService {
	return &FeedbackService{repo: repo, mail: mail, admins: admins}
}

// Record stores one feedback entry with a server timestamp.
func (s *FeedbackService) Record(ctx context.Context, in *model.FeedbackInput) (*model.Feedback, error) {
	in.Comment = strings.TrimSpace(in.Comment)
	in.UserEmail = util.NormalizeEmail(in.UserEmail)
	if err := util.ValidateStruct(in); err != nil {
		return nil, err
	}
	f := &model.Feedback{Rating: in.Rating, Comment: in.Comment, UserEmail: in.UserEmail}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, storeFailure(apperr.ErrFeedbackUnavailable, "feedback", "Record", err)
	}
	return f, nil
}

// ListAll returns every entry, newest first.
func (s *FeedbackService) ListAll(ctx context.Context) ([]*model.Feedback, error) {
	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, storeFailure(apperr.ErrFeedbackUnavailable, "feedback", "ListAll", err)
	}
	return all, nil
}

// Submit records the entry and e-mails the admins. A mail failure is logged
// and does not undo or fail the submission.
func (s *FeedbackService) Submit(ctx context.Context, in *model.FeedbackInput) (*model.Feedback, error) {
	f, err := s.Record(ctx, in)
	if err != nil {
		return nil, err
	}
	if len(s.admins) == 0 {
		return f, nil
	}
	subject, html, err := notify.FeedbackMail(f.UserEmail, f.Rating, f.Comment)
	if err != nil {
		log.Printf("[feedback] render admin mail: %v", err)
		return f, nil
	}
	for _, admin := range s.admins {
		if err := s.mail.Enqueue(ctx, admin, subject, html); err != nil {
			log.Printf("[feedback] notify %s: %v", admin, err)
		}
	}
	return f, nil
}
