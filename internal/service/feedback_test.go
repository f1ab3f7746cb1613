package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"clientbook/internal/apperr"
	"clientbook/internal/model"
)

func TestSubmitFeedbackNotifiesAdmins(t *testing.T) {
	env := newTestEnv(t)
	f, err := env.feedback.Submit(context.Background(), &model.FeedbackInput{
		Rating:    3,
		Comment:   "  Calendar is slow  ",
		UserEmail: "Ana@Example.com",
	})
	if err != nil {
		t.Fatal(err)
	}
	if f.Comment != "Calendar is slow" || f.UserEmail != "ana@example.com" || f.CreatedAt.IsZero() {
		t.Errorf("feedback = %+v", f)
	}

	mail := env.store.Mail()
	if len(mail) != 1 {
		t.Fatalf("queued %d", len(mail))
	}
	if mail[0].To != "admin@example.com" || mail[0].Message.Subject != "New App Feedback: ★★★☆☆" {
		t.Errorf("mail = %+v", mail[0])
	}
	if !strings.Contains(mail[0].Message.HTML, "Calendar is slow") {
		t.Errorf("body = %s", mail[0].Message.HTML)
	}
}

func TestSubmitFeedbackToleratesMailFailure(t *testing.T) {
	env := newTestEnv(t)
	env.store.Fail("mail.Enqueue", errors.New("quota exceeded"))

	if _, err := env.feedback.Submit(context.Background(), &model.FeedbackInput{Rating: 5, UserEmail: "a@example.com"}); err != nil {
		t.Fatalf("submission failed with the mail queue down: %v", err)
	}
	all, _ := env.feedback.ListAll(context.Background())
	if len(all) != 1 {
		t.Errorf("stored %d", len(all))
	}
}

func TestFeedbackValidation(t *testing.T) {
	env := newTestEnv(t)
	env.store.Fail("feedback.Create", errors.New("must not be called"))

	tests := []struct {
		name string
		in   model.FeedbackInput
	}{
		{"rating too low", model.FeedbackInput{Rating: 0, UserEmail: "a@example.com"}},
		{"rating too high", model.FeedbackInput{Rating: 6, UserEmail: "a@example.com"}},
		{"no email", model.FeedbackInput{Rating: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.in
			if _, err := env.feedback.Submit(context.Background(), &in); apperr.KindOf(err) != apperr.KindValidation {
				t.Errorf("err = %v", err)
			}
		})
	}
}

func TestListAllNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	for _, r := range []int{1, 2, 3} {
		if _, err := env.feedback.Record(ctx, &model.FeedbackInput{Rating: r, UserEmail: "a@example.com"}); err != nil {
			t.Fatal(err)
		}
	}
	all, err := env.feedback.ListAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 || all[0].Rating != 3 || all[2].Rating != 1 {
		t.Errorf("order = %+v", all)
	}

	env.store.Fail("feedback.FindAll", errors.New("timeout"))
	if _, err := env.feedback.ListAll(ctx); !errors.Is(err, apperr.ErrFeedbackUnavailable) {
		t.Errorf("err = %v", err)
	}
}
