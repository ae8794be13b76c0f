package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"community-metrics-service/internal/messages/core/domain"
	"community-metrics-service/internal/messages/core/usecase"
)

// Fake repository implementing MessageWriterPort
type fakeMessageRepo struct {
	InsertFn func(ctx context.Context, m *domain.Message) (bool, error)
	inserted []string
}

func (f *fakeMessageRepo) InsertMessage(ctx context.Context, m *domain.Message) (bool, error) {
	f.inserted = append(f.inserted, m.MessageID)
	if f.InsertFn != nil {
		return f.InsertFn(ctx, m)
	}
	return true, nil
}

// ------------------------------------------------------------
// SUCCESS WITH DUPLICATES
// ------------------------------------------------------------
func TestImportMessages_CountsCreatedAndDuplicates(t *testing.T) {
	repo := &fakeMessageRepo{
		InsertFn: func(ctx context.Context, m *domain.Message) (bool, error) {
			return m.MessageID != "2", nil
		},
	}

	uc := usecase.NewImportMessagesUseCase(repo, zap.NewNop())

	res, err := uc.Execute(context.Background(), usecase.ImportMessagesInput{
		Messages: []domain.Message{
			msg("1", "alice", "2024-01-01T00:00:00Z", "2024-01-02T00:00:00Z"),
			msg("2", "alice", "2024-01-01T00:00:00Z", "2024-01-03T00:00:00Z"),
			msg("3", "bob", "2024-01-01T00:00:00Z", "2024-01-03T00:00:00Z"),
		},
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Created != 2 {
		t.Fatalf("expected 2 created, got %d", res.Created)
	}
	if res.Duplicates != 1 {
		t.Fatalf("expected 1 duplicate, got %d", res.Duplicates)
	}
}

// ------------------------------------------------------------
// INVALID ROW -> NOTHING WRITTEN
// ------------------------------------------------------------
func TestImportMessages_InvalidRowRejectsBatch(t *testing.T) {
	repo := &fakeMessageRepo{}

	uc := usecase.NewImportMessagesUseCase(repo, zap.NewNop())

	bad := msg("", "bob", "2024-01-01T00:00:00Z", "2024-01-03T00:00:00Z")

	_, err := uc.Execute(context.Background(), usecase.ImportMessagesInput{
		Messages: []domain.Message{
			msg("1", "alice", "2024-01-01T00:00:00Z", "2024-01-02T00:00:00Z"),
			bad,
		},
	})

	if !errors.Is(err, usecase.ErrInvalidMessage) {
		t.Fatalf("expected ErrInvalidMessage, got %v", err)
	}
	if len(repo.inserted) != 0 {
		t.Fatalf("expected no inserts, got %v", repo.inserted)
	}
}

// ------------------------------------------------------------
// REPOSITORY ERROR
// ------------------------------------------------------------
func TestImportMessages_RepositoryError(t *testing.T) {
	repoErr := errors.New("db down")
	repo := &fakeMessageRepo{
		InsertFn: func(ctx context.Context, m *domain.Message) (bool, error) {
			return false, repoErr
		},
	}

	uc := usecase.NewImportMessagesUseCase(repo, zap.NewNop())

	_, err := uc.Execute(context.Background(), usecase.ImportMessagesInput{
		Messages: []domain.Message{
			msg("1", "alice", "2024-01-01T00:00:00Z", "2024-01-02T00:00:00Z"),
		},
	})

	if !errors.Is(err, repoErr) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
}
