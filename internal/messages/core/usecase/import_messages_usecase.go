package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"community-metrics-service/internal/messages/core/domain"
	"community-metrics-service/internal/messages/core/ports"
)

var (
	ErrInvalidMessage = errors.New("invalid message")
)

// ImportMessagesUseCase copies snapshot rows into a message store. Rows are
// keyed by message_id, so re-importing a snapshot is idempotent.
type ImportMessagesUseCase struct {
	repo ports.MessageWriterPort
	log  *zap.Logger
}

func NewImportMessagesUseCase(repo ports.MessageWriterPort, log *zap.Logger) *ImportMessagesUseCase {
	return &ImportMessagesUseCase{repo: repo, log: log}
}

type ImportMessagesInput struct {
	Messages []domain.Message
}

type ImportMessagesResult struct {
	Created    int
	Duplicates int
}

// Execute validates every row before writing any of them.
func (uc *ImportMessagesUseCase) Execute(ctx context.Context, in ImportMessagesInput) (ImportMessagesResult, error) {
	var res ImportMessagesResult

	for i := range in.Messages {
		if err := validateMessage(&in.Messages[i]); err != nil {
			uc.log.Warn("Import rejected",
				zap.Int("index", i),
				zap.String("message_id", in.Messages[i].MessageID),
				zap.Error(err))
			return res, fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	for i := range in.Messages {
		created, err := uc.repo.InsertMessage(ctx, &in.Messages[i])
		if err != nil {
			return res, fmt.Errorf("failed to insert message %s: %w", in.Messages[i].MessageID, err)
		}

		if created {
			res.Created++
		} else {
			res.Duplicates++
		}
	}

	uc.log.Info("Messages imported",
		zap.Int("created", res.Created),
		zap.Int("duplicates", res.Duplicates))

	return res, nil
}

func validateMessage(m *domain.Message) error {
	if m.MessageID == "" || m.ChannelName == "" || m.AuthorName == "" {
		return ErrInvalidMessage
	}
	if m.Timestamp.IsZero() || m.AuthorCreated.IsZero() {
		return ErrInvalidMessage
	}
	return nil
}
