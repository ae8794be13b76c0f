package ports

import (
	"context"

	"community-metrics-service/internal/messages/core/domain"
)

type MessageWriterPort interface {
	// InsertMessage:
	//   created = true,  err = nil  -> new record
	//   created = false, err = nil  -> duplicate message_id (idempotent)
	//   created = false, err != nil -> DB error
	InsertMessage(ctx context.Context, m *domain.Message) (created bool, err error)
}
