package settlement

import "context"

type StoreAPI interface {
	Create(ctx context.Context, tenantID string, input Input, result Result) (string, error)
	Get(ctx context.Context, tenantID, id string) (Record, error)
	Count(ctx context.Context, tenantID string) (int, error)
	List(ctx context.Context, tenantID string, limit, offset int) ([]Record, error)
	UpdateInput(ctx context.Context, tenantID, id string, input Input) error
	UpdateInputAndResult(ctx context.Context, tenantID, id string, input Input, result Result) error
	Delete(ctx context.Context, tenantID, id string) error
	AddAttachment(ctx context.Context, tenantID, settlementID, fileURL string) (string, error)
	ListAttachments(ctx context.Context, tenantID, settlementID string) ([]Attachment, error)
}
