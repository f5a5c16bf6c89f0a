package advance

import "context"

type AdvanceService interface {
	RecordAdvance(ctx context.Context, req RecordAdvanceRequest) (AdvanceResponse, error)
	ListAdvances(ctx context.Context, limit int) ([]AdvanceResponse, error)
}
