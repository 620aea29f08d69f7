package core

import "context"

type ContactRepository interface {
	Add(ctx context.Context, rec ContactRecord) (string, error)
	List(ctx context.Context) ([]ContactRecord, error)
}

type OrderRepository interface {
	Lookup(ctx context.Context, orderID string) (string, error)
	Find(ctx context.Context, orderID int64) (OrderRecord, error)
}

type TranscriptRepository interface {
	AddTurn(ctx context.Context, turn Turn) error
	GetTurns(ctx context.Context, sessionID string, limit int) ([]Turn, error)
}
