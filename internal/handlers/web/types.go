package web

import (
	"context"

	"github.com/quangdm/stmail/internal/send"
	"github.com/quangdm/stmail/model"
)

type DefaultsStore interface {
	Load(ctx context.Context, owner string) (*model.DefaultsRecord, error)
	Save(ctx context.Context, owner string, subject, body string, files []model.FileMetadata) error
}

type SendService interface {
	Execute(ctx context.Context, input send.Input) (*send.Result, error)
}
