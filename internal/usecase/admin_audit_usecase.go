package usecase

import (
	"context"
	"encoding/json"
	"time"

	"ecshop/internal/domain/model"
	repo "ecshop/internal/repository"
)

// 監査ログの閲覧（管理者）
type AdminAuditUsecase struct {
	logs repo.AuditLogRepository
}

func NewAdminAuditUsecase(logs repo.AuditLogRepository) *AdminAuditUsecase {
	return &AdminAuditUsecase{logs: logs}
}

type AdminAuditListInput struct {
	Page         int
	Limit        int
	ActorUserID  *int64
	Action       string
	ResourceType string
	ResourceID   *int64
	From         *time.Time
	To           *time.Time
}

type AuditLogView struct {
	ID           int64                   `json:"id"`
	ActorUserID  int64                   `json:"actor_user_id"`
	Action       model.AuditAction       `json:"action"`
	ResourceType model.AuditResourceType `json:"resource_type"`
	ResourceID   int64                   `json:"resource_id"`
	Before       json.RawMessage         `json:"before"`
	After        json.RawMessage         `json:"after"`
	CreatedAt    time.Time               `json:"created_at"`
}

func (u *AdminAuditUsecase) List(ctx context.Context, in AdminAuditListInput) (Page[AuditLogView], error) {
	page, limit, err := normalizePage(in.Page, in.Limit)
	if err != nil {
		return Page[AuditLogView]{}, err
	}
	if in.From != nil && in.To != nil && in.From.After(*in.To) {
		return Page[AuditLogView]{}, validationError("from must be before to")
	}

	f := repo.AuditLogFilter{
		ActorUserID: in.ActorUserID,
		ResourceID:  in.ResourceID,
		From:        in.From,
		To:          in.To,
		Page:        page,
		Limit:       limit,
	}
	if in.Action != "" {
		action, ok := model.ParseAuditAction(in.Action)
		if !ok {
			return Page[AuditLogView]{}, validationError("invalid action")
		}
		f.Action = &action
	}
	if in.ResourceType != "" {
		rt, ok := model.ParseAuditResourceType(in.ResourceType)
		if !ok {
			return Page[AuditLogView]{}, validationError("invalid resource_type")
		}
		f.ResourceType = &rt
	}

	logs, total, err := u.logs.List(ctx, f)
	if err != nil {
		return Page[AuditLogView]{}, internal(err)
	}

	items := make([]AuditLogView, 0, len(logs))
	for _, l := range logs {
		items = append(items, toAuditLogView(l))
	}
	return Page[AuditLogView]{Items: items, Total: total, Page: page, Limit: limit}, nil
}

// 空文字はnullにする
func rawJSON(s string) json.RawMessage {
	if s == "" {
		return nil
	}
	return json.RawMessage(s)
}

func toAuditLogView(l model.AuditLog) AuditLogView {
	return AuditLogView{
		ID:           l.ID,
		ActorUserID:  l.ActorUserID,
		Action:       l.Action,
		ResourceType: l.ResourceType,
		ResourceID:   l.ResourceID,
		Before:       rawJSON(l.BeforeJSON),
		After:        rawJSON(l.AfterJSON),
		CreatedAt:    l.CreatedAt,
	}
}
