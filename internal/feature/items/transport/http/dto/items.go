// Package dto defines data transfer objects for the items HTTP API.
package dto

import (
	"time"

	"commerce_backend/internal/feature/items/domain/entity"
	"commerce_backend/internal/feature/items/usecase"
)

// ItemReq represents the request body for creating or replacing an item.
type ItemReq struct {
	Name        string   `json:"name" binding:"required,max=255"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
}

// ListQuery represents the pagination query parameters for the item list.
// Out-of-range values are normalized by the usecase rather than rejected.
type ListQuery struct {
	Page    int  `form:"page"`
	PerPage int  `form:"per_page"`
	Mine    bool `form:"mine"`
}

// ItemRes represents an item in the API response.
type ItemRes struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       *float64  `json:"price"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewItemRes はエンティティからItemResを組み立てます。
func NewItemRes(i *entity.Item) ItemRes {
	return ItemRes{
		ID:          i.ID.String(),
		Name:        i.Name,
		Description: i.Description,
		Price:       i.Price,
		UserID:      i.UserID.String(),
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

// ItemListRes represents a paginated item list response.
type ItemListRes struct {
	Items   []ItemRes `json:"items"`
	Total   int64     `json:"total"`
	Page    int       `json:"page"`
	PerPage int       `json:"per_page"`
	HasNext bool      `json:"has_next"`
	HasPrev bool      `json:"has_prev"`
}

// NewItemListRes はページからItemListResを組み立てます。
func NewItemListRes(p *usecase.ItemPage) ItemListRes {
	items := make([]ItemRes, 0, len(p.Items))
	for i := range p.Items {
		items = append(items, NewItemRes(&p.Items[i]))
	}
	return ItemListRes{
		Items:   items,
		Total:   p.Total,
		Page:    p.Page,
		PerPage: p.PerPage,
		HasNext: p.HasNext(),
		HasPrev: p.HasPrev(),
	}
}
