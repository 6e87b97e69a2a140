// Package handler はitemsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authhandler "commerce_backend/internal/feature/auth/transport/handler"
	"commerce_backend/internal/feature/items/domain"
	"commerce_backend/internal/feature/items/domain/entity"
	"commerce_backend/internal/feature/items/transport/http/dto"
	"commerce_backend/internal/feature/items/usecase"
)

// ItemUsecase はアイテム操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type ItemUsecase interface {
	Create(ctx context.Context, ownerID uuid.UUID, name, description string, price *float64) (*entity.Item, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Item, error)
	List(ctx context.Context, ownerID *uuid.UUID, page, perPage int) (*usecase.ItemPage, error)
	Update(ctx context.Context, ownerID, itemID uuid.UUID, name, description string, price *float64) (*entity.Item, error)
	Delete(ctx context.Context, ownerID, itemID uuid.UUID) error
}

// ItemHandler はアイテム操作のHTTPリクエストを処理します。
// すべてのエンドポイントはAuthRequiredミドルウェアの背後に配置されます。
type ItemHandler struct {
	items ItemUsecase
}

// NewItemHandler はItemHandlerの新しいインスタンスを生成します。
func NewItemHandler(items ItemUsecase) *ItemHandler {
	return &ItemHandler{items: items}
}

// currentUserID はミドルウェアが設定した認証済みユーザーのIDを取得します。
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	user, ok := authhandler.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return uuid.Nil, false
	}
	return user.ID, true
}

// parseItemID はパスパラメーターのアイテムIDを解析します。
func parseItemID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return uuid.Nil, false
	}
	return id, true
}

// Create は現在のユーザーを所有者とするアイテムを作成します。
// - バリデーションエラー時は400を返却
// - 成功時は201を返却
func (h *ItemHandler) Create(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.ItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.items.Create(c.Request.Context(), ownerID, req.Name, req.Description, req.Price)
	if err != nil {
		// バインディングを通過した値（空白のみの名前など）の検証エラー
		if errors.Is(err, domain.ErrItemInvalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		slog.Error("item creation failed", "user_id", ownerID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, dto.NewItemRes(item))
}

// List はページネーション付きのアイテム一覧を返します。
// mine=trueの場合は現在のユーザーのアイテムのみを返します。
func (h *ItemHandler) List(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var filter *uuid.UUID
	if q.Mine {
		filter = &ownerID
	}

	page, err := h.items.List(c.Request.Context(), filter, q.Page, q.PerPage)
	if err != nil {
		slog.Error("item listing failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, dto.NewItemListRes(page))
}

// Get はIDでアイテムを取得します。読み取りは所有者以外にも公開されます。
func (h *ItemHandler) Get(c *gin.Context) {
	id, ok := parseItemID(c)
	if !ok {
		return
	}

	item, err := h.items.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		slog.Error("item lookup failed", "item_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, dto.NewItemRes(item))
}

// Update は所有者のアイテムを更新します。
// 他ユーザーのアイテムは存在を漏らさないため404を返します。
func (h *ItemHandler) Update(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseItemID(c)
	if !ok {
		return
	}

	var req dto.ItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.items.Update(c.Request.Context(), ownerID, id, req.Name, req.Description, req.Price)
	if err != nil {
		if errors.Is(err, domain.ErrItemInvalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, domain.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		slog.Error("item update failed", "item_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, dto.NewItemRes(item))
}

// Delete は所有者のアイテムを削除します。
// 他ユーザーのアイテムは存在を漏らさないため404を返します。
func (h *ItemHandler) Delete(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseItemID(c)
	if !ok {
		return
	}

	if err := h.items.Delete(c.Request.Context(), ownerID, id); err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		slog.Error("item deletion failed", "item_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.Status(http.StatusNoContent)
}
