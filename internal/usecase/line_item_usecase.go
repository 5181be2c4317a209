package usecase

import (
	"context"
	"errors"
	"strings"

	"salesnote/internal/domain/model"
	repo "salesnote/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	msgProductNotFound  = "Producto no encontrado"
	msgLineItemCreated  = "Contenido de la nota de venta creado"
	msgLineItemFailed   = "Error al crear contenido de la nota de venta"
	msgInvalidClientID  = "clientId es requerido"
	msgInvalidProductID = "productId es requerido"
	msgInvalidQuantity  = "quantity debe ser mayor a 0"
)

type LineItemUsecase struct {
	products  repo.ProductRepository
	lineItems repo.LineItemRepository
	ids       IDGenerator
	clock     Clock
}

// DI
func NewLineItemUsecase(products repo.ProductRepository, lineItems repo.LineItemRepository, ids IDGenerator, clock Clock) *LineItemUsecase {
	return &LineItemUsecase{products: products, lineItems: lineItems, ids: ids, clock: clock}
}

type StageLineItemInput struct {
	ClientID  string
	ProductID string
	Quantity  decimal.Decimal
}

type StageLineItemOutput struct {
	ID      string          `json:"id"`
	Message string          `json:"message"`
	Amount  decimal.Decimal `json:"amount"`
}

// 単価は登録時点の basePrice を焼き付ける
func (u *LineItemUsecase) Stage(ctx context.Context, in StageLineItemInput) (StageLineItemOutput, error) {
	clientID := strings.TrimSpace(in.ClientID)
	productID := strings.TrimSpace(in.ProductID)
	if clientID == "" {
		return StageLineItemOutput{}, validationError(msgInvalidClientID)
	}
	if productID == "" {
		return StageLineItemOutput{}, validationError(msgInvalidProductID)
	}
	if !in.Quantity.IsPositive() {
		return StageLineItemOutput{}, validationError(msgInvalidQuantity)
	}

	p, err := u.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return StageLineItemOutput{}, notFoundError(msgProductNotFound)
		}
		return StageLineItemOutput{}, dependencyError(msgLineItemFailed, err)
	}

	item := model.NewLineItem(u.ids.NewID(), clientID, p.ID, in.Quantity, p.BasePrice, u.clock.Now())
	if err := u.lineItems.Create(ctx, item); err != nil {
		return StageLineItemOutput{}, dependencyError(msgLineItemFailed, err)
	}

	return StageLineItemOutput{ID: item.ID, Message: msgLineItemCreated, Amount: item.Amount}, nil
}
