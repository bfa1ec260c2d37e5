package service

import (
	"context"

	"github.com/RajaDani/antique-watches-sub001/internal/apperr"
	"github.com/RajaDani/antique-watches-sub001/internal/cache"
	"github.com/RajaDani/antique-watches-sub001/internal/model"
)

// CartService manages the Redis-backed shopping cart.
type CartService interface {
	Get(ctx context.Context, userID string) (*model.CartResponse, error)
	AddItem(ctx context.Context, userID string, req *model.CartItemRequest) (*model.CartResponse, error)
	SetQuantity(ctx context.Context, userID, productID string, quantity int) (*model.CartResponse, error)
	RemoveItem(ctx context.Context, userID, productID string) (*model.CartResponse, error)
	Clear(ctx context.Context, userID string) error
}

type cartServiceImpl struct {
	store    cache.CartStore
	products ProductService
}

// NewCartService creates a new cart service.
func NewCartService(store cache.CartStore, products ProductService) CartService {
	return &cartServiceImpl{store: store, products: products}
}

// Get renders the cart against current product rows. Lines whose product has
// disappeared are dropped silently.
func (s *cartServiceImpl) Get(ctx context.Context, userID string) (*model.CartResponse, error) {
	cart, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.OperationFailed, "failed to load cart", err)
	}
	return s.render(ctx, cart)
}

// AddItem puts a product in the cart, capped at the available stock.
func (s *cartServiceImpl) AddItem(ctx context.Context, userID string, req *model.CartItemRequest) (*model.CartResponse, error) {
	product, err := s.products.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	cart, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.OperationFailed, "failed to load cart", err)
	}

	qty := cart.Quantity(req.ProductID) + req.Quantity
	if qty > product.StockQuantity {
		return nil, apperr.Newf(apperr.Conflict, "only %d of %s in stock", product.StockQuantity, product.Name)
	}

	cart.SetQuantity(req.ProductID, qty)
	if err := s.store.Save(ctx, userID, cart); err != nil {
		return nil, apperr.Wrap(apperr.OperationFailed, "failed to save cart", err)
	}
	return s.render(ctx, cart)
}

// SetQuantity replaces a line's quantity. Zero removes the line.
func (s *cartServiceImpl) SetQuantity(ctx context.Context, userID, productID string, quantity int) (*model.CartResponse, error) {
	if quantity < 0 {
		return nil, apperr.New(apperr.Invalid, "quantity cannot be negative")
	}

	if quantity > 0 {
		product, err := s.products.GetByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		if quantity > product.StockQuantity {
			return nil, apperr.Newf(apperr.Conflict, "only %d of %s in stock", product.StockQuantity, product.Name)
		}
	}

	cart, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.OperationFailed, "failed to load cart", err)
	}

	cart.SetQuantity(productID, quantity)
	if err := s.store.Save(ctx, userID, cart); err != nil {
		return nil, apperr.Wrap(apperr.OperationFailed, "failed to save cart", err)
	}
	return s.render(ctx, cart)
}

func (s *cartServiceImpl) RemoveItem(ctx context.Context, userID, productID string) (*model.CartResponse, error) {
	return s.SetQuantity(ctx, userID, productID, 0)
}

func (s *cartServiceImpl) Clear(ctx context.Context, userID string) error {
	if err := s.store.Clear(ctx, userID); err != nil {
		return apperr.Wrap(apperr.OperationFailed, "failed to clear cart", err)
	}
	return nil
}

func (s *cartServiceImpl) render(ctx context.Context, cart *model.Cart) (*model.CartResponse, error) {
	resp := &model.CartResponse{Lines: []model.CartLine{}}
	for _, item := range cart.Items {
		product, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			if apperr.KindOf(err) == apperr.NotFound {
				continue
			}
			return nil, err
		}
		resp.Lines = append(resp.Lines, model.CartLine{Product: *product, Quantity: item.Quantity})
		resp.SubtotalCents += product.PriceCents * int64(item.Quantity)
	}
	return resp, nil
}
