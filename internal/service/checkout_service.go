package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/alimikegami/perfume-store/internal/domain"
	"github.com/alimikegami/perfume-store/internal/dto"
	"github.com/alimikegami/perfume-store/internal/repository"
	"github.com/alimikegami/perfume-store/pkg/errs"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

const EventOrderPlaced = "order_placed"

type CheckoutServiceImpl struct {
	cartService CartService
	repo        repository.CatalogRepository
	publisher   EventPublisher
	validate    *validator.Validate
}

func CreateCheckoutService(cartService CartService, repo repository.CatalogRepository, publisher EventPublisher, validate *validator.Validate) CheckoutService {
	return &CheckoutServiceImpl{
		cartService: cartService,
		repo:        repo,
		publisher:   publisher,
		validate:    validate,
	}
}

// Checkout places an order for the session's cart. The cart is cleared only
// after the remote system accepted the order.
func (s *CheckoutServiceImpl) Checkout(ctx context.Context, sessionID string, req dto.CheckoutRequest) (order domain.Order, err error) {
	if err = s.validate.Struct(req); err != nil {
		return order, fmt.Errorf("%w: %w", errs.ErrValidation, err)
	}

	cart, err := s.cartService.GetCart(ctx, sessionID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CheckoutService.Checkout").Msg("")
		return
	}

	if len(cart.Items) == 0 {
		return order, errs.ErrCartEmpty
	}

	remoteReq := dto.RemoteOrderRequest{
		CustomerName:  req.CustomerName,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		City:          req.City,
		PostalCode:    req.PostalCode,
		PaymentMethod: req.PaymentMethod,
		Total:         cart.TotalPrice,
		Items:         make([]dto.OrderItemRequest, 0, len(cart.Items)),
	}

	for _, item := range cart.Items {
		remoteReq.Items = append(remoteReq.Items, dto.OrderItemRequest{
			ProductID: item.Product.ID,
			Quantity:  item.Quantity,
			UnitPrice: item.Product.Price,
		})
	}

	order, err = s.repo.AddOrder(ctx, remoteReq)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CheckoutService.Checkout").Msg("")
		return
	}

	if err = s.cartService.ClearCart(ctx, sessionID); err != nil {
		// The order exists remotely; a stale cart is the lesser problem.
		log.Ctx(ctx).Error().Err(err).Str("component", "CheckoutService.Checkout").Msg("failed to clear cart")
		err = nil
	}

	publish(ctx, s.publisher, strconv.FormatInt(order.ID, 10), dto.KafkaMessage{
		EventType: EventOrderPlaced,
		Data: dto.OrderPlaced{
			OrderID: order.ID,
			Total:   cart.TotalPrice,
			Items:   cart.ItemCount,
		},
	})

	return order, nil
}
