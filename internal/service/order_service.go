package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/alimikegami/perfume-store/internal/domain"
	"github.com/alimikegami/perfume-store/internal/dto"
	"github.com/alimikegami/perfume-store/internal/infrastructure/metrics"
	"github.com/alimikegami/perfume-store/internal/repository"
	"github.com/alimikegami/perfume-store/pkg/errs"
	"github.com/alimikegami/perfume-store/pkg/utils"
	"github.com/rs/zerolog/log"
)

const EventOrderStatusChanged = "order_status_changed"

const (
	SortByCreatedAt    = "created_at"
	SortByTotal        = "total"
	SortByCustomerName = "customer_name"
	SortByStatus       = "status"
)

// OrderServiceImpl caches the order collection shared by the table and the
// board. The cache is only ever replaced by a refetch or patched after a
// confirmed write.
type OrderServiceImpl struct {
	repo      repository.CatalogRepository
	publisher EventPublisher
	location  *time.Location
	now       func() time.Time

	mu     sync.Mutex
	orders []domain.Order
	loaded bool
	// display order of card ids per board column, never persisted remotely
	columns map[domain.OrderStatus][]int64
}

func CreateOrderService(repo repository.CatalogRepository, publisher EventPublisher, location *time.Location) *OrderServiceImpl {
	if location == nil {
		location = time.UTC
	}

	return &OrderServiceImpl{
		repo:      repo,
		publisher: publisher,
		location:  location,
		now:       time.Now,
		columns:   make(map[domain.OrderStatus][]int64),
	}
}

func (s *OrderServiceImpl) Reload(ctx context.Context) (data []domain.Order, err error) {
	orders, err := s.repo.GetOrders(ctx)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "OrderService.Reload").Msg("")
		return
	}

	s.mu.Lock()
	s.orders = orders
	s.loaded = true
	s.mu.Unlock()

	return copyOrders(orders), nil
}

func (s *OrderServiceImpl) snapshot(ctx context.Context) ([]domain.Order, error) {
	s.mu.Lock()
	if s.loaded {
		orders := copyOrders(s.orders)
		s.mu.Unlock()
		return orders, nil
	}
	s.mu.Unlock()

	return s.Reload(ctx)
}

func (s *OrderServiceImpl) ListOrders(ctx context.Context, filter dto.OrderFilter) (data []domain.Order, err error) {
	dateRange, err := utils.DateBucketRange(filter.DateRange, s.now(), s.location)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrClient, err)
	}

	var status domain.OrderStatus
	if filter.Status != "" && filter.Status != utils.BucketAll {
		status, err = domain.ParseOrderStatus(filter.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errs.ErrInvalidOrderStatus, err)
		}
	}

	less, err := orderLess(filter.SortBy, filter.SortDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrClient, err)
	}

	orders, err := s.snapshot(ctx)
	if err != nil {
		return
	}

	q := strings.ToLower(strings.TrimSpace(filter.Q))
	data = make([]domain.Order, 0, len(orders))
	for _, order := range orders {
		if status != "" && order.Status != status {
			continue
		}
		if !dateRange.Contains(order.CreatedAt) {
			continue
		}
		if q != "" && !matchesOrder(order, q) {
			continue
		}
		data = append(data, order)
	}

	sort.SliceStable(data, func(i, j int) bool {
		return less(data[i], data[j])
	})

	return data, nil
}

func matchesOrder(order domain.Order, q string) bool {
	return strings.Contains(strconv.FormatInt(order.ID, 10), q) ||
		strings.Contains(strings.ToLower(order.CustomerName), q) ||
		strings.Contains(strings.ToLower(order.Email), q)
}

func orderLess(sortBy, sortDir string) (func(a, b domain.Order) bool, error) {
	var less func(a, b domain.Order) bool

	switch sortBy {
	case "", SortByCreatedAt:
		less = func(a, b domain.Order) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortByTotal:
		less = func(a, b domain.Order) bool { return a.Total < b.Total }
	case SortByCustomerName:
		less = func(a, b domain.Order) bool {
			return strings.ToLower(a.CustomerName) < strings.ToLower(b.CustomerName)
		}
	case SortByStatus:
		less = func(a, b domain.Order) bool { return statusRank(a.Status) < statusRank(b.Status) }
	default:
		return nil, fmt.Errorf("unknown sort key %q", sortBy)
	}

	switch strings.ToLower(sortDir) {
	case "", "desc":
		return func(a, b domain.Order) bool { return less(b, a) }, nil
	case "asc":
		return less, nil
	default:
		return nil, fmt.Errorf("unknown sort direction %q", sortDir)
	}
}

func statusRank(status domain.OrderStatus) int {
	for i, s := range domain.OrderStatuses {
		if s == status {
			return i
		}
	}
	return len(domain.OrderStatuses)
}

func (s *OrderServiceImpl) GetOrder(ctx context.Context, id int64) (data domain.Order, err error) {
	data, err = s.repo.GetOrderByID(ctx, id)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "OrderService.GetOrder").Msg("")
	}

	return
}

// ChangeOrderStatus always forwards the requested status; the remote system
// decides whether the transition is legal. The cached order only changes once
// the remote write succeeded; on failure the collection is refetched.
func (s *OrderServiceImpl) ChangeOrderStatus(ctx context.Context, id int64, status string) (data domain.Order, err error) {
	newStatus, err := domain.ParseOrderStatus(status)
	if err != nil {
		return data, fmt.Errorf("%w: %w", errs.ErrInvalidOrderStatus, err)
	}

	if err = s.repo.UpdateOrderStatus(ctx, id, newStatus); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "OrderService.ChangeOrderStatus").Int64("order_id", id).Msg("")
		metrics.OrderStatusChangesTotal.WithLabelValues(string(newStatus), metrics.ResultFailure).Inc()
		if _, reloadErr := s.Reload(ctx); reloadErr != nil {
			log.Ctx(ctx).Error().Err(reloadErr).Str("component", "OrderService.ChangeOrderStatus").Msg("refetch after failed status change")
		}
		return data, err
	}

	metrics.OrderStatusChangesTotal.WithLabelValues(string(newStatus), metrics.ResultSuccess).Inc()
	s.setCachedStatus(id, newStatus)

	publish(ctx, s.publisher, strconv.FormatInt(id, 10), dto.KafkaMessage{
		EventType: EventOrderStatusChanged,
		Data: dto.OrderStatusChanged{
			OrderID: id,
			Status:  string(newStatus),
		},
	})

	if order, ok := s.cachedOrder(id); ok {
		return order, nil
	}

	return s.GetOrder(ctx, id)
}

func (s *OrderServiceImpl) setCachedStatus(id int64, status domain.OrderStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i].Status = status
			return
		}
	}
}

func (s *OrderServiceImpl) cachedOrder(id int64) (domain.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, order := range s.orders {
		if order.ID == id {
			return order, true
		}
	}
	return domain.Order{}, false
}

func (s *OrderServiceImpl) Board(ctx context.Context) (data []dto.BoardColumn, err error) {
	orders, err := s.snapshot(ctx)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.buildBoard(orders), nil
}

// buildBoard must be called with mu held.
func (s *OrderServiceImpl) buildBoard(orders []domain.Order) []dto.BoardColumn {
	board := make([]dto.BoardColumn, 0, len(domain.OrderStatuses))
	for _, status := range domain.OrderStatuses {
		board = append(board, dto.BoardColumn{
			Status: status,
			Orders: s.columnOrders(status, orders),
		})
	}
	return board
}

// columnOrders places cards with a remembered position first, then the rest
// newest first. Must be called with mu held.
func (s *OrderServiceImpl) columnOrders(status domain.OrderStatus, orders []domain.Order) []domain.Order {
	byID := make(map[int64]domain.Order)
	for _, order := range orders {
		if order.Status == status {
			byID[order.ID] = order
		}
	}

	column := make([]domain.Order, 0, len(byID))
	for _, id := range s.columns[status] {
		if order, ok := byID[id]; ok {
			column = append(column, order)
			delete(byID, id)
		}
	}

	rest := make([]domain.Order, 0, len(byID))
	for _, order := range byID {
		rest = append(rest, order)
	}
	sort.Slice(rest, func(i, j int) bool {
		if rest[i].CreatedAt.Equal(rest[j].CreatedAt) {
			return rest[i].ID > rest[j].ID
		}
		return rest[i].CreatedAt.After(rest[j].CreatedAt)
	})

	return append(column, rest...)
}

// MoveCard reorders within a column locally; moving across columns goes
// through ChangeOrderStatus.
func (s *OrderServiceImpl) MoveCard(ctx context.Context, req dto.MoveCardRequest) (data []dto.BoardColumn, err error) {
	toStatus, err := domain.ParseOrderStatus(req.ToStatus)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidOrderStatus, err)
	}

	orders, err := s.snapshot(ctx)
	if err != nil {
		return
	}

	var current *domain.Order
	for i := range orders {
		if orders[i].ID == req.OrderID {
			current = &orders[i]
			break
		}
	}
	if current == nil {
		return nil, errs.ErrNotFound
	}

	if current.Status != toStatus {
		if _, err = s.ChangeOrderStatus(ctx, req.OrderID, string(toStatus)); err != nil {
			return
		}
		if orders, err = s.snapshot(ctx); err != nil {
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	column := s.columnOrders(toStatus, orders)
	ids := make([]int64, 0, len(column))
	for _, order := range column {
		if order.ID != req.OrderID {
			ids = append(ids, order.ID)
		}
	}

	index := req.ToIndex
	if index < 0 {
		index = 0
	}
	if index > len(ids) {
		index = len(ids)
	}

	ids = append(ids, 0)
	copy(ids[index+1:], ids[index:])
	ids[index] = req.OrderID
	s.columns[toStatus] = ids

	return s.buildBoard(orders), nil
}

func (s *OrderServiceImpl) DeleteOrder(ctx context.Context, id int64) (err error) {
	if err = s.repo.DeleteOrder(ctx, id); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "OrderService.DeleteOrder").Msg("")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.orders[:0]
	for _, order := range s.orders {
		if order.ID != id {
			kept = append(kept, order)
		}
	}
	s.orders = kept

	return nil
}

func copyOrders(orders []domain.Order) []domain.Order {
	out := make([]domain.Order, len(orders))
	copy(out, orders)
	return out
}
