package service

import (
	"context"
	"testing"

	"github.com/alimikegami/perfume-store/internal/domain"
	"github.com/alimikegami/perfume-store/internal/repository"
	"github.com/stretchr/testify/suite"
)

type CartServiceTestSuite struct {
	suite.Suite
	storage repository.Storage
	svc     CartService
	ctx     context.Context
}

var (
	productA = domain.Product{ID: 1, Name: "Oud Nocturne", Price: 10}
	productB = domain.Product{ID: 2, Name: "Citrus Veil", Price: 5}
)

func (s *CartServiceTestSuite) SetupTest() {
	s.storage = repository.CreateMemoryStorage()
	s.svc = CreateCartService(s.storage)
	s.ctx = context.Background()
}

func (s *CartServiceTestSuite) Test_Aggregates() {
	_, err := s.svc.AddItem(s.ctx, "sess", productA, 2)
	s.Require().NoError(err)
	resp, err := s.svc.AddItem(s.ctx, "sess", productB, 1)
	s.Require().NoError(err)

	s.Equal(25.0, resp.TotalPrice)
	s.Equal(int64(3), resp.ItemCount)

	resp, err = s.svc.GetCart(s.ctx, "sess")
	s.Require().NoError(err)
	s.Equal(25.0, resp.TotalPrice)
	s.Equal(int64(3), resp.ItemCount)
}

func (s *CartServiceTestSuite) Test_AddItemMergesSameProduct() {
	type TestCase struct {
		Name             string
		Quantities       []int64
		ExpectedQuantity int64
	}

	testCases := []TestCase{
		{Name: "Single add", Quantities: []int64{1}, ExpectedQuantity: 1},
		{Name: "Repeated adds increment", Quantities: []int64{1, 3, 2}, ExpectedQuantity: 6},
		{Name: "Non-positive quantity counts as one", Quantities: []int64{0, -4}, ExpectedQuantity: 2},
		{Name: "No upper bound", Quantities: []int64{500, 500}, ExpectedQuantity: 1000},
	}

	for _, tc := range testCases {
		s.Run(tc.Name, func() {
			s.Require().NoError(s.svc.ClearCart(s.ctx, "merge"))

			for _, q := range tc.Quantities {
				_, err := s.svc.AddItem(s.ctx, "merge", productA, q)
				s.Require().NoError(err)
			}

			resp, err := s.svc.GetCart(s.ctx, "merge")
			s.Require().NoError(err)
			s.Len(resp.Items, 1)
			s.Equal(tc.ExpectedQuantity, resp.Items[0].Quantity)
		})
	}
}

func (s *CartServiceTestSuite) Test_UpdateQuantity() {
	type TestCase struct {
		Name          string
		ProductID     int64
		Quantity      int64
		ExpectedItems map[int64]int64
	}

	testCases := []TestCase{
		{Name: "Overwrite quantity", ProductID: 1, Quantity: 7, ExpectedItems: map[int64]int64{1: 7, 2: 1}},
		{Name: "Zero removes", ProductID: 1, Quantity: 0, ExpectedItems: map[int64]int64{2: 1}},
		{Name: "Negative removes", ProductID: 2, Quantity: -1, ExpectedItems: map[int64]int64{1: 2}},
		{Name: "Unknown id is a no-op", ProductID: 99, Quantity: 4, ExpectedItems: map[int64]int64{1: 2, 2: 1}},
	}

	for _, tc := range testCases {
		s.Run(tc.Name, func() {
			s.Require().NoError(s.svc.ClearCart(s.ctx, "upd"))
			_, err := s.svc.AddItem(s.ctx, "upd", productA, 2)
			s.Require().NoError(err)
			_, err = s.svc.AddItem(s.ctx, "upd", productB, 1)
			s.Require().NoError(err)

			resp, err := s.svc.UpdateQuantity(s.ctx, "upd", tc.ProductID, tc.Quantity)
			s.Require().NoError(err)

			got := make(map[int64]int64)
			for _, item := range resp.Items {
				got[item.Product.ID] = item.Quantity
			}
			s.Equal(tc.ExpectedItems, got)
		})
	}
}

func (s *CartServiceTestSuite) Test_UpdateQuantityZeroEqualsRemove() {
	_, err := s.svc.AddItem(s.ctx, "a", productA, 2)
	s.Require().NoError(err)
	_, err = s.svc.AddItem(s.ctx, "b", productA, 2)
	s.Require().NoError(err)

	viaUpdate, err := s.svc.UpdateQuantity(s.ctx, "a", productA.ID, 0)
	s.Require().NoError(err)
	viaRemove, err := s.svc.RemoveItem(s.ctx, "b", productA.ID)
	s.Require().NoError(err)

	s.Equal(viaRemove, viaUpdate)
}

func (s *CartServiceTestSuite) Test_RemoveMissingIsNoop() {
	_, err := s.svc.AddItem(s.ctx, "sess", productA, 1)
	s.Require().NoError(err)

	resp, err := s.svc.RemoveItem(s.ctx, "sess", 42)
	s.Require().NoError(err)
	s.Len(resp.Items, 1)
}

func (s *CartServiceTestSuite) Test_ClearCart() {
	_, err := s.svc.AddItem(s.ctx, "sess", productA, 3)
	s.Require().NoError(err)

	s.Require().NoError(s.svc.ClearCart(s.ctx, "sess"))

	resp, err := s.svc.GetCart(s.ctx, "sess")
	s.Require().NoError(err)
	s.Empty(resp.Items)
	s.Equal(int64(0), resp.ItemCount)
	s.Equal(0.0, resp.TotalPrice)
}

func (s *CartServiceTestSuite) Test_SessionsAreIsolated() {
	_, err := s.svc.AddItem(s.ctx, "one", productA, 1)
	s.Require().NoError(err)

	resp, err := s.svc.GetCart(s.ctx, "two")
	s.Require().NoError(err)
	s.Empty(resp.Items)
}

func (s *CartServiceTestSuite) Test_NeverDuplicatesProducts() {
	ops := []func() error{
		func() error { _, err := s.svc.AddItem(s.ctx, "dup", productA, 1); return err },
		func() error { _, err := s.svc.AddItem(s.ctx, "dup", productB, 2); return err },
		func() error { _, err := s.svc.UpdateQuantity(s.ctx, "dup", productA.ID, 0); return err },
		func() error { _, err := s.svc.AddItem(s.ctx, "dup", productA, 1); return err },
		func() error { _, err := s.svc.AddItem(s.ctx, "dup", productA, 4); return err },
		func() error { _, err := s.svc.RemoveItem(s.ctx, "dup", productB.ID); return err },
		func() error { _, err := s.svc.AddItem(s.ctx, "dup", productB, 1); return err },
	}

	for _, op := range ops {
		s.Require().NoError(op())

		resp, err := s.svc.GetCart(s.ctx, "dup")
		s.Require().NoError(err)

		seen := make(map[int64]bool)
		for _, item := range resp.Items {
			s.False(seen[item.Product.ID], "duplicate entry for product %d", item.Product.ID)
			seen[item.Product.ID] = true
		}
	}
}

func (s *CartServiceTestSuite) Test_CorruptEntryReadsAsEmpty() {
	s.Require().NoError(s.storage.Set(s.ctx, cartKey("bad"), []byte("{not json")))

	resp, err := s.svc.GetCart(s.ctx, "bad")
	s.Require().NoError(err)
	s.Empty(resp.Items)
}

func TestCartServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CartServiceTestSuite))
}
