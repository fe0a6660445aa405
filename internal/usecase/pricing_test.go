package usecase

import (
	"testing"

	"readnwin/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

func TestComputeQuote_EbookOnlyHasNoShipping(t *testing.T) {
	books := map[int64]model.Book{
		1: {ID: 1, Title: "Go入門", Price: 1000, Format: model.BookFormatEbook},
	}
	lines := []QuoteLine{{BookID: 1, Quantity: 1}}

	//配送方法を渡しても電子書籍のみなら送料は0
	shipping := &model.ShippingMethod{BaseCost: 500, CostPerItem: 100}

	q, err := ComputeQuote(lines, books, shipping)
	assert.NoError(t, err)
	assert.Equal(t, int64(1000), q.Subtotal)
	assert.Equal(t, int64(0), q.ShippingCost)
	assert.Equal(t, int64(75), q.Tax)
	assert.Equal(t, int64(1075), q.Total)
	assert.Equal(t, int64(0), q.PhysicalCount)
}

func TestComputeQuote_PhysicalRequiresShippingMethod(t *testing.T) {
	books := map[int64]model.Book{
		1: {ID: 1, Price: 2000, Format: model.BookFormatPhysical},
	}
	lines := []QuoteLine{{BookID: 1, Quantity: 1}}

	_, err := ComputeQuote(lines, books, nil)
	assert.Error(t, err)

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
	assert.Contains(t, he.Message, "shipping method")
}

func TestComputeQuote_MixedCart(t *testing.T) {
	books := map[int64]model.Book{
		1: {ID: 1, Price: 1500, Format: model.BookFormatPhysical},
		2: {ID: 2, Price: 1500, Format: model.BookFormatEbook},
	}
	lines := []QuoteLine{
		{BookID: 1, Quantity: 3}, //物理3冊
		{BookID: 2, Quantity: 1},
	}
	shipping := &model.ShippingMethod{BaseCost: 500, CostPerItem: 100}

	q, err := ComputeQuote(lines, books, shipping)
	assert.NoError(t, err)
	assert.Equal(t, int64(6000), q.Subtotal)
	//送料 = 500 + 100×3
	assert.Equal(t, int64(800), q.ShippingCost)
	//税 = 6000 × 7.5%
	assert.Equal(t, int64(450), q.Tax)
	assert.Equal(t, int64(7250), q.Total)
	assert.Equal(t, int64(3), q.PhysicalCount)
}

func TestComputeQuote_FreeShippingThreshold(t *testing.T) {
	books := map[int64]model.Book{
		1: {ID: 1, Price: 5000, Format: model.BookFormatPhysical},
	}
	lines := []QuoteLine{{BookID: 1, Quantity: 2}}
	shipping := &model.ShippingMethod{BaseCost: 500, CostPerItem: 100, FreeShippingThreshold: 10000}

	q, err := ComputeQuote(lines, books, shipping)
	assert.NoError(t, err)
	assert.Equal(t, int64(10000), q.Subtotal)
	assert.Equal(t, int64(0), q.ShippingCost)
}

func TestComputeQuote_ThresholdZeroMeansDisabled(t *testing.T) {
	books := map[int64]model.Book{
		1: {ID: 1, Price: 5000, Format: model.BookFormatPhysical},
	}
	lines := []QuoteLine{{BookID: 1, Quantity: 2}}
	shipping := &model.ShippingMethod{BaseCost: 500, CostPerItem: 100, FreeShippingThreshold: 0}

	q, err := ComputeQuote(lines, books, shipping)
	assert.NoError(t, err)
	assert.Equal(t, int64(700), q.ShippingCost)
}

func TestComputeQuote_TaxRoundsHalfUp(t *testing.T) {
	books := map[int64]model.Book{
		1: {ID: 1, Price: 999, Format: model.BookFormatEbook},
	}
	lines := []QuoteLine{{BookID: 1, Quantity: 1}}

	// 999 × 0.075 = 74.925 → 75
	q, err := ComputeQuote(lines, books, nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(75), q.Tax)
}

func TestComputeQuote_UnknownBookRejected(t *testing.T) {
	books := map[int64]model.Book{}
	lines := []QuoteLine{{BookID: 42, Quantity: 1}}

	_, err := ComputeQuote(lines, books, nil)
	assert.Error(t, err)

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
}

func TestComputeQuote_InvalidQuantityRejected(t *testing.T) {
	books := map[int64]model.Book{
		1: {ID: 1, Price: 1000, Format: model.BookFormatEbook},
	}
	lines := []QuoteLine{{BookID: 1, Quantity: 0}}

	_, err := ComputeQuote(lines, books, nil)
	assert.Error(t, err)
}
