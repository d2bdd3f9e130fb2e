package form_test

import (
	"testing"
	"time"

	"github.com/asquebay/flower-shop-service/internal/form"
	"github.com/asquebay/flower-shop-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOrderForm() form.OrderForm {
	f := form.OrderForm{
		CustomerName:    "María García",
		CustomerPhone:   "+34 600 000 000",
		CustomerEmail:   "maria@example.com",
		DeliveryAddress: "Carrer de Balmes 123",
		DeliveryDate:    time.Date(2025, time.June, 10, 0, 0, 0, 0, time.Local),
		DeliveryTime:    "10:00-11:00",
	}
	f.AddItem(model.Flower{ID: "f1", Name: "Red Roses", Price: 25}, 2)
	return f
}

func TestOrderFormValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid form has no field errors", func(t *testing.T) {
		t.Parallel()

		f := validOrderForm()
		assert.Empty(t, f.Validate())
	})

	t.Run("missing fields reported with codes", func(t *testing.T) {
		t.Parallel()

		f := form.OrderForm{CustomerEmail: "not-an-email"}
		errs := f.Validate()
		require.NotEmpty(t, errs)

		codes := map[string]string{}
		for _, fe := range errs {
			codes[fe.Field] = fe.Code
		}
		assert.Equal(t, "required", codes["CustomerName"])
		assert.Equal(t, "email", codes["CustomerEmail"])
		assert.Equal(t, "min_items", codes["Items"])
	})

	t.Run("zero quantity item is rejected", func(t *testing.T) {
		t.Parallel()

		f := validOrderForm()
		f.Items[0].Quantity = 0
		errs := f.Validate()

		var found bool
		for _, fe := range errs {
			if fe.Field == "Quantity" && fe.Code == "gt" {
				found = true
			}
		}
		assert.True(t, found)
	})
}

func TestOrderFormTotalAndBuild(t *testing.T) {
	t.Parallel()

	f := validOrderForm()
	f.AddItem(model.Flower{ID: "f2", Name: "Tulips", Price: 10}, 3)

	// 2×25 + 3×10
	require.Equal(t, 80.0, f.Total())

	payload := f.Build()
	assert.Equal(t, 80.0, payload.Total)
	assert.Equal(t, model.StatusPending, payload.Status)
	require.Len(t, payload.Items, 2)
	assert.Equal(t, "Red Roses", payload.Items[0].FlowerName)

	f.RemoveItem(0)
	assert.Equal(t, 30.0, f.Total())

	// выход за границы — no-op
	f.RemoveItem(42)
	assert.Len(t, f.Items, 1)
}

func TestFlowerFormValidateAndBuild(t *testing.T) {
	t.Parallel()

	f := form.FlowerForm{Name: "Peony Bouquet", Price: 35, Category: "peonies", Stock: 5}
	require.Empty(t, f.Validate())

	payload := f.Build()
	assert.Equal(t, "Peony Bouquet", payload.Name)

	bad := form.FlowerForm{Price: -1, Stock: -2}
	errs := bad.Validate()
	assert.NotEmpty(t, errs)
}

func TestFromFlower(t *testing.T) {
	t.Parallel()

	fl := model.Flower{ID: "f1", Name: "Roses", Price: 20, Category: "roses", Stock: 7}
	f := form.FromFlower(fl)

	assert.Equal(t, "Roses", f.Name)
	assert.Equal(t, 7, f.Stock)
	assert.Empty(t, f.Validate())
}
