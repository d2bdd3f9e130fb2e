package form

import (
	"time"

	"github.com/asquebay/flower-shop-service/internal/model"
)

// OrderForm — явное состояние формы оформления заказа: просто структура
// значений полей плюс чистая функция валидации, без привязки к UI-циклу
type OrderForm struct {
	CustomerName    string `validate:"required"`
	CustomerPhone   string `validate:"required"`
	CustomerEmail   string `validate:"required,email"`
	DeliveryAddress string `validate:"required"`
	DeliveryDetails string
	DeliveryDate    time.Time `validate:"required"`
	DeliveryTime    string    `validate:"required"`
	Items           []OrderFormItem
	Notes           string
	Coordinates     *model.Coordinates
}

// OrderFormItem — одна позиция в форме; имя и цена скопированы из каталога
// в момент добавления позиции
type OrderFormItem struct {
	FlowerID   string  `validate:"required"`
	FlowerName string  `validate:"required"`
	Quantity   int     `validate:"gt=0"`
	UnitPrice  float64 `validate:"gt=0"`
}

// Validate возвращает список ошибок по полям; пустой список — форма валидна
// отдельное правило: заказ без позиций не отправляется
func (f *OrderForm) Validate() []FieldError {
	errs := fieldErrors(validate.Struct(f))
	if len(f.Items) == 0 {
		errs = append(errs, FieldError{Field: "Items", Code: "min_items"})
	}
	for _, it := range f.Items {
		errs = append(errs, fieldErrors(validate.Struct(it))...)
	}
	return errs
}

// Total считает сумму заказа по текущим позициям формы
func (f *OrderForm) Total() float64 {
	var sum float64
	for _, it := range f.Items {
		sum += float64(it.Quantity) * it.UnitPrice
	}
	return sum
}

// AddItem добавляет позицию по товару из каталога
func (f *OrderForm) AddItem(flower model.Flower, quantity int) {
	f.Items = append(f.Items, OrderFormItem{
		FlowerID:   flower.ID,
		FlowerName: flower.Name,
		Quantity:   quantity,
		UnitPrice:  flower.Price,
	})
}

// RemoveItem убирает позицию по индексу; выход за границы — no-op
func (f *OrderForm) RemoveItem(index int) {
	if index < 0 || index >= len(f.Items) {
		return
	}
	f.Items = append(f.Items[:index], f.Items[index+1:]...)
}

// Build собирает payload на создание заказа
// Total вычисляется из позиций здесь — так выполняется инвариант
// "сумма равна Σ quantity × unit_price" на момент отправки
func (f *OrderForm) Build() model.CreateOrder {
	items := make([]model.OrderItem, 0, len(f.Items))
	for _, it := range f.Items {
		items = append(items, model.OrderItem{
			FlowerID:   it.FlowerID,
			FlowerName: it.FlowerName,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
		})
	}

	return model.CreateOrder{
		CustomerName:    f.CustomerName,
		CustomerPhone:   f.CustomerPhone,
		CustomerEmail:   f.CustomerEmail,
		DeliveryAddress: f.DeliveryAddress,
		DeliveryDetails: f.DeliveryDetails,
		Coordinates:     f.Coordinates,
		Items:           items,
		Total:           f.Total(),
		Status:          model.StatusPending,
		DeliveryDate:    f.DeliveryDate,
		DeliveryTime:    f.DeliveryTime,
		Notes:           f.Notes,
	}
}
