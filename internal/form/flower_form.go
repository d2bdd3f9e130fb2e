package form

import (
	"github.com/asquebay/flower-shop-service/internal/model"
)

// FlowerForm — явное состояние формы карточки товара
type FlowerForm struct {
	Name        string  `validate:"required"`
	Price       float64 `validate:"gt=0"`
	Description string
	Category    string `validate:"required"`
	Stock       int    `validate:"gte=0"`
	Images      []string
	Size        string
	Colors      []string
	Occasion    string
	Care        string
}

// Validate возвращает список ошибок по полям; пустой список — форма валидна
func (f *FlowerForm) Validate() []FieldError {
	return fieldErrors(validate.Struct(f))
}

// Build собирает payload на создание товара
func (f *FlowerForm) Build() model.CreateFlower {
	return model.CreateFlower{
		Name:        f.Name,
		Price:       f.Price,
		Description: f.Description,
		Category:    f.Category,
		Stock:       f.Stock,
		Images:      f.Images,
		Size:        f.Size,
		Colors:      f.Colors,
		Occasion:    f.Occasion,
		Care:        f.Care,
	}
}

// FromFlower заполняет форму из существующего товара (режим редактирования)
func FromFlower(fl model.Flower) FlowerForm {
	return FlowerForm{
		Name:        fl.Name,
		Price:       fl.Price,
		Description: fl.Description,
		Category:    fl.Category,
		Stock:       fl.Stock,
		Images:      fl.Images,
		Size:        fl.Size,
		Colors:      fl.Colors,
		Occasion:    fl.Occasion,
		Care:        fl.Care,
	}
}
