package model

import (
	"github.com/go-playground/validator/v10"
)

// Flower представляет товар магазина (букет/цветок) со всеми полями каталога
// теги validate используются для проверки корректности данных при получении
type Flower struct {
	ID          string   `json:"id"`
	Name        string   `json:"name" validate:"required"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Description string   `json:"description"`
	Category    string   `json:"category" validate:"required"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Images      []string `json:"images"`
	Size        string   `json:"size"`
	Colors      []string `json:"colors"`
	Occasion    string   `json:"occasion"`
	Care        string   `json:"care,omitempty"`
}

// CreateFlower — payload на создание товара: идентификатор назначает сервер
type CreateFlower struct {
	Name        string   `json:"name" validate:"required"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Description string   `json:"description"`
	Category    string   `json:"category" validate:"required"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Images      []string `json:"images"`
	Size        string   `json:"size"`
	Colors      []string `json:"colors"`
	Occasion    string   `json:"occasion"`
	Care        string   `json:"care,omitempty"`
}

// UpdateFlower — частичный payload для PATCH: заполняются только изменяемые поля
// указатели позволяют отличить "поле не передано" от "поле сброшено в ноль"
type UpdateFlower struct {
	Name        *string   `json:"name,omitempty"`
	Price       *float64  `json:"price,omitempty" validate:"omitempty,gt=0"`
	Description *string   `json:"description,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Stock       *int      `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Images      *[]string `json:"images,omitempty"`
	Size        *string   `json:"size,omitempty"`
	Colors      *[]string `json:"colors,omitempty"`
	Occasion    *string   `json:"occasion,omitempty"`
	Care        *string   `json:"care,omitempty"`
}

var validate = validator.New()

// EntityID возвращает уникальный идентификатор товара для кэша
func (f Flower) EntityID() string {
	return f.ID
}

// Validate проверяет корректность структуры CreateFlower на основе тегов validate
func (c *CreateFlower) Validate() error {
	return validate.Struct(c)
}

// Validate проверяет корректность частичного payload-а
func (u *UpdateFlower) Validate() error {
	return validate.Struct(u)
}
