package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/asquebay/flower-shop-service/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrFlowerNotFound = errors.New("flower not found")

// FlowerRepository инкапсулирует логику работы с каталогом товаров в БД
type FlowerRepository struct {
	db *pgxpool.Pool
	sq squirrel.StatementBuilderType
}

// NewFlowerRepository создает новый экземпляр репозитория каталога
func NewFlowerRepository(db *pgxpool.Pool) *FlowerRepository {
	return &FlowerRepository{
		db: db,
		// использую плейсхолдеры в стиле PostgreSQL ($1, $2, $3,...)
		sq: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const flowerColumns = "id, name, price, description, category, stock, images, size, colors, occasion, care"

func scanFlower(row pgx.Row) (model.Flower, error) {
	var f model.Flower
	err := row.Scan(
		&f.ID, &f.Name, &f.Price, &f.Description, &f.Category,
		&f.Stock, &f.Images, &f.Size, &f.Colors, &f.Occasion, &f.Care,
	)
	return f, err
}

// CreateFlower сохраняет товар в базу и возвращает его с назначенным id
func (r *FlowerRepository) CreateFlower(ctx context.Context, payload model.CreateFlower) (model.Flower, error) {
	const op = "repository.postgres.flower.CreateFlower"

	id := uuid.NewString()
	sql, args, err := r.sq.Insert("flowers").
		Columns("id", "name", "price", "description", "category", "stock", "images", "size", "colors", "occasion", "care").
		Values(
			id, payload.Name, payload.Price, payload.Description, payload.Category,
			payload.Stock, payload.Images, payload.Size, payload.Colors, payload.Occasion, payload.Care,
		).
		ToSql()
	if err != nil {
		return model.Flower{}, fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return model.Flower{}, fmt.Errorf("%s: failed to insert flower: %w", op, err)
	}

	return r.GetFlowerByID(ctx, id)
}

// GetAllFlowers извлекает весь каталог из базы данных
func (r *FlowerRepository) GetAllFlowers(ctx context.Context) ([]model.Flower, error) {
	const op = "repository.postgres.flower.GetAllFlowers"

	query := "SELECT " + flowerColumns + " FROM flowers ORDER BY created_at, id"
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query flowers: %w", op, err)
	}
	defer rows.Close()

	result := []model.Flower{}
	for rows.Next() {
		f, err := scanFlower(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan flower row: %w", op, err)
		}
		result = append(result, f)
	}

	return result, nil
}

// GetFlowerByID извлекает один товар по его id
func (r *FlowerRepository) GetFlowerByID(ctx context.Context, id string) (model.Flower, error) {
	const op = "repository.postgres.flower.GetFlowerByID"

	query := "SELECT " + flowerColumns + " FROM flowers WHERE id = $1"
	f, err := scanFlower(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Flower{}, fmt.Errorf("%s: %w", op, ErrFlowerNotFound)
		}
		return model.Flower{}, fmt.Errorf("%s: failed to query flower: %w", op, err)
	}
	return f, nil
}

// UpdateFlower применяет частичное обновление: в UPDATE попадают
// только заполненные поля payload-а; возвращает обновлённый товар целиком
func (r *FlowerRepository) UpdateFlower(ctx context.Context, id string, payload model.UpdateFlower) (model.Flower, error) {
	const op = "repository.postgres.flower.UpdateFlower"

	builder := r.sq.Update("flowers").Where(squirrel.Eq{"id": id})
	changed := false

	if payload.Name != nil {
		builder = builder.Set("name", *payload.Name)
		changed = true
	}
	if payload.Price != nil {
		builder = builder.Set("price", *payload.Price)
		changed = true
	}
	if payload.Description != nil {
		builder = builder.Set("description", *payload.Description)
		changed = true
	}
	if payload.Category != nil {
		builder = builder.Set("category", *payload.Category)
		changed = true
	}
	if payload.Stock != nil {
		builder = builder.Set("stock", *payload.Stock)
		changed = true
	}
	if payload.Images != nil {
		builder = builder.Set("images", *payload.Images)
		changed = true
	}
	if payload.Size != nil {
		builder = builder.Set("size", *payload.Size)
		changed = true
	}
	if payload.Colors != nil {
		builder = builder.Set("colors", *payload.Colors)
		changed = true
	}
	if payload.Occasion != nil {
		builder = builder.Set("occasion", *payload.Occasion)
		changed = true
	}
	if payload.Care != nil {
		builder = builder.Set("care", *payload.Care)
		changed = true
	}

	// пустой PATCH — просто вернуть текущее состояние
	if !changed {
		return r.GetFlowerByID(ctx, id)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return model.Flower{}, fmt.Errorf("%s: failed to build update query: %w", op, err)
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return model.Flower{}, fmt.Errorf("%s: failed to update flower: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return model.Flower{}, fmt.Errorf("%s: %w", op, ErrFlowerNotFound)
	}

	return r.GetFlowerByID(ctx, id)
}

// DeleteFlower удаляет товар по id
func (r *FlowerRepository) DeleteFlower(ctx context.Context, id string) error {
	const op = "repository.postgres.flower.DeleteFlower"

	sql, args, err := r.sq.Delete("flowers").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build delete query: %w", op, err)
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to delete flower: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, ErrFlowerNotFound)
	}
	return nil
}
