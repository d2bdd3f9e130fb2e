package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/asquebay/flower-shop-service/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderRepository инкапсулирует логику работы с заказами в БД
type OrderRepository struct {
	db *pgxpool.Pool
	sq squirrel.StatementBuilderType
}

// NewOrderRepository создает новый экземпляр репозитория заказов
func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{
		db: db,
		sq: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const orderColumns = `id, customer_name, customer_phone, customer_email, delivery_address,
	delivery_details, lat, lng, total, status, delivery_date, delivery_time, notes, created_at, updated_at`

func scanOrder(row pgx.Row) (model.Order, error) {
	var o model.Order
	var lat, lng *float64
	err := row.Scan(
		&o.ID, &o.CustomerName, &o.CustomerPhone, &o.CustomerEmail, &o.DeliveryAddress,
		&o.DeliveryDetails, &lat, &lng, &o.Total, &o.Status, &o.DeliveryDate,
		&o.DeliveryTime, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return model.Order{}, err
	}
	if lat != nil && lng != nil {
		o.Coordinates = &model.Coordinates{Lat: *lat, Lng: *lng}
	}
	return o, nil
}

func coords(c *model.Coordinates) (lat, lng *float64) {
	if c == nil {
		return nil, nil
	}
	return &c.Lat, &c.Lng
}

// CreateOrder сохраняет заказ и его позиции в рамках одной транзакции
// и возвращает заказ с назначенным id и метками времени
func (r *OrderRepository) CreateOrder(ctx context.Context, payload model.CreateOrder) (model.Order, error) {
	const op = "repository.postgres.order.CreateOrder"

	// начинаем транзакцию
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return model.Order{}, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	// гарантируем откат транзакции в случае любой ошибки
	defer tx.Rollback(ctx)

	id := uuid.NewString()
	now := time.Now().UTC()
	status := payload.Status
	if status == "" {
		status = model.StatusPending
	}
	lat, lng := coords(payload.Coordinates)

	// 1. Вставка в таблицу orders
	sql, args, err := r.sq.Insert("orders").
		Columns(
			"id", "customer_name", "customer_phone", "customer_email", "delivery_address",
			"delivery_details", "lat", "lng", "total", "status", "delivery_date",
			"delivery_time", "notes", "created_at", "updated_at",
		).
		Values(
			id, payload.CustomerName, payload.CustomerPhone, payload.CustomerEmail, payload.DeliveryAddress,
			payload.DeliveryDetails, lat, lng, payload.Total, status, payload.DeliveryDate,
			payload.DeliveryTime, payload.Notes, now, now,
		).
		ToSql()
	if err != nil {
		return model.Order{}, fmt.Errorf("%s: failed to build orders insert query: %w", op, err)
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return model.Order{}, fmt.Errorf("%s: failed to insert into orders: %w", op, err)
	}

	// 2. Вставка позиций заказа (в цикле)
	if err := insertItems(ctx, tx, r.sq, id, payload.Items); err != nil {
		return model.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	// если все прошло успешно, подтверждаем транзакцию
	if err := tx.Commit(ctx); err != nil {
		return model.Order{}, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	return r.GetOrderByID(ctx, id)
}

func insertItems(ctx context.Context, tx pgx.Tx, sq squirrel.StatementBuilderType, orderID string, items []model.OrderItem) error {
	for _, item := range items {
		sql, args, err := sq.Insert("order_items").
			Columns("order_id", "flower_id", "flower_name", "quantity", "unit_price").
			Values(orderID, item.FlowerID, item.FlowerName, item.Quantity, item.UnitPrice).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build item insert query for flower %s: %w", item.FlowerID, err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("failed to insert item for flower %s: %w", item.FlowerID, err)
		}
	}
	return nil
}

// GetAllOrders извлекает все заказы из базы данных
// позиции дочитываются вторым запросом и раскладываются по заказам через map
func (r *OrderRepository) GetAllOrders(ctx context.Context) ([]model.Order, error) {
	const op = "repository.postgres.order.GetAllOrders"

	query := "SELECT " + orderColumns + " FROM orders ORDER BY created_at, id"
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query orders: %w", op, err)
	}
	defer rows.Close()

	ordersMap := make(map[string]*model.Order)
	result := []model.Order{}
	orderIDs := []string{}

	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan order row: %w", op, err)
		}
		result = append(result, o)
		orderIDs = append(orderIDs, o.ID)
	}
	for i := range result {
		ordersMap[result[i].ID] = &result[i]
	}

	if len(orderIDs) == 0 {
		return result, nil // нет заказов — возвращаем пустой слайс
	}

	// 2. Получаем все позиции для найденных заказов
	itemsQuery := `
		SELECT order_id, flower_id, flower_name, quantity, unit_price
		FROM order_items
		WHERE order_id = ANY($1)
	`
	itemRows, err := r.db.Query(ctx, itemsQuery, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query order items: %w", op, err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item model.OrderItem
		var orderID string
		err := itemRows.Scan(&orderID, &item.FlowerID, &item.FlowerName, &item.Quantity, &item.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan item row: %w", op, err)
		}

		if order, ok := ordersMap[orderID]; ok {
			order.Items = append(order.Items, item)
		}
	}

	return result, nil
}

// GetOrderByID извлекает один заказ из базы данных по его id
func (r *OrderRepository) GetOrderByID(ctx context.Context, id string) (model.Order, error) {
	const op = "repository.postgres.order.GetOrderByID"

	query := "SELECT " + orderColumns + " FROM orders WHERE id = $1"
	order, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Order{}, fmt.Errorf("%s: %w", op, ErrOrderNotFound)
		}
		return model.Order{}, fmt.Errorf("%s: failed to query order: %w", op, err)
	}

	itemsQuery := `
		SELECT flower_id, flower_name, quantity, unit_price
		FROM order_items
		WHERE order_id = $1
	`
	rows, err := r.db.Query(ctx, itemsQuery, id)
	if err != nil {
		return model.Order{}, fmt.Errorf("%s: failed to query order items: %w", op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.FlowerID, &item.FlowerName, &item.Quantity, &item.UnitPrice); err != nil {
			return model.Order{}, fmt.Errorf("%s: failed to scan item row: %w", op, err)
		}
		order.Items = append(order.Items, item)
	}

	return order, nil
}

// UpdateOrder применяет частичное обновление заказа
// при замене позиций старые удаляются и вставляются новые в одной транзакции
func (r *OrderRepository) UpdateOrder(ctx context.Context, id string, payload model.UpdateOrder) (model.Order, error) {
	const op = "repository.postgres.order.UpdateOrder"

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return model.Order{}, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer tx.Rollback(ctx)

	builder := r.sq.Update("orders").Where(squirrel.Eq{"id": id})
	changed := false

	if payload.CustomerName != nil {
		builder = builder.Set("customer_name", *payload.CustomerName)
		changed = true
	}
	if payload.CustomerPhone != nil {
		builder = builder.Set("customer_phone", *payload.CustomerPhone)
		changed = true
	}
	if payload.CustomerEmail != nil {
		builder = builder.Set("customer_email", *payload.CustomerEmail)
		changed = true
	}
	if payload.DeliveryAddress != nil {
		builder = builder.Set("delivery_address", *payload.DeliveryAddress)
		changed = true
	}
	if payload.DeliveryDetails != nil {
		builder = builder.Set("delivery_details", *payload.DeliveryDetails)
		changed = true
	}
	if payload.Coordinates != nil {
		builder = builder.Set("lat", payload.Coordinates.Lat).Set("lng", payload.Coordinates.Lng)
		changed = true
	}
	if payload.Total != nil {
		builder = builder.Set("total", *payload.Total)
		changed = true
	}
	if payload.Status != nil {
		builder = builder.Set("status", *payload.Status)
		changed = true
	}
	if payload.DeliveryDate != nil {
		builder = builder.Set("delivery_date", *payload.DeliveryDate)
		changed = true
	}
	if payload.DeliveryTime != nil {
		builder = builder.Set("delivery_time", *payload.DeliveryTime)
		changed = true
	}
	if payload.Notes != nil {
		builder = builder.Set("notes", *payload.Notes)
		changed = true
	}

	if changed || payload.Items != nil {
		builder = builder.Set("updated_at", time.Now().UTC())

		sql, args, err := builder.ToSql()
		if err != nil {
			return model.Order{}, fmt.Errorf("%s: failed to build update query: %w", op, err)
		}
		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return model.Order{}, fmt.Errorf("%s: failed to update order: %w", op, err)
		}
		if tag.RowsAffected() == 0 {
			return model.Order{}, fmt.Errorf("%s: %w", op, ErrOrderNotFound)
		}
	}

	if payload.Items != nil {
		delSQL, delArgs, err := r.sq.Delete("order_items").Where(squirrel.Eq{"order_id": id}).ToSql()
		if err != nil {
			return model.Order{}, fmt.Errorf("%s: failed to build items delete query: %w", op, err)
		}
		if _, err := tx.Exec(ctx, delSQL, delArgs...); err != nil {
			return model.Order{}, fmt.Errorf("%s: failed to delete old items: %w", op, err)
		}
		if err := insertItems(ctx, tx, r.sq, id, *payload.Items); err != nil {
			return model.Order{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Order{}, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	return r.GetOrderByID(ctx, id)
}

// UpdateOrderStatus меняет только статус заказа
func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, id string, status model.Status) (model.Order, error) {
	const op = "repository.postgres.order.UpdateOrderStatus"

	sql, args, err := r.sq.Update("orders").
		Set("status", status).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.Order{}, fmt.Errorf("%s: failed to build update query: %w", op, err)
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return model.Order{}, fmt.Errorf("%s: failed to update order status: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return model.Order{}, fmt.Errorf("%s: %w", op, ErrOrderNotFound)
	}

	return r.GetOrderByID(ctx, id)
}

// DeleteOrder удаляет заказ; позиции каскадно удаляет внешняя ссылка в схеме
func (r *OrderRepository) DeleteOrder(ctx context.Context, id string) error {
	const op = "repository.postgres.order.DeleteOrder"

	sql, args, err := r.sq.Delete("orders").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build delete query: %w", op, err)
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to delete order: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, ErrOrderNotFound)
	}
	return nil
}
