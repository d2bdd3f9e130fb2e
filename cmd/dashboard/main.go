// dashboard — консольная админка: подтягивает каталог и заказы с API,
// держит их в локальных кэшах и печатает сводку дня из производных представлений
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/asquebay/flower-shop-service/internal/client"
	"github.com/asquebay/flower-shop-service/internal/config"
	"github.com/asquebay/flower-shop-service/internal/lib/logger"
	"github.com/asquebay/flower-shop-service/internal/model"
	"github.com/asquebay/flower-shop-service/internal/service"
	"github.com/asquebay/flower-shop-service/internal/store"
	"github.com/asquebay/flower-shop-service/internal/view"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	// 1. Конфигурация и логгер
	cfg := config.MustLoad(*configPath)
	log := logger.New(cfg.Logger.Level, cfg.Logger.Format)

	// 2. REST-клиенты коллекций
	api := client.New(cfg.APIClient.BaseURL, cfg.APIClient.Timeout)
	flowerAPI := client.NewFlowerClient(api)
	orderAPI := client.NewOrderClient(api)

	// 3. Кэши: по одному экземпляру на тип сущности, живут всё время сессии
	flowerCache := store.New[model.Flower]()
	orderCache := store.New[model.Order]()

	// 4. Сервисы и производные представления
	flowerSvc := service.NewFlowerService(flowerAPI, flowerCache, log)
	orderSvc := service.NewOrderService(orderAPI, orderCache, log)
	orderViews := view.NewOrderViews(orderCache, nil)
	flowerViews := view.NewFlowerViews(flowerCache)

	// 5. Первичное наполнение кэшей с сервера
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := flowerSvc.Refresh(ctx); err != nil {
		log.Error("failed to load catalog", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := orderSvc.Refresh(ctx); err != nil {
		log.Error("failed to load orders", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 6. Сводка дня
	printSummary(orderViews, flowerViews, flowerCache.Len())
}

func printSummary(orders *view.OrderViews, flowers *view.FlowerViews, catalogSize int) {
	today := orders.TodayOrders()

	fmt.Println("=== Flower Shop — daily summary ===")
	fmt.Printf("catalog: %d products, stock value %.2f\n", catalogSize, flowers.StockValue())
	fmt.Printf("today: %d deliveries, revenue %.2f\n", len(today), orders.TodayTotal())
	fmt.Printf("pending: %d orders\n\n", len(orders.PendingOrders()))

	fmt.Println("delivery schedule:")
	for _, o := range orders.TimeSorted() {
		if !isToday(today, o.ID) {
			continue
		}
		fmt.Printf("  %s  %-24s %-32s %8.2f  [%s]\n",
			o.DeliveryTime, o.CustomerName, o.DeliveryAddress, o.Total, o.Status)
	}

	low := flowers.LowStock(3)
	if len(low) > 0 {
		fmt.Println("\nlow stock:")
		for _, f := range low {
			fmt.Printf("  %-24s %d left\n", f.Name, f.Stock)
		}
	}
}

func isToday(today []model.Order, id string) bool {
	for _, o := range today {
		if o.ID == id {
			return true
		}
	}
	return false
}
