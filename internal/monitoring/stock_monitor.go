package monitoring

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/rahulvj/atm-inventory-be/internal/services"
	ws "github.com/rahulvj/atm-inventory-be/internal/websocket"
)

// StockMonitor periodically sweeps the products table for low-stock rows,
// records an audit event and pushes an alert to connected screens.
type StockMonitor struct {
	productSvc services.ProductServiceProvider
	eventSvc   services.EventServiceProvider
	hub        *ws.Hub
	schedule   cron.Schedule
	ticker     *time.Ticker
	done       chan bool
}

// NewStockMonitor creates a monitor driven by a standard cron expression.
func NewStockMonitor(productSvc services.ProductServiceProvider, eventSvc services.EventServiceProvider, hub *ws.Hub, cronExpr string) (*StockMonitor, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", cronExpr, err)
	}
	return &StockMonitor{
		productSvc: productSvc,
		eventSvc:   eventSvc,
		hub:        hub,
		schedule:   schedule,
		done:       make(chan bool),
	}, nil
}

// Run starts the monitor's ticking loop. The sweep fires whenever the cron
// schedule's next activation has passed.
func (m *StockMonitor) Run() {
	log.Info().Msg("Starting background stock monitor...")
	m.ticker = time.NewTicker(30 * time.Second)
	defer m.ticker.Stop()

	// Run once immediately on start
	m.sweep()
	nextRun := m.schedule.Next(time.Now())

	for {
		select {
		case <-m.done:
			log.Info().Msg("Stopping background stock monitor.")
			return
		case <-m.ticker.C:
			if time.Now().After(nextRun) {
				m.sweep()
				nextRun = m.schedule.Next(time.Now())
			}
		}
	}
}

// Stop halts the monitor.
func (m *StockMonitor) Stop() {
	m.done <- true
}

// sweep queries for low-stock products and raises an alert if any exist.
func (m *StockMonitor) sweep() {
	products, err := m.productSvc.LowStock(services.LowStockThreshold)
	if err != nil {
		log.Error().Err(err).Msg("Stock monitor: failed to query low-stock products")
		return
	}
	if len(products) == 0 {
		return
	}

	for _, p := range products {
		id := p.ID
		msg := fmt.Sprintf("%s - %d left", p.Name, p.Quantity)
		if err := m.eventSvc.CreateEvent("stock.alert", "warn", msg, &id); err != nil {
			log.Error().Err(err).Int64("product_id", id).Msg("Stock monitor: failed to record alert event")
		}
	}

	m.hub.Broadcast <- ws.NewMessage(ws.ActionLowStockAlert, products)
	log.Warn().Int("count", len(products)).Msg("Low stock alert raised")
}
