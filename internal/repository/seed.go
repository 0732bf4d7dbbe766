package repository

import (
	"time"

	"github.com/Sujal-Rajbhandari/inventory-system/internal/models"
	"github.com/shopspring/decimal"
)

// SeedProducts is the demo catalogue the dashboard starts with.
func SeedProducts() []models.Product {
	now := time.Now()
	p := func(id int, name, category, brand string, stock int, price string, reorder int) models.Product {
		return models.Product{
			ID:           id,
			Name:         name,
			Category:     category,
			Brand:        brand,
			Stock:        stock,
			Price:        decimal.RequireFromString(price),
			ReorderLevel: reorder,
			Image:        "placeholder.svg",
			CreatedAt:    now,
			UpdatedAt:    now,
		}
	}

	return []models.Product{
		p(1, "Power Drill XL2000", "Power Tools", "DeWalt", 35, "79.99", 10),
		p(2, "Pipe Wrench Set (10pc)", "Hand Tools", "Stanley", 22, "35.50", 8),
		p(3, "Circular Saw 1200W", "Power Tools", "Makita", 12, "129.99", 5),
		p(4, "Hammer Collection", "Hand Tools", "Stanley", 45, "24.95", 15),
		p(5, "Measuring Tape 5m", "Measuring", "Komelon", 7, "12.99", 10),
		p(6, "PVC Pipe 1-inch", "Plumbing", "Genova", 56, "8.75", 20),
		p(7, "LED Floodlight 50W", "Electrical", "Philips", 18, "45.00", 8),
		p(8, "Drywall Sheet 4x8", "Building Materials", "USG", 9, "15.25", 15),
	}
}

// SeedOrders is the order history shown on first load, oldest first.
func SeedOrders() []models.Order {
	line := func(id int, name string, qty int, price string) models.OrderLineItem {
		return models.NewLineItem(models.Product{ID: id, Name: name, Price: decimal.RequireFromString(price)}, qty)
	}
	order := func(n int, customer, date string, typ models.OrderType, total string, pay models.PaymentStatus, status models.OrderStatus, items ...models.OrderLineItem) models.Order {
		created, _ := time.Parse(models.DateLayout, date)
		return models.Order{
			ID:            models.OrderID(n),
			Customer:      customer,
			Date:          date,
			Type:          typ,
			TotalAmount:   decimal.RequireFromString(total),
			PaymentStatus: pay,
			OrderStatus:   status,
			Items:         items,
			CreatedAt:     created,
		}
	}

	return []models.Order{
		order(10034, "Leslie Alexander", "2025-05-14", models.OrderTypeRetail, "128.50", models.PaymentUnpaid, models.OrderCanceled,
			line(7, "LED Floodlight 50W", 2, "45.00"),
			line(5, "Measuring Tape 5m", 1, "12.99")),
		order(10036, "Building Pros Ltd", "2025-05-15", models.OrderTypeWholesale, "4326.75", models.PaymentPartiallyPaid, models.OrderShipped,
			line(3, "Circular Saw 1200W", 15, "129.99"),
			line(8, "Drywall Sheet 4x8", 50, "15.25"),
			line(1, "Power Drill XL2000", 20, "79.99")),
		order(10038, "Esther Howard", "2025-05-16", models.OrderTypeRetail, "89.95", models.PaymentPaid, models.OrderDelivered,
			line(2, "Pipe Wrench Set (10pc)", 1, "35.50"),
			line(7, "LED Floodlight 50W", 1, "45.00")),
		order(10039, "Wade Warren", "2025-05-17", models.OrderTypeRetail, "42.25", models.PaymentPaid, models.OrderShipped,
			line(4, "Hammer Collection", 1, "24.95"),
			line(5, "Measuring Tape 5m", 1, "12.99")),
		order(10041, "Robert Fox", "2025-05-18", models.OrderTypeWholesale, "1254.30", models.PaymentUnpaid, models.OrderPending,
			line(3, "Circular Saw 1200W", 5, "129.99"),
			line(6, "PVC Pipe 1-inch", 20, "8.75")),
		order(10042, "Jane Cooper", "2025-05-19", models.OrderTypeRetail, "264.00", models.PaymentPaid, models.OrderDelivered,
			line(1, "Power Drill XL2000", 2, "79.99"),
			line(5, "Measuring Tape 5m", 2, "12.99")),
	}
}

// SeedCustomers is the customer book the dashboard starts with.
func SeedCustomers() []models.Customer {
	now := time.Now()
	c := func(id int, name, email, phone string, typ models.OrderType) models.Customer {
		return models.Customer{ID: id, Name: name, Email: email, Phone: phone, Type: typ, CreatedAt: now}
	}

	return []models.Customer{
		c(1, "Jane Cooper", "jane.cooper@example.com", "(123) 456-7890", models.OrderTypeRetail),
		c(2, "Cody Fisher", "cody.fisher@example.com", "(123) 567-8901", models.OrderTypeRetail),
		c(3, "Building Pros Ltd", "orders@buildingpros.com", "(123) 789-0123", models.OrderTypeWholesale),
		c(4, "Esther Howard", "esther.howard@example.com", "(123) 234-5678", models.OrderTypeRetail),
		c(5, "City Contractors Inc", "purchasing@citycontractors.com", "(123) 345-6789", models.OrderTypeWholesale),
		c(6, "Leslie Alexander", "leslie.alexander@example.com", "(123) 456-7891", models.OrderTypeRetail),
	}
}
