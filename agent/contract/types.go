package contract

import (
	"strings"
	"time"
)

type AgentType string

const (
	AgentTypeOrder     AgentType = "order"
	AgentTypeInventory AgentType = "inventory"
	AgentTypeStatus    AgentType = "status"
	AgentTypeAdmin     AgentType = "admin"
	AgentTypeInquiry   AgentType = "inquiry"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// OrderStatuses lists every valid status in display order.
var OrderStatuses = []OrderStatus{
	StatusPending,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

// ParseOrderStatus matches raw case-insensitively against the status
// enumeration. Any transition between valid statuses is allowed; the
// enumeration itself is the only constraint.
func ParseOrderStatus(raw string) (OrderStatus, bool) {
	candidate := OrderStatus(strings.ToLower(strings.TrimSpace(raw)))
	for _, s := range OrderStatuses {
		if candidate == s {
			return s, true
		}
	}
	return "", false
}

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

type Product struct {
	ProductID     string  `json:"product_id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
	Unit          string  `json:"unit"`
}

// OrderItem is a snapshot taken at order time. Name and unit price are
// denormalized on purpose: later catalog changes must not rewrite history.
type OrderItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
}

type Order struct {
	OrderID     string      `json:"order_id"`
	UserID      string      `json:"user_id"`
	Items       []OrderItem `json:"items"`
	TotalAmount float64     `json:"total_amount"`
	Status      OrderStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type User struct {
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

/* ------------------------------ Agent results ----------------------------- */

type OrderResult struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	OrderID      string `json:"order_id,omitempty"`
	OrderDetails *Order `json:"order_details,omitempty"`
	Error        string `json:"error,omitempty"`
}

type Availability struct {
	Available         bool     `json:"available"`
	Reason            string   `json:"reason,omitempty"`
	Product           *Product `json:"product,omitempty"`
	AvailableQuantity int      `json:"available_quantity"`
}

type StockUpdateResult struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Product *Product `json:"product,omitempty"`
}

type StatusResult struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Orders  []Order `json:"orders,omitempty"`
}

type StatusUpdateResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Order   *Order `json:"order,omitempty"`
}

// Admin actions recognized by the admin intent router.
const (
	AdminActionUpdateStatus  = "update_order_status"
	AdminActionShowInventory = "show_inventory"
	AdminActionGeneral       = "general"
)

type AdminResult struct {
	Success   bool       `json:"success"`
	Action    string     `json:"action"`
	Message   string     `json:"message"`
	Order     *Order     `json:"order,omitempty"`
	Products  []Product  `json:"products,omitempty"`
	LowStock  []Product  `json:"low_stock,omitempty"`
	Orders    []Order    `json:"orders,omitempty"`
	Analytics *Analytics `json:"analytics,omitempty"`
}

type ProductMention struct {
	ProductID         string  `json:"product_id"`
	ProductName       string  `json:"product_name"`
	AvailableQuantity int     `json:"available_quantity"`
	Price             float64 `json:"price"`
}

type InquiryResult struct {
	Success           bool             `json:"success"`
	Message           string           `json:"message"`
	ProductsMentioned []ProductMention `json:"products_mentioned,omitempty"`
	Error             string           `json:"error,omitempty"`
}

/* -------------------------------- Analytics ------------------------------- */

type TopProduct struct {
	ProductID    string  `json:"product_id"`
	Name         string  `json:"name"`
	QuantitySold int     `json:"quantity_sold"`
	Revenue      float64 `json:"revenue"`
}

type Analytics struct {
	TotalOrders int `json:"total_orders"`
	// StatusCounts always carries the five known statuses; orders with an
	// unrecognized status accumulate under their own key instead of being
	// dropped.
	StatusCounts       map[string]int `json:"status_counts"`
	TotalRevenue       float64        `json:"total_revenue"`
	TotalCustomers     int            `json:"total_customers"`
	LowStockProducts   []Product      `json:"low_stock_products"`
	TopSellingProducts []TopProduct   `json:"top_selling_products"`
	InventoryValue     float64        `json:"inventory_value"`
}

type Issue struct {
	Type           string   `json:"type"`
	Severity       string   `json:"severity,omitempty"`
	Message        string   `json:"message"`
	Products       []string `json:"products,omitempty"`
	Recommendation string   `json:"recommendation,omitempty"`
}

type TrendReport struct {
	PeriodDays        int     `json:"period_days"`
	TotalOrders       int     `json:"total_orders"`
	AverageOrderValue float64 `json:"average_order_value"`
	Trend             string  `json:"trend"`
}
