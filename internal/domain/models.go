package domain

import "time"

// StockStatus classificação derivada da disponibilidade de um produto
type StockStatus string

const (
	StockStatusInStock    StockStatus = "in_stock"
	StockStatusLowStock   StockStatus = "low_stock"
	StockStatusOutOfStock StockStatus = "out_of_stock"
)

// ProductStatus indica se o produto está visível/vendável na loja
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// Product representa um produto do catálogo da loja
type Product struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Description    string        `json:"description,omitempty"`
	Category       string        `json:"category"`
	Price          float64       `json:"price"`
	Images         []string      `json:"images,omitempty"`
	Stock          int           `json:"stock"`
	MinimumStock   int           `json:"minimum_stock"`
	AllowZeroStock bool          `json:"allow_zero_stock"`
	StockStatus    StockStatus   `json:"stock_status"`
	Status         ProductStatus `json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// OrderStatus tipo do status de um pedido
type OrderStatus string

const (
	OrderStatusPendente           OrderStatus = "Pendente"
	OrderStatusEmPreparacao       OrderStatus = "Em preparação"
	OrderStatusProntoParaRetirada OrderStatus = "Pronto para retirada"
	OrderStatusSaiuParaEntrega    OrderStatus = "Saiu para entrega"
	OrderStatusFinalizado         OrderStatus = "Finalizado"
	OrderStatusCancelado          OrderStatus = "Cancelado"
)

// ItemVariations variações escolhidas pelo cliente para um item do carrinho/pedido
type ItemVariations struct {
	Color string `json:"color,omitempty"`
	Size  string `json:"size,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// OrderItem posição congelada do pedido: preço e quantidade fixados no fechamento,
// nunca re-sincronizados com o catálogo
type OrderItem struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Price      float64        `json:"price"`
	Quantity   int            `json:"quantity"`
	Variations ItemVariations `json:"variations,omitempty"`
}

// Order pedido da loja, online ou de balcão
type Order struct {
	ID                  string      `json:"id"`
	CustomerName        string      `json:"customer_name"`
	CustomerPhone       string      `json:"customer_phone"`
	Products            []OrderItem `json:"products"`
	Total               float64     `json:"total"`
	Status              OrderStatus `json:"status"`
	OrderType           string      `json:"order_type"`
	DeliveryMethod      string      `json:"delivery_method"`
	PaymentMethod       string      `json:"payment_method"`
	ChangeFor           string      `json:"change_for,omitempty"`
	AddressStreet       string      `json:"address_street,omitempty"`
	AddressNumber       string      `json:"address_number,omitempty"`
	AddressNeighborhood string      `json:"address_neighborhood,omitempty"`
	AddressZipcode      string      `json:"address_zipcode,omitempty"`
	DeliveryFee         float64     `json:"delivery_fee"`
	StaffName           string      `json:"staff_name,omitempty"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

// AuditAction ação registrada na trilha de auditoria
type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
)

// AuditChanges snapshots completos antes/depois da mutação, não diffs
type AuditChanges struct {
	Before any `json:"before"`
	After  any `json:"after"`
}

// AuditLog registro imutável de quem alterou o quê
type AuditLog struct {
	ID              string       `json:"id"`
	EntityName      string       `json:"entity_name"`
	EntityID        string       `json:"entity_id"`
	Action          AuditAction  `json:"action"`
	Changes         AuditChanges `json:"changes"`
	PerformedByID   string       `json:"performed_by_id,omitempty"`
	PerformedByName string       `json:"performed_by_name"`
	CreatedAt       time.Time    `json:"created_at"`
}

// Staff membro da equipe com acesso ao painel administrativo
type Staff struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// Role perfil de acesso com seu conjunto de permissões
type Role struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Permissions []string `json:"permissions"`
}

// Category categoria do catálogo
type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ImageURL  string `json:"image_url,omitempty"`
	SortOrder int    `json:"sort_order"`
}

// StoreConfig configuração única da loja
type StoreConfig struct {
	ID                     string   `json:"id"`
	StoreName              string   `json:"store_name"`
	LogoURL                string   `json:"logo_url,omitempty"`
	WhatsappNumber         string   `json:"whatsapp_number,omitempty"`
	DeliveryWhatsappNumber string   `json:"delivery_whatsapp_number,omitempty"`
	BannerImages           []string `json:"banner_images,omitempty"`
	Address                string   `json:"address,omitempty"`
	OpeningHours           string   `json:"opening_hours,omitempty"`
	PixKey                 string   `json:"pix_key,omitempty"`
	MinimumOrder           float64  `json:"minimum_order"`
	DeliveryEnabled        bool     `json:"delivery_enabled"`
	PickupEnabled          bool     `json:"pickup_enabled"`
}

// DeliveryZone bairro atendido e sua taxa de entrega
type DeliveryZone struct {
	ID           string  `json:"id"`
	Neighborhood string  `json:"neighborhood"`
	Fee          float64 `json:"fee"`
}

// DailyClosure fechamento de caixa de um dia
type DailyClosure struct {
	ID              string             `json:"id"`
	Date            string             `json:"date"`
	TotalSales      float64            `json:"total_sales"`
	TotalOrders     int                `json:"total_orders"`
	ByPaymentMethod map[string]float64 `json:"by_payment_method"`
	ByStaff         map[string]float64 `json:"by_staff"`
	Notes           string             `json:"notes,omitempty"`
	ClosedByName    string             `json:"closed_by_name"`
	CreatedAt       time.Time          `json:"created_at"`
}
