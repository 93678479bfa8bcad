package analytics

// ChangePercent carries month-over-month growth for the dashboard header.
type ChangePercent struct {
	Revenue float64 `json:"revenue"`
	Product float64 `json:"product"`
	User    float64 `json:"user"`
	Order   float64 `json:"order"`
}

// Totals are the all-time counters shown beside the change percentages.
type Totals struct {
	Revenue float64 `json:"revenue"`
	User    int     `json:"user"`
	Product int     `json:"product"`
	Order   int     `json:"order"`
}

// GenderRatio splits the user base for the dashboard donut.
type GenderRatio struct {
	Male   int `json:"male"`
	Female int `json:"female"`
}

// TransactionSummary is one row of the latest-transactions table.
type TransactionSummary struct {
	ID       string  `json:"_id"`
	Discount float64 `json:"discount"`
	Amount   float64 `json:"amount"`
	Quantity int     `json:"quantity"`
	Status   string  `json:"status"`
}

// OrderChart pairs the six-month order count and revenue series.
type OrderChart struct {
	Order   []float64 `json:"order"`
	Revenue []float64 `json:"revenue"`
}

// StatsOverview is the admin-stats payload.
type StatsOverview struct {
	CategoryCount     []map[string]int     `json:"categoryCount"`
	UserGenderRatio   GenderRatio          `json:"userGenderRatio"`
	ChangePercent     ChangePercent        `json:"changePercent"`
	LatestTransaction []TransactionSummary `json:"latestTransaction"`
	Count             Totals               `json:"count"`
	Chart             OrderChart           `json:"chart"`
}

// OrderFulfillment counts orders per fulfillment stage.
type OrderFulfillment struct {
	Processing int `json:"processing"`
	Shipped    int `json:"shipped"`
	Delivered  int `json:"delivered"`
}

// StockAvailability splits the catalog by stock state.
type StockAvailability struct {
	InStock    int `json:"inStock"`
	OutOfStock int `json:"outOfStock"`
}

// RevenueDistribution decomposes gross income for the revenue pie.
type RevenueDistribution struct {
	NetMargin      float64 `json:"netMargin"`
	Discount       float64 `json:"discount"`
	ProductionCost float64 `json:"productionCost"`
	Burnt          float64 `json:"burnt"`
	MarketingCost  float64 `json:"marketingCost"`
}

// AgeGroups is the customer age histogram.
type AgeGroups struct {
	Teen  int `json:"teen"`
	Adult int `json:"adult"`
	Old   int `json:"old"`
}

// AdminCustomer counts accounts per role.
type AdminCustomer struct {
	Admin    int `json:"admin"`
	Customer int `json:"customer"`
}

// PieCharts is the admin-pie-charts payload. The orderFullfillment spelling
// is kept for compatibility with the existing dashboard frontend.
type PieCharts struct {
	OrderFulfillment    OrderFulfillment    `json:"orderFullfillment"`
	ProductCategories   []map[string]int    `json:"productCategories"`
	StockAvailability   StockAvailability   `json:"stockAvailability"`
	RevenueDistribution RevenueDistribution `json:"revenueDistribution"`
	UsersAgeGroup       AgeGroups           `json:"usersAgeGroup"`
	AdminCustomer       AdminCustomer       `json:"adminCustomer"`
}

// BarCharts is the admin-bar-charts payload: six-month product and user
// counts plus a twelve-month order count.
type BarCharts struct {
	Products []float64 `json:"products"`
	Users    []float64 `json:"users"`
	Orders   []float64 `json:"orders"`
}

// LineCharts is the admin-line-charts payload: twelve-month series across
// the board.
type LineCharts struct {
	Products []float64 `json:"products"`
	Users    []float64 `json:"users"`
	Revenue  []float64 `json:"revenue"`
	Discount []float64 `json:"discount"`
}
