// Package caching owns the cache-key vocabulary, the mutation-to-key
// invalidation rule, and the read-through pattern shared by every cacheable
// query.
package caching

// Fixed cache keys. Every cached read is stored under one of these or a
// parameterized variant below; the invalidation rule in invalidate.go must
// name every family a mutation can affect.
const (
	KeyLatestProducts  = "latest-products"
	KeyCategories      = "categories"
	KeyAdminProducts   = "admin-products"
	KeyAllOrders       = "all-order"
	KeyAdminStats      = "admin-stats"
	KeyAdminPieCharts  = "admin-pie-charts"
	KeyAdminBarCharts  = "admin-bar-charts"
	KeyAdminLineCharts = "admin-line-charts"
)

// ProductKey is the detail key for one product.
func ProductKey(productID string) string {
	return "product-" + productID
}

// MyOrdersKey is the per-user order listing key.
func MyOrdersKey(userID string) string {
	return "my-order-" + userID
}

// OrderKey is the detail key for one order.
func OrderKey(orderID string) string {
	return "order-" + orderID
}

// adminKeys are the dashboard aggregates, always evicted together.
func adminKeys() []string {
	return []string{KeyAdminStats, KeyAdminPieCharts, KeyAdminBarCharts, KeyAdminLineCharts}
}
