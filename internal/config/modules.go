package config

// Module describes one analytics module exposed by the navigation surface.
type Module struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// Modules lists the analytics modules in display order.
func Modules() []Module {
	return []Module{
		{Key: "finance", Name: "Finance", Icon: "💰", Description: "Revenue KPIs, trends and geography"},
		{Key: "customers", Name: "Customer Analytics", Icon: "👤", Description: "Customer segmentation & analysis"},
		{Key: "music", Name: "Music Analytics", Icon: "🎵", Description: "Track & album performance, artist insights"},
		{Key: "employees", Name: "Employee Analytics", Icon: "👥", Description: "Employee performance metrics"},
		{Key: "alerts", Name: "Alert System", Icon: "🚨", Description: "Performance monitoring & alerts"},
		{Key: "explorer", Name: "SQL Explorer", Icon: "🗄️", Description: "Database exploration & queries"},
	}
}
