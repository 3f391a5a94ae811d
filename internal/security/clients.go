package security

// In-memory client registry (replace with DB/config later)
type Client struct {
	ID      string
	Secret  string
	Perms   []string // e.g. {"orders.read","orders.write"}
	Enabled bool
}

var Clients = map[string]Client{
	"admin-dashboard": {ID: "admin-dashboard", Secret: "admin-dashboard-secret", Perms: []string{"orders.read", "orders.write", "reports.read"}, Enabled: true},
	"svc-backoffice":  {ID: "svc-backoffice", Secret: "backoffice-secret", Perms: []string{"orders.read", "orders.write"}, Enabled: true},
	"svc-finance":     {ID: "svc-finance", Secret: "finance-secret", Perms: []string{"orders.read", "reports.read"}, Enabled: true},
}
