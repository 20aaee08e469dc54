package contextkeys

type contextKey string

const (
	AdminLoginKey contextKey = "AdminLogin"
)
