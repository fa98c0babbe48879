package domain

type Role string

const (
	RoleOwner Role = "owner"
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// Admin 是从身份提供方签发的令牌中解析出的当前操作者
type Admin struct {
	Subject  string `json:"subject"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	TenantID string `json:"tenantID"`
}
