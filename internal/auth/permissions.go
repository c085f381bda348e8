package auth

import "errors"

// RBAC роли и разрешения
const (
	RoleAdmin    = "admin"
	RoleBuyer    = "buyer"
	RoleSupplier = "supplier"
)

// Permissions список разрешений
var Permissions = map[string][]string{
	RoleAdmin: {
		"users:read",
		"users:write",
		"users:delete",
		"rfqs:read",
		"rfqs:write",
		"rfqs:delete",
		"bids:read",
		"evaluations:read",
		"system:admin",
	},
	RoleBuyer: {
		"users:read:self",
		"users:write:self",
		"rfqs:read",
		"rfqs:write:self",
		"rfqs:delete:self",
		"bids:read:own-rfq",
		"evaluations:run:self",
		"evaluations:read:self",
	},
	RoleSupplier: {
		"users:read:self",
		"users:write:self",
		"rfqs:read",
		"bids:read:self",
		"bids:write:self",
		"bids:withdraw:self",
	},
}

// HasPermission проверяет есть ли у роли указанное разрешение
func HasPermission(role, permission string) bool {
	permissions, exists := Permissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// CanPerformAction проверяет может ли пользователь выполнить действие
func CanPerformAction(claims *Claims, permission string) bool {
	return HasPermission(claims.Role, permission)
}

// IsAdmin проверяет является ли пользователь администратором
func IsAdmin(claims *Claims) bool {
	return claims.Role == RoleAdmin
}

// ValidateRole проверяет валидность роли
func ValidateRole(role string) error {
	switch role {
	case RoleAdmin, RoleBuyer, RoleSupplier:
		return nil
	default:
		return errors.New("invalid role")
	}
}
