package model

import (
	"time"

	"github.com/google/uuid"
)

// Roles mirror the front-of-house hierarchy of the store.
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleEncargado  = "encargado"
	RoleCajero     = "cajero"
)

// Permissions are explicit capability flags carried in the JWT and checked by
// the service layer. Authorization is never read from ambient state.
type Permissions struct {
	CanSell           bool `json:"canSell"`
	CanManageProducts bool `json:"canManageProducts"`
	CanSeeReports     bool `json:"canSeeReports"`
	CanDoCashCuts     bool `json:"canDoCashCuts"`
	CanManageCashbox  bool `json:"canManageCashbox"`
	CanCancelSales    bool `json:"canCancelSales"`
	CanManageUsers    bool `json:"canManageUsers"`
	CanAccessConfig   bool `json:"canAccessConfig"`
}

// DefaultPermissions returns the baseline flags for a role. Admin gets
// everything; a plain cashier can only sell.
func DefaultPermissions(role string) Permissions {
	switch role {
	case RoleAdmin:
		return Permissions{
			CanSell: true, CanManageProducts: true, CanSeeReports: true,
			CanDoCashCuts: true, CanManageCashbox: true, CanCancelSales: true,
			CanManageUsers: true, CanAccessConfig: true,
		}
	case RoleSupervisor:
		return Permissions{
			CanSell: true, CanManageProducts: true, CanSeeReports: true,
			CanDoCashCuts: true, CanManageCashbox: true, CanCancelSales: true,
		}
	case RoleEncargado:
		return Permissions{
			CanSell: true, CanSeeReports: true,
			CanDoCashCuts: true, CanManageCashbox: true,
		}
	default:
		return Permissions{CanSell: true}
	}
}

// User stores system users with role plus per-user permission flags.
type User struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string      `gorm:"uniqueIndex;not null"`
	Name         string      `gorm:"not null"`
	PasswordHash string      `gorm:"not null"`
	Role         string      `gorm:"type:varchar(20);not null;default:'cajero'"`
	Permissions  Permissions `gorm:"embedded;embeddedPrefix:perm_"`
	IsActive     bool        `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Actor is the authenticated identity passed explicitly into every service
// operation that needs authorization or attribution.
type Actor struct {
	ID          uuid.UUID
	Username    string
	Role        string
	Permissions Permissions
}
