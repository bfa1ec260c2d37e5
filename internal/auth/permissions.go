package auth

import (
	"fmt"

	"github.com/RajaDani/antique-watches-sub001/internal/model"

	"github.com/casbin/casbin/v2"
	casbinmodel "github.com/casbin/casbin/v2/model"
)

// Capabilities a role may hold.
const (
	CapRead            = "read"
	CapWrite           = "write"
	CapDelete          = "delete"
	CapManageOrders    = "manage_orders"
	CapManageCustomers = "manage_customers"
	CapManageAdmins    = "manage_admins"
)

// rbacModel is the casbin model for the fixed role→capability table.
const rbacModel = `
[request_definition]
r = sub, act

[policy_definition]
p = sub, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.act == p.act
`

// roleCapabilities is the static permission table. Roles outside this table
// are always denied.
var roleCapabilities = map[string][]string{
	model.RoleSuperAdmin: {CapRead, CapWrite, CapDelete, CapManageOrders, CapManageCustomers, CapManageAdmins},
	model.RoleAdmin:      {CapRead, CapWrite, CapDelete, CapManageOrders, CapManageCustomers},
	model.RoleEditor:     {CapRead, CapWrite},
	model.RoleViewer:     {CapRead},
}

// Permissions answers (role, capability) → allowed over the closed role and
// capability sets. The table is static; there is no runtime policy mutation.
type Permissions struct {
	enforcer *casbin.Enforcer
}

// NewPermissions builds the enforcer from the embedded model and the static
// capability table.
func NewPermissions() (*Permissions, error) {
	m, err := casbinmodel.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rbac model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize rbac enforcer: %w", err)
	}

	for role, caps := range roleCapabilities {
		for _, cap := range caps {
			if _, err := enforcer.AddPolicy(role, cap); err != nil {
				return nil, fmt.Errorf("failed to load policy %s/%s: %w", role, cap, err)
			}
		}
	}

	return &Permissions{enforcer: enforcer}, nil
}

// RoleHasCapability reports whether the role holds the capability. Unknown
// roles and capabilities are denied.
func (p *Permissions) RoleHasCapability(role, capability string) bool {
	allowed, err := p.enforcer.Enforce(role, capability)
	if err != nil {
		return false
	}
	return allowed
}

// Roles returns the enumerated admin roles.
func Roles() []string {
	return []string{model.RoleSuperAdmin, model.RoleAdmin, model.RoleEditor, model.RoleViewer}
}

// ValidRole reports whether role is one of the enumerated admin roles.
func ValidRole(role string) bool {
	_, ok := roleCapabilities[role]
	return ok
}
