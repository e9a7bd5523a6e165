package auth

const (
	RoleAdmin    = "admin"
	RolePreparer = "preparer"
	RoleViewer   = "viewer"
)

const (
	PermSettlementRead   = "settlement.read"
	PermSettlementWrite  = "settlement.write"
	PermSettlementDelete = "settlement.delete"
)

var DefaultPermissions = []string{
	PermSettlementRead,
	PermSettlementWrite,
	PermSettlementDelete,
}

var RolePermissions = map[string][]string{
	RoleViewer: {
		PermSettlementRead,
	},
	RolePreparer: {
		PermSettlementRead,
		PermSettlementWrite,
	},
	RoleAdmin: {
		PermSettlementRead,
		PermSettlementWrite,
		PermSettlementDelete,
	},
}
