package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"reviewer": {
		"question:list",
		"question:view",
		"question:review",
		"question:edit",
		"tables:read",
		"generation:view",
	},
	"admin": {
		"*", // everything, including question:delete and generation:control
	},
}
