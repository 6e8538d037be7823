package approleassignment

// AppRole is a role a resource service principal exposes.
type AppRole struct {
	Id    string `json:"id"`
	Value string `json:"value"`
}

// AppRoleAssignment grants the owning principal a role on a resource.
// ResourceDisplayName is denormalized by the directory and may be stale.
type AppRoleAssignment struct {
	AppRoleId           string `json:"appRoleId"`
	ResourceId          string `json:"resourceId"`
	ResourceDisplayName string `json:"resourceDisplayName"`
}

type ServicePrincipal struct {
	Id                 string              `json:"id"`
	AppId              string              `json:"appId"`
	DisplayName        string              `json:"displayName"`
	AppRoles           []AppRole           `json:"appRoles"`
	AppRoleAssignments []AppRoleAssignment `json:"appRoleAssignments"`
}

// Assignment is an app role assignment joined with the role it refers to.
type Assignment struct {
	AppRoleId           string `json:"appRoleId"`
	ResourceDisplayName string `json:"resourceDisplayName"`
	ResourceId          string `json:"resourceId"`
	RoleId              string `json:"roleId"`
	RoleName            string `json:"roleName"`
}

// Summary is the reduced view printed in text mode.
type Summary struct {
	ResourceDisplayName string `json:"resourceDisplayName"`
	RoleName            string `json:"roleName"`
}
