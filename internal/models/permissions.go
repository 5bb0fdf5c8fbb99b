package models

// Role représente un rôle et ses droits (drapeaux 0/1 dans auth.json)
type Role struct {
	ID     int    `json:"id_role"`
	Name   string `json:"nom_role"`
	Rights Rights `json:"droits"`
}

type Rights struct {
	Nav    int `json:"nav"`
	Create int `json:"create"`
	Update int `json:"update"`
	Delete int `json:"delete"`
	Admin  int `json:"admin"`
}

// Capacités vérifiables sur un rôle
const (
	PERM_NAV    = "nav"
	PERM_CREATE = "create"
	PERM_UPDATE = "update"
	PERM_DELETE = "delete"
	PERM_ADMIN  = "admin"
)

// StandardRoleID est le rôle "Utilisateur", imposé à tous les comptes créés localement.
const StandardRoleID = 3

// Allows indique si le rôle possède la capacité demandée.
func (r Role) Allows(permission string) bool {
	switch permission {
	case PERM_NAV:
		return r.Rights.Nav != 0
	case PERM_CREATE:
		return r.Rights.Create != 0
	case PERM_UPDATE:
		return r.Rights.Update != 0
	case PERM_DELETE:
		return r.Rights.Delete != 0
	case PERM_ADMIN:
		return r.Rights.Admin != 0
	}
	return false
}
