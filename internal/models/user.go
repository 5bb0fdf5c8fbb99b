package models

type User struct {
	ID        int    `json:"id_user"`
	LastName  string `json:"nom_user"`
	FirstName string `json:"prenom_user"`
	Login     string `json:"login_user"`
	Password  string `json:"mdp_user"`
	RoleID    int    `json:"id_role_user"`
}

// AuthData est le contenu du fichier statique auth.json.
type AuthData struct {
	Users []User `json:"users"`
	Roles []Role `json:"roles"`
}

// AuthResponse est le résultat de Login et Register : jamais d'erreur Go, un succès ou un message.
type AuthResponse struct {
	Success bool   `json:"success"`
	User    *User  `json:"user,omitempty"`
	Role    *Role  `json:"role,omitempty"`
	Message string `json:"message,omitempty"`
}
