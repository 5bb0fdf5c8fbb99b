package auth

import "unicode/utf8"

// Messages affichés tels quels par l'interface
const (
	MsgInvalidCredentials = "Email ou mot de passe incorrect"
	MsgEmailAlreadyUsed   = "Cet email est déjà utilisé"
	MsgMissingFields      = "Veuillez remplir tous les champs"
	MsgPasswordMismatch   = "Les mots de passe ne correspondent pas"
	MsgPasswordTooShort   = "Le mot de passe doit contenir au moins 6 caractères"
)

const MinPasswordLength = 6

type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate retourne le message d'erreur du formulaire, ou "" s'il est valide.
func (f LoginForm) Validate() string {
	if f.Email == "" || f.Password == "" {
		return MsgMissingFields
	}
	return ""
}

type RegistrationForm struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	FirstName       string `json:"prenom"`
	LastName        string `json:"nom"`
}

// Validate applique les règles dans le même ordre que le formulaire de création de compte.
func (f RegistrationForm) Validate() string {
	if f.Email == "" || f.Password == "" || f.LastName == "" || f.FirstName == "" {
		return MsgMissingFields
	}
	if f.Password != f.ConfirmPassword {
		return MsgPasswordMismatch
	}
	if utf8.RuneCountInString(f.Password) < MinPasswordLength {
		return MsgPasswordTooShort
	}
	return ""
}
