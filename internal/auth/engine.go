package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"slices"
	"sync"

	"storefront/internal/models"
	"storefront/internal/storage"
)

// Engine gère l'identité de l'utilisateur courant : connexion, inscription,
// déconnexion et résolution du rôle. Un seul Engine par client.
type Engine struct {
	mu    sync.RWMutex
	store *storage.LocalStorage

	users      []models.User
	roles      []models.Role
	registered map[int]bool // ids des comptes créés localement

	currentUser   *models.User
	currentRole   *models.Role
	authenticated bool

	listeners []func(authenticated bool)
}

// ParseAuthData décode le contenu de auth.json.
func ParseAuthData(raw []byte) (models.AuthData, error) {
	var data models.AuthData
	if err := json.Unmarshal(raw, &data); err != nil {
		return models.AuthData{}, fmt.Errorf("auth.json invalide: %w", err)
	}
	return data, nil
}

// DataPath est le fichier statique des comptes et des rôles.
const DataPath = "/assets/data/auth.json"

// Fetcher lit un fichier statique ; catalog.Source convient.
type Fetcher interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// FetchAuthData récupère et décode auth.json depuis la même source que le catalogue.
func FetchAuthData(ctx context.Context, f Fetcher) (models.AuthData, error) {
	raw, err := f.Fetch(ctx, DataPath)
	if err != nil {
		return models.AuthData{}, fmt.Errorf("chargement de %s: %w", DataPath, err)
	}
	return ParseAuthData(raw)
}

// NewEngine charge les utilisateurs statiques, fusionne les comptes créés
// localement puis restaure la session persistée.
func NewEngine(data models.AuthData, store *storage.LocalStorage) *Engine {
	e := &Engine{
		store:      store,
		users:      append([]models.User(nil), data.Users...),
		roles:      append([]models.Role(nil), data.Roles...),
		registered: make(map[int]bool),
	}
	e.loadRegisteredUsers()
	e.restoreSession()
	return e
}

func (e *Engine) loadRegisteredUsers() {
	registeredUsers, ok := storage.GetItem[[]models.User](e.store, storage.KeyRegisteredUsers)
	if !ok {
		return
	}

	// Les utilisateurs statiques gagnent en cas de collision d'id
	existingIDs := make(map[int]bool, len(e.users))
	for _, u := range e.users {
		existingIDs[u.ID] = true
	}
	for _, u := range registeredUsers {
		if existingIDs[u.ID] {
			continue
		}
		existingIDs[u.ID] = true
		e.users = append(e.users, u)
		e.registered[u.ID] = true
	}
}

func (e *Engine) restoreSession() {
	user, ok := storage.GetItem[models.User](e.store, storage.KeyCurrentUser)
	if !ok {
		return
	}
	e.currentUser = &user
	e.authenticated = true

	// Ne jamais faire confiance au rôle persisté d'un compte créé localement
	if e.registered[user.ID] {
		e.currentRole = e.findRole(models.StandardRoleID)
		return
	}
	if role, ok := storage.GetItem[models.Role](e.store, storage.KeyCurrentRole); ok {
		e.currentRole = &role
	}
}

// Login vérifie les identifiants. Le message d'échec est le même que l'email
// soit inconnu ou que le mot de passe soit faux.
func (e *Engine) Login(email, password string) models.AuthResponse {
	hashed := HashPassword(password)

	e.mu.Lock()
	var found *models.User
	for i := range e.users {
		if e.users[i].Login == email && e.users[i].Password == hashed {
			u := e.users[i]
			found = &u
			break
		}
	}
	if found == nil {
		e.mu.Unlock()
		log.Printf("⚠️ Échec de connexion pour %s", email)
		return models.AuthResponse{Success: false, Message: MsgInvalidCredentials}
	}

	roleID := found.RoleID
	if e.registered[found.ID] {
		roleID = models.StandardRoleID
	}
	role := e.findRole(roleID)

	e.currentUser = found
	e.currentRole = role
	e.authenticated = true

	e.store.SetItem(storage.KeyCurrentUser, found)
	if role != nil {
		e.store.SetItem(storage.KeyCurrentRole, role)
	} else {
		e.store.RemoveItem(storage.KeyCurrentRole)
	}
	e.mu.Unlock()

	log.Printf("✅ Utilisateur %d connecté", found.ID)
	e.notify(true)

	return models.AuthResponse{Success: true, User: copyUser(found), Role: copyRole(role)}
}

// Logout repasse en anonyme et efface la session persistée. Idempotent.
func (e *Engine) Logout() {
	e.mu.Lock()
	wasAuthenticated := e.authenticated
	e.currentUser = nil
	e.currentRole = nil
	e.authenticated = false
	e.store.RemoveItem(storage.KeyCurrentUser)
	e.store.RemoveItem(storage.KeyCurrentRole)
	e.mu.Unlock()

	if wasAuthenticated {
		e.notify(false)
	}
}

// Register crée un compte local avec le rôle standard. Il ne connecte pas l'utilisateur.
func (e *Engine) Register(email, password, firstName, lastName string) models.AuthResponse {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, u := range e.users {
		if u.Login == email {
			return models.AuthResponse{Success: false, Message: MsgEmailAlreadyUsed}
		}
	}

	maxID := 0
	for _, u := range e.users {
		if u.ID > maxID {
			maxID = u.ID
		}
	}

	newUser := models.User{
		ID:        maxID + 1,
		LastName:  lastName,
		FirstName: firstName,
		Login:     email,
		Password:  HashPassword(password),
		RoleID:    models.StandardRoleID,
	}
	e.users = append(e.users, newUser)
	e.registered[newUser.ID] = true

	// Liste en ajout seul, jamais réécrite à la déconnexion
	// Une liste illisible est remplacée par le seul nouveau compte
	registeredUsers, _ := storage.GetItem[[]models.User](e.store, storage.KeyRegisteredUsers)
	registeredUsers = append(registeredUsers, newUser)
	e.store.SetItem(storage.KeyRegisteredUsers, registeredUsers)

	log.Printf("✅ Compte créé pour %s (id %d)", email, newUser.ID)

	return models.AuthResponse{
		Success: true,
		User:    copyUser(&newUser),
		Role:    copyRole(e.findRole(models.StandardRoleID)),
	}
}

func (e *Engine) IsAuthenticated() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.authenticated
}

func (e *Engine) CurrentUser() *models.User {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return copyUser(e.currentUser)
}

// CurrentRole re-dérive le rôle à chaque appel : un compte créé localement
// est toujours "Utilisateur", quel que soit le rôle mémorisé.
func (e *Engine) CurrentRole() *models.Role {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.currentUser != nil && e.registered[e.currentUser.ID] {
		return copyRole(e.findRole(models.StandardRoleID))
	}
	return copyRole(e.currentRole)
}

// Can indique si le rôle courant possède la capacité demandée (models.PERM_*).
func (e *Engine) Can(permission string) bool {
	role := e.CurrentRole()
	return role != nil && role.Allows(permission)
}

// Users retourne la liste fusionnée (statiques + comptes créés).
func (e *Engine) Users() []models.User {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]models.User(nil), e.users...)
}

// Subscribe enregistre une fonction appelée à chaque connexion/déconnexion.
func (e *Engine) Subscribe(fn func(authenticated bool)) {
	e.mu.Lock()
	e.listeners = append(e.listeners, fn)
	e.mu.Unlock()
}

func (e *Engine) notify(authenticated bool) {
	e.mu.RLock()
	listeners := slices.Clone(e.listeners)
	e.mu.RUnlock()

	for _, fn := range listeners {
		fn(authenticated)
	}
}

// findRole doit être appelé avec e.mu verrouillé.
func (e *Engine) findRole(id int) *models.Role {
	for i := range e.roles {
		if e.roles[i].ID == id {
			r := e.roles[i]
			return &r
		}
	}
	return nil
}

func copyUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

func copyRole(r *models.Role) *models.Role {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}
