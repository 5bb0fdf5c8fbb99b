package cart

import (
	"log"
	"sync"

	"storefront/internal/models"
	"storefront/internal/storage"
)

// AuthenticatedDiscount est la remise accordée quand une session est active (2 %).
const AuthenticatedDiscount = 0.02

// Session donne l'état de connexion utilisé pour la remise.
type Session interface {
	IsAuthenticated() bool
}

// Engine gère les lignes du panier. Toutes les valeurs dérivées sont
// recalculées à la lecture ; chaque mutation est persistée aussitôt.
type Engine struct {
	mu      sync.Mutex
	store   *storage.LocalStorage
	session Session
	items   []models.CartItem

	listenersMu sync.Mutex
	listeners   map[int]func(models.CartSummary)
	nextID      int
}

// NewEngine restaure le panier persisté ; une clé absente ou illisible donne un panier vide.
func NewEngine(store *storage.LocalStorage, session Session) *Engine {
	e := &Engine{
		store:     store,
		session:   session,
		listeners: make(map[int]func(models.CartSummary)),
	}
	e.items = loadItems(store)
	return e
}

func loadItems(store *storage.LocalStorage) []models.CartItem {
	stored, ok := storage.GetItem[[]models.StoredCartItem](store, storage.KeyCart)
	if !ok {
		return nil
	}

	items := make([]models.CartItem, 0, len(stored))
	for _, s := range stored {
		if s.Quantity <= 0 {
			continue
		}
		if s.Product.Reference == "" {
			s.Product.Reference = s.Reference
		}
		// Deux lignes pour le même produit sont fusionnées
		if i := indexOf(items, s.Product.Reference); i >= 0 {
			items[i].Quantity += s.Quantity
			continue
		}
		items = append(items, models.CartItem{Product: s.Product, Quantity: s.Quantity})
	}
	return items
}

func indexOf(items []models.CartItem, reference string) int {
	for i := range items {
		if items[i].Product.Reference == reference {
			return i
		}
	}
	return -1
}

// Add ajoute quantity exemplaires du produit, en incrémentant la ligne existante s'il y en a une.
func (e *Engine) Add(product models.Product, quantity int) {
	if quantity <= 0 {
		log.Printf("⚠️ Quantité invalide ignorée pour %s: %d", product.Reference, quantity)
		return
	}

	e.mu.Lock()
	if i := indexOf(e.items, product.Reference); i >= 0 {
		e.items[i].Quantity += quantity
	} else {
		e.items = append(e.items, models.CartItem{Product: product, Quantity: quantity})
	}
	e.save()
	e.mu.Unlock()

	e.Notify()
}

// UpdateQuantity fixe la quantité d'une ligne. Une quantité <= 0 retire la
// ligne ; une référence absente ne fait rien.
func (e *Engine) UpdateQuantity(reference string, quantity int) {
	if quantity <= 0 {
		e.Remove(reference)
		return
	}

	e.mu.Lock()
	i := indexOf(e.items, reference)
	if i < 0 {
		e.mu.Unlock()
		return
	}
	e.items[i].Quantity = quantity
	e.save()
	e.mu.Unlock()

	e.Notify()
}

func (e *Engine) Remove(reference string) {
	e.mu.Lock()
	if i := indexOf(e.items, reference); i >= 0 {
		e.items = append(e.items[:i:i], e.items[i+1:]...)
	}
	e.save()
	e.mu.Unlock()

	e.Notify()
}

// Clear vide le panier et supprime la clé persistée (et non une liste vide).
func (e *Engine) Clear() {
	e.mu.Lock()
	e.items = nil
	e.store.RemoveItem(storage.KeyCart)
	e.mu.Unlock()

	e.Notify()
}

// save doit être appelé avec e.mu verrouillé.
func (e *Engine) save() {
	data := make([]models.StoredCartItem, 0, len(e.items))
	for _, item := range e.items {
		data = append(data, models.StoredCartItem{
			Reference: item.Product.Reference,
			Quantity:  item.Quantity,
			Product:   item.Product,
		})
	}
	e.store.SetItem(storage.KeyCart, data)
}

func (e *Engine) Items() []models.CartItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]models.CartItem(nil), e.items...)
}

// Quantity retourne la quantité d'un produit dans le panier (0 s'il est absent).
func (e *Engine) Quantity(reference string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i := indexOf(e.items, reference); i >= 0 {
		return e.items[i].Quantity
	}
	return 0
}

// Count est la somme des quantités.
func (e *Engine) Count() int {
	return e.Summary().Count
}

// Subtotal est la somme prix_lot × quantité, avant remise.
func (e *Engine) Subtotal() float64 {
	return e.Summary().Subtotal
}

func (e *Engine) DiscountRate() float64 {
	if e.session != nil && e.session.IsAuthenticated() {
		return AuthenticatedDiscount
	}
	return 0
}

func (e *Engine) DiscountAmount() float64 {
	return e.Summary().DiscountAmount
}

// Total est le sous-total après remise.
func (e *Engine) Total() float64 {
	return e.Summary().Total
}

func (e *Engine) IsEmpty() bool {
	return e.Summary().IsEmpty
}

// Summary calcule toutes les valeurs dérivées sur le même état.
func (e *Engine) Summary() models.CartSummary {
	e.mu.Lock()
	items := append([]models.CartItem(nil), e.items...)
	e.mu.Unlock()

	summary := models.CartSummary{Items: items, IsEmpty: len(items) == 0}
	if summary.Items == nil {
		summary.Items = []models.CartItem{}
	}
	for _, item := range items {
		summary.Count += item.Quantity
		summary.Subtotal += item.Product.LotPrice * float64(item.Quantity)
	}
	summary.DiscountRate = e.DiscountRate()
	summary.DiscountAmount = summary.Subtotal * summary.DiscountRate
	summary.Total = summary.Subtotal * (1 - summary.DiscountRate)
	return summary
}

// Subscribe enregistre fn, appelée avec un nouveau résumé après chaque
// changement. La fonction retournée désabonne.
func (e *Engine) Subscribe(fn func(models.CartSummary)) func() {
	e.listenersMu.Lock()
	id := e.nextID
	e.nextID++
	e.listeners[id] = fn
	e.listenersMu.Unlock()

	return func() {
		e.listenersMu.Lock()
		delete(e.listeners, id)
		e.listenersMu.Unlock()
	}
}

// Notify publie le résumé courant aux abonnés (appelé aussi quand la session change).
func (e *Engine) Notify() {
	e.listenersMu.Lock()
	if len(e.listeners) == 0 {
		e.listenersMu.Unlock()
		return
	}
	listeners := make([]func(models.CartSummary), 0, len(e.listeners))
	for _, fn := range e.listeners {
		listeners = append(listeners, fn)
	}
	e.listenersMu.Unlock()

	summary := e.Summary()
	for _, fn := range listeners {
		fn(summary)
	}
}
