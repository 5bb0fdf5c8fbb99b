package auth

import (
	"crypto/sha1"
	"encoding/hex"
)

// HashPassword calcule l'empreinte SHA-1 (hexadécimal minuscule) du mot de passe.
// Non salé et non sûr : uniquement pour rester compatible avec les fixtures de démo.
func HashPassword(password string) string {
	sum := sha1.Sum([]byte(password))
	return hex.EncodeToString(sum[:])
}
