package storage

import "errors"

var (
	ErrUserNotFound      = errors.New("utilisateur introuvable")
	ErrEmailTaken        = errors.New("un compte avec cet email existe déjà")
	ErrCartNotFound      = errors.New("panier introuvable")
	ErrItemNotFound      = errors.New("produit absent du panier")
	ErrOrderNotFound     = errors.New("commande introuvable")
	ErrInvalidStatus     = errors.New("statut invalide")
	ErrIllegalTransition = errors.New("transition de statut interdite")
	ErrVersionConflict   = errors.New("conflit de version du panier")
	ErrRetryExhausted    = errors.New("échec après plusieurs tentatives concurrentes")
)
