package entity

import "time"

type CardType string

const (
	CardVisa       CardType = "visa"
	CardMastercard CardType = "mastercard"
	CardAmex       CardType = "amex"
	CardOther      CardType = "other"
)

type Card struct {
	ID             string
	UserID         string
	TripID         string
	Name           string
	LastFourDigits string
	Type           CardType
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CardTypeOrDefault maps an empty type to CardOther and reports whether t
// is a known card type.
func CardTypeOrDefault(t string) (CardType, bool) {
	switch CardType(t) {
	case "":
		return CardOther, true
	case CardVisa, CardMastercard, CardAmex, CardOther:
		return CardType(t), true
	default:
		return "", false
	}
}
