package domain

import (
	"time"

	"github.com/google/uuid"
)

// Buyer is a registered prospect. Contact and credential fields come from
// registration step 1, preference fields from step 2. Score and ScoreTier are
// written only from a scoring engine result, never set independently.
type Buyer struct {
	ID           uuid.UUID
	Name         string
	Phone        string
	Email        string
	PasswordHash string

	Budget        int64
	Locations     []string
	PropertyTypes []PropertyType
	BuyingIntent  BuyingIntent

	Score     int32
	ScoreTier ScoreTier

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BuyingIntent is how the buyer plans to pay. Empty means "not sure" and is
// a valid state.
type BuyingIntent string

const (
	IntentUnspecified BuyingIntent = ""
	IntentCash        BuyingIntent = "CASH"
	IntentInstallment BuyingIntent = "INSTALLMENT"
	IntentMortgage    BuyingIntent = "MORTGAGE"
)

func (i BuyingIntent) String() string {
	return string(i)
}

// ParseBuyingIntent maps a wire value to a BuyingIntent. Unknown values fall
// back to unspecified rather than erroring, matching the permissive form
// handling at the edge.
func ParseBuyingIntent(s string) BuyingIntent {
	switch BuyingIntent(normalizeEnum(s)) {
	case IntentCash:
		return IntentCash
	case IntentInstallment:
		return IntentInstallment
	case IntentMortgage:
		return IntentMortgage
	default:
		return IntentUnspecified
	}
}

// ScoreTier is the coarse bucket derived from the lead score.
type ScoreTier string

const (
	TierHot  ScoreTier = "HOT"
	TierWarm ScoreTier = "WARM"
	TierCold ScoreTier = "COLD"
)

func (t ScoreTier) String() string {
	return string(t)
}

// BuyerFilter carries partial updates for a buyer. Nil fields are left
// untouched.
type BuyerFilter struct {
	Name          *string
	Phone         *string
	Email         *string
	Budget        *int64
	Locations     *[]string
	PropertyTypes *[]PropertyType
	BuyingIntent  *BuyingIntent
	Score         *int32
	ScoreTier     *ScoreTier
}
