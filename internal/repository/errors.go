package repository

import "errors"

var (
	ErrBuyerNotFound      = errors.New("buyer not found")
	ErrBuyerAlreadyExists = errors.New("buyer already exists")
	ErrPropertyNotFound   = errors.New("property not found")
	ErrLeadNotFound       = errors.New("lead not found")
	ErrLeadAlreadyExists  = errors.New("lead already exists for buyer and property")
	ErrNoFieldsToUpdate   = errors.New("no fields to update")
)

// UniqueViolationCode is the postgres error code for unique constraint
// violations, used to map races on (buyer_id, property_id) and duplicate
// registrations to domain sentinels.
const UniqueViolationCode = "23505"
