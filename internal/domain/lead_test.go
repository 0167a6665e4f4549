package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeadStatus_CanTransitionTo(t *testing.T) {
	allowed := []struct {
		from LeadStatus
		to   LeadStatus
	}{
		{LeadStatusNew, LeadStatusContacted},
		{LeadStatusNew, LeadStatusLost},
		{LeadStatusContacted, LeadStatusDeal},
		{LeadStatusContacted, LeadStatusLost},
	}
	for _, tc := range allowed {
		assert.True(t, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}

	denied := []struct {
		from LeadStatus
		to   LeadStatus
	}{
		{LeadStatusNew, LeadStatusDeal},
		{LeadStatusNew, LeadStatusNew},
		{LeadStatusContacted, LeadStatusNew},
		{LeadStatusDeal, LeadStatusLost},
		{LeadStatusDeal, LeadStatusContacted},
		{LeadStatusLost, LeadStatusContacted},
		{LeadStatusUnspecified, LeadStatusNew},
	}
	for _, tc := range denied {
		assert.False(t, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestParseLeadStatus(t *testing.T) {
	assert.Equal(t, LeadStatusNew, ParseLeadStatus("new"))
	assert.Equal(t, LeadStatusContacted, ParseLeadStatus(" CONTACTED "))
	assert.Equal(t, LeadStatusDeal, ParseLeadStatus("Deal"))
	assert.Equal(t, LeadStatusUnspecified, ParseLeadStatus("bogus"))
}
