package service

import (
	"Storefront/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckTransition_Table(t *testing.T) {
	all := []string{
		models.OrderStatusNew,
		models.OrderStatusConfirmed,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
		models.OrderStatusCancelled,
	}
	allowed := map[string]map[string]bool{
		models.OrderStatusNew:       {models.OrderStatusConfirmed: true, models.OrderStatusCancelled: true},
		models.OrderStatusConfirmed: {models.OrderStatusShipped: true, models.OrderStatusCancelled: true},
		models.OrderStatusShipped:   {models.OrderStatusDelivered: true},
	}

	for _, from := range all {
		for _, to := range all {
			err := CheckTransition(from, to)
			if from == to || allowed[from][to] {
				assert.NoError(t, err, "%s -> %s", from, to)
				continue
			}
			var te *InvalidTransitionError
			require.ErrorAs(t, err, &te, "%s -> %s", from, to)
			assert.Equal(t, from, te.From)
			assert.Equal(t, to, te.To)
		}
	}
}

func TestCheckTransition_NewToShipped(t *testing.T) {
	err := CheckTransition(models.OrderStatusNew, models.OrderStatusShipped)

	var te *InvalidTransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, []string{models.OrderStatusConfirmed, models.OrderStatusCancelled}, te.Allowed)
}

func TestAllowedTransitions_Terminal(t *testing.T) {
	assert.Empty(t, AllowedTransitions(models.OrderStatusDelivered))
	assert.Empty(t, AllowedTransitions(models.OrderStatusCancelled))
	assert.NotEmpty(t, AllowedTransitions(models.OrderStatusShipped))
}

func TestAllowedTransitions_Copy(t *testing.T) {
	got := AllowedTransitions(models.OrderStatusNew)
	got[0] = "mutated"
	assert.Equal(t, models.OrderStatusConfirmed, AllowedTransitions(models.OrderStatusNew)[0])
}
