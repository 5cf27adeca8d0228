package shared

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvent(aggID, tenantID uuid.UUID) DomainEvent {
	event := NewBaseDomainEvent("order.created", "Order", aggID, tenantID)
	return &event
}

func TestNewTenantAggregateRoot(t *testing.T) {
	tenantID := uuid.New()
	root := NewTenantAggregateRoot(tenantID)

	assert.NotEqual(t, uuid.Nil, root.ID)
	assert.Equal(t, tenantID, root.TenantID)
	assert.Equal(t, 1, root.Version)
	assert.False(t, root.CreatedAt.IsZero())
	assert.Equal(t, root.CreatedAt, root.UpdatedAt)
	assert.Empty(t, root.GetDomainEvents())
}

func TestBaseAggregateRoot_Versioning(t *testing.T) {
	root := NewBaseAggregateRoot()

	root.IncrementVersion()
	root.IncrementVersion()
	assert.Equal(t, 3, root.Version)
}

func TestBaseAggregateRoot_DomainEvents(t *testing.T) {
	root := NewBaseAggregateRoot()

	root.AddDomainEvent(testEvent(root.ID, uuid.Nil))
	root.AddDomainEvent(testEvent(root.ID, uuid.Nil))
	require.Len(t, root.GetDomainEvents(), 2)

	root.ClearDomainEvents()
	assert.Empty(t, root.GetDomainEvents())
}
