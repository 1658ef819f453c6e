package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrateModelsRequiresConnection(t *testing.T) {
	DB = nil
	assert.ErrorIs(t, MigrateModels(), ErrNotInitialized)
	assert.NoError(t, Close())
}

func TestModelsOrder(t *testing.T) {
	// clinics must exist before users reference them
	assert.Len(t, Models, 5)
}
