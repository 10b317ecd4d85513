package mongodb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestActiveFilterAddsTombstoneExclusion(t *testing.T) {
	f := activeFilter(bson.M{"_id": "abc"})
	assert.Equal(t, "abc", f["_id"])
	assert.Equal(t, false, f["deleted"])
}

func TestActiveFilterHandlesNil(t *testing.T) {
	f := activeFilter(nil)
	assert.Equal(t, bson.M{"deleted": false}, f)
}

func TestAnyFilterLeavesTombstonesVisible(t *testing.T) {
	f := anyFilter(bson.M{"_id": "abc"})
	_, has := f["deleted"]
	assert.False(t, has)

	assert.Equal(t, bson.M{}, anyFilter(nil))
}

func TestNewIDIsHexObjectID(t *testing.T) {
	id := newID()
	assert.Len(t, id, 24)
	assert.NotEqual(t, newID(), id)
}
