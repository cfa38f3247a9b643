package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSQLiteStore(t *testing.T) {
	store, err := NewSQLiteStore(":memory:") // the memory database for testing purposes
	assert.NoError(t, err)
	defer store.Close()

	record := Record{
		ModelName:  "demo",
		Bucket:     "b",
		Key:        "models/demo.tar.gz",
		Address:    "s3://b/models/demo.tar.gz",
		LocalPath:  "./demo.tar.gz",
		Digest:     "d41d8cd98f00b204e9800998ecf8427e",
		SizeBytes:  1024,
		CreateTime: "2024-01-01T00:00:00Z",
	}

	// Test Put.
	assert.NoError(t, store.Put(record))

	// Test Get.
	got, err := store.Get("demo")
	assert.NoError(t, err)
	assert.Equal(t, &record, got)

	// Test Put replaces the previous record for the same model name.
	record.Address = "oss://b/models/demo.tar.gz"
	assert.NoError(t, store.Put(record))
	got, err = store.Get("demo")
	assert.NoError(t, err)
	assert.Equal(t, "oss://b/models/demo.tar.gz", got.Address)

	// Test List.
	another := record
	another.ModelName = "another"
	assert.NoError(t, store.Put(another))
	records, err := store.List()
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "another", records[0].ModelName)
	assert.Equal(t, "demo", records[1].ModelName)

	// Test Delete.
	assert.NoError(t, store.Delete("demo"))
	got, err = store.Get("demo")
	assert.NoError(t, err)
	assert.Nil(t, got)

	// Test deleting a non-existent key.
	assert.NoError(t, store.Delete("non-existent key"))
}

func TestStoreFactoryUnknownType(t *testing.T) {
	factory := &StoreFactory{}
	store, err := factory.New(StoreType("redis"))
	assert.Nil(t, store)
	assert.Error(t, err)
}
