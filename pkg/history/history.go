package history

import (
	"fmt"

	"github.com/devsapp/model-packager/pkg/config"
)

type StoreType string

const (
	SQLite     StoreType = "sqlite"
	TableStore StoreType = "tableStore"
	None       StoreType = "none"
)

const tableName = "model_packages"

// column names shared by the sqlite and tablestore backends
const (
	colBucket     = "bucket"
	colObjKey     = "obj_key"
	colAddress    = "address"
	colLocalPath  = "local_path"
	colDigest     = "digest"
	colSizeBytes  = "size_bytes"
	colCreateTime = "create_time"
)

// Record one uploaded model package, keyed by model name. A later upload of
// the same model name replaces the record.
type Record struct {
	ModelName  string
	Bucket     string
	Key        string
	Address    string
	LocalPath  string
	Digest     string
	SizeBytes  int64
	CreateTime string
}

type Store interface {
	// Put inserts or replaces the record for record.ModelName.
	Put(record Record) error

	// Get retrieves the record for a model name.
	// If the model was never recorded, both return values are nil.
	Get(modelName string) (*Record, error)

	// List read all records from the store.
	List() ([]Record, error)

	// Delete removes a record. Deleting a non-existent model name is not an
	// error for the sqlite backend, the tablestore backend reports it.
	Delete(modelName string) error

	// Close close the store.
	Close() error
}

type StoreFactory struct{}

func (f *StoreFactory) New(storeType StoreType) (Store, error) {
	switch storeType {
	case SQLite:
		return NewSQLiteStore(config.ConfigGlobal.DbSqlite)
	case TableStore:
		return NewOtsStore()
	default:
		return nil, fmt.Errorf("not support history type=%s", storeType)
	}
}
