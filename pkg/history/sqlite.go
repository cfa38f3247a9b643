package history

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbName string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Create table if it doesn't exist.
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		model_name %s,
		%s TEXT, %s TEXT, %s TEXT, %s TEXT, %s TEXT, %s INT, %s TEXT)`,
		tableName, "TEXT PRIMARY KEY NOT NULL",
		colBucket, colObjKey, colAddress, colLocalPath, colDigest, colSizeBytes, colCreateTime)
	if _, err := db.Exec(query); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", tableName, err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Put(record Record) error {
	query := fmt.Sprintf(
		"INSERT OR REPLACE INTO %s (model_name, %s, %s, %s, %s, %s, %s, %s) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		tableName, colBucket, colObjKey, colAddress, colLocalPath, colDigest, colSizeBytes, colCreateTime)
	_, err := s.db.Exec(query, record.ModelName, record.Bucket, record.Key, record.Address,
		record.LocalPath, record.Digest, record.SizeBytes, record.CreateTime)
	return err
}

func (s *SQLiteStore) Get(modelName string) (*Record, error) {
	query := fmt.Sprintf(
		"SELECT model_name, %s, %s, %s, %s, %s, %s, %s FROM %s WHERE model_name = ?",
		colBucket, colObjKey, colAddress, colLocalPath, colDigest, colSizeBytes, colCreateTime, tableName)
	record := Record{}
	err := s.db.QueryRow(query, modelName).Scan(&record.ModelName, &record.Bucket, &record.Key,
		&record.Address, &record.LocalPath, &record.Digest, &record.SizeBytes, &record.CreateTime)
	if err != nil {
		if err == sql.ErrNoRows {
			// There is no row with the given key.
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (s *SQLiteStore) List() ([]Record, error) {
	query := fmt.Sprintf(
		"SELECT model_name, %s, %s, %s, %s, %s, %s, %s FROM %s ORDER BY model_name",
		colBucket, colObjKey, colAddress, colLocalPath, colDigest, colSizeBytes, colCreateTime, tableName)
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		record := Record{}
		if err := rows.Scan(&record.ModelName, &record.Bucket, &record.Key, &record.Address,
			&record.LocalPath, &record.Digest, &record.SizeBytes, &record.CreateTime); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *SQLiteStore) Delete(modelName string) error {
	_, err := s.db.Exec(
		fmt.Sprintf("DELETE FROM %s WHERE model_name = ?", tableName), modelName)
	return err
}
