package history

import (
	"sync"

	"github.com/aliyun/aliyun-tablestore-go-sdk/tablestore"
	conf "github.com/devsapp/model-packager/pkg/config"
)

var (
	otsClient *tablestore.TableStoreClient
	once      sync.Once
)

// InitOtsClient init ots client
func InitOtsClient() {
	otsClient = tablestore.NewClient(conf.ConfigGlobal.OtsEndpoint, conf.ConfigGlobal.OtsInstanceName,
		conf.ConfigGlobal.AccessKeyId, conf.ConfigGlobal.AccessKeySecret)
}

// OtsStore tablestore backed history, for a ledger shared across machines
type OtsStore struct{}

func NewOtsStore() (*OtsStore, error) {
	// init otsClient, only first call valid
	once.Do(InitOtsClient)

	// check table is exist; if not create
	describeTableRequest := &tablestore.DescribeTableRequest{
		TableName: tableName,
	}
	if tableInfo, err := otsClient.DescribeTable(describeTableRequest); err == nil && tableInfo.TableMeta != nil {
		return &OtsStore{}, nil
	}
	createTableRequest := new(tablestore.CreateTableRequest)
	tableMeta := new(tablestore.TableMeta)
	tableMeta.TableName = tableName
	tableMeta.AddPrimaryKeyColumn(conf.COLPK, tablestore.PrimaryKeyType_STRING)
	for _, field := range []string{colBucket, colObjKey, colAddress, colLocalPath, colDigest, colCreateTime} {
		tableMeta.AddDefinedColumn(field, tablestore.DefinedColumn_STRING)
	}
	tableMeta.AddDefinedColumn(colSizeBytes, tablestore.DefinedColumn_INTEGER)
	tableOption := new(tablestore.TableOption)
	tableOption.TimeToAlive = conf.ConfigGlobal.OtsTimeToAlive
	tableOption.MaxVersion = conf.ConfigGlobal.OtsMaxVersion
	reservedThroughput := new(tablestore.ReservedThroughput)
	reservedThroughput.Readcap = 0
	reservedThroughput.Writecap = 0
	createTableRequest.TableMeta = tableMeta
	createTableRequest.TableOption = tableOption
	createTableRequest.ReservedThroughput = reservedThroughput

	if _, err := otsClient.CreateTable(createTableRequest); err != nil {
		return nil, err
	}
	return &OtsStore{}, nil
}

func (o *OtsStore) Put(record Record) error {
	putRowRequest := new(tablestore.PutRowRequest)
	putRowChange := new(tablestore.PutRowChange)
	putRowChange.TableName = tableName
	putPk := new(tablestore.PrimaryKey)
	putPk.AddPrimaryKeyColumn(conf.COLPK, record.ModelName)

	putRowChange.PrimaryKey = putPk
	putRowChange.AddColumn(colBucket, record.Bucket)
	putRowChange.AddColumn(colObjKey, record.Key)
	putRowChange.AddColumn(colAddress, record.Address)
	putRowChange.AddColumn(colLocalPath, record.LocalPath)
	putRowChange.AddColumn(colDigest, record.Digest)
	putRowChange.AddColumn(colSizeBytes, record.SizeBytes)
	putRowChange.AddColumn(colCreateTime, record.CreateTime)
	putRowChange.SetCondition(tablestore.RowExistenceExpectation_IGNORE)
	putRowRequest.PutRowChange = putRowChange
	if _, err := otsClient.PutRow(putRowRequest); err != nil {
		return err
	}
	return nil
}

func (o *OtsStore) Get(modelName string) (*Record, error) {
	getRowRequest := new(tablestore.GetRowRequest)
	pk := new(tablestore.PrimaryKey)
	pk.AddPrimaryKeyColumn(conf.COLPK, modelName)
	getRowRequest.SingleRowQueryCriteria = &tablestore.SingleRowQueryCriteria{
		PrimaryKey: pk,
		TableName:  tableName,
		MaxVersion: 1,
	}
	resp, err := otsClient.GetRow(getRowRequest)
	if err != nil {
		return nil, err
	}
	columnMap := resp.GetColumnMap()
	if len(columnMap.Columns) == 0 {
		return nil, nil
	}
	record := &Record{ModelName: modelName}
	for key, items := range columnMap.Columns {
		record.setColumn(key, items[0].Value)
	}
	return record, nil
}

func (o *OtsStore) List() ([]Record, error) {
	startPK := new(tablestore.PrimaryKey)
	startPK.AddPrimaryKeyColumnWithMinValue(conf.COLPK)
	endPK := new(tablestore.PrimaryKey)
	endPK.AddPrimaryKeyColumnWithMaxValue(conf.COLPK)
	rangeRowQueryCriteria := &tablestore.RangeRowQueryCriteria{
		TableName:       tableName,
		StartPrimaryKey: startPK,
		EndPrimaryKey:   endPK,
		Direction:       tablestore.FORWARD,
		MaxVersion:      1,
		Limit:           1000,
	}
	getRangeRequest := &tablestore.GetRangeRequest{
		RangeRowQueryCriteria: rangeRowQueryCriteria,
	}

	getRangeResp, err := otsClient.GetRange(getRangeRequest)
	if err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(getRangeResp.Rows))
	for _, row := range getRangeResp.Rows {
		record := Record{
			ModelName: row.PrimaryKey.PrimaryKeys[0].Value.(string),
		}
		for _, col := range row.Columns {
			record.setColumn(col.ColumnName, col.Value)
		}
		records = append(records, record)
	}
	return records, nil
}

func (o *OtsStore) Delete(modelName string) error {
	deletePk := new(tablestore.PrimaryKey)
	deletePk.AddPrimaryKeyColumn(conf.COLPK, modelName)
	deleteRowReq := new(tablestore.DeleteRowRequest)
	deleteRowReq.DeleteRowChange = new(tablestore.DeleteRowChange)
	deleteRowReq.DeleteRowChange.TableName = tableName
	deleteRowReq.DeleteRowChange.PrimaryKey = deletePk
	deleteRowReq.DeleteRowChange.SetCondition(tablestore.RowExistenceExpectation_EXPECT_EXIST)
	if _, err := otsClient.DeleteRow(deleteRowReq); err != nil {
		return err
	}
	return nil
}

func (o *OtsStore) Close() error {
	// do nothing
	return nil
}

func (r *Record) setColumn(name string, value interface{}) {
	switch name {
	case colBucket:
		r.Bucket, _ = value.(string)
	case colObjKey:
		r.Key, _ = value.(string)
	case colAddress:
		r.Address, _ = value.(string)
	case colLocalPath:
		r.LocalPath, _ = value.(string)
	case colDigest:
		r.Digest, _ = value.(string)
	case colSizeBytes:
		r.SizeBytes, _ = value.(int64)
	case colCreateTime:
		r.CreateTime, _ = value.(string)
	}
}
