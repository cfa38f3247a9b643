package config

// env keys
const (
	ACCESS_KEY_ID     = "ACCESS_KEY_ID"
	ACCESS_KEY_SECRET = "ACCESS_KEY_SECRET"
	OSS_ENDPOINT      = "OSS_ENDPOINT"
	OTS_ENDPOINT      = "OTS_ENDPOINT"
	OTS_INSTANCE_NAME = "OTS_INSTANCE_NAME"
)

// archive entry names
const (
	ModelArchivePrefix   = "model"
	RequirementsFileName = "requirements.txt"
	InferenceScriptName  = "inference.py"
)

// storage key layout
const (
	ModelKeyPrefix = "models/"
	ArchiveSuffix  = ".tar.gz"
)

// ots history table
const (
	COLPK = "PK"
)
