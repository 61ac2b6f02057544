package storage

// Keys of the local key/value store.
const (
	KeyTheme             = "theme"
	KeyPredictionHistory = "predictionHistory"
)
