package entities

// Credential holds the speech-to-text service credentials. A single shared
// row, owned by the admin portal and read-only to the pipeline. It is passed
// explicitly into each transcription call rather than held as global state.
type Credential struct {
	APIKey     string `bson:"api_key"`
	ServiceURL string `bson:"service_url"`
}
