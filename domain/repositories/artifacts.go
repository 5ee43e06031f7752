package repositories

// WordCloudRenderer renders a transcript into a PNG image weighting words
// by frequency.
type WordCloudRenderer interface {
	Render(transcript string) ([]byte, error)
}

// BlobStore persists binary artifacts encrypted at rest. Put encrypts
// before writing; Get reads and decrypts.
type BlobStore interface {
	Put(path string, raw []byte) error
	Get(path string) ([]byte, error)
}
