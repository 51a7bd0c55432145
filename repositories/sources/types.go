package sources

type Repository interface {
	Load() map[string]string
}

type Impl struct {
	filePath string
}
