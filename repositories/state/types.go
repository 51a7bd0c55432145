package state

type Repository interface {
	Load() map[string]string
	Save(record map[string]string) error
}

type Impl struct {
	filePath string
}
