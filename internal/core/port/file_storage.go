package port

import "context"

// FileStoragePort - контракт долговременного хранилища файлов изображений.
type FileStoragePort interface {
	// Save записывает содержимое файла под заданным именем и возвращает
	// относительный путь, по которому файл будет доступен.
	Save(ctx context.Context, filename string, content []byte) (string, error)
}
