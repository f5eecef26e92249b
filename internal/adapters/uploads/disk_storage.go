package uploads

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DiskStorageAdapter реализует FileStoragePort поверх локальной файловой системы.
// Файлы пишутся в один каталог под сгенерированными именами; раздача - через
// статический маршрут REST-сервера.
type DiskStorageAdapter struct {
	dir string
}

func NewDiskStorageAdapter(dir string) (*DiskStorageAdapter, error) {
	if dir == "" {
		return nil, fmt.Errorf("upload directory is required")
	}

	// Создаем каталог при старте, а не при первой загрузке
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %q: %w", dir, err)
	}

	return &DiskStorageAdapter{dir: dir}, nil
}

// Save записывает содержимое файла и возвращает путь относительно каталога загрузок.
func (a *DiskStorageAdapter) Save(ctx context.Context, filename string, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fullPath := filepath.Join(a.dir, filename)
	if err := os.WriteFile(fullPath, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file %q: %w", filename, err)
	}

	// В записи об изображении храним только имя файла, как и отдаём его клиенту
	return filename, nil
}

// Dir возвращает корневой каталог хранилища (нужен статическому маршруту).
func (a *DiskStorageAdapter) Dir() string {
	return a.dir
}
