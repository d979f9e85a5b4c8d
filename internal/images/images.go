package images

import (
	"log"
	"os"
	"path/filepath"
)

// Cleaner удаляет файл изображения по относительному пути.
type Cleaner interface {
	Clear(path string)
}

// Dir — хранилище изображений в каталоге на диске.
type Dir struct {
	BaseDir string
}

func NewDir(baseDir string) *Dir {
	return &Dir{BaseDir: baseDir}
}

// Clear удаляет файл best-effort: ошибка только логируется и никогда
// не блокирует основную операцию (удаление поста продолжается).
func (d *Dir) Clear(path string) {
	if path == "" {
		return
	}

	// путь приходит из хранилища, но ".." в нем не должен выводить за каталог
	rel := filepath.Clean("/" + path)
	imagePath := filepath.Join(d.BaseDir, rel)
	if err := os.Remove(imagePath); err != nil {
		log.Printf("could not remove image %s: %v", imagePath, err)
	}
}
