package paths

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"

	"github.com/mediaforge/archon/pkg/logger"
)

type Path struct {
	Path         string
	FileName     string
	Directory    string
	IsDir        bool
	Size         int64
	ModifiedTime time.Time
}

var (
	log = logger.GetLogger("paths")
)

// InFolder traverses the provided folder and returns a list of paths and
// their total size. Files and folders can optionally be included in the
// results. The folder itself is excluded.
func InFolder(folder string, includeFiles bool, includeFolders bool) ([]Path, uint64) {
	var paths []Path
	var size uint64 = 0
	var mutex sync.Mutex

	conf := fastwalk.Config{
		Follow: false,
	}

	walkFn := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.WithError(err).Errorf("Error accessing path %q during walk", path)
			if os.IsPermission(err) {
				log.Warnf("Permission error on %q, continuing walk if possible...", path)
			}
			return nil
		}

		if path == folder {
			return nil
		}

		isDir := d.IsDir()

		if !includeFiles && !isDir {
			return nil
		}

		if !includeFolders && isDir {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			log.WithError(err).Errorf("Failed to get file info for %s", path)
			return nil
		}

		foundPath := Path{
			Path:         path,
			FileName:     info.Name(),
			Directory:    filepath.Dir(path),
			IsDir:        isDir,
			Size:         info.Size(),
			ModifiedTime: info.ModTime(),
		}

		mutex.Lock()
		paths = append(paths, foundPath)
		if !isDir {
			size += uint64(info.Size())
		}
		mutex.Unlock()

		return nil
	}

	err := fastwalk.Walk(&conf, folder, walkFn)
	if err != nil {
		log.WithError(err).Errorf("Failed to walk directory %s", folder)
	}

	return paths, size
}

// TreeSize returns the total byte size of all files under folder.
func TreeSize(folder string) uint64 {
	_, size := InFolder(folder, true, false)
	return size
}

// IsDirEmpty checks if the provided path is an empty dir
func IsDirEmpty(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	// Read exactly one entry. If EOF, the directory is empty.
	_, err = f.Readdirnames(1)
	if err == io.EOF {
		return true, nil
	}
	if err != nil {
		return false, err
	}

	return false, nil
}
