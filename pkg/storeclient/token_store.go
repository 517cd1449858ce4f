package storeclient

import (
	"os"
	"path/filepath"
)

// Le token est le seul secret durable côté client, rangé sous une clé fixe.
const tokenFileName = "userToken"

type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// FileTokenStore persiste le token dans un fichier du répertoire donné.
type FileTokenStore struct {
	dir string
}

func NewFileTokenStore(dir string) *FileTokenStore {
	return &FileTokenStore{dir: dir}
}

var _ TokenStore = (*FileTokenStore)(nil)

func (s *FileTokenStore) path() string {
	return filepath.Join(s.dir, tokenFileName)
}

func (s *FileTokenStore) Load() (string, error) {
	data, err := os.ReadFile(s.path())
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (s *FileTokenStore) Save(token string) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path(), []byte(token), 0o600)
}

func (s *FileTokenStore) Clear() error {
	err := os.Remove(s.path())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// MemoryTokenStore garde le token en mémoire (tests, usages éphémères).
type MemoryTokenStore struct {
	token string
}

var _ TokenStore = (*MemoryTokenStore)(nil)

func (s *MemoryTokenStore) Load() (string, error)   { return s.token, nil }
func (s *MemoryTokenStore) Save(token string) error { s.token = token; return nil }
func (s *MemoryTokenStore) Clear() error            { s.token = ""; return nil }
