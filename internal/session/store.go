package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"study/internal/fileutil"
)

// ErrNotLoggedIn is returned when no token is stored.
var ErrNotLoggedIn = errors.New("not logged in")

// Session is the persisted login state.
type Session struct {
	Token    string    `json:"token"`
	UserName string    `json:"user_name,omitempty"`
	Email    string    `json:"email,omitempty"`
	SavedAt  time.Time `json:"saved_at"`
}

// DisplayName returns the stored user name, or "User" when none was saved.
func (s Session) DisplayName() string {
	if strings.TrimSpace(s.UserName) == "" {
		return "User"
	}
	return s.UserName
}

// FileStore keeps the session in a JSON file.
type FileStore struct {
	path string
	lock *flock.Flock
	now  func() time.Time
}

// NewFileStore builds a FileStore at path. The lock file is path + ".lock".
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, lock: flock.New(path + ".lock"), now: time.Now}
}

// Path returns the session file location.
func (s *FileStore) Path() string { return s.path }

// Load reads the stored session. A missing file or empty token yields
// ErrNotLoggedIn.
func (s *FileStore) Load() (Session, error) {
	if err := s.rlock(); err != nil {
		return Session{}, err
	}
	defer s.unlock()
	return s.read()
}

// Save replaces the stored session. SavedAt is stamped when unset.
func (s *FileStore) Save(sess Session) error {
	sess.Token = strings.TrimSpace(sess.Token)
	if sess.Token == "" {
		return errors.New("save session: empty token")
	}
	if sess.SavedAt.IsZero() {
		sess.SavedAt = s.now().UTC()
	}
	if err := s.wlock(); err != nil {
		return err
	}
	defer s.unlock()
	return s.write(sess)
}

// SetUserName updates the stored display name, keeping the token.
func (s *FileStore) SetUserName(name string) error {
	if err := s.wlock(); err != nil {
		return err
	}
	defer s.unlock()
	sess, err := s.read()
	if err != nil {
		return err
	}
	sess.UserName = strings.TrimSpace(name)
	return s.write(sess)
}

// Clear removes the stored token and user name. Clearing an absent session
// is not an error.
func (s *FileStore) Clear() error {
	if err := s.wlock(); err != nil {
		return err
	}
	defer s.unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

func (s *FileStore) read() (Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Session{}, ErrNotLoggedIn
		}
		return Session{}, fmt.Errorf("read session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}
	if strings.TrimSpace(sess.Token) == "" {
		return Session{}, ErrNotLoggedIn
	}
	return sess, nil
}

func (s *FileStore) write(sess Session) error {
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := fileutil.WriteFileAtomic(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (s *FileStore) ensureLockDir() error {
	if err := os.MkdirAll(filepath.Dir(s.lock.Path()), 0o700); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}
	return nil
}

func (s *FileStore) rlock() error {
	if err := s.ensureLockDir(); err != nil {
		return err
	}
	if err := s.lock.RLock(); err != nil {
		return fmt.Errorf("lock session: %w", err)
	}
	return nil
}

func (s *FileStore) wlock() error {
	if err := s.ensureLockDir(); err != nil {
		return err
	}
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("lock session: %w", err)
	}
	return nil
}

func (s *FileStore) unlock() {
	_ = s.lock.Unlock()
}
