package fileops

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dooshek/scriptvoice/internal/logger"
)

const (
	// IntermediateExt is the extension of the raw synthesizer output.
	IntermediateExt = ".wav"
	// OutputExt is the extension of the final compressed file.
	OutputExt = ".mp3"
)

// ErrConfigNotFound is returned when a configuration file does not exist
var ErrConfigNotFound = errors.New("configuration file not found")

// FileOps interface defines operations for managing files in the scriptvoice config directory
type FileOps interface {
	// GetConfigDir returns the full path to the scriptvoice config directory
	GetConfigDir() string

	// SaveConfig saves data to a file in the config directory
	SaveConfig(filename string, data []byte) error

	// LoadConfig loads data from a file in the config directory
	LoadConfig(filename string) ([]byte, error)

	// EnsureDirectories creates necessary directories if they don't exist
	EnsureDirectories() error

	// GetStatsPath returns the full path to the statistics file
	GetStatsPath() string
}

// DefaultFileOps implements FileOps interface
type DefaultFileOps struct {
	configDir string
}

// NewDefaultFileOps creates a new DefaultFileOps instance
func NewDefaultFileOps() (*DefaultFileOps, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	return &DefaultFileOps{
		configDir: filepath.Join(homeDir, ".config", "scriptvoice"),
	}, nil
}

// NewFileOpsAt roots the config directory at dir.
func NewFileOpsAt(dir string) *DefaultFileOps {
	return &DefaultFileOps{configDir: dir}
}

func (f *DefaultFileOps) GetConfigDir() string {
	return f.configDir
}

func (f *DefaultFileOps) SaveConfig(filename string, data []byte) error {
	path := filepath.Join(f.configDir, filename)
	return os.WriteFile(path, data, 0o644)
}

func (f *DefaultFileOps) LoadConfig(filename string) ([]byte, error) {
	path := filepath.Join(f.configDir, filename)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, ErrConfigNotFound
	}
	return os.ReadFile(path)
}

func (f *DefaultFileOps) EnsureDirectories() error {
	if err := os.MkdirAll(f.configDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return nil
}

func (f *DefaultFileOps) GetStatsPath() string {
	return filepath.Join(f.configDir, "stats.json")
}

// NormalizeOutputPath makes path end in OutputExt. A trailing IntermediateExt
// is replaced rather than kept, so "out.wav" becomes "out.mp3".
func NormalizeOutputPath(path string) string {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, OutputExt) {
		return path
	}
	if strings.HasSuffix(lower, IntermediateExt) {
		path = path[:len(path)-len(IntermediateExt)]
	}
	return path + OutputExt
}

// IsRegularFile reports whether path exists and is not a directory.
func IsRegularFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// RemoveExisting deletes path if it exists. A missing file is not an error.
func RemoveExisting(path string) error {
	info, err := os.Lstat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	logger.Debugf("Removing existing output file %s", path)
	return os.Remove(path)
}

// CreateIntermediate reserves a uniquely named raw audio file in dir. The
// returned cleanup removes it and is safe to call more than once.
func CreateIntermediate(dir string) (string, func(), error) {
	f, err := os.CreateTemp(dir, ".scriptvoice-*"+IntermediateExt)
	if err != nil {
		return "", func() {}, fmt.Errorf("failed to create intermediate file: %w", err)
	}
	path := f.Name()
	f.Close()

	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logger.Error("Failed to remove intermediate file", err)
		}
	}
	return path, cleanup, nil
}
