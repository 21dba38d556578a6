package toolchain

import "path/filepath"

// Layout captures the platform-specific shape of an environment directory.
// POSIX environments keep executables under bin/, Windows under Scripts/
// with an .exe suffix.
type Layout interface {
	// BinDir returns the directory inside the environment that holds its
	// executables.
	BinDir(envDir string) string
	// Executable maps a bare tool name to its platform file name.
	Executable(name string) string
}

type posixLayout struct{}

func (posixLayout) BinDir(envDir string) string { return filepath.Join(envDir, "bin") }
func (posixLayout) Executable(name string) string {
	return name
}

type windowsLayout struct{}

func (windowsLayout) BinDir(envDir string) string { return filepath.Join(envDir, "Scripts") }
func (windowsLayout) Executable(name string) string {
	return name + ".exe"
}

// LayoutFor returns the environment layout for the given GOOS value.
func LayoutFor(goos string) Layout {
	if goos == "windows" {
		return windowsLayout{}
	}
	return posixLayout{}
}

// DefaultInterpreter returns the conventional base interpreter name for the
// given GOOS value, mirroring what the original platform scripts invoked.
func DefaultInterpreter(goos string) string {
	if goos == "windows" {
		return "python"
	}
	return "python3"
}
