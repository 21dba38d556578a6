package config

import "time"

// Model is the unified, format-agnostic representation of the entire
// launcher configuration.
type Model struct {
	Environment *Environment
	Server      *Server
	Watch       *Watch
}

// Environment describes the isolated environment directory and the
// dependency manifest installed into it.
type Environment struct {
	// Dir is the environment directory, relative to the working directory.
	Dir string
	// Manifest is the dependency manifest file consumed by the install step.
	Manifest string
	// Python is the base interpreter used to create the environment. Empty
	// means the platform default.
	Python string
}

// Server describes the application process and its network endpoint.
type Server struct {
	// Command is the server executable and its leading arguments. The
	// executable is resolved inside the environment's binary directory.
	Command []string
	Host    string
	Port    int
}

// Watch describes the source watching behavior that drives auto-reload.
type Watch struct {
	Paths      []string
	Extensions []string
	Ignore     []string
	Debounce   time.Duration
}

// Default returns the built-in configuration, matching the behavior of the
// startup scripts the launcher replaces: a ".venv" environment, a
// requirements manifest, and a uvicorn server on 0.0.0.0:8000 reloading on
// Python source changes.
func Default() *Model {
	return &Model{
		Environment: &Environment{
			Dir:      ".venv",
			Manifest: "requirements.txt",
		},
		Server: &Server{
			Command: []string{"uvicorn", "main:app"},
			Host:    "0.0.0.0",
			Port:    8000,
		},
		Watch: &Watch{
			Paths:      []string{"."},
			Extensions: []string{".py"},
			Debounce:   300 * time.Millisecond,
		},
	}
}
