package internal

// Version is the concerto tool version, bumped on every release.
const Version = "0.1.0"
