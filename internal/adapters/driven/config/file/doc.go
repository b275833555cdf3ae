// Package file provides file-based implementations of driven port interfaces.
// These adapters read configuration from the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - LoadLesson: TOML or YAML lesson content descriptors, with an embedded default
//   - Watcher: fsnotify-based reload of the configuration file
package file
