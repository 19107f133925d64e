package domain

import "path/filepath"

const (
	// MetadataDirName is the name of the podgen directory inside the sandbox.
	MetadataDirName = ".podgen"

	// DigestStoreFileName is the name of the digest store inside the metadata directory.
	DigestStoreFileName = "digests.json"

	// PlanFileName is the name of the project plan written next to the sandbox documents.
	PlanFileName = "plan.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// MetadataDir returns the podgen metadata directory of the sandbox.
func (s Sandbox) MetadataDir() string {
	return filepath.Join(s.Root, MetadataDirName)
}

// DigestStorePath returns the path of the digest store of the sandbox.
func (s Sandbox) DigestStorePath() string {
	return filepath.Join(s.MetadataDir(), DigestStoreFileName)
}
