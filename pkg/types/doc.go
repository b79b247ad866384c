// Package types defines the Row and Batch types, the Reader and Writer store
// interfaces, the Config type, and standard error values for the missionsnap
// export system.
package types
