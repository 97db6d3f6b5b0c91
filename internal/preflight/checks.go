package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// CheckInputFile verifies the input exists, is a regular file, and is
// readable. It also returns the file size for downstream space checks.
func CheckInputFile(path string) (Result, int64) {
	const name = "Input file"

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}, 0
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}, 0
	}
	if info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is a directory)", path)}, 0
	}
	if err := unix.Access(path, unix.R_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not readable: %v)", path, err)}, 0
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", path, formatBytes(info.Size()))}, info.Size()
}

// CheckDirectoryWritable verifies that the directory exists and new files
// can be created in it.
func CheckDirectoryWritable(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (write ok)", path)}
}

// CheckDiskSpace verifies the filesystem holding dir has at least need
// bytes available.
func CheckDiskSpace(dir string, need int64) Result {
	const name = "Disk space"

	var stat unix.Statfs_t
	if err := unix.Statfs(dir, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: statfs: %v)", dir, err)}
	}
	free := int64(stat.Bavail) * int64(stat.Bsize)
	if free < need {
		return Result{Name: name, Detail: fmt.Sprintf("%s free in %s, need %s", formatBytes(free), dir, formatBytes(need))}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s free in %s", formatBytes(free), dir)}
}

func formatBytes(value int64) string {
	const (
		kiB = 1024
		miB = kiB * 1024
		giB = miB * 1024
	)
	switch {
	case value >= giB:
		return fmt.Sprintf("%.2f GiB", float64(value)/float64(giB))
	case value >= miB:
		return fmt.Sprintf("%.2f MiB", float64(value)/float64(miB))
	case value >= kiB:
		return fmt.Sprintf("%.2f KiB", float64(value)/float64(kiB))
	default:
		return fmt.Sprintf("%d B", value)
	}
}
