// Package source resolves a user-supplied source identifier into a local root
// directory, cloning remote repositories into ephemeral storage when needed.
package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"go.uber.org/zap"
)

var (
	// ErrRootNotFound indicates a local source path that does not exist or is not a directory.
	ErrRootNotFound = errors.New("root not found")
	// ErrAcquisitionFailed indicates a remote repository that could not be cloned.
	ErrAcquisitionFailed = errors.New("repository acquisition failed")
)

const (
	temporaryDirectoryPrefix = "ingest_"
	gitSuffix                = ".git"
	shallowCloneDepth        = 1

	httpPrefix   = "http://"
	httpsPrefix  = "https://"
	sshPrefix    = "git@"
	sshSeparator = ":"
)

// Root is a resolved local directory ready for digestion together with the
// label used as the rendered tree's top line.
type Root struct {
	Path        string
	DisplayName string
}

// Resolve turns a source identifier into a Root. Remote identifiers are
// shallow-cloned into a temporary directory; the returned cleanup function
// removes it and must be called on every exit path. Local identifiers are
// validated in place and their cleanup is a no-op.
func Resolve(executionContext context.Context, rawSource string, logger *zap.Logger) (Root, func(), error) {
	if IsRemote(rawSource) {
		return resolveRemote(executionContext, rawSource, logger)
	}
	return resolveLocal(rawSource, logger)
}

// IsRemote reports whether the source identifier denotes a remote repository.
func IsRemote(rawSource string) bool {
	return strings.HasPrefix(rawSource, httpPrefix) ||
		strings.HasPrefix(rawSource, httpsPrefix) ||
		strings.HasPrefix(rawSource, sshPrefix)
}

func resolveRemote(executionContext context.Context, repositoryURL string, logger *zap.Logger) (Root, func(), error) {
	temporaryDirectory, temporaryDirectoryError := os.MkdirTemp("", temporaryDirectoryPrefix)
	if temporaryDirectoryError != nil {
		return Root{}, nil, fmt.Errorf("%w: creating temporary directory: %v", ErrAcquisitionFailed, temporaryDirectoryError)
	}
	cleanup := func() {
		if removeError := os.RemoveAll(temporaryDirectory); removeError != nil && logger != nil {
			logger.Warn("failed to remove temporary clone directory",
				zap.String("directory", temporaryDirectory), zap.Error(removeError))
		}
	}

	if logger != nil {
		logger.Info("cloning repository",
			zap.String("url", repositoryURL), zap.String("directory", temporaryDirectory))
	}
	_, cloneError := git.PlainCloneContext(executionContext, temporaryDirectory, false, &git.CloneOptions{
		URL:   repositoryURL,
		Depth: shallowCloneDepth,
	})
	if cloneError != nil {
		cleanup()
		return Root{}, nil, fmt.Errorf("%w: cloning %s: %v", ErrAcquisitionFailed, repositoryURL, cloneError)
	}

	return Root{
		Path:        temporaryDirectory,
		DisplayName: RepositoryNameFromURL(repositoryURL),
	}, cleanup, nil
}

func resolveLocal(localPath string, logger *zap.Logger) (Root, func(), error) {
	absolutePath, absolutePathError := filepath.Abs(localPath)
	if absolutePathError != nil {
		return Root{}, nil, fmt.Errorf("%w: resolving %s: %v", ErrRootNotFound, localPath, absolutePathError)
	}
	pathInformation, statError := os.Stat(absolutePath)
	if statError != nil || !pathInformation.IsDir() {
		return Root{}, nil, fmt.Errorf("%w: local path not found or not a directory: %s", ErrRootNotFound, localPath)
	}

	if logger != nil {
		logger.Info("processing local directory", zap.String("path", absolutePath))
	}
	return Root{
		Path:        absolutePath,
		DisplayName: contextualDisplayName(absolutePath),
	}, func() {}, nil
}

// RepositoryNameFromURL derives a display name from a repository URL: the last
// path component without a .git suffix.
func RepositoryNameFromURL(repositoryURL string) string {
	trimmedURL := strings.TrimSuffix(repositoryURL, gitSuffix)
	if strings.HasPrefix(trimmedURL, sshPrefix) {
		if separatorIndex := strings.LastIndex(trimmedURL, sshSeparator); separatorIndex >= 0 {
			trimmedURL = trimmedURL[separatorIndex+1:]
		}
	}
	return path.Base(strings.TrimSuffix(trimmedURL, "/"))
}

// contextualDisplayName labels a local directory relative to its enclosing Git
// worktree: the worktree base name when the directory is the worktree root,
// "<worktree-base>/<relative-path>" when it lies deeper, and the directory's
// own base name when no worktree encloses it.
func contextualDisplayName(absolutePath string) string {
	repository, openError := git.PlainOpenWithOptions(absolutePath, &git.PlainOpenOptions{DetectDotGit: true})
	if openError != nil {
		return filepath.Base(absolutePath)
	}
	worktree, worktreeError := repository.Worktree()
	if worktreeError != nil {
		return filepath.Base(absolutePath)
	}
	worktreeRoot := worktree.Filesystem.Root()
	relativePath, relativeError := filepath.Rel(worktreeRoot, absolutePath)
	if relativeError != nil {
		return filepath.Base(absolutePath)
	}
	if relativePath == "." {
		return filepath.Base(worktreeRoot)
	}
	return filepath.Base(worktreeRoot) + "/" + filepath.ToSlash(relativePath)
}
