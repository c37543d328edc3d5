package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"automix-bot/internal/core/domain"
)

const redacted = "***"

type Options struct {
	Token      string
	Repository string // owner/name on GitHub
	Branch     string
	Author     string
	// Dir is the working tree the identity file lives in.
	Dir string
	// File is the identity file path, relative to Dir or absolute.
	File string
}

// RunFunc executes a command in dir and returns its combined output.
type RunFunc func(ctx context.Context, dir, name string, args ...string) ([]byte, error)

// Sync commits the identity file back to the repository it was deployed
// from, so a redeploy starts with the current pointer.
type Sync struct {
	opts Options
	run  RunFunc
}

func NewSync(opts Options) *Sync {
	return newSync(opts, execRun)
}

func newSync(opts Options, run RunFunc) *Sync {
	if opts.Branch == "" {
		opts.Branch = "main"
	}
	if opts.Author == "" {
		opts.Author = "automix-bot"
	}
	if opts.Dir == "" {
		opts.Dir = "."
	}
	return &Sync{opts: opts, run: run}
}

func (s *Sync) Name() string { return "git" }

func (s *Sync) Sync(ctx context.Context, identity domain.MessageIdentity) error {
	file := s.relativeFile()

	if _, err := s.git(ctx, "add", "--", file); err != nil {
		return fmt.Errorf("stage identity file: %w", err)
	}

	msg := fmt.Sprintf("chore: update leaderboard message id to %s", identity.ID)
	out, err := s.git(ctx,
		"-c", "user.name="+s.opts.Author,
		"-c", "user.email="+s.opts.Author+"@users.noreply.github.com",
		"commit", "-m", msg, "--", file,
	)
	if err != nil {
		if nothingToCommit(out) {
			return nil
		}
		return fmt.Errorf("commit identity file: %w", err)
	}

	if _, err := s.git(ctx, "push", s.remoteURL(), "HEAD:"+s.opts.Branch); err != nil {
		return fmt.Errorf("push identity file: %w", err)
	}
	return nil
}

func (s *Sync) git(ctx context.Context, args ...string) ([]byte, error) {
	out, err := s.run(ctx, s.opts.Dir, "git", args...)
	if err != nil {
		detail := s.redact(strings.TrimSpace(string(out)))
		return out, errors.New(s.redact(fmt.Sprintf("git %s: %v: %s", args[0], err, detail)))
	}
	return out, nil
}

func (s *Sync) remoteURL() string {
	return fmt.Sprintf("https://x-access-token:%s@github.com/%s.git", s.opts.Token, s.opts.Repository)
}

func (s *Sync) relativeFile() string {
	if !filepath.IsAbs(s.opts.File) {
		return s.opts.File
	}
	rel, err := filepath.Rel(s.opts.Dir, s.opts.File)
	if err != nil {
		return s.opts.File
	}
	return rel
}

// redact strips the token from anything that may end up in a log line.
func (s *Sync) redact(msg string) string {
	if s.opts.Token == "" {
		return msg
	}
	return strings.ReplaceAll(msg, s.opts.Token, redacted)
}

func nothingToCommit(out []byte) bool {
	return bytes.Contains(out, []byte("nothing to commit")) ||
		bytes.Contains(out, []byte("no changes added to commit"))
}

func execRun(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}
