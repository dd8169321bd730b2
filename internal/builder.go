package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/gookit/color"

	addonpack "github.com/boardzilla/boardzilla-addonpack"
)

type BuildMode int

const (
	Prod BuildMode = iota
	Dev
)

func (m BuildMode) String() string {
	if m == Prod {
		return "prod"
	}
	return "dev"
}

const buildTimeout = 2 * time.Minute

type result struct {
	stdout []byte
	stderr []byte
	err    error
}

type Builder struct {
	root    string
	timeout time.Duration
	// Output receives the commands' stdout and stderr as they run.
	Output io.Writer
}

func NewBuilder(root string) (*Builder, error) {
	return &Builder{
		root:    root,
		timeout: buildTimeout,
		Output:  os.Stdout,
	}, nil
}

func (b *Builder) Root() string {
	return b.root
}

// Build runs the project's build commands for mode in order, stopping at
// the first failure. It returns the output of the last command run.
func (b *Builder) Build(mode BuildMode) ([]byte, []byte, error) {
	manifest, err := b.Manifest()
	if err != nil {
		return nil, nil, err
	}

	cmds := manifest.Build.Dev
	if mode == Prod {
		cmds = manifest.Build.Production
	}
	if len(cmds) == 0 {
		return nil, nil, fmt.Errorf("no %s build command in %s", mode, addonpack.ProjectFile)
	}

	color.Printf("Building <cyan>%s</>\n", manifest.Name.String())
	var res result
	for _, c := range cmds {
		res = b.run(context.Background(), b.root, c)
		if res.err != nil {
			return res.stdout, res.stderr, res.err
		}
	}
	return res.stdout, res.stderr, nil
}

// WatchedFiles lists the project file, the resources directory and the
// configured watch paths that exist.
func (b *Builder) WatchedFiles() ([]string, error) {
	manifest, err := b.Manifest()
	if err != nil {
		return nil, err
	}
	candidates := make([]string, 0, len(manifest.WatchPaths)+2)
	candidates = append(candidates, filepath.Join(b.root, addonpack.ProjectFile), manifest.ResourcesDir(b.root))
	for _, p := range manifest.WatchPaths {
		candidates = append(candidates, filepath.Join(b.root, p))
	}

	paths := make([]string, 0, len(candidates))
	for _, p := range candidates {
		if _, err := os.Stat(p); err != nil {
			if !os.IsNotExist(err) {
				return nil, err
			}
			continue
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func (b *Builder) Manifest() (*ProjectV1, error) {
	f, err := os.Open(filepath.Join(b.root, addonpack.ProjectFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	manifest := &ProjectV1{}
	if err := json.NewDecoder(f).Decode(manifest); err != nil {
		return nil, err
	}
	return manifest, nil
}

// Clean removes everything the build wrote to the project's out directory.
func (b *Builder) Clean() error {
	manifest, err := b.Manifest()
	if err != nil {
		return err
	}

	outDir := manifest.OutDir(b.root)
	_, err = os.Stat(outDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	files, err := os.ReadDir(outDir)
	if err != nil {
		return err
	}

	for _, f := range files {
		if err := os.RemoveAll(filepath.Join(outDir, f.Name())); err != nil {
			return fmt.Errorf("remove out path: %w", err)
		}
	}
	return nil
}

func (b *Builder) run(ctx context.Context, dir, cmdStr string) result {
	color.Printf("Running cmd <grey>%s</>\n", cmdStr)
	startTime := time.Now()
	args := strings.Fields(cmdStr)
	if len(args) == 0 {
		return result{err: fmt.Errorf("empty build command")}
	}
	ctx, cancelFn := context.WithTimeout(ctx, b.timeout)
	defer cancelFn()
	cmd := exec.CommandContext(ctx, args[0], args[1:]...) // #nosec G204

	outbuf := &bytes.Buffer{}
	errbuf := &bytes.Buffer{}

	out := b.Output
	if out == nil {
		out = io.Discard
	}
	cmd.Stdout = io.MultiWriter(out, outbuf)
	cmd.Stderr = io.MultiWriter(out, errbuf)
	cmd.Dir = dir
	err := cmd.Run()
	if err == nil {
		fmt.Fprintf(out, "%s succeeded\n", cmdStr)
	} else {
		fmt.Fprintf(out, "%s encountered an error: %s\n", cmdStr, err.Error())
	}

	color.Printf("Running cmd <grey>%s</> finished in %s\n", cmdStr, time.Since(startTime))

	return result{outbuf.Bytes(), errbuf.Bytes(), err}
}
