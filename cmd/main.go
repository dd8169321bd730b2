package main

import (
	"embed"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/erikgeiser/promptkit/confirmation"
	"github.com/erikgeiser/promptkit/textinput"
	"github.com/radovskyb/watcher"
	"github.com/stoewer/go-strcase"

	addonpack "github.com/boardzilla/boardzilla-addonpack"
	"github.com/boardzilla/boardzilla-addonpack/internal"
)

//go:embed VERSION
var versionFS embed.FS

const (
	debounceDurationMS = 500
	pollInterval       = 100 * time.Millisecond
)

func printHelp() {
	fmt.Println("usage: addonpack [command]")
	fmt.Println("")
	fmt.Println("init -root <project root>                  Create a new add-on project")
	fmt.Println("build -root <project root> [-prod]         Build the packs once")
	fmt.Println("dev -root <project root> -port <port>      Rebuild on change and serve the packs")
	fmt.Println("clean -root <project root>                 Remove generated packs")
	fmt.Println("version                                    Shows version installed")
	fmt.Println("")
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

type notifier struct {
	out      func()
	notified bool
	lock     sync.Mutex
}

func (n *notifier) notify() {
	n.lock.Lock()
	defer n.lock.Unlock()
	if !n.notified {
		n.notified = true
		go func() {
			time.Sleep(debounceDurationMS * time.Millisecond)
			n.out()
			n.lock.Lock()
			n.notified = false
			defer n.lock.Unlock()
		}()
	}
}

func run() error {
	if len(os.Args) == 1 {
		printHelp()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version":
		return version()
	case "init":
		return initProject()
	case "build":
		return build()
	case "dev":
		return dev()
	case "clean":
		return clean()
	default:
		fmt.Printf("Unrecognized command: %s\n\n", command)
		printHelp()
		os.Exit(1)
	}

	return nil
}

func version() error {
	f, err := versionFS.ReadFile("VERSION")
	if err != nil {
		return err
	}
	fmt.Printf("Version is %s\n", strings.TrimSpace(string(f)))
	return nil
}

func projectRoot(set *flag.FlagSet) (string, error) {
	root := set.String("root", ".", "project root")
	if err := set.Parse(os.Args[2:]); err != nil {
		return "", err
	}
	return filepath.Abs(*root)
}

func build() error {
	buildCmd := flag.NewFlagSet("build", flag.ExitOnError)
	prod := buildCmd.Bool("prod", false, "run the prod build commands")
	root, err := projectRoot(buildCmd)
	if err != nil {
		return err
	}

	builder, err := internal.NewBuilder(root)
	if err != nil {
		return err
	}
	mode := internal.Dev
	if *prod {
		mode = internal.Prod
	}
	if _, _, err := builder.Build(mode); err != nil {
		return fmt.Errorf("%s build: %w", mode, err)
	}
	return nil
}

func clean() error {
	root, err := projectRoot(flag.NewFlagSet("clean", flag.ExitOnError))
	if err != nil {
		return err
	}
	builder, err := internal.NewBuilder(root)
	if err != nil {
		return err
	}
	return builder.Clean()
}

func dev() error {
	devCmd := flag.NewFlagSet("dev", flag.ExitOnError)
	port := devCmd.Int("port", 8080, "port for server")
	root, err := projectRoot(devCmd)
	if err != nil {
		return err
	}

	devBuilder, err := internal.NewBuilder(root)
	if err != nil {
		return err
	}
	manifest, err := devBuilder.Manifest()
	if err != nil {
		return err
	}
	server, err := internal.NewServer(root, manifest, *port)
	if err != nil {
		return err
	}

	rebuild := func() {
		if outbuf, errbuf, err := devBuilder.Build(internal.Dev); err != nil {
			log.Println("error during build:", err)
			server.BuildError(string(outbuf), string(errbuf))
			return
		}
		server.Reload()
	}
	changes := &notifier{out: rebuild}

	w := watcher.New()
	w.SetMaxEvents(1)
	w.FilterOps(watcher.Write, watcher.Create, watcher.Remove, watcher.Rename, watcher.Move)
	roots, err := devBuilder.WatchedFiles()
	if err != nil {
		return err
	}
	for _, p := range roots {
		info, err := os.Stat(p)
		if err != nil {
			return err
		}
		if info.IsDir() {
			err = w.AddRecursive(p)
		} else {
			err = w.Add(p)
		}
		if err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
	}
	if err := w.Ignore(manifest.OutDir(root)); err != nil {
		return err
	}

	go func() {
		rebuild()
		for {
			select {
			case e := <-w.Event:
				log.Printf("change in %s\n", e.Path)
				changes.notify()
			case err := <-w.Error:
				log.Println("error:", err)
			case <-w.Closed:
				return
			}
		}
	}()
	go func() {
		if err := w.Start(pollInterval); err != nil {
			log.Fatal(err)
		}
	}()
	defer w.Close()

	fmt.Printf("Running dev builder on port %d at project root %s\n", *port, root)
	fmt.Printf("Ready on :%d\n", *port)
	return server.Serve()
}

func initProject() error {
	root, err := projectRoot(flag.NewFlagSet("init", flag.ExitOnError))
	if err != nil {
		return err
	}

	projectPath := filepath.Join(root, addonpack.ProjectFile)
	if _, err := os.Stat(projectPath); err == nil {
		overwrite, err := confirmation.New(fmt.Sprintf("%s already exists, overwrite it?", projectPath), confirmation.Undecided).RunPrompt()
		if err != nil {
			return err
		}
		if !overwrite {
			return nil
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	nameInput := textinput.New("Pack name:")
	nameInput.InitialValue = filepath.Base(root)
	name, err := nameInput.RunPrompt()
	if err != nil {
		return err
	}

	namespaceInput := textinput.New("Namespace:")
	namespaceInput.InitialValue = strcase.SnakeCase(name)
	namespace, err := namespaceInput.RunPrompt()
	if err != nil {
		return err
	}

	versionInput := textinput.New("Version:")
	versionInput.InitialValue = "1.0.0"
	versionInput.Validate = func(s string) error {
		_, err := addonpack.ParseVersion(s)
		return err
	}
	versionStr, err := versionInput.RunPrompt()
	if err != nil {
		return err
	}
	v, err := addonpack.ParseVersion(versionStr)
	if err != nil {
		return err
	}

	project := &addonpack.Project{
		Config: addonpack.Config{
			Name:      addonpack.Plain(name),
			Namespace: namespace,
			Version:   &v,
		},
		Resources: "resources",
		Build: addonpack.BuildCommands{
			Dev:  []string{"go run ./pack"},
			Prod: []string{"go run ./pack"},
		},
		WatchPaths: []string{"pack"},
	}
	return writeProject(root, project)
}

var starterPack = `package main

import (
	"context"
	"log"

	addonpack "github.com/boardzilla/boardzilla-addonpack"
)

func main() {
	pack := addonpack.NewPack()
	pack.Lang("en_US", []addonpack.Translation{
		{Key: "pack.name", Value: %q},
	}, false)
	if err := pack.SaveProject(context.Background(), "."); err != nil {
		log.Fatal(err)
	}
}
`

func writeProject(root string, project *addonpack.Project) error {
	for _, d := range []string{"lang", "textures", "recipes", "pack"} {
		dir := filepath.Join(root, project.Resources, d)
		if d == "pack" {
			dir = filepath.Join(root, d)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	b, err := json.MarshalIndent(project, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(root, addonpack.ProjectFile), append(b, '\n'), 0o644); err != nil {
		return err
	}

	fmt.Printf("Created %s\n", filepath.Join(root, addonpack.ProjectFile))

	starter := filepath.Join(root, "pack", "main.go")
	if _, err := os.Stat(starter); err == nil {
		return nil
	}
	src := fmt.Sprintf(starterPack, project.Name.String())
	return os.WriteFile(starter, []byte(src), 0o644)
}
