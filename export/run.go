package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"gdex/config"
	"gdex/css"
	"gdex/fetch"
	"gdex/gdocs"
	"gdex/state"
)

// htaccess makes a plain file server treat the output directory as a site.
const htaccess = "DirectoryIndex index.html\nAddDefaultCharset UTF-8\n"

// Run implements the export subcommand.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("export")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no document source has been specified")
	}
	dst := cmd.Args().Get(1)
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.Overwrite, env.ToStdout = cmd.Bool("overwrite"), cmd.Bool("stdout")

	// A single stream cannot carry image files, embedding is forced on
	if env.ToStdout {
		env.Cfg.Document.Images.Embed = true
	}

	if env.Cfg.Document.StylesheetPath != "" {
		if env.ToStdout {
			log.Warn("Custom stylesheet is ignored when writing to stdout", zap.String("file", env.Cfg.Document.StylesheetPath))
		} else {
			data, err := os.ReadFile(env.Cfg.Document.StylesheetPath)
			if err != nil {
				return fmt.Errorf("unable to read style css from %q: %w", env.Cfg.Document.StylesheetPath, err)
			}
			css.InspectStylesheet(data, log)
			env.ExtraStyle = data
		}
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, log)
}

// process handles one document end to end independently of the CLI
// framework: load, render, lay the artifacts out.
func process(ctx context.Context, src, dst string, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)

	client, err := fetch.NewClient(ctx, env.Cfg.Fetch.CredentialsPath, env.Cfg.Fetch.Timeout(), log)
	if err != nil {
		return fmt.Errorf("unable to prepare API client: %w", err)
	}

	doc, err := loadDocument(ctx, client, src, env, log)
	if err != nil {
		return err
	}
	if env.Rpt != nil {
		env.Rpt.StoreData("document.tree", []byte(doc.String()))
	}

	if !env.ToStdout {
		if dst == "" {
			dst = buildOutputName(doc, env)
		}
		if dst, err = filepath.Abs(dst); err != nil {
			return err
		}
		if err := prepareDestination(dst, env, log); err != nil {
			return err
		}
	}

	res, err := processDocument(ctx, doc, client, env, log)
	if err != nil {
		return err
	}
	if env.Rpt != nil {
		env.Rpt.StoreData("index.html", res.HTML)
	}

	if env.ToStdout {
		if _, err := os.Stdout.Write(res.HTML); err != nil {
			return fmt.Errorf("unable to write page to stdout: %w", err)
		}
		log.Info("Export completed", zap.String("to", "STDOUT"), zap.Int("warnings", res.Warnings))
		return nil
	}

	if err := writeArtifacts(dst, res, env); err != nil {
		return err
	}
	log.Info("Export completed",
		zap.String("to", dst), zap.Int("images", len(res.Images)), zap.Int("warnings", res.Warnings))
	return nil
}

// loadDocument reads a saved API dump when src is a file on disk, otherwise
// treats src as a document ID or URL and fetches it. Either way the raw JSON
// ends up in the debug report.
func loadDocument(ctx context.Context, client *fetch.Client, src string, env *state.LocalEnv, log *zap.Logger) (*gdocs.Document, error) {
	if fi, err := os.Stat(src); err == nil && fi.Mode().IsRegular() {
		log.Debug("Loading document from file", zap.String("file", src))
		doc, err := fetch.LoadDump(src, log)
		if err != nil {
			return nil, fmt.Errorf("unable to load document dump (%s): %w", src, err)
		}
		// Hand-saved dumps occasionally miss the document ID and output
		// naming downstream wants one
		if doc.DocumentID == "" {
			id, err := uuid.NewV7()
			if err != nil {
				return nil, fmt.Errorf("unable to generate document ID: %w", err)
			}
			doc.DocumentID = id.String()
			log.Warn("Document has no ID, generating", zap.Stringer("new_id", id))
		}
		if env.Rpt != nil {
			env.Rpt.Store("document.json", src)
		}
		return doc, nil
	}

	id := fetch.DocumentID(src)
	doc, raw, err := client.Document(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch document (%s): %w", id, err)
	}
	if env.Rpt != nil {
		env.Rpt.StoreData("document.json", raw)
	}
	return doc, nil
}

// processDocument renders the document, converting panics into errors.
func processDocument(ctx context.Context, doc *gdocs.Document, client *fetch.Client, env *state.LocalEnv, log *zap.Logger) (res *Result, rerr error) {
	log.Info("Rendering starting", zap.String("id", doc.DocumentID), zap.String("title", doc.Title))
	defer func(start time.Time) {
		// NOTE: some of golang graphic processing libraries are not mature
		// enough, a malformed image must not take the whole export down.
		if r := recover(); r != nil {
			log.Error("Rendering ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("rendering panic: %v", r)
		} else {
			log.Info("Rendering completed", zap.Duration("elapsed", time.Since(start)))
		}
	}(time.Now())

	r := NewRenderer(doc, client, &env.Cfg.Document, env.BrokenImage, log)
	r.LinkStylesheet = len(env.ExtraStyle) > 0
	return r.Render(ctx)
}

// buildOutputName derives the output directory name from the configured
// template, falling back to the document ID when expansion yields nothing.
func buildOutputName(doc *gdocs.Document, env *state.LocalEnv) string {
	var name string
	if env.Cfg.Document.OutputNameTemplate != "" {
		expanded, err := expandTemplate(doc, config.OutputNameTemplateFieldName, env.Cfg.Document.OutputNameTemplate)
		if err != nil {
			env.Log.Warn("Unable to prepare output name", zap.Error(err))
		} else {
			name = strings.TrimSpace(expanded)
		}
	}
	if name == "" {
		name = doc.DocumentID
	}
	if name == "" {
		name = "document"
	}
	if env.Cfg.Document.FileNameTransliterate {
		name = slug.Make(name)
	}
	return config.CleanFileName(name)
}

// prepareDestination makes sure the output directory is usable. An existing
// export is only replaced when overwriting was requested.
func prepareDestination(dst string, env *state.LocalEnv, log *zap.Logger) error {
	index := filepath.Join(dst, "index.html")
	if _, err := os.Stat(index); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output already exists: %s", index)
		}
		log.Warn("Overwriting existing export", zap.String("dir", dst))
		if err := cleanDestination(dst); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}
	return os.MkdirAll(dst, 0755)
}

// cleanDestination removes previously generated artifacts. Anything else in
// the directory stays untouched.
func cleanDestination(dst string) error {
	for _, name := range []string{"index.html", "styles.css", ".htaccess"} {
		if err := os.Remove(filepath.Join(dst, name)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return os.RemoveAll(filepath.Join(dst, imagesDir))
}

// writeArtifacts lays the rendered result out in the destination directory.
func writeArtifacts(dst string, res *Result, env *state.LocalEnv) error {
	if err := os.WriteFile(filepath.Join(dst, "index.html"), res.HTML, 0644); err != nil {
		return fmt.Errorf("unable to write page: %w", err)
	}
	if len(env.ExtraStyle) > 0 {
		if err := os.WriteFile(filepath.Join(dst, "styles.css"), env.ExtraStyle, 0644); err != nil {
			return fmt.Errorf("unable to write stylesheet: %w", err)
		}
	}
	if err := os.WriteFile(filepath.Join(dst, ".htaccess"), []byte(htaccess), 0644); err != nil {
		return fmt.Errorf("unable to write .htaccess: %w", err)
	}
	if len(res.Images) == 0 {
		return nil
	}
	dir := filepath.Join(dst, imagesDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("unable to create images directory: %w", err)
	}
	for name, data := range res.Images {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
			return fmt.Errorf("unable to write image %s: %w", name, err)
		}
	}
	return nil
}
