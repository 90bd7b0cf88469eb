package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/resf/repoview/internal/models"
	"github.com/resf/repoview/internal/render"
	"github.com/resf/repoview/internal/site"
	"github.com/resf/repoview/internal/source"
	"github.com/resf/repoview/internal/source/repodata"
	"github.com/resf/repoview/internal/source/rpmdir"
	"github.com/resf/repoview/internal/verify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// generateOptions holds the flag values the generate command collects
type generateOptions struct {
	config models.SiteConfig

	configFile string
	repodata   string
	rpmDir     string
	gpgKeyPath string
}

// NewGenerateCmd creates the generate command
func NewGenerateCmd() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the site",
		Long: `Reads repository metadata from the selected source and writes the
full page tree into the output directory. The output directory is
recreated from scratch on every run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyConfigFile(cmd, &opts); err != nil {
				return err
			}
			if err := validateOptions(&opts); err != nil {
				return err
			}

			logrus.Info("Starting site generation...")
			logrus.Debugf("Configuration: %+v", opts.config)

			return runGeneration(cmd.Context(), &opts)
		},
	}

	// Front matter flags
	cmd.Flags().StringVar(&opts.config.Title, "title", "Repository Packages", "Title of the site")
	cmd.Flags().StringVar(&opts.config.Link, "link", "", "URL link to the repository root")
	cmd.Flags().StringVar(&opts.config.Description, "description",
		"Package, group, and general repository information", "Description of the site")

	// Input/Output flags
	cmd.Flags().StringVarP(&opts.config.OutputDir, "output-dir", "o", "repoview", "Output directory")
	cmd.Flags().StringVarP(&opts.config.TemplateDir, "template-dir", "t", "", "Directory with template overrides and layout assets")
	cmd.Flags().IntVar(&opts.config.Latest, "latest", models.DefaultLatest, "Number of latest packages on the index")
	cmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "Path to a YAML site configuration file")

	// Source flags
	cmd.Flags().StringVar(&opts.repodata, "repodata", "", "Path to a repository with a repodata tree")
	cmd.Flags().StringVar(&opts.rpmDir, "rpm-dir", "", "Path to a directory of .rpm files")
	cmd.Flags().StringVarP(&opts.gpgKeyPath, "gpg-key", "k", "", "Public GPG key to verify repomd.xml against")

	return cmd
}

// applyConfigFile pre-fills options from a YAML file. Flags set on the
// command line keep priority over file values.
func applyConfigFile(cmd *cobra.Command, opts *generateOptions) error {
	if opts.configFile == "" {
		return nil
	}

	fileConfig, err := models.LoadSiteConfig(opts.configFile)
	if err != nil {
		return &models.ViewError{
			Type:    models.ErrInvalidConfig,
			Subject: opts.configFile,
			Err:     err,
		}
	}

	if !cmd.Flags().Changed("title") && fileConfig.Title != "" {
		opts.config.Title = fileConfig.Title
	}
	if !cmd.Flags().Changed("link") && fileConfig.Link != "" {
		opts.config.Link = fileConfig.Link
	}
	if !cmd.Flags().Changed("description") && fileConfig.Description != "" {
		opts.config.Description = fileConfig.Description
	}
	if !cmd.Flags().Changed("output-dir") && fileConfig.OutputDir != "" {
		opts.config.OutputDir = fileConfig.OutputDir
	}
	if !cmd.Flags().Changed("template-dir") && fileConfig.TemplateDir != "" {
		opts.config.TemplateDir = fileConfig.TemplateDir
	}
	if !cmd.Flags().Changed("latest") && fileConfig.Latest != 0 {
		opts.config.Latest = fileConfig.Latest
	}

	return nil
}

func validateOptions(opts *generateOptions) error {
	if err := opts.config.Validate(); err != nil {
		return err
	}

	if (opts.repodata == "") == (opts.rpmDir == "") {
		return &models.ViewError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("exactly one of --repodata or --rpm-dir is required"),
		}
	}

	if opts.gpgKeyPath != "" && opts.rpmDir != "" {
		return &models.ViewError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("--gpg-key only applies to --repodata sources"),
		}
	}

	return nil
}

func runGeneration(ctx context.Context, opts *generateOptions) error {
	// Step 1: verify metadata trust when asked to
	if opts.gpgKeyPath != "" {
		if err := verifyRepomd(opts.repodata, opts.gpgKeyPath); err != nil {
			return err
		}
		logrus.Info("Repository metadata signature verified")
	}

	// Step 2: load the metadata snapshot
	var src source.Source
	var err error

	if opts.repodata != "" {
		logrus.Infof("Loading repository metadata from %s", opts.repodata)
		src, err = repodata.Load(opts.repodata)
	} else {
		logrus.Infof("Scanning %s for rpm packages", opts.rpmDir)
		src, err = rpmdir.Load(ctx, opts.rpmDir)
	}
	if err != nil {
		return &models.ViewError{
			Type: models.ErrMetadata,
			Err:  fmt.Errorf("failed to load repository metadata: %w", err),
		}
	}

	// Step 3: build the renderer
	renderer, err := render.New(opts.config.TemplateDir)
	if err != nil {
		return &models.ViewError{
			Type:    models.ErrRender,
			Subject: opts.config.TemplateDir,
			Err:     err,
		}
	}

	// Step 4: run the generation pass
	if err := site.New(src, renderer, &opts.config).Run(); err != nil {
		return err
	}

	logrus.Info("Site generation completed successfully!")
	logrus.Infof("Output directory: %s", opts.config.OutputDir)
	return nil
}

// verifyRepomd checks the detached signature next to repomd.xml
func verifyRepomd(repoDir, keyPath string) error {
	verifier, err := verify.NewVerifier(keyPath)
	if err != nil {
		return &models.ViewError{
			Type:    models.ErrVerify,
			Subject: keyPath,
			Err:     err,
		}
	}

	repomdPath := repodata.RepomdPath(repoDir)
	sigPath := repomdPath + ".asc"
	if _, err := os.Stat(sigPath); err != nil {
		return &models.ViewError{
			Type:    models.ErrVerify,
			Subject: sigPath,
			Err:     fmt.Errorf("metadata signature not found: %w", err),
		}
	}

	if err := verifier.VerifyFile(repomdPath, sigPath); err != nil {
		return &models.ViewError{
			Type:    models.ErrVerify,
			Subject: repomdPath,
			Err:     err,
		}
	}
	return nil
}
